package sportscode

import "math"

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// pct returns num/den*100 rounded to the given places, 0 on a zero
// denominator. The team reports render these directly so the rounding here
// is the rounding of record.
func pct(num float64, den float64, places int) float64 {
	if den <= 0 {
		return 0
	}
	return roundTo(num/den*100, places)
}

func ratio(num, den int) *float64 {
	if den <= 0 {
		return nil
	}
	v := float64(num) / float64(den)
	return &v
}

// ComputeRates fills in the per-player derived rates. Rates with a zero
// denominator stay nil so reports can show a blank instead of a misleading
// zero.
func (p *PlayerLine) ComputeRates() {
	p.Rates.ATRPct = ratio(p.ATRMakes, p.ATRAttempts)
	p.Rates.FG2Pct = ratio(p.FG2Makes, p.FG2Attempts)
	p.Rates.FG3Pct = ratio(p.FG3Makes, p.FG3Attempts)
	p.Rates.FTPct = ratio(p.FTM, p.FTA)

	p.Rates.AssistTurnoverRatio = ratio(p.Assists, p.Turnovers)
	p.Rates.AdjAssistTurnoverRatio = ratio(p.Assists+p.SecondAssists+p.PotAssists, p.Turnovers)

	fga := p.ATRAttempts + p.FG2Attempts + p.FG3Attempts
	if fga > 0 {
		efg := (float64(p.ATRMakes) + float64(p.FG2Makes) + 1.5*float64(p.FG3Makes)) / float64(fga)
		pps := roundTo(efg*2, 2)
		p.Rates.EFGPct = &efg
		p.Rates.PointsPerShot = &pps
	} else {
		p.Rates.EFGPct = nil
		p.Rates.PointsPerShot = nil
	}
}
