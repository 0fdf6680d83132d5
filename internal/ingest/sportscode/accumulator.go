package sportscode

// PlayerLine accumulates every countable stat for one player within a single
// game or practice. Well-known box-score stats are named fields; the long
// tail of contest-by-shot-class splits lives in ContestSplits so new tagging
// subcategories do not force a schema change here.
type PlayerLine struct {
	Name string

	Points        int
	Assists       int
	PotAssists    int
	SecondAssists int
	Turnovers     int

	ATRMakes    int
	ATRAttempts int
	FG2Makes    int
	FG2Attempts int
	FG3Makes    int
	FG3Attempts int
	FTM         int
	FTA         int

	FoulBy int

	ContestFront  int
	ContestSide   int
	ContestBehind int
	ContestLate   int
	ContestEarly  int
	ContestNo     int

	BumpPositive int
	BumpMissed   int

	BlowbyTotal        int
	BlowbyTripleThreat int
	BlowbyCloseout     int
	BlowbyIsolation    int

	// Rebounding opportunities
	CrashPositive   int
	CrashMissed     int
	BackManPositive int
	BackManMissed   int
	BoxOutPositive  int
	BoxOutMissed    int
	OffRebGivenUp   int

	// Collision / gap help
	CollisionGapPositive int
	CollisionGapMissed   int
	PassContestPositive  int
	PassContestMissed    int
	PnrGapPositive       int
	PnrGapMissed         int
	LowHelpPositive      int
	LowHelpMissed        int

	// Pick-and-roll grades
	CloseWindowPositive int
	CloseWindowMissed   int
	ShutDoorPositive    int
	ShutDoorMissed      int

	PracticeWins   int
	PracticeLosses int
	SprintWins     int
	SprintLosses   int

	// On-court team events used by the practice OREB% report.
	TeamOffRebOn int
	TeamMissesOn int

	// ContestSplits carries keys like "fg3_late_attempts" / "fg3_late_makes"
	// for the contest-by-shot-class breakdown.
	ContestSplits map[string]int

	ShotDetails []ShotDetail
	StatDetails []StatEvent

	Blue BlueCollarLine

	Rates PlayerRates
}

// NewPlayerLine returns an empty accumulator for the named player.
func NewPlayerLine(name string) *PlayerLine {
	return &PlayerLine{Name: name, ContestSplits: make(map[string]int)}
}

// AddContestSplit bumps a contest-by-shot-class counter.
func (p *PlayerLine) AddContestSplit(key string) {
	p.ContestSplits[key]++
}

// PlayerRates holds derived per-player rate stats. nil means "no attempts",
// which the reports render as blank rather than zero.
type PlayerRates struct {
	ATRPct                 *float64
	FG2Pct                 *float64
	FG3Pct                 *float64
	FTPct                  *float64
	AssistTurnoverRatio    *float64
	AdjAssistTurnoverRatio *float64
	EFGPct                 *float64
	PointsPerShot          *float64
}

// BlueCollarLine counts hustle plays for one player or one team side.
type BlueCollarLine struct {
	RebTip      int
	DefReb      int
	Misc        int
	Deflection  int
	Steal       int
	Block       int
	OffReb      int
	FloorDive   int
	ChargeTaken int
}

// Add bumps the counter behind a blue-collar accumulator key and returns the
// weight the play contributes to the weighted total. Unknown keys add zero.
func (b *BlueCollarLine) Add(key string) float64 {
	switch key {
	case "reb_tip":
		b.RebTip++
	case "def_reb":
		b.DefReb++
	case "misc":
		b.Misc++
	case "deflection":
		b.Deflection++
	case "steal":
		b.Steal++
	case "block":
		b.Block++
	case "off_reb":
		b.OffReb++
	case "floor_dive":
		b.FloorDive++
	case "charge_taken":
		b.ChargeTaken++
	default:
		return 0
	}
	return BlueCollarWeights[key]
}

// Total returns the weighted blue-collar score.
func (b *BlueCollarLine) Total() float64 {
	return float64(b.RebTip)*BlueCollarWeights["reb_tip"] +
		float64(b.DefReb)*BlueCollarWeights["def_reb"] +
		float64(b.Misc)*BlueCollarWeights["misc"] +
		float64(b.Deflection)*BlueCollarWeights["deflection"] +
		float64(b.Steal)*BlueCollarWeights["steal"] +
		float64(b.Block)*BlueCollarWeights["block"] +
		float64(b.OffReb)*BlueCollarWeights["off_reb"] +
		float64(b.FloorDive)*BlueCollarWeights["floor_dive"] +
		float64(b.ChargeTaken)*BlueCollarWeights["charge_taken"]
}

// TeamTotals accumulates the team-wide box score for our side, plus the
// derived rate stats filled in after the row pass.
type TeamTotals struct {
	Points        int
	Assists       int
	SecondAssists int
	PotAssists    int
	Turnovers     int

	ATRMakes    int
	ATRAttempts int
	FG2Makes    int
	FG2Attempts int
	FG3Makes    int
	FG3Attempts int
	FTM         int
	FTA         int

	FoulBy          int
	OffRebounds     int
	Possessions     int
	TotalBlueCollar float64

	// Derived rates, zero-guarded.
	AssistPct   float64
	TurnoverPct float64
	TCRPct      float64
	OrebPct     float64
	FTRate      float64
	GoodShotPct float64
}

// OpponentTotals accumulates the opponent box score from the OPP STATS
// column on Defense rows.
type OpponentTotals struct {
	Points        int
	Assists       int
	SecondAssists int
	PotAssists    int
	Turnovers     int

	ATRMakes    int
	ATRAttempts int
	FG2Makes    int
	FG2Attempts int
	FG3Makes    int
	FG3Attempts int
	FTM         int
	FTA         int

	FoulBy          int
	Possessions     int
	TotalBlueCollar float64

	Blue BlueCollarLine
}

// addShotToken applies a shot token to opponent totals. Unrecognized and
// non-shot tokens are handled by the caller.
func (o *OpponentTotals) addShotToken(tok EventToken) bool {
	switch tok {
	case TokenATRMake:
		o.ATRMakes++
		o.ATRAttempts++
		o.Points += 2
	case TokenATRMiss:
		o.ATRAttempts++
	case Token2FGMake:
		o.FG2Makes++
		o.FG2Attempts++
		o.Points += 2
	case Token2FGMiss:
		o.FG2Attempts++
	case Token3FGMake:
		o.FG3Makes++
		o.FG3Attempts++
		o.Points += 3
	case Token3FGMiss:
		o.FG3Attempts++
	case TokenFTMake:
		o.FTM++
		o.FTA++
		o.Points++
	case TokenFTMiss:
		o.FTA++
	default:
		return false
	}
	return true
}
