package sportscode

import (
	"regexp"
	"strings"
)

// Event tokens recognized in tagged cells. The video-tagging export is
// free text, so every cell goes through SplitTokens and then ClassifyToken;
// anything the classifier does not know collapses into TokenUnrecognized and
// is dropped by the row processors.
type EventToken int

const (
	TokenUnrecognized EventToken = iota

	// Shot attempts
	TokenATRMake
	TokenATRMiss
	Token2FGMake
	Token2FGMiss
	Token3FGMake
	Token3FGMiss
	TokenFTMake
	TokenFTMiss

	// Counting stats
	TokenAssist
	TokenPotAssist
	TokenSecondAssist
	TokenTurnover
	TokenFouled

	// Blue-collar plays
	TokenRebTip
	TokenDefReb
	TokenMisc
	TokenDeflection
	TokenSteal
	TokenBlock
	TokenOffReb
	TokenFloorDive
	TokenChargeTaken

	// Practice sprints
	TokenSprintWin
	TokenSprintLoss

	// Defensive contest grades
	TokenContestFront
	TokenContestSide
	TokenContestBehind
	TokenContestLate
	TokenContestEarly
	TokenNoContest
	TokenFoulBy

	// Collision / gap help
	TokenBumpPlus
	TokenBumpMinus
	TokenGapPlus
	TokenGapMinus
	TokenLowPlus
	TokenLowMinus
	TokenPassContestPlus
	TokenPassContestMinus

	// Blowby breakdown
	TokenBlowby
	TokenBlowbyTripleThreat
	TokenBlowbyCloseout
	TokenBlowbyIsolation

	// Pick-and-roll grades
	TokenCloseWindowPlus
	TokenCloseWindowMinus
	TokenShutDoorPlus
	TokenShutDoorMinus

	// Rebounding opportunities
	TokenCrashPlus
	TokenCrashMinus
	TokenBackManPlus
	TokenBackManMinus
	TokenBoxOutPlus
	TokenBoxOutMinus
	TokenGivenUp
)

// ClassifyToken maps one normalized cell token to its event. Matching is
// case-sensitive on purpose: the tagging tool emits these labels verbatim and
// loose matching has historically credited the wrong stat.
func ClassifyToken(token string) EventToken {
	switch token {
	case "ATR+":
		return TokenATRMake
	case "ATR-":
		return TokenATRMiss
	case "2FG+":
		return Token2FGMake
	case "2FG-":
		return Token2FGMiss
	case "3FG+":
		return Token3FGMake
	case "3FG-":
		return Token3FGMiss
	case "FT+":
		return TokenFTMake
	case "FT-":
		return TokenFTMiss
	case "Assist":
		return TokenAssist
	case "Pot. Assist":
		return TokenPotAssist
	case "2nd Assist":
		return TokenSecondAssist
	case "Turnover":
		return TokenTurnover
	case "Fouled", "Foul":
		return TokenFouled
	case "Reb Tip":
		return TokenRebTip
	case "Def Reb":
		return TokenDefReb
	case "Misc":
		return TokenMisc
	case "Deflection":
		return TokenDeflection
	case "LB / Steal":
		return TokenSteal
	case "Block":
		return TokenBlock
	case "Off Reb":
		return TokenOffReb
	case "Floor Dive":
		return TokenFloorDive
	case "Charge Taken":
		return TokenChargeTaken
	case "Sprint Win":
		return TokenSprintWin
	case "Sprint Loss":
		return TokenSprintLoss
	case "Front":
		return TokenContestFront
	case "Side":
		return TokenContestSide
	case "Behind":
		return TokenContestBehind
	case "Late":
		return TokenContestLate
	case "Contest":
		return TokenContestEarly
	case "No Contest", "None":
		return TokenNoContest
	case "Foul By":
		return TokenFoulBy
	case "Bump +":
		return TokenBumpPlus
	case "Bump -":
		return TokenBumpMinus
	case "Gap +":
		return TokenGapPlus
	case "Gap -":
		return TokenGapMinus
	case "Low +":
		return TokenLowPlus
	case "Low -":
		return TokenLowMinus
	case "Contest Pass +":
		return TokenPassContestPlus
	case "Contest Pass -":
		return TokenPassContestMinus
	case "Blowby":
		return TokenBlowby
	case "Triple Threat":
		return TokenBlowbyTripleThreat
	case "Closeout":
		return TokenBlowbyCloseout
	case "Isolation":
		return TokenBlowbyIsolation
	case "CW +":
		return TokenCloseWindowPlus
	case "CW -":
		return TokenCloseWindowMinus
	case "SD +":
		return TokenShutDoorPlus
	case "SD -":
		return TokenShutDoorMinus
	case "Off +":
		return TokenCrashPlus
	case "Off -":
		return TokenCrashMinus
	case "BM +":
		return TokenBackManPlus
	case "BM -":
		return TokenBackManMinus
	case "Def +":
		return TokenBoxOutPlus
	case "Def -":
		return TokenBoxOutMinus
	case "Given Up":
		return TokenGivenUp
	}
	return TokenUnrecognized
}

// PointValue returns the points a made-shot token is worth, 0 for anything
// that does not score.
func PointValue(tok EventToken) int {
	switch tok {
	case TokenATRMake, Token2FGMake:
		return 2
	case Token3FGMake:
		return 3
	case TokenFTMake:
		return 1
	}
	return 0
}

// BlueCollarWeights is the fixed point table for hustle plays. It is a
// package constant in spirit: nothing may reassign or mutate it at runtime.
var BlueCollarWeights = map[string]float64{
	"reb_tip":      0.5,
	"def_reb":      1.0,
	"misc":         1.0,
	"deflection":   1.0,
	"steal":        1.0,
	"block":        1.0,
	"off_reb":      1.5,
	"floor_dive":   2.0,
	"charge_taken": 4.0,
}

// blueCollarKeys maps blue-collar tokens to their accumulator field names.
var blueCollarKeys = map[EventToken]string{
	TokenRebTip:      "reb_tip",
	TokenDefReb:      "def_reb",
	TokenMisc:        "misc",
	TokenDeflection:  "deflection",
	TokenSteal:       "steal",
	TokenBlock:       "block",
	TokenOffReb:      "off_reb",
	TokenFloorDive:   "floor_dive",
	TokenChargeTaken: "charge_taken",
}

var dashReplacer = strings.NewReplacer(
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

var separatorReplacer = strings.NewReplacer(
	";", ",",
	"\n", ",",
	"\r", ",",
	"\t", ",",
)

// NormalizeCell folds Unicode dash variants to ASCII hyphen and collapses
// runs of whitespace, so "Bump –" and "Bump -" classify identically.
func NormalizeCell(s string) string {
	return strings.Join(strings.Fields(dashReplacer.Replace(s)), " ")
}

// SplitTokens breaks a raw spreadsheet cell into trimmed, non-empty tokens.
// Semicolons, newlines, carriage returns, and tabs all act as commas.
func SplitTokens(cell string) []string {
	s := separatorReplacer.Replace(dashReplacer.Replace(cell))
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var tokens []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Bump and low-man labels also show up embedded in longer free-text cells,
// so they are counted with word-boundary patterns rather than exact tokens.
var (
	bumpPlusPat   = regexp.MustCompile(`(?i)\bBump\s*\+(\W|$)`)
	bumpMinusPat  = regexp.MustCompile(`(?i)\bBump\s*-(\W|$)`)
	lowManPlusPat = regexp.MustCompile(`(?i)\bLow\s*Man\s*\+(\W|$)`)
	lowManMinPat  = regexp.MustCompile(`(?i)\bLow\s*Man\s*-(\W|$)`)
)

// CountBumpTokens counts "Bump +" / "Bump -" occurrences across cells,
// tolerating dash variants and stray spacing. A cell containing the label
// twice counts twice.
func CountBumpTokens(cells []string) (plus, minus int) {
	for _, raw := range cells {
		s := NormalizeCell(raw)
		if s == "" {
			continue
		}
		plus += len(bumpPlusPat.FindAllString(s, -1))
		minus += len(bumpMinusPat.FindAllString(s, -1))
	}
	return plus, minus
}

// CountLowManTokens counts "Low Man +" / "Low Man -" occurrences.
func CountLowManTokens(cells []string) (plus, minus int) {
	for _, raw := range cells {
		s := NormalizeCell(raw)
		if s == "" {
			continue
		}
		plus += len(lowManPlusPat.FindAllString(s, -1))
		minus += len(lowManMinPat.FindAllString(s, -1))
	}
	return plus, minus
}
