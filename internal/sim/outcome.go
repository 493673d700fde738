package sim

import "fmt"

// LevelResult is the coarse end state of a level.
type LevelResult uint8

const (
	ResultInconclusive LevelResult = iota
	ResultSolved
	ResultFailed
)

func (r LevelResult) String() string {
	switch r {
	case ResultSolved:
		return "solved"
	case ResultFailed:
		return "failed"
	default:
		return "inconclusive"
	}
}

// Outcome summarises a finished level.
type Outcome struct {
	Level      int
	Result     LevelResult
	Reason     Reason
	Scenario   ScenarioKind
	TimeLeft   int
	Conviction int
	Mistakes   int
	Evidence   int // ledger entries at the end of the level
	Score      int
}

// Scoring weights.
const (
	scorePerLevel      = 100
	scorePerSecondLeft = 10
	scorePerMistake    = 25
	scoreCrisisBonus   = 150
)

// DetermineOutcome scores the level described by s. Failed levels score 0.
func DetermineOutcome(s State) Outcome {
	o := Outcome{
		Level:      s.Level,
		Reason:     s.Reason,
		Scenario:   s.Scenario,
		TimeLeft:   s.LevelTimer,
		Conviction: s.Conviction,
		Mistakes:   s.Mistakes,
		Evidence:   len(s.Ledger),
	}
	switch s.Phase {
	case PhaseLevelComplete:
		o.Result = ResultSolved
	case PhaseGameOver:
		o.Result = ResultFailed
		return o
	default:
		return o
	}

	score := scorePerLevel*s.Level + scorePerSecondLeft*s.LevelTimer + s.Conviction - scorePerMistake*s.Mistakes
	if s.Reason == ReasonResolved {
		score += scoreCrisisBonus
	}
	if score < 0 {
		score = 0
	}
	o.Score = score
	return o
}

func (o Outcome) String() string {
	s := fmt.Sprintf("level %d %s (%s) conviction=%d mistakes=%d time_left=%ds score=%d",
		o.Level, o.Result, o.Reason, o.Conviction, o.Mistakes, o.TimeLeft, o.Score)
	if o.Scenario != ScenarioNone {
		s += " scenario=" + o.Scenario.String()
	}
	return s
}
