package sim

// Phase is the top-level game phase.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseConfrontation
	PhaseScenarioActive
	PhaseLevelComplete
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhasePlaying:
		return "PLAYING"
	case PhaseConfrontation:
		return "CONFRONTATION"
	case PhaseScenarioActive:
		return "SCENARIO_ACTIVE"
	case PhaseLevelComplete:
		return "LEVEL_COMPLETE"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// ScenarioKind is the crisis started by choosing rescue over arrest.
type ScenarioKind uint8

const (
	ScenarioNone   ScenarioKind = iota // pick one at random
	ScenarioBomb                       // uncover and defuse device parts
	ScenarioPoison                     // cure infected bystanders
	ScenarioRescue                     // recover stashed evidence, avoid decoys
)

func (s ScenarioKind) String() string {
	switch s {
	case ScenarioBomb:
		return "BOMB"
	case ScenarioPoison:
		return "POISON"
	case ScenarioRescue:
		return "RESCUE"
	default:
		return "NONE"
	}
}

// Choice is the player's decision in CONFRONTATION.
type Choice uint8

const (
	ChoiceArrest Choice = iota
	ChoiceRescue
)

func (c Choice) String() string {
	if c == ChoiceRescue {
		return "rescue"
	}
	return "arrest"
}

// Reason explains how a level ended.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonArrested
	ReasonResolved
	ReasonTimeout
	ReasonCrisisExpired
	ReasonCrisisFailed
	ReasonInsufficientEvidence
)

func (r Reason) String() string {
	switch r {
	case ReasonArrested:
		return "arrested"
	case ReasonResolved:
		return "resolved"
	case ReasonTimeout:
		return "timeout"
	case ReasonCrisisExpired:
		return "crisis_expired"
	case ReasonCrisisFailed:
		return "crisis_failed"
	case ReasonInsufficientEvidence:
		return "insufficient_evidence"
	default:
		return "none"
	}
}

// EvidenceEntry is one collected clue in the ledger.
type EvidenceEntry struct {
	ID      string
	Visual  string
	Quality Quality
	Source  string // vignette name
}

// State is the whole game record. The Machine never edits a published State
// in place; every transition builds a fresh value and swaps it in.
type State struct {
	Phase       Phase
	Level       int
	LevelTimer  int // seconds
	CrisisTimer int // seconds, only meaningful in SCENARIO_ACTIVE
	Panic       int // 0-100
	Conviction  int // 0-100
	Mistakes    int
	Ledger      []EvidenceEntry

	KillerID        string
	KillerArchetype Archetype

	Scenario ScenarioKind
	Progress int
	Target   int
	Flagged  []string

	Reason      Reason
	LastOutcome *Outcome
	TotalScore  int

	Debug bool
	Epoch uint64 // bumped on every phase change
}

// Clone returns a deep copy.
func (s State) Clone() State {
	c := s
	if s.Ledger != nil {
		c.Ledger = append([]EvidenceEntry(nil), s.Ledger...)
	}
	if s.Flagged != nil {
		c.Flagged = append([]string(nil), s.Flagged...)
	}
	if s.LastOutcome != nil {
		o := *s.LastOutcome
		c.LastOutcome = &o
	}
	return c
}

// IsFlagged reports whether id is part of the active scenario's target set.
func (s State) IsFlagged(id string) bool {
	for _, f := range s.Flagged {
		if f == id {
			return true
		}
	}
	return false
}

// Terminal reports whether the level is over.
func (s State) Terminal() bool {
	return s.Phase == PhaseLevelComplete || s.Phase == PhaseGameOver
}
