package sim

import (
	"log/slog"
	"math/rand"
)

// Machine owns the authoritative game State. Every operation reports whether
// it applied; an operation that is invalid for the current phase is a no-op.
// Machine is not safe for concurrent use; Session serialises access.
type Machine struct {
	cfg   Config
	rng   *rand.Rand
	log   *slog.Logger
	state State
}

// NewMachine returns a machine in IDLE.
func NewMachine(cfg Config, rng *rand.Rand, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.Default()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Machine{cfg: cfg, rng: rng, log: log}
}

// Snapshot returns a deep copy of the current state.
func (m *Machine) Snapshot() State { return m.state.Clone() }

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.state.Phase }

// Epoch returns the timer epoch. Ticks carrying an older epoch are ignored.
func (m *Machine) Epoch() uint64 { return m.state.Epoch }

// KillerID returns the published killer id, or "" before publication.
func (m *Machine) KillerID() string { return m.state.KillerID }

// commit swaps next in as the current state, bumping the epoch when the
// phase changed.
func (m *Machine) commit(next State) {
	prev := m.state.Phase
	if next.Phase != prev {
		next.Epoch = m.state.Epoch + 1
		m.log.Info("phase change",
			"from", prev.String(),
			"to", next.Phase.String(),
			"game_level", next.Level,
			"reason", next.Reason.String(),
		)
	}
	m.state = next
}

// levelStart is the fresh per-level state, carrying the running total.
func (m *Machine) levelStart(level int) State {
	return State{
		Phase:      PhasePlaying,
		Level:      level,
		LevelTimer: m.cfg.LevelSecondsFor(level),
		TotalScore: m.state.TotalScore,
		Debug:      m.state.Debug,
		Epoch:      m.state.Epoch,
	}
}

// StartGame begins a new game at level 1 from IDLE or GAME_OVER.
func (m *Machine) StartGame() bool {
	switch m.state.Phase {
	case PhaseIdle, PhaseGameOver:
	default:
		return false
	}
	next := m.levelStart(1)
	next.TotalScore = 0
	m.commit(next)
	return true
}

// NextLevel advances from LEVEL_COMPLETE to the next PLAYING round.
func (m *Machine) NextLevel() bool {
	if m.state.Phase != PhaseLevelComplete {
		return false
	}
	next := m.levelStart(m.state.Level + 1)
	next.LastOutcome = m.state.Clone().LastOutcome
	m.commit(next)
	return true
}

// ReturnToMenu goes back to IDLE from a finished level.
func (m *Machine) ReturnToMenu() bool {
	if !m.state.Terminal() {
		return false
	}
	prev := m.state.Clone()
	m.commit(State{
		Phase:       PhaseIdle,
		TotalScore:  prev.TotalScore,
		LastOutcome: prev.LastOutcome,
		Debug:       prev.Debug,
		Epoch:       prev.Epoch,
	})
	return true
}

// PublishKiller records the killer for the current level. Only the first call
// per level applies, so the identity can never be recomputed.
func (m *Machine) PublishKiller(id string, arch Archetype) bool {
	if m.state.Phase != PhasePlaying || m.state.KillerID != "" || id == "" {
		return false
	}
	next := m.state.Clone()
	next.KillerID = id
	next.KillerArchetype = arch
	m.commit(next)
	return true
}

// TickTimer applies one elapsed second. epoch must match the current epoch,
// so a tick scheduled before a phase change is dropped.
func (m *Machine) TickTimer(epoch uint64) bool {
	if epoch != m.state.Epoch {
		return false
	}
	next := m.state.Clone()
	switch next.Phase {
	case PhasePlaying:
		next.LevelTimer--
		next.Panic = clampMeter(next.Panic + m.cfg.PanicPerSecond)
		if next.LevelTimer <= 0 {
			next.LevelTimer = 0
			m.fail(&next, ReasonTimeout)
		}
	case PhaseScenarioActive:
		next.CrisisTimer--
		if next.CrisisTimer <= 0 {
			next.CrisisTimer = 0
			m.fail(&next, ReasonCrisisExpired)
		}
	default:
		return false
	}
	m.commit(next)
	return true
}

// TriggerConfrontation moves to CONFRONTATION when id is the killer.
func (m *Machine) TriggerConfrontation(id string) bool {
	if m.state.Phase != PhasePlaying || m.state.KillerID == "" || id != m.state.KillerID {
		return false
	}
	next := m.state.Clone()
	next.Phase = PhaseConfrontation
	m.commit(next)
	return true
}

// ResolveConfrontation applies the player's choice. An arrest succeeds only
// with enough conviction. Rescue starts the given scenario, or a random one
// for ScenarioNone; placing the scenario's objects is the caller's job.
func (m *Machine) ResolveConfrontation(choice Choice, scenario ScenarioKind) bool {
	if m.state.Phase != PhaseConfrontation {
		return false
	}
	next := m.state.Clone()
	switch choice {
	case ChoiceArrest:
		if next.Conviction >= m.cfg.ArrestThreshold {
			m.complete(&next, ReasonArrested)
		} else {
			m.fail(&next, ReasonInsufficientEvidence)
		}
	case ChoiceRescue:
		if scenario == ScenarioNone || scenario > ScenarioRescue {
			scenario = ScenarioKind(1 + m.rng.Intn(int(ScenarioRescue)))
		}
		next.Phase = PhaseScenarioActive
		next.Scenario = scenario
		next.CrisisTimer = m.cfg.CrisisSeconds
		next.Progress = 0
		next.Target = m.cfg.ScenarioTargets
		next.Flagged = nil
	default:
		return false
	}
	m.commit(next)
	return true
}

// ResolveCrisis records one crisis interaction. A success advances progress
// and completes the level at the target; a failure ends the game.
func (m *Machine) ResolveCrisis(success bool) bool {
	if m.state.Phase != PhaseScenarioActive {
		return false
	}
	next := m.state.Clone()
	if !success {
		m.fail(&next, ReasonCrisisFailed)
		m.commit(next)
		return true
	}
	next.Progress++
	if next.Progress >= next.Target {
		m.complete(&next, ReasonResolved)
	}
	m.commit(next)
	return true
}

// LogEvidence records a collected clue. Crime evidence adds conviction,
// herrings cost panic and a mistake, ambiance is ignored.
func (m *Machine) LogEvidence(e EvidenceEntry) bool {
	switch m.state.Phase {
	case PhasePlaying, PhaseScenarioActive:
	default:
		return false
	}
	next := m.state.Clone()
	switch e.Quality {
	case QualityCrime:
		next.Conviction = clampMeter(next.Conviction + m.cfg.CrimeCredit)
	case QualityHerring:
		next.Mistakes++
		next.Panic = clampMeter(next.Panic + m.cfg.HerringPanic)
	default:
		return false
	}
	next.Ledger = append(next.Ledger, e)
	if over := len(next.Ledger) - m.cfg.LedgerCapacity; over > 0 {
		next.Ledger = next.Ledger[over:]
	}
	m.commit(next)
	return true
}

// FlagEntities sets the scenario's target ids. When fewer objects could be
// placed than the configured target, the target shrinks to match so the
// crisis stays winnable.
func (m *Machine) FlagEntities(ids []string) bool {
	if m.state.Phase != PhaseScenarioActive || len(ids) == 0 {
		return false
	}
	next := m.state.Clone()
	next.Flagged = append([]string(nil), ids...)
	if remaining := next.Target - next.Progress; len(ids) < remaining {
		next.Target = next.Progress + len(ids)
	}
	m.commit(next)
	return true
}

// ClearFlag removes id from the flagged set.
func (m *Machine) ClearFlag(id string) bool {
	if !m.state.IsFlagged(id) {
		return false
	}
	next := m.state.Clone()
	out := next.Flagged[:0]
	for _, f := range next.Flagged {
		if f != id {
			out = append(out, f)
		}
	}
	next.Flagged = out
	m.commit(next)
	return true
}

// ToggleDebug flips the inspection overlay flag. Valid in any phase.
func (m *Machine) ToggleDebug() bool {
	next := m.state.Clone()
	next.Debug = !next.Debug
	m.commit(next)
	return true
}

func (m *Machine) complete(next *State, reason Reason) {
	next.Phase = PhaseLevelComplete
	next.Reason = reason
	o := DetermineOutcome(*next)
	next.LastOutcome = &o
	next.TotalScore += o.Score
}

func (m *Machine) fail(next *State, reason Reason) {
	next.Phase = PhaseGameOver
	next.Reason = reason
	o := DetermineOutcome(*next)
	next.LastOutcome = &o
}

func clampMeter(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
