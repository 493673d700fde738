package sim

import (
	"log/slog"
	"math/rand"
)

// framesPerSecond is the render rate the headless runner simulates.
const framesPerSecond = 60

// Headless runs a Session without a window: frames and clock seconds are
// advanced by the caller, so runs are reproducible for a given seed.
type Headless struct {
	Session *Session
	SimLog  *SimLog
	Seed    int64

	cfg     Config
	level   int
	verbose bool
	log     *slog.Logger
}

// HeadlessOption configures NewHeadless.
type HeadlessOption func(*Headless)

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) HeadlessOption {
	return func(h *Headless) { h.Seed = seed }
}

// WithLevel starts play at the given level instead of level 1.
func WithLevel(level int) HeadlessOption {
	return func(h *Headless) {
		if level > 0 {
			h.level = level
		}
	}
}

// WithConfig replaces the default tuning.
func WithConfig(cfg Config) HeadlessOption {
	return func(h *Headless) { h.cfg = cfg }
}

// WithVerbose enables per-frame movement entries in the SimLog.
func WithVerbose(v bool) HeadlessOption {
	return func(h *Headless) { h.verbose = v }
}

// WithLogger sets the slog logger; the default discards output.
func WithLogger(l *slog.Logger) HeadlessOption {
	return func(h *Headless) { h.log = l }
}

// NewHeadless builds a session and starts the requested level.
func NewHeadless(opts ...HeadlessOption) *Headless {
	h := &Headless{
		Seed:  1,
		cfg:   DefaultConfig(),
		level: 1,
	}
	for _, o := range opts {
		o(h)
	}
	if h.log == nil {
		h.log = slog.New(slog.DiscardHandler)
	}
	h.cfg.Validate()
	h.SimLog = NewSimLog(h.verbose)
	h.Session = NewSession(h.cfg, h.Seed, h.log, h.SimLog)
	h.Session.StartGame()
	if h.level > 1 {
		h.Session.startAtLevel(h.level)
	}
	return h
}

// startAtLevel rebuilds the session at level n, skipping earlier levels.
func (s *Session) startAtLevel(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.machine.jumpToLevel(n) {
		return
	}
	s.buildLevel()
}

// jumpToLevel resets PLAYING state to level n. Used by the headless harness.
func (m *Machine) jumpToLevel(n int) bool {
	if m.state.Phase != PhasePlaying || n < 1 {
		return false
	}
	next := m.levelStart(n)
	next.Epoch = m.state.Epoch + 1
	m.state = next
	return true
}

// RunFrames advances movement by n frames.
func (h *Headless) RunFrames(n int) {
	for i := 0; i < n; i++ {
		h.Session.Update(1.0 / framesPerSecond)
	}
}

// RunSeconds advances n seconds: a second of frames followed by a clock tick.
func (h *Headless) RunSeconds(n int) {
	for i := 0; i < n; i++ {
		h.RunFrames(framesPerSecond)
		h.Session.SecondTick()
	}
}

// RunUntil advances second by second until pred is true or maxSeconds pass.
// Returns the number of seconds run, or -1 when pred never held.
func (h *Headless) RunUntil(pred func(View) bool, maxSeconds int) int {
	for i := 1; i <= maxSeconds; i++ {
		h.RunSeconds(1)
		if pred(h.Session.View()) {
			return i
		}
	}
	return -1
}

// AutoPlayer is a scripted player used by tests and the headless report. It
// reads entity tags directly, so it plays like someone who knows the rules.
type AutoPlayer struct {
	Scenario      ScenarioKind // crisis to pick when conviction is short
	HerringChance float64      // chance to grab a red herring instead of a clue
	ClicksPerSec  int
	rng           *rand.Rand
}

// NewAutoPlayer returns a player with sensible defaults.
func NewAutoPlayer(seed int64) *AutoPlayer {
	return &AutoPlayer{ClicksPerSec: 1, rng: rand.New(rand.NewSource(seed))}
}

// Play drives the current level to a terminal phase and returns its outcome.
// maxSeconds bounds the run; an unfinished level yields an inconclusive outcome.
func (p *AutoPlayer) Play(h *Headless, maxSeconds int) Outcome {
	clicks := p.ClicksPerSec
	if clicks < 1 {
		clicks = 1
	}
	for sec := 0; sec < maxSeconds; sec++ {
		for c := 0; c < clicks; c++ {
			v := h.Session.View()
			if v.State.Terminal() {
				return *v.State.LastOutcome
			}
			p.step(h, v)
		}
		h.RunSeconds(1)
	}
	v := h.Session.View()
	if v.State.LastOutcome != nil && v.State.Terminal() {
		return *v.State.LastOutcome
	}
	return DetermineOutcome(v.State)
}

func (p *AutoPlayer) step(h *Headless, v View) {
	cfg := h.Session.Config()
	switch v.State.Phase {
	case PhasePlaying:
		if v.State.Conviction >= cfg.ArrestThreshold {
			h.Session.Click(v.State.KillerID)
			return
		}
		if id := p.pickEvidence(v); id != "" {
			h.Session.Click(id)
			return
		}
		h.Session.Click(v.State.KillerID)
	case PhaseConfrontation:
		if v.State.Conviction >= cfg.ArrestThreshold {
			h.Session.ResolveConfrontation(ChoiceArrest, ScenarioNone)
			return
		}
		h.Session.ResolveConfrontation(ChoiceRescue, p.Scenario)
	case PhaseScenarioActive:
		if id := crisisTarget(v); id != "" {
			h.Session.Click(id)
		}
	}
}

func (p *AutoPlayer) pickEvidence(v View) string {
	var crime, herring []string
	for _, d := range v.Decals {
		if d.Hidden {
			continue
		}
		switch evidenceQuality(&d) {
		case QualityCrime:
			crime = append(crime, d.ID)
		case QualityHerring:
			herring = append(herring, d.ID)
		}
	}
	if len(herring) > 0 && p.rng.Float64() < p.HerringChance {
		return herring[p.rng.Intn(len(herring))]
	}
	if len(crime) > 0 {
		return crime[p.rng.Intn(len(crime))]
	}
	return ""
}

// crisisTarget picks the next object that advances the active crisis.
func crisisTarget(v View) string {
	switch v.State.Scenario {
	case ScenarioPoison:
		for _, a := range v.Actors {
			if a.Infected {
				return a.ID
			}
		}
	case ScenarioRescue:
		for _, d := range v.Decals {
			if d.Kind == KindStash {
				return d.ID
			}
		}
	case ScenarioBomb:
		for _, d := range v.Decals {
			if d.Kind == KindDevicePart && !d.Hidden {
				return d.ID
			}
		}
		// Uncover before searching empty piles.
		for _, d := range v.Decals {
			if d.Kind == KindDebris && d.Covers != "" {
				return d.ID
			}
		}
	}
	return ""
}
