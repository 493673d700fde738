package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"

	"github.com/Garsondee/Park-Sleuth/internal/logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// View is a read-only copy of everything a renderer needs for one frame.
type View struct {
	Layout *Layout // shared; never mutated after generation
	Actors []Actor
	Decals []Decal
	State  State
	Feed   []FeedEntry
	Tick   int
}

// CountDecals returns how many decals of kind k are in the view.
func (v View) CountDecals(k EntityKind) int {
	n := 0
	for _, d := range v.Decals {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Session is the simulation context for one player. It owns the world, the
// state machine and the router; all public methods serialise on one mutex so
// the frame loop, the clock and clicks never see partial state.
type Session struct {
	mu sync.Mutex

	cfg     Config
	seed    int64
	rng     *rand.Rand
	log     *slog.Logger
	machine *Machine
	world   *World
	router  *Router
	simLog  *SimLog
	feed    *Feed
	tick    int
}

// NewSession creates a session in IDLE. A nil logger uses slog.Default; a nil
// simLog disables structured event recording.
func NewSession(cfg Config, seed int64, log *slog.Logger, simLog *SimLog) *Session {
	if log == nil {
		log = slog.Default()
	}
	if simLog == nil {
		simLog = NewSimLog(false)
	}
	rng := rand.New(rand.NewSource(seed))
	m := NewMachine(cfg, rng, log)
	w := &World{}
	return &Session{
		cfg:     cfg,
		seed:    seed,
		rng:     rng,
		log:     log.With("seed", seed),
		machine: m,
		world:   w,
		router:  NewRouter(m, w, rng, cfg),
		simLog:  simLog,
		feed:    NewFeed(cfg.FeedSize),
	}
}

// Config returns the session's tuning.
func (s *Session) Config() Config { return s.cfg }

// SimLog returns the structured event log.
func (s *Session) SimLog() *SimLog { return s.simLog }

// StartGame starts level 1.
func (s *Session) StartGame() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.machine.StartGame() {
		return false
	}
	s.buildLevel()
	return true
}

// NextLevel starts the following level after a completed one.
func (s *Session) NextLevel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.machine.NextLevel() {
		return false
	}
	s.buildLevel()
	return true
}

// ReturnToMenu leaves a finished level and clears the world.
func (s *Session) ReturnToMenu() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.machine.ReturnToMenu() {
		return false
	}
	s.world.Layout, s.world.Actors, s.world.Decals = nil, nil, nil
	s.feed.Reset()
	s.event("--", "phase", "menu", "", 0)
	return true
}

// buildLevel generates a fresh layout and population for the machine's
// current level. Caller holds mu.
func (s *Session) buildLevel() {
	st := s.machine.Snapshot()
	lvlLog := logger.WithLevel(s.log, st.Level)

	layout := NewLevelLayout(s.rng, s.cfg, lvlLog)
	pop := Populate(st.Level, layout, s.rng, s.cfg, func(id string, arch Archetype) {
		s.machine.PublishKiller(id, arch)
	}, lvlLog)

	s.world.Layout = layout
	s.world.Actors = pop.Actors
	s.world.Decals = pop.Decals
	s.tick = 0
	s.feed.Reset()

	s.event("--", "phase", "level_start", fmt.Sprintf("level %d", st.Level), float64(st.Level))
	s.event(shortID(pop.KillerID), "spawn", "killer", s.machine.Snapshot().KillerArchetype.Key, 0)
	s.event("--", "spawn", "decals", fmt.Sprintf("%d decals", len(pop.Decals)), float64(len(pop.Decals)))
	s.feed.Add(0, "", fmt.Sprintf("Level %d: a body was found in the park. Find the killer.", st.Level))
	lvlLog.Info("level built",
		"actors", len(pop.Actors),
		"decals", len(pop.Decals),
		"timer", st.LevelTimer,
	)
}

// Update advances movement by dt seconds. Only live phases move actors.
func (s *Session) Update(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	phase := s.machine.Phase()
	switch phase {
	case PhasePlaying, PhaseConfrontation, PhaseScenarioActive:
	default:
		return
	}
	s.tick++
	killerFrozen := phase != PhasePlaying
	stats := Steer(s.world.Actors, s.world.Layout, dt, s.rng, s.cfg, func(a *Actor) bool {
		return a.Infected || (killerFrozen && a.Kind == KindKiller)
	})
	if stats.Aborted > 0 {
		s.simLog.AddVerbose(s.tick, "--", "move", "aborted", "", float64(stats.Aborted))
	}
}

// Epoch returns the machine's timer epoch.
func (s *Session) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Epoch()
}

// TickTimer applies one clock second if epoch is still current.
func (s *Session) TickTimer(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.machine.Phase()
	if !s.machine.TickTimer(epoch) {
		return false
	}
	st := s.machine.Snapshot()
	if st.Phase != before {
		s.endLevel(st)
	}
	return true
}

// SecondTick applies one clock second against the current epoch.
func (s *Session) SecondTick() bool {
	return s.TickTimer(s.Epoch())
}

// Click routes a click on an entity id.
func (s *Session) Click(id string) Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.machine.Phase()
	in := s.router.Dispatch(id)
	if !in.Handled() {
		return in
	}
	st := s.machine.Snapshot()
	s.event(shortID(id), "click", in.Action, in.Handler.String(), float64(st.Progress))
	s.narrate(in)
	if st.Phase != before {
		switch st.Phase {
		case PhaseConfrontation:
			s.feed.Add(s.tick, "", "You confront the suspect. Arrest them, or stop what they set in motion?")
		case PhaseLevelComplete, PhaseGameOver:
			s.endLevel(st)
		}
	}
	return in
}

// ResolveConfrontation applies the arrest/rescue choice and, on rescue, lays
// out the chosen crisis.
func (s *Session) ResolveConfrontation(choice Choice, scenario ScenarioKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.machine.ResolveConfrontation(choice, scenario) {
		return false
	}
	st := s.machine.Snapshot()
	if st.Phase != PhaseScenarioActive {
		s.endLevel(st)
		return true
	}
	ids := setupScenario(s.world, st.Scenario, s.rng, s.cfg)
	s.machine.FlagEntities(ids)
	s.event("--", "crisis", "start", st.Scenario.String(), float64(len(ids)))
	s.feed.Add(s.tick, "", crisisBriefing(st.Scenario, st.CrisisTimer))
	return true
}

// ToggleDebug flips the inspection flag.
func (s *Session) ToggleDebug() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.ToggleDebug()
}

// View returns a deep copy of the current world and state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		Layout: s.world.Layout,
		Actors: make([]Actor, len(s.world.Actors)),
		Decals: make([]Decal, len(s.world.Decals)),
		State:  s.machine.Snapshot(),
		Feed:   s.feed.Recent(),
		Tick:   s.tick,
	}
	for i, a := range s.world.Actors {
		v.Actors[i] = a.clone()
	}
	for i, d := range s.world.Decals {
		v.Decals[i] = *d
	}
	return v
}

// DebugReport renders a plain-text dump of the session for bug reports.
func (s *Session) DebugReport() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.machine.Snapshot()

	var b strings.Builder
	fmt.Fprintf(&b, "--- Park Sleuth debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d epoch=%d\n", s.seed, s.tick, st.Epoch)
	fmt.Fprintf(&b, "phase=%s level=%d timer=%d crisis=%d panic=%d conviction=%d mistakes=%d\n",
		st.Phase, st.Level, st.LevelTimer, st.CrisisTimer, st.Panic, st.Conviction, st.Mistakes)
	fmt.Fprintf(&b, "killer=%s (%s)\n", shortID(st.KillerID), st.KillerArchetype.Key)
	if st.Scenario != ScenarioNone {
		fmt.Fprintf(&b, "scenario=%s progress=%d/%d flagged=%d\n", st.Scenario, st.Progress, st.Target, len(st.Flagged))
	}
	if st.LastOutcome != nil {
		fmt.Fprintf(&b, "last_outcome: %s\n", st.LastOutcome)
	}

	b.WriteString("\n== ledger ==\n")
	if len(st.Ledger) == 0 {
		b.WriteString("(empty)\n")
	}
	for i, e := range st.Ledger {
		fmt.Fprintf(&b, "%2d %-8s %-8s %-18s %s\n", i, shortID(e.ID), e.Quality, e.Visual, e.Source)
	}

	b.WriteString("\n== actors ==\n")
	for _, a := range s.world.Actors {
		dest := "-"
		if a.Dest != nil {
			dest = fmt.Sprintf("(%.0f,%.0f)", a.Dest.X, a.Dest.Y)
		}
		col, row := s.world.Layout.WorldToTile(a.Pos.X, a.Pos.Y)
		fmt.Fprintf(&b, "%-8s %-8s %-20s tile=(%d,%d) dest=%s wait=%.1f infected=%v\n",
			a.Label(), a.Kind, a.Archetype.Key, col, row, dest, a.Wait, a.Infected)
	}

	counts := map[EntityKind]int{}
	hidden := 0
	for _, d := range s.world.Decals {
		counts[d.Kind]++
		if d.Hidden {
			hidden++
		}
	}
	b.WriteString("\n== decals ==\n")
	for k := EntityKind(0); k < entityKindCount; k++ {
		if k.Category() != CategoryDecal || counts[k] == 0 {
			continue
		}
		fmt.Fprintf(&b, "%-12s %d\n", k, counts[k])
	}
	fmt.Fprintf(&b, "hidden       %d\n", hidden)
	return b.String()
}

// endLevel records a terminal transition. Caller holds mu.
func (s *Session) endLevel(st State) {
	if st.LastOutcome == nil {
		return
	}
	o := *st.LastOutcome
	s.event("--", "phase", st.Phase.String(), o.String(), float64(o.Score))
	switch st.Phase {
	case PhaseLevelComplete:
		s.feed.Add(s.tick, "", fmt.Sprintf("Case closed (%s). +%d points.", st.Reason, o.Score))
	case PhaseGameOver:
		s.feed.Add(s.tick, "", "Game over: "+strings.ReplaceAll(st.Reason.String(), "_", " ")+".")
	}
	s.log.Info("level ended", "game_level", st.Level, "result", o.Result.String(), "reason", st.Reason.String(), "score", o.Score)
}

// narrate turns an interaction into a feed line. Caller holds mu.
func (s *Session) narrate(in Interaction) {
	switch in.Handler {
	case HandlerDialogue:
		if in.Line == nil {
			return
		}
		speaker := ""
		if a := s.world.actor(in.EntityID); a != nil {
			speaker = a.Archetype.DisplayName()
		}
		s.feed.Add(s.tick, speaker, in.Line.Text)
	case HandlerEvidence:
		switch in.Quality {
		case QualityCrime:
			s.feed.Add(s.tick, "", "Evidence logged. Conviction rises.")
		case QualityHerring:
			s.feed.Add(s.tick, "", "A red herring. The crowd grows uneasy.")
		}
	case HandlerCrisis:
		switch in.Action {
		case "uncovered":
			s.feed.Add(s.tick, "", "Something is hidden under the debris!")
		case "decoy":
			s.feed.Add(s.tick, "", "It was a decoy.")
		case "defused", "cured", "recovered":
			st := s.machine.Snapshot()
			s.feed.Add(s.tick, "", fmt.Sprintf("%s %d/%d.", cases.Title(language.English).String(in.Action), st.Progress, st.Target))
		}
	}
}

func (s *Session) event(entity, category, key, value string, num float64) {
	s.simLog.Add(s.tick, entity, category, key, value, num)
}

func crisisBriefing(kind ScenarioKind, seconds int) string {
	switch kind {
	case ScenarioBomb:
		return fmt.Sprintf("A bomb is hidden in the debris. Defuse every part in %ds.", seconds)
	case ScenarioPoison:
		return fmt.Sprintf("Bystanders have been poisoned. Cure them in %ds.", seconds)
	case ScenarioRescue:
		return fmt.Sprintf("The evidence was stashed. Recover it in %ds, and beware decoys.", seconds)
	default:
		return ""
	}
}
