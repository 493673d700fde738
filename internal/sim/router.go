package sim

import (
	"math/rand"
	"strings"
)

// Handler names the part of the router that consumed a click.
type Handler uint8

const (
	HandlerNone Handler = iota
	HandlerCrisis
	HandlerDialogue
	HandlerEvidence
)

func (h Handler) String() string {
	switch h {
	case HandlerCrisis:
		return "crisis"
	case HandlerDialogue:
		return "dialogue"
	case HandlerEvidence:
		return "evidence"
	default:
		return "none"
	}
}

// Interaction is the result of one click, for the host to display.
type Interaction struct {
	Handler  Handler
	EntityID string
	Action   string        // e.g. "defused", "confront", "collected"
	Line     *DialogueLine // dialogue only
	Quality  Quality       // evidence only
}

// Handled reports whether any handler fired.
func (i Interaction) Handled() bool { return i.Handler != HandlerNone }

// Router decides what a click on an entity means. Only the first matching
// handler runs, in order: crisis, dialogue, evidence.
type Router struct {
	m   *Machine
	w   *World
	rng *rand.Rand
	cfg Config
}

// NewRouter binds a router to a machine and world.
func NewRouter(m *Machine, w *World, rng *rand.Rand, cfg Config) *Router {
	return &Router{m: m, w: w, rng: rng, cfg: cfg}
}

// Dispatch routes a click on id. Unknown, removed or hidden entities are ignored.
func (r *Router) Dispatch(id string) Interaction {
	a := r.w.actor(id)
	d := r.w.decal(id)
	if a == nil && d == nil {
		return Interaction{}
	}
	if d != nil && d.Hidden {
		return Interaction{}
	}

	phase := r.m.Phase()
	if phase == PhaseScenarioActive {
		if in, ok := r.crisis(a, d); ok {
			return in
		}
	}
	if phase == PhasePlaying && a != nil {
		return r.dialogue(a)
	}
	if d != nil && (phase == PhasePlaying || phase == PhaseScenarioActive) {
		return r.evidence(d)
	}
	return Interaction{}
}

func (r *Router) crisis(a *Actor, d *Decal) (Interaction, bool) {
	st := r.m.Snapshot()
	in := Interaction{Handler: HandlerCrisis}
	switch st.Scenario {
	case ScenarioBomb:
		if d == nil {
			return in, false
		}
		switch d.Kind {
		case KindDevicePart:
			in.EntityID, in.Action = d.ID, "defused"
			r.w.removeDecal(d.ID)
			r.m.ClearFlag(d.ID)
			r.m.ResolveCrisis(true)
			return in, true
		case KindDebris:
			in.EntityID, in.Action = d.ID, "searched"
			r.w.removeDecal(d.ID)
			if part := r.w.decal(d.Covers); part != nil {
				part.Hidden = false
				in.Action = "uncovered"
			}
			return in, true
		}
	case ScenarioPoison:
		if a != nil && a.Infected {
			in.EntityID, in.Action = a.ID, "cured"
			a.Infected = false
			a.Wait = r.cfg.WaitMin
			r.m.ClearFlag(a.ID)
			r.m.ResolveCrisis(true)
			return in, true
		}
	case ScenarioRescue:
		if d == nil {
			return in, false
		}
		switch d.Kind {
		case KindStash:
			in.EntityID, in.Action = d.ID, "recovered"
			r.w.removeDecal(d.ID)
			r.m.ClearFlag(d.ID)
			r.m.ResolveCrisis(true)
			return in, true
		case KindDecoy:
			in.EntityID, in.Action = d.ID, "decoy"
			r.w.removeDecal(d.ID)
			r.m.ResolveCrisis(false)
			return in, true
		}
	}
	return in, false
}

func (r *Router) dialogue(a *Actor) Interaction {
	in := Interaction{Handler: HandlerDialogue, EntityID: a.ID}
	if a.Kind == KindKiller {
		if r.m.TriggerConfrontation(a.ID) {
			in.Action = "confront"
		}
		return in
	}
	var killerPos *Point
	if k := r.w.actor(r.m.KillerID()); k != nil {
		p := k.Pos
		killerPos = &p
	}
	line := Speak(a, killerPos, r.rng, r.cfg.HintChance)
	in.Line = &line
	in.Action = "talk"
	if line.Hint {
		in.Action = "hint"
	}
	return in
}

func (r *Router) evidence(d *Decal) Interaction {
	q := evidenceQuality(d)
	if q == QualityNone {
		return Interaction{}
	}
	in := Interaction{Handler: HandlerEvidence, EntityID: d.ID, Quality: q}
	if q == QualityAmbiance {
		in.Action = "inspected"
		return in
	}
	r.m.LogEvidence(EvidenceEntry{ID: d.ID, Visual: d.Visual, Quality: q, Source: d.Source})
	r.w.removeDecal(d.ID)
	in.Action = "collected"
	return in
}

// Visual key prefixes that imply a quality on untagged decals.
var legacyPrefixes = []struct {
	prefix  string
	quality Quality
}{
	{"clue_", QualityCrime},
	{"herring_", QualityHerring},
	{"amb_", QualityAmbiance},
}

// evidenceQuality returns the decal's tag, falling back to its visual prefix.
func evidenceQuality(d *Decal) Quality {
	if d.Quality != QualityNone {
		return d.Quality
	}
	for _, p := range legacyPrefixes {
		if strings.HasPrefix(d.Visual, p.prefix) {
			return p.quality
		}
	}
	return QualityNone
}
