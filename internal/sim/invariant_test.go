package sim

import (
	"testing"
)

// --- Invariant helpers ---

// checkActorsWalkable fails if any actor stands on a solid tile.
func checkActorsWalkable(t *testing.T, v View, second int) {
	t.Helper()
	if v.Layout == nil {
		return
	}
	for _, a := range v.Actors {
		if v.Layout.IsSolidAt(a.Pos.X, a.Pos.Y) {
			col, row := v.Layout.WorldToTile(a.Pos.X, a.Pos.Y)
			t.Fatalf("second %d: %s (%s) on solid %s tile (%d,%d)",
				second, a.Label(), a.Kind, v.Layout.Map.Kind(col, row), col, row)
		}
	}
}

// checkSingleKiller fails unless exactly one actor is the published killer.
func checkSingleKiller(t *testing.T, v View, want string) {
	t.Helper()
	if v.Layout == nil {
		return
	}
	killers := 0
	for _, a := range v.Actors {
		if a.Kind == KindKiller {
			killers++
			if a.ID != want {
				t.Fatalf("killer id changed: %s → %s", shortID(want), a.Label())
			}
		}
	}
	if killers != 1 {
		t.Fatalf("expected exactly 1 killer, found %d", killers)
	}
}

// --- Invariant suite ---

func TestInvariant_FullLevels(t *testing.T) {
	scenarios := []ScenarioKind{ScenarioBomb, ScenarioPoison, ScenarioRescue, ScenarioNone}
	for seed := int64(1); seed <= 12; seed++ {
		h := NewHeadless(WithSeed(seed), WithVerbose(true))
		p := NewAutoPlayer(seed)
		p.Scenario = scenarios[int(seed)%len(scenarios)]
		p.HerringChance = 0.2

		killer := h.Session.View().State.KillerID
		for sec := 0; sec < 90; sec++ {
			v := h.Session.View()
			checkActorsWalkable(t, v, sec)
			checkSingleKiller(t, v, killer)
			if v.State.Terminal() {
				break
			}
			p.step(h, v)
			h.RunSeconds(1)
		}
		st := h.Session.View().State
		if !st.Terminal() {
			t.Errorf("seed %d: level never finished (phase %s)\n%s", seed, st.Phase, h.SimLog.Format())
		}
	}
}

func TestInvariant_WanderForAMinute(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LevelSeconds = 120
	for seed := int64(100); seed < 106; seed++ {
		h := NewHeadless(WithSeed(seed), WithConfig(cfg))
		for sec := 0; sec < 60; sec++ {
			h.RunFrames(framesPerSecond)
			checkActorsWalkable(t, h.Session.View(), sec)
		}
	}
}

func TestInvariant_WorldCounts(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		h := NewHeadless(WithSeed(seed))
		w := h.Session.world
		if got := w.CountKind(KindKiller); got != 1 {
			t.Fatalf("seed %d: %d killers", seed, got)
		}
		if got := w.CountKind(KindCivilian); got != CivilianCount(h.Session.Config(), 1) {
			t.Fatalf("seed %d: %d civilians", seed, got)
		}
		if w.killer() == nil || w.killer().ID != h.Session.View().State.KillerID {
			t.Fatalf("seed %d: world killer does not match published killer", seed)
		}
	}
}

func TestAutoPlayer_FinishesLevels(t *testing.T) {
	solved := 0
	for seed := int64(1); seed <= 10; seed++ {
		h := NewHeadless(WithSeed(seed))
		p := NewAutoPlayer(seed)
		p.Scenario = ScenarioPoison
		o := p.Play(h, 90)
		if o.Result == ResultInconclusive {
			t.Errorf("seed %d: inconclusive outcome %s", seed, o)
		}
		if o.Result == ResultSolved {
			solved++
		}
	}
	if solved == 0 {
		t.Errorf("auto player never solved a level")
	}
}
