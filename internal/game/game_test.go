package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/Park-Sleuth/internal/logger"
	"github.com/Garsondee/Park-Sleuth/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGame builds a host around a playing session without starting the
// clock or loading fonts, so no window is needed.
func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	s := sim.NewSession(sim.DefaultConfig(), seed, logger.Discard(), nil)
	require.True(t, s.StartGame())
	ww, wh := s.Config().WorldSize()
	return &Game{
		session:    s,
		log:        logger.Discard(),
		gameWidth:  int(ww),
		gameHeight: int(wh),
		offX:       borderWidth,
		offY:       borderWidth,
		copyText:   func(string) error { return nil },
	}
}

func TestPickEntity_NearestWithinRadius(t *testing.T) {
	v := sim.View{
		Actors: []sim.Actor{{ID: "a1", Pos: sim.Point{X: 100, Y: 100}}},
		Decals: []sim.Decal{
			{ID: "d1", Pos: sim.Point{X: 110, Y: 100}},
			{ID: "d2", Pos: sim.Point{X: 200, Y: 200}, Hidden: true},
		},
	}
	assert.Equal(t, "a1", pickEntity(v, 102, 100, pickRadius))
	assert.Equal(t, "d1", pickEntity(v, 109, 100, pickRadius))
	assert.Empty(t, pickEntity(v, 300, 300, pickRadius))
	assert.Empty(t, pickEntity(v, 200, 200, pickRadius), "hidden decals are not pickable")
}

func TestPickEntity_ActorWinsTie(t *testing.T) {
	v := sim.View{
		Actors: []sim.Actor{{ID: "a1", Pos: sim.Point{X: 50, Y: 50}}},
		Decals: []sim.Decal{{ID: "d1", Pos: sim.Point{X: 50, Y: 50}}},
	}
	assert.Equal(t, "a1", pickEntity(v, 50, 50, pickRadius))
}

func TestScreenToWorld(t *testing.T) {
	g := newTestGame(t, 1)
	x, y, ok := g.screenToWorld(borderWidth+10, borderWidth+20)
	require.True(t, ok)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)

	_, _, ok = g.screenToWorld(2, 2)
	assert.False(t, ok, "border is outside the park")
	_, _, ok = g.screenToWorld(borderWidth+g.gameWidth+5, borderWidth)
	assert.False(t, ok, "feed panel is outside the park")
}

func TestClickAt_TalksToCivilian(t *testing.T) {
	g := newTestGame(t, 2)
	v := g.session.View()
	var civ sim.Actor
	for _, a := range v.Actors {
		if a.Kind == sim.KindCivilian {
			civ = a
			break
		}
	}
	require.NotEmpty(t, civ.ID)

	// Aim exactly at the civilian; only it can be at distance zero unless
	// another entity shares the spot, in which case the actor still wins.
	g.clickAt(g.offX+int(civ.Pos.X), g.offY+int(civ.Pos.Y))
	require.NotEmpty(t, g.bubbles, "dialogue opens a bubble")
	assert.NotEmpty(t, g.bubbles[0].lines)
	assert.Equal(t, sim.PhasePlaying, g.session.View().State.Phase)
}

func TestExecute_ConfrontationFlow(t *testing.T) {
	g := newTestGame(t, 3)
	s := g.session
	assert.False(t, g.execute(cmdArrest), "no confrontation yet")
	assert.False(t, g.execute(cmdStart), "already playing")

	s.Click(s.View().State.KillerID)
	require.Equal(t, sim.PhaseConfrontation, s.View().State.Phase)
	require.True(t, g.execute(cmdRescuePoison))
	st := s.View().State
	assert.Equal(t, sim.PhaseScenarioActive, st.Phase)
	assert.Equal(t, sim.ScenarioPoison, st.Scenario)

	for _, id := range append([]string(nil), st.Flagged...) {
		s.Click(id)
	}
	require.Equal(t, sim.PhaseLevelComplete, s.View().State.Phase)
	require.True(t, g.execute(cmdStart), "enter advances a completed level")
	assert.Equal(t, 2, s.View().State.Level)
}

func TestExecute_ArrestWithoutEvidenceFails(t *testing.T) {
	g := newTestGame(t, 4)
	s := g.session
	s.Click(s.View().State.KillerID)
	require.True(t, g.execute(cmdArrest))
	st := s.View().State
	assert.Equal(t, sim.PhaseGameOver, st.Phase)
	assert.Equal(t, sim.ReasonInsufficientEvidence, st.Reason)

	g.say("x", "hello")
	require.True(t, g.execute(cmdMenu))
	assert.Empty(t, g.bubbles, "menu clears bubbles")
	assert.Equal(t, sim.PhaseIdle, s.View().State.Phase)
}

func TestExecute_CopyReport(t *testing.T) {
	g := newTestGame(t, 5)
	var copied string
	g.copyText = func(s string) error { copied = s; return nil }
	require.True(t, g.execute(cmdCopyReport))
	assert.Contains(t, copied, "seed=5")
	assert.Equal(t, "debug report copied", g.status)

	g.copyText = func(string) error { return errors.New("no display") }
	assert.False(t, g.execute(cmdCopyReport))
	assert.Equal(t, "clipboard unavailable", g.status)
}

func TestExecute_ToggleDebug(t *testing.T) {
	g := newTestGame(t, 6)
	require.True(t, g.execute(cmdToggleDebug))
	assert.True(t, g.session.View().State.Debug)
	lines := inspectorLines(g.session.View(), "")
	assert.Contains(t, lines[0], "phase PLAYING")
	assert.Contains(t, strings.Join(lines, "\n"), "(hover an entity)")
}

func TestInspectorLines_Hover(t *testing.T) {
	g := newTestGame(t, 7)
	v := g.session.View()
	killer := v.State.KillerID
	text := strings.Join(inspectorLines(v, killer), "\n")
	assert.Contains(t, text, "killer")
	assert.Contains(t, text, v.State.KillerArchetype.DisplayName())
}

func TestSpeechBubbles_ReplaceAndExpire(t *testing.T) {
	g := newTestGame(t, 8)
	g.say("a", "first")
	g.say("b", "other")
	g.say("a", "a much longer line that certainly needs wrapping inside a bubble")
	require.Len(t, g.bubbles, 2)
	assert.Equal(t, "b", g.bubbles[0].actorID)
	assert.Greater(t, len(g.bubbles[1].lines), 1)
	for _, l := range g.bubbles[1].lines {
		assert.LessOrEqual(t, len(l), speechWrapCols)
	}

	for i := 0; i < speechLifetime; i++ {
		g.tickBubbles()
	}
	assert.Empty(t, g.bubbles)
}

func TestWrapFeed(t *testing.T) {
	entries := []sim.FeedEntry{
		{Message: "Level 1: a body was found in the park. Find the killer."},
		{Speaker: "Jogger Red", Message: "I saw someone heading north."},
	}
	rows := wrapFeed(entries, 20, 1)
	require.NotEmpty(t, rows)
	assert.True(t, rows[0].narrate)
	assert.False(t, rows[0].fresh)

	var spoken []feedLine
	for _, r := range rows {
		if !r.narrate {
			spoken = append(spoken, r)
		}
	}
	require.NotEmpty(t, spoken)
	assert.True(t, spoken[0].speaker)
	assert.True(t, strings.HasPrefix(spoken[0].text, "Jogger Red:"))
	assert.True(t, spoken[len(spoken)-1].fresh)
}

func TestPhasePrompt(t *testing.T) {
	title, _ := phasePrompt(sim.State{Phase: sim.PhasePlaying})
	assert.Empty(t, title)

	title, lines := phasePrompt(sim.State{Phase: sim.PhaseGameOver, Reason: sim.ReasonCrisisExpired})
	assert.Equal(t, "GAME OVER", title)
	assert.Equal(t, "crisis expired", lines[0])

	title, lines = phasePrompt(sim.State{Phase: sim.PhaseConfrontation, Conviction: 40})
	assert.Equal(t, "CONFRONTATION", title)
	assert.Contains(t, lines[0], "40/100")
}

func TestOverlayButtons_ConfrontationChoices(t *testing.T) {
	g := newTestGame(t, 9)
	s := g.session
	assert.Empty(t, g.overlayButtons(s.View().State), "no buttons while playing")

	s.Click(s.View().State.KillerID)
	buttons := g.overlayButtons(s.View().State)
	require.Len(t, buttons, 4)
	assert.Equal(t, cmdArrest, buttons[0].cmd)
	for i := 1; i < len(buttons); i++ {
		assert.Greater(t, buttons[i].x, buttons[i-1].x+buttons[i-1].w, "buttons must not overlap")
	}

	bomb := buttons[1]
	g.clickAt(int(bomb.x+bomb.w/2), int(bomb.y+bomb.h/2))
	st := s.View().State
	assert.Equal(t, sim.PhaseScenarioActive, st.Phase)
	assert.Equal(t, sim.ScenarioBomb, st.Scenario)
}

func TestOverlayButtons_MenuAfterGameOver(t *testing.T) {
	g := newTestGame(t, 10)
	s := g.session
	for s.View().State.Phase == sim.PhasePlaying {
		s.SecondTick()
	}
	require.Equal(t, sim.PhaseGameOver, s.View().State.Phase)
	buttons := g.overlayButtons(s.View().State)
	require.Len(t, buttons, 2)
	menu := buttons[1]
	g.clickAt(int(menu.x+1), int(menu.y+1))
	assert.Equal(t, sim.PhaseIdle, s.View().State.Phase)
}
