package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine(DefaultConfig(), rand.New(rand.NewSource(1)), discardLogger())
	require.True(t, m.StartGame())
	require.True(t, m.PublishKiller("killer-1", Archetype{Key: "jogger_red"}))
	return m
}

func TestMachine_StartGame(t *testing.T) {
	m := NewMachine(DefaultConfig(), nil, discardLogger())
	assert.Equal(t, PhaseIdle, m.Phase())
	require.True(t, m.StartGame())

	st := m.Snapshot()
	assert.Equal(t, PhasePlaying, st.Phase)
	assert.Equal(t, 1, st.Level)
	assert.Equal(t, 30, st.LevelTimer)
	assert.False(t, m.StartGame(), "already playing")
}

func TestMachine_PublishKillerOnce(t *testing.T) {
	m := newTestMachine(t)
	assert.False(t, m.PublishKiller("other", Archetype{Key: "x"}))
	assert.Equal(t, "killer-1", m.KillerID())
	assert.Equal(t, "jogger_red", m.Snapshot().KillerArchetype.Key)
}

func TestMachine_TickTimer(t *testing.T) {
	m := newTestMachine(t)
	for i := 0; i < 5; i++ {
		require.True(t, m.TickTimer(m.Epoch()))
	}
	st := m.Snapshot()
	assert.Equal(t, 25, st.LevelTimer)
	assert.Equal(t, 5, st.Panic)
	assert.Equal(t, PhasePlaying, st.Phase)

	assert.False(t, m.TickTimer(m.Epoch()-1), "stale epoch")
	assert.Equal(t, 25, m.Snapshot().LevelTimer)
}

func TestMachine_Timeout(t *testing.T) {
	m := newTestMachine(t)
	for i := 0; i < 30; i++ {
		m.TickTimer(m.Epoch())
	}
	st := m.Snapshot()
	assert.Equal(t, PhaseGameOver, st.Phase)
	assert.Equal(t, ReasonTimeout, st.Reason)
	require.NotNil(t, st.LastOutcome)
	assert.Equal(t, ResultFailed, st.LastOutcome.Result)
	assert.False(t, m.TickTimer(m.Epoch()), "no timer in GAME_OVER")
}

func TestMachine_PhaseChangeBumpsEpoch(t *testing.T) {
	m := newTestMachine(t)
	before := m.Epoch()
	m.TickTimer(before)
	assert.Equal(t, before, m.Epoch(), "ticks inside a phase keep the epoch")

	require.True(t, m.TriggerConfrontation("killer-1"))
	assert.Equal(t, before+1, m.Epoch())
	assert.False(t, m.TickTimer(before), "tick queued in PLAYING is dropped")
}

func TestMachine_Confrontation(t *testing.T) {
	m := newTestMachine(t)
	assert.False(t, m.TriggerConfrontation("civilian"))
	assert.False(t, m.ResolveConfrontation(ChoiceArrest, ScenarioNone), "not in confrontation")
	require.True(t, m.TriggerConfrontation("killer-1"))
	assert.Equal(t, PhaseConfrontation, m.Phase())
	assert.False(t, m.TickTimer(m.Epoch()), "timers pause during confrontation")
}

func TestMachine_ArrestNeedsConviction(t *testing.T) {
	t.Run("insufficient", func(t *testing.T) {
		m := newTestMachine(t)
		m.LogEvidence(EvidenceEntry{ID: "c1", Quality: QualityCrime})
		require.True(t, m.TriggerConfrontation("killer-1"))
		require.True(t, m.ResolveConfrontation(ChoiceArrest, ScenarioNone))
		st := m.Snapshot()
		assert.Equal(t, PhaseGameOver, st.Phase)
		assert.Equal(t, ReasonInsufficientEvidence, st.Reason)
		assert.Zero(t, st.TotalScore)
	})
	t.Run("sufficient", func(t *testing.T) {
		m := newTestMachine(t)
		m.LogEvidence(EvidenceEntry{ID: "c1", Quality: QualityCrime})
		m.LogEvidence(EvidenceEntry{ID: "c2", Quality: QualityCrime})
		m.TickTimer(m.Epoch())
		require.True(t, m.TriggerConfrontation("killer-1"))
		require.True(t, m.ResolveConfrontation(ChoiceArrest, ScenarioNone))
		st := m.Snapshot()
		assert.Equal(t, PhaseLevelComplete, st.Phase)
		assert.Equal(t, ReasonArrested, st.Reason)
		// 100*1 + 10*29 + 50
		assert.Equal(t, 440, st.LastOutcome.Score)
		assert.Equal(t, 440, st.TotalScore)
	})
}

func TestMachine_LogEvidence(t *testing.T) {
	m := newTestMachine(t)
	assert.True(t, m.LogEvidence(EvidenceEntry{ID: "c1", Quality: QualityCrime}))
	assert.True(t, m.LogEvidence(EvidenceEntry{ID: "h1", Quality: QualityHerring}))
	assert.False(t, m.LogEvidence(EvidenceEntry{ID: "a1", Quality: QualityAmbiance}))

	st := m.Snapshot()
	assert.Equal(t, 25, st.Conviction)
	assert.Equal(t, 1, st.Mistakes)
	assert.Equal(t, 10, st.Panic)
	require.Len(t, st.Ledger, 2)
	assert.Equal(t, "c1", st.Ledger[0].ID)
	assert.Equal(t, "h1", st.Ledger[1].ID)
}

func TestMachine_ConvictionAndLedgerCaps(t *testing.T) {
	m := newTestMachine(t)
	for i := 0; i < 10; i++ {
		m.LogEvidence(EvidenceEntry{ID: string(rune('a' + i)), Quality: QualityCrime})
	}
	st := m.Snapshot()
	assert.Equal(t, 100, st.Conviction)
	require.Len(t, st.Ledger, 8)
	assert.Equal(t, "c", st.Ledger[0].ID, "oldest entries dropped first")
	assert.Equal(t, "j", st.Ledger[7].ID)
}

func TestMachine_SnapshotIsDeepCopy(t *testing.T) {
	m := newTestMachine(t)
	m.LogEvidence(EvidenceEntry{ID: "c1", Quality: QualityCrime})
	snap := m.Snapshot()
	snap.Ledger[0].ID = "tampered"
	snap.Conviction = 99
	assert.Equal(t, "c1", m.Snapshot().Ledger[0].ID)
	assert.Equal(t, 25, m.Snapshot().Conviction)
}

func TestMachine_EachMutationReplacesState(t *testing.T) {
	m := newTestMachine(t)
	m.TriggerConfrontation("killer-1")
	m.ResolveConfrontation(ChoiceRescue, ScenarioRescue)
	m.FlagEntities([]string{"s1", "s2", "s3"})

	held := m.Snapshot()
	raw := m.state.Flagged
	require.True(t, m.ClearFlag("s2"))
	assert.Equal(t, []string{"s1", "s2", "s3"}, raw, "published flag slice edited in place")
	assert.Equal(t, []string{"s1", "s2", "s3"}, held.Flagged)
	assert.Equal(t, []string{"s1", "s3"}, m.Snapshot().Flagged)
}

func TestMachine_CrisisFlow(t *testing.T) {
	m := newTestMachine(t)
	require.True(t, m.TriggerConfrontation("killer-1"))
	require.True(t, m.ResolveConfrontation(ChoiceRescue, ScenarioBomb))

	st := m.Snapshot()
	assert.Equal(t, PhaseScenarioActive, st.Phase)
	assert.Equal(t, ScenarioBomb, st.Scenario)
	assert.Equal(t, 20, st.CrisisTimer)
	assert.Equal(t, 3, st.Target)

	require.True(t, m.FlagEntities([]string{"p1", "p2", "p3"}))
	require.True(t, m.ClearFlag("p1"))
	assert.False(t, m.ClearFlag("p1"))
	assert.True(t, m.ResolveCrisis(true))
	assert.True(t, m.ResolveCrisis(true))
	assert.Equal(t, PhaseScenarioActive, m.Phase())
	assert.True(t, m.ResolveCrisis(true))

	st = m.Snapshot()
	assert.Equal(t, PhaseLevelComplete, st.Phase)
	assert.Equal(t, ReasonResolved, st.Reason)
	assert.Equal(t, 100+10*30+150, st.LastOutcome.Score)
	assert.False(t, m.ResolveCrisis(true), "no crisis any more")
}

func TestMachine_CrisisExpires(t *testing.T) {
	m := newTestMachine(t)
	m.TriggerConfrontation("killer-1")
	m.ResolveConfrontation(ChoiceRescue, ScenarioPoison)
	m.ResolveCrisis(true)
	m.ResolveCrisis(true)
	for i := 0; i < 20; i++ {
		m.TickTimer(m.Epoch())
	}
	st := m.Snapshot()
	assert.Equal(t, PhaseGameOver, st.Phase)
	assert.Equal(t, ReasonCrisisExpired, st.Reason)
	assert.Equal(t, 30, st.LevelTimer, "level timer frozen during the crisis")
}

func TestMachine_CrisisFailure(t *testing.T) {
	m := newTestMachine(t)
	m.TriggerConfrontation("killer-1")
	m.ResolveConfrontation(ChoiceRescue, ScenarioRescue)
	require.True(t, m.ResolveCrisis(false))
	assert.Equal(t, ReasonCrisisFailed, m.Snapshot().Reason)
}

func TestMachine_RandomScenario(t *testing.T) {
	seen := map[ScenarioKind]bool{}
	for seed := int64(0); seed < 40; seed++ {
		m := NewMachine(DefaultConfig(), rand.New(rand.NewSource(seed)), discardLogger())
		m.StartGame()
		m.PublishKiller("k", Archetype{})
		m.TriggerConfrontation("k")
		m.ResolveConfrontation(ChoiceRescue, ScenarioNone)
		kind := m.Snapshot().Scenario
		require.NotEqual(t, ScenarioNone, kind)
		seen[kind] = true
	}
	assert.Len(t, seen, 3)
}

func TestMachine_FlagEntitiesShrinksTarget(t *testing.T) {
	m := newTestMachine(t)
	m.TriggerConfrontation("killer-1")
	m.ResolveConfrontation(ChoiceRescue, ScenarioPoison)
	require.True(t, m.FlagEntities([]string{"a", "b"}))
	assert.Equal(t, 2, m.Snapshot().Target)
}

func TestMachine_LevelLoop(t *testing.T) {
	m := newTestMachine(t)
	assert.False(t, m.NextLevel())
	m.LogEvidence(EvidenceEntry{ID: "c1", Quality: QualityCrime})
	m.LogEvidence(EvidenceEntry{ID: "c2", Quality: QualityCrime})
	m.TriggerConfrontation("killer-1")
	m.ResolveConfrontation(ChoiceArrest, ScenarioNone)
	total := m.Snapshot().TotalScore

	require.True(t, m.NextLevel())
	st := m.Snapshot()
	assert.Equal(t, 2, st.Level)
	assert.Equal(t, 28, st.LevelTimer)
	assert.Zero(t, st.Conviction)
	assert.Empty(t, st.Ledger)
	assert.Empty(t, st.KillerID, "new level needs a new killer")
	assert.Equal(t, total, st.TotalScore)
	assert.True(t, m.PublishKiller("killer-2", Archetype{}))
}

func TestMachine_ReturnToMenuAndRestart(t *testing.T) {
	m := newTestMachine(t)
	assert.False(t, m.ReturnToMenu(), "level still running")
	for i := 0; i < 30; i++ {
		m.TickTimer(m.Epoch())
	}
	require.True(t, m.ReturnToMenu())
	assert.Equal(t, PhaseIdle, m.Phase())
	require.True(t, m.StartGame())
	assert.Equal(t, 1, m.Snapshot().Level)
}

func TestMachine_ToggleDebugAnyPhase(t *testing.T) {
	m := NewMachine(DefaultConfig(), nil, discardLogger())
	require.True(t, m.ToggleDebug())
	assert.True(t, m.Snapshot().Debug)
	m.StartGame()
	assert.True(t, m.Snapshot().Debug, "debug survives a new game")
	m.ToggleDebug()
	assert.False(t, m.Snapshot().Debug)
}
