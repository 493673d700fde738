package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/Park-Sleuth/internal/sim"
)

func TestParseScenario(t *testing.T) {
	cases := map[string]sim.ScenarioKind{
		"bomb":    sim.ScenarioBomb,
		" Poison": sim.ScenarioPoison,
		"rescue":  sim.ScenarioRescue,
		"random":  sim.ScenarioNone,
		"":        sim.ScenarioNone,
	}
	for in, want := range cases {
		got, err := parseScenario(in)
		if err != nil {
			t.Fatalf("parseScenario(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("parseScenario(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := parseScenario("flood"); err == nil {
		t.Fatalf("expected error for unknown scenario")
	}
}

func TestCountClicks(t *testing.T) {
	entries := []sim.SimLogEntry{
		{Category: "click", Key: "hint", Value: "dialogue"},
		{Category: "click", Key: "talk", Value: "dialogue"},
		{Category: "click", Key: "collected", Value: "evidence"},
		{Category: "click", Key: "collected", Value: "evidence"},
		{Category: "click", Key: "defused", Value: "crisis"},
		{Category: "phase", Key: "level_start"},
	}
	ls := levelStats{outcome: sim.Outcome{Mistakes: 1}}
	countClicks(&ls, entries)
	if ls.hints != 1 || ls.collected != 2 || ls.crisisHit != 1 || ls.herrings != 1 {
		t.Fatalf("unexpected tallies: %+v", ls)
	}
}

func TestSummarize(t *testing.T) {
	all := []levelStats{
		{outcome: sim.Outcome{Result: sim.ResultSolved, Reason: sim.ReasonArrested, Conviction: 60, TimeLeft: 10, Score: 200}},
		{outcome: sim.Outcome{Result: sim.ResultSolved, Reason: sim.ReasonResolved, Conviction: 20, TimeLeft: 20, Score: 300}},
		{outcome: sim.Outcome{Result: sim.ResultFailed, Reason: sim.ReasonTimeout}},
		{outcome: sim.Outcome{Result: sim.ResultInconclusive}},
	}
	a := summarize(all)
	if a.levels != 4 || a.solved != 2 || a.failed != 1 || a.inconclusive != 1 {
		t.Fatalf("unexpected result counts: %+v", a)
	}
	if a.arrests != 1 || a.crises != 1 {
		t.Fatalf("expected one arrest and one crisis, got %d/%d", a.arrests, a.crises)
	}
	if a.totalScore != 500 {
		t.Fatalf("expected total score 500, got %d", a.totalScore)
	}
	if a.avgConv != 20 || a.avgLeft != 7.5 {
		t.Fatalf("unexpected averages conv=%.1f left=%.1f", a.avgConv, a.avgLeft)
	}
	if got := formatReasons(a.reasons); got != "arrested=1 resolved=1 timeout=1" {
		t.Fatalf("unexpected reasons line: %s", got)
	}
}

func TestPlayRun_StopsAtFirstFailure(t *testing.T) {
	rows := playRun(1, 42, 3, 120, sim.ScenarioPoison, 0, sim.DefaultConfig())
	if len(rows) == 0 || len(rows) > 3 {
		t.Fatalf("expected 1..3 levels, got %d", len(rows))
	}
	for i, r := range rows {
		if r.outcome.Level != i+1 {
			t.Fatalf("row %d has level %d", i, r.outcome.Level)
		}
		if i < len(rows)-1 && r.outcome.Result != sim.ResultSolved {
			t.Fatalf("run continued past a %s level", r.outcome.Result)
		}
	}

	out := renderTable(rows)
	if !strings.Contains(out, "Score") || !strings.Contains(out, "42") {
		t.Fatalf("table missing header or seed:\n%s", out)
	}
}
