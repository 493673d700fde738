package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Garsondee/Park-Sleuth/internal/config"
	"github.com/Garsondee/Park-Sleuth/internal/logger"
	"github.com/Garsondee/Park-Sleuth/internal/sim"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// levelStats is one played level of one run.
type levelStats struct {
	runIndex int
	seed     int64
	outcome  sim.Outcome

	hints     int
	collected int
	herrings  int
	crisisHit int // progress clicks during a crisis
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Padding(0, 1)
	solvedStyle = cellStyle.Foreground(lipgloss.Color("2"))
	failedStyle = cellStyle.Foreground(lipgloss.Color("1"))
	border      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

func main() {
	var runs int
	var levels int
	var seconds int
	var seedBase int64
	var seedStep int64
	var scenario string
	var herring float64
	var simConfig string

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&levels, "levels", 3, "maximum levels per run; a run stops at its first failure")
	flag.IntVar(&seconds, "seconds", 120, "seconds allowed per level before it counts as inconclusive")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "random", "crisis the auto-player picks when evidence is short (bomb, poison, rescue, random)")
	flag.Float64Var(&herring, "herring", 0.15, "chance the auto-player grabs a red herring")
	flag.StringVar(&simConfig, "config", "", "optional YAML overlay for simulation tuning")
	flag.Parse()

	if runs <= 0 || levels <= 0 || seconds <= 0 {
		fmt.Println("error: -runs, -levels and -seconds must be > 0")
		os.Exit(2)
	}
	kind, err := parseScenario(scenario)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(2)
	}

	log := logger.Setup(config.Load())
	cfg, err := sim.LoadConfig(simConfig)
	if err != nil {
		logger.WithError(log, err).Error("load sim config")
		os.Exit(1)
	}

	fmt.Printf("=== Headless Park Report ===\n")
	fmt.Printf("runs=%d levels=%d seconds=%d seed_base=%d seed_step=%d scenario=%s herring=%.2f\n\n",
		runs, levels, seconds, seedBase, seedStep, kind, herring)

	var all []levelStats
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		all = append(all, playRun(i+1, seed, levels, seconds, kind, herring, cfg)...)
	}

	fmt.Println(renderTable(all))
	fmt.Println()
	printAggregate(all)
}

// parseScenario maps a flag value to a crisis kind. "random" leaves the
// choice to the state machine.
func parseScenario(name string) (sim.ScenarioKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "random", "", "none":
		return sim.ScenarioNone, nil
	case "bomb":
		return sim.ScenarioBomb, nil
	case "poison":
		return sim.ScenarioPoison, nil
	case "rescue":
		return sim.ScenarioRescue, nil
	default:
		return sim.ScenarioNone, fmt.Errorf("unsupported scenario %q (supported: bomb, poison, rescue, random)", name)
	}
}

// playRun plays up to levels levels on one seed and returns a row per level.
func playRun(runIndex int, seed int64, levels, seconds int, kind sim.ScenarioKind, herring float64, cfg sim.Config) []levelStats {
	h := sim.NewHeadless(sim.WithSeed(seed), sim.WithConfig(cfg))
	p := sim.NewAutoPlayer(seed)
	p.Scenario = kind
	p.HerringChance = herring

	var out []levelStats
	for lvl := 1; lvl <= levels; lvl++ {
		mark := len(h.SimLog.Entries())
		o := p.Play(h, seconds)
		ls := levelStats{runIndex: runIndex, seed: seed, outcome: o}
		countClicks(&ls, h.SimLog.Entries()[mark:])
		out = append(out, ls)
		if o.Result != sim.ResultSolved || !h.Session.NextLevel() {
			break
		}
	}
	return out
}

// countClicks tallies click events for one level.
func countClicks(ls *levelStats, entries []sim.SimLogEntry) {
	for _, e := range entries {
		if e.Category != "click" {
			continue
		}
		switch e.Key {
		case "hint":
			ls.hints++
		case "collected":
			if e.Value == sim.HandlerEvidence.String() {
				ls.collected++
			}
		case "defused", "cured", "recovered":
			ls.crisisHit++
		}
	}
	ls.herrings = ls.outcome.Mistakes
}

func renderTable(all []levelStats) string {
	rows := make([][]string, 0, len(all))
	for _, ls := range all {
		o := ls.outcome
		scenario := "-"
		if o.Scenario != sim.ScenarioNone {
			scenario = fmt.Sprintf("%s %d", o.Scenario, ls.crisisHit)
		}
		rows = append(rows, []string{
			strconv.Itoa(ls.runIndex),
			strconv.FormatInt(ls.seed, 10),
			strconv.Itoa(o.Level),
			o.Result.String(),
			o.Reason.String(),
			scenario,
			strconv.Itoa(o.Conviction),
			strconv.Itoa(ls.collected),
			strconv.Itoa(ls.herrings),
			strconv.Itoa(ls.hints),
			strconv.Itoa(o.TimeLeft),
			strconv.Itoa(o.Score),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		BorderHeader(true).
		BorderRow(false).
		Headers("Run", "Seed", "Lvl", "Result", "Reason", "Crisis", "Conv", "Clues", "Herr", "Hints", "Left", "Score").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 3 && row >= 0 && row < len(all) {
				switch all[row].outcome.Result {
				case sim.ResultSolved:
					return solvedStyle
				case sim.ResultFailed:
					return failedStyle
				}
			}
			return cellStyle
		})
	return t.Render()
}

// aggregate is the cross-run summary.
type aggregate struct {
	levels       int
	solved       int
	failed       int
	inconclusive int
	arrests      int
	crises       int
	reasons      map[sim.Reason]int
	totalScore   int
	avgConv      float64
	avgLeft      float64
}

func summarize(all []levelStats) aggregate {
	a := aggregate{levels: len(all), reasons: map[sim.Reason]int{}}
	convSum, leftSum := 0, 0
	for _, ls := range all {
		o := ls.outcome
		switch o.Result {
		case sim.ResultSolved:
			a.solved++
		case sim.ResultFailed:
			a.failed++
		default:
			a.inconclusive++
		}
		switch o.Reason {
		case sim.ReasonArrested:
			a.arrests++
		case sim.ReasonResolved:
			a.crises++
		}
		if o.Reason != sim.ReasonNone {
			a.reasons[o.Reason]++
		}
		a.totalScore += o.Score
		convSum += o.Conviction
		leftSum += o.TimeLeft
	}
	a.avgConv = avg(convSum, len(all))
	a.avgLeft = avg(leftSum, len(all))
	return a
}

func printAggregate(all []levelStats) {
	a := summarize(all)
	fmt.Printf("=== Aggregate ===\n")
	fmt.Printf("levels=%d solved=%d failed=%d inconclusive=%d solve_rate=%.0f%%\n",
		a.levels, a.solved, a.failed, a.inconclusive, 100*avg(a.solved, a.levels))
	fmt.Printf("solved_by: arrest=%d crisis=%d\n", a.arrests, a.crises)
	fmt.Printf("avg_per_level: conviction=%.1f time_left=%.1f\n", a.avgConv, a.avgLeft)
	fmt.Printf("reasons: %s\n", formatReasons(a.reasons))
	fmt.Printf("total_score=%d\n", a.totalScore)
}

// formatReasons lists reason counts in enum order.
func formatReasons(m map[sim.Reason]int) string {
	var parts []string
	for r := sim.ReasonNone; r <= sim.ReasonInsufficientEvidence; r++ {
		if n := m[r]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", r, n))
		}
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, " ")
}

func avg(sum int, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
