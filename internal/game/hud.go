package game

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/Garsondee/Park-Sleuth/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	feedPanelWidth = 340
	feedWrapCols   = 44 // characters per feed line at feedFontSize
	feedFontSize   = 13
	feedLineHeight = 17
	hudFontSize    = 15
	titleFontSize  = 28
)

// fontSet holds the faces the HUD draws with. All share one parsed source.
type fontSet struct {
	small *text.GoTextFace
	hud   *text.GoTextFace
	title *text.GoTextFace
}

func loadFonts() (*fontSet, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	return &fontSet{
		small: &text.GoTextFace{Source: src, Size: feedFontSize},
		hud:   &text.GoTextFace{Source: src, Size: hudFontSize},
		title: &text.GoTextFace{Source: src, Size: titleFontSize},
	}, nil
}

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = face.Size * 1.3
	text.Draw(dst, s, face, op)
}

// drawCentered draws s horizontally centred on cx.
func drawCentered(dst *ebiten.Image, s string, face *text.GoTextFace, cx, y float64, clr color.Color) {
	w, _ := text.Measure(s, face, face.Size*1.3)
	drawText(dst, s, face, cx-w/2, y, clr)
}

// feedLine is one wrapped row of the feed panel.
type feedLine struct {
	text    string
	speaker bool // first row of a spoken message
	narrate bool // system narration, no speaker
	fresh   bool
}

// wrapFeed flattens the newest entries into display rows, oldest first.
// Speaker lines are prefixed with the speaker's name.
func wrapFeed(entries []sim.FeedEntry, cols, fresh int) []feedLine {
	var out []feedLine
	for i, e := range entries {
		msg := e.Message
		if e.Speaker != "" {
			msg = e.Speaker + ": " + msg
		}
		isFresh := i >= len(entries)-fresh
		for j, row := range strings.Split(wordwrap.String(msg, cols), "\n") {
			out = append(out, feedLine{
				text:    row,
				speaker: j == 0 && e.Speaker != "",
				narrate: e.Speaker == "",
				fresh:   isFresh,
			})
		}
	}
	return out
}

// drawFeed renders the message feed on the right side of the screen.
func (g *Game) drawFeed(screen *ebiten.Image, v sim.View, panelX, panelH int) {
	px, ph := float32(panelX), float32(panelH)
	vector.FillRect(screen, px, 0, feedPanelWidth, ph, color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, px, 0, px, ph, 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	// Title bar.
	vector.FillRect(screen, px, 0, feedPanelWidth, 22, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	drawText(screen, "CASE NOTES", g.fonts.small, float64(panelX+8), 3, color.RGBA{R: 170, G: 200, B: 170, A: 255})
	vector.StrokeLine(screen, px, 22, px+feedPanelWidth, 22, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	rows := wrapFeed(v.Feed, feedWrapCols, 2)
	maxVisible := (panelH - 30) / feedLineHeight
	if len(rows) > maxVisible {
		rows = rows[len(rows)-maxVisible:]
	}

	y := 28
	for _, r := range rows {
		if r.fresh {
			vector.FillRect(screen, px+2, float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		clr := color.RGBA{R: 150, G: 160, B: 150, A: 255}
		switch {
		case r.speaker:
			clr = color.RGBA{R: 235, G: 215, B: 140, A: 255}
		case r.narrate && r.fresh:
			clr = color.RGBA{R: 230, G: 240, B: 230, A: 255}
		}
		if r.speaker || r.narrate {
			dot := color.RGBA{R: 110, G: 170, B: 110, A: 255}
			if r.speaker {
				dot = color.RGBA{R: 210, G: 170, B: 70, A: 255}
			}
			vector.FillRect(screen, px+5, float32(y+6), 3, 5, dot, false)
		}
		drawText(screen, r.text, g.fonts.small, float64(panelX+12), float64(y), clr)
		y += feedLineHeight
	}
}

// meterColor shades a 0-100 meter from green to red.
func meterColor(v int) color.RGBA {
	t := float64(v) / 100
	return color.RGBA{R: uint8(60 + 180*t), G: uint8(190 - 130*t), B: 60, A: 255}
}

// drawMeter draws a labelled horizontal bar filled to v/100.
func (g *Game) drawMeter(screen *ebiten.Image, label string, v int, x, y float32, clr color.RGBA) {
	const w, h = 110, 10
	drawText(screen, label, g.fonts.small, float64(x), float64(y-2), color.White)
	bx := x + 78
	vector.FillRect(screen, bx, y, w, h, color.RGBA{R: 30, G: 30, B: 30, A: 220}, false)
	vector.FillRect(screen, bx, y, w*float32(min(max(v, 0), 100))/100, h, clr, false)
	vector.StrokeRect(screen, bx, y, w, h, 1, color.RGBA{R: 90, G: 90, B: 90, A: 255}, false)
}

// drawStatusBar draws timers and meters along the top of the park.
func (g *Game) drawStatusBar(screen *ebiten.Image, v sim.View) {
	st := v.State
	if st.Phase == sim.PhaseIdle {
		return
	}
	x, y := float32(g.offX+6), float32(g.offY+6)
	vector.FillRect(screen, x-4, y-4, 620, 46, color.RGBA{R: 10, G: 12, B: 10, A: 200}, false)

	timer := fmt.Sprintf("Level %d   Time %ds   Score %d", st.Level, st.LevelTimer, st.TotalScore)
	if st.Phase == sim.PhaseScenarioActive {
		timer = fmt.Sprintf("Level %d   %s %ds   %d/%d", st.Level, st.Scenario, st.CrisisTimer, st.Progress, st.Target)
	}
	timerCol := color.RGBA{R: 230, G: 230, B: 230, A: 255}
	if (st.Phase == sim.PhasePlaying && st.LevelTimer <= 5) || (st.Phase == sim.PhaseScenarioActive && st.CrisisTimer <= 5) {
		timerCol = color.RGBA{R: 255, G: 90, B: 70, A: 255}
	}
	drawText(screen, timer, g.fonts.hud, float64(x), float64(y), timerCol)

	g.drawMeter(screen, "Conviction", st.Conviction, x+340, y+2, color.RGBA{R: 80, G: 150, B: 230, A: 255})
	g.drawMeter(screen, "Panic", st.Panic, x+340, y+20, meterColor(st.Panic))
	drawText(screen, fmt.Sprintf("Mistakes %d   Evidence %d", st.Mistakes, len(st.Ledger)), g.fonts.small, float64(x), float64(y+22), color.RGBA{R: 180, G: 180, B: 180, A: 255})

	if g.status != "" {
		drawText(screen, g.status, g.fonts.small, float64(g.offX+6), float64(g.offY+g.gameHeight-22), color.RGBA{R: 150, G: 230, B: 150, A: 255})
	}
}

// phasePrompt returns the centred title and key hints for phases that wait
// on the player.
func phasePrompt(st sim.State) (title string, lines []string) {
	switch st.Phase {
	case sim.PhaseIdle:
		title = "PARK SLEUTH"
		lines = []string{"A body was found in the park. Someone here did it.", "Click people to talk, click marks to collect evidence.", "ENTER to start"}
		if st.LastOutcome != nil {
			lines = append(lines, fmt.Sprintf("Last run: %s  (total %d)", st.LastOutcome.Result, st.TotalScore))
		}
	case sim.PhaseConfrontation:
		title = "CONFRONTATION"
		lines = []string{
			fmt.Sprintf("Conviction %d/100. Arrest needs enough evidence.", st.Conviction),
			"Arrest now, or stop the crime they set in motion.",
		}
	case sim.PhaseLevelComplete:
		title = "CASE CLOSED"
		if st.LastOutcome != nil {
			lines = append(lines, st.LastOutcome.String())
		}
		lines = append(lines, fmt.Sprintf("Total score %d", st.TotalScore), "ENTER next level    ESC menu")
	case sim.PhaseGameOver:
		title = "GAME OVER"
		lines = []string{strings.ReplaceAll(st.Reason.String(), "_", " "), fmt.Sprintf("Total score %d", st.TotalScore), "ENTER new game    ESC menu"}
	}
	return title, lines
}

// overlayBox returns the top edge and height of the prompt box for a prompt
// with n text lines and a row of buttons.
func (g *Game) overlayBox(n int) (top, h float32) {
	top = float32(g.offY) + float32(g.gameHeight)/2 - 90
	return top, float32(60 + n*22 + 48)
}

// button is a clickable choice in the phase overlay, in screen pixels.
type button struct {
	label      string
	cmd        command
	x, y, w, h float32
}

func (b button) hit(mx, my int) bool {
	x, y := float32(mx), float32(my)
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// overlayButtons lays out the choices the current phase accepts.
func (g *Game) overlayButtons(st sim.State) []button {
	type choice struct {
		label string
		cmd   command
	}
	var choices []choice
	switch st.Phase {
	case sim.PhaseIdle:
		choices = []choice{{"Start", cmdStart}}
	case sim.PhaseConfrontation:
		choices = []choice{{"Arrest", cmdArrest}, {"Bomb", cmdRescueBomb}, {"Poison", cmdRescuePoison}, {"Stash", cmdRescueStash}}
	case sim.PhaseLevelComplete:
		choices = []choice{{"Next level", cmdNext}, {"Menu", cmdMenu}}
	case sim.PhaseGameOver:
		choices = []choice{{"New game", cmdStart}, {"Menu", cmdMenu}}
	default:
		return nil
	}

	const bw, bh, gap = 110, 28, 12
	_, lines := phasePrompt(st)
	top, boxH := g.overlayBox(len(lines))
	total := float32(len(choices)*bw + (len(choices)-1)*gap)
	x := float32(g.offX) + float32(g.gameWidth)/2 - total/2
	y := top + boxH - bh - 12
	out := make([]button, len(choices))
	for i, c := range choices {
		out[i] = button{label: c.label, cmd: c.cmd, x: x + float32(i*(bw+gap)), y: y, w: bw, h: bh}
	}
	return out
}

// drawPhaseOverlay dims the park and shows the prompt for waiting phases.
func (g *Game) drawPhaseOverlay(screen *ebiten.Image, v sim.View) {
	title, lines := phasePrompt(v.State)
	if title == "" {
		return
	}
	ox, oy := float32(g.offX), float32(g.offY)
	gw, gh := float32(g.gameWidth), float32(g.gameHeight)
	if v.State.Phase != sim.PhaseConfrontation {
		vector.FillRect(screen, ox, oy, gw, gh, color.RGBA{A: 170}, false)
	}
	cx := float64(g.offX) + float64(g.gameWidth)/2
	top, boxH := g.overlayBox(len(lines))
	vector.FillRect(screen, ox+gw/2-300, top, 600, boxH, color.RGBA{R: 14, G: 16, B: 14, A: 230}, false)
	vector.StrokeRect(screen, ox+gw/2-300, top, 600, boxH, 1, color.RGBA{R: 55, G: 80, B: 55, A: 255}, false)

	drawCentered(screen, title, g.fonts.title, cx, float64(top)+10, color.RGBA{R: 240, G: 220, B: 150, A: 255})
	y := float64(top) + 52
	for _, l := range lines {
		drawCentered(screen, l, g.fonts.hud, cx, y, color.White)
		y += 22
	}

	mx, my := ebiten.CursorPosition()
	for _, b := range g.overlayButtons(v.State) {
		fill := color.RGBA{R: 34, G: 52, B: 34, A: 255}
		if b.hit(mx, my) {
			fill = color.RGBA{R: 60, G: 96, B: 60, A: 255}
		}
		vector.FillRect(screen, b.x, b.y, b.w, b.h, fill, false)
		vector.StrokeRect(screen, b.x, b.y, b.w, b.h, 1, color.RGBA{R: 110, G: 160, B: 110, A: 255}, false)
		drawCentered(screen, b.label, g.fonts.hud, float64(b.x+b.w/2), float64(b.y+6), color.White)
	}
}

// wrapSpeech wraps a spoken line to bubble width.
func wrapSpeech(s string) string {
	return wordwrap.String(s, speechWrapCols)
}
