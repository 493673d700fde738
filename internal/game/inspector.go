package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Park-Sleuth/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Inspector panel: rendered into an offscreen buffer at 1× then blitted at inspScale.
const (
	inspScale = 2   // scale factor for inspector text rendering
	inspBufW  = 230 // buffer width in pixels (~38 chars at debug font)
	inspBufH  = 250 // buffer height in pixels
	inspPad   = 4   // padding in buffer-space pixels
	inspLineH = 13  // line height in buffer-space pixels
)

// inspectorLines builds the inspector text for the current view. hover is
// the id under the cursor, if any.
func inspectorLines(v sim.View, hover string) []string {
	st := v.State
	lines := []string{
		fmt.Sprintf("phase %s  epoch %d  tick %d", st.Phase, st.Epoch, v.Tick),
		fmt.Sprintf("killer %.8s (%s)", st.KillerID, st.KillerArchetype.Key),
		fmt.Sprintf("conv %d  panic %d  mistakes %d", st.Conviction, st.Panic, st.Mistakes),
	}
	if st.Scenario != sim.ScenarioNone {
		lines = append(lines, fmt.Sprintf("%s %d/%d  flagged %d", st.Scenario, st.Progress, st.Target, len(st.Flagged)))
	}
	lines = append(lines, fmt.Sprintf("clues %d  amb %d  debris %d  parts %d",
		v.CountDecals(sim.KindClue), v.CountDecals(sim.KindAmbiance),
		v.CountDecals(sim.KindDebris), v.CountDecals(sim.KindDevicePart)))

	lines = append(lines, "")
	switch {
	case hover == "":
		lines = append(lines, "(hover an entity)")
	default:
		if a, ok := findActor(v, hover); ok {
			lines = append(lines,
				fmt.Sprintf("%s %s", a.Label(), a.Kind),
				a.Archetype.DisplayName(),
				fmt.Sprintf("pos (%.0f,%.0f) wait %.1f", a.Pos.X, a.Pos.Y, a.Wait),
			)
			if a.Dest != nil {
				lines = append(lines, fmt.Sprintf("dest (%.0f,%.0f)", a.Dest.X, a.Dest.Y))
			}
			if a.Infected {
				lines = append(lines, "INFECTED")
			}
		} else if d, ok := findDecal(v, hover); ok {
			lines = append(lines,
				fmt.Sprintf("%s %s", d.Label(), d.Kind),
				fmt.Sprintf("visual %s", d.Visual),
				fmt.Sprintf("quality %s  src %s", d.Quality, d.Source),
			)
			if d.Covers != "" {
				lines = append(lines, fmt.Sprintf("covers %.8s", d.Covers))
			}
		}
	}

	if n := len(st.Ledger); n > 0 {
		lines = append(lines, "", "ledger (newest last):")
		for _, e := range st.Ledger[max(0, n-4):] {
			lines = append(lines, fmt.Sprintf(" %-8s %s", e.Quality, e.Visual))
		}
	}
	lines = append(lines, "", "[C] copy report  [F1] close")
	return lines
}

// drawInspector renders the debug panel into an offscreen buffer at 1×,
// then blits it onto the screen at inspScale for readability.
func (g *Game) drawInspector(screen *ebiten.Image, v sim.View) {
	if g.inspBuf == nil {
		g.inspBuf = ebiten.NewImage(inspBufW, inspBufH)
	}
	g.inspBuf.Clear()
	buf := g.inspBuf
	bw, bh := float32(inspBufW), float32(inspBufH)

	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(buf, 0, 0, bw, bh, color.RGBA{R: 14, G: 16, B: 14, A: 230}, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1.0, panelBorder, false)

	ly := inspPad
	ebitenutil.DebugPrintAt(buf, "[ INSPECTOR ]", inspPad, ly)
	ly += inspLineH + 2
	vector.StrokeLine(buf, inspPad, float32(ly), bw-inspPad, float32(ly), 1.0, panelBorder, false)
	ly += 4
	for _, l := range inspectorLines(v, g.hoverID) {
		if ly > inspBufH-inspLineH {
			break
		}
		ebitenutil.DebugPrintAt(buf, l, inspPad, ly)
		ly += inspLineH
	}

	// Bottom-left of the park, clear of the feed panel.
	px := g.offX + 8
	py := g.offY + g.gameHeight - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
