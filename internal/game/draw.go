package game

import (
	"hash/fnv"
	"image/color"
	"math"
	"strings"

	"github.com/Garsondee/Park-Sleuth/internal/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	actorRadius = 7
	decalRadius = 5
)

// tileColors maps each TileKind to its fill colour.
var tileColors = map[sim.TileKind]color.RGBA{
	sim.TileGrass:        {R: 52, G: 92, B: 48, A: 255},
	sim.TileStreet:       {R: 96, G: 92, B: 84, A: 255},
	sim.TileDirt:         {R: 104, G: 84, B: 56, A: 255},
	sim.TileWall:         {R: 44, G: 40, B: 46, A: 255},
	sim.TileWater:        {R: 40, G: 76, B: 128, A: 255},
	sim.TileDenseFoliage: {R: 26, G: 58, B: 30, A: 255},
}

// decalColors maps each decal kind to its marker colour.
var decalColors = map[sim.EntityKind]color.RGBA{
	sim.KindClue:       {R: 200, G: 60, B: 50, A: 255},
	sim.KindAmbiance:   {R: 150, G: 130, B: 70, A: 200},
	sim.KindDebris:     {R: 120, G: 110, B: 100, A: 255},
	sim.KindDevicePart: {R: 250, G: 200, B: 40, A: 255},
	sim.KindStash:      {R: 90, G: 190, B: 230, A: 255},
	sim.KindDecoy:      {R: 90, G: 190, B: 230, A: 255},
}

// archetypeColor derives a stable clothing colour from an archetype key, so
// the killer looks like any other civilian of the same archetype.
func archetypeColor(key string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(key))
	v := h.Sum32()
	return color.RGBA{R: uint8(80 + v%150), G: uint8(80 + (v>>8)%150), B: uint8(80 + (v>>16)%150), A: 255}
}

func (g *Game) drawWorld(screen *ebiten.Image, v sim.View) {
	l := v.Layout
	ox, oy := float32(g.offX), float32(g.offY)
	ts := float32(l.TileSize)

	for row := 0; row < l.Map.Rows; row++ {
		for col := 0; col < l.Map.Cols; col++ {
			k := l.Map.Kind(col, row)
			vector.FillRect(screen, ox+float32(col)*ts, oy+float32(row)*ts, ts, ts, tileColors[k], false)
		}
	}

	for _, p := range l.Props {
		drawProp(screen, p, ox, oy, ts)
	}

	flagged := make(map[string]bool, len(v.State.Flagged))
	for _, id := range v.State.Flagged {
		flagged[id] = true
	}
	pulse := float32(0.5 + 0.5*math.Sin(float64(g.frame)/8))

	for _, d := range v.Decals {
		if d.Hidden {
			continue
		}
		x, y := ox+float32(d.Pos.X), oy+float32(d.Pos.Y)
		clr := decalColors[d.Kind]
		switch d.Kind {
		case sim.KindDebris:
			vector.FillRect(screen, x-7, y-5, 14, 10, clr, false)
			vector.StrokeRect(screen, x-7, y-5, 14, 10, 1, color.RGBA{R: 70, G: 64, B: 58, A: 255}, false)
		case sim.KindDevicePart:
			vector.FillRect(screen, x-4, y-4, 8, 8, clr, false)
			vector.StrokeLine(screen, x-4, y+4, x+4, y-4, 1, color.Black, false)
		case sim.KindAmbiance:
			vector.FillCircle(screen, x, y, decalRadius-1, clr, false)
		default:
			vector.FillCircle(screen, x, y, decalRadius, clr, false)
			vector.StrokeCircle(screen, x, y, decalRadius, 1, color.RGBA{R: 20, G: 20, B: 20, A: 200}, false)
		}
		if flagged[d.ID] {
			vector.StrokeCircle(screen, x, y, 11+3*pulse, 2, color.RGBA{R: 255, G: 230, B: 80, A: uint8(140 + 100*pulse)}, false)
		}
		if d.ID == g.hoverID {
			vector.StrokeCircle(screen, x, y, 9, 1, color.White, false)
		}
	}

	for _, a := range v.Actors {
		x, y := ox+float32(a.Pos.X), oy+float32(a.Pos.Y)
		body := archetypeColor(a.Archetype.Key)
		if a.Infected {
			body = color.RGBA{R: 120, G: 220, B: 90, A: 255}
		}
		// Shadow, then body with a head on top.
		h := float32(max(a.Archetype.Height, 8))
		vector.FillCircle(screen, x, y+2, actorRadius, color.RGBA{A: 90}, false)
		vector.FillRect(screen, x-4, y-h/2, 8, h, body, false)
		vector.FillCircle(screen, x, y-h/2-3, 4, color.RGBA{R: 230, G: 196, B: 160, A: 255}, false)

		if flagged[a.ID] {
			vector.StrokeCircle(screen, x, y, 13+3*pulse, 2, color.RGBA{R: 120, G: 255, B: 120, A: uint8(140 + 100*pulse)}, false)
		}
		if a.ID == g.hoverID {
			vector.StrokeCircle(screen, x, y, actorRadius+5, 1, color.White, false)
		}
		if v.State.Debug && a.Kind == sim.KindKiller {
			vector.StrokeCircle(screen, x, y, actorRadius+8, 2, color.RGBA{R: 255, G: 40, B: 40, A: 255}, false)
		}
	}
}

func drawProp(screen *ebiten.Image, p sim.Prop, ox, oy, ts float32) {
	x, y := ox+float32(p.Pos.X), oy+float32(p.Pos.Y)
	switch p.Kind {
	case sim.PropTree:
		vector.FillCircle(screen, x, y, ts*0.48, color.RGBA{R: 34, G: 84, B: 36, A: 255}, false)
		vector.FillCircle(screen, x-3, y-3, ts*0.3, color.RGBA{R: 48, G: 110, B: 46, A: 255}, false)
	case sim.PropMonument:
		vector.FillRect(screen, x-ts*0.4, y-ts*0.4, ts*0.8, ts*0.8, color.RGBA{R: 150, G: 146, B: 140, A: 255}, false)
		vector.StrokeRect(screen, x-ts*0.4, y-ts*0.4, ts*0.8, ts*0.8, 1.5, color.RGBA{R: 90, G: 88, B: 84, A: 255}, false)
	case sim.PropLamp:
		vector.FillCircle(screen, x, y, ts*0.9, color.RGBA{R: 255, G: 240, B: 170, A: 24}, false)
		vector.FillCircle(screen, x, y, 3, color.RGBA{R: 250, G: 236, B: 160, A: 255}, false)
	case sim.PropBench:
		vector.FillRect(screen, x-ts*0.4, y-3, ts*0.8, 6, color.RGBA{R: 120, G: 84, B: 52, A: 255}, false)
	case sim.PropGrave:
		vector.FillRect(screen, x-4, y-6, 8, 12, color.RGBA{R: 130, G: 130, B: 136, A: 255}, false)
	}
}

// speechLifetime is how many frames a speech bubble stays visible.
const speechLifetime = 240

// speechWrapCols is the bubble width in characters.
const speechWrapCols = 30

// speechBubble holds a line spoken by an actor after a click.
type speechBubble struct {
	actorID string
	lines   []string
	age     int
}

// say replaces any bubble on id with a new wrapped line.
func (g *Game) say(id, line string) {
	kept := g.bubbles[:0]
	for _, b := range g.bubbles {
		if b.actorID != id {
			kept = append(kept, b)
		}
	}
	g.bubbles = append(kept, &speechBubble{
		actorID: id,
		lines:   strings.Split(wrapSpeech(line), "\n"),
	})
}

// tickBubbles ages bubbles and prunes expired ones.
func (g *Game) tickBubbles() {
	kept := g.bubbles[:0]
	for _, b := range g.bubbles {
		b.age++
		if b.age < speechLifetime {
			kept = append(kept, b)
		}
	}
	g.bubbles = kept
}

// drawSpeechBubbles renders active bubbles above the speaking actors.
// Bubbles whose actor left the view are skipped.
func (g *Game) drawSpeechBubbles(screen *ebiten.Image, v sim.View) {
	ox, oy := float32(g.offX), float32(g.offY)
	for _, b := range g.bubbles {
		a, ok := findActor(v, b.actorID)
		if !ok {
			continue
		}
		progress := float64(b.age) / float64(speechLifetime)
		alpha := float32(1.0)
		if progress > 0.70 {
			alpha = float32(1.0 - (progress-0.70)/0.30)
		}
		if alpha < 0.05 {
			continue
		}

		const lineH = 16
		const padX = 6
		const padY = 4
		maxLen := 0
		for _, l := range b.lines {
			maxLen = max(maxLen, len(l))
		}
		bgW := float32(maxLen*7 + padX*2)
		bgH := float32(len(b.lines)*lineH + padY*2)
		bgX := ox + float32(a.Pos.X) - bgW/2
		bgY := oy + float32(a.Pos.Y) - float32(a.Archetype.Height) - bgH - 8
		bgX = min(max(bgX, ox), ox+float32(g.gameWidth)-bgW)
		bgY = max(bgY, oy)

		vector.FillRect(screen, bgX, bgY, bgW, bgH, color.RGBA{R: 245, G: 242, B: 230, A: uint8(230 * alpha)}, false)
		vector.FillRect(screen, bgX, bgY, 3, bgH, color.RGBA{R: 210, G: 170, B: 70, A: uint8(230 * alpha)}, false)
		vector.StrokeRect(screen, bgX, bgY, bgW, bgH, 1, color.RGBA{R: 60, G: 60, B: 60, A: uint8(160 * alpha)}, false)
		for i, l := range b.lines {
			drawText(screen, l, g.fonts.small, float64(bgX+padX), float64(bgY+padY)+float64(i*lineH), color.RGBA{R: 20, G: 20, B: 20, A: uint8(255 * alpha)})
		}
	}
}
