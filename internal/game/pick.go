package game

import (
	"math"

	"github.com/Garsondee/Park-Sleuth/internal/sim"
)

// pickRadius is how far from an entity's centre a click still hits it, in
// world pixels.
const pickRadius = 14.0

// screenToWorld inverts the fixed park offset. ok is false outside the park.
func (g *Game) screenToWorld(mx, my int) (x, y float64, ok bool) {
	x = float64(mx - g.offX)
	y = float64(my - g.offY)
	if x < 0 || y < 0 || x >= float64(g.gameWidth) || y >= float64(g.gameHeight) {
		return 0, 0, false
	}
	return x, y, true
}

// pickAt returns the id under the cursor, or "" when nothing is close.
func (g *Game) pickAt(v sim.View, mx, my int) string {
	x, y, ok := g.screenToWorld(mx, my)
	if !ok {
		return ""
	}
	return pickEntity(v, x, y, pickRadius)
}

// pickEntity returns the id of the nearest clickable entity within radius of
// (x, y). Hidden decals cannot be picked. Actors win ties so a civilian
// standing on a leaf pile stays reachable.
func pickEntity(v sim.View, x, y, radius float64) string {
	r2 := radius * radius
	best2 := math.MaxFloat64
	hit := ""
	for _, a := range v.Actors {
		dx, dy := a.Pos.X-x, a.Pos.Y-y
		// Avoid sqrt by comparing squared distances.
		if d2 := dx*dx + dy*dy; d2 < r2 && d2 < best2 {
			best2, hit = d2, a.ID
		}
	}
	for _, d := range v.Decals {
		if d.Hidden {
			continue
		}
		dx, dy := d.Pos.X-x, d.Pos.Y-y
		if d2 := dx*dx + dy*dy; d2 < r2 && d2 < best2 {
			best2, hit = d2, d.ID
		}
	}
	return hit
}

// findActor returns the actor with id from v.
func findActor(v sim.View, id string) (sim.Actor, bool) {
	for _, a := range v.Actors {
		if a.ID == id {
			return a, true
		}
	}
	return sim.Actor{}, false
}

// findDecal returns the decal with id from v.
func findDecal(v sim.View, id string) (sim.Decal, bool) {
	for _, d := range v.Decals {
		if d.ID == id {
			return d, true
		}
	}
	return sim.Decal{}, false
}
