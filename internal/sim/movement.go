package sim

import (
	"math"
	"math/rand"
)

// destinationAttempts bounds how many random points are tried before an
// actor gives up picking a destination for this tick.
const destinationAttempts = 8

// SkipFunc reports whether an actor should stand still this tick.
type SkipFunc func(a *Actor) bool

// SteerStats counts what happened during one Steer call.
type SteerStats struct {
	Moved    int
	Arrived  int
	Aborted  int
	Repicked int
}

// Steer advances every mobile actor by dt seconds. Actors idle until their
// wait runs out, pick a walkable destination, and walk straight towards it.
// A step that would land on a solid tile drops the destination instead, so
// an actor may jitter against an obstacle but never enters it.
func Steer(actors []*Actor, l *Layout, dt float64, rng *rand.Rand, cfg Config, skip SkipFunc) SteerStats {
	var st SteerStats
	if dt <= 0 {
		return st
	}
	for _, a := range actors {
		if a.Speed <= 0 || (skip != nil && skip(a)) {
			continue
		}

		if a.Dest == nil {
			if a.Wait > 0 {
				a.Wait -= dt
				continue
			}
			a.Wait = 0
			if d, ok := pickDestination(l, rng); ok {
				a.Dest = &d
				st.Repicked++
			}
			continue
		}

		dx, dy := a.Dest.X-a.Pos.X, a.Dest.Y-a.Pos.Y
		dist := math.Hypot(dx, dy)
		if dist <= cfg.ArrivalRadius {
			a.Pos = *a.Dest
			a.Dest = nil
			a.Wait = cfg.WaitMin + rng.Float64()*(cfg.WaitMax-cfg.WaitMin)
			st.Arrived++
			continue
		}

		step := a.Speed * dt
		next := *a.Dest
		if step < dist {
			next = Point{X: a.Pos.X + dx/dist*step, Y: a.Pos.Y + dy/dist*step}
		}
		if l.IsSolidAt(next.X, next.Y) {
			a.Dest = nil
			st.Aborted++
			continue
		}
		a.Pos = next
		st.Moved++
	}
	return st
}

// pickDestination draws a random walkable point inside the map.
func pickDestination(l *Layout, rng *rand.Rand) (Point, bool) {
	w, h := l.Bounds()
	for i := 0; i < destinationAttempts; i++ {
		p := Point{X: rng.Float64() * w, Y: rng.Float64() * h}
		if !l.IsSolidAt(p.X, p.Y) {
			return p, true
		}
	}
	return Point{}, false
}
