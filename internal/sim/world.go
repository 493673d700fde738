package sim

// World is the live content of the current level. The layout is shared and
// never mutated after generation; actors and decals change during play.
type World struct {
	Layout *Layout
	Actors []*Actor
	Decals []*Decal
}

func (w *World) actor(id string) *Actor {
	for _, a := range w.Actors {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (w *World) decal(id string) *Decal {
	for _, d := range w.Decals {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// removeDecal drops the decal with id. Returns false if it was already gone.
func (w *World) removeDecal(id string) bool {
	for i, d := range w.Decals {
		if d.ID == id {
			w.Decals = append(w.Decals[:i], w.Decals[i+1:]...)
			return true
		}
	}
	return false
}

// killer returns the killer actor, or nil when none exists.
func (w *World) killer() *Actor {
	for _, a := range w.Actors {
		if a.Kind == KindKiller {
			return a
		}
	}
	return nil
}

// CountKind returns how many actors and decals have kind k.
func (w *World) CountKind(k EntityKind) int {
	n := 0
	for _, a := range w.Actors {
		if a.Kind == k {
			n++
		}
	}
	for _, d := range w.Decals {
		if d.Kind == k {
			n++
		}
	}
	return n
}
