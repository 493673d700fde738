package sim

import "math/rand"

// setupScenario places the objects for kind and returns the ids the player
// has to deal with: device parts, infected actors or stashes.
func setupScenario(w *World, kind ScenarioKind, rng *rand.Rand, cfg Config) []string {
	switch kind {
	case ScenarioBomb:
		return setupBomb(w, rng, cfg)
	case ScenarioPoison:
		return setupPoison(w, rng, cfg)
	case ScenarioRescue:
		return setupRescue(w, rng, cfg)
	default:
		return nil
	}
}

// crisisTiles draws n distinct walkable, prop-free tile centres.
func crisisTiles(l *Layout, rng *rand.Rand, n int) []Point {
	tiles := eligibleTiles(l.Map)
	rng.Shuffle(len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })
	if n > len(tiles) {
		n = len(tiles)
	}
	out := make([]Point, 0, n)
	for _, t := range tiles[:n] {
		x, y := l.TileCenter(t[0], t[1])
		out = append(out, Point{X: x, Y: y})
	}
	return out
}

func newCrisisDecal(kind EntityKind, pos Point, rng *rand.Rand) *Decal {
	return &Decal{
		ID:     newEntityID(rng),
		Kind:   kind,
		Visual: kind.DefaultVisual(),
		Pos:    pos,
	}
}

// setupBomb scatters debris piles and hides one device part under each of
// ScenarioTargets of them.
func setupBomb(w *World, rng *rand.Rand, cfg Config) []string {
	spots := crisisTiles(w.Layout, rng, cfg.BombDebrisPiles)
	hideUnder := rng.Perm(len(spots))
	if len(hideUnder) > cfg.ScenarioTargets {
		hideUnder = hideUnder[:cfg.ScenarioTargets]
	}
	covered := make(map[int]bool, len(hideUnder))
	for _, i := range hideUnder {
		covered[i] = true
	}

	var parts []string
	for i, p := range spots {
		debris := newCrisisDecal(KindDebris, p, rng)
		if covered[i] {
			part := newCrisisDecal(KindDevicePart, p, rng)
			part.Hidden = true
			debris.Covers = part.ID
			w.Decals = append(w.Decals, part)
			parts = append(parts, part.ID)
		}
		w.Decals = append(w.Decals, debris)
	}
	return parts
}

// setupPoison infects ScenarioTargets random bystanders. The killer is never
// picked. Infected actors stop where they stand.
func setupPoison(w *World, rng *rand.Rand, cfg Config) []string {
	var pool []*Actor
	for _, a := range w.Actors {
		if a.Kind != KindKiller {
			pool = append(pool, a)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	n := cfg.ScenarioTargets
	if n > len(pool) {
		n = len(pool)
	}
	ids := make([]string, 0, n)
	for _, a := range pool[:n] {
		a.Infected = true
		a.Dest = nil
		ids = append(ids, a.ID)
	}
	return ids
}

// setupRescue hides stashed evidence alongside planted decoys. Stashes carry
// a crime tag and decoys a herring tag, so outside the crisis they would read
// as ordinary evidence.
func setupRescue(w *World, rng *rand.Rand, cfg Config) []string {
	spots := crisisTiles(w.Layout, rng, cfg.ScenarioTargets+cfg.RescueDecoys)
	var stashes []string
	for i, p := range spots {
		if i < cfg.ScenarioTargets {
			d := newCrisisDecal(KindStash, p, rng)
			d.Quality = QualityCrime
			w.Decals = append(w.Decals, d)
			stashes = append(stashes, d.ID)
			continue
		}
		d := newCrisisDecal(KindDecoy, p, rng)
		d.Quality = QualityHerring
		w.Decals = append(w.Decals, d)
	}
	return stashes
}
