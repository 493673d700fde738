package sim

import (
	"log/slog"
	"math/rand"
)

// KillerSetter receives the killer's identity exactly once per level.
type KillerSetter func(id string, archetype Archetype)

// Population is the mobile and static content of one level.
type Population struct {
	Actors    []*Actor
	Decals    []*Decal
	KillerID  string
	Vignettes map[VignetteCategory]int // stamped count per category
}

// CivilianCount returns how many civilians a level spawns.
func CivilianCount(cfg Config, level int) int {
	if level < 1 {
		level = 1
	}
	n := cfg.BaseCivilians + level - 1
	if limit := len(roster) - 1; n > limit {
		n = limit
	}
	return n
}

// Populate draws the killer and civilians from a shuffled roster, spawns them
// on walkable tiles and scatters vignettes over the layout. publish is called
// once with the killer before any civilian is created.
func Populate(level int, l *Layout, rng *rand.Rand, cfg Config, publish KillerSetter, log *slog.Logger) *Population {
	if log == nil {
		log = slog.Default()
	}
	pop := &Population{Vignettes: make(map[VignetteCategory]int)}

	deck := Roster()
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	// Pop from the back of the deck.
	pop1 := func() Archetype {
		a := deck[len(deck)-1]
		deck = deck[:len(deck)-1]
		return a
	}

	killerArch := pop1()
	killer := newActor(KindKiller, killerArch, cfg.KillerSpeed, spawnPoint(l, rng, cfg), rng)
	pop.KillerID = killer.ID
	pop.Actors = append(pop.Actors, killer)
	if publish != nil {
		publish(killer.ID, killerArch)
	}
	log.Debug("killer drawn", "id", killer.Label(), "archetype", killerArch.Key)

	for i, n := 0, CivilianCount(cfg, level); i < n; i++ {
		a := pop1()
		pop.Actors = append(pop.Actors, newActor(KindCivilian, a, cfg.CivilianSpeed, spawnPoint(l, rng, cfg), rng))
	}

	scatterVignettes(l, rng, cfg, pop)
	log.Debug("population ready",
		"actors", len(pop.Actors),
		"decals", len(pop.Decals),
		"crime", pop.Vignettes[VignetteCrime],
		"herring", pop.Vignettes[VignetteHerring],
		"ambiance", pop.Vignettes[VignetteAmbiance],
	)
	return pop
}

func newActor(kind EntityKind, arch Archetype, baseSpeed float64, pos Point, rng *rand.Rand) *Actor {
	return &Actor{
		ID:        newEntityID(rng),
		Kind:      kind,
		Archetype: arch,
		Visual:    arch.Key,
		Pos:       pos,
		Speed:     baseSpeed * arch.Speed,
		Wait:      rng.Float64(),
	}
}

// spawnPoint picks a jittered safe spawn and snaps it to a walkable tile.
func spawnPoint(l *Layout, rng *rand.Rand, cfg Config) Point {
	var p Point
	if len(l.SafeSpawns) > 0 {
		p = l.SafeSpawns[rng.Intn(len(l.SafeSpawns))]
		p.X += (rng.Float64()*2 - 1) * cfg.SpawnJitter
		p.Y += (rng.Float64()*2 - 1) * cfg.SpawnJitter
	} else {
		p = l.Center()
	}
	return SnapToWalkable(l, p, cfg.SpawnSearchRadius)
}

// SnapToWalkable returns p if it lies on a walkable tile, else the centre of
// the nearest walkable tile found ring by ring within radius tiles. When the
// search fails the map centre is used, and when the centre itself is solid a
// second search runs outward from there across the whole map.
func SnapToWalkable(l *Layout, p Point, radius int) Point {
	if !l.IsSolidAt(p.X, p.Y) {
		return p
	}
	col, row := l.WorldToTile(p.X, p.Y)
	if q, ok := spiralSearch(l, col, row, radius); ok {
		return q
	}
	c := l.Center()
	if !l.IsSolidAt(c.X, c.Y) {
		return c
	}
	cc, cr := l.WorldToTile(c.X, c.Y)
	span := l.Map.Cols
	if l.Map.Rows > span {
		span = l.Map.Rows
	}
	if q, ok := spiralSearch(l, cc, cr, span); ok {
		return q
	}
	// Fully solid map: nothing walkable exists.
	return c
}

// spiralSearch walks square rings around (col, row), nearest first.
func spiralSearch(l *Layout, col, row, radius int) (Point, bool) {
	for r := 0; r <= radius; r++ {
		for dr := -r; dr <= r; dr++ {
			for dc := -r; dc <= r; dc++ {
				if abs(dc) != r && abs(dr) != r {
					continue // interior already visited
				}
				c, rr := col+dc, row+dr
				if !l.Map.IsSolid(c, rr) {
					x, y := l.TileCenter(c, rr)
					return Point{X: x, Y: y}, true
				}
			}
		}
	}
	return Point{}, false
}

// eligibleTiles lists walkable tiles without a prop, in row-major order.
func eligibleTiles(tm *TileMap) [][2]int {
	var out [][2]int
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			if tm.IsSolid(col, row) || tm.HasProp(col, row) {
				continue
			}
			out = append(out, [2]int{col, row})
		}
	}
	return out
}

func scatterVignettes(l *Layout, rng *rand.Rand, cfg Config, pop *Population) {
	tiles := eligibleTiles(l.Map)
	used := make(map[[2]int]bool)
	for _, t := range tiles {
		if rng.Float64() >= cfg.VignetteChance {
			continue
		}
		cat := rollCategory(rng, cfg)
		ctx := classifyTile(l.Map, t[0], t[1])
		defs := vignettesFor(cat, ctx)
		if len(defs) == 0 {
			continue
		}
		stampVignette(l, rng, defs[rng.Intn(len(defs))], t, pop)
		used[t] = true
	}

	// Guarantee enough crime evidence for an arrest.
	if pop.Vignettes[VignetteCrime] >= cfg.MinCrimeVignettes {
		return
	}
	free := make([][2]int, 0, len(tiles))
	for _, t := range tiles {
		if !used[t] {
			free = append(free, t)
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	for _, t := range free {
		if pop.Vignettes[VignetteCrime] >= cfg.MinCrimeVignettes {
			break
		}
		defs := vignettesFor(VignetteCrime, classifyTile(l.Map, t[0], t[1]))
		if len(defs) == 0 {
			continue
		}
		stampVignette(l, rng, defs[rng.Intn(len(defs))], t, pop)
	}
}

// rollCategory draws a vignette category by configured weight.
func rollCategory(rng *rand.Rand, cfg Config) VignetteCategory {
	total := cfg.CrimeWeight + cfg.HerringWeight + cfg.AmbianceWeight
	if total <= 0 {
		return VignetteAmbiance
	}
	r := rng.Intn(total)
	switch {
	case r < cfg.CrimeWeight:
		return VignetteCrime
	case r < cfg.CrimeWeight+cfg.HerringWeight:
		return VignetteHerring
	default:
		return VignetteAmbiance
	}
}

func stampVignette(l *Layout, rng *rand.Rand, def *VignetteDef, tile [2]int, pop *Population) {
	cx, cy := l.TileCenter(tile[0], tile[1])
	for _, it := range def.Items {
		q := it.Quality
		if q == QualityNone {
			q = def.Category.quality()
		}
		kind := KindClue
		if q == QualityAmbiance {
			kind = KindAmbiance
		}
		pop.Decals = append(pop.Decals, &Decal{
			ID:      newEntityID(rng),
			Kind:    kind,
			Visual:  it.Visual,
			Pos:     Point{X: cx + it.DX, Y: cy + it.DY},
			Quality: q,
			Source:  def.Name,
		})
	}
	pop.Vignettes[def.Category]++
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
