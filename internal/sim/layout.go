package sim

import (
	"log/slog"
	"math"
	"math/rand"
)

// PropKind identifies a static decorative object.
type PropKind uint8

const (
	PropLamp     PropKind = iota // Street lamp, civilians idle nearby
	PropBench                    // Park bench
	PropTree                     // Mature tree, blocks movement
	PropMonument                 // Statue plinth, blocks movement
	PropGrave                    // Memorial marker, cosmetic danger spawn
	propKindCount                // sentinel
)

func (k PropKind) String() string {
	switch k {
	case PropLamp:
		return "lamp"
	case PropBench:
		return "bench"
	case PropTree:
		return "tree"
	case PropMonument:
		return "monument"
	case PropGrave:
		return "grave"
	default:
		return "unknown"
	}
}

// propIsSolid returns true if the prop blocks the tile beneath it.
func propIsSolid(k PropKind) bool {
	switch k {
	case PropTree, PropMonument:
		return true
	default:
		return false
	}
}

// Point is a world-space position in pixels.
type Point struct {
	X, Y float64
}

// Prop is a placed static object.
type Prop struct {
	ID       int
	Kind     PropKind
	Col, Row int
	Pos      Point // tile centre
}

// PropPlacement is a hand-authored prop coordinate in tile space.
type PropPlacement struct {
	Kind     PropKind
	Col, Row int
}

// Layout is the static level: terrain, props and spawn pools. It is not
// mutated after AssembleLayout returns.
type Layout struct {
	Map          *TileMap
	TileSize     int
	Props        []Prop
	SafeSpawns   []Point // near lamps, where civilians idle
	DangerSpawns []Point // graves, ambiance only
}

// AssembleLayout places props onto tm and derives the spawn pools.
// Placements outside the grid are skipped.
func AssembleLayout(tm *TileMap, tileSize int, placements []PropPlacement, log *slog.Logger) *Layout {
	l := &Layout{Map: tm, TileSize: tileSize}
	for _, p := range placements {
		if !l.PlaceProp(p.Kind, p.Col, p.Row) && log != nil {
			log.Debug("prop skipped", "kind", p.Kind.String(), "col", p.Col, "row", p.Row)
		}
	}
	l.buildSpawnPools()
	return l
}

// PlaceProp records a prop and, for solid kinds, walls the tile under it in
// the same step so collision and rendering can never disagree.
func (l *Layout) PlaceProp(kind PropKind, col, row int) bool {
	t := l.Map.At(col, row)
	if t == nil || t.HasProp {
		return false
	}
	t.HasProp = true
	if propIsSolid(kind) {
		t.Kind = TileWall
	}
	x, y := l.TileCenter(col, row)
	l.Props = append(l.Props, Prop{
		ID:   len(l.Props),
		Kind: kind,
		Col:  col,
		Row:  row,
		Pos:  Point{X: x, Y: y},
	})
	return true
}

func (l *Layout) buildSpawnPools() {
	seen := make(map[[2]int]bool)
	for _, p := range l.Props {
		switch p.Kind {
		case PropLamp:
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					c, r := p.Col+dc, p.Row+dr
					if l.Map.IsSolid(c, r) || seen[[2]int{c, r}] {
						continue
					}
					seen[[2]int{c, r}] = true
					x, y := l.TileCenter(c, r)
					l.SafeSpawns = append(l.SafeSpawns, Point{X: x, Y: y})
				}
			}
		case PropGrave:
			l.DangerSpawns = append(l.DangerSpawns, p.Pos)
		}
	}
}

// DefaultProps returns the hand-authored prop set, positioned relative to
// the street cross. On small grids some entries fall outside and are skipped.
func DefaultProps(cols, rows int) []PropPlacement {
	mr, mc := streetCross(cols, rows)
	return []PropPlacement{
		// Lamps on the street verges.
		{PropLamp, mc - 12, mr - 1},
		{PropLamp, mc - 5, mr + 2},
		{PropLamp, mc + 6, mr - 1},
		{PropLamp, mc + 13, mr + 2},
		{PropLamp, mc - 1, mr - 6},
		{PropLamp, mc + 2, mr - 3},
		{PropLamp, mc - 1, mr + 5},
		{PropLamp, mc + 2, mr + 8},
		// Benches beside lamps.
		{PropBench, mc - 11, mr - 1},
		{PropBench, mc - 4, mr + 2},
		{PropBench, mc + 7, mr - 1},
		{PropBench, mc + 14, mr + 2},
		{PropBench, mc - 1, mr - 5},
		{PropBench, mc + 2, mr + 7},
		// Trees.
		{PropTree, mc - 9, mr - 4},
		{PropTree, mc + 9, mr + 5},
		{PropTree, mc - 8, mr + 6},
		{PropTree, mc + 10, mr - 5},
		// Monument on the north-east corner of the crossing.
		{PropMonument, mc + 4, mr - 2},
		// Memorial graves in the south-east corner.
		{PropGrave, cols - 6, rows - 4},
		{PropGrave, cols - 5, rows - 4},
		{PropGrave, cols - 6, rows - 3},
		{PropGrave, cols - 4, rows - 3},
	}
}

// WorldToTile converts world pixel coordinates to tile coordinates.
func (l *Layout) WorldToTile(x, y float64) (col, row int) {
	ts := float64(l.TileSize)
	return int(math.Floor(x / ts)), int(math.Floor(y / ts))
}

// TileCenter converts tile coordinates to the world pixel centre of that tile.
func (l *Layout) TileCenter(col, row int) (x, y float64) {
	ts := float64(l.TileSize)
	return float64(col)*ts + ts/2, float64(row)*ts + ts/2
}

// IsSolidAt reports whether the tile containing world point (x, y) blocks movement.
func (l *Layout) IsSolidAt(x, y float64) bool {
	col, row := l.WorldToTile(x, y)
	return l.Map.IsSolid(col, row)
}

// Bounds returns the playfield size in world pixels.
func (l *Layout) Bounds() (w, h float64) {
	return float64(l.Map.Cols * l.TileSize), float64(l.Map.Rows * l.TileSize)
}

// Center returns the centre of the middle tile, the spawn of last resort.
func (l *Layout) Center() Point {
	x, y := l.TileCenter(l.Map.Cols/2, l.Map.Rows/2)
	return Point{X: x, Y: y}
}

// NewLevelLayout generates terrain and assembles the default props.
func NewLevelLayout(rng *rand.Rand, cfg Config, log *slog.Logger) *Layout {
	tm := GenerateTerrain(rng, cfg.Cols, cfg.Rows)
	return AssembleLayout(tm, cfg.TileSize, DefaultProps(cfg.Cols, cfg.Rows), log)
}
