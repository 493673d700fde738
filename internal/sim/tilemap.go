package sim

// TileKind identifies the surface of one grid cell.
type TileKind uint8

const (
	TileGrass        TileKind = iota // Default open lawn
	TileStreet                       // Paved path / road
	TileDirt                         // Trodden earth
	TileWall                         // Park boundary, buildings, solid props
	TileWater                        // Ponds
	TileDenseFoliage                 // Thicket
	tileKindCount                    // sentinel
)

func (k TileKind) String() string {
	switch k {
	case TileGrass:
		return "grass"
	case TileStreet:
		return "street"
	case TileDirt:
		return "dirt"
	case TileWall:
		return "wall"
	case TileWater:
		return "water"
	case TileDenseFoliage:
		return "dense_foliage"
	default:
		return "unknown"
	}
}

// tileBlocksMovement returns true if actors cannot stand on the kind.
func tileBlocksMovement(k TileKind) bool {
	switch k {
	case TileWall, TileWater, TileDenseFoliage:
		return true
	default:
		return false
	}
}

// Tile is one cell of the park.
type Tile struct {
	Kind    TileKind
	HasProp bool // a static prop sits here (solid or not)
}

// TileMap is the authoritative per-cell terrain representation.
type TileMap struct {
	Cols  int
	Rows  int
	Tiles []Tile // row-major: index = row*Cols + col
}

// NewTileMap creates a tile map of grass.
func NewTileMap(cols, rows int) *TileMap {
	return &TileMap{Cols: cols, Rows: rows, Tiles: make([]Tile, cols*rows)}
}

// inBounds returns true if (col, row) is within the tile map.
func (tm *TileMap) inBounds(col, row int) bool {
	return col >= 0 && col < tm.Cols && row >= 0 && row < tm.Rows
}

// At returns a pointer to the tile at (col, row), or nil if out of bounds.
func (tm *TileMap) At(col, row int) *Tile {
	if !tm.inBounds(col, row) {
		return nil
	}
	return &tm.Tiles[row*tm.Cols+col]
}

// Kind returns the tile kind at (col, row). Out of bounds reads as wall.
func (tm *TileMap) Kind(col, row int) TileKind {
	if !tm.inBounds(col, row) {
		return TileWall
	}
	return tm.Tiles[row*tm.Cols+col].Kind
}

// IsSolid returns true if actors may not occupy (col, row).
func (tm *TileMap) IsSolid(col, row int) bool {
	if !tm.inBounds(col, row) {
		return true
	}
	return tileBlocksMovement(tm.Tiles[row*tm.Cols+col].Kind)
}

// HasProp reports whether a static prop occupies (col, row).
func (tm *TileMap) HasProp(col, row int) bool {
	if !tm.inBounds(col, row) {
		return false
	}
	return tm.Tiles[row*tm.Cols+col].HasProp
}

// SetKind sets the kind for a tile.
func (tm *TileMap) SetKind(col, row int, k TileKind) {
	if !tm.inBounds(col, row) {
		return
	}
	tm.Tiles[row*tm.Cols+col].Kind = k
}

// FillRect sets every tile in the inclusive rectangle to k, clipped to the map.
func (tm *TileMap) FillRect(col0, row0, col1, row1 int, k TileKind) {
	for r := row0; r <= row1; r++ {
		for c := col0; c <= col1; c++ {
			tm.SetKind(c, r, k)
		}
	}
}

// adjacentTo reports whether any 4-neighbour of (col, row) has kind k.
// Out-of-bounds neighbours are ignored.
func (tm *TileMap) adjacentTo(col, row int, k TileKind) bool {
	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, d := range dirs {
		c, r := col+d[0], row+d[1]
		if tm.inBounds(c, r) && tm.Tiles[r*tm.Cols+c].Kind == k {
			return true
		}
	}
	return false
}

// Count returns how many tiles have kind k.
func (tm *TileMap) Count(k TileKind) int {
	n := 0
	for i := range tm.Tiles {
		if tm.Tiles[i].Kind == k {
			n++
		}
	}
	return n
}
