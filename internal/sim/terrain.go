package sim

import (
	"math"
	"math/rand"
)

// terrainConfig holds tuneable noise parameters for the park surface.
type terrainConfig struct {
	// Noise layer scales (smaller = broader features).
	PondScale    float64
	FoliageScale float64
	DirtScale    float64

	// Thresholds (noise value 0–1).
	PondThreshold    float64 // above this → water
	FoliageThreshold float64 // above this → thicket
	DirtThreshold    float64 // above this → dirt patch
}

var defaultTerrainConfig = terrainConfig{
	PondScale:    0.09,
	FoliageScale: 0.16,
	DirtScale:    0.21,

	PondThreshold:    0.80,
	FoliageThreshold: 0.74,
	DirtThreshold:    0.66,
}

// GenerateTerrain builds the park grid: a walled boundary, two buildings in
// the northern corners, a street cross that opens a gate on every edge, and
// noise-driven ponds, thickets and dirt on the remaining lawn.
func GenerateTerrain(rng *rand.Rand, cols, rows int) *TileMap {
	return generateTerrain(rng, cols, rows, defaultTerrainConfig)
}

func generateTerrain(rng *rand.Rand, cols, rows int, cfg terrainConfig) *TileMap {
	tm := NewTileMap(cols, rows)

	// Boundary ring.
	tm.FillRect(0, 0, cols-1, 0, TileWall)
	tm.FillRect(0, rows-1, cols-1, rows-1, TileWall)
	tm.FillRect(0, 0, 0, rows-1, TileWall)
	tm.FillRect(cols-1, 0, cols-1, rows-1, TileWall)

	// Buildings hugging the north wall; the gap between them and the ring
	// is the alley.
	bw := max(2, cols/7)
	bh := max(2, rows/6)
	tm.FillRect(2, 2, 2+bw-1, 2+bh-1, TileWall)
	tm.FillRect(cols-2-bw, 2, cols-3, 2+bh-1, TileWall)

	// Street cross. Drawn after the ring so each arm punches a gate.
	midRow, midCol := streetCross(cols, rows)
	tm.FillRect(0, midRow, cols-1, midRow+1, TileStreet)
	tm.FillRect(midCol, 0, midCol+1, rows-1, TileStreet)

	pondSeed := rng.Int63()
	foliageSeed := rng.Int63()
	dirtSeed := rng.Int63()

	for row := 1; row < rows-1; row++ {
		for col := 1; col < cols-1; col++ {
			if tm.Kind(col, row) != TileGrass {
				continue
			}
			// Keep a one-tile verge along the streets so the network stays open.
			if nearKind(tm, col, row, TileStreet) {
				continue
			}

			pond := valueNoise2D(float64(col)*cfg.PondScale, float64(row)*cfg.PondScale, pondSeed)
			foliage := valueNoise2D(float64(col)*cfg.FoliageScale, float64(row)*cfg.FoliageScale, foliageSeed)
			dirt := valueNoise2D(float64(col)*cfg.DirtScale, float64(row)*cfg.DirtScale, dirtSeed)
			detail := valueNoise2D(float64(col)*0.43, float64(row)*0.43, foliageSeed+1)

			switch {
			case pond > cfg.PondThreshold:
				tm.SetKind(col, row, TileWater)
			case foliage > cfg.FoliageThreshold && detail > 0.5:
				tm.SetKind(col, row, TileDenseFoliage)
			case dirt > cfg.DirtThreshold:
				tm.SetKind(col, row, TileDirt)
			}
		}
	}
	return tm
}

// streetCross returns the first row and column of the two-tile-wide street arms.
func streetCross(cols, rows int) (midRow, midCol int) {
	return rows/2 - 1, cols/2 - 1
}

// nearKind reports whether any tile in the 3×3 block around (col, row) has kind k.
func nearKind(tm *TileMap, col, row int, k TileKind) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			c, r := col+dc, row+dr
			if tm.inBounds(c, r) && tm.Tiles[r*tm.Cols+c].Kind == k {
				return true
			}
		}
	}
	return false
}

// --- Value noise implementation ---

// valueNoise2D returns a smooth noise value in [0,1] for the given coordinates.
// Uses lattice-based value noise with hermite interpolation.
func valueNoise2D(x, y float64, seed int64) float64 {
	xi := int(math.Floor(x))
	yi := int(math.Floor(y))
	xf := x - float64(xi)
	yf := y - float64(yi)

	u := xf * xf * (3 - 2*xf)
	v := yf * yf * (3 - 2*yf)

	n00 := latticeValue(xi, yi, seed)
	n10 := latticeValue(xi+1, yi, seed)
	n01 := latticeValue(xi, yi+1, seed)
	n11 := latticeValue(xi+1, yi+1, seed)

	nx0 := n00*(1-u) + n10*u
	nx1 := n01*(1-u) + n11*u
	return nx0*(1-v) + nx1*v
}

// latticeValue returns a pseudo-random value in [0,1] for integer coordinates.
func latticeValue(x, y int, seed int64) float64 {
	h := uint64(seed)
	h ^= uint64(x) * 0x517cc1b727220a95
	h ^= uint64(y) * 0x6c62272e07bb0142
	h = h*0x2545f4914f6cdd1d + 0x14057b7ef767814f
	h ^= h >> 16
	h *= 0xd6e8feb86659fd93
	h ^= h >> 16
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}
