package sim

import (
	"math/rand"
	"testing"
)

func TestValueNoise2D_Range(t *testing.T) {
	seed := int64(12345)
	for y := -10.0; y < 10.0; y += 0.37 {
		for x := -10.0; x < 10.0; x += 0.37 {
			v := valueNoise2D(x, y, seed)
			if v < 0 || v > 1 {
				t.Fatalf("noise at (%.2f,%.2f) = %f, out of [0,1]", x, y, v)
			}
		}
	}
}

func TestValueNoise2D_Deterministic(t *testing.T) {
	seed := int64(99999)
	a := valueNoise2D(3.7, 8.2, seed)
	b := valueNoise2D(3.7, 8.2, seed)
	if a != b {
		t.Fatalf("noise not deterministic: %f != %f", a, b)
	}
}

func TestGenerateTerrain_BoundaryAndGates(t *testing.T) {
	tm := GenerateTerrain(rand.New(rand.NewSource(7)), 40, 24)
	midRow, midCol := streetCross(tm.Cols, tm.Rows)

	isGate := func(col, row int) bool {
		return row == midRow || row == midRow+1 || col == midCol || col == midCol+1
	}
	for col := 0; col < tm.Cols; col++ {
		for _, row := range []int{0, tm.Rows - 1} {
			want := TileWall
			if isGate(col, row) {
				want = TileStreet
			}
			if got := tm.Kind(col, row); got != want {
				t.Fatalf("ring tile (%d,%d) = %s, want %s", col, row, got, want)
			}
		}
	}
	for row := 0; row < tm.Rows; row++ {
		for _, col := range []int{0, tm.Cols - 1} {
			want := TileWall
			if isGate(col, row) {
				want = TileStreet
			}
			if got := tm.Kind(col, row); got != want {
				t.Fatalf("ring tile (%d,%d) = %s, want %s", col, row, got, want)
			}
		}
	}
}

func TestGenerateTerrain_EveryGateReachesCentre(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		tm := GenerateTerrain(rand.New(rand.NewSource(seed)), 40, 24)
		midRow, midCol := streetCross(tm.Cols, tm.Rows)
		reach := floodFill(tm, midCol, midRow)
		gates := [][2]int{{0, midRow}, {tm.Cols - 1, midRow}, {midCol, 0}, {midCol, tm.Rows - 1}}
		for _, g := range gates {
			if !reach[g[1]*tm.Cols+g[0]] {
				t.Fatalf("seed %d: gate %v not connected to the centre", seed, g)
			}
		}
	}
}

func TestGenerateTerrain_VariedSurface(t *testing.T) {
	// Over a handful of seeds the noise pass must produce every ground kind.
	seen := map[TileKind]bool{}
	for seed := int64(0); seed < 10; seed++ {
		tm := GenerateTerrain(rand.New(rand.NewSource(seed)), 40, 24)
		for i := range tm.Tiles {
			seen[tm.Tiles[i].Kind] = true
		}
	}
	for k := TileKind(0); k < tileKindCount; k++ {
		if !seen[k] {
			t.Errorf("terrain never produced %s", k)
		}
	}
}

func TestGenerateTerrain_StreetVergeStaysOpen(t *testing.T) {
	tm := GenerateTerrain(rand.New(rand.NewSource(3)), 40, 24)
	for row := 1; row < tm.Rows-1; row++ {
		for col := 1; col < tm.Cols-1; col++ {
			k := tm.Kind(col, row)
			if (k == TileWater || k == TileDenseFoliage) && nearKind(tm, col, row, TileStreet) {
				t.Fatalf("noise placed %s next to the street at (%d,%d)", k, col, row)
			}
		}
	}
}

// floodFill returns the set of non-solid tiles 4-connected to (col, row).
func floodFill(tm *TileMap, col, row int) []bool {
	seen := make([]bool, len(tm.Tiles))
	if tm.IsSolid(col, row) {
		return seen
	}
	queue := [][2]int{{col, row}}
	seen[row*tm.Cols+col] = true
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nc, nr := c[0]+d[0], c[1]+d[1]
			if tm.IsSolid(nc, nr) || seen[nr*tm.Cols+nc] {
				continue
			}
			seen[nr*tm.Cols+nc] = true
			queue = append(queue, [2]int{nc, nr})
		}
	}
	return seen
}
