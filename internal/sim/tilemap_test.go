package sim

import "testing"

func TestNewTileMap_DefaultGrass(t *testing.T) {
	tm := NewTileMap(10, 8)
	if tm.Cols != 10 || tm.Rows != 8 {
		t.Fatalf("expected 10x8, got %dx%d", tm.Cols, tm.Rows)
	}
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			if k := tm.Kind(col, row); k != TileGrass {
				t.Fatalf("tile (%d,%d) kind=%s, want grass", col, row, k)
			}
			if tm.IsSolid(col, row) {
				t.Fatalf("tile (%d,%d) should be walkable", col, row)
			}
		}
	}
}

func TestTileMap_Solidity(t *testing.T) {
	tests := []struct {
		kind  TileKind
		solid bool
	}{
		{TileGrass, false},
		{TileStreet, false},
		{TileDirt, false},
		{TileWall, true},
		{TileWater, true},
		{TileDenseFoliage, true},
	}
	for _, tt := range tests {
		tm := NewTileMap(3, 3)
		tm.SetKind(1, 1, tt.kind)
		if got := tm.IsSolid(1, 1); got != tt.solid {
			t.Errorf("%s: IsSolid=%v, want %v", tt.kind, got, tt.solid)
		}
	}
}

func TestTileMap_FillRectClips(t *testing.T) {
	tm := NewTileMap(5, 5)
	tm.FillRect(-2, -2, 1, 1, TileWater)
	if got := tm.Count(TileWater); got != 4 {
		t.Fatalf("expected 4 water tiles after clipped fill, got %d", got)
	}
}

func TestTileMap_AdjacentTo(t *testing.T) {
	tm := NewTileMap(5, 5)
	tm.SetKind(2, 2, TileWall)
	if !tm.adjacentTo(2, 1, TileWall) {
		t.Fatal("(2,1) should be adjacent to the wall")
	}
	if tm.adjacentTo(1, 1, TileWall) {
		t.Fatal("diagonal neighbour must not count as adjacent")
	}
}

func TestTileMap_OutOfBounds(t *testing.T) {
	tm := NewTileMap(3, 3)
	if tm.At(-1, 0) != nil {
		t.Fatal("out of bounds At should return nil")
	}
	if !tm.IsSolid(-1, 0) {
		t.Fatal("out of bounds should read as solid")
	}
	if tm.Kind(5, 5) != TileWall {
		t.Fatal("out of bounds should read as wall")
	}
	// Should not panic.
	tm.SetKind(99, 99, TileStreet)
	if tm.HasProp(-3, 7) {
		t.Fatal("out of bounds cannot hold a prop")
	}
}
