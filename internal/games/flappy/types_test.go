package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/flappy-homage/internal/display"
)

func TestDirectionValues(t *testing.T) {
	if Down != -1 || Straight != 0 || Up != 1 {
		t.Fatalf("direction values = %d/%d/%d, expected -1/0/1", Down, Straight, Up)
	}
	if !(Down < Straight && Straight < Up) {
		t.Error("directions must be ordered Down < Straight < Up")
	}

	// Directions are used as velocity multipliers.
	if float64(Down)*0.5 != -0.5 || float64(Up)*0.5 != 0.5 || float64(Straight)*0.5 != 0 {
		t.Error("direction should scale a magnitude by its sign")
	}
}

func TestWallByteRange(t *testing.T) {
	for _, v := range []uint8{0, 255} {
		w := Wall{Bricks: v, XPos: v}
		if w.Bricks != v || w.XPos != v {
			t.Errorf("Wall{%d, %d} did not round-trip: %+v", v, v, w)
		}
	}
}

func TestBirdYStoredUnchanged(t *testing.T) {
	for _, y := range []float64{0, 0.125, 0.5, 0.999, 1} {
		g := Game{BirdY: y}
		if math.Abs(g.BirdY-y) > 1e-12 {
			t.Errorf("BirdY %v stored as %v", y, g.BirdY)
		}
	}

	// No clamping at the type level.
	g := Game{BirdY: 1.5}
	if g.BirdY != 1.5 {
		t.Error("Game must not clamp BirdY by itself")
	}
}

func TestFramebufferIndependentBytes(t *testing.T) {
	var g Game
	if len(g.Framebuffer) != 8 {
		t.Fatalf("framebuffer length = %d, expected 8", len(g.Framebuffer))
	}

	for i := range g.Framebuffer {
		g.Framebuffer[i] = 0xff
		for j := range g.Framebuffer {
			if j <= i && g.Framebuffer[j] != 0xff {
				t.Fatalf("byte %d lost its value after writing byte %d", j, i)
			}
			if j > i && g.Framebuffer[j] != 0 {
				t.Fatalf("writing byte %d changed byte %d", i, j)
			}
		}
	}
}

func TestWallsDoNotAlias(t *testing.T) {
	g := Game{
		WallOne: Wall{Bricks: 0xe3, XPos: 3},
		WallTwo: Wall{Bricks: 0xc7, XPos: 8},
	}

	g.WallOne.XPos = 0
	g.WallOne.Bricks = 0
	if g.WallTwo != (Wall{Bricks: 0xc7, XPos: 8}) {
		t.Errorf("mutating WallOne changed WallTwo: %+v", g.WallTwo)
	}
}

func TestGameCopyIsDeep(t *testing.T) {
	a := Game{WallOne: Wall{XPos: 4}}
	a.Framebuffer[2] = 0x18

	b := a
	b.WallOne.XPos = 1
	b.Framebuffer[2] = 0

	if a.WallOne.XPos != 4 || a.Framebuffer[2] != 0x18 {
		t.Error("copying a Game must copy its walls and framebuffer")
	}
}

func TestGapBricks(t *testing.T) {
	tests := []struct {
		name      string
		top, size int
		expected  uint8
	}{
		{"top gap", 0, 3, 0xf8},
		{"middle gap", 2, 3, 0xe3},
		{"bottom gap", 5, 3, 0x1f},
		{"no gap", 3, 0, 0xff},
		{"clipped at bottom", 6, 4, 0x3f},
		{"whole column", 0, 8, 0x00},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := GapBricks(tc.top, tc.size); got != tc.expected {
				t.Errorf("GapBricks(%d, %d) = %#02x, expected %#02x", tc.top, tc.size, got, tc.expected)
			}
		})
	}
}

func TestSolidAndGapRows(t *testing.T) {
	w := Wall{Bricks: GapBricks(2, 3)}

	for row := 0; row < display.Height; row++ {
		open := row >= 2 && row <= 4
		if Solid(w, row) == open {
			t.Errorf("row %d: Solid = %v", row, Solid(w, row))
		}
	}

	first, last, ok := GapRows(w)
	if !ok || first != 2 || last != 4 {
		t.Errorf("GapRows = %d, %d, %v; expected 2, 4, true", first, last, ok)
	}

	if _, _, ok := GapRows(Wall{Bricks: 0xff}); ok {
		t.Error("solid wall should report no gap")
	}
}

func TestVisible(t *testing.T) {
	if !Visible(Wall{XPos: 7}) {
		t.Error("column 7 is on the matrix")
	}
	if Visible(Wall{XPos: 8}) {
		t.Error("column 8 is off the matrix")
	}
}

func TestBirdRow(t *testing.T) {
	tests := []struct {
		y   float64
		row int
	}{
		{1, 0},
		{0, 7},
		{0.5, 4},
		{-0.2, 7},
		{1.3, 0},
	}

	for _, tc := range tests {
		if got := BirdRow(tc.y); got != tc.row {
			t.Errorf("BirdRow(%v) = %d, expected %d", tc.y, got, tc.row)
		}
	}
}
