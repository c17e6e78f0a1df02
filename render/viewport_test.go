package render

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestViewport_RoundTrip(t *testing.T) {
	v := NewViewport(80, 25)
	if v.Height != 24 || v.OffsetY != 1 {
		t.Fatalf("Expected one HUD row, got height %d offset %d", v.Height, v.OffsetY)
	}

	for _, c := range [][2]int{{0, 1}, {10, 5}, {79, 24}} {
		x, y := v.ToCell(v.ToWorld(c[0], c[1]))
		if x != c[0] || y != c[1] {
			t.Errorf("Round trip of (%d,%d) gave (%d,%d)", c[0], c[1], x, y)
		}
	}
}

func TestViewport_NegativeCoordinates(t *testing.T) {
	v := NewViewport(80, 25)
	x, y := v.ToCell(cp.Vector{X: -0.5, Y: -0.5})
	if x != -1 || y != 0 {
		t.Errorf("Expected (-1,0) for point just above-left of origin, got (%d,%d)", x, y)
	}
	if v.InPlayArea(x, y) {
		t.Error("Expected point outside play area")
	}
}

func TestViewport_CenterAndSize(t *testing.T) {
	v := NewViewport(100, 41)
	w, h := v.WorldSize()
	if w != 100*v.ScaleX || h != 40*v.ScaleY {
		t.Errorf("Unexpected world size %vx%v", w, h)
	}
	c := v.Center()
	if c.X != w/2 || c.Y != h/2 {
		t.Errorf("Unexpected center %v", c)
	}
	if !v.InPlayArea(50, 20) || v.InPlayArea(50, 0) || v.InPlayArea(100, 20) {
		t.Error("InPlayArea misclassified cells")
	}
}

func TestViewport_TinyScreen(t *testing.T) {
	v := NewViewport(0, 0)
	if v.Height != 0 {
		t.Errorf("Expected zero height, got %d", v.Height)
	}
	if v.InPlayArea(0, 0) {
		t.Error("Expected empty play area")
	}
}
