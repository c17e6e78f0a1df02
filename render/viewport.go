package render

import (
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/crabcut/parameter"
)

// Viewport maps world coordinates to terminal cells. World origin is the
// top-left corner of the play area, which starts below the HUD row.
type Viewport struct {
	Width, Height  int // play area in cells
	OffsetY        int // rows reserved above the play area
	ScaleX, ScaleY float64
}

// NewViewport creates a viewport for a screen of w x h cells with one HUD row
func NewViewport(w, h int) Viewport {
	return Viewport{
		Width:   w,
		Height:  max(h-1, 0),
		OffsetY: 1,
		ScaleX:  parameter.ViewScaleX,
		ScaleY:  parameter.ViewScaleY,
	}
}

// ToCell returns the screen cell containing world point p
func (v Viewport) ToCell(p cp.Vector) (x, y int) {
	return floorDiv(p.X, v.ScaleX), floorDiv(p.Y, v.ScaleY) + v.OffsetY
}

// ToWorld returns the world point at the centre of screen cell (x, y)
func (v Viewport) ToWorld(x, y int) cp.Vector {
	return cp.Vector{
		X: (float64(x) + 0.5) * v.ScaleX,
		Y: (float64(y-v.OffsetY) + 0.5) * v.ScaleY,
	}
}

// WorldSize returns the play area extent in world units
func (v Viewport) WorldSize() (w, h float64) {
	return float64(v.Width) * v.ScaleX, float64(v.Height) * v.ScaleY
}

// Center returns the world point at the middle of the play area
func (v Viewport) Center() cp.Vector {
	w, h := v.WorldSize()
	return cp.Vector{X: w / 2, Y: h / 2}
}

// InPlayArea reports whether screen cell (x, y) is inside the play area
func (v Viewport) InPlayArea(x, y int) bool {
	return x >= 0 && x < v.Width && y >= v.OffsetY && y < v.OffsetY+v.Height
}

func floorDiv(a, scale float64) int {
	q := a / scale
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}
