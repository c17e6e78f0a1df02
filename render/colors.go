package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(15, 15, 19) // Deep sea background
	RgbFloor      = tcell.NewRGBColor(60, 52, 40) // Sand

	RgbShell      = tcell.NewRGBColor(214, 84, 50)   // Crab orange
	RgbShellDark  = tcell.NewRGBColor(150, 52, 30)   // Shell rim
	RgbCrabEye    = tcell.NewRGBColor(255, 255, 255) // Eye white
	RgbShellSpine = tcell.NewRGBColor(255, 200, 120) // Rotation marker

	RgbHairDetached = tcell.NewRGBColor(74, 72, 91) // Cut hair, dull

	RgbTimerNormal   = tcell.NewRGBColor(80, 200, 120) // Green
	RgbTimerCritical = tcell.NewRGBColor(255, 70, 70)  // Red
	RgbTimerTrack    = tcell.NewRGBColor(40, 40, 50)   // Empty bar

	RgbScore      = tcell.NewRGBColor(255, 255, 255) // White
	RgbScoreFlash = tcell.NewRGBColor(255, 220, 60)  // Yellow flash on cut

	RgbTitle      = tcell.NewRGBColor(255, 140, 90)  // Title text at full fade
	RgbDialogText = tcell.NewRGBColor(230, 230, 230) // Dialog text
	RgbDialogEdge = tcell.NewRGBColor(120, 120, 140) // Dialog border

	RgbTrail = tcell.NewRGBColor(200, 200, 200) // Slash trail base
)

// hairPalette colors strands by collision group
var hairPalette = []tcell.Color{
	tcell.NewRGBColor(65, 72, 91),
	tcell.NewRGBColor(120, 110, 160),
	tcell.NewRGBColor(90, 130, 150),
	tcell.NewRGBColor(150, 120, 100),
}

// HairColor returns the color for an attached strand in group g
func HairColor(g uint) tcell.Color {
	return hairPalette[int(g)%len(hairPalette)]
}

// Fade blends from the background toward c by t in [0,1]
func Fade(c tcell.Color, t float64) tcell.Color {
	t = min(max(t, 0), 1)
	r1, g1, b1 := RgbBackground.RGB()
	r2, g2, b2 := c.RGB()
	lerp := func(a, b int32) int32 {
		return a + int32(float64(b-a)*t)
	}
	return tcell.NewRGBColor(lerp(r1, r2), lerp(g1, g2), lerp(b1, b2))
}
