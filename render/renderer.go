// Package render draws the game onto a tcell screen: the crab, its hair,
// the pointer trail and the HUD
package render

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/crabcut/parameter"
	"github.com/lixenwraith/crabcut/physics"
	"github.com/lixenwraith/crabcut/strand"
)

// Frame is everything drawn for one game frame
type Frame struct {
	Host      *physics.Host
	Strands   []*strand.Strand
	Score     int
	TimeLeft  float64 // remaining fraction of the session
	Remaining time.Duration
	Critical  bool
	Flash     bool
	Paused    bool
	Trail     []TrailPoint
}

// Renderer handles all terminal rendering
type Renderer struct {
	screen tcell.Screen
	view   Viewport

	fadeSpring harmonica.Spring
	fade       float64
	fadeVel    float64

	barSpring harmonica.Spring
	bar       float64
	barVel    float64
}

// NewRenderer creates a renderer sized to screen, springs stepped at fps
func NewRenderer(screen tcell.Screen, fps int) *Renderer {
	r := &Renderer{
		screen:     screen,
		fadeSpring: harmonica.NewSpring(harmonica.FPS(fps), parameter.TitleFadeFrequency, parameter.TitleFadeDamping),
		barSpring:  harmonica.NewSpring(harmonica.FPS(fps), parameter.TimerBarFrequency, parameter.TimerBarDamping),
		bar:        1,
	}
	r.Resize()
	return r
}

// Resize re-reads the screen size and returns the new viewport
func (r *Renderer) Resize() Viewport {
	w, h := r.screen.Size()
	r.view = NewViewport(w, h)
	return r.view
}

// View returns the current viewport
func (r *Renderer) View() Viewport {
	return r.view
}

// ResetFade restarts the title fade-in and refills the timer bar
func (r *Renderer) ResetFade() {
	r.fade, r.fadeVel = 0, 0
	r.bar, r.barVel = 1, 0
}

// FadeLevel returns the current title fade in [0,1]
func (r *Renderer) FadeLevel() float64 {
	return min(max(r.fade, 0), 1)
}

// BarLevel returns the smoothed timer bar fill
func (r *Renderer) BarLevel() float64 {
	return min(max(r.bar, 0), 1)
}

// DrawTitle draws the title screen, advancing the fade one frame
func (r *Renderer) DrawTitle() {
	r.fade, r.fadeVel = r.fadeSpring.Update(r.fade, r.fadeVel, 1)
	level := r.FadeLevel()

	r.screen.Clear()
	r.fill(tcell.StyleDefault.Background(RgbBackground))

	w, h := r.screen.Size()
	lines := []struct {
		text  string
		color tcell.Color
	}{
		{"C R A B   C U T", RgbTitle},
		{"", RgbDialogText},
		{"slash the hair with your mouse before time runs out", RgbDialogText},
		{"", RgbDialogText},
		{"click or press enter to start   q to quit", RgbDialogEdge},
	}
	top := h/2 - len(lines)/2
	for i, l := range lines {
		style := tcell.StyleDefault.Background(RgbBackground).Foreground(Fade(l.color, level))
		if i == 0 {
			style = style.Bold(true)
		}
		r.text((w-len(l.text))/2, top+i, l.text, style)
	}
	r.screen.Show()
}

// DrawGame draws one frame of play
func (r *Renderer) DrawGame(f Frame) {
	r.screen.Clear()
	r.fill(tcell.StyleDefault.Background(RgbBackground))

	r.drawFloor()
	if f.Host != nil {
		r.drawHost(f.Host)
	}
	for _, s := range f.Strands {
		r.drawStrand(s)
	}
	r.drawTrail(f.Trail)
	r.drawHUD(f)

	if f.Paused {
		r.dialog([]string{"PAUSED", "", "p to resume"})
	}
	r.screen.Show()
}

// DrawGameOver draws the final frame with the score dialogue
func (r *Renderer) DrawGameOver(f Frame) {
	r.screen.Clear()
	r.fill(tcell.StyleDefault.Background(RgbBackground))
	r.drawFloor()
	if f.Host != nil {
		r.drawHost(f.Host)
	}
	for _, s := range f.Strands {
		r.drawStrand(s)
	}
	r.drawHUD(f)

	r.dialog([]string{
		"TIME'S UP",
		"",
		fmt.Sprintf("you cut %d %s", f.Score, plural(f.Score, "hair", "hairs")),
		"",
		"r to play again   t for title   q to quit",
	})
	r.screen.Show()
}

func (r *Renderer) fill(style tcell.Style) {
	w, h := r.screen.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) drawFloor() {
	y := r.view.OffsetY + r.view.Height - 1
	style := tcell.StyleDefault.Background(RgbFloor).Foreground(RgbBackground)
	for x := 0; x < r.view.Width; x++ {
		r.screen.SetContent(x, y, '░', nil, style)
	}
}

func (r *Renderer) drawHost(h *physics.Host) {
	c := h.Center()
	rad := h.Radius()
	rim := rad - r.view.ScaleX*1.5

	x0, y0 := r.view.ToCell(cp.Vector{X: c.X - rad, Y: c.Y - rad})
	x1, y1 := r.view.ToCell(cp.Vector{X: c.X + rad, Y: c.Y + rad})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if !r.view.InPlayArea(x, y) {
				continue
			}
			d := r.view.ToWorld(x, y).Sub(c).Length()
			switch {
			case d > rad:
			case d > rim:
				r.screen.SetContent(x, y, '▓', nil, tcell.StyleDefault.Background(RgbShell).Foreground(RgbShellDark))
			default:
				r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(RgbShell))
			}
		}
	}

	body := h.Body()
	eyeStyle := tcell.StyleDefault.Background(RgbShell).Foreground(RgbCrabEye).Bold(true)
	for _, side := range []float64{-1, 1} {
		eye := body.LocalToWorld(cp.Vector{X: side * rad * 0.35, Y: rad * 0.1})
		if x, y := r.view.ToCell(eye); r.view.InPlayArea(x, y) {
			r.screen.SetContent(x, y, 'o', nil, eyeStyle)
		}
	}
	spine := body.LocalToWorld(cp.Vector{X: 0, Y: -rad * 0.6})
	if x, y := r.view.ToCell(spine); r.view.InPlayArea(x, y) {
		r.screen.SetContent(x, y, '*', nil, tcell.StyleDefault.Background(RgbShell).Foreground(RgbShellSpine))
	}
}

func (r *Renderer) drawStrand(s *strand.Strand) {
	for _, seg := range s.Segments {
		if !seg.Live() {
			continue
		}
		color := RgbHairDetached
		if s.Anchored(seg.Index) {
			color = HairColor(seg.Group)
		}
		style := tcell.StyleDefault.Background(RgbBackground).Foreground(color)

		a, b := seg.Ends()
		ax, ay := r.view.ToCell(a)
		bx, by := r.view.ToCell(b)
		glyph := slopeGlyph(bx-ax, by-ay)
		line(ax, ay, bx, by, func(x, y int) {
			if r.view.InPlayArea(x, y) {
				r.screen.SetContent(x, y, glyph, nil, style)
			}
		})
	}
}

func (r *Renderer) drawTrail(points []TrailPoint) {
	for _, p := range points {
		if !r.view.InPlayArea(p.X, p.Y) {
			continue
		}
		_, _, style, _ := r.screen.GetContent(p.X, p.Y)
		r.screen.SetContent(p.X, p.Y, '·', nil, style.Foreground(Fade(RgbTrail, p.Intensity)))
	}
}

func (r *Renderer) drawHUD(f Frame) {
	w := r.view.Width
	r.bar, r.barVel = r.barSpring.Update(r.bar, r.barVel, f.TimeLeft)

	scoreColor := RgbScore
	if f.Flash {
		scoreColor = RgbScoreFlash
	}
	score := fmt.Sprintf(" CUTS %3d  %4.1fs ", f.Score, f.Remaining.Seconds())
	barWidth := max(w-len(score), 0)

	barColor := RgbTimerNormal
	if f.Critical {
		barColor = RgbTimerCritical
	}
	filled := int(math.Round(r.BarLevel() * float64(barWidth)))
	for x := 0; x < barWidth; x++ {
		style := tcell.StyleDefault.Background(RgbTimerTrack)
		if x < filled {
			style = tcell.StyleDefault.Background(barColor)
		}
		r.screen.SetContent(x, 0, ' ', nil, style)
	}
	r.text(barWidth, 0, score, tcell.StyleDefault.Background(RgbBackground).Foreground(scoreColor).Bold(true))
}

// dialog draws a bordered box with centred lines in the middle of the screen
func (r *Renderer) dialog(lines []string) {
	w, h := r.screen.Size()
	inner := 0
	for _, l := range lines {
		inner = max(inner, len(l))
	}
	bw, bh := inner+4, len(lines)+2
	x0, y0 := (w-bw)/2, (h-bh)/2

	edge := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbDialogEdge)
	body := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbDialogText)
	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			ch := ' '
			switch {
			case (y == 0 || y == bh-1) && (x == 0 || x == bw-1):
				ch = '+'
			case y == 0 || y == bh-1:
				ch = '-'
			case x == 0 || x == bw-1:
				ch = '|'
			}
			r.screen.SetContent(x0+x, y0+y, ch, nil, edge)
		}
	}
	for i, l := range lines {
		r.text(x0+(bw-len(l))/2, y0+1+i, l, body.Bold(i == 0))
	}
}

// slopeGlyph picks a line character for a cell-space direction, y down
func slopeGlyph(dx, dy int) rune {
	adx, ady := abs(dx), abs(dy)
	switch {
	case adx >= 2*ady:
		return '-'
	case ady >= 2*adx:
		return '|'
	case (dx > 0) == (dy > 0):
		return '\\'
	default:
		return '/'
	}
}

// line visits every cell of a Bresenham line from (x0, y0) to (x1, y1)
func line(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
