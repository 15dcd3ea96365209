// Package render draws simulation snapshots onto a tcell screen. It consumes
// engine snapshots only and owns no simulation state.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/hexbounce/hexbounce/engine"
	"github.com/hexbounce/hexbounce/vmath"
)

const (
	trailLength = 12
	// Terminal cells are roughly twice as tall as wide; stretch x to keep
	// the hexagon visually regular
	cellAspect = 2.0
	// statusRows reserved at the bottom for the HUD
	statusRows = 2
)

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	vertexStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	ballStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	trailSlow   = tcell.StyleDefault.Foreground(tcell.ColorDarkGoldenrod).Dim(true)
	trailFast   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	pauseStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

type cellPos struct {
	x, y int
}

// Renderer projects world coordinates onto terminal cells and draws one
// frame per snapshot.
type Renderer struct {
	screen        tcell.Screen
	width, height int
	trail         []cellPos
}

// NewRenderer wraps an initialized screen
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{screen: screen}
	r.Resize()
	return r
}

// Resize re-reads the screen dimensions after a terminal resize event
func (r *Renderer) Resize() {
	r.width, r.height = r.screen.Size()
}

// project maps a world point to a screen cell, fitting the hexagon into the
// drawable area with aspect correction
func (r *Renderer) project(p vmath.Vec2, snap engine.Snapshot) cellPos {
	drawH := r.height - statusRows
	if drawH < 1 {
		drawH = 1
	}

	// World extent is the hexagon diameter plus ball slack
	extent := 2 * (snap.Hexagon.Radius + snap.Ball.Radius)
	scaleY := float64(drawH-2) / extent
	scaleX := scaleY * cellAspect
	if maxX := float64(r.width-2) / extent; scaleX > maxX {
		scaleX = maxX
		scaleY = scaleX / cellAspect
	}

	rel := p.Sub(snap.Hexagon.Center)
	return cellPos{
		x: r.width/2 + int(rel.X*scaleX+0.5),
		y: drawH/2 + int(rel.Y*scaleY+0.5),
	}
}

// Frame draws one snapshot and flushes it to the terminal
func (r *Renderer) Frame(snap engine.Snapshot) {
	r.screen.Clear()

	// Walls
	verts := snap.Hexagon.Vertices
	for i := 0; i < len(verts); i++ {
		a := r.project(verts[i], snap)
		b := r.project(verts[(i+1)%len(verts)], snap)
		r.drawLine(a, b, '·', wallStyle)
	}
	for _, v := range verts {
		c := r.project(v, snap)
		r.set(c, '•', vertexStyle)
	}

	// Trail fades behind the ball, brighter the faster it moves
	ballCell := r.project(snap.Ball.Position, snap)
	if !snap.Paused {
		r.trail = append(r.trail, ballCell)
		if len(r.trail) > trailLength {
			r.trail = r.trail[1:]
		}
	}
	trailStyle := trailSlow
	if snap.Params.MaxVelocity > 0 && snap.Ball.Speed > 0.25*snap.Params.MaxVelocity {
		trailStyle = trailFast
	}
	for _, t := range r.trail {
		r.set(t, '·', trailStyle)
	}

	r.set(ballCell, '●', ballStyle)

	r.drawHUD(snap)
	r.screen.Show()
}

// ResetTrail clears the trail, used when the simulation resets
func (r *Renderer) ResetTrail() {
	r.trail = r.trail[:0]
}

func (r *Renderer) drawHUD(snap engine.Snapshot) {
	status := fmt.Sprintf(
		"tick %-8d fps %5.1f  speed %6.1f  e %.2f  ω %+.2f  ×%.1f  steps %d  hits %d  anomalies %d",
		snap.Tick, snap.FPS, snap.Ball.Speed,
		snap.Params.Restitution, snap.Hexagon.AngularSpeed, snap.Params.TimeScale,
		snap.Stats.Steps, snap.Stats.Collisions, snap.Stats.Anomalies,
	)
	r.drawText(0, r.height-2, status, hudStyle)

	help := "q quit  space pause  r reset  hjkl nudge  [/] bounce  ,/. spin  +/- time  g gravity  s sound"
	r.drawText(0, r.height-1, help, hudStyle.Dim(true))

	if snap.Paused {
		r.drawText(r.width/2-4, 0, " PAUSED ", pauseStyle)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		if x+i >= r.width {
			break
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

func (r *Renderer) set(c cellPos, ch rune, style tcell.Style) {
	if c.x < 0 || c.x >= r.width || c.y < 0 || c.y >= r.height-statusRows {
		return
	}
	r.screen.SetContent(c.x, c.y, ch, nil, style)
}

// drawLine plots a straight run of cells between two points
func (r *Renderer) drawLine(a, b cellPos, ch rune, style tcell.Style) {
	dx := abs(b.x - a.x)
	dy := abs(b.y - a.y)
	steps := dx
	if dy > steps {
		steps = dy
	}
	if steps == 0 {
		r.set(a, ch, style)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.set(cellPos{
			x: a.x + int(float64(b.x-a.x)*t+0.5),
			y: a.y + int(float64(b.y-a.y)*t+0.5),
		}, ch, style)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
