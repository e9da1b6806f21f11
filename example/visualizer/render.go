package main

import (
	"fmt"
	"math"
	"time"

	"github.com/akmonengine/broadphase"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Status is the information shown on the top left corner
type Status struct {
	FPS       float64
	Colliders int
	Kind      broadphase.Kind
	CheckTime time.Duration
}

func (s Status) Lines() []string {
	fps := ""
	if s.FPS > 0 {
		fps = fmt.Sprintf("%.2f", s.FPS)
	}
	return []string{
		"FPS: " + fps,
		fmt.Sprintf("Colliders: %d", s.Colliders),
		"Algorithm: " + s.Kind.String(),
		fmt.Sprintf("Collision update time (ms): %.2f", float64(s.CheckTime.Microseconds())/1000),
	}
}

type Renderer struct {
	screen  tcell.Screen
	Rainbow bool
	start   time.Time
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, start: time.Now()}
}

// rainbow returns a hue cycling over time and around the origin
func rainbow(elapsed time.Duration, x, y float64) tcell.Color {
	hue := math.Mod(elapsed.Seconds()+math.Atan2(y, x)/math.Pi, 1)
	if hue < 0 {
		hue += 1
	}
	r, g, b := colorful.Hsv(hue*360, 1, 1).RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (r *Renderer) Draw(world *broadphase.World, camera Camera, status Status) {
	r.screen.Clear()
	width, height := r.screen.Size()
	elapsed := time.Since(r.start)

	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	for _, c := range world.Colliders {
		color := tcell.ColorRed
		if r.Rainbow {
			color = rainbow(elapsed, c.Position.X(), c.Position.Y())
		} else if c.Collided() {
			color = tcell.ColorYellow
		}

		aabb := c.AABB()
		x0, y0 := camera.ToScreen(aabb.Min.X(), aabb.Min.Y(), width, height)
		x1, y1 := camera.ToScreen(aabb.Max.X(), aabb.Max.Y(), width, height)
		// at least one cell so that colliders are always visible
		x1, y1 = max(x1, x0+1), max(y1, y0+1)
		r.fill(x0, y0, x1, y1, width, height, base.Foreground(color))
	}

	bounds := world.Bounds
	x0, y0 := camera.ToScreen(bounds.Min.X(), bounds.Min.Y(), width, height)
	x1, y1 := camera.ToScreen(bounds.Max.X(), bounds.Max.Y(), width, height)
	r.frame(x0, y0, x1, y1, width, height, base.Foreground(tcell.ColorGray))

	for i, line := range status.Lines() {
		r.text(1, i, line, base.Foreground(tcell.ColorWhite))
	}

	r.screen.Show()
}

func (r *Renderer) fill(x0, y0, x1, y1, width, height int, style tcell.Style) {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, width), min(y1, height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.screen.SetContent(x, y, '█', nil, style)
		}
	}
}

// frame draws the border of a rectangle, SetContent ignores the cells off screen
func (r *Renderer) frame(x0, y0, x1, y1, width, height int, style tcell.Style) {
	for x := max(x0+1, 0); x < min(x1, width); x++ {
		r.screen.SetContent(x, y0, '─', nil, style)
		r.screen.SetContent(x, y1, '─', nil, style)
	}
	for y := max(y0+1, 0); y < min(y1, height); y++ {
		r.screen.SetContent(x0, y, '│', nil, style)
		r.screen.SetContent(x1, y, '│', nil, style)
	}
	r.screen.SetContent(x0, y0, '┌', nil, style)
	r.screen.SetContent(x1, y0, '┐', nil, style)
	r.screen.SetContent(x0, y1, '└', nil, style)
	r.screen.SetContent(x1, y1, '┘', nil, style)
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
