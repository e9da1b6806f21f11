package main

import (
	"math"

	"github.com/akmonengine/broadphase"
	"github.com/gdamore/tcell/v2"
)

const (
	ZOOM_FACTOR   = 1.2
	ZOOM_MIN      = 0.05
	ZOOM_MAX      = 5.0
	PAN_STEP      = 4
	CELL_PER_UNIT = 0.1
)

// InputState gathers the user input received between two ticks
type InputState struct {
	Quit        bool
	SelectKind  bool
	Kind        broadphase.Kind
	Add         int
	Remove      int
	ToggleColor bool
	ResetCamera bool
	// Pan in screen cells, Zoom in wheel steps (positive zooms in)
	PanX, PanY int
	Zoom       int
}

// dragState remembers the last mouse position while the primary button is held
type dragState struct {
	active bool
	x, y   int
}

// HandleEvent records a terminal event into input
func (in *InputState) HandleEvent(ev tcell.Event, drag *dragState) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		in.handleKey(ev)
	case *tcell.EventMouse:
		in.handleMouse(ev, drag)
	}
}

func (in *InputState) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.Quit = true
	case tcell.KeyLeft:
		in.PanX -= PAN_STEP
	case tcell.KeyRight:
		in.PanX += PAN_STEP
	case tcell.KeyUp:
		in.PanY -= PAN_STEP
	case tcell.KeyDown:
		in.PanY += PAN_STEP
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q':
			in.Quit = true
		case '1', '2', '3', '4':
			kinds := broadphase.Kinds()
			in.SelectKind = true
			in.Kind = kinds[int(r-'1')]
		case '+', '=':
			in.Add++
		case '-', '_':
			in.Remove++
		case 'd':
			in.ToggleColor = !in.ToggleColor
		case 'r':
			in.ResetCamera = true
		}
	}
}

func (in *InputState) handleMouse(ev *tcell.EventMouse, drag *dragState) {
	x, y := ev.Position()
	buttons := ev.Buttons()

	if buttons&tcell.WheelUp != 0 {
		in.Zoom++
	}
	if buttons&tcell.WheelDown != 0 {
		in.Zoom--
	}

	if buttons&tcell.Button1 == 0 {
		drag.active = false
		return
	}
	if drag.active {
		in.PanX += drag.x - x
		in.PanY += drag.y - y
	}
	drag.active = true
	drag.x, drag.y = x, y
}

// Camera maps world coordinates to terminal cells. A cell is twice as tall as it is wide.
type Camera struct {
	X, Y float64
	Zoom float64
}

func NewCamera() Camera {
	return Camera{Zoom: ZOOM_MIN}
}

func (c *Camera) Apply(input InputState) {
	if input.ResetCamera {
		*c = NewCamera()
	}

	scale := c.scale()
	c.X += float64(input.PanX) / scale
	c.Y += float64(input.PanY) * 2 / scale

	for i := 0; i < input.Zoom; i++ {
		c.Zoom *= ZOOM_FACTOR
	}
	for i := 0; i > input.Zoom; i-- {
		c.Zoom /= ZOOM_FACTOR
	}
	c.Zoom = min(max(c.Zoom, ZOOM_MIN), ZOOM_MAX)
}

func (c Camera) scale() float64 {
	return c.Zoom * CELL_PER_UNIT
}

// ToScreen returns the cell of a world position on a screen of size width x height
func (c Camera) ToScreen(x, y float64, width, height int) (int, int) {
	scale := c.scale()
	return width/2 + int(math.Floor((x-c.X)*scale)), height/2 + int(math.Floor((y-c.Y)*scale/2))
}
