package canopy

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerSource abstracts where pointer and dismiss-key state comes from.
// EbitenSource is the production implementation; tests inject events instead.
type PointerSource interface {
	CursorPosition() (x, y float64)
	IsPressed() bool
	IsEscapePressed() bool
}

// EbitenSource reads the mouse and keyboard from ebiten. Touch input maps the
// first touch onto the cursor, which is enough for panel interactions.
type EbitenSource struct{}

// CursorPosition returns the cursor position, or the first touch position
// when a touch is active.
func (EbitenSource) CursorPosition() (float64, float64) {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return float64(x), float64(y)
	}
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// IsPressed reports whether the left mouse button or any touch is down.
func (EbitenSource) IsPressed() bool {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(ebiten.AppendTouchIDs(nil)) > 0
}

// IsEscapePressed reports whether the Escape key is down.
func (EbitenSource) IsEscapePressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyEscape)
}

// PointerBehavior receives pointer events and per-frame ticks from a
// PointerManager. Hover, click, and dismiss behaviors implement it.
type PointerBehavior interface {
	HandleMove(x, y float64, t time.Time)
	HandlePress(x, y float64, t time.Time)
	HandleRelease(x, y float64, t time.Time)
	Update(dt float64)
}

// syntheticPointerEvent is a single injected pointer event, consumed one per
// frame like real input.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// PointerManager polls a PointerSource once per frame and fans events out to
// attached behaviors. It owns the press/release edge detection and the
// Escape-key edge routed to a DismissManager. Single-threaded: call Update
// from the host's frame loop only.
type PointerManager struct {
	source    PointerSource
	behaviors []PointerBehavior
	dismiss   *DismissManager

	lastX, lastY float64
	hasPos       bool
	wasPressed   bool
	escWas       bool

	injectQueue []syntheticPointerEvent

	now func() time.Time
}

// NewPointerManager creates a manager over the given source. A nil source is
// valid and means injected events only.
func NewPointerManager(source PointerSource) *PointerManager {
	return &PointerManager{source: source, now: time.Now}
}

// SetClock overrides the event timestamp source. Tests use this to make
// speed gating deterministic.
func (m *PointerManager) SetClock(now func() time.Time) {
	if now != nil {
		m.now = now
	}
}

// Attach registers a behavior. Behaviors receive events in attach order.
func (m *PointerManager) Attach(b PointerBehavior) {
	m.behaviors = append(m.behaviors, b)
}

// Detach unregisters a behavior.
func (m *PointerManager) Detach(b PointerBehavior) {
	for i, have := range m.behaviors {
		if have == b {
			copy(m.behaviors[i:], m.behaviors[i+1:])
			m.behaviors[len(m.behaviors)-1] = nil
			m.behaviors = m.behaviors[:len(m.behaviors)-1]
			return
		}
	}
}

// SetDismiss routes Escape presses and is consulted on outside presses.
func (m *PointerManager) SetDismiss(d *DismissManager) {
	m.dismiss = d
	if d != nil {
		m.Attach(d)
	}
}

// --- Synthetic input ---

// InjectMove queues a pointer move to (x, y), consumed on the next Update.
func (m *PointerManager) InjectMove(x, y float64) {
	m.injectQueue = append(m.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: m.queuedPressed()})
}

// InjectPress queues a press at (x, y).
func (m *PointerManager) InjectPress(x, y float64) {
	m.injectQueue = append(m.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a release at (x, y).
func (m *PointerManager) InjectRelease(x, y float64) {
	m.injectQueue = append(m.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: false})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (m *PointerManager) InjectClick(x, y float64) {
	m.InjectPress(x, y)
	m.InjectRelease(x, y)
}

// InjectPath queues a linear pointer path from (fromX, fromY) to (toX, toY)
// across the given number of frames (minimum 2), button up throughout.
func (m *PointerManager) InjectPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		m.injectQueue = append(m.injectQueue, syntheticPointerEvent{
			x:       fromX + (toX-fromX)*t,
			y:       fromY + (toY-fromY)*t,
			pressed: m.queuedPressed(),
		})
	}
}

// queuedPressed returns the pressed state the next injected move should
// carry: that of the last queued event, else the current state.
func (m *PointerManager) queuedPressed() bool {
	if n := len(m.injectQueue); n > 0 {
		return m.injectQueue[n-1].pressed
	}
	return m.wasPressed
}

// --- Frame processing ---

// Update consumes one injected event if any are queued, otherwise polls the
// source, then dispatches move/press/release edges and ticks every behavior.
func (m *PointerManager) Update(dt float64) {
	var x, y float64
	var pressed, esc bool

	if len(m.injectQueue) > 0 {
		ev := m.injectQueue[0]
		m.injectQueue = m.injectQueue[1:]
		x, y, pressed = ev.x, ev.y, ev.pressed
	} else if m.source != nil {
		x, y = m.source.CursorPosition()
		pressed = m.source.IsPressed()
		esc = m.source.IsEscapePressed()
	} else {
		x, y, pressed = m.lastX, m.lastY, m.wasPressed
	}

	t := m.now()

	if !m.hasPos || x != m.lastX || y != m.lastY {
		m.hasPos = true
		m.lastX, m.lastY = x, y
		for _, b := range m.behaviors {
			b.HandleMove(x, y, t)
		}
	}

	if pressed && !m.wasPressed {
		for _, b := range m.behaviors {
			b.HandlePress(x, y, t)
		}
	} else if !pressed && m.wasPressed {
		for _, b := range m.behaviors {
			b.HandleRelease(x, y, t)
		}
	}
	m.wasPressed = pressed

	if esc && !m.escWas && m.dismiss != nil {
		m.dismiss.HandleEscape()
	}
	m.escWas = esc

	for _, b := range m.behaviors {
		b.Update(dt)
	}
}
