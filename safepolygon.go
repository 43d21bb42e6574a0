package canopy

import (
	"math"
	"time"
)

// SafePolygonOptions tunes the hover-intent corridor.
type SafePolygonOptions struct {
	// Buffer inflates the corridor by this many pixels. Defaults to 0.5 so
	// the corridor edges sit just outside the exact geometry.
	Buffer float64

	// RequireIntent gates closing on cursor speed: a slow cursor leaving the
	// corridor closes immediately, a fast flick is given GraceDelay before
	// the position is evaluated again.
	RequireIntent bool

	// IntentThreshold is the speed, in pixels per millisecond, separating a
	// deliberate leave from a transient flick. Defaults to 0.1.
	IntentThreshold float64

	// GraceDelay is how long a fast-moving cursor may stay outside the
	// corridor before the pending close is evaluated. Defaults to 40ms.
	GraceDelay time.Duration

	// OverhangGrow and OverhangShrink are the asymmetric multipliers applied
	// to Buffer when spreading the corridor from the cursor's exit point.
	// When the panel overhangs the anchor on the cross axis the corridor
	// mouth shrinks (OverhangShrink per side); otherwise it grows toward the
	// panel's far corner (OverhangGrow). Tuned values, exposed rather than
	// hard-coded; defaults 4 and 0.5.
	OverhangGrow   float64
	OverhangShrink float64

	// now supplies sample timestamps for Sample. Tests override it; zero
	// means time.Now.
	now func() time.Time
}

func (o SafePolygonOptions) withDefaults() SafePolygonOptions {
	if o.Buffer == 0 {
		o.Buffer = 0.5
	}
	if o.IntentThreshold == 0 {
		o.IntentThreshold = 0.1
	}
	if o.GraceDelay == 0 {
		o.GraceDelay = 40 * time.Millisecond
	}
	if o.OverhangGrow == 0 {
		o.OverhangGrow = 4
	}
	if o.OverhangShrink == 0 {
		o.OverhangShrink = 0.5
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// Session is one live hover-intent evaluation, created when the pointer
// leaves the anchor toward the panel. Feed it pointer samples and drive its
// grace timer from the frame loop; it invokes onClose exactly once, when
// intent to leave is confirmed, and never after Cancel.
type Session struct {
	anchor   Rect
	floating Rect
	side     Side
	opts     SafePolygonOptions
	onClose  func()

	polygon []Vec2
	trough  Rect

	lastX, lastY float64
	lastT        time.Time
	hasLast      bool

	pending   bool
	pendingIn time.Duration
	done      bool
}

// NewSession starts a hover-intent session. exit is the cursor position at
// the moment it left the anchor; the corridor is anchored there. Degenerate
// or malformed rectangles disable the corridor, leaving only the trough and
// element checks (the conservative fallback: everything else closes).
func NewSession(anchor, floating Rect, side Side, exit Vec2, opts SafePolygonOptions, onClose func()) *Session {
	s := &Session{
		anchor:   anchor,
		floating: floating,
		side:     side,
		opts:     opts.withDefaults(),
		onClose:  onClose,
	}
	if anchor.IsValid() && floating.IsValid() && !anchor.IsZero() && !floating.IsZero() &&
		!math.IsNaN(exit.X) && !math.IsNaN(exit.Y) {
		s.polygon = buildCorridor(anchor, floating, side, exit, s.opts)
	}
	s.trough = troughRect(anchor, floating, side)
	return s
}

// Done reports whether the session has resolved (close fired, re-entry
// detected, or Cancel called).
func (s *Session) Done() bool { return s.done }

// Cancel tears the session down without firing the close callback. Safe to
// call at any time, including after the session resolved on its own.
func (s *Session) Cancel() {
	s.pending = false
	s.done = true
}

// Polygon returns the corridor boundary points, for debug overlays. Nil when
// the geometry was degenerate.
func (s *Session) Polygon() []Vec2 { return s.polygon }

// Sample feeds a pointer position stamped with the wall clock.
func (s *Session) Sample(x, y float64) {
	s.SampleAt(x, y, s.opts.now())
}

// SampleAt feeds a pointer position with an explicit timestamp. Samples
// inside the panel or anchor resolve the session without closing; samples
// inside the corridor or trough keep it alive; anything else confirms leave,
// subject to intent gating.
func (s *Session) SampleAt(x, y float64, t time.Time) {
	if s.done {
		return
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		// Malformed geometry favors closing.
		s.confirmLeave()
		return
	}

	// Re-entry tears the session down; the next anchor leave starts a new one.
	if s.floating.Contains(x, y) || s.anchor.Contains(x, y) {
		s.pending = false
		s.done = true
		return
	}

	if s.inSafeZone(x, y) {
		s.pending = false
		s.recordSample(x, y, t)
		return
	}

	if !s.opts.RequireIntent {
		s.confirmLeave()
		return
	}

	speed, known := s.speedFrom(x, y, t)
	s.recordSample(x, y, t)
	if known && speed <= s.opts.IntentThreshold {
		// Slow and deliberate: the user really is leaving.
		s.confirmLeave()
		return
	}
	// Fast flick (or speed unknown): re-evaluate after the grace delay
	// instead of closing on this sample.
	if !s.pending {
		s.pending = true
		s.pendingIn = s.opts.GraceDelay
	}
}

// Update advances the grace timer by dt seconds. Call once per frame while
// the session is live. When a pending close expires, the last known position
// is evaluated once more: still outside closes, back inside cancels.
func (s *Session) Update(dt float64) {
	if s.done || !s.pending {
		return
	}
	s.pendingIn -= time.Duration(dt * float64(time.Second))
	if s.pendingIn > 0 {
		return
	}
	s.pending = false
	if s.hasLast && (s.inSafeZone(s.lastX, s.lastY) ||
		s.floating.Contains(s.lastX, s.lastY) || s.anchor.Contains(s.lastX, s.lastY)) {
		return
	}
	s.confirmLeave()
}

func (s *Session) recordSample(x, y float64, t time.Time) {
	s.lastX, s.lastY = x, y
	s.lastT = t
	s.hasLast = true
}

// speedFrom computes the instantaneous speed in px/ms from the previous
// sample. Returns known=false for the first sample or a non-advancing clock.
func (s *Session) speedFrom(x, y float64, t time.Time) (speed float64, known bool) {
	if !s.hasLast {
		return 0, false
	}
	ms := float64(t.Sub(s.lastT)) / float64(time.Millisecond)
	if ms <= 0 {
		return 0, false
	}
	dx := x - s.lastX
	dy := y - s.lastY
	return math.Hypot(dx, dy) / ms, true
}

func (s *Session) inSafeZone(x, y float64) bool {
	if !s.trough.IsZero() && s.trough.Contains(x, y) {
		return true
	}
	return len(s.polygon) >= 3 && pointInPolygon(s.polygon, x, y)
}

func (s *Session) confirmLeave() {
	s.pending = false
	s.done = true
	if s.onClose != nil {
		s.onClose()
	}
}

// --- Geometry ---

// troughRect is the rectangular gap between the facing edges of the anchor
// and panel, spanning their shared cross-axis extent. Lateral movement inside
// it must never close the panel. Zero when the rects overlap or share no
// cross-axis extent.
func troughRect(anchor, floating Rect, side Side) Rect {
	switch side {
	case SideTop:
		x0 := math.Max(anchor.X, floating.X)
		x1 := math.Min(anchor.X+anchor.Width, floating.X+floating.Width)
		return Rect{X: x0, Y: floating.Y + floating.Height, Width: x1 - x0, Height: anchor.Y - (floating.Y + floating.Height)}
	case SideBottom:
		x0 := math.Max(anchor.X, floating.X)
		x1 := math.Min(anchor.X+anchor.Width, floating.X+floating.Width)
		return Rect{X: x0, Y: anchor.Y + anchor.Height, Width: x1 - x0, Height: floating.Y - (anchor.Y + anchor.Height)}
	case SideLeft:
		y0 := math.Max(anchor.Y, floating.Y)
		y1 := math.Min(anchor.Y+anchor.Height, floating.Y+floating.Height)
		return Rect{X: floating.X + floating.Width, Y: y0, Width: anchor.X - (floating.X + floating.Width), Height: y1 - y0}
	case SideRight:
		y0 := math.Max(anchor.Y, floating.Y)
		y1 := math.Min(anchor.Y+anchor.Height, floating.Y+floating.Height)
		return Rect{X: anchor.X + anchor.Width, Y: y0, Width: floating.X - (anchor.X + anchor.Width), Height: y1 - y0}
	}
	return Rect{}
}

// buildCorridor computes the safe travel polygon from the cursor's exit point
// to the panel's facing edge. Two points near the exit form the corridor
// mouth; its spread depends on whether the panel overhangs the anchor on the
// cross axis (tapering toward a larger panel) and on which half of the anchor
// the cursor left from (skewing toward the panel's far corner otherwise).
func buildCorridor(anchor, floating Rect, side Side, exit Vec2, opts SafePolygonOptions) []Vec2 {
	buf := opts.Buffer
	grow := buf * opts.OverhangGrow
	shrink := buf * opts.OverhangShrink

	switch side {
	case SideTop, SideBottom:
		overhang := floating.Width > anchor.Width
		fromRight := exit.X > anchor.X+anchor.Width/2

		var m1x, m2x float64
		if overhang {
			m1x = exit.X + shrink
			m2x = exit.X - shrink
		} else if fromRight {
			m1x, m2x = exit.X+grow, exit.X+grow
		} else {
			m1x, m2x = exit.X-grow, exit.X-grow
		}

		if side == SideTop {
			// Panel above: mouth sits just below the exit, far edge is the
			// panel's bottom edge pulled inside by the buffer.
			mouthY := exit.Y + buf + 1
			nearY := floating.Y + floating.Height - buf
			farY := floating.Y + floating.Height - buf
			if !overhang {
				if fromRight {
					farY = floating.Y // right corner reaches the panel's top
				} else {
					nearY = floating.Y
				}
			}
			return []Vec2{
				{m1x, mouthY},
				{m2x, mouthY},
				{floating.X, nearY},
				{floating.X + floating.Width, farY},
			}
		}
		mouthY := exit.Y - buf - 1
		nearY := floating.Y + buf
		farY := floating.Y + buf
		if !overhang {
			if fromRight {
				farY = floating.Y + floating.Height
			} else {
				nearY = floating.Y + floating.Height
			}
		}
		return []Vec2{
			{m1x, mouthY},
			{m2x, mouthY},
			{floating.X, nearY},
			{floating.X + floating.Width, farY},
		}

	case SideLeft, SideRight:
		overhang := floating.Height > anchor.Height
		fromBottom := exit.Y > anchor.Y+anchor.Height/2

		var m1y, m2y float64
		if overhang {
			m1y = exit.Y + shrink
			m2y = exit.Y - shrink
		} else if fromBottom {
			m1y, m2y = exit.Y+grow, exit.Y+grow
		} else {
			m1y, m2y = exit.Y-grow, exit.Y-grow
		}

		if side == SideLeft {
			mouthX := exit.X + buf + 1
			nearX := floating.X + floating.Width - buf
			farX := floating.X + floating.Width - buf
			if !overhang {
				if fromBottom {
					farX = floating.X
				} else {
					nearX = floating.X
				}
			}
			return []Vec2{
				{mouthX, m1y},
				{mouthX, m2y},
				{nearX, floating.Y},
				{farX, floating.Y + floating.Height},
			}
		}
		mouthX := exit.X - buf - 1
		nearX := floating.X + buf
		farX := floating.X + buf
		if !overhang {
			if fromBottom {
				farX = floating.X + floating.Width
			} else {
				nearX = floating.X + floating.Width
			}
		}
		return []Vec2{
			{mouthX, m1y},
			{mouthX, m2y},
			{nearX, floating.Y},
			{farX, floating.Y + floating.Height},
		}
	}
	return nil
}

// pointInPolygon reports whether (x, y) lies inside a convex polygon using
// the cross-product sign test. Either winding order is accepted; repeated
// points (a collapsed corridor mouth) contribute degenerate edges and are
// harmless.
func pointInPolygon(points []Vec2, x, y float64) bool {
	n := len(points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := points[i].X
		y1 := points[i].Y
		j := (i + 1) % n
		x2 := points[j].X
		y2 := points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}
