// Package session implements the per-tick interaction state machine:
// ink accumulation, hover tracking, pinch-click debouncing, and the
// draw-to-open-palm recognition trigger.
package session

import (
	"image"
	"time"

	"github.com/ayusman/airpredict/internal/gesture"
)

const (
	// DefaultPinchCooldown prevents a single physical pinch from
	// committing multiple clicks.
	DefaultPinchCooldown = 500 * time.Millisecond
	// DefaultClearDelay is how long recognized ink stays visible before
	// the canvas-clear event fires.
	DefaultClearDelay = 1000 * time.Millisecond
)

// Target is a named rectangular click region supplied by the UI layer.
// The session only hit-tests it; invoking the action is the UI's job.
type Target struct {
	ID      string          `json:"id"`
	Rect    image.Rectangle `json:"rect"`
	Enabled bool            `json:"enabled"`
}

// Input is one tick's worth of gesture signal: the classified symbol and
// the smoothed display-space cursor position.
type Input struct {
	Gesture gesture.Symbol
	Point   image.Point
}

// Segment is one rendered ink segment.
type Segment struct {
	From image.Point `json:"from"`
	To   image.Point `json:"to"`
}

// Result reports everything the UI boundary needs to know about one tick.
type Result struct {
	// HasSignal is false when no hand was observed; all other fields
	// except CanvasCleared are then stale.
	HasSignal bool

	// Cursor is the smoothed cursor position.
	Cursor image.Point

	// Drawing selects the cursor's visual mode (ink vs idle).
	Drawing bool

	// Segment is the ink segment added this tick, if any.
	Segment *Segment

	// HoverChanged is true when Hovered differs from the previous tick.
	HoverChanged bool

	// Hovered is the ID of the hovered target, or "" when none.
	Hovered string

	// Activated is the ID of a target committed by a pinch-click this
	// tick, or "".
	Activated string

	// Recognize carries a snapshot of the completed ink stroke when a
	// draw run ended with an open palm this tick.
	Recognize []image.Point

	// CanvasCleared is true when the delayed post-recognition clear
	// fired this tick.
	CanvasCleared bool
}

// scheduledEvent is a one-shot delayed action checked at the start of each
// tick. Keeping the queue on the tick goroutine means delayed actions never
// race with tick processing.
type scheduledEvent struct {
	fireAt time.Time
	fn     func()
}

// Session owns all mutable interaction state for one run of the
// application: ink stroke, hover, pinch debounce, and the scheduled-event
// queue. It is driven from a single goroutine; Tick is not safe for
// concurrent use.
type Session struct {
	// Canvas is the drawing area in display coordinates. Ink is only
	// recorded strictly inside it.
	Canvas image.Rectangle

	PinchCooldown time.Duration
	ClearDelay    time.Duration

	targets []Target

	hovered      string
	pinchLatched bool

	stroke    []image.Point
	lastPoint image.Point
	hasLast   bool

	timers       []scheduledEvent
	pendingClear bool
}

// New creates a Session drawing into the given canvas rectangle.
func New(canvas image.Rectangle) *Session {
	return &Session{
		Canvas:        canvas,
		PinchCooldown: DefaultPinchCooldown,
		ClearDelay:    DefaultClearDelay,
	}
}

// SetTargets replaces the hit-test target list. Order is significant:
// hover ties are broken by position in this list, never by area.
func (s *Session) SetTargets(targets []Target) {
	s.targets = append(s.targets[:0], targets...)
}

// Targets returns the current target list.
func (s *Session) Targets() []Target {
	return s.targets
}

// Stroke returns the in-progress ink stroke.
func (s *Session) Stroke() []image.Point {
	return s.stroke
}

// Hovered returns the currently hovered target ID, or "".
func (s *Session) Hovered() string {
	return s.hovered
}

// ClearInk discards the in-progress stroke and lifts the pen. Used by the
// UI clear command.
func (s *Session) ClearInk() {
	s.stroke = s.stroke[:0]
	s.hasLast = false
}

// Tick advances the state machine by one frame. in is nil when no hand was
// observed this tick; previous cursor, hover, and ink state then persist
// untouched, but due scheduled events still fire.
//
// Within a tick the order is fixed: scheduled events, hover recomputation,
// then gesture handling (ink or pinch/recognition). The draw-run state
// (hasLast) carries the edge detection: recognition fires only when an
// open palm ends a run that is still open.
func (s *Session) Tick(in *Input, now time.Time) Result {
	s.runDue(now)

	res := Result{CanvasCleared: s.pendingClear}
	s.pendingClear = false

	if in == nil {
		res.Hovered = s.hovered
		return res
	}

	res.HasSignal = true
	res.Cursor = in.Point

	res.Hovered, res.HoverChanged = s.updateHover(in.Point)

	switch in.Gesture {
	case gesture.SymbolDraw:
		res.Drawing = true
		if s.hasLast && s.insideCanvas(in.Point) {
			if len(s.stroke) == 0 {
				s.stroke = append(s.stroke, s.lastPoint)
			}
			s.stroke = append(s.stroke, in.Point)
			res.Segment = &Segment{From: s.lastPoint, To: in.Point}
		}
		s.lastPoint = in.Point
		s.hasLast = true

	default:
		// MOVE, PINCH, or NONE: pen lift. Recognition is edge-triggered
		// on the draw-to-open-palm transition only, so a NONE pause
		// keeps the accumulated ink without firing.
		if in.Gesture == gesture.SymbolMove && s.hasLast && len(s.stroke) > 0 {
			res.Recognize = append([]image.Point(nil), s.stroke...)
			s.stroke = s.stroke[:0]
			s.schedule(now.Add(s.ClearDelay), func() { s.pendingClear = true })
		}

		if in.Gesture == gesture.SymbolPinch && !s.pinchLatched && res.Hovered != "" {
			res.Activated = res.Hovered
			s.pinchLatched = true
			s.schedule(now.Add(s.PinchCooldown), func() { s.pinchLatched = false })
		}

		s.hasLast = false
	}

	return res
}

// updateHover hit-tests the cursor against the enabled targets in fixed
// order and returns the hovered ID plus whether it changed.
func (s *Session) updateHover(p image.Point) (string, bool) {
	hovered := ""
	for _, t := range s.targets {
		if !t.Enabled {
			continue
		}
		r := t.Rect
		if p.X > r.Min.X && p.X < r.Max.X && p.Y > r.Min.Y && p.Y < r.Max.Y {
			hovered = t.ID
			break
		}
	}

	changed := hovered != s.hovered
	s.hovered = hovered
	return hovered, changed
}

// insideCanvas reports whether p is strictly inside the canvas rect.
func (s *Session) insideCanvas(p image.Point) bool {
	return p.X > s.Canvas.Min.X && p.X < s.Canvas.Max.X &&
		p.Y > s.Canvas.Min.Y && p.Y < s.Canvas.Max.Y
}

// schedule enqueues a one-shot event for the tick loop.
func (s *Session) schedule(fireAt time.Time, fn func()) {
	s.timers = append(s.timers, scheduledEvent{fireAt: fireAt, fn: fn})
}

// runDue fires every scheduled event whose time has come. Events run on
// the tick goroutine, never concurrently with tick processing.
func (s *Session) runDue(now time.Time) {
	remaining := s.timers[:0]
	for _, ev := range s.timers {
		if !ev.fireAt.After(now) {
			ev.fn()
		} else {
			remaining = append(remaining, ev)
		}
	}
	s.timers = remaining
}
