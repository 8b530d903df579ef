package app

import (
	"errors"
	"image"
	"log"
	"time"

	"github.com/ayusman/airpredict/internal/gesture"
	"github.com/ayusman/airpredict/internal/glyph"
	"github.com/ayusman/airpredict/internal/server/api"
	"github.com/ayusman/airpredict/internal/session"
)

// TickInterval is the fixed pipeline cadence. Every tick reads one frame,
// classifies at most one hand, and advances the session state machine.
const TickInterval = 10 * time.Millisecond

// runPipeline is the main loop. It owns the session state; the API surface
// reaches it only through the shared mutex.
//
// Per tick:
// 1. Read a mirrored frame from the camera
// 2. Activity gate: a static scene skips detection, behaving as a
//    no-hand tick
// 3. Hand detection and gesture classification
// 4. Map and smooth the cursor position
// 5. Advance the session (ink, hover, pinch, recognition trigger)
// 6. Act on session results: glyph recognition, target activation
func (a *App) runPipeline(stopCh chan struct{}) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			a.tick(time.Now())
		}
	}
}

// tick processes one frame.
func (a *App) tick(now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.enabled {
		return
	}

	frame, err := a.camera.ReadFrame()
	if err != nil {
		// A dropped frame behaves like a no-hand tick
		a.advance(nil, now)
		return
	}

	active, _ := a.gate.Active(frame)
	if !active {
		frame.Close()
		a.advance(nil, now)
		return
	}

	hands, err := a.detector.Detect(frame)
	frame.Close()
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		a.advance(nil, now)
		return
	}
	if len(hands) == 0 {
		a.advance(nil, now)
		return
	}

	obs := a.classifier.Classify(&hands[0], a.camera.Width(), a.camera.Height())

	// NONE still carries a cursor position; only the gesture is inert
	raw := obs.Cursor
	if obs.Symbol == gesture.SymbolPinch {
		raw = obs.Pinch
	}
	mapped := a.mapper.Map(raw, a.config.DisplayW, a.config.DisplayH)
	smoothed := a.smoother.Update(mapped)

	a.advance(&session.Input{Gesture: obs.Symbol, Point: smoothed}, now)
}

// advance runs one session tick and reacts to its results. Call with the
// mutex held.
func (a *App) advance(in *session.Input, now time.Time) {
	res := a.sess.Tick(in, now)

	if res.CanvasCleared {
		a.events.Publish("canvas_cleared", nil)
	}
	if !res.HasSignal {
		return
	}

	a.events.Publish("cursor", map[string]interface{}{
		"x":       res.Cursor.X,
		"y":       res.Cursor.Y,
		"drawing": res.Drawing,
	})
	if res.Segment != nil {
		a.events.Publish("segment", res.Segment)
	}
	if res.HoverChanged {
		a.events.Publish("hover", map[string]string{"target": res.Hovered})
	}

	if res.Recognize != nil {
		a.recognizeStroke(res.Recognize)
	}
	if res.Activated != "" {
		a.events.Publish("activate", map[string]string{"target": res.Activated})
		// Targets named after commands double as buttons; anything else is
		// the UI's business, so an unknown name is not an error here
		if err := a.applyCommand(commandForTarget(res.Activated)); err != nil && !errors.Is(err, api.ErrInvalidCommand) {
			log.Printf("Target %q: %v", res.Activated, err)
		}
	}
}

// recognizeStroke rasterizes a completed stroke, classifies it under the
// active mode, and commits the character. Call with the mutex held.
func (a *App) recognizeStroke(stroke []image.Point) {
	if a.recognizer == nil {
		return
	}

	canvas := glyph.Rasterize(stroke, a.sess.Canvas.Dx(), a.sess.Canvas.Dy())
	defer canvas.Close()

	tensor, err := glyph.Normalize(canvas)
	if err != nil {
		// An empty glyph is a stray flick of the finger, not an error
		// worth surfacing
		if err != glyph.ErrEmptyGlyph {
			log.Printf("Error normalizing glyph: %v", err)
		}
		return
	}

	pred, err := a.recognizer.Recognize(a.mode, tensor)
	if err != nil {
		log.Printf("Error recognizing glyph: %v", err)
		return
	}

	a.lastPred = pred
	a.sentence.Append(pred.Label)
	a.speech.Say(pred.Label)
	a.recordRecognition(pred)
	a.events.Publish("recognition", pred)
	a.events.Publish("sentence", map[string]string{"text": a.sentence.Text()})
}
