// Package app wires the capture, detection, and recognition components
// into the air-writing application and owns its lifecycle.
package app

import (
	"fmt"
	"image"
	"log"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/ayusman/airpredict/internal/capture"
	"github.com/ayusman/airpredict/internal/cursor"
	"github.com/ayusman/airpredict/internal/detector"
	"github.com/ayusman/airpredict/internal/gesture"
	"github.com/ayusman/airpredict/internal/predict"
	"github.com/ayusman/airpredict/internal/server"
	"github.com/ayusman/airpredict/internal/server/api"
	"github.com/ayusman/airpredict/internal/session"
	"github.com/ayusman/airpredict/internal/speech"
	"github.com/ayusman/airpredict/internal/store"
)

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	CameraID int

	// Display dimensions define the coordinate space cursor positions and
	// targets live in.
	DisplayW int
	DisplayH int

	// ActivityThresh is the percent of changed pixels below which a frame
	// skips hand detection.
	ActivityThresh float64

	// Model files. Empty paths leave the corresponding capability off.
	AlphabetModel string
	DigitModel    string
	WordModel     string
	VocabPath     string

	// SpeechCommand is the external text-to-speech command, e.g.
	// "espeak-ng". Empty disables speech.
	SpeechCommand string
}

// App is the main application that orchestrates the air-writing pipeline.
type App struct {
	config Config

	camera     capture.Camera
	gate       *capture.ActivityGate
	detector   detector.Detector
	classifier *gesture.Classifier
	mapper     *cursor.Mapper
	smoother   *cursor.Smoother

	sess     *session.Session
	sentence session.SentenceBuffer

	recognizer *predict.Recognizer
	suggester  *predict.Suggester
	speech     speech.Sink
	events     *server.EventsHandler

	mode        predict.Mode
	suggestions []string
	lastPred    predict.Prediction

	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.DisplayW <= 0 {
		config.DisplayW = 1200
	}
	if config.DisplayH <= 0 {
		config.DisplayH = 700
	}
	activityThresh := config.ActivityThresh
	if activityThresh <= 0 {
		activityThresh = 0.5
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		gate:       capture.NewActivityGate(activityThresh),
		classifier: gesture.NewClassifier(),
		smoother:   cursor.NewSmoother(),
		sess:       session.New(canvasRect(config.DisplayW, config.DisplayH)),
		speech:     speech.NullSink{},
		events:     server.NewEventsHandler(),
		mode:       predict.ModeAlphabet,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	if config.SpeechCommand != "" {
		a.speech = speech.NewCommandSink(config.SpeechCommand)
	}

	if config.Store != nil {
		settings := config.Store.Settings()
		if m := settings.GetDefault("mode", string(predict.ModeAlphabet)); m != "" {
			a.mode = predict.Mode(m)
		}
		if v, err := strconv.ParseFloat(settings.GetDefault("pinch_threshold", ""), 64); err == nil && v > 0 {
			a.classifier.PinchThreshold = v
		}
		if v, err := strconv.ParseFloat(settings.GetDefault("smoothing_alpha", ""), 64); err == nil && v > 0 && v <= 1 {
			a.smoother.Alpha = v
		}
	}

	return a
}

// canvasRect is the drawing area: the display minus a bottom strip for
// the toolbar targets.
func canvasRect(displayW, displayH int) image.Rectangle {
	toolbar := displayH / 8
	return image.Rect(0, 0, displayW, displayH-toolbar)
}

// loadModels builds the recognizer and suggester from the configured model
// files. Missing paths leave the capability disabled rather than failing.
func (a *App) loadModels() error {
	classifiers := map[predict.Mode]predict.Classifier{}
	if a.config.AlphabetModel != "" {
		c, err := predict.LoadONNXClassifier(a.config.AlphabetModel)
		if err != nil {
			return fmt.Errorf("alphabet model: %w", err)
		}
		classifiers[predict.ModeAlphabet] = c
	}
	if a.config.DigitModel != "" {
		c, err := predict.LoadONNXClassifier(a.config.DigitModel)
		if err != nil {
			return fmt.Errorf("digit model: %w", err)
		}
		classifiers[predict.ModeDigit] = c
	}
	if len(classifiers) > 0 {
		a.recognizer = predict.NewRecognizer(classifiers)
	}

	if a.config.WordModel != "" && a.config.VocabPath != "" {
		model, err := predict.LoadONNXSequenceModel(a.config.WordModel)
		if err != nil {
			return fmt.Errorf("word model: %w", err)
		}
		tokenizer, err := predict.LoadTokenizer(a.config.VocabPath)
		if err != nil {
			model.Close()
			return fmt.Errorf("vocabulary: %w", err)
		}
		a.suggester = predict.NewSuggester(model, tokenizer)
	}

	return nil
}

// SetEnabled enables or disables gesture processing. Enabling resets the
// cursor smoother so the session starts from the origin.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if enabled && !a.enabled {
		a.smoother.Reset()
	}
	a.enabled = enabled
}

// IsEnabled returns whether gesture processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetRecognizer sets the character recognizer.
func (a *App) SetRecognizer(r *predict.Recognizer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recognizer = r
}

// SetSuggester sets the next-word suggester.
func (a *App) SetSuggester(s *predict.Suggester) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.suggester = s
}

// SetSpeech sets the speech sink.
func (a *App) SetSpeech(s speech.Sink) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.speech = s
}

// Events returns the WebSocket event hub for the server to mount.
func (a *App) Events() *server.EventsHandler {
	return a.events
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Session returns the interaction session.
func (a *App) Session() *session.Session {
	return a.sess
}

// Start opens the camera, loads the models, and begins the pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("opening camera: %w", err)
	}

	if a.recognizer == nil && a.suggester == nil {
		if err := a.loadModels(); err != nil {
			a.camera.Close()
			return err
		}
	}

	a.mapper = cursor.NewMapper(a.camera.Width(), a.camera.Height())
	a.smoother.Reset()

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Air-writing pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.gate.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if a.recognizer != nil {
		if err := a.recognizer.Close(); err != nil {
			log.Printf("Error closing recognizer: %v", err)
		}
	}
	if a.suggester != nil {
		if err := a.suggester.Close(); err != nil {
			log.Printf("Error closing suggester: %v", err)
		}
	}
	if err := a.speech.Close(); err != nil {
		log.Printf("Error closing speech sink: %v", err)
	}

	log.Println("Air-writing pipeline stopped")
}

// recordRecognition persists one committed character to the history.
func (a *App) recordRecognition(pred predict.Prediction) {
	if a.config.Store == nil {
		return
	}
	err := a.config.Store.Recognitions().Create(&store.Recognition{
		ID:         uuid.NewString(),
		Character:  pred.Label,
		Mode:       string(a.mode),
		Confidence: float64(pred.Confidence),
	})
	if err != nil {
		log.Printf("Error recording recognition: %v", err)
	}
}

// refreshSuggestions recomputes the next-word candidates from the current
// sentence. Call with the mutex held.
func (a *App) refreshSuggestions() {
	if a.suggester == nil {
		a.suggestions = nil
		return
	}
	words := a.sentence.Words()
	suggestions, err := a.suggester.Suggest(words, predict.DefaultSuggestions)
	if err != nil {
		log.Printf("Error suggesting next word: %v", err)
		a.suggestions = nil
		return
	}
	a.suggestions = suggestions
	a.events.Publish("suggestions", suggestions)
}

var _ api.Controller = (*App)(nil)
