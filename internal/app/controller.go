package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/ayusman/airpredict/internal/predict"
	"github.com/ayusman/airpredict/internal/server/api"
	"github.com/ayusman/airpredict/internal/session"
)

// Command names accepted by Execute.
const (
	CmdToggle    = "toggle"
	CmdSpace     = "space"
	CmdBackspace = "backspace"
	CmdClear     = "clear"
	CmdMode      = "mode"
	CmdSuggest   = "suggest"
	CmdSpeak     = "speak"
)

// State returns a snapshot of the current session for the API.
func (a *App) State() api.State {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return api.State{
		Running:       a.enabled,
		Mode:          string(a.mode),
		Sentence:      a.sentence.Text(),
		Suggestions:   append([]string(nil), a.suggestions...),
		LastCharacter: a.lastPred.Label,
		Confidence:    float64(a.lastPred.Confidence),
		Hovered:       a.sess.Hovered(),
	}
}

// Execute applies a UI command. Commands mutate session state under the
// same mutex the pipeline tick holds, so they land between ticks.
func (a *App) Execute(cmd api.Command) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.applyCommand(cmd)
}

// Targets returns the current pinch-click target layout.
func (a *App) Targets() []session.Target {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]session.Target(nil), a.sess.Targets()...)
}

// SetTargets replaces the pinch-click target layout.
func (a *App) SetTargets(targets []session.Target) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sess.SetTargets(targets)
}

// applyCommand performs one command. Call with the mutex held.
func (a *App) applyCommand(cmd api.Command) error {
	switch cmd.Name {
	case CmdToggle:
		switch cmd.Arg {
		case "on":
			if !a.enabled {
				a.smoother.Reset()
			}
			a.enabled = true
		case "off":
			a.enabled = false
		case "":
			if !a.enabled {
				a.smoother.Reset()
			}
			a.enabled = !a.enabled
		default:
			return fmt.Errorf("%w: toggle arg %q", api.ErrInvalidCommand, cmd.Arg)
		}

	case CmdSpace:
		if a.sentence.Space() {
			// A word just completed; that is the moment suggestions are
			// worth recomputing
			a.refreshSuggestions()
		}
		a.events.Publish("sentence", map[string]string{"text": a.sentence.Text()})

	case CmdBackspace:
		a.sentence.Backspace()
		a.suggestions = nil
		a.events.Publish("sentence", map[string]string{"text": a.sentence.Text()})

	case CmdClear:
		a.sentence.Clear()
		a.sess.ClearInk()
		a.suggestions = nil
		a.lastPred = predict.Prediction{}
		a.events.Publish("sentence", map[string]string{"text": ""})
		a.events.Publish("canvas_cleared", nil)

	case CmdMode:
		mode := predict.Mode(cmd.Arg)
		if mode != predict.ModeAlphabet && mode != predict.ModeDigit {
			return fmt.Errorf("%w: mode %q", api.ErrInvalidCommand, cmd.Arg)
		}
		a.mode = mode
		if a.config.Store != nil {
			if err := a.config.Store.Settings().Set("mode", string(mode)); err != nil {
				log.Printf("Error persisting mode: %v", err)
			}
		}
		a.events.Publish("mode", map[string]string{"mode": string(mode)})

	case CmdSuggest:
		word := strings.TrimSpace(cmd.Arg)
		if word == "" {
			return fmt.Errorf("%w: suggest needs a word", api.ErrInvalidCommand)
		}
		a.sentence.Space()
		a.sentence.Append(word)
		a.sentence.Space()
		a.refreshSuggestions()
		a.events.Publish("sentence", map[string]string{"text": a.sentence.Text()})

	case CmdSpeak:
		a.speech.Say(a.sentence.Text())

	default:
		return fmt.Errorf("%w: %q", api.ErrInvalidCommand, cmd.Name)
	}

	return nil
}

// commandForTarget maps a pinch-activated target ID to the command it
// stands for. Suggestion buttons carry their word in the ID after a colon,
// e.g. "suggest:hello".
func commandForTarget(id string) api.Command {
	if word, ok := strings.CutPrefix(id, "suggest:"); ok {
		return api.Command{Name: CmdSuggest, Arg: word}
	}
	if arg, ok := strings.CutPrefix(id, "mode:"); ok {
		return api.Command{Name: CmdMode, Arg: arg}
	}
	return api.Command{Name: id}
}
