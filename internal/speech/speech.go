// Package speech voices committed sentences through an external
// text-to-speech command.
package speech

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds one synthesis invocation.
const DefaultTimeout = 30 * time.Second

// Sink accepts text to speak. Say never blocks the caller on synthesis.
type Sink interface {
	Say(text string)
	Close() error
}

// NullSink discards everything. Used when speech is disabled.
type NullSink struct{}

func (NullSink) Say(string) {}

func (NullSink) Close() error { return nil }

// CommandSink speaks by running an external command with the text as its
// final argument, e.g. "espeak-ng" or "say". Requests queue on a single
// worker goroutine so utterances never overlap; when the queue is full
// the newest request is dropped.
type CommandSink struct {
	command string
	args    []string
	timeout time.Duration

	queue chan string
	done  chan struct{}
}

// NewCommandSink starts a CommandSink for the given command line.
func NewCommandSink(command string, args ...string) *CommandSink {
	s := &CommandSink{
		command: command,
		args:    args,
		timeout: DefaultTimeout,
		queue:   make(chan string, 4),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

// Say enqueues text for synthesis. Empty text is ignored.
func (s *CommandSink) Say(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	select {
	case s.queue <- text:
	default:
		log.Printf("speech: queue full, dropping %q", text)
	}
}

// Close stops the worker after the current utterance finishes.
func (s *CommandSink) Close() error {
	close(s.queue)
	<-s.done
	return nil
}

func (s *CommandSink) run() {
	defer close(s.done)
	for text := range s.queue {
		if err := s.speak(text); err != nil {
			log.Printf("speech: %v", err)
		}
	}
}

func (s *CommandSink) speak(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	args := append(append([]string(nil), s.args...), text)
	cmd := exec.CommandContext(ctx, s.command, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("running %s: %w (%s)", s.command, err, strings.TrimSpace(string(out)))
	}
	return nil
}
