// Package notify delivers user-facing outcome messages ("Moved Ramen to
// Day 3"). Services notify; the engine packages never do.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/alexanderramin/itinera/internal/cli/formatter"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Sink interface {
	Notify(ctx context.Context, message string, severity Severity)
}

// Multi fans a notification out to every sink in order.
type Multi []Sink

func (m Multi) Notify(ctx context.Context, message string, severity Severity) {
	for _, s := range m {
		s.Notify(ctx, message, severity)
	}
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(context.Context, string, Severity) {}

// LogSink records notifications as structured log lines.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Notify(ctx context.Context, message string, severity Severity) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(ctx, severity.level(), message, "component", "notify", "severity", string(severity))
}

func (s Severity) level() slog.Level {
	switch s {
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// TerminalSink prints one styled line per notification.
type TerminalSink struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminalSink(out io.Writer) *TerminalSink {
	return &TerminalSink{out: out}
}

func (s *TerminalSink) Notify(_ context.Context, message string, severity Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, Render(message, severity))
}

// Render formats a notification with a severity marker.
func Render(message string, severity Severity) string {
	switch severity {
	case SeveritySuccess:
		return formatter.StyleGreen.Render("✓ " + message)
	case SeverityWarning:
		return formatter.StyleYellow.Render("! " + message)
	case SeverityError:
		return formatter.StyleRed.Render("✗ " + message)
	default:
		return formatter.StyleBlue.Render("• " + message)
	}
}

// Recorder keeps notifications in memory. Tests use it to assert on what a
// service reported.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

type Event struct {
	Message  string
	Severity Severity
}

func (r *Recorder) Notify(_ context.Context, message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Message: message, Severity: severity})
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Last returns the most recent event, or the zero Event.
func (r *Recorder) Last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}
	}
	return r.events[len(r.events)-1]
}
