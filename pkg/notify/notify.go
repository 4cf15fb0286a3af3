// Package notify carries user-facing notices from services to whatever
// surface renders them. Services receive a Notifier and never look one up.
package notify

import (
	"context"
	"sync"

	"github.com/yukselticaret/trendyshop-backend/pkg/logger"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives notices about user-triggered operations.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
	Info(ctx context.Context, msg string)
}

// Discard drops every notice.
type Discard struct{}

func (Discard) Success(context.Context, string) {}
func (Discard) Error(context.Context, string)   {}
func (Discard) Info(context.Context, string)    {}

// Buffer collects notices for a single request.
type Buffer struct {
	mu      sync.Mutex
	notices []Notice
}

func (b *Buffer) add(level Level, msg string) {
	if b == nil || msg == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notices = append(b.notices, Notice{Level: level, Message: msg})
}

// Notices returns a copy of the collected notices.
func (b *Buffer) Notices() []Notice {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.notices) == 0 {
		return nil
	}
	out := make([]Notice, len(b.notices))
	copy(out, b.notices)
	return out
}

type bufferKey struct{}

// WithBuffer attaches a fresh buffer to ctx.
func WithBuffer(ctx context.Context) (context.Context, *Buffer) {
	buf := &Buffer{}
	return context.WithValue(ctx, bufferKey{}, buf), buf
}

// FromContext returns the request buffer, or nil outside a request.
func FromContext(ctx context.Context) *Buffer {
	if ctx == nil {
		return nil
	}
	buf, _ := ctx.Value(bufferKey{}).(*Buffer)
	return buf
}

// Sink writes notices into the request buffer found on the context and logs
// them. Outside a request the notice is only logged.
type Sink struct {
	logg *logger.Logger
}

func NewSink(logg *logger.Logger) *Sink {
	return &Sink{logg: logg}
}

func (s *Sink) Success(ctx context.Context, msg string) { s.emit(ctx, LevelSuccess, msg) }
func (s *Sink) Error(ctx context.Context, msg string)   { s.emit(ctx, LevelError, msg) }
func (s *Sink) Info(ctx context.Context, msg string)    { s.emit(ctx, LevelInfo, msg) }

func (s *Sink) emit(ctx context.Context, level Level, msg string) {
	FromContext(ctx).add(level, msg)
	if s == nil || s.logg == nil {
		return
	}
	ctx = s.logg.WithFields(ctx, map[string]any{"notice_level": string(level), "notice": msg})
	s.logg.Debug(ctx, "notify.notice")
}
