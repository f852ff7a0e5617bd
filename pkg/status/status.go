// Package status carries progress updates from provisioning operations to
// the CLI through a context-attached channel. Sends never block: a full
// channel drops the update rather than stalling a deployment.
package status

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultChannelSize is the default buffer size for the status channel
	DefaultChannelSize = 100

	// DefaultFlushTimeout is the timeout for flushing remaining messages on shutdown
	DefaultFlushTimeout = 5 * time.Second
)

// Level represents the severity level of a status update
type Level string

const (
	LevelInfo     Level = "info"
	LevelProgress Level = "progress"
	LevelSuccess  Level = "success"
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
)

// Update is one status message sent through the channel.
type Update struct {
	Level   Level
	Message string

	// Resource is the resource being operated on (e.g. "storage-account",
	// "hosting-plan", "function-app")
	Resource string

	// Action is the action being performed (e.g. "validate", "apply", "destroy")
	Action string

	// Metadata contains optional additional structured data
	Metadata map[string]any

	Timestamp time.Time
}

// NewUpdate creates a new Update with the current timestamp
func NewUpdate(level Level, message string) Update {
	return Update{
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithResource adds resource information to the status update
func (s Update) WithResource(resource string) Update {
	s.Resource = resource
	return s
}

// WithAction adds action information to the status update
func (s Update) WithAction(action string) Update {
	s.Action = action
	return s
}

// WithMetadata adds metadata to the status update
func (s Update) WithMetadata(key string, value any) Update {
	if s.Metadata == nil {
		s.Metadata = make(map[string]any)
	}
	s.Metadata[key] = value
	return s
}

// Send sends a status update through the channel stored in the context, if
// one is present. Non-blocking; drops the message if the channel is full.
func Send(ctx context.Context, update Update) {
	ch := getChannel(ctx)
	if ch == nil {
		return
	}

	if update.Timestamp.IsZero() {
		update.Timestamp = time.Now()
	}

	select {
	case ch <- update:
	default:
		// Channel full - drop rather than block the deployment
	}
}

// Handler is a function that processes status updates
type Handler func(Update)

// CleanupFunc closes the status channel and waits for the handler to finish.
// It should be deferred immediately after calling StartHandler.
type CleanupFunc func()

// StartHandler creates a status channel, attaches it to the context, and
// starts a goroutine draining updates into the handler. The returned cleanup
// closes the channel and waits (bounded by DefaultFlushTimeout) for the
// remaining messages to be processed.
func StartHandler(ctx context.Context, handler Handler) (context.Context, CleanupFunc) {
	return StartHandlerWithOptions(ctx, handler, DefaultChannelSize, DefaultFlushTimeout)
}

// StartHandlerWithOptions is like StartHandler but allows customizing the
// channel size and flush timeout.
func StartHandlerWithOptions(ctx context.Context, handler Handler, channelSize int, flushTimeout time.Duration) (context.Context, CleanupFunc) {
	ch := make(chan Update, channelSize)
	ctx = WithChannel(ctx, ch)

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		for update := range ch {
			handler(update)
		}
	}()

	cleanup := func() {
		close(ch)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(flushTimeout):
			// Timeout - some messages may be lost, but we don't block shutdown
		}
	}

	return ctx, cleanup
}
