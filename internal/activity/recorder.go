package activity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	id "consentry/pkg/domain"
)

// Recorder captures audit entries from the lifecycle engine. It is append-only
// and uses the storage layer for persistence so tests can swap sinks easily.
type Recorder struct {
	store  Store
	events chan Entry
	wg     sync.WaitGroup
	logger *slog.Logger
	async  bool
}

// RecorderOption configures the Recorder.
type RecorderOption func(*Recorder)

// WithAsyncBuffer hands appends to a background goroutine through a buffered
// channel. Meant for sinks with slow writes; with the in-memory sink the
// recorder should run synchronously so the audit trail is readable the moment
// a lifecycle operation returns. Record blocks when the buffer is full rather
// than dropping entries.
func WithAsyncBuffer(size int) RecorderOption {
	return func(r *Recorder) {
		if size > 0 {
			r.events = make(chan Entry, size)
			r.async = true
		}
	}
}

// WithRecorderLogger sets a logger for async error reporting.
func WithRecorderLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{store: store}
	for _, opt := range opts {
		opt(r)
	}
	if r.async {
		r.wg.Add(1)
		go r.processEntries()
	}
	return r
}

// processEntries runs in a goroutine and persists entries from the channel.
func (r *Recorder) processEntries() {
	defer r.wg.Done()
	for entry := range r.events {
		if err := r.store.Append(context.Background(), entry); err != nil {
			if r.logger != nil {
				r.logger.Error("failed to persist activity entry",
					"error", err,
					"action", entry.Action,
					"consent_id", entry.ConsentID,
				)
			}
		}
	}
}

// Close shuts down the async recorder and waits for pending entries to drain.
func (r *Recorder) Close() {
	if r.async && r.events != nil {
		close(r.events)
		r.wg.Wait()
	}
}

// Record persists one audit entry. A zero timestamp is filled with the current
// time; callers inside the engine always pass the request-scoped now.
func (r *Recorder) Record(ctx context.Context, entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if r.async {
		// Blocking send: a full buffer applies backpressure instead of
		// losing audit entries. Callers can bound the wait via ctx.
		select {
		case r.events <- entry:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return r.store.Append(ctx, entry)
}

// ListByConsent returns the recorded entries for one consent, newest first.
// A synchronous recorder reflects every accepted entry immediately; an async
// one reflects them once the background goroutine has drained the buffer.
func (r *Recorder) ListByConsent(ctx context.Context, consentID id.ConsentID) ([]Entry, error) {
	return r.store.ListByConsent(ctx, consentID)
}

// ListAll returns every recorded entry, newest first.
func (r *Recorder) ListAll(ctx context.Context) ([]Entry, error) {
	return r.store.ListAll(ctx)
}
