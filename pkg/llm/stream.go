package llm

import (
	"context"
	"io"
)

// Stream delivers generated text fragments as they arrive from the backend.
// It is single-pass and not restartable: once Recv returns io.EOF (or an
// error) the stream is exhausted. It must not be shared across goroutines.
type Stream struct {
	ch     chan string
	errCh  chan error
	cancel context.CancelFunc
	done   bool
}

// NewStream creates a stream whose producer writes via Send and Finish.
// cancel is invoked when the consumer closes the stream early.
func NewStream(cancel context.CancelFunc) *Stream {
	if cancel == nil {
		cancel = func() {}
	}
	return &Stream{
		ch:     make(chan string, 16),
		errCh:  make(chan error, 1),
		cancel: cancel,
	}
}

// Send delivers one fragment to the consumer. It returns the context error
// if the consumer closed the stream (or the request was cancelled) so the
// producer can stop cleanly.
func (s *Stream) Send(ctx context.Context, fragment string) error {
	select {
	case s.ch <- fragment:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Finish marks the producer side complete. A nil err yields io.EOF on the
// consumer side; a non-nil err is surfaced by the final Recv.
func (s *Stream) Finish(err error) {
	if err != nil {
		s.errCh <- err
	}
	close(s.ch)
}

// Recv returns the next fragment. io.EOF signals clean completion.
func (s *Stream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}
	fragment, ok := <-s.ch
	if !ok {
		s.done = true
		select {
		case err := <-s.errCh:
			return "", err
		default:
			return "", io.EOF
		}
	}
	return fragment, nil
}

// Close stops the producer. Safe to call multiple times; after Close the
// consumer must not rely on receiving further fragments.
func (s *Stream) Close() {
	s.cancel()
	s.done = true
}
