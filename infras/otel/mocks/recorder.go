package mocks

import (
	"context"
	"ihome/infras/otel"
	"sync"
)

// Recorder is an otel.Otel whose scopes remember every error they trace.
type Recorder struct {
	mu     sync.Mutex
	traced []error
}

type recordingScope struct {
	otel.Scope
	recorder *Recorder
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewScope implements otel.Otel.
func (r *Recorder) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, &recordingScope{Scope: NewScope(), recorder: r}
}

// Shutdown implements otel.Otel.
func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Traced returns the errors recorded so far, in order.
func (r *Recorder) Traced() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.traced...)
}

func (s *recordingScope) TraceError(err error) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.traced = append(s.recorder.traced, err)
}

func (s *recordingScope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}
