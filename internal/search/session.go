package search

import (
	"context"
	"time"
)

// Session debounces interactive input: only the last query typed within the
// quiet window is executed, and its result goes to the callback.
type Session struct {
	svc      *Service
	deb      *Debouncer
	ctx      context.Context
	onResult func(Result, error)
}

func (s *Service) NewSession(ctx context.Context, delay time.Duration, onResult func(Result, error)) *Session {
	return &Session{
		svc:      s,
		deb:      NewDebouncer(delay),
		ctx:      ctx,
		onResult: onResult,
	}
}

// Type registers new input, superseding whatever was pending.
func (s *Session) Type(query string, opts Options) {
	s.deb.Submit(func() {
		if s.ctx.Err() != nil {
			return
		}
		res, err := s.svc.Search(s.ctx, query, opts)
		s.onResult(res, err)
	})
}

// Flush runs the pending query immediately and waits for its result.
func (s *Session) Flush() {
	s.deb.Flush()
}

// Close drops pending input.
func (s *Session) Close() {
	s.deb.Stop()
}
