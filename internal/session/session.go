// Package session holds the per-invocation state shared by command
// handlers: the configuration store, the admission gate, the clock and the
// random source. A Session is built once per process invocation and passed
// by reference; there is no package-level state.
package session

import (
	"io"
	"log"
	"time"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/producer"
)

// Session bundles the collaborators of one invocation
type Session struct {
	Store  domain.ConfigStore
	Gate   *Gate
	Source producer.Source
	Clock  func() time.Time
	Logger *log.Logger
}

// Option customises a Session
type Option func(*Session)

// WithSource injects the random source
func WithSource(src producer.Source) Option {
	return func(s *Session) {
		s.Source = src
	}
}

// WithClock injects the clock
func WithClock(clock func() time.Time) Option {
	return func(s *Session) {
		s.Clock = clock
	}
}

// WithLogger injects the diagnostic logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.Logger = logger
	}
}

// New creates a session over store. Defaults: clock-seeded randomness,
// time.Now, and a logger that discards output.
func New(store domain.ConfigStore, opts ...Option) *Session {
	s := &Session{
		Store:  store,
		Gate:   NewGate(store),
		Source: producer.ClockSource(),
		Clock:  time.Now,
		Logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Admit runs the gate for op and logs the decision
func (s *Session) Admit(op domain.Operation) (*domain.ProjectConfig, error) {
	cfg, err := s.Gate.Admit(op)
	if err != nil {
		s.Logger.Printf("gate: %s rejected: %v", op, err)
		return nil, err
	}
	s.Logger.Printf("gate: %s admitted", op)
	return cfg, nil
}

// NewLogger returns a stderr logger when verbose, otherwise a discarding one
func NewLogger(w io.Writer, verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(w, "codeguard: ", log.LstdFlags)
}
