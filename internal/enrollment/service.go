// Package enrollment is the application service shared by the CLI and the
// HTTP API. It validates input, runs the program registry and announces the
// outcome on a pubsub broker.
package enrollment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/enroll/internal/program"
	"github.com/zjrosen/enroll/internal/pubsub"
)

// ErrEmptyUser is returned when the user identifier is blank.
var ErrEmptyUser = errors.New("user is required")

// ErrEmptyProgram is returned when the program identifier is blank.
var ErrEmptyProgram = errors.New("program is required")

// Enrollment records a completed enrollment.
type Enrollment struct {
	ID         string     `json:"id"`
	Program    program.ID `json:"program"`
	User       string     `json:"user"`
	EnrolledAt time.Time  `json:"enrolled_at"`
}

// Outcome is the payload published for every enrollment attempt.
// Err is nil for EnrolledEvent.
type Outcome struct {
	Enrollment Enrollment
	Err        error
}

// Registry is the part of program.Registry the service needs.
type Registry interface {
	Enroll(ctx context.Context, id program.ID, user string) error
	Programs() []program.ID
	IsRegistered(id program.ID) bool
}

var _ Registry = (*program.Registry)(nil)

// Service enrolls users through a program registry.
type Service struct {
	registry Registry
	broker   *pubsub.Broker[Outcome]
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for EnrolledAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides enrollment id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService creates a Service backed by registry.
func NewService(registry Registry, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		broker:   pubsub.NewBroker[Outcome](),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enroll enrolls user into the program id. Blank input is rejected; otherwise
// both values reach the registry exactly as given. Errors from the registry
// are returned as-is, so callers can match *program.UnknownProgramError or a
// collaborator's own error.
func (s *Service) Enroll(ctx context.Context, id program.ID, user string) (*Enrollment, error) {
	switch {
	case strings.TrimSpace(string(id)) == "":
		return nil, ErrEmptyProgram
	case strings.TrimSpace(user) == "":
		return nil, ErrEmptyUser
	}

	e := Enrollment{Program: id, User: user}
	if err := s.registry.Enroll(ctx, id, user); err != nil {
		s.broker.Publish(pubsub.EnrollFailedEvent, Outcome{Enrollment: e, Err: err})
		return nil, err
	}

	e.ID = s.newID()
	e.EnrolledAt = s.now()
	s.broker.Publish(pubsub.EnrolledEvent, Outcome{Enrollment: e})
	return &e, nil
}

// Programs returns the enrollable program identifiers, sorted.
func (s *Service) Programs() []program.ID {
	return s.registry.Programs()
}

// IsRegistered reports whether id can be enrolled into.
func (s *Service) IsRegistered(id program.ID) bool {
	return s.registry.IsRegistered(id)
}

// Subscribe returns a channel of enrollment outcomes that closes when ctx is done.
func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[Outcome] {
	return s.broker.Subscribe(ctx)
}

// Close stops event delivery and closes all subscriptions.
func (s *Service) Close() {
	s.broker.Close()
}
