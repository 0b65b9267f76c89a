// Package mocks provides testify mocks for the collaborator ports.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/enroll/internal/collaborator"
)

// RequestTracker mocks collaborator.RequestTracker.
type RequestTracker struct{ mock.Mock }

func (m *RequestTracker) Submit(ctx context.Context, req collaborator.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// CashierEnrollments mocks collaborator.CashierEnrollments.
type CashierEnrollments struct{ mock.Mock }

func (m *CashierEnrollments) UpdateEnrollment(ctx context.Context, user string) error {
	return m.Called(ctx, user).Error(0)
}

// RegisterProvisioner mocks collaborator.RegisterProvisioner.
type RegisterProvisioner struct{ mock.Mock }

func (m *RegisterProvisioner) ProvisionRegister(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// DeviceProvisioner mocks collaborator.DeviceProvisioner.
type DeviceProvisioner struct{ mock.Mock }

func (m *DeviceProvisioner) ProvisionTrainingDevice(ctx context.Context, user string) error {
	return m.Called(ctx, user).Error(0)
}

// ProduceContent mocks collaborator.ProduceContent.
type ProduceContent struct{ mock.Mock }

func (m *ProduceContent) AddUser(ctx context.Context, user string) error {
	return m.Called(ctx, user).Error(0)
}

// Scheduler mocks collaborator.Scheduler.
type Scheduler struct{ mock.Mock }

func (m *Scheduler) ScheduleProduceTraining(ctx context.Context, user string) (time.Time, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(time.Time), args.Error(1)
}

// MentorMatcher mocks collaborator.MentorMatcher.
type MentorMatcher struct{ mock.Mock }

func (m *MentorMatcher) FindMentor(ctx context.Context, user string) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

// Set holds one mock per port so tests can assert on the collaborators a
// handler did and did not touch.
type Set struct {
	Requests  *RequestTracker
	Cashiers  *CashierEnrollments
	Registers *RegisterProvisioner
	Devices   *DeviceProvisioner
	Produce   *ProduceContent
	Scheduler *Scheduler
	Mentors   *MentorMatcher
}

// NewSet creates a Set with fresh mocks.
func NewSet() *Set {
	return &Set{
		Requests:  &RequestTracker{},
		Cashiers:  &CashierEnrollments{},
		Registers: &RegisterProvisioner{},
		Devices:   &DeviceProvisioner{},
		Produce:   &ProduceContent{},
		Scheduler: &Scheduler{},
		Mentors:   &MentorMatcher{},
	}
}

// Collaborators returns the mocks as a collaborator.Set.
func (s *Set) Collaborators() collaborator.Set {
	return collaborator.Set{
		Requests:  s.Requests,
		Cashiers:  s.Cashiers,
		Registers: s.Registers,
		Devices:   s.Devices,
		Produce:   s.Produce,
		Scheduler: s.Scheduler,
		Mentors:   s.Mentors,
	}
}

// AssertExpectations asserts expectations on every mock.
func (s *Set) AssertExpectations(t mock.TestingT) {
	s.Requests.AssertExpectations(t)
	s.Cashiers.AssertExpectations(t)
	s.Registers.AssertExpectations(t)
	s.Devices.AssertExpectations(t)
	s.Produce.AssertExpectations(t)
	s.Scheduler.AssertExpectations(t)
	s.Mentors.AssertExpectations(t)
}

// Calls returns the number of recorded calls per port, keyed by field name.
func (s *Set) Calls() map[string]int {
	return map[string]int{
		"Requests":  len(s.Requests.Calls),
		"Cashiers":  len(s.Cashiers.Calls),
		"Registers": len(s.Registers.Calls),
		"Devices":   len(s.Devices.Calls),
		"Produce":   len(s.Produce.Calls),
		"Scheduler": len(s.Scheduler.Calls),
		"Mentors":   len(s.Mentors.Calls),
	}
}
