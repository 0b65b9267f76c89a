package collaborator

import (
	"context"
	"time"
)

// Request is a tracked request submitted to the request-tracking service.
type Request struct {
	Title       string
	Description string
	User        string
	Program     string
}

// RequestTracker records requests with the request-tracking service.
type RequestTracker interface {
	// Submit records the request and returns the tracking id.
	Submit(ctx context.Context, req Request) (string, error)
}

// CashierEnrollments is the cashier enrollment store.
type CashierEnrollments interface {
	UpdateEnrollment(ctx context.Context, user string) error
}

// RegisterProvisioner provisions a physical cash register for training.
type RegisterProvisioner interface {
	ProvisionRegister(ctx context.Context) error
}

// DeviceProvisioner provisions a store training device for a user.
type DeviceProvisioner interface {
	ProvisionTrainingDevice(ctx context.Context, user string) error
}

// ProduceContent is the produce training content system.
type ProduceContent interface {
	AddUser(ctx context.Context, user string) error
}

// Scheduler books training sessions.
type Scheduler interface {
	// ScheduleProduceTraining books a produce session and returns its start time.
	ScheduleProduceTraining(ctx context.Context, user string) (time.Time, error)
}

// MentorMatcher assigns an inventory mentor to a user.
type MentorMatcher interface {
	// FindMentor returns the mentor assigned to user.
	FindMentor(ctx context.Context, user string) (string, error)
}

// Set bundles every collaborator a program factory may draw from.
// A factory only touches the fields its program needs.
type Set struct {
	Requests  RequestTracker
	Cashiers  CashierEnrollments
	Registers RegisterProvisioner
	Devices   DeviceProvisioner
	Produce   ProduceContent
	Scheduler Scheduler
	Mentors   MentorMatcher
}
