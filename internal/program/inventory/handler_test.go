package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/enroll/internal/collaborator"
	"github.com/zjrosen/enroll/internal/collaborator/mocks"
)

func TestHandler_Enroll_CallsInventoryCollaborators(t *testing.T) {
	m := mocks.NewSet()
	ctx := context.Background()

	m.Mentors.On("FindMentor", ctx, "carol").Return("mentor-dana", nil).Once()
	m.Devices.On("ProvisionTrainingDevice", ctx, "carol").Return(nil).Once()
	m.Requests.On("Submit", ctx, collaborator.Request{
		Title:       "enroll an inventory manager",
		Description: "request to enroll carol to inventory management training",
		User:        "carol",
		Program:     "inventory",
	}).Return("req-9", nil).Once()

	require.NoError(t, New(m.Collaborators()).Enroll(ctx, "carol"))

	m.AssertExpectations(t)
	require.Equal(t, map[string]int{
		"Requests": 1, "Cashiers": 0, "Registers": 0,
		"Devices": 1, "Produce": 0, "Scheduler": 0, "Mentors": 1,
	}, m.Calls())
}

func TestHandler_Enroll_PassesUserThroughUnmodified(t *testing.T) {
	m := mocks.NewSet()
	user := "  Carol O'Neil  "

	m.Mentors.On("FindMentor", mock.Anything, user).Return("m", nil)
	m.Devices.On("ProvisionTrainingDevice", mock.Anything, user).Return(nil)
	m.Requests.On("Submit", mock.Anything, mock.MatchedBy(func(r collaborator.Request) bool {
		return r.User == user
	})).Return("req", nil)

	require.NoError(t, New(m.Collaborators()).Enroll(context.Background(), user))
	m.AssertExpectations(t)
}

func TestHandler_Enroll_DeviceFailure(t *testing.T) {
	m := mocks.NewSet()
	devErr := errors.New("no devices in stock")

	m.Mentors.On("FindMentor", mock.Anything, "carol").Return("m", nil)
	m.Devices.On("ProvisionTrainingDevice", mock.Anything, "carol").Return(devErr)

	err := New(m.Collaborators()).Enroll(context.Background(), "carol")

	require.Same(t, devErr, err)
	require.Empty(t, m.Requests.Calls)
}
