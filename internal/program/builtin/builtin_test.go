package builtin_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/enroll/internal/collaborator/mocks"
	"github.com/zjrosen/enroll/internal/program"
	_ "github.com/zjrosen/enroll/internal/program/builtin"
)

func TestBuiltin_RegistersAllPrograms(t *testing.T) {
	reg := program.NewRegistry(mocks.NewSet().Collaborators())

	for _, id := range []program.ID{program.Cashier, program.Produce, program.Inventory} {
		h, err := reg.Resolve(id)
		require.NoError(t, err, "program %s", id)
		require.NotNil(t, h, "program %s", id)
	}
}

func TestBuiltin_ResolveNonexistent(t *testing.T) {
	reg := program.NewRegistry(mocks.NewSet().Collaborators())

	_, err := reg.Resolve("nonexistent")
	require.ErrorIs(t, err, program.ErrUnknownProgram)
}

// TestBuiltin_EnrollTouchesOnlyProgramCollaborators verifies that each program calls its
// own collaborators once and leaves the rest of the set untouched.
func TestBuiltin_EnrollTouchesOnlyProgramCollaborators(t *testing.T) {
	tests := []struct {
		program program.ID
		user    string
		setup   func(m *mocks.Set)
		want    map[string]int
	}{
		{
			program: program.Cashier,
			user:    "alice",
			setup: func(m *mocks.Set) {
				m.Requests.On("Submit", mock.Anything, mock.Anything).Return("r", nil)
				m.Cashiers.On("UpdateEnrollment", mock.Anything, "alice").Return(nil)
				m.Registers.On("ProvisionRegister", mock.Anything).Return(nil)
			},
			want: map[string]int{"Requests": 1, "Cashiers": 1, "Registers": 1, "Devices": 0, "Produce": 0, "Scheduler": 0, "Mentors": 0},
		},
		{
			program: program.Produce,
			user:    "bob",
			setup: func(m *mocks.Set) {
				m.Produce.On("AddUser", mock.Anything, "bob").Return(nil)
				m.Scheduler.On("ScheduleProduceTraining", mock.Anything, "bob").Return(time.Now(), nil)
			},
			want: map[string]int{"Requests": 0, "Cashiers": 0, "Registers": 0, "Devices": 0, "Produce": 1, "Scheduler": 1, "Mentors": 0},
		},
		{
			program: program.Inventory,
			user:    "carol",
			setup: func(m *mocks.Set) {
				m.Mentors.On("FindMentor", mock.Anything, "carol").Return("dana", nil)
				m.Devices.On("ProvisionTrainingDevice", mock.Anything, "carol").Return(nil)
				m.Requests.On("Submit", mock.Anything, mock.Anything).Return("r", nil)
			},
			want: map[string]int{"Requests": 1, "Cashiers": 0, "Registers": 0, "Devices": 1, "Produce": 0, "Scheduler": 0, "Mentors": 1},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.program), func(t *testing.T) {
			m := mocks.NewSet()
			tt.setup(m)
			reg := program.NewRegistry(m.Collaborators())

			require.NoError(t, reg.Enroll(context.Background(), tt.program, tt.user))
			require.Equal(t, tt.want, m.Calls())
			m.AssertExpectations(t)
		})
	}
}
