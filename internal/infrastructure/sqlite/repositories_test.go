package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/enroll/internal/collaborator"
)

func TestRequestTracker_SubmitAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tracker := db.RequestTracker()

	id, err := tracker.Submit(ctx, collaborator.Request{
		Title:       "enroll a cashier",
		Description: "request to enroll alice for cashier training",
		User:        "alice",
		Program:     "cashier",
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	reqs, err := db.ListRequests(ctx, 0)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	require.Equal(t, id, reqs[0].ID)
	require.Equal(t, "alice", reqs[0].User)
	require.Equal(t, "cashier", reqs[0].Program)
	require.Equal(t, "enroll a cashier", reqs[0].Title)
	require.True(t, fixedNow.Equal(reqs[0].CreatedAt))
}

func TestRequestTracker_ListNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	now := fixedNow
	db, err := NewDB(t.TempDir()+"/enroll.db", WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, user := range []string{"a", "b", "c"} {
		_, err := db.RequestTracker().Submit(ctx, collaborator.Request{User: user, Program: "inventory"})
		require.NoError(t, err)
	}

	reqs, err := db.ListRequests(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	require.Equal(t, "c", reqs[0].User)
	require.Equal(t, "b", reqs[1].User)
}

func TestRequestTracker_IDsAreUnique(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rapid.Check(t, func(t *rapid.T) {
		user := rapid.StringMatching(`[a-z]{1,12}`).Draw(t, "user")
		first, err := db.RequestTracker().Submit(ctx, collaborator.Request{User: user})
		require.NoError(t, err)
		second, err := db.RequestTracker().Submit(ctx, collaborator.Request{User: user})
		require.NoError(t, err)
		require.NotEqual(t, first, second)
	})
}

func TestCashierEnrollments_Upsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := db.CashierEnrollments()

	_, ok, err := store.EnrolledAt(ctx, "alice")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.UpdateEnrollment(ctx, "alice"))
	require.NoError(t, store.UpdateEnrollment(ctx, "alice"))

	at, ok, err := store.EnrolledAt(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, fixedNow.Unix(), at.Unix())
}

// TestProvisioner_Orders verifies that register orders carry no user while
// device orders are counted per user.
func TestProvisioner_Orders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	p := db.Provisioner()

	require.NoError(t, p.ProvisionRegister(ctx))
	require.NoError(t, p.ProvisionRegister(ctx))
	require.NoError(t, p.ProvisionTrainingDevice(ctx, "bob"))

	n, err := p.CountOrders(ctx, KindRegister, "")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = p.CountOrders(ctx, KindTrainingDevice, "bob")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = p.CountOrders(ctx, KindTrainingDevice, "alice")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestContentSystem_AddUserIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	cs := db.ContentSystem()

	ok, err := cs.IsMember(ctx, "carol")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, cs.AddUser(ctx, "carol"))
	require.NoError(t, cs.AddUser(ctx, "carol"))

	ok, err = cs.IsMember(ctx, "carol")
	require.NoError(t, err)
	require.True(t, ok)
}

// TestScheduler_ConcurrentCallsBookOnce verifies that simultaneous produce
// enrollments for one user share a single session.
func TestScheduler_ConcurrentCallsBookOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	s := db.Scheduler(48 * time.Hour)

	const callers = 8
	var wg sync.WaitGroup
	starts := make([]time.Time, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			starts[i], errs[i] = s.ScheduleProduceTraining(ctx, "bob")
		}()
	}
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		require.Equal(t, starts[0].Unix(), starts[i].Unix())
	}

	var booked int
	require.NoError(t, db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM training_sessions WHERE program = 'produce' AND user = ?`, "bob",
	).Scan(&booked))
	require.Equal(t, 1, booked)
}

// TestScheduler_BooksOnTheHourAfterLeadTime verifies the slot rounding and that a
// second call for the same user returns the existing session.
func TestScheduler_BooksOnTheHourAfterLeadTime(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	s := db.Scheduler(48 * time.Hour)

	at, err := s.ScheduleProduceTraining(ctx, "dave")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC).Unix(), at.Unix())

	again, err := s.ScheduleProduceTraining(ctx, "dave")
	require.NoError(t, err)
	require.Equal(t, at.Unix(), again.Unix())

	other, err := s.ScheduleProduceTraining(ctx, "erin")
	require.NoError(t, err)
	require.Equal(t, at.Unix(), other.Unix())
}

func TestMentorAssignments_AssignReplaces(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := db.MentorAssignments()

	_, ok, err := store.Assignment(ctx, "frank")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Assign(ctx, "frank", "grace"))
	require.NoError(t, store.Assign(ctx, "frank", "heidi"))

	mentor, ok, err := store.Assignment(ctx, "frank")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "heidi", mentor)
}

// TestRepositories_CanceledContext verifies that writes honour an already
// canceled context.
func TestRepositories_CanceledContext(t *testing.T) {
	db := newTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, db.CashierEnrollments().UpdateEnrollment(ctx, "alice"))
	_, err := db.RequestTracker().Submit(ctx, collaborator.Request{User: "alice"})
	require.Error(t, err)
}
