package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/reservation"
	userRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/user"
	"github.com/m04kA/CWS-ReservationService/internal/service/policy"
	"github.com/m04kA/CWS-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/CWS-ReservationService/pkg/ptr"
)

func updateRequest(start, end time.Time) models.UpdateReservationRequest {
	return models.UpdateReservationRequest{StartTime: ptr.Ptr(start), EndTime: ptr.Ptr(end)}
}

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) ListByUser(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockReservationRepo) Cancel(ctx context.Context, id int64, reason *string, cancelledBy *int64) error {
	return m.Called(ctx, id, reason, cancelledBy).Error(0)
}

func (m *mockReservationRepo) UpdateInterval(ctx context.Context, id int64, workstationID int64, start, end time.Time, notes *string) error {
	return m.Called(ctx, id, workstationID, start, end, notes).Error(0)
}

func (m *mockReservationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReservationRepo) CountByStatus(ctx context.Context) (map[domain.ReservationStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.ReservationStatus]int), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) ApplyStrike(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) IsAvailable(ctx context.Context, workstationID int64, start, end time.Time, excludeReservationID *int64) (bool, error) {
	args := m.Called(ctx, workstationID, start, end, excludeReservationID)
	return args.Bool(0), args.Error(1)
}

// passthroughTxManager runs the function directly; atomicity itself belongs
// to the database, the tests assert what runs inside one call.
type passthroughTxManager struct {
	doCalls           int
	serializableCalls int
}

func (m *passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.doCalls++
	return fn(ctx)
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.serializableCalls++
	return fn(ctx)
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) ReservationEvent(ctx context.Context, res *domain.Reservation, eventType, message string) error {
	n.events = append(n.events, eventType)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	resRepo  *mockReservationRepo
	users    *mockUserRepo
	ledger   *mockLedger
	checker  *mockChecker
	tx       *passthroughTxManager
	notifier *recordingNotifier
	svc      *Service
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		resRepo:  new(mockReservationRepo),
		users:    new(mockUserRepo),
		ledger:   new(mockLedger),
		checker:  new(mockChecker),
		tx:       &passthroughTxManager{},
		notifier: &recordingNotifier{},
	}
	f.svc = NewService(
		f.resRepo,
		f.users,
		policy.NewEngine(nil, nil, nopLogger{}),
		f.ledger,
		f.checker,
		f.tx,
		f.notifier,
		nopLogger{},
	)
	f.svc.timeProvider = fixedClock{now: now}
	return f
}

func at(h int) time.Time {
	return time.Date(2026, 3, 2, h, 0, 0, 0, time.UTC)
}

func studentUser(id int64) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleStudent, UserStatus: domain.UserStatusGood}
}

func managerUser(id int64) *domain.User {
	return &domain.User{ID: id, Role: domain.RoleManager, UserStatus: domain.UserStatusGood}
}

func confirmedReservation(id, userID int64) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		UserID:        userID,
		WorkstationID: 3,
		StartTime:     at(14),
		EndTime:       at(16),
		Status:        domain.StatusConfirmed,
	}
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("pending confirmed by manager", func(t *testing.T) {
		f := newFixture(at(9))
		res := confirmedReservation(1, 7)
		res.Status = domain.StatusPending
		f.resRepo.On("GetByID", ctx, int64(1)).Return(res, nil)
		f.users.On("GetByID", ctx, int64(2)).Return(managerUser(2), nil)
		f.resRepo.On("UpdateStatus", ctx, int64(1), domain.StatusConfirmed).Return(nil)

		got, err := f.svc.Confirm(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), got.Status)
		assert.Contains(t, f.notifier.events, "reservation.confirmed")
	})

	t.Run("student cannot confirm", func(t *testing.T) {
		f := newFixture(at(9))
		res := confirmedReservation(1, 7)
		res.Status = domain.StatusPending
		f.resRepo.On("GetByID", ctx, int64(1)).Return(res, nil)
		f.users.On("GetByID", ctx, int64(7)).Return(studentUser(7), nil)

		_, err := f.svc.Confirm(ctx, 1, 7)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("already confirmed rejected", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(2)).Return(managerUser(2), nil)

		_, err := f.svc.Confirm(ctx, 1, 2)
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
		f.resRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels with enough notice", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(7)).Return(studentUser(7), nil)
		actorID := int64(7)
		f.resRepo.On("Cancel", ctx, int64(1), (*string)(nil), &actorID).Return(nil)

		got, err := f.svc.Cancel(ctx, 1, 7)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCancelled), got.Status)
		assert.Contains(t, f.notifier.events, "reservation.cancelled")
	})

	t.Run("student inside cancellation window", func(t *testing.T) {
		// Reservation starts 14:00, student notice is one hour: 13:30 is too late
		f := newFixture(at(13).Add(30 * time.Minute))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(7)).Return(studentUser(7), nil)

		_, err := f.svc.Cancel(ctx, 1, 7)
		assert.ErrorIs(t, err, ErrCancellationWindowClosed)
		f.resRepo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("manager ignores the window", func(t *testing.T) {
		f := newFixture(at(13).Add(59 * time.Minute))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(2)).Return(managerUser(2), nil)
		actorID := int64(2)
		f.resRepo.On("Cancel", ctx, int64(1), (*string)(nil), &actorID).Return(nil)

		_, err := f.svc.Cancel(ctx, 1, 2)
		assert.NoError(t, err)
	})

	t.Run("foreign reservation denied", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(8)).Return(studentUser(8), nil)

		_, err := f.svc.Cancel(ctx, 1, 8)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("terminal status rejected", func(t *testing.T) {
		f := newFixture(at(9))
		res := confirmedReservation(1, 7)
		res.Status = domain.StatusCompleted
		f.resRepo.On("GetByID", ctx, int64(1)).Return(res, nil)
		f.users.On("GetByID", ctx, int64(7)).Return(studentUser(7), nil)

		_, err := f.svc.Cancel(ctx, 1, 7)
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
	})
}

func TestCancelWithReason(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a reason", func(t *testing.T) {
		f := newFixture(at(9))
		_, err := f.svc.CancelWithReason(ctx, 1, 2, "   ")
		assert.ErrorIs(t, err, ErrMissingReason)
	})

	t.Run("requires a privileged role", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(7)).Return(studentUser(7), nil)

		_, err := f.svc.CancelWithReason(ctx, 1, 7, "double booking")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("records reason and actor", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(2)).Return(managerUser(2), nil)
		reason := "double booking"
		actorID := int64(2)
		f.resRepo.On("Cancel", ctx, int64(1), &reason, &actorID).Return(nil)

		got, err := f.svc.CancelWithReason(ctx, 1, 2, "double booking")
		require.NoError(t, err)
		require.NotNil(t, got.CancellationReason)
		assert.Equal(t, "double booking", *got.CancellationReason)
	})
}

func TestMarkNoShow(t *testing.T) {
	ctx := context.Background()

	t.Run("transition and strike share one transaction", func(t *testing.T) {
		f := newFixture(at(17))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(2)).Return(managerUser(2), nil)
		f.resRepo.On("UpdateStatus", ctx, int64(1), domain.StatusNoShow).Return(nil)
		f.ledger.On("ApplyStrike", ctx, int64(7)).Return(studentUser(7), nil)

		got, err := f.svc.MarkNoShow(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusNoShow), got.Status)
		assert.Equal(t, 1, f.tx.doCalls)
		assert.Contains(t, f.notifier.events, "reservation.no_show")
		f.resRepo.AssertExpectations(t)
		f.ledger.AssertExpectations(t)
	})

	t.Run("strike failure aborts the transaction", func(t *testing.T) {
		f := newFixture(at(17))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(2)).Return(managerUser(2), nil)
		f.resRepo.On("UpdateStatus", ctx, int64(1), domain.StatusNoShow).Return(nil)
		f.ledger.On("ApplyStrike", ctx, int64(7)).Return(nil, errors.New("storage down"))

		_, err := f.svc.MarkNoShow(ctx, 1, 2)
		assert.ErrorIs(t, err, ErrInternal)
		assert.Empty(t, f.notifier.events)
	})

	t.Run("double marking rejected", func(t *testing.T) {
		f := newFixture(at(17))
		res := confirmedReservation(1, 7)
		res.Status = domain.StatusNoShow
		f.resRepo.On("GetByID", ctx, int64(1)).Return(res, nil)
		f.users.On("GetByID", ctx, int64(2)).Return(managerUser(2), nil)

		_, err := f.svc.MarkNoShow(ctx, 1, 2)
		assert.ErrorIs(t, err, ErrAlreadyNoShow)
		assert.Zero(t, f.tx.doCalls)
	})

	t.Run("pending reservation cannot be a no-show", func(t *testing.T) {
		f := newFixture(at(17))
		res := confirmedReservation(1, 7)
		res.Status = domain.StatusPending
		f.resRepo.On("GetByID", ctx, int64(1)).Return(res, nil)
		f.users.On("GetByID", ctx, int64(2)).Return(managerUser(2), nil)

		_, err := f.svc.MarkNoShow(ctx, 1, 2)
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
	})

	t.Run("student cannot mark", func(t *testing.T) {
		f := newFixture(at(17))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(7)).Return(studentUser(7), nil)

		_, err := f.svc.MarkNoShow(ctx, 1, 7)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("moves interval when slot is free", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(7)).Return(studentUser(7), nil)
		id := int64(1)
		f.checker.On("IsAvailable", ctx, int64(3), at(10), at(12), &id).Return(true, nil)
		f.resRepo.On("UpdateInterval", ctx, int64(1), int64(3), at(10), at(12), (*string)(nil)).Return(nil)

		start, end := at(10), at(12)
		req := updateRequest(start, end)
		got, err := f.svc.Update(ctx, 1, 7, &req)
		require.NoError(t, err)
		assert.Equal(t, start, got.StartTime)
		assert.Equal(t, end, got.EndTime)
		assert.Equal(t, 1, f.tx.serializableCalls)
		assert.Contains(t, f.notifier.events, "reservation.modified")
	})

	t.Run("conflicting slot rejected", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(7)).Return(studentUser(7), nil)
		id := int64(1)
		f.checker.On("IsAvailable", ctx, int64(3), at(10), at(12), &id).Return(false, nil)

		start, end := at(10), at(12)
		req := updateRequest(start, end)
		_, err := f.svc.Update(ctx, 1, 7, &req)
		assert.ErrorIs(t, err, ErrSlotUnavailable)
		f.resRepo.AssertNotCalled(t, "UpdateInterval",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner role caps the new duration", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(7)).Return(studentUser(7), nil)

		start, end := at(10), at(13)
		req := updateRequest(start, end)
		_, err := f.svc.Update(ctx, 1, 7, &req)
		assert.ErrorIs(t, err, ErrDurationExceeded)
	})

	t.Run("terminal reservation cannot change", func(t *testing.T) {
		f := newFixture(at(9))
		res := confirmedReservation(1, 7)
		res.Status = domain.StatusCancelled
		f.resRepo.On("GetByID", ctx, int64(1)).Return(res, nil)
		f.users.On("GetByID", ctx, int64(7)).Return(studentUser(7), nil)

		start, end := at(10), at(12)
		req := updateRequest(start, end)
		_, err := f.svc.Update(ctx, 1, 7, &req)
		assert.ErrorIs(t, err, ErrCannotUpdate)
	})
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(at(9))
	f.resRepo.On("CountByStatus", ctx).Return(map[domain.ReservationStatus]int{
		domain.StatusPending:   2,
		domain.StatusConfirmed: 3,
		domain.StatusCompleted: 10,
		domain.StatusCancelled: 4,
		domain.StatusNoShow:    1,
	}, nil)

	got, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Total)
	assert.Equal(t, 5, got.Active)
	assert.Equal(t, 2, got.Pending)
	assert.Equal(t, 3, got.Confirmed)
	assert.Equal(t, 10, got.Completed)
	assert.Equal(t, 4, got.Cancelled)
	assert.Equal(t, 1, got.NoShows)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("owner sees own reservation", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(7)).Return(studentUser(7), nil)

		got, err := f.svc.GetByID(ctx, 1, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("foreign student denied", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(8)).Return(studentUser(8), nil)

		_, err := f.svc.GetByID(ctx, 1, 8)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("manager sees any reservation", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(2)).Return(managerUser(2), nil)

		got, err := f.svc.GetByID(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.UserID)
	})

	t.Run("missing reservation", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(99)).Return(nil, reservationRepo.ErrReservationNotFound)

		_, err := f.svc.GetByID(ctx, 99, 7)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})

	t.Run("missing actor", func(t *testing.T) {
		f := newFixture(at(9))
		f.resRepo.On("GetByID", ctx, int64(1)).Return(confirmedReservation(1, 7), nil)
		f.users.On("GetByID", ctx, int64(42)).Return(nil, userRepo.ErrUserNotFound)

		_, err := f.svc.GetByID(ctx, 1, 42)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
