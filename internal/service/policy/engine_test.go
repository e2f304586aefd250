package policy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/reservation"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) GetLastFinishedByUser(ctx context.Context, userID int64) (*domain.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) CountActiveByUser(ctx context.Context, userID int64, now time.Time) (int, error) {
	args := m.Called(ctx, userID, now)
	return args.Int(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

func TestValidateDuration(t *testing.T) {
	engine := NewEngine(new(mockReservationRepo), nil, nopLogger{})

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		role    domain.Role
		wantErr error
	}{
		{"student two hours ok", at(9, 0), at(11, 0), domain.RoleStudent, nil},
		{"student three hours rejected", at(9, 0), at(12, 0), domain.RoleStudent, ErrDurationExceeded},
		{"manager eight hours ok", at(9, 0), at(17, 0), domain.RoleManager, nil},
		{"manager nine hours rejected", at(8, 0), at(17, 1), domain.RoleManager, ErrDurationExceeded},
		{"equal start and end invalid", at(9, 0), at(9, 0), domain.RoleStudent, ErrInvalidInterval},
		{"end before start invalid", at(11, 0), at(9, 0), domain.RoleAdmin, ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.ValidateDuration(tt.start, tt.end, tt.role)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheckCooldown(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked inside cooldown", func(t *testing.T) {
		repo := new(mockReservationRepo)
		repo.On("GetLastFinishedByUser", ctx, int64(7)).
			Return(&domain.Reservation{EndTime: at(11, 0)}, nil)
		engine := NewEngine(repo, nil, nopLogger{})

		// Last reservation ended 11:00, cooldown one hour: 11:30 is too early
		err := engine.CheckCooldown(ctx, 7, domain.RoleStudent, at(11, 30))
		assert.ErrorIs(t, err, ErrCooldownActive)
	})

	t.Run("allowed exactly at cooldown end", func(t *testing.T) {
		repo := new(mockReservationRepo)
		repo.On("GetLastFinishedByUser", ctx, int64(7)).
			Return(&domain.Reservation{EndTime: at(11, 0)}, nil)
		engine := NewEngine(repo, nil, nopLogger{})

		assert.NoError(t, engine.CheckCooldown(ctx, 7, domain.RoleStudent, at(12, 0)))
	})

	t.Run("no previous reservation passes", func(t *testing.T) {
		repo := new(mockReservationRepo)
		repo.On("GetLastFinishedByUser", ctx, int64(7)).
			Return(nil, reservationRepo.ErrReservationNotFound)
		engine := NewEngine(repo, nil, nopLogger{})

		assert.NoError(t, engine.CheckCooldown(ctx, 7, domain.RoleStudent, at(9, 0)))
	})

	t.Run("privileged role skips repository", func(t *testing.T) {
		repo := new(mockReservationRepo)
		engine := NewEngine(repo, nil, nopLogger{})

		assert.NoError(t, engine.CheckCooldown(ctx, 7, domain.RoleManager, at(9, 0)))
		repo.AssertNotCalled(t, "GetLastFinishedByUser", mock.Anything, mock.Anything)
	})
}

func TestCheckActiveLimit(t *testing.T) {
	ctx := context.Background()
	now := at(9, 0)

	t.Run("student with active reservation blocked", func(t *testing.T) {
		repo := new(mockReservationRepo)
		repo.On("CountActiveByUser", ctx, int64(7), now).Return(1, nil)
		engine := NewEngine(repo, nil, nopLogger{})

		err := engine.CheckActiveLimit(ctx, 7, domain.RoleStudent, now)
		assert.ErrorIs(t, err, ErrActiveReservationExists)
	})

	t.Run("student without active reservation passes", func(t *testing.T) {
		repo := new(mockReservationRepo)
		repo.On("CountActiveByUser", ctx, int64(7), now).Return(0, nil)
		engine := NewEngine(repo, nil, nopLogger{})

		assert.NoError(t, engine.CheckActiveLimit(ctx, 7, domain.RoleStudent, now))
	})

	t.Run("privileged role unlimited", func(t *testing.T) {
		repo := new(mockReservationRepo)
		engine := NewEngine(repo, nil, nopLogger{})

		assert.NoError(t, engine.CheckActiveLimit(ctx, 7, domain.RoleAdmin, now))
		repo.AssertNotCalled(t, "CountActiveByUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCheckCancelWindow(t *testing.T) {
	engine := NewEngine(new(mockReservationRepo), nil, nopLogger{})
	res := &domain.Reservation{ID: 1, StartTime: at(14, 0)}

	t.Run("student too close to start", func(t *testing.T) {
		err := engine.CheckCancelWindow(res, domain.RoleStudent, at(13, 30))
		assert.ErrorIs(t, err, ErrCancellationWindowClosed)
	})

	t.Run("student exactly at deadline is closed", func(t *testing.T) {
		err := engine.CheckCancelWindow(res, domain.RoleStudent, at(13, 0))
		assert.ErrorIs(t, err, ErrCancellationWindowClosed)
	})

	t.Run("student with two hours notice passes", func(t *testing.T) {
		assert.NoError(t, engine.CheckCancelWindow(res, domain.RoleStudent, at(12, 0)))
	})

	t.Run("manager cancels any time", func(t *testing.T) {
		assert.NoError(t, engine.CheckCancelWindow(res, domain.RoleManager, at(13, 59)))
	})
}

func TestAuthorize(t *testing.T) {
	engine := NewEngine(new(mockReservationRepo), nil, nopLogger{})

	assert.NoError(t, engine.Authorize(7, domain.RoleStudent, 7), "owner acts on own resource")
	assert.NoError(t, engine.Authorize(1, domain.RoleManager, 7), "manager acts on anyone")
	assert.NoError(t, engine.Authorize(1, domain.RoleAdmin, 7), "admin acts on anyone")
	assert.ErrorIs(t, engine.Authorize(8, domain.RoleStudent, 7), ErrNotOwner)
}
