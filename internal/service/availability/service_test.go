package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
	workstationRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/workstation"
)

type mockWorkstationRepo struct {
	mock.Mock
}

func (m *mockWorkstationRepo) GetByID(ctx context.Context, id int64) (*domain.WorkStation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkStation), args.Error(1)
}

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) HasOverlapping(ctx context.Context, workstationID int64, start, end time.Time, excludeID *int64) (bool, error) {
	args := m.Called(ctx, workstationID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func at(h int) time.Time {
	return time.Date(2026, 3, 2, h, 0, 0, 0, time.UTC)
}

func TestIsAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("free slot", func(t *testing.T) {
		wsRepo := new(mockWorkstationRepo)
		resRepo := new(mockReservationRepo)
		wsRepo.On("GetByID", ctx, int64(3)).
			Return(&domain.WorkStation{ID: 3, Status: domain.WorkStationAvailable}, nil)
		resRepo.On("HasOverlapping", ctx, int64(3), at(9), at(11), (*int64)(nil)).
			Return(false, nil)

		svc := NewService(wsRepo, resRepo, nopLogger{})
		free, err := svc.IsAvailable(ctx, 3, at(9), at(11), nil)
		assert.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("conflicting reservation", func(t *testing.T) {
		wsRepo := new(mockWorkstationRepo)
		resRepo := new(mockReservationRepo)
		wsRepo.On("GetByID", ctx, int64(3)).
			Return(&domain.WorkStation{ID: 3, Status: domain.WorkStationAvailable}, nil)
		resRepo.On("HasOverlapping", ctx, int64(3), at(9), at(11), (*int64)(nil)).
			Return(true, nil)

		svc := NewService(wsRepo, resRepo, nopLogger{})
		free, err := svc.IsAvailable(ctx, 3, at(9), at(11), nil)
		assert.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("maintenance blocks without overlap query", func(t *testing.T) {
		wsRepo := new(mockWorkstationRepo)
		resRepo := new(mockReservationRepo)
		wsRepo.On("GetByID", ctx, int64(3)).
			Return(&domain.WorkStation{ID: 3, Status: domain.WorkStationMaintenance}, nil)

		svc := NewService(wsRepo, resRepo, nopLogger{})
		free, err := svc.IsAvailable(ctx, 3, at(9), at(11), nil)
		assert.NoError(t, err)
		assert.False(t, free)
		resRepo.AssertNotCalled(t, "HasOverlapping",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown workstation", func(t *testing.T) {
		wsRepo := new(mockWorkstationRepo)
		resRepo := new(mockReservationRepo)
		wsRepo.On("GetByID", ctx, int64(99)).
			Return(nil, workstationRepo.ErrWorkstationNotFound)

		svc := NewService(wsRepo, resRepo, nopLogger{})
		_, err := svc.IsAvailable(ctx, 99, at(9), at(11), nil)
		assert.ErrorIs(t, err, ErrWorkstationNotFound)
	})

	t.Run("degenerate interval", func(t *testing.T) {
		svc := NewService(new(mockWorkstationRepo), new(mockReservationRepo), nopLogger{})
		_, err := svc.IsAvailable(ctx, 3, at(9), at(9), nil)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("exclude id passed through", func(t *testing.T) {
		wsRepo := new(mockWorkstationRepo)
		resRepo := new(mockReservationRepo)
		exclude := int64(42)
		wsRepo.On("GetByID", ctx, int64(3)).
			Return(&domain.WorkStation{ID: 3, Status: domain.WorkStationAvailable}, nil)
		resRepo.On("HasOverlapping", ctx, int64(3), at(9), at(11), &exclude).
			Return(false, nil)

		svc := NewService(wsRepo, resRepo, nopLogger{})
		free, err := svc.IsAvailable(ctx, 3, at(9), at(11), &exclude)
		assert.NoError(t, err)
		assert.True(t, free)
		resRepo.AssertExpectations(t)
	})
}
