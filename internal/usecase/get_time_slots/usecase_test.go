package get_time_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CWS-ReservationService/internal/service/availability"
)

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) IsAvailable(ctx context.Context, workstationID int64, start, end time.Time, excludeReservationID *int64) (bool, error) {
	args := m.Called(ctx, workstationID, start, end, excludeReservationID)
	return args.Bool(0), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestExecuteGrid(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	checker := new(mockChecker)
	// Business day 9-12 gives three hourly slots; block the middle one
	for hour := 9; hour < 12; hour++ {
		start := day.Add(time.Duration(hour) * time.Hour)
		checker.On("IsAvailable", ctx, int64(3), start, start.Add(time.Hour), (*int64)(nil)).
			Return(hour != 10, nil)
	}

	uc := NewUseCase(checker, 9, 12, nopLogger{})
	resp, err := uc.Execute(ctx, &Request{WorkstationID: 3, Date: day})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
	assert.True(t, resp.Slots[2].Available)

	for i, slot := range resp.Slots {
		assert.Equal(t, day.Add(time.Duration(9+i)*time.Hour), slot.StartTime)
		assert.Equal(t, time.Hour, slot.EndTime.Sub(slot.StartTime))
	}
	checker.AssertExpectations(t)
}

func TestExecuteUnknownWorkstation(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	checker := new(mockChecker)
	checker.On("IsAvailable", ctx, int64(99), mock.Anything, mock.Anything, (*int64)(nil)).
		Return(false, availability.ErrWorkstationNotFound)

	uc := NewUseCase(checker, 9, 12, nopLogger{})
	_, err := uc.Execute(ctx, &Request{WorkstationID: 99, Date: day})
	assert.ErrorIs(t, err, ErrWorkstationNotFound)
}

func TestExecuteValidation(t *testing.T) {
	uc := NewUseCase(new(mockChecker), 9, 12, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{WorkstationID: 0, Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{WorkstationID: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
