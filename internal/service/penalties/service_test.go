package penalties

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
	userRepo "github.com/m04kA/CWS-ReservationService/internal/infra/storage/user"
)

// fakeUserRepo is an in-memory repository double
type fakeUserRepo struct {
	users map[int64]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePenalty(ctx context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return userRepo.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) ListByStatus(ctx context.Context, status domain.UserStatus) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.UserStatus == status {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListTopOffenders(ctx context.Context, limit int) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if u.TotalNoShows > 0 {
			cp := *u
			out = append(out, &cp)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newService(repo UserRepository, now time.Time) *Service {
	s := NewService(repo, nopLogger{})
	s.timeProvider = fixedClock{now: now}
	return s
}

func student(id int64, strikes, noShows int) *domain.User {
	return &domain.User{
		ID:           id,
		Name:         "Student",
		Role:         domain.RoleStudent,
		StrikeCount:  strikes,
		TotalNoShows: noShows,
		UserStatus:   domain.DeriveUserStatus(strikes),
	}
}

func TestApplyStrikeLadder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(student(1, 0, 0))
	svc := newService(repo, now)

	// Each applied strike moves the ladder monotonically: good until the
	// third strike, warning until the fifth, bad from there on.
	expected := []domain.UserStatus{
		domain.UserStatusGood,    // 1
		domain.UserStatusGood,    // 2
		domain.UserStatusWarning, // 3
		domain.UserStatusWarning, // 4
		domain.UserStatusBad,     // 5
	}

	for i, want := range expected {
		u, err := svc.ApplyStrike(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, i+1, u.StrikeCount)
		assert.Equal(t, i+1, u.TotalNoShows)
		assert.Equal(t, want, u.UserStatus, "after strike %d", i+1)
		require.NotNil(t, u.LastStrikeDate)
		assert.Equal(t, now, *u.LastStrikeDate)
	}
}

func TestRemoveStrike(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("bad drops back to warning", func(t *testing.T) {
		repo := newFakeUserRepo(student(1, 5, 5))
		svc := newService(repo, now)

		u, err := svc.RemoveStrike(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 4, u.StrikeCount)
		assert.Equal(t, domain.UserStatusWarning, u.UserStatus)
		assert.Equal(t, 5, u.TotalNoShows, "no-show history is never rewritten")
	})

	t.Run("floor at zero", func(t *testing.T) {
		repo := newFakeUserRepo(student(1, 0, 0))
		svc := newService(repo, now)

		u, err := svc.RemoveStrike(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, u.StrikeCount)
		assert.Equal(t, domain.UserStatusGood, u.UserStatus)
	})
}

func TestResetStrikes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	last := now.Add(-24 * time.Hour)

	u := student(1, 6, 4)
	u.LastStrikeDate = &last
	repo := newFakeUserRepo(u)
	svc := newService(repo, now)

	got, err := svc.ResetStrikes(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StrikeCount)
	assert.Equal(t, domain.UserStatusGood, got.UserStatus)
	assert.Nil(t, got.LastStrikeDate)
	assert.Equal(t, 4, got.TotalNoShows)
}

func TestAddManualStrike(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("counts a strike but not a no-show", func(t *testing.T) {
		repo := newFakeUserRepo(student(1, 2, 2))
		svc := newService(repo, now)

		u, err := svc.AddManualStrike(ctx, 1, "left the workstation in disarray")
		require.NoError(t, err)
		assert.Equal(t, 3, u.StrikeCount)
		assert.Equal(t, domain.UserStatusWarning, u.UserStatus)
		assert.Equal(t, 2, u.TotalNoShows)
	})

	t.Run("reason is required", func(t *testing.T) {
		repo := newFakeUserRepo(student(1, 0, 0))
		svc := newService(repo, now)

		_, err := svc.AddManualStrike(ctx, 1, "   ")
		assert.ErrorIs(t, err, ErrMissingReason)
	})

	t.Run("non-student target rejected", func(t *testing.T) {
		manager := &domain.User{ID: 2, Role: domain.RoleManager, UserStatus: domain.UserStatusGood}
		repo := newFakeUserRepo(manager)
		svc := newService(repo, now)

		_, err := svc.AddManualStrike(ctx, 2, "some reason")
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})
}

func TestCanBook(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(student(1, 4, 4), student(2, 5, 5))
	svc := newService(repo, now)

	ok, err := svc.CanBook(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok, "warning standing still books")

	ok, err = svc.CanBook(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok, "bad standing is blocked")
}

func TestAuthorizeManager(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	manager := &domain.User{ID: 2, Role: domain.RoleManager, UserStatus: domain.UserStatusGood}
	repo := newFakeUserRepo(student(1, 0, 0), manager)
	svc := newService(repo, now)

	assert.NoError(t, svc.AuthorizeManager(ctx, 2))
	assert.ErrorIs(t, svc.AuthorizeManager(ctx, 1), ErrForbidden)
	assert.ErrorIs(t, svc.AuthorizeManager(ctx, 99), ErrUserNotFound)
}

func TestListByStatusValidation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	svc := newService(newFakeUserRepo(), now)

	_, err := svc.ListByStatus(ctx, "terrible")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
