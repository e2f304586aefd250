package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveUserStatus(t *testing.T) {
	tests := []struct {
		strikes int
		want    UserStatus
	}{
		{0, UserStatusGood},
		{1, UserStatusGood},
		{2, UserStatusGood},
		{3, UserStatusWarning},
		{4, UserStatusWarning},
		{5, UserStatusBad},
		{9, UserStatusBad},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveUserStatus(tt.strikes), "strikes=%d", tt.strikes)
	}
}

func TestCanBook(t *testing.T) {
	u := &User{UserStatus: UserStatusGood}
	assert.True(t, u.CanBook())

	// Warning still books, only bad standing blocks
	u.UserStatus = UserStatusWarning
	assert.True(t, u.CanBook())

	u.UserStatus = UserStatusBad
	assert.False(t, u.CanBook())
}

func TestIsPrivileged(t *testing.T) {
	assert.False(t, RoleStudent.IsPrivileged())
	assert.True(t, RoleManager.IsPrivileged())
	assert.True(t, RoleAdmin.IsPrivileged())
}
