package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicyForRole(t *testing.T) {
	student := PolicyForRole(RoleStudent)
	assert.Equal(t, 2*time.Hour, student.MaxDuration)
	assert.Equal(t, time.Hour, student.Cooldown)
	assert.Equal(t, 1, student.MaxActiveReservations)
	assert.Equal(t, time.Hour, student.CancellationNotice)

	// Every non-student role shares the relaxed policy
	for _, role := range []Role{RoleManager, RoleAdmin, Role("visitor")} {
		p := PolicyForRole(role)
		assert.Equal(t, 8*time.Hour, p.MaxDuration, "role=%s", role)
		assert.Zero(t, p.Cooldown, "role=%s", role)
		assert.Zero(t, p.MaxActiveReservations, "role=%s", role)
		assert.Zero(t, p.CancellationNotice, "role=%s", role)
	}
}
