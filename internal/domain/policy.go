package domain

import "time"

// RolePolicy describes the booking constraints applied to a role.
// Policy is kept as a table keyed by role so that new roles get a policy
// entry instead of another conditional scattered through the services.
type RolePolicy struct {
	// MaxDuration is the longest reservation the role may hold.
	MaxDuration time.Duration
	// Cooldown is the minimum gap between the end of the user's last
	// confirmed/completed reservation and the start of the next one.
	// Zero means no cooldown applies.
	Cooldown time.Duration
	// MaxActiveReservations limits concurrently active reservations.
	// Zero means unlimited.
	MaxActiveReservations int
	// CancellationNotice is how long before the start time cancellation
	// closes. Zero means the role may cancel at any time.
	CancellationNotice time.Duration
}

var rolePolicies = map[Role]RolePolicy{
	RoleStudent: {
		MaxDuration:           2 * time.Hour,
		Cooldown:              time.Hour,
		MaxActiveReservations: 1,
		CancellationNotice:    time.Hour,
	},
}

// relaxedPolicy applies to every role without an explicit entry.
// The source system only ever distinguished students from privileged roles,
// so new roles inherit the relaxed constraints.
var relaxedPolicy = RolePolicy{
	MaxDuration: 8 * time.Hour,
}

// PolicyForRole returns the booking policy for the given role
func PolicyForRole(role Role) RolePolicy {
	if p, ok := rolePolicies[role]; ok {
		return p
	}
	return relaxedPolicy
}
