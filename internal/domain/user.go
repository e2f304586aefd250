package domain

import "time"

// Role represents the booking-relevant role of a user
type Role string

const (
	RoleStudent Role = "student"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// IsPrivileged reports whether the role gets the relaxed booking policy
// and may act on reservations it does not own.
func (r Role) IsPrivileged() bool {
	return r == RoleManager || r == RoleAdmin
}

// UserStatus represents the penalty standing of a user
type UserStatus string

const (
	UserStatusGood    UserStatus = "good"
	UserStatusWarning UserStatus = "warning"
	UserStatusBad     UserStatus = "bad"
)

// User is the booking-relevant projection of an organization member
type User struct {
	ID   int64
	Name string
	Role Role

	StrikeCount    int
	TotalNoShows   int
	UserStatus     UserStatus
	LastStrikeDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeriveUserStatus computes the penalty standing from the strike count.
// The status is never stored independently: every ledger mutation recomputes
// it through this function to keep the two fields from drifting apart.
func DeriveUserStatus(strikeCount int) UserStatus {
	switch {
	case strikeCount >= BadStrikeThreshold:
		return UserStatusBad
	case strikeCount >= WarningStrikeThreshold:
		return UserStatusWarning
	default:
		return UserStatusGood
	}
}

// CanBook returns true unless the user's penalty standing blocks new bookings
func (u *User) CanBook() bool {
	return u.UserStatus != UserStatusBad
}
