package models

import (
	"time"

	"github.com/m04kA/CWS-ReservationService/internal/domain"
)

// PenaltyStatsResponse is the per-user penalty statistics DTO
type PenaltyStatsResponse struct {
	UserID         int64   `json:"userId"`
	Name           string  `json:"name"`
	StrikeCount    int     `json:"strikeCount"`
	TotalNoShows   int     `json:"totalNoShows"`
	UserStatus     string  `json:"userStatus"`
	CanBook        bool    `json:"canBook"`
	LastStrikeDate *string `json:"lastStrikeDate,omitempty"`
}

// UserListResponse wraps a list of penalty statistics
type UserListResponse struct {
	Users []PenaltyStatsResponse `json:"users"`
}

// FromDomainUser converts a domain user into the stats DTO
func FromDomainUser(u *domain.User) *PenaltyStatsResponse {
	if u == nil {
		return nil
	}

	resp := &PenaltyStatsResponse{
		UserID:       u.ID,
		Name:         u.Name,
		StrikeCount:  u.StrikeCount,
		TotalNoShows: u.TotalNoShows,
		UserStatus:   string(u.UserStatus),
		CanBook:      u.CanBook(),
	}

	if u.LastStrikeDate != nil {
		s := u.LastStrikeDate.Format(time.RFC3339)
		resp.LastStrikeDate = &s
	}

	return resp
}

// FromDomainUserList converts a list of domain users into the list DTO
func FromDomainUserList(users []*domain.User) *UserListResponse {
	resp := &UserListResponse{
		Users: make([]PenaltyStatsResponse, 0, len(users)),
	}
	for _, u := range users {
		if stats := FromDomainUser(u); stats != nil {
			resp.Users = append(resp.Users, *stats)
		}
	}
	return resp
}

// ToDomainUserStatus converts a string into a validated domain.UserStatus
func ToDomainUserStatus(status string) (domain.UserStatus, bool) {
	s := domain.UserStatus(status)
	switch s {
	case domain.UserStatusGood, domain.UserStatusWarning, domain.UserStatusBad:
		return s, true
	}
	return "", false
}
