package domain

import "time"

// WorkStationStatus represents the administrative status of a workstation
type WorkStationStatus string

const (
	WorkStationAvailable   WorkStationStatus = "available"
	WorkStationMaintenance WorkStationStatus = "maintenance"
	WorkStationUnavailable WorkStationStatus = "unavailable"
	// WorkStationReserved is a display/aggregate state only. A reserved
	// station stays bookable for other non-overlapping intervals; actual
	// occupancy for any instant is derived from active reservations.
	WorkStationReserved WorkStationStatus = "reserved"
)

// IsBookable reports whether the administrative status allows new reservations.
// Occupancy itself is decided by the availability check, not by this enum.
func (s WorkStationStatus) IsBookable() bool {
	return s != WorkStationMaintenance && s != WorkStationUnavailable
}

// WorkStation represents a bookable physical workstation
type WorkStation struct {
	ID       int64
	Name     string
	Location string
	Status   WorkStationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
