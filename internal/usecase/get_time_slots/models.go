package get_time_slots

import "time"

// Request asks for the slot grid of one workstation on one date
type Request struct {
	WorkstationID int64
	Date          time.Time
}

// Response is the hourly slot grid
type Response struct {
	WorkstationID int64  `json:"workstationId"`
	Date          string `json:"date"`
	Slots         []Slot `json:"slots"`
}

// Slot is one hour of the business day
type Slot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Available bool      `json:"available"`
}
