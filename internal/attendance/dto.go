package attendance

import (
	"errors"
	"time"
)

// UserSummary is the slice of the user record shown on HR attendance views.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// AttendanceWithUser decorates a record with its owner for HR listings.
type AttendanceWithUser struct {
	Attendance
	User UserSummary `json:"user"`
}

// RangeDTO carries the date window for attendance reads.
type RangeDTO struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func (dto RangeDTO) Validate() error {
	if dto.StartDate.IsZero() || dto.EndDate.IsZero() {
		return errors.New("start_date and end_date are required")
	}
	if dto.EndDate.Before(dto.StartDate) {
		return errors.New("end_date must not precede start_date")
	}
	return nil
}
