package attendance

import (
	"errors"
	"math"
	"time"
)

// Attendance is one record per user per calendar day. The (user_id, date)
// unique constraint is the real guard against duplicate check-ins; the
// service-level read is advisory.
type Attendance struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	UserID       int64      `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_attendances_user_date"`
	Date         time.Time  `json:"date" gorm:"column:date;not null;uniqueIndex:idx_attendances_user_date"`
	CheckInTime  *time.Time `json:"check_in_time,omitempty" gorm:"column:check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty" gorm:"column:check_out_time"`
	WorkHours    *float64   `json:"work_hours,omitempty" gorm:"column:work_hours"`
	Status       string     `json:"status" gorm:"column:status;default:ABSENT"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusOnLeave = "ON_LEAVE"
)

var (
	ErrNotFound          = errors.New("attendance record not found")
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrNotCheckedIn      = errors.New("please check in first")
)

// DayOf truncates a timestamp to local midnight, the canonical attendance date.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ComputeWorkHours returns the elapsed hours between check-in and check-out,
// rounded to two decimal places.
func ComputeWorkHours(checkIn, checkOut time.Time) float64 {
	hours := checkOut.Sub(checkIn).Hours()
	return math.Round(hours*100) / 100
}

func (a *Attendance) HasCheckedIn() bool {
	return a.CheckInTime != nil
}

func (a *Attendance) HasCheckedOut() bool {
	return a.CheckOutTime != nil
}
