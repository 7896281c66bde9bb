package timeoff

import (
	"errors"
	"time"
)

// TimeOffRequest lifecycle: PENDING -> APPROVED or PENDING -> REJECTED,
// both terminal.
type TimeOffRequest struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	UserID          int64      `json:"user_id" gorm:"column:user_id;not null"`
	Type            string     `json:"type" gorm:"column:type;not null"`
	StartDate       time.Time  `json:"start_date" gorm:"column:start_date;not null"`
	EndDate         time.Time  `json:"end_date" gorm:"column:end_date;not null"`
	Reason          string     `json:"reason" gorm:"column:reason"`
	Attachment      *string    `json:"attachment,omitempty" gorm:"column:attachment"`
	NumberOfDays    int        `json:"number_of_days" gorm:"column:number_of_days"`
	Status          string     `json:"status" gorm:"column:status;default:PENDING"`
	ApprovedBy      *int64     `json:"approved_by,omitempty" gorm:"column:approved_by"`
	RejectionReason *string    `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (TimeOffRequest) TableName() string {
	return "time_off_requests"
}

// TimeOffAllocation holds the yearly leave grant. One row per user; a stale
// year is reset to the defaults, unused days never roll over.
type TimeOffAllocation struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	UserID           int64     `json:"user_id" gorm:"column:user_id;uniqueIndex;not null"`
	Year             int       `json:"year" gorm:"column:year;not null"`
	PaidTimeOffDays  int       `json:"paid_time_off_days" gorm:"column:paid_time_off_days"`
	SickLeaveDays    int       `json:"sick_leave_days" gorm:"column:sick_leave_days"`
	UnpaidLeavesDays int       `json:"unpaid_leaves_days" gorm:"column:unpaid_leaves_days"`
	CreatedAt        time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (TimeOffAllocation) TableName() string {
	return "time_off_allocations"
}

const (
	TypePaidTimeOff = "PAID_TIME_OFF"
	TypeSickLeave   = "SICK_LEAVE"
	TypeUnpaidLeave = "UNPAID_LEAVES"

	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Default yearly grants for a fresh allocation.
const (
	DefaultPaidDays   = 20
	DefaultSickDays   = 10
	DefaultUnpaidDays = 0
)

var (
	ErrRequestNotFound   = errors.New("time-off request not found")
	ErrRequestNotPending = errors.New("request is not pending")
	ErrNotManaged        = errors.New("employee is not managed by this HR")
)

// CountDays returns the inclusive day count of a leave span:
// floor((end-start)/1d) + 1. A same-day request counts as one day.
func CountDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func (r *TimeOffRequest) IsPending() bool {
	return r.Status == StatusPending
}

func (r *TimeOffRequest) Approve(approverID int64) {
	r.Status = StatusApproved
	r.ApprovedBy = &approverID
	r.UpdatedAt = time.Now()
}

func (r *TimeOffRequest) Reject(approverID int64, reason string) {
	r.Status = StatusRejected
	r.ApprovedBy = &approverID
	r.RejectionReason = &reason
	r.UpdatedAt = time.Now()
}

// NewAllocation builds the default grant for a user and year.
func NewAllocation(userID int64, year int) *TimeOffAllocation {
	return &TimeOffAllocation{
		UserID:           userID,
		Year:             year,
		PaidTimeOffDays:  DefaultPaidDays,
		SickLeaveDays:    DefaultSickDays,
		UnpaidLeavesDays: DefaultUnpaidDays,
	}
}

func IsValidType(t string) bool {
	switch t {
	case TypePaidTimeOff, TypeSickLeave, TypeUnpaidLeave:
		return true
	}
	return false
}
