package timeoff

import (
	"errors"
	"time"
)

// CreateTimeOffDTO is the request payload for a new time-off request.
type CreateTimeOffDTO struct {
	Type       string    `json:"type"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Reason     string    `json:"reason"`
	Attachment *string   `json:"attachment,omitempty"`
}

func (dto CreateTimeOffDTO) Validate() error {
	if !IsValidType(dto.Type) {
		return errors.New("type must be PAID_TIME_OFF, SICK_LEAVE or UNPAID_LEAVES")
	}
	if dto.StartDate.IsZero() || dto.EndDate.IsZero() {
		return errors.New("start_date and end_date are required")
	}
	if dto.EndDate.Before(dto.StartDate) {
		return errors.New("end_date must not precede start_date")
	}
	if dto.Reason == "" {
		return errors.New("reason is required")
	}
	return nil
}

// RejectTimeOffDTO carries the mandatory rejection reason.
type RejectTimeOffDTO struct {
	Reason string `json:"reason"`
}

func (dto RejectTimeOffDTO) Validate() error {
	if dto.Reason == "" {
		return errors.New("reason is required when rejecting a request")
	}
	return nil
}

// UserSummary is the owner slice shown on HR request listings.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// RequestWithUser decorates a request with its owner for HR listings.
type RequestWithUser struct {
	TimeOffRequest
	User UserSummary `json:"user"`
}

// UsedDays sums the days of APPROVED requests per leave type for a year.
type UsedDays struct {
	Paid   int `json:"paid"`
	Sick   int `json:"sick"`
	Unpaid int `json:"unpaid"`
}

// AllocationView pairs the yearly grant with the days consumed so far.
// Balance is displayed, never enforced at request time.
type AllocationView struct {
	Allocation *TimeOffAllocation `json:"allocation"`
	Used       UsedDays           `json:"used"`
}

// RequestOwner is the slice of the owner record needed for approval checks
// and decision notifications.
type RequestOwner struct {
	HRID  *int64
	Email string
}
