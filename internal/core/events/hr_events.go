package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeHRRegistered    = "hr.registered"
	EventTypeEmployeeCreated = "employee.created"
	EventTypeTimeOffDecided  = "timeoff.decided"
)

type HRRegisteredEvent struct {
	BaseEvent
	UserID            int64  `json:"user_id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	VerificationToken string `json:"verification_token"`
}

func NewHRRegisteredEvent(userID int64, email, name, verificationToken string) *HRRegisteredEvent {
	return &HRRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeHRRegistered,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
				"email":   email,
				"name":    name,
			},
		},
		UserID:            userID,
		Email:             email,
		Name:              name,
		VerificationToken: verificationToken,
	}
}

// EmployeeCreatedEvent carries the one-time credentials handed to a freshly
// onboarded employee. The password only ever lives in this event and the
// outgoing email.
type EmployeeCreatedEvent struct {
	BaseEvent
	UserID       int64  `json:"user_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
	TempPassword string `json:"-"`
	CompanyName  string `json:"company_name"`
}

func NewEmployeeCreatedEvent(userID int64, email, name, employeeCode, tempPassword, companyName string) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":       userID,
				"email":         email,
				"employee_code": employeeCode,
			},
		},
		UserID:       userID,
		Email:        email,
		Name:         name,
		EmployeeCode: employeeCode,
		TempPassword: tempPassword,
		CompanyName:  companyName,
	}
}

type TimeOffDecidedEvent struct {
	BaseEvent
	RequestID int64  `json:"request_id"`
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

func NewTimeOffDecidedEvent(requestID, userID int64, email, status, reason string) *TimeOffDecidedEvent {
	return &TimeOffDecidedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTimeOffDecided,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id": requestID,
				"user_id":    userID,
				"status":     status,
			},
		},
		RequestID: requestID,
		UserID:    userID,
		Email:     email,
		Status:    status,
		Reason:    reason,
	}
}
