package timeoff

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/events"
)

// Repository defines the data access methods for time-off requests and
// allocations.
type Repository interface {
	CreateRequest(req *TimeOffRequest) error
	GetRequestByID(id int64) (*TimeOffRequest, error)
	GetRequestOwner(userID int64) (*RequestOwner, error)
	UpdateRequest(req *TimeOffRequest) error
	ListForUser(userID int64) ([]*TimeOffRequest, error)
	ListForHR(hrID int64, search string) ([]*RequestWithUser, error)

	GetAllocation(userID int64) (*TimeOffAllocation, error)
	UpsertAllocation(alloc *TimeOffAllocation) error
	ApprovedDaysByType(userID int64, year int) (UsedDays, error)
}

var ErrAllocationNotFound = errors.New("allocation not found")

// Service handles the time-off request workflow and allocation tracking.
type Service struct {
	repo     Repository
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Request files a new PENDING time-off request. The remaining allocation
// balance is deliberately not checked here; it is display-only.
func (s *Service) Request(userID int64, dto CreateTimeOffDTO) (*TimeOffRequest, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("time-off validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	req := &TimeOffRequest{
		UserID:       userID,
		Type:         dto.Type,
		StartDate:    dto.StartDate,
		EndDate:      dto.EndDate,
		Reason:       dto.Reason,
		Attachment:   dto.Attachment,
		NumberOfDays: CountDays(dto.StartDate, dto.EndDate),
		Status:       StatusPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.CreateRequest(req); err != nil {
		s.logger.Error("failed to create time-off request", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("time-off requested",
		"request_id", req.ID,
		"user_id", userID,
		"type", req.Type,
		"days", req.NumberOfDays)

	return req, nil
}

// Approve transitions a PENDING request to APPROVED. Only the HR managing
// the request's owner may decide it.
func (s *Service) Approve(requestID, approverID int64) (*TimeOffRequest, error) {
	req, owner, err := s.loadForDecision(requestID, approverID)
	if err != nil {
		return nil, err
	}

	req.Approve(approverID)
	if err := s.repo.UpdateRequest(req); err != nil {
		s.logger.Error("failed to approve request", "error", err, "request_id", requestID)
		return nil, err
	}

	s.logger.Info("time-off approved", "request_id", requestID, "approver_id", approverID)

	s.eventBus.Publish(context.Background(),
		events.NewTimeOffDecidedEvent(req.ID, req.UserID, owner.Email, StatusApproved, ""))

	return req, nil
}

// Reject transitions a PENDING request to REJECTED with a mandatory reason.
func (s *Service) Reject(requestID, approverID int64, dto RejectTimeOffDTO) (*TimeOffRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	req, owner, err := s.loadForDecision(requestID, approverID)
	if err != nil {
		return nil, err
	}

	req.Reject(approverID, dto.Reason)
	if err := s.repo.UpdateRequest(req); err != nil {
		s.logger.Error("failed to reject request", "error", err, "request_id", requestID)
		return nil, err
	}

	s.logger.Info("time-off rejected",
		"request_id", requestID,
		"approver_id", approverID,
		"reason", dto.Reason)

	s.eventBus.Publish(context.Background(),
		events.NewTimeOffDecidedEvent(req.ID, req.UserID, owner.Email, StatusRejected, dto.Reason))

	return req, nil
}

// loadForDecision applies the decision preconditions in order: existence,
// ownership, then state.
func (s *Service) loadForDecision(requestID, approverID int64) (*TimeOffRequest, *RequestOwner, error) {
	req, err := s.repo.GetRequestByID(requestID)
	if err != nil {
		s.logger.Warn("request not found for decision", "request_id", requestID)
		return nil, nil, ErrRequestNotFound
	}

	owner, err := s.repo.GetRequestOwner(req.UserID)
	if err != nil {
		s.logger.Error("failed to resolve request owner", "error", err, "request_id", requestID)
		return nil, nil, err
	}

	if owner.HRID == nil || *owner.HRID != approverID {
		s.logger.Warn("decision denied: employee not managed by approver",
			"request_id", requestID,
			"approver_id", approverID)
		return nil, nil, ErrNotManaged
	}

	if !req.IsPending() {
		s.logger.Warn("decision denied: request not pending",
			"request_id", requestID,
			"status", req.Status)
		return nil, nil, ErrRequestNotPending
	}

	return req, owner, nil
}

// Allocation returns the caller's current-year allocation, lazily creating
// one with default grants when missing, or resetting a stale year. Prior-year
// unused days do not roll over.
func (s *Service) Allocation(userID int64) (*AllocationView, error) {
	currentYear := time.Now().Year()

	alloc, err := s.repo.GetAllocation(userID)
	if err != nil && !errors.Is(err, ErrAllocationNotFound) {
		s.logger.Error("failed to read allocation", "error", err, "user_id", userID)
		return nil, err
	}

	if alloc == nil || alloc.Year != currentYear {
		fresh := NewAllocation(userID, currentYear)
		if alloc != nil {
			fresh.ID = alloc.ID
			fresh.CreatedAt = alloc.CreatedAt
		}
		if err := s.repo.UpsertAllocation(fresh); err != nil {
			s.logger.Error("failed to upsert allocation", "error", err, "user_id", userID)
			return nil, err
		}
		alloc = fresh
		s.logger.Info("allocation provisioned", "user_id", userID, "year", currentYear)
	}

	used, err := s.repo.ApprovedDaysByType(userID, currentYear)
	if err != nil {
		s.logger.Error("failed to sum approved days", "error", err, "user_id", userID)
		return nil, err
	}

	return &AllocationView{Allocation: alloc, Used: used}, nil
}

// ListForUser lists the caller's own requests, newest first.
func (s *Service) ListForUser(userID int64) ([]*TimeOffRequest, error) {
	requests, err := s.repo.ListForUser(userID)
	if err != nil {
		s.logger.Error("failed to list time-off requests", "error", err, "user_id", userID)
		return nil, err
	}
	return requests, nil
}

// ListForHR lists requests of the employees managed by hrID, optionally
// filtered by a case-insensitive substring of name or email.
func (s *Service) ListForHR(hrID int64, search string) ([]*RequestWithUser, error) {
	requests, err := s.repo.ListForHR(hrID, search)
	if err != nil {
		s.logger.Error("failed to list managed time-off requests", "error", err, "hr_id", hrID)
		return nil, err
	}
	return requests, nil
}
