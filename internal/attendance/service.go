package attendance

import (
	"errors"
	"log/slog"
	"time"
)

// Repository defines the data access methods for attendance records.
type Repository interface {
	GetByUserAndDate(userID int64, date time.Time) (*Attendance, error)
	Upsert(att *Attendance) error
	Update(att *Attendance) error
	RangeForUser(userID int64, start, end time.Time) ([]*Attendance, error)
	RangeForHR(hrID int64, start, end time.Time, search string) ([]*AttendanceWithUser, error)
}

// Service handles the attendance check-in/check-out lifecycle.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CheckIn records today's check-in. The read-then-upsert here is advisory
// only: concurrent calls are resolved by the unique (user_id, date)
// constraint underneath Upsert.
func (s *Service) CheckIn(userID int64) (*Attendance, error) {
	now := time.Now()
	today := DayOf(now)

	existing, err := s.repo.GetByUserAndDate(userID, today)
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Error("failed to read today's attendance", "error", err, "user_id", userID)
		return nil, err
	}

	if existing != nil && existing.HasCheckedIn() {
		s.logger.Warn("duplicate check-in rejected", "user_id", userID, "date", today)
		return nil, ErrAlreadyCheckedIn
	}

	att := &Attendance{
		UserID:      userID,
		Date:        today,
		CheckInTime: &now,
		Status:      StatusPresent,
	}
	if existing != nil {
		att.ID = existing.ID
		att.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Upsert(att); err != nil {
		s.logger.Error("failed to upsert check-in", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("checked in", "user_id", userID, "date", today)
	return att, nil
}

// CheckOut closes today's record and derives work hours.
func (s *Service) CheckOut(userID int64) (*Attendance, error) {
	now := time.Now()
	today := DayOf(now)

	att, err := s.repo.GetByUserAndDate(userID, today)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotCheckedIn
		}
		s.logger.Error("failed to read today's attendance", "error", err, "user_id", userID)
		return nil, err
	}

	if !att.HasCheckedIn() {
		return nil, ErrNotCheckedIn
	}
	if att.HasCheckedOut() {
		return nil, ErrAlreadyCheckedOut
	}

	workHours := ComputeWorkHours(*att.CheckInTime, now)
	att.CheckOutTime = &now
	att.WorkHours = &workHours

	if err := s.repo.Update(att); err != nil {
		s.logger.Error("failed to record check-out", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("checked out", "user_id", userID, "work_hours", workHours)
	return att, nil
}

// TodayStatus returns today's record, or nil when the user has no record yet.
func (s *Service) TodayStatus(userID int64) (*Attendance, error) {
	att, err := s.repo.GetByUserAndDate(userID, DayOf(time.Now()))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return att, nil
}

// Range lists the caller's own records in a date window, newest first.
func (s *Service) Range(userID int64, dto RangeDTO) ([]*Attendance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	records, err := s.repo.RangeForUser(userID, dto.StartDate, dto.EndDate)
	if err != nil {
		s.logger.Error("failed to list attendance", "error", err, "user_id", userID)
		return nil, err
	}
	return records, nil
}

// ManagedRange lists records of the employees managed by hrID, optionally
// filtered by a case-insensitive substring of name or email.
func (s *Service) ManagedRange(hrID int64, dto RangeDTO, search string) ([]*AttendanceWithUser, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	records, err := s.repo.RangeForHR(hrID, dto.StartDate, dto.EndDate, search)
	if err != nil {
		s.logger.Error("failed to list managed attendance", "error", err, "hr_id", hrID)
		return nil, err
	}
	return records, nil
}
