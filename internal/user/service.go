package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/profile"
	"github.com/frahmantamala/hr-management/internal/timeoff"
)

// Repository defines the data access methods for accounts and onboarding.
type Repository interface {
	Create(u *User) error
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(u *User) error
	ListEmployees(hrID int64, search string) ([]*EmployeeSummary, error)
	CountEmployees(hrID int64) (int64, error)

	CreateVerificationToken(t *VerificationToken) error
	GetVerificationToken(token string) (*VerificationToken, error)
	DeleteVerificationToken(id int64) error

	// OnboardEmployee creates the account together with its details, salary
	// and allocation rows in one transaction.
	OnboardEmployee(u *User, details *profile.EmployeeDetails, salary *profile.SalaryInfo, alloc *timeoff.TimeOffAllocation) error
}

// Service handles account registration, employee onboarding and the
// directory listing.
type Service struct {
	repo       Repository
	eventBus   *events.EventBus
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		eventBus:   eventBus,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// RegisterHR creates an unverified HR account and publishes the
// verification event. Notification failures never fail the signup.
func (s *Service) RegisterHR(dto RegisterHRDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("signup validation failed", "error", err)
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("signup rejected: email taken", "email", dto.Email)
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	now := time.Now()
	u := &User{
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         auth.RoleHR,
		CompanyName:  &dto.CompanyName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create HR account", "error", err, "email", dto.Email)
		return nil, err
	}

	token, err := NewVerificationToken(u.ID)
	if err == nil {
		err = s.repo.CreateVerificationToken(token)
	}
	if err != nil {
		// The account exists; the user can request a fresh token later.
		s.logger.Error("failed to issue verification token", "error", err, "user_id", u.ID)
	} else {
		s.eventBus.Publish(context.Background(),
			events.NewHRRegisteredEvent(u.ID, u.Email, u.Name, token.Token))
	}

	s.logger.Info("HR registered", "user_id", u.ID, "company", dto.CompanyName)
	return u, nil
}

// VerifyEmail consumes a verification token and marks the account verified.
func (s *Service) VerifyEmail(token string) (*User, error) {
	vt, err := s.repo.GetVerificationToken(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if vt.IsExpired() {
		return nil, ErrTokenExpired
	}

	u, err := s.repo.GetByID(vt.UserID)
	if err != nil {
		return nil, ErrNotFound
	}
	if u.IsVerified() {
		return nil, ErrAlreadyVerified
	}

	now := time.Now()
	u.EmailVerifiedAt = &now
	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to mark email verified", "error", err, "user_id", u.ID)
		return nil, err
	}

	if err := s.repo.DeleteVerificationToken(vt.ID); err != nil {
		s.logger.Warn("failed to delete used verification token", "error", err, "token_id", vt.ID)
	}

	s.logger.Info("email verified", "user_id", u.ID)
	return u, nil
}

// AddEmployee onboards a new employee under the calling HR: a pre-verified
// account with a generated code and temporary password, plus its details,
// salary and current-year allocation rows, all in one transaction. The
// credentials notification is fire and forget.
func (s *Service) AddEmployee(hrID int64, dto AddEmployeeDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("add employee validation failed", "error", err, "hr_id", hrID)
		return nil, err
	}

	hr, err := s.repo.GetByID(hrID)
	if err != nil {
		return nil, ErrNotFound
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		s.logger.Warn("add employee rejected: email taken", "email", dto.Email, "hr_id", hrID)
		return nil, ErrEmailTaken
	}

	tempPassword, err := GenerateTempPassword()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(tempPassword, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash temp password", "error", err)
		return nil, err
	}

	count, err := s.repo.CountEmployees(hrID)
	if err != nil {
		return nil, err
	}

	companyName := ""
	if hr.CompanyName != nil {
		companyName = *hr.CompanyName
	}
	code := GenerateEmployeeCode(companyName, count+1)

	now := time.Now()
	joined := now
	if dto.DateOfJoining != nil {
		joined = *dto.DateOfJoining
	}

	u := &User{
		Name:            dto.Name,
		Email:           dto.Email,
		PasswordHash:    hash,
		Role:            auth.RoleEmployee,
		HRID:            &hrID,
		EmployeeID:      &code,
		CompanyName:     hr.CompanyName,
		PhoneNumber:     dto.PhoneNumber,
		EmailVerifiedAt: &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	details := &profile.EmployeeDetails{
		DateOfJoining: &joined,
		Department:    dto.Department,
		Designation:   dto.Designation,
	}

	wageType := profile.WageTypeFixed
	salary := &profile.SalaryInfo{
		WageType:    &wageType,
		MonthlyWage: dto.MonthlyWage,
	}

	alloc := timeoff.NewAllocation(0, now.Year())

	if err := s.repo.OnboardEmployee(u, details, salary, alloc); err != nil {
		s.logger.Error("failed to onboard employee", "error", err, "hr_id", hrID, "email", dto.Email)
		return nil, err
	}

	s.eventBus.Publish(context.Background(),
		events.NewEmployeeCreatedEvent(u.ID, u.Email, u.Name, code, tempPassword, companyName))

	s.logger.Info("employee onboarded",
		"user_id", u.ID,
		"hr_id", hrID,
		"employee_code", code)

	return u, nil
}

// ListEmployees returns the directory of employees managed by hrID,
// optionally filtered by a case-insensitive substring of name or email.
func (s *Service) ListEmployees(hrID int64, search string) ([]*EmployeeSummary, error) {
	employees, err := s.repo.ListEmployees(hrID, search)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err, "hr_id", hrID)
		return nil, err
	}
	return employees, nil
}

// UpdateUserProfile applies a partial update to the caller's account row.
func (s *Service) UpdateUserProfile(userID int64, dto UpdateUserProfileDTO) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	dto.Apply(u)
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user profile", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("user profile updated", "user_id", userID)
	return u, nil
}

// GetByID returns a single account.
func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return u, nil
}
