package profile

import (
	"errors"
	"log/slog"

	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/frahmantamala/hr-management/internal/timeoff"
)

var errRecordNotFound = errors.New("record not found")

// Repository defines the data access methods for profile and salary records.
type Repository interface {
	GetUserInfo(userID int64) (*UserInfo, error)
	GetDetails(userID int64) (*EmployeeDetails, error)
	UpsertDetails(details *EmployeeDetails) error
	GetSalary(userID int64) (*SalaryInfo, error)
	UpsertSalary(salary *SalaryInfo) error
	RecentAttendance(userID int64, limit int) ([]*attendance.Attendance, error)
	RecentRequests(userID int64, limit int) ([]*timeoff.TimeOffRequest, error)
	GetAllocation(userID int64) (*timeoff.TimeOffAllocation, error)
}

// NotFound is the sentinel repositories return for absent optional records.
func NotFound() error { return errRecordNotFound }

func IsNotFound(err error) bool { return errors.Is(err, errRecordNotFound) }

// Service handles profile and salary record keeping. All operations are
// keyed upserts plus ownership scoping; there are no business rules beyond
// access control.
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

// GetProfile returns the caller's own user record plus optional extensions.
func (s *Service) GetProfile(userID int64) (*ProfileView, error) {
	user, err := s.repo.GetUserInfo(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	view := &ProfileView{User: user}

	if details, err := s.repo.GetDetails(userID); err == nil {
		view.Details = details
	} else if !IsNotFound(err) {
		s.logger.Error("failed to read employee details", "error", err, "user_id", userID)
		return nil, err
	}

	if salary, err := s.repo.GetSalary(userID); err == nil {
		view.Salary = salary
	} else if !IsNotFound(err) {
		s.logger.Error("failed to read salary info", "error", err, "user_id", userID)
		return nil, err
	}

	return view, nil
}

// GetEmployeeProfile returns the full profile of a managed employee with
// recent activity. Only the owning HR may read it.
func (s *Service) GetEmployeeProfile(hrID, employeeID int64) (*EmployeeProfileView, error) {
	user, err := s.repo.GetUserInfo(employeeID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if user.HRID == nil || *user.HRID != hrID {
		s.logger.Warn("employee profile access denied",
			"hr_id", hrID,
			"employee_id", employeeID)
		return nil, ErrNotManaged
	}

	view := &EmployeeProfileView{User: user}

	if details, err := s.repo.GetDetails(employeeID); err == nil {
		view.Details = details
	} else if !IsNotFound(err) {
		return nil, err
	}

	if salary, err := s.repo.GetSalary(employeeID); err == nil {
		view.Salary = salary
	} else if !IsNotFound(err) {
		return nil, err
	}

	if view.RecentAttendance, err = s.repo.RecentAttendance(employeeID, 10); err != nil {
		s.logger.Error("failed to read recent attendance", "error", err, "employee_id", employeeID)
		return nil, err
	}
	if view.RecentRequests, err = s.repo.RecentRequests(employeeID, 5); err != nil {
		s.logger.Error("failed to read recent requests", "error", err, "employee_id", employeeID)
		return nil, err
	}
	if alloc, err := s.repo.GetAllocation(employeeID); err == nil {
		view.Allocation = alloc
	} else if !IsNotFound(err) {
		return nil, err
	}

	return view, nil
}

// UpdateDetails upserts the caller's own descriptive record. Absent fields
// stay untouched.
func (s *Service) UpdateDetails(userID int64, dto UpdateDetailsDTO) (*EmployeeDetails, error) {
	details, err := s.repo.GetDetails(userID)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		details = &EmployeeDetails{UserID: userID}
	}

	dto.Apply(details)

	if err := s.repo.UpsertDetails(details); err != nil {
		s.logger.Error("failed to upsert employee details", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("employee details updated", "user_id", userID)
	return details, nil
}

// UpdateEmployeeDetails lets the owning HR edit a managed employee's record.
func (s *Service) UpdateEmployeeDetails(hrID, employeeID int64, dto UpdateDetailsDTO) (*EmployeeDetails, error) {
	if err := s.requireManaged(hrID, employeeID); err != nil {
		return nil, err
	}
	return s.UpdateDetails(employeeID, dto)
}

// UpdateSalary upserts the caller's own compensation record.
func (s *Service) UpdateSalary(userID int64, dto UpdateSalaryDTO) (*SalaryInfo, error) {
	salary, err := s.repo.GetSalary(userID)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		salary = &SalaryInfo{UserID: userID}
	}

	dto.Apply(salary)

	if err := s.repo.UpsertSalary(salary); err != nil {
		s.logger.Error("failed to upsert salary info", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("salary info updated", "user_id", userID)
	return salary, nil
}

// UpdateEmployeeSalary lets the owning HR edit a managed employee's
// compensation.
func (s *Service) UpdateEmployeeSalary(hrID, employeeID int64, dto UpdateSalaryDTO) (*SalaryInfo, error) {
	if err := s.requireManaged(hrID, employeeID); err != nil {
		return nil, err
	}
	return s.UpdateSalary(employeeID, dto)
}

// GetEmployeeSalary returns a managed employee's compensation record.
func (s *Service) GetEmployeeSalary(hrID, employeeID int64) (*SalaryInfo, error) {
	if err := s.requireManaged(hrID, employeeID); err != nil {
		return nil, err
	}

	salary, err := s.repo.GetSalary(employeeID)
	if err != nil {
		if IsNotFound(err) {
			return &SalaryInfo{UserID: employeeID}, nil
		}
		return nil, err
	}
	return salary, nil
}

func (s *Service) requireManaged(hrID, employeeID int64) error {
	user, err := s.repo.GetUserInfo(employeeID)
	if err != nil {
		return ErrUserNotFound
	}
	if user.HRID == nil || *user.HRID != hrID {
		s.logger.Warn("salary/profile access denied", "hr_id", hrID, "employee_id", employeeID)
		return ErrNotManaged
	}
	return nil
}
