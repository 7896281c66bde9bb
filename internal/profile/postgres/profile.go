package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/frahmantamala/hr-management/internal/profile"
	"github.com/frahmantamala/hr-management/internal/timeoff"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository implements profile.Repository using GORM.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) profile.Repository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetUserInfo(userID int64) (*profile.UserInfo, error) {
	var row struct {
		ID          int64  `gorm:"column:id"`
		Name        string `gorm:"column:name"`
		Email       string `gorm:"column:email"`
		Role        string `gorm:"column:role"`
		EmployeeID  string `gorm:"column:employee_id"`
		CompanyName string `gorm:"column:company_name"`
		CompanyLogo string `gorm:"column:company_logo"`
		PhoneNumber string `gorm:"column:phone_number"`
		Image       string `gorm:"column:image"`
		HRID        *int64 `gorm:"column:hr_id"`
	}

	err := r.db.Table("users").
		Select(`id, name, email, role,
			COALESCE(employee_id, '') AS employee_id,
			COALESCE(company_name, '') AS company_name,
			COALESCE(company_logo, '') AS company_logo,
			COALESCE(phone_number, '') AS phone_number,
			COALESCE(image, '') AS image,
			hr_id`).
		Where("id = ?", userID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.ErrUserNotFound
		}
		return nil, err
	}

	return &profile.UserInfo{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Role:        row.Role,
		EmployeeID:  row.EmployeeID,
		CompanyName: row.CompanyName,
		CompanyLogo: row.CompanyLogo,
		PhoneNumber: row.PhoneNumber,
		Image:       row.Image,
		HRID:        row.HRID,
	}, nil
}

func (r *ProfileRepository) GetDetails(userID int64) (*profile.EmployeeDetails, error) {
	var details profile.EmployeeDetails
	err := r.db.Where("user_id = ?", userID).First(&details).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.NotFound()
		}
		return nil, err
	}
	return &details, nil
}

// UpsertDetails writes the whole record keyed by user_id. UNIQUE(user_id)
// collapses concurrent first writes into one row.
func (r *ProfileRepository) UpsertDetails(details *profile.EmployeeDetails) error {
	details.UpdatedAt = time.Now()
	if details.CreatedAt.IsZero() {
		details.CreatedAt = details.UpdatedAt
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"date_of_birth", "mailing_address", "nationality", "personal_email",
			"gender", "marital_status", "date_of_joining", "department",
			"designation", "manager", "location", "resume", "skills", "about",
			"interests", "pan_number", "aadhar_number", "account_number",
			"bank_name", "ifsc_code", "updated_at",
		}),
	}).Create(details).Error
}

func (r *ProfileRepository) GetSalary(userID int64) (*profile.SalaryInfo, error) {
	var salary profile.SalaryInfo
	err := r.db.Where("user_id = ?", userID).First(&salary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.NotFound()
		}
		return nil, err
	}
	return &salary, nil
}

func (r *ProfileRepository) UpsertSalary(salary *profile.SalaryInfo) error {
	salary.UpdatedAt = time.Now()
	if salary.CreatedAt.IsZero() {
		salary.CreatedAt = salary.UpdatedAt
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"wage_type", "monthly_wage", "yearly_wage", "base_salary",
			"base_salary_percentage", "hra_allowance", "hra_allowance_percentage",
			"standard_allowance", "standard_allowance_percentage",
			"performance_bonus", "performance_bonus_percentage",
			"leave_travel_allowance", "leave_travel_allowance_percentage",
			"fixed_allowance", "fixed_allowance_percentage", "professional_tax",
			"professional_tax_deduction", "income_tax_deduction", "pf_rate",
			"pf_contribution", "working_days_per_month", "break_time_per_day",
			"updated_at",
		}),
	}).Create(salary).Error
}

func (r *ProfileRepository) RecentAttendance(userID int64, limit int) ([]*attendance.Attendance, error) {
	var records []*attendance.Attendance
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *ProfileRepository) RecentRequests(userID int64, limit int) ([]*timeoff.TimeOffRequest, error) {
	var requests []*timeoff.TimeOffRequest
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

func (r *ProfileRepository) GetAllocation(userID int64) (*timeoff.TimeOffAllocation, error) {
	var alloc timeoff.TimeOffAllocation
	err := r.db.Where("user_id = ?", userID).First(&alloc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.NotFound()
		}
		return nil, err
	}
	return &alloc, nil
}
