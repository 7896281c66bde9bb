package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/hr-management/internal/profile"
	"github.com/frahmantamala/hr-management/internal/timeoff"
	"github.com/frahmantamala/hr-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Save(u).Error
}

func (r *UserRepository) ListEmployees(hrID int64, search string) ([]*user.EmployeeSummary, error) {
	query := r.db.Table("users").
		Select(`users.id, users.name, users.email,
			COALESCE(users.employee_id, '') AS employee_id,
			COALESCE(users.phone_number, '') AS phone_number,
			COALESCE(users.image, '') AS image,
			employee_details.department, employee_details.designation`).
		Joins("LEFT JOIN employee_details ON employee_details.user_id = users.id").
		Where("users.hr_id = ?", hrID)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("users.name ILIKE ? OR users.email ILIKE ?", pattern, pattern)
	}

	var employees []*user.EmployeeSummary
	err := query.Order("users.created_at DESC").Scan(&employees).Error
	return employees, err
}

func (r *UserRepository) CountEmployees(hrID int64) (int64, error) {
	var count int64
	err := r.db.Table("users").Where("hr_id = ?", hrID).Count(&count).Error
	return count, err
}

func (r *UserRepository) CreateVerificationToken(t *user.VerificationToken) error {
	t.CreatedAt = time.Now()
	return r.db.Create(t).Error
}

func (r *UserRepository) GetVerificationToken(token string) (*user.VerificationToken, error) {
	var vt user.VerificationToken
	err := r.db.Where("token = ?", token).First(&vt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrTokenInvalid
		}
		return nil, err
	}
	return &vt, nil
}

func (r *UserRepository) DeleteVerificationToken(id int64) error {
	return r.db.Delete(&user.VerificationToken{}, id).Error
}

// OnboardEmployee creates the account and its dependent rows atomically so a
// half-onboarded employee never becomes visible.
func (r *UserRepository) OnboardEmployee(u *user.User, details *profile.EmployeeDetails, salary *profile.SalaryInfo, alloc *timeoff.TimeOffAllocation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}

		now := time.Now()

		details.UserID = u.ID
		details.CreatedAt = now
		details.UpdatedAt = now
		if err := tx.Create(details).Error; err != nil {
			return err
		}

		salary.UserID = u.ID
		salary.CreatedAt = now
		salary.UpdatedAt = now
		if err := tx.Create(salary).Error; err != nil {
			return err
		}

		alloc.UserID = u.ID
		alloc.CreatedAt = now
		alloc.UpdatedAt = now
		return tx.Create(alloc).Error
	})
}
