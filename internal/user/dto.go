package user

import (
	"errors"
	"net/mail"
	"time"
)

// RegisterHRDTO is the public signup payload. Signup always creates an HR
// account; employee accounts are created by their HR.
type RegisterHRDTO struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
}

func (dto RegisterHRDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return errors.New("a valid email is required")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if dto.CompanyName == "" {
		return errors.New("company_name is required")
	}
	return nil
}

// AddEmployeeDTO is the HR onboarding payload. The account password and
// employee code are generated server side.
type AddEmployeeDTO struct {
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	PhoneNumber   *string    `json:"phone_number,omitempty"`
	Department    *string    `json:"department,omitempty"`
	Designation   *string    `json:"designation,omitempty"`
	DateOfJoining *time.Time `json:"date_of_joining,omitempty"`
	MonthlyWage   *float64   `json:"monthly_wage,omitempty"`
}

func (dto AddEmployeeDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return errors.New("a valid email is required")
	}
	return nil
}

// UpdateUserProfileDTO is a partial update of the account row itself.
type UpdateUserProfileDTO struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Image       *string `json:"image,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
	CompanyLogo *string `json:"company_logo,omitempty"`
}

func (dto UpdateUserProfileDTO) Apply(u *User) {
	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.PhoneNumber != nil {
		u.PhoneNumber = dto.PhoneNumber
	}
	if dto.Image != nil {
		u.Image = dto.Image
	}
	if dto.CompanyName != nil {
		u.CompanyName = dto.CompanyName
	}
	if dto.CompanyLogo != nil {
		u.CompanyLogo = dto.CompanyLogo
	}
}

// EmployeeSummary is the HR directory row.
type EmployeeSummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	EmployeeID  string  `json:"employee_id,omitempty"`
	PhoneNumber string  `json:"phone_number,omitempty"`
	Image       string  `json:"image,omitempty"`
	Department  *string `json:"department,omitempty"`
	Designation *string `json:"designation,omitempty"`
}
