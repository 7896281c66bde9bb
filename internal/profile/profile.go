package profile

import (
	"errors"
	"time"
)

// EmployeeDetails is the optional 1:1 descriptive extension of a user.
// Every field is nullable; sections are upserted independently.
type EmployeeDetails struct {
	ID             int64      `json:"id" gorm:"primaryKey"`
	UserID         int64      `json:"user_id" gorm:"column:user_id;uniqueIndex;not null"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty" gorm:"column:date_of_birth"`
	MailingAddress *string    `json:"mailing_address,omitempty" gorm:"column:mailing_address"`
	Nationality    *string    `json:"nationality,omitempty" gorm:"column:nationality"`
	PersonalEmail  *string    `json:"personal_email,omitempty" gorm:"column:personal_email"`
	Gender         *string    `json:"gender,omitempty" gorm:"column:gender"`
	MaritalStatus  *string    `json:"marital_status,omitempty" gorm:"column:marital_status"`
	DateOfJoining  *time.Time `json:"date_of_joining,omitempty" gorm:"column:date_of_joining"`
	Department     *string    `json:"department,omitempty" gorm:"column:department"`
	Designation    *string    `json:"designation,omitempty" gorm:"column:designation"`
	Manager        *string    `json:"manager,omitempty" gorm:"column:manager"`
	Location       *string    `json:"location,omitempty" gorm:"column:location"`
	Resume         *string    `json:"resume,omitempty" gorm:"column:resume"`
	Skills         []string   `json:"skills" gorm:"column:skills;serializer:json"`
	About          *string    `json:"about,omitempty" gorm:"column:about"`
	Interests      *string    `json:"interests,omitempty" gorm:"column:interests"`
	PanNumber      *string    `json:"pan_number,omitempty" gorm:"column:pan_number"`
	AadharNumber   *string    `json:"aadhar_number,omitempty" gorm:"column:aadhar_number"`
	AccountNumber  *string    `json:"account_number,omitempty" gorm:"column:account_number"`
	BankName       *string    `json:"bank_name,omitempty" gorm:"column:bank_name"`
	IFSCCode       *string    `json:"ifsc_code,omitempty" gorm:"column:ifsc_code"`
	CreatedAt      time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (EmployeeDetails) TableName() string {
	return "employee_details"
}

// SalaryInfo is the optional 1:1 compensation extension of a user.
type SalaryInfo struct {
	ID                         int64     `json:"id" gorm:"primaryKey"`
	UserID                     int64     `json:"user_id" gorm:"column:user_id;uniqueIndex;not null"`
	WageType                   *string   `json:"wage_type,omitempty" gorm:"column:wage_type"`
	MonthlyWage                *float64  `json:"monthly_wage,omitempty" gorm:"column:monthly_wage"`
	YearlyWage                 *float64  `json:"yearly_wage,omitempty" gorm:"column:yearly_wage"`
	BaseSalary                 *float64  `json:"base_salary,omitempty" gorm:"column:base_salary"`
	BaseSalaryPercentage       *float64  `json:"base_salary_percentage,omitempty" gorm:"column:base_salary_percentage"`
	HRAAllowance               *float64  `json:"hra_allowance,omitempty" gorm:"column:hra_allowance"`
	HRAAllowancePercentage     *float64  `json:"hra_allowance_percentage,omitempty" gorm:"column:hra_allowance_percentage"`
	StandardAllowance          *float64  `json:"standard_allowance,omitempty" gorm:"column:standard_allowance"`
	StandardAllowancePct       *float64  `json:"standard_allowance_percentage,omitempty" gorm:"column:standard_allowance_percentage"`
	PerformanceBonus           *float64  `json:"performance_bonus,omitempty" gorm:"column:performance_bonus"`
	PerformanceBonusPct        *float64  `json:"performance_bonus_percentage,omitempty" gorm:"column:performance_bonus_percentage"`
	LeaveTravelAllowance       *float64  `json:"leave_travel_allowance,omitempty" gorm:"column:leave_travel_allowance"`
	LeaveTravelAllowancePct    *float64  `json:"leave_travel_allowance_percentage,omitempty" gorm:"column:leave_travel_allowance_percentage"`
	FixedAllowance             *float64  `json:"fixed_allowance,omitempty" gorm:"column:fixed_allowance"`
	FixedAllowancePercentage   *float64  `json:"fixed_allowance_percentage,omitempty" gorm:"column:fixed_allowance_percentage"`
	ProfessionalTax            *float64  `json:"professional_tax,omitempty" gorm:"column:professional_tax"`
	ProfessionalTaxDeduction   *float64  `json:"professional_tax_deduction,omitempty" gorm:"column:professional_tax_deduction"`
	IncomeTaxDeduction         *float64  `json:"income_tax_deduction,omitempty" gorm:"column:income_tax_deduction"`
	PFRate                     *float64  `json:"pf_rate,omitempty" gorm:"column:pf_rate"`
	PFContribution             *float64  `json:"pf_contribution,omitempty" gorm:"column:pf_contribution"`
	WorkingDaysPerMonth        *int      `json:"working_days_per_month,omitempty" gorm:"column:working_days_per_month"`
	BreakTimePerDay            *float64  `json:"break_time_per_day,omitempty" gorm:"column:break_time_per_day"`
	CreatedAt                  time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt                  time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (SalaryInfo) TableName() string {
	return "salary_infos"
}

const WageTypeFixed = "FIXED"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNotManaged   = errors.New("employee is not managed by this HR")
)
