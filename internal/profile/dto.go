package profile

import (
	"time"

	"github.com/frahmantamala/hr-management/internal/attendance"
	"github.com/frahmantamala/hr-management/internal/timeoff"
)

// UpdateDetailsDTO is a partial update: nil means "leave untouched". The
// pointer fields replace the falsy/undefined ambiguity of loosely typed
// clients with an explicit absent/value distinction.
type UpdateDetailsDTO struct {
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	MailingAddress *string    `json:"mailing_address,omitempty"`
	Nationality    *string    `json:"nationality,omitempty"`
	PersonalEmail  *string    `json:"personal_email,omitempty"`
	Gender         *string    `json:"gender,omitempty"`
	MaritalStatus  *string    `json:"marital_status,omitempty"`
	DateOfJoining  *time.Time `json:"date_of_joining,omitempty"`
	Department     *string    `json:"department,omitempty"`
	Designation    *string    `json:"designation,omitempty"`
	Manager        *string    `json:"manager,omitempty"`
	Location       *string    `json:"location,omitempty"`
	Resume         *string    `json:"resume,omitempty"`
	Skills         []string   `json:"skills,omitempty"`
	About          *string    `json:"about,omitempty"`
	Interests      *string    `json:"interests,omitempty"`
	PanNumber      *string    `json:"pan_number,omitempty"`
	AadharNumber   *string    `json:"aadhar_number,omitempty"`
	AccountNumber  *string    `json:"account_number,omitempty"`
	BankName       *string    `json:"bank_name,omitempty"`
	IFSCCode       *string    `json:"ifsc_code,omitempty"`
}

// Apply copies the provided fields onto the record.
func (dto UpdateDetailsDTO) Apply(d *EmployeeDetails) {
	if dto.DateOfBirth != nil {
		d.DateOfBirth = dto.DateOfBirth
	}
	if dto.MailingAddress != nil {
		d.MailingAddress = dto.MailingAddress
	}
	if dto.Nationality != nil {
		d.Nationality = dto.Nationality
	}
	if dto.PersonalEmail != nil {
		d.PersonalEmail = dto.PersonalEmail
	}
	if dto.Gender != nil {
		d.Gender = dto.Gender
	}
	if dto.MaritalStatus != nil {
		d.MaritalStatus = dto.MaritalStatus
	}
	if dto.DateOfJoining != nil {
		d.DateOfJoining = dto.DateOfJoining
	}
	if dto.Department != nil {
		d.Department = dto.Department
	}
	if dto.Designation != nil {
		d.Designation = dto.Designation
	}
	if dto.Manager != nil {
		d.Manager = dto.Manager
	}
	if dto.Location != nil {
		d.Location = dto.Location
	}
	if dto.Resume != nil {
		d.Resume = dto.Resume
	}
	if dto.Skills != nil {
		d.Skills = dto.Skills
	}
	if dto.About != nil {
		d.About = dto.About
	}
	if dto.Interests != nil {
		d.Interests = dto.Interests
	}
	if dto.PanNumber != nil {
		d.PanNumber = dto.PanNumber
	}
	if dto.AadharNumber != nil {
		d.AadharNumber = dto.AadharNumber
	}
	if dto.AccountNumber != nil {
		d.AccountNumber = dto.AccountNumber
	}
	if dto.BankName != nil {
		d.BankName = dto.BankName
	}
	if dto.IFSCCode != nil {
		d.IFSCCode = dto.IFSCCode
	}
}

// UpdateSalaryDTO is a partial update of the compensation record.
type UpdateSalaryDTO struct {
	WageType                 *string  `json:"wage_type,omitempty"`
	MonthlyWage              *float64 `json:"monthly_wage,omitempty"`
	YearlyWage               *float64 `json:"yearly_wage,omitempty"`
	BaseSalary               *float64 `json:"base_salary,omitempty"`
	BaseSalaryPercentage     *float64 `json:"base_salary_percentage,omitempty"`
	HRAAllowance             *float64 `json:"hra_allowance,omitempty"`
	HRAAllowancePercentage   *float64 `json:"hra_allowance_percentage,omitempty"`
	StandardAllowance        *float64 `json:"standard_allowance,omitempty"`
	StandardAllowancePct     *float64 `json:"standard_allowance_percentage,omitempty"`
	PerformanceBonus         *float64 `json:"performance_bonus,omitempty"`
	PerformanceBonusPct      *float64 `json:"performance_bonus_percentage,omitempty"`
	LeaveTravelAllowance     *float64 `json:"leave_travel_allowance,omitempty"`
	LeaveTravelAllowancePct  *float64 `json:"leave_travel_allowance_percentage,omitempty"`
	FixedAllowance           *float64 `json:"fixed_allowance,omitempty"`
	FixedAllowancePercentage *float64 `json:"fixed_allowance_percentage,omitempty"`
	ProfessionalTax          *float64 `json:"professional_tax,omitempty"`
	ProfessionalTaxDeduction *float64 `json:"professional_tax_deduction,omitempty"`
	IncomeTaxDeduction       *float64 `json:"income_tax_deduction,omitempty"`
	PFRate                   *float64 `json:"pf_rate,omitempty"`
	PFContribution           *float64 `json:"pf_contribution,omitempty"`
	WorkingDaysPerMonth      *int     `json:"working_days_per_month,omitempty"`
	BreakTimePerDay          *float64 `json:"break_time_per_day,omitempty"`
}

// Apply copies the provided fields onto the record.
func (dto UpdateSalaryDTO) Apply(s *SalaryInfo) {
	if dto.WageType != nil {
		s.WageType = dto.WageType
	}
	if dto.MonthlyWage != nil {
		s.MonthlyWage = dto.MonthlyWage
	}
	if dto.YearlyWage != nil {
		s.YearlyWage = dto.YearlyWage
	}
	if dto.BaseSalary != nil {
		s.BaseSalary = dto.BaseSalary
	}
	if dto.BaseSalaryPercentage != nil {
		s.BaseSalaryPercentage = dto.BaseSalaryPercentage
	}
	if dto.HRAAllowance != nil {
		s.HRAAllowance = dto.HRAAllowance
	}
	if dto.HRAAllowancePercentage != nil {
		s.HRAAllowancePercentage = dto.HRAAllowancePercentage
	}
	if dto.StandardAllowance != nil {
		s.StandardAllowance = dto.StandardAllowance
	}
	if dto.StandardAllowancePct != nil {
		s.StandardAllowancePct = dto.StandardAllowancePct
	}
	if dto.PerformanceBonus != nil {
		s.PerformanceBonus = dto.PerformanceBonus
	}
	if dto.PerformanceBonusPct != nil {
		s.PerformanceBonusPct = dto.PerformanceBonusPct
	}
	if dto.LeaveTravelAllowance != nil {
		s.LeaveTravelAllowance = dto.LeaveTravelAllowance
	}
	if dto.LeaveTravelAllowancePct != nil {
		s.LeaveTravelAllowancePct = dto.LeaveTravelAllowancePct
	}
	if dto.FixedAllowance != nil {
		s.FixedAllowance = dto.FixedAllowance
	}
	if dto.FixedAllowancePercentage != nil {
		s.FixedAllowancePercentage = dto.FixedAllowancePercentage
	}
	if dto.ProfessionalTax != nil {
		s.ProfessionalTax = dto.ProfessionalTax
	}
	if dto.ProfessionalTaxDeduction != nil {
		s.ProfessionalTaxDeduction = dto.ProfessionalTaxDeduction
	}
	if dto.IncomeTaxDeduction != nil {
		s.IncomeTaxDeduction = dto.IncomeTaxDeduction
	}
	if dto.PFRate != nil {
		s.PFRate = dto.PFRate
	}
	if dto.PFContribution != nil {
		s.PFContribution = dto.PFContribution
	}
	if dto.WorkingDaysPerMonth != nil {
		s.WorkingDaysPerMonth = dto.WorkingDaysPerMonth
	}
	if dto.BreakTimePerDay != nil {
		s.BreakTimePerDay = dto.BreakTimePerDay
	}
}

// UserInfo is the user slice embedded in profile views.
type UserInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	EmployeeID  string `json:"employee_id,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	CompanyLogo string `json:"company_logo,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Image       string `json:"image,omitempty"`
	HRID        *int64 `json:"hr_id,omitempty"`
}

// ProfileView is the self-service profile payload.
type ProfileView struct {
	User    *UserInfo        `json:"user"`
	Details *EmployeeDetails `json:"details,omitempty"`
	Salary  *SalaryInfo      `json:"salary,omitempty"`
}

// EmployeeProfileView is the HR view of a managed employee, including
// recent activity.
type EmployeeProfileView struct {
	User             *UserInfo                  `json:"user"`
	Details          *EmployeeDetails           `json:"details,omitempty"`
	Salary           *SalaryInfo                `json:"salary,omitempty"`
	RecentAttendance []*attendance.Attendance   `json:"recent_attendance"`
	RecentRequests   []*timeoff.TimeOffRequest  `json:"recent_requests"`
	Allocation       *timeoff.TimeOffAllocation `json:"allocation,omitempty"`
}
