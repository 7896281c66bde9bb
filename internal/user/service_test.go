package user_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/profile"
	"github.com/frahmantamala/hr-management/internal/timeoff"
	"github.com/frahmantamala/hr-management/internal/user"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type onboarded struct {
	user    *user.User
	details *profile.EmployeeDetails
	salary  *profile.SalaryInfo
	alloc   *timeoff.TimeOffAllocation
}

type mockUserRepository struct {
	usersByID    map[int64]*user.User
	usersByEmail map[string]*user.User
	tokens       map[string]*user.VerificationToken
	onboardings  []onboarded
	nextID       int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByID:    make(map[int64]*user.User),
		usersByEmail: make(map[string]*user.User),
		tokens:       make(map[string]*user.VerificationToken),
		nextID:       1,
	}
}

func (m *mockUserRepository) Create(u *user.User) error {
	u.ID = m.nextID
	m.nextID++
	m.usersByID[u.ID] = u
	m.usersByEmail[u.Email] = u
	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.usersByID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*user.User, error) {
	u, ok := m.usersByEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) Update(u *user.User) error {
	m.usersByID[u.ID] = u
	m.usersByEmail[u.Email] = u
	return nil
}

func (m *mockUserRepository) ListEmployees(hrID int64, search string) ([]*user.EmployeeSummary, error) {
	var out []*user.EmployeeSummary
	for _, u := range m.usersByID {
		if u.HRID != nil && *u.HRID == hrID {
			out = append(out, &user.EmployeeSummary{ID: u.ID, Name: u.Name, Email: u.Email})
		}
	}
	return out, nil
}

func (m *mockUserRepository) CountEmployees(hrID int64) (int64, error) {
	var count int64
	for _, u := range m.usersByID {
		if u.HRID != nil && *u.HRID == hrID {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepository) CreateVerificationToken(t *user.VerificationToken) error {
	m.tokens[t.Token] = t
	return nil
}

func (m *mockUserRepository) GetVerificationToken(token string) (*user.VerificationToken, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, user.ErrTokenInvalid
	}
	return t, nil
}

func (m *mockUserRepository) DeleteVerificationToken(id int64) error {
	for token, t := range m.tokens {
		if t.ID == id {
			delete(m.tokens, token)
		}
	}
	return nil
}

func (m *mockUserRepository) OnboardEmployee(u *user.User, details *profile.EmployeeDetails, salary *profile.SalaryInfo, alloc *timeoff.TimeOffAllocation) error {
	if err := m.Create(u); err != nil {
		return err
	}
	details.UserID = u.ID
	salary.UserID = u.ID
	alloc.UserID = u.ID
	m.onboardings = append(m.onboardings, onboarded{user: u, details: details, salary: salary, alloc: alloc})
	return nil
}

func (m *mockUserRepository) singleToken() *user.VerificationToken {
	for _, t := range m.tokens {
		return t
	}
	return nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *mockUserRepository
		service *user.Service
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		bus := events.NewEventBus(logger)
		service = user.NewService(repo, bus, bcrypt.MinCost, logger)
	})

	signup := func() *user.User {
		u, err := service.RegisterHR(user.RegisterHRDTO{
			Name:        "Hana",
			Email:       "hr@mail.com",
			Password:    "secret-password",
			CompanyName: "Acme Corp",
		})
		Expect(err).NotTo(HaveOccurred())
		return u
	}

	Describe("RegisterHR", func() {
		It("creates an unverified HR account with a hashed password", func() {
			u := signup()

			Expect(u.Role).To(Equal(auth.RoleHR))
			Expect(u.IsVerified()).To(BeFalse())
			Expect(u.PasswordHash).NotTo(Equal("secret-password"))
			Expect(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret-password"))).To(Succeed())
		})

		It("issues a verification token", func() {
			signup()
			Expect(repo.singleToken()).NotTo(BeNil())
		})

		It("rejects a duplicate email", func() {
			signup()

			_, err := service.RegisterHR(user.RegisterHRDTO{
				Name:        "Other",
				Email:       "hr@mail.com",
				Password:    "another-password",
				CompanyName: "Other Corp",
			})
			Expect(err).To(Equal(user.ErrEmailTaken))
		})

		It("rejects a short password", func() {
			_, err := service.RegisterHR(user.RegisterHRDTO{
				Name:        "Hana",
				Email:       "hr@mail.com",
				Password:    "short",
				CompanyName: "Acme Corp",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("VerifyEmail", func() {
		It("marks the account verified and consumes the token", func() {
			u := signup()
			token := repo.singleToken()

			verified, err := service.VerifyEmail(token.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(verified.ID).To(Equal(u.ID))
			Expect(verified.IsVerified()).To(BeTrue())
			Expect(repo.singleToken()).To(BeNil())
		})

		It("rejects an unknown token", func() {
			_, err := service.VerifyEmail("nonsense")
			Expect(err).To(Equal(user.ErrTokenInvalid))
		})

		It("rejects an expired token", func() {
			u := signup()
			token := repo.singleToken()
			token.ExpiresAt = time.Now().Add(-time.Hour)

			_, err := service.VerifyEmail(token.Token)
			Expect(err).To(Equal(user.ErrTokenExpired))
			Expect(u.IsVerified()).To(BeFalse())
		})

		It("rejects double verification", func() {
			signup()
			token := repo.singleToken()

			// keep the token around to attempt reuse
			repo.tokens["again"] = &user.VerificationToken{
				ID: token.ID + 1, UserID: token.UserID, Token: "again",
				ExpiresAt: time.Now().Add(time.Hour),
			}

			_, err := service.VerifyEmail(token.Token)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.VerifyEmail("again")
			Expect(err).To(Equal(user.ErrAlreadyVerified))
		})
	})

	Describe("AddEmployee", func() {
		var hr *user.User

		BeforeEach(func() {
			hr = signup()
		})

		It("creates a pre-verified employee linked to the HR", func() {
			u, err := service.AddEmployee(hr.ID, user.AddEmployeeDTO{
				Name:  "Eko",
				Email: "eko@mail.com",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(u.Role).To(Equal(auth.RoleEmployee))
			Expect(u.IsVerified()).To(BeTrue())
			Expect(u.HRID).NotTo(BeNil())
			Expect(*u.HRID).To(Equal(hr.ID))
			Expect(u.EmployeeID).NotTo(BeNil())
			Expect(*u.EmployeeID).To(HavePrefix("ACM"))
		})

		It("creates the details, salary and allocation rows together", func() {
			wage := 4000.0
			dept := "Engineering"
			_, err := service.AddEmployee(hr.ID, user.AddEmployeeDTO{
				Name:        "Eko",
				Email:       "eko@mail.com",
				Department:  &dept,
				MonthlyWage: &wage,
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(repo.onboardings).To(HaveLen(1))
			ob := repo.onboardings[0]
			Expect(*ob.details.Department).To(Equal("Engineering"))
			Expect(*ob.salary.WageType).To(Equal(profile.WageTypeFixed))
			Expect(*ob.salary.MonthlyWage).To(Equal(4000.0))
			Expect(ob.alloc.Year).To(Equal(time.Now().Year()))
			Expect(ob.alloc.PaidTimeOffDays).To(Equal(timeoff.DefaultPaidDays))
		})

		It("rejects an email that is already registered", func() {
			_, err := service.AddEmployee(hr.ID, user.AddEmployeeDTO{
				Name:  "Clone",
				Email: "hr@mail.com",
			})
			Expect(err).To(Equal(user.ErrEmailTaken))
		})

		It("increments the employee code sequence", func() {
			first, err := service.AddEmployee(hr.ID, user.AddEmployeeDTO{Name: "A", Email: "a@mail.com"})
			Expect(err).NotTo(HaveOccurred())
			second, err := service.AddEmployee(hr.ID, user.AddEmployeeDTO{Name: "B", Email: "b@mail.com"})
			Expect(err).NotTo(HaveOccurred())

			Expect(*first.EmployeeID).NotTo(Equal(*second.EmployeeID))
		})
	})

	Describe("ListEmployees", func() {
		It("returns only the HR's own employees", func() {
			hr := signup()
			_, err := service.AddEmployee(hr.ID, user.AddEmployeeDTO{Name: "A", Email: "a@mail.com"})
			Expect(err).NotTo(HaveOccurred())

			employees, err := service.ListEmployees(hr.ID, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(1))

			employees, err = service.ListEmployees(hr.ID+1, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(BeEmpty())
		})
	})

	Describe("UpdateUserProfile", func() {
		It("applies only the provided fields", func() {
			hr := signup()

			phone := "+62-812-000"
			updated, err := service.UpdateUserProfile(hr.ID, user.UpdateUserProfileDTO{
				PhoneNumber: &phone,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Hana"))
			Expect(*updated.PhoneNumber).To(Equal("+62-812-000"))
		})
	})

	Describe("GenerateEmployeeCode", func() {
		It("derives the prefix from the company name", func() {
			Expect(user.GenerateEmployeeCode("Acme Corp", 7)).To(Equal("ACM0007"))
		})

		It("falls back to EMP for unusable names", func() {
			Expect(user.GenerateEmployeeCode("123", 1)).To(Equal("EMP0001"))
		})
	})
})
