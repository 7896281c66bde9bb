package attendance_test

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal/attendance"
)

func TestAttendanceService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Service Suite")
}

// Mock repository for testing
type mockAttendanceRepository struct {
	records     map[string]*attendance.Attendance
	getError    error
	upsertError error
	updateError error
	nextID      int64
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{
		records: make(map[string]*attendance.Attendance),
		nextID:  1,
	}
}

func recordKey(userID int64, date time.Time) string {
	return fmt.Sprintf("%d#%s", userID, date.Format("2006-01-02"))
}

func (m *mockAttendanceRepository) GetByUserAndDate(userID int64, date time.Time) (*attendance.Attendance, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	att, exists := m.records[recordKey(userID, date)]
	if !exists {
		return nil, attendance.ErrNotFound
	}
	copied := *att
	return &copied, nil
}

func (m *mockAttendanceRepository) Upsert(att *attendance.Attendance) error {
	if m.upsertError != nil {
		return m.upsertError
	}
	if att.ID == 0 {
		att.ID = m.nextID
		m.nextID++
	}
	stored := *att
	m.records[recordKey(att.UserID, att.Date)] = &stored
	return nil
}

func (m *mockAttendanceRepository) Update(att *attendance.Attendance) error {
	if m.updateError != nil {
		return m.updateError
	}
	stored := *att
	m.records[recordKey(att.UserID, att.Date)] = &stored
	return nil
}

func (m *mockAttendanceRepository) RangeForUser(userID int64, start, end time.Time) ([]*attendance.Attendance, error) {
	var out []*attendance.Attendance
	for _, att := range m.records {
		if att.UserID == userID && !att.Date.Before(start) && !att.Date.After(end) {
			out = append(out, att)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) RangeForHR(hrID int64, start, end time.Time, search string) ([]*attendance.AttendanceWithUser, error) {
	return []*attendance.AttendanceWithUser{}, nil
}

var _ = Describe("Attendance Service", func() {
	var (
		repo    *mockAttendanceRepository
		service *attendance.Service
	)

	BeforeEach(func() {
		repo = newMockAttendanceRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = attendance.NewService(repo, logger)
	})

	Describe("CheckIn", func() {
		It("creates today's record with PRESENT status", func() {
			att, err := service.CheckIn(1)

			Expect(err).NotTo(HaveOccurred())
			Expect(att.Status).To(Equal(attendance.StatusPresent))
			Expect(att.CheckInTime).NotTo(BeNil())
			Expect(att.CheckOutTime).To(BeNil())
			Expect(att.Date).To(Equal(attendance.DayOf(time.Now())))
		})

		It("rejects a second check-in on the same day", func() {
			_, err := service.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CheckIn(1)
			Expect(err).To(Equal(attendance.ErrAlreadyCheckedIn))
		})

		It("keeps check-ins of different users independent", func() {
			_, err := service.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CheckIn(2)
			Expect(err).NotTo(HaveOccurred())
		})

		It("propagates repository failures", func() {
			repo.getError = errors.New("connection refused")

			_, err := service.CheckIn(1)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CheckOut", func() {
		It("requires a prior check-in", func() {
			_, err := service.CheckOut(1)
			Expect(err).To(Equal(attendance.ErrNotCheckedIn))
		})

		It("records the check-out and derives work hours", func() {
			checkedIn, err := service.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			att, err := service.CheckOut(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(att.CheckOutTime).NotTo(BeNil())
			Expect(att.WorkHours).NotTo(BeNil())
			Expect(*att.WorkHours).To(Equal(
				attendance.ComputeWorkHours(*checkedIn.CheckInTime, *att.CheckOutTime)))
		})

		It("rejects a second check-out on the same day", func() {
			_, err := service.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CheckOut(1)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CheckOut(1)
			Expect(err).To(Equal(attendance.ErrAlreadyCheckedOut))
		})
	})

	Describe("TodayStatus", func() {
		It("returns nil without error when there is no record yet", func() {
			att, err := service.TodayStatus(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(att).To(BeNil())
		})

		It("returns today's record after check-in", func() {
			_, err := service.CheckIn(1)
			Expect(err).NotTo(HaveOccurred())

			att, err := service.TodayStatus(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(att).NotTo(BeNil())
			Expect(att.HasCheckedIn()).To(BeTrue())
		})
	})

	Describe("Range", func() {
		It("rejects a window where end precedes start", func() {
			dto := attendance.RangeDTO{
				StartDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			}

			_, err := service.Range(1, dto)
			Expect(err).To(HaveOccurred())
		})
	})
})
