package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/hr-management/internal/attendance"
)

func TestAttendanceRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Repository Suite")
}

var _ = Describe("AttendanceRepository", func() {
	var (
		db   *gorm.DB
		repo attendance.Repository
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&attendance.Attendance{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewAttendanceRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Upsert", func() {
		It("inserts a new record", func() {
			now := time.Now()
			att := &attendance.Attendance{
				UserID:      1,
				Date:        attendance.DayOf(now),
				CheckInTime: &now,
				Status:      attendance.StatusPresent,
			}

			err := repo.Upsert(att)
			Expect(err).NotTo(HaveOccurred())
			Expect(att.ID).To(BeNumerically(">", 0))
		})

		It("collapses a conflicting insert onto the existing row", func() {
			now := time.Now()
			day := attendance.DayOf(now)

			first := &attendance.Attendance{UserID: 1, Date: day, CheckInTime: &now, Status: attendance.StatusPresent}
			Expect(repo.Upsert(first)).To(Succeed())

			later := now.Add(time.Minute)
			second := &attendance.Attendance{UserID: 1, Date: day, CheckInTime: &later, Status: attendance.StatusPresent}
			Expect(repo.Upsert(second)).To(Succeed())

			var count int64
			Expect(db.Model(&attendance.Attendance{}).Where("user_id = ?", 1).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("GetByUserAndDate", func() {
		It("returns ErrNotFound for a missing record", func() {
			_, err := repo.GetByUserAndDate(42, attendance.DayOf(time.Now()))
			Expect(err).To(Equal(attendance.ErrNotFound))
		})

		It("finds a stored record by user and day", func() {
			now := time.Now()
			day := attendance.DayOf(now)
			att := &attendance.Attendance{UserID: 1, Date: day, CheckInTime: &now, Status: attendance.StatusPresent}
			Expect(repo.Upsert(att)).To(Succeed())

			found, err := repo.GetByUserAndDate(1, day)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Status).To(Equal(attendance.StatusPresent))
			Expect(found.CheckInTime).NotTo(BeNil())
		})
	})

	Describe("Update", func() {
		It("persists the check-out and work hours", func() {
			now := time.Now()
			day := attendance.DayOf(now)
			att := &attendance.Attendance{UserID: 1, Date: day, CheckInTime: &now, Status: attendance.StatusPresent}
			Expect(repo.Upsert(att)).To(Succeed())

			out := now.Add(8 * time.Hour)
			hours := attendance.ComputeWorkHours(now, out)
			att.CheckOutTime = &out
			att.WorkHours = &hours
			Expect(repo.Update(att)).To(Succeed())

			found, err := repo.GetByUserAndDate(1, day)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.CheckOutTime).NotTo(BeNil())
			Expect(*found.WorkHours).To(Equal(8.0))
		})
	})

	Describe("RangeForUser", func() {
		It("returns only records inside the window", func() {
			base := attendance.DayOf(time.Now())
			for i := 0; i < 5; i++ {
				day := base.AddDate(0, 0, -i)
				att := &attendance.Attendance{UserID: 1, Date: day, Status: attendance.StatusPresent}
				Expect(repo.Upsert(att)).To(Succeed())
			}

			records, err := repo.RangeForUser(1, base.AddDate(0, 0, -2), base)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(3))
		})

		It("excludes other users", func() {
			day := attendance.DayOf(time.Now())
			Expect(repo.Upsert(&attendance.Attendance{UserID: 1, Date: day, Status: attendance.StatusPresent})).To(Succeed())
			Expect(repo.Upsert(&attendance.Attendance{UserID: 2, Date: day, Status: attendance.StatusPresent})).To(Succeed())

			records, err := repo.RangeForUser(1, day, day)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
		})
	})
})
