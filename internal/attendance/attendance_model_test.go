package attendance_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal/attendance"
)

var _ = Describe("Attendance model", func() {
	Describe("ComputeWorkHours", func() {
		It("rounds to two decimal places", func() {
			in := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
			out := time.Date(2026, 8, 28, 17, 30, 0, 0, time.UTC)

			Expect(attendance.ComputeWorkHours(in, out)).To(Equal(8.5))
		})

		It("handles sub-minute precision", func() {
			in := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
			out := in.Add(7*time.Hour + 20*time.Minute)

			Expect(attendance.ComputeWorkHours(in, out)).To(Equal(7.33))
		})

		It("returns zero for identical timestamps", func() {
			now := time.Now()
			Expect(attendance.ComputeWorkHours(now, now)).To(Equal(0.0))
		})
	})

	Describe("DayOf", func() {
		It("truncates to local midnight", func() {
			t := time.Date(2026, 8, 28, 15, 42, 10, 0, time.Local)
			day := attendance.DayOf(t)

			Expect(day.Hour()).To(Equal(0))
			Expect(day.Minute()).To(Equal(0))
			Expect(day.Day()).To(Equal(28))
		})

		It("maps all timestamps of one day to the same date", func() {
			morning := time.Date(2026, 8, 28, 0, 0, 1, 0, time.Local)
			evening := time.Date(2026, 8, 28, 23, 59, 59, 0, time.Local)

			Expect(attendance.DayOf(morning)).To(Equal(attendance.DayOf(evening)))
		})
	})
})
