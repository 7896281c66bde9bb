package timeoff_test

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/frahmantamala/hr-management/internal/timeoff"
)

func TestTimeOffService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TimeOff Service Suite")
}

// Mock repository for testing
type mockTimeOffRepository struct {
	requests    map[int64]*timeoff.TimeOffRequest
	owners      map[int64]*timeoff.RequestOwner
	allocations map[int64]*timeoff.TimeOffAllocation
	createError error
	nextID      int64
}

func newMockTimeOffRepository() *mockTimeOffRepository {
	return &mockTimeOffRepository{
		requests:    make(map[int64]*timeoff.TimeOffRequest),
		owners:      make(map[int64]*timeoff.RequestOwner),
		allocations: make(map[int64]*timeoff.TimeOffAllocation),
		nextID:      1,
	}
}

func (m *mockTimeOffRepository) CreateRequest(req *timeoff.TimeOffRequest) error {
	if m.createError != nil {
		return m.createError
	}
	req.ID = m.nextID
	m.nextID++
	m.requests[req.ID] = req
	return nil
}

func (m *mockTimeOffRepository) GetRequestByID(id int64) (*timeoff.TimeOffRequest, error) {
	req, exists := m.requests[id]
	if !exists {
		return nil, timeoff.ErrRequestNotFound
	}
	copied := *req
	return &copied, nil
}

func (m *mockTimeOffRepository) GetRequestOwner(userID int64) (*timeoff.RequestOwner, error) {
	owner, exists := m.owners[userID]
	if !exists {
		return nil, fmt.Errorf("owner %d not found", userID)
	}
	return owner, nil
}

func (m *mockTimeOffRepository) UpdateRequest(req *timeoff.TimeOffRequest) error {
	stored := *req
	m.requests[req.ID] = &stored
	return nil
}

func (m *mockTimeOffRepository) ListForUser(userID int64) ([]*timeoff.TimeOffRequest, error) {
	var out []*timeoff.TimeOffRequest
	for _, req := range m.requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *mockTimeOffRepository) ListForHR(hrID int64, search string) ([]*timeoff.RequestWithUser, error) {
	return []*timeoff.RequestWithUser{}, nil
}

func (m *mockTimeOffRepository) GetAllocation(userID int64) (*timeoff.TimeOffAllocation, error) {
	alloc, exists := m.allocations[userID]
	if !exists {
		return nil, timeoff.ErrAllocationNotFound
	}
	copied := *alloc
	return &copied, nil
}

func (m *mockTimeOffRepository) UpsertAllocation(alloc *timeoff.TimeOffAllocation) error {
	stored := *alloc
	m.allocations[alloc.UserID] = &stored
	return nil
}

func (m *mockTimeOffRepository) ApprovedDaysByType(userID int64, year int) (timeoff.UsedDays, error) {
	var used timeoff.UsedDays
	for _, req := range m.requests {
		if req.UserID != userID || req.Status != timeoff.StatusApproved || req.StartDate.Year() != year {
			continue
		}
		switch req.Type {
		case timeoff.TypePaidTimeOff:
			used.Paid += req.NumberOfDays
		case timeoff.TypeSickLeave:
			used.Sick += req.NumberOfDays
		case timeoff.TypeUnpaidLeave:
			used.Unpaid += req.NumberOfDays
		}
	}
	return used, nil
}

var _ = Describe("TimeOff Service", func() {
	var (
		repo    *mockTimeOffRepository
		service *timeoff.Service
	)

	hrID := int64(100)
	employeeID := int64(1)

	validDTO := func(days int) timeoff.CreateTimeOffDTO {
		start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
		return timeoff.CreateTimeOffDTO{
			Type:      timeoff.TypePaidTimeOff,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, days-1),
			Reason:    "family event",
		}
	}

	BeforeEach(func() {
		repo = newMockTimeOffRepository()
		repo.owners[employeeID] = &timeoff.RequestOwner{HRID: &hrID, Email: "employee@mail.com"}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		bus := events.NewEventBus(logger)
		service = timeoff.NewService(repo, bus, logger)
	})

	Describe("Request", func() {
		It("creates a PENDING request with the inclusive day count", func() {
			req, err := service.Request(employeeID, validDTO(3))

			Expect(err).NotTo(HaveOccurred())
			Expect(req.Status).To(Equal(timeoff.StatusPending))
			Expect(req.NumberOfDays).To(Equal(3))
		})

		It("counts a same-day request as one day", func() {
			req, err := service.Request(employeeID, validDTO(1))

			Expect(err).NotTo(HaveOccurred())
			Expect(req.NumberOfDays).To(Equal(1))
		})

		It("counts a full week as seven days", func() {
			req, err := service.Request(employeeID, validDTO(7))

			Expect(err).NotTo(HaveOccurred())
			Expect(req.NumberOfDays).To(Equal(7))
		})

		It("rejects an unknown leave type", func() {
			dto := validDTO(1)
			dto.Type = "SABBATICAL"

			_, err := service.Request(employeeID, dto)
			Expect(err).To(HaveOccurred())
		})

		It("rejects an inverted date range", func() {
			dto := validDTO(1)
			dto.EndDate = dto.StartDate.AddDate(0, 0, -1)

			_, err := service.Request(employeeID, dto)
			Expect(err).To(HaveOccurred())
		})

		It("rejects an empty reason", func() {
			dto := validDTO(1)
			dto.Reason = ""

			_, err := service.Request(employeeID, dto)
			Expect(err).To(HaveOccurred())
		})

		It("does not enforce the allocation balance", func() {
			req, err := service.Request(employeeID, validDTO(45))

			Expect(err).NotTo(HaveOccurred())
			Expect(req.NumberOfDays).To(Equal(45))
		})
	})

	Describe("Approve", func() {
		var requestID int64

		BeforeEach(func() {
			req, err := service.Request(employeeID, validDTO(3))
			Expect(err).NotTo(HaveOccurred())
			requestID = req.ID
		})

		It("approves a pending request and records the approver", func() {
			req, err := service.Approve(requestID, hrID)

			Expect(err).NotTo(HaveOccurred())
			Expect(req.Status).To(Equal(timeoff.StatusApproved))
			Expect(req.ApprovedBy).NotTo(BeNil())
			Expect(*req.ApprovedBy).To(Equal(hrID))
		})

		It("returns not found for an unknown request", func() {
			_, err := service.Approve(9999, hrID)
			Expect(err).To(Equal(timeoff.ErrRequestNotFound))
		})

		It("denies an HR that does not manage the employee", func() {
			_, err := service.Approve(requestID, hrID+1)
			Expect(err).To(Equal(timeoff.ErrNotManaged))
		})

		It("refuses to approve an already decided request", func() {
			_, err := service.Approve(requestID, hrID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Approve(requestID, hrID)
			Expect(err).To(Equal(timeoff.ErrRequestNotPending))
		})
	})

	Describe("Reject", func() {
		var requestID int64

		BeforeEach(func() {
			req, err := service.Request(employeeID, validDTO(2))
			Expect(err).NotTo(HaveOccurred())
			requestID = req.ID
		})

		It("rejects a pending request with the mandatory reason", func() {
			req, err := service.Reject(requestID, hrID, timeoff.RejectTimeOffDTO{Reason: "short staffed"})

			Expect(err).NotTo(HaveOccurred())
			Expect(req.Status).To(Equal(timeoff.StatusRejected))
			Expect(req.RejectionReason).NotTo(BeNil())
			Expect(*req.RejectionReason).To(Equal("short staffed"))
		})

		It("requires a rejection reason", func() {
			_, err := service.Reject(requestID, hrID, timeoff.RejectTimeOffDTO{})
			Expect(err).To(HaveOccurred())
		})

		It("refuses to reject an approved request", func() {
			_, err := service.Approve(requestID, hrID)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Reject(requestID, hrID, timeoff.RejectTimeOffDTO{Reason: "late"})
			Expect(err).To(Equal(timeoff.ErrRequestNotPending))
		})
	})

	Describe("Allocation", func() {
		It("lazily provisions the default grant for a new user", func() {
			view, err := service.Allocation(employeeID)

			Expect(err).NotTo(HaveOccurred())
			Expect(view.Allocation.Year).To(Equal(time.Now().Year()))
			Expect(view.Allocation.PaidTimeOffDays).To(Equal(timeoff.DefaultPaidDays))
			Expect(view.Allocation.SickLeaveDays).To(Equal(timeoff.DefaultSickDays))
			Expect(view.Allocation.UnpaidLeavesDays).To(Equal(timeoff.DefaultUnpaidDays))
		})

		It("resets a stale-year allocation to the defaults", func() {
			repo.allocations[employeeID] = &timeoff.TimeOffAllocation{
				ID:              7,
				UserID:          employeeID,
				Year:            time.Now().Year() - 1,
				PaidTimeOffDays: 3,
				SickLeaveDays:   1,
			}

			view, err := service.Allocation(employeeID)

			Expect(err).NotTo(HaveOccurred())
			Expect(view.Allocation.ID).To(Equal(int64(7)))
			Expect(view.Allocation.Year).To(Equal(time.Now().Year()))
			Expect(view.Allocation.PaidTimeOffDays).To(Equal(timeoff.DefaultPaidDays))
		})

		It("keeps a current-year allocation untouched", func() {
			repo.allocations[employeeID] = &timeoff.TimeOffAllocation{
				UserID:          employeeID,
				Year:            time.Now().Year(),
				PaidTimeOffDays: 12,
				SickLeaveDays:   4,
			}

			view, err := service.Allocation(employeeID)

			Expect(err).NotTo(HaveOccurred())
			Expect(view.Allocation.PaidTimeOffDays).To(Equal(12))
		})

		It("sums only approved days per type", func() {
			req, err := service.Request(employeeID, validDTO(3))
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Approve(req.ID, hrID)
			Expect(err).NotTo(HaveOccurred())

			// pending requests stay out of the tally
			_, err = service.Request(employeeID, validDTO(5))
			Expect(err).NotTo(HaveOccurred())

			view, err := service.Allocation(employeeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Used.Paid).To(Equal(3))
			Expect(view.Used.Sick).To(Equal(0))
		})
	})
})
