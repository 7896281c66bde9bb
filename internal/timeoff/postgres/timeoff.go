package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/hr-management/internal/timeoff"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TimeOffRepository implements timeoff.Repository using GORM.
type TimeOffRepository struct {
	db *gorm.DB
}

func NewTimeOffRepository(db *gorm.DB) timeoff.Repository {
	return &TimeOffRepository{db: db}
}

func (r *TimeOffRepository) CreateRequest(req *timeoff.TimeOffRequest) error {
	return r.db.Create(req).Error
}

func (r *TimeOffRepository) GetRequestByID(id int64) (*timeoff.TimeOffRequest, error) {
	var req timeoff.TimeOffRequest
	err := r.db.Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timeoff.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *TimeOffRepository) GetRequestOwner(userID int64) (*timeoff.RequestOwner, error) {
	var row struct {
		HRID  *int64 `gorm:"column:hr_id"`
		Email string `gorm:"column:email"`
	}
	err := r.db.Table("users").
		Select("hr_id, email").
		Where("id = ?", userID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &timeoff.RequestOwner{HRID: row.HRID, Email: row.Email}, nil
}

func (r *TimeOffRepository) UpdateRequest(req *timeoff.TimeOffRequest) error {
	req.UpdatedAt = time.Now()
	return r.db.Save(req).Error
}

func (r *TimeOffRepository) ListForUser(userID int64) ([]*timeoff.TimeOffRequest, error) {
	var requests []*timeoff.TimeOffRequest
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *TimeOffRepository) ListForHR(hrID int64, search string) ([]*timeoff.RequestWithUser, error) {
	type row struct {
		timeoff.TimeOffRequest
		UserName  string `gorm:"column:user_name"`
		UserEmail string `gorm:"column:user_email"`
		UserImage string `gorm:"column:user_image"`
	}

	query := r.db.Table("time_off_requests").
		Select("time_off_requests.*, users.name AS user_name, users.email AS user_email, COALESCE(users.image, '') AS user_image").
		Joins("JOIN users ON users.id = time_off_requests.user_id").
		Where("users.hr_id = ?", hrID)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("users.name ILIKE ? OR users.email ILIKE ?", pattern, pattern)
	}

	var rows []row
	if err := query.Order("time_off_requests.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	requests := make([]*timeoff.RequestWithUser, len(rows))
	for i, rw := range rows {
		requests[i] = &timeoff.RequestWithUser{
			TimeOffRequest: rw.TimeOffRequest,
			User: timeoff.UserSummary{
				ID:    rw.TimeOffRequest.UserID,
				Name:  rw.UserName,
				Email: rw.UserEmail,
				Image: rw.UserImage,
			},
		}
	}
	return requests, nil
}

func (r *TimeOffRepository) GetAllocation(userID int64) (*timeoff.TimeOffAllocation, error) {
	var alloc timeoff.TimeOffAllocation
	err := r.db.Where("user_id = ?", userID).First(&alloc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timeoff.ErrAllocationNotFound
		}
		return nil, err
	}
	return &alloc, nil
}

// UpsertAllocation writes the yearly grant, replacing a stale-year row in
// place. UNIQUE(user_id) keeps concurrent lazy creates down to one row.
func (r *TimeOffRepository) UpsertAllocation(alloc *timeoff.TimeOffAllocation) error {
	alloc.UpdatedAt = time.Now()
	if alloc.CreatedAt.IsZero() {
		alloc.CreatedAt = alloc.UpdatedAt
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"year", "paid_time_off_days", "sick_leave_days", "unpaid_leaves_days", "updated_at",
		}),
	}).Create(alloc).Error
}

func (r *TimeOffRepository) ApprovedDaysByType(userID int64, year int) (timeoff.UsedDays, error) {
	var rows []struct {
		Type string `gorm:"column:type"`
		Days int    `gorm:"column:days"`
	}

	err := r.db.Table("time_off_requests").
		Select("type, COALESCE(SUM(number_of_days), 0) AS days").
		Where("user_id = ? AND status = ?", userID, timeoff.StatusApproved).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return timeoff.UsedDays{}, err
	}

	var used timeoff.UsedDays
	for _, rw := range rows {
		switch rw.Type {
		case timeoff.TypePaidTimeOff:
			used.Paid = rw.Days
		case timeoff.TypeSickLeave:
			used.Sick = rw.Days
		case timeoff.TypeUnpaidLeave:
			used.Unpaid = rw.Days
		}
	}
	return used, nil
}
