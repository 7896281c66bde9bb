package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/hr-management/internal/attendance"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceRepository implements attendance.Repository using GORM.
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) GetByUserAndDate(userID int64, date time.Time) (*attendance.Attendance, error) {
	var att attendance.Attendance
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&att).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendance.ErrNotFound
		}
		return nil, err
	}
	return &att, nil
}

// Upsert inserts today's record or fills in the check-in on an existing row.
// The ON CONFLICT target is the unique (user_id, date) pair, which makes
// concurrent check-ins collapse onto one row.
func (r *AttendanceRepository) Upsert(att *attendance.Attendance) error {
	att.UpdatedAt = time.Now()
	if att.CreatedAt.IsZero() {
		att.CreatedAt = att.UpdatedAt
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"check_in_time", "status", "updated_at"}),
	}).Create(att).Error
}

func (r *AttendanceRepository) Update(att *attendance.Attendance) error {
	att.UpdatedAt = time.Now()
	return r.db.Save(att).Error
}

func (r *AttendanceRepository) RangeForUser(userID int64, start, end time.Time) ([]*attendance.Attendance, error) {
	var records []*attendance.Attendance
	err := r.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) RangeForHR(hrID int64, start, end time.Time, search string) ([]*attendance.AttendanceWithUser, error) {
	type row struct {
		attendance.Attendance
		UserName  string `gorm:"column:user_name"`
		UserEmail string `gorm:"column:user_email"`
		UserImage string `gorm:"column:user_image"`
	}

	query := r.db.Table("attendances").
		Select("attendances.*, users.name AS user_name, users.email AS user_email, COALESCE(users.image, '') AS user_image").
		Joins("JOIN users ON users.id = attendances.user_id").
		Where("users.hr_id = ?", hrID).
		Where("attendances.date >= ? AND attendances.date <= ?", start, end)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("users.name ILIKE ? OR users.email ILIKE ?", pattern, pattern)
	}

	var rows []row
	if err := query.Order("attendances.date DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]*attendance.AttendanceWithUser, len(rows))
	for i, rw := range rows {
		records[i] = &attendance.AttendanceWithUser{
			Attendance: rw.Attendance,
			User: attendance.UserSummary{
				ID:    rw.Attendance.UserID,
				Name:  rw.UserName,
				Email: rw.UserEmail,
				Image: rw.UserImage,
			},
		}
	}
	return records, nil
}
