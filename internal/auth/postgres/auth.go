package postgres

import (
	"errors"

	"github.com/frahmantamala/hr-management/internal/auth"
	"gorm.io/gorm"
)

type userRow struct {
	ID           int64  `gorm:"primaryKey"`
	Email        string `gorm:"column:email"`
	Name         string `gorm:"column:name"`
	PasswordHash string `gorm:"column:password_hash"`
	Role         string `gorm:"column:role"`
	HRID         *int64 `gorm:"column:hr_id"`
}

func (userRow) TableName() string {
	return "users"
}

// AuthRepository implements auth.UserRepository using GORM.
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetCredentialsByEmail(email string) (string, *auth.User, error) {
	var row userRow
	err := r.db.Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, auth.ErrInvalidCredentials
		}
		return "", nil, err
	}
	return row.PasswordHash, toAuthUser(&row), nil
}

func (r *AuthRepository) GetByID(userID int64) (*auth.User, error) {
	var row userRow
	err := r.db.Where("id = ?", userID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	return toAuthUser(&row), nil
}

func toAuthUser(row *userRow) *auth.User {
	return &auth.User{
		ID:    row.ID,
		Email: row.Email,
		Name:  row.Name,
		Role:  row.Role,
		HRID:  row.HRID,
	}
}
