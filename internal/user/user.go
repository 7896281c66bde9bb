package user

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// User is the single account table. HR and employee accounts share it;
// HRID links an employee to the HR that onboarded them.
type User struct {
	ID                int64      `json:"id" gorm:"primaryKey"`
	Name              string     `json:"name" gorm:"column:name;not null"`
	Email             string     `json:"email" gorm:"column:email;uniqueIndex;not null"`
	PasswordHash      string     `json:"-" gorm:"column:password_hash;not null"`
	Role              string     `json:"role" gorm:"column:role;not null"`
	HRID              *int64     `json:"hr_id,omitempty" gorm:"column:hr_id"`
	EmployeeID        *string    `json:"employee_id,omitempty" gorm:"column:employee_id"`
	CompanyName       *string    `json:"company_name,omitempty" gorm:"column:company_name"`
	CompanyLogo       *string    `json:"company_logo,omitempty" gorm:"column:company_logo"`
	PhoneNumber       *string    `json:"phone_number,omitempty" gorm:"column:phone_number"`
	Image             *string    `json:"image,omitempty" gorm:"column:image"`
	EmailVerifiedAt   *time.Time `json:"email_verified_at,omitempty" gorm:"column:email_verified_at"`
	IsPasswordChanged bool       `json:"is_password_changed" gorm:"column:is_password_changed"`
	CreatedAt         time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}

// VerificationToken is a single-use email verification token.
type VerificationToken struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"column:user_id;not null"`
	Token     string    `json:"-" gorm:"column:token;uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"column:expires_at;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

func (VerificationToken) TableName() string {
	return "verification_tokens"
}

func (t *VerificationToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

var (
	ErrNotFound        = errors.New("user not found")
	ErrEmailTaken      = errors.New("email is already registered")
	ErrAlreadyVerified = errors.New("email is already verified")
	ErrTokenInvalid    = errors.New("verification token is invalid")
	ErrTokenExpired    = errors.New("verification token has expired")
	ErrNotManaged      = errors.New("employee is not managed by this HR")
)

const verificationTokenTTL = 24 * time.Hour

// NewVerificationToken issues a random single-use token for a user.
func NewVerificationToken(userID int64) (*VerificationToken, error) {
	token, err := randomHex(32)
	if err != nil {
		return nil, err
	}
	return &VerificationToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(verificationTokenTTL),
	}, nil
}

// GenerateEmployeeCode derives a readable employee code from the company
// name and a sequence number, e.g. "ACM0007" for Acme Corp.
func GenerateEmployeeCode(companyName string, seq int64) string {
	prefix := strings.ToUpper(strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, companyName))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	if prefix == "" {
		prefix = "EMP"
	}
	return fmt.Sprintf("%s%04d", prefix, seq)
}

// GenerateTempPassword returns a random initial password for a new
// employee account. The user is prompted to change it on first login.
func GenerateTempPassword() (string, error) {
	return randomHex(8)
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
