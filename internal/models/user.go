package models

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/welldanyogia/recipe-app-api/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmailRequired is returned when a user is built without an email address.
var ErrEmailRequired = apperrors.InvalidInput("users must have an email address")

// PasswordCost is the bcrypt cost used by SetPassword. Tests lower it.
var PasswordCost = bcrypt.DefaultCost

// User is an account identified by its email address
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Name        string    `gorm:"size:255" json:"name"`
	Password    string    `gorm:"not null;size:255" json:"-"`
	IsActive    bool      `gorm:"not null;default:true" json:"-"`
	IsStaff     bool      `gorm:"not null;default:false" json:"-"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

func (u User) String() string {
	return u.Email
}

// NewUser builds an active, unsaved user with a normalized email and a hashed
// password. An empty email is rejected.
func NewUser(email, password string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	u := &User{Email: email, IsActive: true}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// NewSuperuser builds a user with the staff and superuser flags set.
func NewSuperuser(email, password string) (*User, error) {
	u, err := NewUser(email, password)
	if err != nil {
		return nil, err
	}
	u.IsStaff = true
	u.IsSuperuser = true
	return u, nil
}

// SetPassword stores the bcrypt hash of raw.
func (u *User) SetPassword(raw string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), PasswordCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword reports whether raw matches the stored hash.
func (u *User) CheckPassword(raw string) bool {
	if u.Password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(raw)) == nil
}

// NormalizeEmail trims surrounding whitespace and lowercases the domain part.
// The local part is kept as given.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
