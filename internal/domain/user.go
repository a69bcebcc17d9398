package domain

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User-specific validation errors
var (
	// ErrUserIDEmpty is returned when a user ID is empty or nil.
	ErrUserIDEmpty = NewFieldError("id", "user ID cannot be empty")

	// ErrUserEmailEmpty is returned when a user's email is empty.
	ErrUserEmailEmpty = NewFieldError("email", "email cannot be empty")

	// ErrPasswordTooShort is returned when a password is below the minimum length.
	ErrPasswordTooShort = NewFieldError("password", "password must be at least 12 characters")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 12

// bcryptCost is the work factor used when hashing passwords.
const bcryptCost = 12

// User represents an account holder. Premium state gates the full
// review-interval list; TrialExpiresAt grants premium behavior while in the
// future even when IsPremium is false.
type User struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"`
	IsPremium      bool       `json:"is_premium"`
	TrialExpiresAt *time.Time `json:"trial_expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewUser creates a new User with the given email and plaintext password.
// The password is hashed with bcrypt before being stored on the struct.
func NewUser(email, password string) (*User, error) {
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: string(hashed),
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrUserIDEmpty
	}

	if u.Email == "" {
		return ErrUserEmailEmpty
	}

	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}

	return nil
}

// HasPremiumAccess reports whether the user currently gets premium behavior,
// either through a subscription or an unexpired trial.
func (u *User) HasPremiumAccess(now time.Time) bool {
	if u.IsPremium {
		return true
	}
	return u.TrialExpiresAt != nil && now.Before(*u.TrialExpiresAt)
}
