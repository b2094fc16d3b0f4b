package domain

import (
	"errors"
	"time"
)

// User is a marketplace account tied to a university.
type User struct {
	ID             string
	Email          string
	FullName       string
	PasswordHash   string
	UniversityID   string
	UniversityName string
	ProfileImage   string
	Rating         float64
	TotalReviews   int32
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewUser creates an active account. PasswordHash must already be hashed by
// the caller; the domain never sees plaintext credentials.
func NewUser(email, fullName, passwordHash, universityID, universityName string) (*User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	if fullName == "" {
		return nil, errors.New("full name cannot be empty")
	}
	if passwordHash == "" {
		return nil, errors.New("password hash cannot be empty")
	}
	return &User{
		Email:          email,
		FullName:       fullName,
		PasswordHash:   passwordHash,
		UniversityID:   universityID,
		UniversityName: universityName,
		IsActive:       true,
	}, nil
}
