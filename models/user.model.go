package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// VerificationStatus is the e-mail verification state of a User. The only
// allowed transition is Unverified -> Verified.
type VerificationStatus string

const (
	StatusUnverified VerificationStatus = "unverified"
	StatusVerified   VerificationStatus = "verified"
)

type User struct {
	ID                 uint               `json:"id" gorm:"primaryKey"`
	Name               string             `json:"name" gorm:"default:''"`
	Email              string             `json:"email" gorm:"uniqueIndex;not null"`
	Password           string             `json:"-" gorm:"not null"`
	Role               string             `json:"role" gorm:"default:'student'"`
	VerificationStatus VerificationStatus `json:"-" gorm:"default:'unverified';index"`
	VerificationToken  *string            `json:"-" gorm:"uniqueIndex"`
	IsVerified         bool               `json:"is_verified" gorm:"-"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// AfterFind fills the derived IsVerified flag.
func (u *User) AfterFind(_ *gorm.DB) error {
	u.IsVerified = u.Verified()
	return nil
}

// SessionUser is the minimal record handed to the client after login.
type SessionUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u User) Session() SessionUser {
	return SessionUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (u User) Verified() bool {
	return u.VerificationStatus == StatusVerified
}
