// Package models defines the database models and shared error types for the application.
package models

import "time"

// VerificationState is the denormalized verification flag carried on a user profile.
// It mirrors the outcome of the user's latest verification request.
type VerificationState string

const (
	// VerificationStateUnverified means the user has no active request, or the
	// latest request was cancelled or rejected.
	VerificationStateUnverified VerificationState = "unverified"
	// VerificationStatePending means the latest request is awaiting review.
	VerificationStatePending VerificationState = "pending"
	// VerificationStateVerified means the latest request was approved.
	VerificationStateVerified VerificationState = "verified"
)

// User is a marketplace user profile. Authentication itself is handled by the
// identity provider that mints the JWTs; this table carries the profile fields
// the verification workflow reads and writes.
type User struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	FullName           string            `gorm:"size:120;not null" json:"full_name"`
	Email              string            `gorm:"size:255;uniqueIndex;not null" json:"email"`
	AvatarURL          string            `gorm:"size:512" json:"avatar_url"`
	Locale             string            `gorm:"size:8;not null;default:'en'" json:"locale"`
	VerificationStatus VerificationState `gorm:"type:varchar(20);not null;default:'unverified';index" json:"verification_status"`
	IsAdmin            bool              `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}
