package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DocumentType identifies the kind of identity document attached to a request.
type DocumentType string

const (
	// DocumentTypeID is a national identity card.
	DocumentTypeID DocumentType = "id"
	// DocumentTypePassport is a passport.
	DocumentTypePassport DocumentType = "passport"
)

// Valid reports whether the document type is one of the supported kinds.
func (d DocumentType) Valid() bool {
	return d == DocumentTypeID || d == DocumentTypePassport
}

// RequestStatus defines lifecycle states for verification requests.
type RequestStatus string

const (
	// RequestStatusPending indicates the request is awaiting review.
	RequestStatusPending RequestStatus = "pending"
	// RequestStatusApproved indicates the request was accepted.
	RequestStatusApproved RequestStatus = "approved"
	// RequestStatusRejected indicates the request was denied.
	RequestStatusRejected RequestStatus = "rejected"
)

// StringList is an ordered list of strings stored as a JSON column so the same
// model works on Postgres and the in-memory sqlite used by tests.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// VerificationRequest is a user-submitted identity verification request,
// cycling through pending/approved/rejected. Approved and rejected rows are
// kept permanently as an audit record; cancellation deletes the row.
type VerificationRequest struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	UserID             uint          `gorm:"not null;index" json:"user_id"`
	User               *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DocumentType       DocumentType  `gorm:"type:varchar(20);not null" json:"document_type"`
	DocumentURLs       StringList    `gorm:"type:text;not null" json:"document_urls"`
	DocumentExpiry     time.Time     `gorm:"not null" json:"document_expiry"`
	VerificationStatus RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"verification_status"`
	RejectionReason    *string       `gorm:"type:text" json:"rejection_reason"`
	AdminNotes         *string       `gorm:"type:text" json:"admin_notes"`
	VerifiedBy         *uint         `gorm:"index" json:"verified_by"`
	Verifier           *User         `gorm:"foreignKey:VerifiedBy" json:"verifier,omitempty"`
	VerifiedAt         *time.Time    `json:"verified_at"`
	// Version guards admin decisions against concurrent reviews of the same
	// request. A decision must carry the version it read or it fails with a
	// conflict.
	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VerificationStats is the aggregate counters shown on the admin dashboard.
type VerificationStats struct {
	Total            int64 `json:"total"`
	Pending          int64 `json:"pending"`
	Approved         int64 `json:"approved"`
	Rejected         int64 `json:"rejected"`
	TodaySubmissions int64 `json:"today_submissions"`
}
