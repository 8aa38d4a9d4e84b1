// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"mankab/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll wipes seeded tables. Requests go first so the user FK holds.
func (f *Factory) ClearAll() error {
	if err := f.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.VerificationRequest{}).Error; err != nil {
		return err
	}
	return f.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.User{}).Error
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	locale := "en"
	if f.r.Intn(3) == 0 {
		locale = "ar"
	}

	user := &models.User{
		FullName:  gofakeit.Name(),
		Email:     gofakeit.Email(),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Locale:    locale,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateVerificationRequest persists a request for the given user with a
// realistic created_at spread over the last 90 days.
func (f *Factory) CreateVerificationRequest(user *models.User, overrides ...func(*models.VerificationRequest)) (*models.VerificationRequest, error) {
	docType := models.DocumentTypeID
	if f.r.Intn(2) == 0 {
		docType = models.DocumentTypePassport
	}

	refs := models.StringList{}
	for i := 0; i < 1+f.r.Intn(2); i++ {
		refs = append(refs, fmt.Sprintf("%d/%d-%s.jpg", user.ID, user.ID, uuid.NewString()))
	}

	daysBack := f.r.Intn(90)
	createdAt := time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(f.r.Intn(24))*time.Hour)

	req := &models.VerificationRequest{
		UserID:             user.ID,
		DocumentType:       docType,
		DocumentURLs:       refs,
		DocumentExpiry:     time.Now().AddDate(1+f.r.Intn(5), 0, 0),
		VerificationStatus: models.RequestStatusPending,
		CreatedAt:          createdAt,
	}

	for _, override := range overrides {
		override(req)
	}

	if err := f.db.Create(req).Error; err != nil {
		return nil, err
	}

	// Keep the denormalized profile flag coherent with the seeded status.
	profile := models.VerificationStatePending
	switch req.VerificationStatus {
	case models.RequestStatusApproved:
		profile = models.VerificationStateVerified
	case models.RequestStatusRejected:
		profile = models.VerificationStateUnverified
	}
	if err := f.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("verification_status", profile).Error; err != nil {
		return nil, err
	}

	return req, nil
}

// SeedVerificationMesh creates numUsers users, an admin reviewer and a mix of
// pending/approved/rejected requests across roughly two thirds of the users.
func (f *Factory) SeedVerificationMesh(numUsers int) error {
	admin, err := f.CreateUser(func(u *models.User) {
		u.FullName = "Admin Reviewer"
		u.Email = "admin@mankab.com"
		u.IsAdmin = true
	})
	if err != nil {
		return err
	}

	for i := 0; i < numUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return err
		}
		if f.r.Intn(3) == 2 {
			continue // some users never submit
		}

		_, err = f.CreateVerificationRequest(user, func(req *models.VerificationRequest) {
			switch f.r.Intn(3) {
			case 0: // stays pending
			case 1:
				now := time.Now()
				req.VerificationStatus = models.RequestStatusApproved
				req.VerifiedBy = &admin.ID
				req.VerifiedAt = &now
			case 2:
				now := time.Now()
				reason := gofakeit.Sentence(6)
				req.VerificationStatus = models.RequestStatusRejected
				req.RejectionReason = &reason
				req.VerifiedBy = &admin.ID
				req.VerifiedAt = &now
			}
		})
		if err != nil {
			return err
		}
	}
	return nil
}
