package repository

import (
	"context"
	"testing"
	"time"

	"mankab/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupVerificationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.VerificationRequest{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{FullName: name, Email: name + "@example.com", Locale: "en"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLatestByUserTieBreak(t *testing.T) {
	t.Parallel()
	db := setupVerificationTestDB(t)
	repo := NewVerificationRepository(db)
	user := createTestUser(t, db, "sara")

	// Identical created_at: the higher ID must win.
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.VerificationRequest{
			UserID:         user.ID,
			DocumentType:   models.DocumentTypeID,
			DocumentURLs:   models.StringList{"a"},
			DocumentExpiry: at.AddDate(3, 0, 0),
			CreatedAt:      at,
		}).Error)
	}

	latest, err := repo.LatestByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, uint(2), latest.ID)
}

func TestLatestByUserNone(t *testing.T) {
	t.Parallel()
	db := setupVerificationTestDB(t)
	repo := NewVerificationRepository(db)
	user := createTestUser(t, db, "omar")

	latest, err := repo.LatestByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestSaveSubmissionCreatesAndFlipsProfile(t *testing.T) {
	t.Parallel()
	db := setupVerificationTestDB(t)
	repo := NewVerificationRepository(db)
	user := createTestUser(t, db, "sara")

	req := &models.VerificationRequest{
		UserID:             user.ID,
		DocumentType:       models.DocumentTypePassport,
		DocumentURLs:       models.StringList{"ref-1", "ref-2"},
		DocumentExpiry:     time.Now().AddDate(3, 0, 0),
		VerificationStatus: models.RequestStatusPending,
	}
	require.NoError(t, repo.SaveSubmission(context.Background(), req))
	assert.NotZero(t, req.ID)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, models.VerificationStatePending, stored.VerificationStatus)
}

func TestSaveSubmissionResubmissionClearsDecisionFields(t *testing.T) {
	t.Parallel()
	db := setupVerificationTestDB(t)
	repo := NewVerificationRepository(db)
	user := createTestUser(t, db, "sara")

	reason := "blurry"
	notes := "cut off"
	original := &models.VerificationRequest{
		UserID:             user.ID,
		DocumentType:       models.DocumentTypeID,
		DocumentURLs:       models.StringList{"old"},
		DocumentExpiry:     time.Now().AddDate(1, 0, 0),
		VerificationStatus: models.RequestStatusRejected,
		RejectionReason:    &reason,
		AdminNotes:         &notes,
	}
	require.NoError(t, db.Create(original).Error)

	resubmission := &models.VerificationRequest{
		ID:                 original.ID,
		UserID:             user.ID,
		DocumentType:       models.DocumentTypePassport,
		DocumentURLs:       models.StringList{"new"},
		DocumentExpiry:     time.Now().AddDate(4, 0, 0),
		VerificationStatus: models.RequestStatusPending,
		Version:            original.Version,
		CreatedAt:          original.CreatedAt,
	}
	require.NoError(t, repo.SaveSubmission(context.Background(), resubmission))

	var stored models.VerificationRequest
	require.NoError(t, db.First(&stored, original.ID).Error)
	assert.Equal(t, models.RequestStatusPending, stored.VerificationStatus)
	assert.Nil(t, stored.RejectionReason)
	assert.Nil(t, stored.AdminNotes)
	assert.Equal(t, models.StringList{"new"}, stored.DocumentURLs)

	var storedUser models.User
	require.NoError(t, db.First(&storedUser, user.ID).Error)
	assert.Equal(t, models.VerificationStatePending, storedUser.VerificationStatus)
}

func TestSaveSubmissionUnknownUser(t *testing.T) {
	t.Parallel()
	db := setupVerificationTestDB(t)
	repo := NewVerificationRepository(db)

	req := &models.VerificationRequest{
		UserID:             12345,
		DocumentType:       models.DocumentTypeID,
		DocumentURLs:       models.StringList{"ref"},
		DocumentExpiry:     time.Now().AddDate(1, 0, 0),
		VerificationStatus: models.RequestStatusPending,
	}
	err := repo.SaveSubmission(context.Background(), req)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestDeleteForUserResetsProfile(t *testing.T) {
	t.Parallel()
	db := setupVerificationTestDB(t)
	repo := NewVerificationRepository(db)
	user := createTestUser(t, db, "sara")

	req := &models.VerificationRequest{
		UserID:             user.ID,
		DocumentType:       models.DocumentTypeID,
		DocumentURLs:       models.StringList{"ref"},
		DocumentExpiry:     time.Now().AddDate(1, 0, 0),
		VerificationStatus: models.RequestStatusPending,
	}
	require.NoError(t, repo.SaveSubmission(context.Background(), req))

	require.NoError(t, repo.DeleteForUser(context.Background(), user.ID))

	var count int64
	db.Model(&models.VerificationRequest{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)

	var storedUser models.User
	require.NoError(t, db.First(&storedUser, user.ID).Error)
	assert.Equal(t, models.VerificationStateUnverified, storedUser.VerificationStatus)
}

func TestApplyDecision(t *testing.T) {
	t.Parallel()
	db := setupVerificationTestDB(t)
	repo := NewVerificationRepository(db)
	user := createTestUser(t, db, "sara")
	admin := createTestUser(t, db, "admin")

	req := &models.VerificationRequest{
		UserID:             user.ID,
		DocumentType:       models.DocumentTypeID,
		DocumentURLs:       models.StringList{"ref"},
		DocumentExpiry:     time.Now().AddDate(1, 0, 0),
		VerificationStatus: models.RequestStatusPending,
		Version:            1,
	}
	require.NoError(t, db.Create(req).Error)

	t.Run("version mismatch is a conflict", func(t *testing.T) {
		err := repo.ApplyDecision(context.Background(), DecisionParams{
			RequestID:       req.ID,
			OwnerID:         user.ID,
			ExpectedVersion: 99,
			Status:          models.RequestStatusApproved,
			VerifiedBy:      admin.ID,
			VerifiedAt:      time.Now(),
			ProfileStatus:   models.VerificationStateVerified,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		err := repo.ApplyDecision(context.Background(), DecisionParams{
			RequestID:       9999,
			OwnerID:         user.ID,
			ExpectedVersion: 1,
			Status:          models.RequestStatusApproved,
			VerifiedBy:      admin.ID,
			VerifiedAt:      time.Now(),
			ProfileStatus:   models.VerificationStateVerified,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("matching version applies and bumps", func(t *testing.T) {
		err := repo.ApplyDecision(context.Background(), DecisionParams{
			RequestID:       req.ID,
			OwnerID:         user.ID,
			ExpectedVersion: 1,
			Status:          models.RequestStatusApproved,
			VerifiedBy:      admin.ID,
			VerifiedAt:      time.Now(),
			ProfileStatus:   models.VerificationStateVerified,
		})
		require.NoError(t, err)

		var stored models.VerificationRequest
		require.NoError(t, db.First(&stored, req.ID).Error)
		assert.Equal(t, models.RequestStatusApproved, stored.VerificationStatus)
		assert.Equal(t, uint(2), stored.Version)
		require.NotNil(t, stored.VerifiedBy)
		assert.Equal(t, admin.ID, *stored.VerifiedBy)
		assert.NotNil(t, stored.VerifiedAt)

		var storedUser models.User
		require.NoError(t, db.First(&storedUser, user.ID).Error)
		assert.Equal(t, models.VerificationStateVerified, storedUser.VerificationStatus)

		// The stale version cannot win afterwards.
		err = repo.ApplyDecision(context.Background(), DecisionParams{
			RequestID:       req.ID,
			OwnerID:         user.ID,
			ExpectedVersion: 1,
			Status:          models.RequestStatusRejected,
			VerifiedBy:      admin.ID,
			VerifiedAt:      time.Now(),
			ProfileStatus:   models.VerificationStateUnverified,
		})
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})
}

func TestUpdateAdminNotes(t *testing.T) {
	t.Parallel()
	db := setupVerificationTestDB(t)
	repo := NewVerificationRepository(db)
	user := createTestUser(t, db, "sara")

	req := &models.VerificationRequest{
		UserID:             user.ID,
		DocumentType:       models.DocumentTypeID,
		DocumentURLs:       models.StringList{"ref"},
		DocumentExpiry:     time.Now().AddDate(1, 0, 0),
		VerificationStatus: models.RequestStatusPending,
	}
	require.NoError(t, db.Create(req).Error)

	require.NoError(t, repo.UpdateAdminNotes(context.Background(), req.ID, "checked against registry"))

	var stored models.VerificationRequest
	require.NoError(t, db.First(&stored, req.ID).Error)
	require.NotNil(t, stored.AdminNotes)
	assert.Equal(t, "checked against registry", *stored.AdminNotes)
	// Status is untouched.
	assert.Equal(t, models.RequestStatusPending, stored.VerificationStatus)

	err := repo.UpdateAdminNotes(context.Background(), 9999, "x")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func seedListFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()
	sara := createTestUser(t, db, "sara")
	omar := createTestUser(t, db, "omar")

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.VerificationRequest{
		{UserID: sara.ID, DocumentType: models.DocumentTypeID, VerificationStatus: models.RequestStatusPending, CreatedAt: base},
		{UserID: sara.ID, DocumentType: models.DocumentTypePassport, VerificationStatus: models.RequestStatusApproved, CreatedAt: base.AddDate(0, 0, 1)},
		{UserID: omar.ID, DocumentType: models.DocumentTypeID, VerificationStatus: models.RequestStatusPending, CreatedAt: base.AddDate(0, 0, 2)},
		{UserID: omar.ID, DocumentType: models.DocumentTypePassport, VerificationStatus: models.RequestStatusRejected, CreatedAt: base.AddDate(0, 0, 3)},
	}
	for i := range rows {
		rows[i].DocumentURLs = models.StringList{"ref"}
		rows[i].DocumentExpiry = base.AddDate(3, 0, 0)
		require.NoError(t, db.Create(&rows[i]).Error)
	}
}

func TestListFiltersAndTotal(t *testing.T) {
	t.Parallel()
	db := setupVerificationTestDB(t)
	repo := NewVerificationRepository(db)
	seedListFixtures(t, db)

	t.Run("status filter narrows total", func(t *testing.T) {
		rows, total, err := repo.List(context.Background(), ListParams{
			Page: 1, PageSize: 10, Status: string(models.RequestStatusPending),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, models.RequestStatusPending, row.VerificationStatus)
		}
	})

	t.Run("all disables the filter", func(t *testing.T) {
		_, total, err := repo.List(context.Background(), ListParams{
			Page: 1, PageSize: 10, Status: FilterAll, DocumentType: FilterAll,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
	})

	t.Run("search matches owner name case-insensitively", func(t *testing.T) {
		rows, total, err := repo.List(context.Background(), ListParams{
			Page: 1, PageSize: 10, Search: "SAR",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, rows, 2)
		for _, row := range rows {
			require.NotNil(t, row.User)
			assert.Equal(t, "sara", row.User.FullName)
		}
	})

	t.Run("date range bounds are inclusive", func(t *testing.T) {
		from := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
		_, total, err := repo.List(context.Background(), ListParams{
			Page: 1, PageSize: 10, DateFrom: &from, DateTo: &to,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("default sort is created_at descending", func(t *testing.T) {
		rows, _, err := repo.List(context.Background(), ListParams{Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, rows, 4)
		for i := 1; i < len(rows); i++ {
			assert.False(t, rows[i].CreatedAt.After(rows[i-1].CreatedAt))
		}
	})

	t.Run("pagination offsets", func(t *testing.T) {
		first, total, err := repo.List(context.Background(), ListParams{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, first, 2)

		second, _, err := repo.List(context.Background(), ListParams{Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, second, 2)
		assert.NotEqual(t, first[0].ID, second[0].ID)
	})

	t.Run("unknown sort field falls back to created_at", func(t *testing.T) {
		rows, _, err := repo.List(context.Background(), ListParams{
			Page: 1, PageSize: 10, SortField: "1; DROP TABLE users",
		})
		require.NoError(t, err)
		assert.Len(t, rows, 4)
	})
}

func TestStats(t *testing.T) {
	t.Parallel()
	db := setupVerificationTestDB(t)
	repo := NewVerificationRepository(db)
	user := createTestUser(t, db, "sara")

	statuses := []models.RequestStatus{
		models.RequestStatusPending,
		models.RequestStatusPending,
		models.RequestStatusApproved,
		models.RequestStatusRejected,
	}
	for i, status := range statuses {
		createdAt := time.Now().AddDate(0, 0, -(i + 2)) // all in the past
		if i == 0 {
			createdAt = time.Now() // one submitted today
		}
		require.NoError(t, db.Create(&models.VerificationRequest{
			UserID:             user.ID,
			DocumentType:       models.DocumentTypeID,
			DocumentURLs:       models.StringList{"ref"},
			DocumentExpiry:     time.Now().AddDate(1, 0, 0),
			VerificationStatus: status,
			CreatedAt:          createdAt,
		}).Error)
	}

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(1), stats.Approved)
	assert.Equal(t, int64(1), stats.Rejected)
	assert.Equal(t, int64(1), stats.TodaySubmissions)
}
