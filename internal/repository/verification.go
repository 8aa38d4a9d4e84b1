package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"mankab/internal/cache"
	"mankab/internal/models"

	"gorm.io/gorm"
)

// FilterAll disables an enum filter in ListParams.
const FilterAll = "all"

// ListParams describes the admin listing query: offset pagination, enum and
// date-range filters, case-insensitive name search and a whitelisted sort.
type ListParams struct {
	Page     int
	PageSize int

	Status       string // request status or "all"
	DocumentType string // document type or "all"
	DateFrom     *time.Time
	DateTo       *time.Time

	Search string // partial match on the requester's full name

	SortField string // default created_at
	SortDir   string // "asc" or "desc", default desc
}

// DecisionParams carries an admin decision transition. ExpectedVersion is the
// row version read before deciding; a mismatch means a concurrent decision
// won and the transition fails with a conflict.
type DecisionParams struct {
	RequestID       uint
	OwnerID         uint
	ExpectedVersion uint
	Status          models.RequestStatus
	RejectionReason *string
	AdminNotes      *string
	VerifiedBy      uint
	VerifiedAt      time.Time
	ProfileStatus   models.VerificationState
}

// VerificationRepository defines persistence operations for verification requests.
// Multi-row transitions (request row + the owner's denormalized profile flag)
// run inside a single transaction.
type VerificationRepository interface {
	GetByID(ctx context.Context, id uint) (*models.VerificationRequest, error)
	// LatestByUser returns the most recently created request for a user,
	// or nil when the user has none.
	LatestByUser(ctx context.Context, userID uint) (*models.VerificationRequest, error)
	// SaveSubmission inserts (ID zero) or overwrites (ID set) a request and
	// flips the owner's profile status to pending, atomically.
	SaveSubmission(ctx context.Context, req *models.VerificationRequest) error
	// DeleteForUser removes the user's requests and resets the profile
	// status to unverified, atomically.
	DeleteForUser(ctx context.Context, userID uint) error
	// ApplyDecision performs an approve/reject transition together with the
	// profile flag update.
	ApplyDecision(ctx context.Context, p DecisionParams) error
	UpdateAdminNotes(ctx context.Context, requestID uint, notes string) error
	List(ctx context.Context, p ListParams) ([]models.VerificationRequest, int64, error)
	Stats(ctx context.Context) (*models.VerificationStats, error)
}

type verificationRepository struct {
	db *gorm.DB
}

// NewVerificationRepository returns a new VerificationRepository implementation.
func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &verificationRepository{db: db}
}

func (r *verificationRepository) GetByID(ctx context.Context, id uint) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := r.db.WithContext(ctx).Preload("User").First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Verification request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &req, nil
}

func (r *verificationRepository) LatestByUser(ctx context.Context, userID uint) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	key := cache.LatestRequestKey(userID)

	// A zero-ID row is cached when the user has no request, so the miss is
	// remembered too.
	err := cache.Aside(ctx, key, &req, cache.LatestTTL, func() error {
		err := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("created_at DESC, id DESC"). // id breaks created_at ties deterministically
			First(&req).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if req.ID == 0 {
		return nil, nil
	}
	return &req, nil
}

func (r *verificationRepository) SaveSubmission(ctx context.Context, req *models.VerificationRequest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.ID == 0 {
			if err := tx.Create(req).Error; err != nil {
				return err
			}
		} else {
			// Save writes every column, which is what a resubmission needs:
			// rejection_reason and admin_notes must go back to NULL.
			if err := tx.Save(req).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&models.User{}).
			Where("id = ?", req.UserID).
			Update("verification_status", models.VerificationStatePending)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("User", req.UserID)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, req.UserID)
	cache.InvalidateLatestRequest(ctx, req.UserID)
	cache.InvalidateStats(ctx)
	return nil
}

func (r *verificationRepository) DeleteForUser(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.VerificationRequest{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("verification_status", models.VerificationStateUnverified).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, userID)
	cache.InvalidateLatestRequest(ctx, userID)
	cache.InvalidateStats(ctx)
	return nil
}

func (r *verificationRepository) ApplyDecision(ctx context.Context, p DecisionParams) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.VerificationRequest{}).
			Where("id = ? AND version = ?", p.RequestID, p.ExpectedVersion).
			Updates(map[string]interface{}{
				"verification_status": p.Status,
				"rejection_reason":    p.RejectionReason,
				"admin_notes":         p.AdminNotes,
				"verified_by":         p.VerifiedBy,
				"verified_at":         p.VerifiedAt,
				"version":             gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Distinguish a vanished request from a lost decision race.
			var count int64
			if err := tx.Model(&models.VerificationRequest{}).
				Where("id = ?", p.RequestID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return models.NewNotFoundError("Verification request", p.RequestID)
			}
			return models.NewConflictError("Verification request was decided concurrently, reload and retry")
		}

		return tx.Model(&models.User{}).
			Where("id = ?", p.OwnerID).
			Update("verification_status", p.ProfileStatus).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, p.OwnerID)
	cache.InvalidateLatestRequest(ctx, p.OwnerID)
	cache.InvalidateStats(ctx)
	return nil
}

func (r *verificationRepository) UpdateAdminNotes(ctx context.Context, requestID uint, notes string) error {
	res := r.db.WithContext(ctx).
		Model(&models.VerificationRequest{}).
		Where("id = ?", requestID).
		Update("admin_notes", notes)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Verification request", requestID)
	}
	return nil
}

// sortColumns whitelists admin-sortable fields to keep caller input out of
// the ORDER BY clause.
var sortColumns = map[string]string{
	"created_at":          "verification_requests.created_at",
	"updated_at":          "verification_requests.updated_at",
	"verification_status": "verification_requests.verification_status",
	"document_type":       "verification_requests.document_type",
	"document_expiry":     "verification_requests.document_expiry",
	"verified_at":         "verification_requests.verified_at",
}

func (r *verificationRepository) List(ctx context.Context, p ListParams) ([]models.VerificationRequest, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.VerificationRequest{})

	if p.Status != "" && p.Status != FilterAll {
		q = q.Where("verification_requests.verification_status = ?", p.Status)
	}
	if p.DocumentType != "" && p.DocumentType != FilterAll {
		q = q.Where("verification_requests.document_type = ?", p.DocumentType)
	}
	if p.DateFrom != nil {
		q = q.Where("verification_requests.created_at >= ?", *p.DateFrom)
	}
	if p.DateTo != nil {
		q = q.Where("verification_requests.created_at <= ?", *p.DateTo)
	}
	if p.Search != "" {
		// LOWER(...) LIKE instead of ILIKE so the same query runs on the
		// sqlite test databases.
		q = q.Joins("JOIN users ON users.id = verification_requests.user_id").
			Where("LOWER(users.full_name) LIKE ?", "%"+strings.ToLower(p.Search)+"%")
	}

	// Total reflects the active filters, unlike the page itself it ignores
	// pagination.
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	column, ok := sortColumns[p.SortField]
	if !ok {
		column = sortColumns["created_at"]
	}
	dir := "DESC"
	if strings.EqualFold(p.SortDir, "asc") {
		dir = "ASC"
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	pageSize := p.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	var rows []models.VerificationRequest
	err := q.
		Order(column + " " + dir).
		Order("verification_requests.id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("User").
		Preload("Verifier").
		Find(&rows).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	return rows, total, nil
}

func (r *verificationRepository) Stats(ctx context.Context) (*models.VerificationStats, error) {
	var stats models.VerificationStats

	err := cache.Aside(ctx, cache.StatsKey, &stats, cache.StatsTTL, func() error {
		db := r.db.WithContext(ctx).Model(&models.VerificationRequest{})

		if err := db.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
			return models.NewInternalError(err)
		}

		byStatus := []struct {
			status models.RequestStatus
			dest   *int64
		}{
			{models.RequestStatusPending, &stats.Pending},
			{models.RequestStatusApproved, &stats.Approved},
			{models.RequestStatusRejected, &stats.Rejected},
		}
		for _, c := range byStatus {
			if err := db.Session(&gorm.Session{}).
				Where("verification_status = ?", c.status).
				Count(c.dest).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		midnight := time.Now().UTC().Truncate(24 * time.Hour)
		if err := db.Session(&gorm.Session{}).
			Where("created_at >= ?", midnight).
			Count(&stats.TodaySubmissions).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
