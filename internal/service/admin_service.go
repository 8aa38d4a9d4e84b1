package service

import (
	"context"
	"log/slog"
	"time"

	"mankab/internal/mail"
	"mankab/internal/middleware"
	"mankab/internal/models"
	"mankab/internal/repository"
	"mankab/internal/storage"
)

// signedURLTTL bounds how long an admin's document link stays fetchable.
const signedURLTTL = time.Hour

// ListResult is one page of the admin listing. Total respects the active
// filters and ignores pagination.
type ListResult struct {
	Requests []models.VerificationRequest `json:"requests"`
	Total    int64                        `json:"total"`
	Page     int                          `json:"page"`
	Limit    int                          `json:"limit"`
}

// AdminService implements the review surface: listing, decisions, notes and
// aggregate stats.
type AdminService struct {
	verifications repository.VerificationRepository
	docs          storage.DocumentStore
	notifier      Notifier
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	verifications repository.VerificationRepository,
	docs storage.DocumentStore,
	notifier Notifier,
) *AdminService {
	return &AdminService{
		verifications: verifications,
		docs:          docs,
		notifier:      notifier,
	}
}

// Approve moves a pending request to approved and the owner's profile to
// verified, then notifies the owner in their locale.
func (s *AdminService) Approve(ctx context.Context, adminID, requestID uint, notes *string) (*models.VerificationRequest, error) {
	return s.decide(ctx, adminID, requestID, models.RequestStatusApproved, nil, notes)
}

// Reject moves a request to rejected with the supplied reason and the owner's
// profile back to unverified, then notifies the owner.
func (s *AdminService) Reject(ctx context.Context, adminID, requestID uint, reason string, notes *string) (*models.VerificationRequest, error) {
	if reason == "" {
		return nil, models.NewValidationError("rejection_reason is required")
	}
	return s.decide(ctx, adminID, requestID, models.RequestStatusRejected, &reason, notes)
}

func (s *AdminService) decide(ctx context.Context, adminID, requestID uint, status models.RequestStatus, reason, notes *string) (*models.VerificationRequest, error) {
	req, err := s.verifications.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.User == nil {
		return nil, models.NewNotFoundError("User", req.UserID)
	}
	owner := req.User

	profileStatus := models.VerificationStateVerified
	if status == models.RequestStatusRejected {
		profileStatus = models.VerificationStateUnverified
	}

	now := time.Now()
	err = s.verifications.ApplyDecision(ctx, repository.DecisionParams{
		RequestID:       requestID,
		OwnerID:         req.UserID,
		ExpectedVersion: req.Version,
		Status:          status,
		RejectionReason: reason,
		AdminNotes:      notes,
		VerifiedBy:      adminID,
		VerifiedAt:      now,
		ProfileStatus:   profileStatus,
	})
	if err != nil {
		return nil, err
	}

	// Mirror the committed row for the caller and the notification.
	req.VerificationStatus = status
	req.RejectionReason = reason
	req.AdminNotes = notes
	req.VerifiedBy = &adminID
	req.VerifiedAt = &now
	req.Version++

	// Strictly post-commit; a failed email never rolls back the decision.
	s.notifier.SendVerificationStatusNotice(ctx, req, owner.FullName, owner.Email, mail.ParseLocale(owner.Locale))

	middleware.Logger.InfoContext(ctx, "verification decision applied",
		slog.Uint64("request_id", uint64(requestID)),
		slog.String("status", string(status)),
		slog.Uint64("admin_id", uint64(adminID)),
	)
	return req, nil
}

// AddNotes updates the reviewer notes on a request without touching its
// status or the owner's profile.
func (s *AdminService) AddNotes(ctx context.Context, requestID uint, notes string) error {
	return s.verifications.UpdateAdminNotes(ctx, requestID, notes)
}

// List returns one page of requests for the review console. Rows whose owner
// no longer resolves are dropped from the page, and document references are
// rewritten to time-limited signed URLs. Signing failures fall back to the
// raw reference so a storage hiccup degrades the page instead of failing it.
func (s *AdminService) List(ctx context.Context, p repository.ListParams) (*ListResult, error) {
	rows, total, err := s.verifications.List(ctx, p)
	if err != nil {
		return nil, err
	}

	requests := make([]models.VerificationRequest, 0, len(rows))
	for _, row := range rows {
		if row.User == nil {
			middleware.Logger.WarnContext(ctx, "dropping verification request with unresolved owner",
				slog.Uint64("request_id", uint64(row.ID)),
				slog.Uint64("user_id", uint64(row.UserID)),
			)
			continue
		}

		signed := make(models.StringList, len(row.DocumentURLs))
		for i, ref := range row.DocumentURLs {
			url, err := s.docs.SignedURL(ctx, ref, signedURLTTL)
			if err != nil {
				middleware.Logger.WarnContext(ctx, "failed to sign document URL",
					slog.String("ref", ref),
					slog.String("error", err.Error()),
				)
				signed[i] = ref
				continue
			}
			signed[i] = url
		}
		row.DocumentURLs = signed
		requests = append(requests, row)
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.PageSize
	if limit < 1 {
		limit = 10
	}

	return &ListResult{
		Requests: requests,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// Stats returns the dashboard counters.
func (s *AdminService) Stats(ctx context.Context) (*models.VerificationStats, error) {
	return s.verifications.Stats(ctx)
}
