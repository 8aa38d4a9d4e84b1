// Package service contains the business logic layer of the application.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mankab/internal/mail"
	"mankab/internal/middleware"
	"mankab/internal/models"
	"mankab/internal/repository"
	"mankab/internal/storage"
)

// Notifier dispatches workflow emails. Sends are best-effort: the boolean
// reports delivery, and no transition ever fails because of a notification.
type Notifier interface {
	SendVerificationRequestNotice(ctx context.Context, req *models.VerificationRequest, userName string) bool
	SendVerificationStatusNotice(ctx context.Context, req *models.VerificationRequest, userName, toEmail string, locale mail.Locale) bool
}

// FileUpload is a single document attached to a submission.
type FileUpload struct {
	Name    string
	Content []byte
}

// SubmitInput carries a verification submission. ExistingRequestID set means
// resubmission: the prior request is overwritten in place.
type SubmitInput struct {
	UserID            uint
	DocumentType      models.DocumentType
	DocumentExpiry    time.Time
	Files             []FileUpload
	ExistingRequestID *uint
}

// VerificationService implements the user-facing verification workflow.
type VerificationService struct {
	verifications repository.VerificationRepository
	users         repository.UserRepository
	docs          storage.DocumentStore
	notifier      Notifier
}

// NewVerificationService creates a new VerificationService.
func NewVerificationService(
	verifications repository.VerificationRepository,
	users repository.UserRepository,
	docs storage.DocumentStore,
	notifier Notifier,
) *VerificationService {
	return &VerificationService{
		verifications: verifications,
		users:         users,
		docs:          docs,
		notifier:      notifier,
	}
}

// Submit uploads the attached documents and creates a pending request, or
// overwrites an existing one when ExistingRequestID is set. The owner's
// profile flag moves to pending in the same transaction as the row write.
func (s *VerificationService) Submit(ctx context.Context, in SubmitInput) (*models.VerificationRequest, error) {
	if !in.DocumentType.Valid() {
		return nil, models.NewValidationError("document_type must be 'id' or 'passport'")
	}
	if len(in.Files) == 0 {
		return nil, models.NewValidationError("at least one document file is required")
	}
	if !in.DocumentExpiry.After(time.Now()) {
		return nil, models.NewValidationError("document_expiry must be in the future")
	}

	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	var prior *models.VerificationRequest
	if in.ExistingRequestID != nil {
		prior, err = s.verifications.GetByID(ctx, *in.ExistingRequestID)
		if err != nil {
			return nil, err
		}
		if prior.UserID != in.UserID {
			// Foreign requests are indistinguishable from missing ones.
			return nil, models.NewNotFoundError("Verification request", *in.ExistingRequestID)
		}
	}

	refs, err := s.uploadAll(ctx, in.UserID, in.Files)
	if err != nil {
		return nil, err
	}

	if prior != nil {
		// Old documents go first, best-effort; the overwrite proceeds even
		// when removal fails.
		for _, ref := range prior.DocumentURLs {
			s.docs.Remove(ctx, ref)
		}
	}

	req := &models.VerificationRequest{
		UserID:             in.UserID,
		DocumentType:       in.DocumentType,
		DocumentURLs:       refs,
		DocumentExpiry:     in.DocumentExpiry,
		VerificationStatus: models.RequestStatusPending,
	}
	if prior != nil {
		req.ID = prior.ID
		req.Version = prior.Version
		req.CreatedAt = prior.CreatedAt
	}

	if err := s.verifications.SaveSubmission(ctx, req); err != nil {
		return nil, err
	}

	s.notifier.SendVerificationRequestNotice(ctx, req, user.FullName)

	return req, nil
}

// uploadAll stores every file concurrently and returns the references in
// input order. Any failure fails the whole submission; already-uploaded
// files are not cleaned up.
func (s *VerificationService) uploadAll(ctx context.Context, userID uint, files []FileUpload) (models.StringList, error) {
	refs := make(models.StringList, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f FileUpload) {
			defer wg.Done()
			refs[i], errs[i] = s.docs.Upload(ctx, userID, f.Name, f.Content)
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, models.NewStorageError("failed to upload document", err)
		}
	}
	return refs, nil
}

// Latest returns the user's most recent request, or nil when they have none.
func (s *VerificationService) Latest(ctx context.Context, userID uint) (*models.VerificationRequest, error) {
	return s.verifications.LatestByUser(ctx, userID)
}

// Cancel deletes the user's latest request and its documents, and resets the
// profile flag to unverified. Cancelling with no request is still a success
// and still resets the flag.
func (s *VerificationService) Cancel(ctx context.Context, userID uint) error {
	latest, err := s.verifications.LatestByUser(ctx, userID)
	if err != nil {
		return err
	}

	if latest == nil {
		return s.users.SetVerificationStatus(ctx, userID, models.VerificationStateUnverified)
	}

	for _, ref := range latest.DocumentURLs {
		s.docs.Remove(ctx, ref)
	}

	if err := s.verifications.DeleteForUser(ctx, userID); err != nil {
		return err
	}

	middleware.Logger.InfoContext(ctx, "verification request cancelled",
		slog.Uint64("request_id", uint64(latest.ID)),
	)
	return nil
}
