package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mankab/internal/mail"
	"mankab/internal/models"
	"mankab/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verificationRepoStub is a stub for repository.VerificationRepository.
type verificationRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.VerificationRequest, error)
	latestByUserFn     func(context.Context, uint) (*models.VerificationRequest, error)
	saveSubmissionFn   func(context.Context, *models.VerificationRequest) error
	deleteForUserFn    func(context.Context, uint) error
	applyDecisionFn    func(context.Context, repository.DecisionParams) error
	updateAdminNotesFn func(context.Context, uint, string) error
	listFn             func(context.Context, repository.ListParams) ([]models.VerificationRequest, int64, error)
	statsFn            func(context.Context) (*models.VerificationStats, error)
}

func (s *verificationRepoStub) GetByID(ctx context.Context, id uint) (*models.VerificationRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *verificationRepoStub) LatestByUser(ctx context.Context, userID uint) (*models.VerificationRequest, error) {
	return s.latestByUserFn(ctx, userID)
}
func (s *verificationRepoStub) SaveSubmission(ctx context.Context, req *models.VerificationRequest) error {
	return s.saveSubmissionFn(ctx, req)
}
func (s *verificationRepoStub) DeleteForUser(ctx context.Context, userID uint) error {
	return s.deleteForUserFn(ctx, userID)
}
func (s *verificationRepoStub) ApplyDecision(ctx context.Context, p repository.DecisionParams) error {
	return s.applyDecisionFn(ctx, p)
}
func (s *verificationRepoStub) UpdateAdminNotes(ctx context.Context, requestID uint, notes string) error {
	return s.updateAdminNotesFn(ctx, requestID, notes)
}
func (s *verificationRepoStub) List(ctx context.Context, p repository.ListParams) ([]models.VerificationRequest, int64, error) {
	return s.listFn(ctx, p)
}
func (s *verificationRepoStub) Stats(ctx context.Context) (*models.VerificationStats, error) {
	return s.statsFn(ctx)
}

func noopVerificationRepo() *verificationRepoStub {
	return &verificationRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.VerificationRequest, error) {
			return nil, models.NewNotFoundError("Verification request", id)
		},
		latestByUserFn: func(_ context.Context, _ uint) (*models.VerificationRequest, error) {
			return nil, nil
		},
		saveSubmissionFn:   func(_ context.Context, _ *models.VerificationRequest) error { return nil },
		deleteForUserFn:    func(_ context.Context, _ uint) error { return nil },
		applyDecisionFn:    func(_ context.Context, _ repository.DecisionParams) error { return nil },
		updateAdminNotesFn: func(_ context.Context, _ uint, _ string) error { return nil },
		listFn: func(_ context.Context, _ repository.ListParams) ([]models.VerificationRequest, int64, error) {
			return nil, 0, nil
		},
		statsFn: func(_ context.Context) (*models.VerificationStats, error) {
			return &models.VerificationStats{}, nil
		},
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn               func(context.Context, uint) (*models.User, error)
	getByEmailFn            func(context.Context, string) (*models.User, error)
	createFn                func(context.Context, *models.User) error
	updateFn                func(context.Context, *models.User) error
	setVerificationStatusFn func(context.Context, uint, models.VerificationState) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) SetVerificationStatus(ctx context.Context, userID uint, status models.VerificationState) error {
	return s.setVerificationStatusFn(ctx, userID, status)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, FullName: "Test User", Email: "user@example.com", Locale: "en"}, nil
		},
		getByEmailFn:            func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:                func(_ context.Context, _ *models.User) error { return nil },
		updateFn:                func(_ context.Context, _ *models.User) error { return nil },
		setVerificationStatusFn: func(_ context.Context, _ uint, _ models.VerificationState) error { return nil },
	}
}

// docStoreStub is a stub for storage.DocumentStore. It records uploads and
// removals behind a mutex because uploads run concurrently.
type docStoreStub struct {
	mu       sync.Mutex
	uploaded []string
	removed  []string

	uploadErr error
	signErr   error
}

func (s *docStoreStub) Upload(_ context.Context, userID uint, filename string, _ []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	ref := "ref-" + filename
	s.mu.Lock()
	s.uploaded = append(s.uploaded, ref)
	s.mu.Unlock()
	return ref, nil
}

func (s *docStoreStub) Remove(_ context.Context, ref string) {
	s.mu.Lock()
	s.removed = append(s.removed, ref)
	s.mu.Unlock()
}

func (s *docStoreStub) SignedURL(_ context.Context, ref string, _ time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	return "https://signed.example.com/" + ref, nil
}

// notifierStub records dispatched notifications.
type notifierStub struct {
	requestNotices []uint
	statusNotices  []string // "<status>:<email>:<locale>"
}

func (n *notifierStub) SendVerificationRequestNotice(_ context.Context, req *models.VerificationRequest, _ string) bool {
	n.requestNotices = append(n.requestNotices, req.UserID)
	return true
}

func (n *notifierStub) SendVerificationStatusNotice(_ context.Context, req *models.VerificationRequest, _ string, toEmail string, locale mail.Locale) bool {
	n.statusNotices = append(n.statusNotices, string(req.VerificationStatus)+":"+toEmail+":"+string(locale))
	return true
}

func validSubmitInput() SubmitInput {
	return SubmitInput{
		UserID:         7,
		DocumentType:   models.DocumentTypeID,
		DocumentExpiry: time.Now().AddDate(2, 0, 0),
		Files: []FileUpload{
			{Name: "front.jpg", Content: []byte("front")},
			{Name: "back.jpg", Content: []byte("back")},
		},
	}
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	t.Parallel()

	repo := noopVerificationRepo()
	var saved *models.VerificationRequest
	repo.saveSubmissionFn = func(_ context.Context, req *models.VerificationRequest) error {
		saved = req
		return nil
	}
	docs := &docStoreStub{}
	notifier := &notifierStub{}
	svc := NewVerificationService(repo, noopUserRepo(), docs, notifier)

	req, err := svc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, models.RequestStatusPending, req.VerificationStatus)
	assert.Equal(t, uint(7), req.UserID)
	// Reference order follows input file order regardless of upload timing.
	assert.Equal(t, models.StringList{"ref-front.jpg", "ref-back.jpg"}, req.DocumentURLs)
	assert.Equal(t, []uint{7}, notifier.requestNotices)
	assert.Empty(t, docs.removed)
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()

	svc := NewVerificationService(noopVerificationRepo(), noopUserRepo(), &docStoreStub{}, &notifierStub{})

	t.Run("bad document type", func(t *testing.T) {
		t.Parallel()
		in := validSubmitInput()
		in.DocumentType = "driver_license"
		_, err := svc.Submit(context.Background(), in)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("no files", func(t *testing.T) {
		t.Parallel()
		in := validSubmitInput()
		in.Files = nil
		_, err := svc.Submit(context.Background(), in)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})

	t.Run("expired document", func(t *testing.T) {
		t.Parallel()
		in := validSubmitInput()
		in.DocumentExpiry = time.Now().AddDate(-1, 0, 0)
		_, err := svc.Submit(context.Background(), in)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestSubmitUploadFailureIsStorageError(t *testing.T) {
	t.Parallel()

	docs := &docStoreStub{uploadErr: errors.New("bucket unreachable")}
	notifier := &notifierStub{}
	svc := NewVerificationService(noopVerificationRepo(), noopUserRepo(), docs, notifier)

	_, err := svc.Submit(context.Background(), validSubmitInput())
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "STORAGE_ERROR", appErr.Code)
	assert.Empty(t, notifier.requestNotices)
}

func TestSubmitResubmissionOverwritesInPlace(t *testing.T) {
	t.Parallel()

	reason := "blurry document"
	notes := "left side cut off"
	prior := &models.VerificationRequest{
		ID:                 3,
		UserID:             7,
		DocumentType:       models.DocumentTypePassport,
		DocumentURLs:       models.StringList{"7/7-old.jpg"},
		VerificationStatus: models.RequestStatusRejected,
		RejectionReason:    &reason,
		AdminNotes:         &notes,
		Version:            2,
	}

	repo := noopVerificationRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.VerificationRequest, error) {
		require.Equal(t, uint(3), id)
		return prior, nil
	}
	var saved *models.VerificationRequest
	repo.saveSubmissionFn = func(_ context.Context, req *models.VerificationRequest) error {
		saved = req
		return nil
	}
	docs := &docStoreStub{}
	svc := NewVerificationService(repo, noopUserRepo(), docs, &notifierStub{})

	in := validSubmitInput()
	existingID := uint(3)
	in.ExistingRequestID = &existingID

	req, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, uint(3), req.ID)
	assert.Equal(t, models.RequestStatusPending, req.VerificationStatus)
	assert.Nil(t, req.RejectionReason)
	assert.Nil(t, req.AdminNotes)
	assert.Equal(t, []string{"7/7-old.jpg"}, docs.removed)
}

func TestSubmitForeignRequestIsNotFound(t *testing.T) {
	t.Parallel()

	repo := noopVerificationRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.VerificationRequest, error) {
		return &models.VerificationRequest{ID: id, UserID: 999}, nil
	}
	svc := NewVerificationService(repo, noopUserRepo(), &docStoreStub{}, &notifierStub{})

	in := validSubmitInput()
	existingID := uint(3)
	in.ExistingRequestID = &existingID

	_, err := svc.Submit(context.Background(), in)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCancelWithNoRequestStillResetsProfile(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	var resetTo models.VerificationState
	users.setVerificationStatusFn = func(_ context.Context, userID uint, status models.VerificationState) error {
		assert.Equal(t, uint(7), userID)
		resetTo = status
		return nil
	}
	svc := NewVerificationService(noopVerificationRepo(), users, &docStoreStub{}, &notifierStub{})

	require.NoError(t, svc.Cancel(context.Background(), 7))
	assert.Equal(t, models.VerificationStateUnverified, resetTo)
}

func TestCancelDeletesRequestAndDocuments(t *testing.T) {
	t.Parallel()

	repo := noopVerificationRepo()
	repo.latestByUserFn = func(_ context.Context, _ uint) (*models.VerificationRequest, error) {
		return &models.VerificationRequest{
			ID:           5,
			UserID:       7,
			DocumentURLs: models.StringList{"7/7-a.jpg", "7/7-b.jpg"},
		}, nil
	}
	var deletedFor uint
	repo.deleteForUserFn = func(_ context.Context, userID uint) error {
		deletedFor = userID
		return nil
	}
	docs := &docStoreStub{}
	svc := NewVerificationService(repo, noopUserRepo(), docs, &notifierStub{})

	require.NoError(t, svc.Cancel(context.Background(), 7))
	assert.Equal(t, uint(7), deletedFor)
	assert.Equal(t, []string{"7/7-a.jpg", "7/7-b.jpg"}, docs.removed)
}
