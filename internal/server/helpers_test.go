package server

import (
	"context"
	"strconv"
	"testing"
	"time"

	"mankab/internal/config"
	"mankab/internal/mail"
	"mankab/internal/middleware"
	"mankab/internal/models"
	"mankab/internal/repository"
	"mankab/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key-for-handler-tests-only"

// fakeDocStore is an in-memory storage.DocumentStore for handler tests.
type fakeDocStore struct {
	uploaded []string
	removed  []string
}

func (f *fakeDocStore) Upload(_ context.Context, userID uint, filename string, _ []byte) (string, error) {
	ref := strconv.FormatUint(uint64(userID), 10) + "/" + filename
	f.uploaded = append(f.uploaded, ref)
	return ref, nil
}

func (f *fakeDocStore) Remove(_ context.Context, ref string) {
	f.removed = append(f.removed, ref)
}

func (f *fakeDocStore) SignedURL(_ context.Context, ref string, _ time.Duration) (string, error) {
	return "https://signed.test/" + ref, nil
}

func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB, *fakeDocStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.VerificationRequest{}))

	cfg := &config.Config{
		Port:      "0",
		JWTSecret: testJWTSecret,
		Env:       "test",
	}
	middleware.InitMiddleware(cfg)

	// Wired by hand instead of NewServerWithDeps so tests skip the prometheus
	// middleware, whose collectors can only be registered once per process.
	docs := &fakeDocStore{}
	userRepo := repository.NewUserRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	dispatcher := mail.NewDispatcher(cfg)

	srv := &Server{
		config:           cfg,
		db:               db,
		userRepo:         userRepo,
		verificationRepo: verificationRepo,
		docs:             docs,
		dispatcher:       dispatcher,
	}
	srv.verificationService = service.NewVerificationService(verificationRepo, userRepo, docs, dispatcher)
	srv.adminService = service.NewAdminService(verificationRepo, docs, dispatcher)

	app := fiber.New()
	srv.SetupRoutes(app)

	return srv, app, db, docs
}

// mintToken issues a bearer token the auth middleware accepts.
func mintToken(t *testing.T, userID uint) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "mankab-api",
		"aud": "mankab-client",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func createServerTestUser(t *testing.T, db *gorm.DB, name string, isAdmin bool) *models.User {
	t.Helper()
	user := &models.User{
		FullName: name,
		Email:    name + "@example.com",
		Locale:   "en",
		IsAdmin:  isAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
