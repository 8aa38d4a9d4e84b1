package server

import (
	"io"
	"strconv"
	"strings"
	"time"

	"mankab/internal/models"
	"mankab/internal/service"

	"github.com/gofiber/fiber/v2"
)

// expiryLayouts are the accepted formats for the document_expiry form field.
var expiryLayouts = []string{"2006-01-02", time.RFC3339}

// SubmitVerification handles POST /api/verification.
// Multipart form: document_type, document_expiry, files[], and an optional
// existing_request_id for resubmission.
func (s *Server) SubmitVerification(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	form, err := c.MultipartForm()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("multipart form data required"))
	}

	docType := models.DocumentType(strings.TrimSpace(c.FormValue("document_type")))

	expiryRaw := strings.TrimSpace(c.FormValue("document_expiry"))
	var expiry time.Time
	for _, layout := range expiryLayouts {
		if expiry, err = time.Parse(layout, expiryRaw); err == nil {
			break
		}
	}
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("document_expiry must be a valid date (YYYY-MM-DD)"))
	}

	var existingID *uint
	if raw := strings.TrimSpace(c.FormValue("existing_request_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("existing_request_id must be a positive integer"))
		}
		uid := uint(id)
		existingID = &uid
	}

	fileHeaders := form.File["files"]
	files := make([]service.FileUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		src, err := fh.Open()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}
		content, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Unable to read uploaded file"))
		}
		files = append(files, service.FileUpload{Name: fh.Filename, Content: content})
	}

	req, err := s.verificationService.Submit(c.UserContext(), service.SubmitInput{
		UserID:            userID,
		DocumentType:      docType,
		DocumentExpiry:    expiry,
		Files:             files,
		ExistingRequestID: existingID,
	})
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

// GetMyVerification handles GET /api/verification. Returns the caller's
// latest request, or a null body when they have none.
func (s *Server) GetMyVerification(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	req, err := s.verificationService.Latest(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	if req == nil {
		return c.JSON(nil)
	}
	return c.JSON(req)
}

// CancelVerification handles DELETE /api/verification. Cancelling with no
// outstanding request still succeeds.
func (s *Server) CancelVerification(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	if err := s.verificationService.Cancel(c.UserContext(), userID); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"success": true})
}
