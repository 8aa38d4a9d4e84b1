package server

import (
	"strings"
	"time"

	"mankab/internal/models"
	"mankab/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type decisionRequest struct {
	RejectionReason string  `json:"rejection_reason"`
	AdminNotes      *string `json:"admin_notes"`
}

type notesRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// GetVerifications handles GET /api/admin/verifications.
// Query: page, limit, status, document_type, date_from, date_to, search,
// sort_field, sort_dir.
func (s *Server) GetVerifications(c *fiber.Ctx) error {
	page, limit := parsePage(c, 10)

	params := repository.ListParams{
		Page:         page,
		PageSize:     limit,
		Status:       c.Query("status"),
		DocumentType: c.Query("document_type"),
		Search:       strings.TrimSpace(c.Query("search")),
		SortField:    c.Query("sort_field", "created_at"),
		SortDir:      c.Query("sort_dir", "desc"),
	}

	if raw := c.Query("date_from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("date_from must be a valid date (YYYY-MM-DD)"))
		}
		params.DateFrom = &t
	}
	if raw := c.Query("date_to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("date_to must be a valid date (YYYY-MM-DD)"))
		}
		// Inclusive upper bound covers the whole day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		params.DateTo = &t
	}

	result, err := s.adminService.List(c.UserContext(), params)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(result)
}

// ApproveVerification handles POST /api/admin/verifications/:id/approve.
func (s *Server) ApproveVerification(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var body decisionRequest
	// Approve allows an empty body; notes are optional.
	_ = c.BodyParser(&body)

	req, err := s.adminService.Approve(c.UserContext(), adminID, requestID, body.AdminNotes)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "Verification request approved",
		"request": req,
	})
}

// RejectVerification handles POST /api/admin/verifications/:id/reject.
func (s *Server) RejectVerification(c *fiber.Ctx) error {
	adminID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var body decisionRequest
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	req, err := s.adminService.Reject(c.UserContext(), adminID, requestID,
		strings.TrimSpace(body.RejectionReason), body.AdminNotes)
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{
		"message": "Verification request rejected",
		"request": req,
	})
}

// UpdateVerificationNotes handles PUT /api/admin/verifications/:id/notes.
func (s *Server) UpdateVerificationNotes(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var body notesRequest
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.adminService.AddNotes(c.UserContext(), requestID, body.AdminNotes); err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Notes updated"})
}

// GetVerificationStats handles GET /api/admin/verifications/stats.
func (s *Server) GetVerificationStats(c *fiber.Ctx) error {
	stats, err := s.adminService.Stats(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, mapServiceError(err), err)
	}
	return c.JSON(stats)
}
