package server

import (
	"net/mail"
	"strings"

	mailpkg "mankab/internal/mail"
	"mankab/internal/models"

	"github.com/gofiber/fiber/v2"
)

type contactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Locale    string `json:"locale"`
}

// SubmitContactForm handles POST /api/contact. Sends the message to support
// and a localized confirmation back to the sender.
func (s *Server) SubmitContactForm(c *fiber.Ctx) error {
	var body contactRequest
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	body.FirstName = strings.TrimSpace(body.FirstName)
	body.LastName = strings.TrimSpace(body.LastName)
	body.Email = strings.TrimSpace(body.Email)
	body.Subject = strings.TrimSpace(body.Subject)
	body.Message = strings.TrimSpace(body.Message)

	if body.FirstName == "" || body.Subject == "" || body.Message == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("first_name, subject and message are required"))
	}
	if _, err := mail.ParseAddress(body.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("a valid email address is required"))
	}

	sent := s.dispatcher.SendContactNotices(c.UserContext(), mailpkg.ContactForm{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Phone:     strings.TrimSpace(body.Phone),
		Subject:   body.Subject,
		Message:   body.Message,
	}, mailpkg.ParseLocale(body.Locale))

	if !sent {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			&models.AppError{Code: "MAIL_ERROR", Message: "Unable to deliver your message right now, please try again later"})
	}

	return c.JSON(fiber.Map{"success": true})
}
