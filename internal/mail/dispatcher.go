package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mankab/internal/config"
	"mankab/internal/middleware"
	"mankab/internal/models"
)

// Dispatcher renders notification templates and hands them to the SMTP
// transport. All sends are best-effort: a false return means the message was
// not delivered (including when mail is disabled), and callers must treat
// that as non-fatal.
type Dispatcher struct {
	mailer        *Mailer
	fromEmail     string
	supportEmail  string
	publicBaseURL string
}

// NewDispatcher wires a Dispatcher from config. When SMTP settings are
// incomplete the dispatcher is still usable; it just reports every send as
// failed.
func NewDispatcher(cfg *config.Config) *Dispatcher {
	var mailer *Mailer
	if cfg.MailEnabled() {
		mailer = NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return &Dispatcher{
		mailer:        mailer,
		fromEmail:     cfg.SMTPFromEmail,
		supportEmail:  cfg.SupportEmail,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

func (d *Dispatcher) deliver(ctx context.Context, template string, msg Message) bool {
	if d.mailer == nil {
		middleware.MailSends.WithLabelValues(template, "disabled").Inc()
		middleware.Logger.WarnContext(ctx, "mail transport disabled, skipping send",
			slog.String("template", template),
			slog.String("to", msg.To),
		)
		return false
	}
	if err := d.mailer.Send(ctx, msg); err != nil {
		middleware.MailSends.WithLabelValues(template, "error").Inc()
		middleware.Logger.ErrorContext(ctx, "failed to send notification email",
			slog.String("template", template),
			slog.String("to", msg.To),
			slog.String("error", err.Error()),
		)
		return false
	}
	middleware.MailSends.WithLabelValues(template, "ok").Inc()
	return true
}

// SendVerificationRequestNotice notifies support staff that a verification
// request was submitted or resubmitted.
func (d *Dispatcher) SendVerificationRequestNotice(ctx context.Context, req *models.VerificationRequest, userName string) bool {
	html := Render(verificationRequestTemplate, Variables{
		"userName":       userName,
		"documentType":   string(req.DocumentType),
		"documentExpiry": req.DocumentExpiry.Format("2006-01-02"),
		"adminUrl":       d.publicBaseURL + "/admin/verifications",
		"year":           fmt.Sprintf("%d", time.Now().Year()),
	})

	return d.deliver(ctx, "verification_request", Message{
		From:    d.fromEmail,
		To:      d.supportEmail,
		Subject: fmt.Sprintf("New Verification Request - %s", userName),
		HTML:    html,
	})
}

// SendVerificationStatusNotice notifies a user that their request was
// approved or rejected, in the user's locale.
func (d *Dispatcher) SendVerificationStatusNotice(ctx context.Context, req *models.VerificationRequest, userName, toEmail string, locale Locale) bool {
	approved := req.VerificationStatus == models.RequestStatusApproved
	t := statusTranslations(locale, approved)

	// Message body assembled from the localized blocks that apply to this
	// decision. Rejections carry the reason; notes are optional on both.
	var blocks []string
	blocks = append(blocks, t.greetingFor(userName), t.Message)
	if !approved && req.RejectionReason != nil && *req.RejectionReason != "" {
		blocks = append(blocks, t.RejectionReasonLabel+":<br>"+*req.RejectionReason)
	}
	if req.AdminNotes != nil && *req.AdminNotes != "" {
		blocks = append(blocks, t.AdminNotesLabel+":<br>"+*req.AdminNotes)
	}
	blocks = append(blocks, t.Closing+"<br>"+t.Team)

	vars := locale.layoutVariables()
	vars["title"] = t.Title
	vars["messageContent"] = strings.Join(blocks, "<br><br>")
	vars["actionUrl"] = d.publicBaseURL + "/profile/verification"
	vars["actionLabel"] = t.ActionLabel
	vars["year"] = fmt.Sprintf("%d", time.Now().Year())
	vars["copyright"] = t.Copyright
	vars["automatedMessage"] = t.AutomatedMessage

	return d.deliver(ctx, "verification_status", Message{
		From:    d.fromEmail,
		To:      toEmail,
		Subject: t.Subject,
		HTML:    Render(verificationStatusTemplate, vars),
	})
}

// ContactForm is a message submitted through the public contact form.
type ContactForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Subject   string
	Message   string
}

// contactCopy is the localized wording of the contact confirmation email.
type contactCopy struct {
	Subject          string
	Greeting         string // fmt string taking the sender's first name
	Message          string
	Reference        string
	Closing          string
	Team             string
	Copyright        string
	AutomatedMessage string
}

func contactTranslations(l Locale) contactCopy {
	if l == LocaleAR {
		return contactCopy{
			Subject:          "لقد تلقينا رسالتك",
			Greeting:         "عزيزي %s،",
			Message:          "شكرا لتواصلك معنا. سيقوم فريقنا بالرد عليك في أقرب وقت ممكن.",
			Reference:        "الموضوع",
			Closing:          "مع أطيب التحيات،",
			Team:             "فريق Mankab",
			Copyright:        "جميع الحقوق محفوظة",
			AutomatedMessage: "هذه رسالة آلية من نظام الإشعارات الآمن الخاص بنا.",
		}
	}
	return contactCopy{
		Subject:          "We have received your message",
		Greeting:         "Dear %s,",
		Message:          "Thank you for contacting us. Our team will get back to you as soon as possible.",
		Reference:        "Subject",
		Closing:          "Best regards,",
		Team:             "The Mankab Team",
		Copyright:        "All rights reserved",
		AutomatedMessage: "This is an automated message from our secure notification system.",
	}
}

// SendContactNotices sends the support copy of a contact-form message and a
// localized confirmation back to the sender. Returns whether both were
// delivered.
func (d *Dispatcher) SendContactNotices(ctx context.Context, form ContactForm, locale Locale) bool {
	phone := form.Phone
	if phone == "" {
		phone = "Not provided"
	}
	year := fmt.Sprintf("%d", time.Now().Year())
	htmlMessage := strings.ReplaceAll(form.Message, "\n", "<br>")

	supportOK := d.deliver(ctx, "contact_support", Message{
		From:    d.fromEmail,
		To:      d.supportEmail,
		ReplyTo: form.Email,
		Subject: fmt.Sprintf("Contact Form: %s", form.Subject),
		HTML: Render(supportNotificationTemplate, Variables{
			"firstName": form.FirstName,
			"lastName":  form.LastName,
			"email":     form.Email,
			"phone":     phone,
			"subject":   form.Subject,
			"message":   htmlMessage,
			"year":      year,
		}),
	})

	t := contactTranslations(locale)
	vars := locale.layoutVariables()
	vars["subject"] = t.Subject
	vars["greeting"] = fmt.Sprintf(t.Greeting, form.FirstName)
	vars["message"] = t.Message
	vars["reference"] = t.Reference
	vars["formSubject"] = form.Subject
	vars["formMessage"] = htmlMessage
	vars["closing"] = t.Closing
	vars["team"] = t.Team
	vars["year"] = year
	vars["copyright"] = t.Copyright
	vars["automatedMessage"] = t.AutomatedMessage

	userOK := d.deliver(ctx, "contact_confirmation", Message{
		From:    d.fromEmail,
		To:      form.Email,
		Subject: t.Subject,
		HTML:    Render(userConfirmationTemplate, vars),
	})

	return supportOK && userOK
}
