package mail

import "fmt"

// Locale is a closed enum of supported notification locales. Every locale has
// a total translation record; there is no silent string-keyed fallback.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
)

// ParseLocale maps an arbitrary locale code to a supported Locale,
// defaulting to English.
func ParseLocale(code string) Locale {
	if code == string(LocaleAR) {
		return LocaleAR
	}
	return LocaleEN
}

// RTL reports whether the locale renders right-to-left.
func (l Locale) RTL() bool {
	return l == LocaleAR
}

// layoutVariables derives the presentation variables a locale controls:
// reading direction, text alignment and which side the accent border sits on.
func (l Locale) layoutVariables() Variables {
	direction, align := "ltr", "left"
	if l.RTL() {
		direction, align = "rtl", "right"
	}
	return Variables{
		"locale":     string(l),
		"direction":  direction,
		"textAlign":  align,
		"borderSide": align,
	}
}

// statusCopy is the localized wording of a verification status email.
type statusCopy struct {
	Title                string
	Greeting             string // fmt string taking the user's name
	Message              string
	RejectionReasonLabel string
	AdminNotesLabel      string
	ActionLabel          string
	Closing              string
	Team                 string
	Subject              string
	Copyright            string
	AutomatedMessage     string
}

// statusTranslations is total over (Locale, decision outcome).
func statusTranslations(l Locale, approved bool) statusCopy {
	switch l {
	case LocaleAR:
		if approved {
			return statusCopy{
				Title:            "تم قبول طلب التحقق",
				Greeting:         "عزيزي %s،",
				Message:          "تم قبول طلب التحقق الخاص بك. يمكنك الآن الوصول إلى جميع ميزات المستخدم المتحقق منه.",
				ActionLabel:      "الذهاب إلى لوحة التحكم",
				Closing:          "مع أطيب التحيات،",
				Team:             "فريق Mankab",
				Subject:          "تم قبول طلب التحقق الخاص بك",
				Copyright:        "جميع الحقوق محفوظة",
				AutomatedMessage: "هذه رسالة آلية من نظام الإشعارات الآمن الخاص بنا.",
			}
		}
		return statusCopy{
			Title:                "تم رفض طلب التحقق",
			Greeting:             "عزيزي %s،",
			Message:              "للأسف، تم رفض طلب التحقق الخاص بك.",
			RejectionReasonLabel: "سبب الرفض",
			AdminNotesLabel:      "ملاحظات إضافية",
			ActionLabel:          "تقديم طلب جديد",
			Closing:              "مع أطيب التحيات،",
			Team:                 "فريق Mankab",
			Subject:              "تم رفض طلب التحقق الخاص بك",
			Copyright:            "جميع الحقوق محفوظة",
			AutomatedMessage:     "هذه رسالة آلية من نظام الإشعارات الآمن الخاص بنا.",
		}
	default:
		if approved {
			return statusCopy{
				Title:            "Verification Request Approved",
				Greeting:         "Dear %s,",
				Message:          "Your verification request has been approved. You can now access all verified user features.",
				ActionLabel:      "Go to Dashboard",
				Closing:          "Best regards,",
				Team:             "The Mankab Team",
				Subject:          "Your Verification Request has been Approved",
				Copyright:        "All rights reserved",
				AutomatedMessage: "This is an automated message from our secure notification system.",
			}
		}
		return statusCopy{
			Title:                "Verification Request Rejected",
			Greeting:             "Dear %s,",
			Message:              "Unfortunately, your verification request has been rejected.",
			RejectionReasonLabel: "Reason for Rejection",
			AdminNotesLabel:      "Additional Notes",
			ActionLabel:          "Submit New Request",
			Closing:              "Best regards,",
			Team:                 "The Mankab Team",
			Subject:              "Your Verification Request has been Rejected",
			Copyright:            "All rights reserved",
			AutomatedMessage:     "This is an automated message from our secure notification system.",
		}
	}
}

// greetingFor formats the localized greeting with the user's name.
func (c statusCopy) greetingFor(name string) string {
	return fmt.Sprintf(c.Greeting, name)
}
