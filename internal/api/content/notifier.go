package content

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rzere/discover-kackar-sub000/internal/domain/contact"
)

// SendContactNotification emails a new contact submission to the site team.
// All SMTP settings come from the environment; when unset, notification is
// silently skipped (local development).
func SendContactNotification(sub contact.Submission) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	to := os.Getenv("CONTACT_NOTIFY_EMAIL")

	if host == "" || to == "" {
		return nil
	}

	auth := smtp.PlainAuth("", from, password, host)

	subject := fmt.Sprintf("Contact form: %s", sub.Subject)
	if sub.Subject == "" {
		subject = "Contact form submission"
	}
	body := fmt.Sprintf("From: %s <%s>\nLocale: %s\n\n%s", sub.Name, sub.Email, sub.Locale, sub.Message)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(host+":"+port, auth, from, []string{to}, message)
	if err != nil {
		logrus.WithError(err).Warn("contact notification email failed")
	}
	return err
}
