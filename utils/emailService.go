package utils

import (
	"cqms/config"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email through the configured SMTP account. When
// no sender is configured the email is skipped silently.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" {
		log.Printf("EMAIL_SENDER not configured, skipping email %q", subject)
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Client Query Support <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// SendQueryClosedEmail notifies the client that their query was resolved.
func SendQueryClosedEmail(email, queryID, heading string) error {
	subject := fmt.Sprintf("Your query %s has been resolved", queryID)

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Query Closed</h2>
					<p style="font-size: 16px; color: #555555;">Your query <strong>%s</strong> has been closed by our support team:</p>
					<p style="font-size: 16px; color: #333333; text-align: center; margin: 20px 0;"><em>%s</em></p>
					<p style="font-size: 14px; color: #999999;">If your issue is not resolved, please submit a new query.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Thank you for using our service.</p>
				</div>
			</body>
		</html>
	`, queryID, heading)

	return SendEmail([]string{email}, subject, body)
}
