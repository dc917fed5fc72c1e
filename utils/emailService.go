package utils

import (
	"complaintdesk/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a single HTML email through SendGrid. When no API key is
// configured (local dev) it just logs and returns nil so flows that email
// on a best-effort basis keep working.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("SendGrid not configured, skipping email to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("ComplaintDesk", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
	}
	return nil
}

// SendStatusUpdateEmail notifies a student by email that an admin moved
// their complaint to a new status.
func SendStatusUpdateEmail(toName, toEmail, complaintTitle, status, resolutionNotes string) error {
	subject := fmt.Sprintf("Complaint update: %s", complaintTitle)

	body := fmt.Sprintf(`
	<html>
	<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
		<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
			<h2 style="color: #00004D;">Hi %s,</h2>
			<p>Your complaint <b>%s</b> has been moved to status: <b>%s</b>.</p>
			%s
			<p>You can view the full details on your dashboard.</p>
			<p style="color: #666666; font-size: 12px;">ComplaintDesk &middot; please do not reply to this email</p>
		</div>
	</body>
	</html>`, toName, complaintTitle, status, notesBlock(resolutionNotes))

	return SendEmail(toName, toEmail, subject, body)
}

func notesBlock(notes string) string {
	if notes == "" {
		return ""
	}
	return fmt.Sprintf(`<div style="background: #E8F0FE; padding: 15px; border-radius: 4px; margin: 20px 0;"><b>Resolution notes:</b><br/>%s</div>`, notes)
}
