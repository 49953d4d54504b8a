package email

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	AdminNotificationSubject = "New Contact Form Submission"
	AcknowledgmentSubject    = "Thank you for contacting Corvus Labs"
)

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	Name    string
	Email   string
	Company string
	Message string
}

// adminNotificationTemplate omits the company line entirely when it is empty
const adminNotificationTemplate = `<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{- if .Company}}
<p><strong>Company:</strong> {{.Company}}</p>
{{- end}}
<p><strong>Message:</strong> {{.Message}}</p>
`

const acknowledgmentTemplate = `<h2>Thank you for reaching out!</h2>
<p>Dear {{.Name}},</p>
<p>We've received your message and will get back to you within 24 business hours.</p>
<p>Best regards,<br>Corvus Labs Team</p>
`

var (
	adminTmpl = template.Must(template.New("admin_notification").Parse(adminNotificationTemplate))
	ackTmpl   = template.Must(template.New("acknowledgment").Parse(acknowledgmentTemplate))
)

// RenderAdminNotification renders the operator notification body
func RenderAdminNotification(data ContactEmailData) (string, error) {
	return render(adminTmpl, data)
}

// RenderAcknowledgment renders the message sent back to the submitter
func RenderAcknowledgment(data ContactEmailData) (string, error) {
	return render(ackTmpl, data)
}

func render(tmpl *template.Template, data ContactEmailData) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", tmpl.Name(), err)
	}
	return body.String(), nil
}
