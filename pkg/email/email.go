package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"go-freelance-backend/config"
)

// EmailService sends transactional emails via SMTP.
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

type welcomeEmailData struct {
	FirstName        string
	ConfirmationLink string
}

type passwordResetEmailData struct {
	FirstName string
	ResetLink string
}

const welcomeEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Confirm your account</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 12px 24px; background: #0066cc; color: white; text-decoration: none; border-radius: 4px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome, {{.FirstName}}!</h1>
        </div>
        <div class="content">
            <p>Thanks for registering. Confirm your account to activate your freelancer profile:</p>
            <p><a class="button" href="{{.ConfirmationLink}}">Confirm my account</a></p>
            <p>The link expires in 24 hours. If you did not create this account, ignore this email
            and it will be removed automatically.</p>
        </div>
        <div class="footer">
            <p>If the button does not work, copy this link: {{.ConfirmationLink}}</p>
        </div>
    </div>
</body>
</html>`

const passwordResetEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Reset your password</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .button { display: inline-block; padding: 12px 24px; background: #0066cc; color: white; text-decoration: none; border-radius: 4px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Password reset</h1>
        </div>
        <div class="content">
            <p>Hi {{.FirstName}},</p>
            <p>A password reset was requested for your account. Follow the link below to choose a new password:</p>
            <p><a class="button" href="{{.ResetLink}}">Reset my password</a></p>
            <p>The link expires in one hour. If you did not request this, you can safely ignore this email.</p>
        </div>
        <div class="footer">
            <p>If the button does not work, copy this link: {{.ResetLink}}</p>
        </div>
    </div>
</body>
</html>`

// SendWelcomeEmail sends the registration confirmation link.
func (s *EmailService) SendWelcomeEmail(to, firstName, confirmationLink string) error {
	return s.send(to, "Confirm your account", welcomeEmailTemplate, welcomeEmailData{
		FirstName:        firstName,
		ConfirmationLink: confirmationLink,
	})
}

// SendPasswordResetEmail sends the password recovery link.
func (s *EmailService) SendPasswordResetEmail(to, firstName, resetLink string) error {
	return s.send(to, "Reset your password", passwordResetEmailTemplate, passwordResetEmailData{
		FirstName: firstName,
		ResetLink: resetLink,
	})
}

func (s *EmailService) send(to, subject, tmplText string, data interface{}) error {
	tmpl, err := template.New("email").Parse(tmplText)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		s.fromEmail,
		to,
		subject,
		body.String(),
	))

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}
