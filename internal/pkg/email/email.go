package email

import (
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for outbound mail. Sends are always
// fire-and-forget from the caller's perspective: a delivery failure must
// never fail the request it was attached to.
type EmailService interface {
	SendTeamInviteEmail(toEmail, inviterName, teamName string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendTeamInviteEmail notifies a user that they have been invited to a team.
// When SMTP credentials are not configured it degrades to logging the mail
// instead of sending it.
func (s *EmailServiceImpl) SendTeamInviteEmail(toEmail, inviterName, teamName string) error {
	subject := fmt.Sprintf("You've been invited to join %s on HackMap", teamName)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Team Invitation</h2>
				<p>Hello,</p>
				<p><strong>%s</strong> has invited you to join their team <strong>%s</strong> on HackMap.</p>
				<p>Log in to your HackMap account and check your notifications to accept or decline this invitation.</p>
				<p>Thanks,<br>The HackMap Team</p>
				<p style="font-size: 12px; color: #666;">&copy; %d HackMap. All rights reserved.</p>
			</div>
		</body>
		</html>
	`, inviterName, teamName, time.Now().Year())

	// If username or password is empty, log the email instead (for development only)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - invite email logged instead of sent")
		return nil
	}

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
