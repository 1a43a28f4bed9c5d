package email

import (
	"crypto/rand"
	"crypto/tls"
	"fmt"
	"math/big"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendPasswordResetEmail(toEmail, toName, token string) error
	SendWelcomeEmail(toEmail, toName string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for links embedded in emails
}

// EmailServiceImpl implements EmailService over plain SMTP.
// When no credentials are configured it logs the email instead of
// sending, so development setups work without a mail server.
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

func (s *EmailServiceImpl) devMode() bool {
	return s.config.Username == "" || s.config.Password == ""
}

// SendPasswordResetEmail sends an email with a password reset link and code
func (s *EmailServiceImpl) SendPasswordResetEmail(toEmail, toName, token string) error {
	resetURL := fmt.Sprintf("%s/auth/password_reset/confirm/?token=%s", s.config.BaseURL, token)

	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("token", token).
			Str("resetURL", resetURL).
			Msg("SMTP credentials not configured, password reset email not sent. Use the token above for testing.")
		return nil
	}

	subject := "Password Reset - Yatube"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Password Reset Request</h2>
				<p>Hello %s,</p>
				<p>We received a request to reset the password for your Yatube account. Click the button below to choose a new password:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset Password</a>
				</div>

				<p>Alternatively, you can use this reset code: <strong>%s</strong></p>

				<p>This reset link and code will expire in 24 hours.</p>

				<p>If you did not request a password reset, please ignore this email. Your password will remain unchanged.</p>

				<p>Best regards,<br>The Yatube Team</p>
			</div>
		</body>
		</html>
	`, toName, resetURL, token)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendWelcomeEmail sends a welcome email to a newly registered user
func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName string) error {
	if s.devMode() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("toName", toName).
			Msg("SMTP credentials not configured, welcome email not sent.")
		return nil
	}

	subject := "Welcome to Yatube - Your Account is Ready"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to Yatube!</h2>
				<p>Hello %s,</p>
				<p>Your account has been created and is ready to use. You can now log in, publish posts, join group discussions and follow your favourite authors.</p>

				<p>Thank you for joining our community!</p>

				<p>Best regards,<br>The Yatube Team</p>
			</div>
		</body>
		</html>
	`, toName)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// buildMessage assembles the raw RFC 822 message with headers in a fixed
// order.
func (s *EmailServiceImpl) buildMessage(toEmail, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", toEmail)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	message := s.buildMessage(toEmail, subject, htmlBody)

	if s.config.UseTLS {
		return s.sendOverTLS(addr, auth, toEmail, message)
	}

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, message); err != nil {
		s.logger.Error().Err(err).Str("server", addr).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// sendOverTLS dials the SMTP server over an implicit TLS connection, for
// providers that do not speak STARTTLS on the configured port.
func (s *EmailServiceImpl) sendOverTLS(addr string, auth smtp.Auth, toEmail string, message []byte) error {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         s.config.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		s.logger.Error().Err(err).Str("server", addr).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err := client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return nil
}

// GenerateResetToken returns a 32 character alphanumeric token for
// password reset links.
func GenerateResetToken() (string, error) {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	result := make([]byte, 32)
	limit := big.NewInt(int64(len(chars)))
	for i := range result {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate reset token: %w", err)
		}
		result[i] = chars[n.Int64()]
	}

	return string(result), nil
}
