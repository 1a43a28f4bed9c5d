package email

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	token, err := GenerateResetToken()
	require.NoError(t, err)
	assert.Len(t, token, 32)
	assert.Regexp(t, "^[a-zA-Z0-9]+$", token)
}

func TestGenerateResetToken_TokensDiffer(t *testing.T) {
	first, err := GenerateResetToken()
	require.NoError(t, err)
	second, err := GenerateResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

// Without SMTP credentials the service stays in dev mode: nothing is sent
// and no error is reported.
func TestSendEmails_WithoutCredentials(t *testing.T) {
	svc := NewEmailService(SMTPConfig{
		Host:      "smtp.example.com",
		Port:      587,
		FromName:  "Yatube",
		FromEmail: "no-reply@yatube.app",
		BaseURL:   "http://localhost:8080",
	}, zerolog.Nop())

	assert.NoError(t, svc.SendWelcomeEmail("leo@yasnaya.ru", "Lev"))
	assert.NoError(t, svc.SendPasswordResetEmail("leo@yasnaya.ru", "Lev", "reset-token"))
}
