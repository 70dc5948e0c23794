package mailing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage_Headers(t *testing.T) {
	cfg := MailConfig{SMTPEmail: "noreply@souschef.app", SMTPSender: "SousChef"}
	msg := NewMessage(cfg, "cook@example.com", WelcomeSubject, "<p>hi</p>")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "To: cook@example.com")
	assert.Contains(t, out, "Subject: Welcome to SousChef")
	assert.Contains(t, out, "noreply@souschef.app")
}

func TestWelcomeBody_EscapesName(t *testing.T) {
	body, err := WelcomeBody("<b>Ada</b>", "https://souschef.app")
	require.NoError(t, err)
	assert.Contains(t, body, "&lt;b&gt;Ada&lt;/b&gt;")
	assert.Contains(t, body, `href="https://souschef.app"`)
}

func TestSendMail_DisabledWithoutHost(t *testing.T) {
	err := NewMailer(MailConfig{}).SendMail("cook@example.com", "s", "b")
	assert.ErrorIs(t, err, ErrMailDisabled)
}
