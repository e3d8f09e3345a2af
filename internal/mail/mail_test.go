package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theroom/internal/config"
)

func TestNew_PicksSender(t *testing.T) {
	assert.IsType(t, &ConsoleSender{}, New(config.MailConfig{}))
	assert.IsType(t, &SMTPSender{}, New(config.MailConfig{Host: "smtp.example.com", Port: 587}))
}

func TestConsoleSender(t *testing.T) {
	err := NewConsoleSender(true).Send(context.Background(), Message{Kind: KindVerification, To: "a@b.c"})
	assert.NoError(t, err)
}

func TestVerificationMessage_EscapesName(t *testing.T) {
	msg, err := VerificationMessage("admin@hotel.test", "<Otel>", "http://localhost:3000/verify?token=abc")
	require.NoError(t, err)

	assert.Equal(t, KindVerification, msg.Kind)
	assert.Contains(t, msg.HTML, "&lt;Otel&gt;")
	assert.Contains(t, msg.HTML, `href="http://localhost:3000/verify?token=abc"`)
}

func TestTrialReminderMessage(t *testing.T) {
	endsAt := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	msg, err := TrialReminderMessage("admin@hotel.test", "Deniz Otel", endsAt, "http://localhost:3000/subscription")
	require.NoError(t, err)

	assert.Equal(t, "The Room | Deneme Süreniz Dolmak Üzere!", msg.Subject)
	assert.Contains(t, msg.HTML, "09.03.2026")
}

func TestBuildMessage(t *testing.T) {
	raw := string(buildMessage("The Room <no-reply@theroom.local>", Message{
		To:      "admin@hotel.test",
		Subject: "Şifre",
		HTML:    "<p>hi</p>",
	}))

	assert.True(t, strings.HasPrefix(raw, "From: The Room <no-reply@theroom.local>\r\n"))
	assert.Contains(t, raw, "Subject: =?utf-8?q?")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>hi</p>"))
}

func TestEnvelopeAddress(t *testing.T) {
	assert.Equal(t, "no-reply@theroom.local", envelopeAddress("The Room <no-reply@theroom.local>"))
	assert.Equal(t, "plain@theroom.local", envelopeAddress(" plain@theroom.local "))
}
