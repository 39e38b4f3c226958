package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"log"
	"strings"
	"testing"

	"talent-hive/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_HTMLOnly(t *testing.T) {
	raw := string(Compose(Message{
		FromName: "TalentHive Career Support",
		From:     "hr@talenthive.test",
		To:       "dana@example.com",
		Subject:  "Interview Preparation Resources for Software Engineer at Acme Corp",
		HTML:     "<p>hello</p>",
		Headers:  map[string]string{"X-Priority": "3", "X-Mailer": "TalentHive Interview Prep"},
	}))

	assert.Contains(t, raw, "From: TalentHive Career Support <hr@talenthive.test>\r\n")
	assert.Contains(t, raw, "To: dana@example.com\r\n")
	assert.Contains(t, raw, "X-Mailer: TalentHive Interview Prep\r\n")
	assert.Contains(t, raw, "X-Priority: 3\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=utf-8\r\n")
	assert.Contains(t, raw, base64.StdEncoding.EncodeToString([]byte("<p>hello</p>")))
	assert.NotContains(t, raw, "multipart/alternative")
}

func TestCompose_Multipart(t *testing.T) {
	raw := string(Compose(Message{From: "a@b.c", To: "d@e.f", Subject: "s", HTML: "<b>x</b>", Text: "x"}))

	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "text/plain; charset=utf-8")
	assert.Contains(t, raw, "text/html; charset=utf-8")
}

func TestCompose_StripsHeaderInjection(t *testing.T) {
	raw := string(Compose(Message{From: "a@b.c", To: "d@e.f\r\nBcc: evil@x.y", Subject: "s", Text: "x"}))

	assert.NotContains(t, raw, "\r\nBcc:")
}

func TestCompose_WrapsLongBodies(t *testing.T) {
	raw := string(Compose(Message{From: "a@b.c", To: "d@e.f", Subject: "s", Text: strings.Repeat("y", 500)}))

	for _, line := range strings.Split(raw, "\r\n") {
		assert.LessOrEqual(t, len(line), 998)
	}
}

func TestLogTransport(t *testing.T) {
	var buf bytes.Buffer
	tr := NewLogTransport(log.New(&buf, "", 0))

	require.NoError(t, tr.Send(context.Background(), Message{To: "dana@example.com", Subject: "hi", Text: "x"}))
	assert.Contains(t, buf.String(), "to=dana@example.com")

	assert.ErrorIs(t, tr.Send(context.Background(), Message{Subject: "hi"}), ErrNoRecipient)
}

func TestNewTransport_PicksByConfig(t *testing.T) {
	_, isLog := NewTransport(config.SMTPConfig{}, nil).(*LogTransport)
	assert.True(t, isLog)

	_, isSMTP := NewTransport(config.SMTPConfig{Host: "smtp.example.com"}, nil).(*SMTPTransport)
	assert.True(t, isSMTP)
}

func TestSMTPTransport_RequiresRecipient(t *testing.T) {
	tr := NewSMTPTransport(config.SMTPConfig{Host: "127.0.0.1", Port: 1})
	assert.ErrorIs(t, tr.Send(context.Background(), Message{Subject: "x"}), ErrNoRecipient)
}
