package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"mime"
	"net"
	"net/smtp"
	"sort"
	"strconv"
	"strings"
	"time"

	"talent-hive/internal/config"

	"github.com/google/uuid"
)

var ErrNoRecipient = errors.New("mail: no recipient")

// Message is a fully formed outbound email. At least one of HTML and Text
// must be set.
type Message struct {
	FromName string
	From     string
	To       string
	Subject  string
	HTML     string
	Text     string
	Headers  map[string]string
}

type Transport interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPTransport struct {
	host     string
	port     int
	username string
	password string
	fromName string
	from     string
	timeout  time.Duration
}

func NewSMTPTransport(cfg config.SMTPConfig) *SMTPTransport {
	port := cfg.Port
	if port <= 0 {
		port = 587
	}
	return &SMTPTransport{
		host:     cfg.Host,
		port:     port,
		username: cfg.Username,
		password: cfg.Password,
		fromName: cfg.FromName,
		from:     cfg.From,
		timeout:  30 * time.Second,
	}
}

// NewTransport picks SMTP when a host is configured and falls back to
// logging messages otherwise.
func NewTransport(cfg config.SMTPConfig, logger *log.Logger) Transport {
	if cfg.Enabled() {
		return NewSMTPTransport(cfg)
	}
	if logger != nil {
		logger.Printf("[Mail] EMAIL_HOST not set, messages will be logged instead of sent")
	}
	return NewLogTransport(logger)
}

func (t *SMTPTransport) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrNoRecipient
	}
	if msg.From == "" {
		msg.From = t.from
	}
	if msg.FromName == "" {
		msg.FromName = t.fromName
	}

	addr := net.JoinHostPort(t.host, strconv.Itoa(t.port))
	d := net.Dialer{Timeout: t.timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	deadline := time.Now().Add(t.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)

	if t.port == 465 {
		conn = tls.Client(conn, &tls.Config{ServerName: t.host})
	}

	c, err := smtp.NewClient(conn, t.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok && t.port != 465 {
		if err := c.StartTLS(&tls.Config{ServerName: t.host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if t.username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", t.username, t.password, t.host)); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}

	if err := c.Mail(msg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(Compose(msg)); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}
	return c.Quit()
}

// Compose renders msg as an RFC 5322 message. When both bodies are present a
// multipart/alternative message is produced.
func Compose(msg Message) []byte {
	var b bytes.Buffer

	from := msg.From
	if msg.FromName != "" {
		from = mime.QEncoding.Encode("utf-8", msg.FromName) + " <" + msg.From + ">"
	}
	writeHeader(&b, "From", from)
	writeHeader(&b, "To", msg.To)
	writeHeader(&b, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&b, "Date", time.Now().UTC().Format(time.RFC1123Z))
	writeHeader(&b, "Message-ID", "<"+uuid.NewString()+"@talenthive>")
	writeHeader(&b, "MIME-Version", "1.0")

	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeHeader(&b, k, msg.Headers[k])
	}

	switch {
	case msg.HTML != "" && msg.Text != "":
		boundary := "th-" + strings.ReplaceAll(uuid.NewString(), "-", "")
		writeHeader(&b, "Content-Type", `multipart/alternative; boundary="`+boundary+`"`)
		b.WriteString("\r\n")
		writePart(&b, boundary, "text/plain; charset=utf-8", msg.Text)
		writePart(&b, boundary, "text/html; charset=utf-8", msg.HTML)
		b.WriteString("--" + boundary + "--\r\n")
	case msg.HTML != "":
		writeBody(&b, "text/html; charset=utf-8", msg.HTML)
	default:
		writeBody(&b, "text/plain; charset=utf-8", msg.Text)
	}
	return b.Bytes()
}

func writeHeader(b *bytes.Buffer, k, v string) {
	v = strings.NewReplacer("\r", "", "\n", "").Replace(v)
	b.WriteString(k + ": " + v + "\r\n")
}

func writePart(b *bytes.Buffer, boundary, contentType, body string) {
	b.WriteString("--" + boundary + "\r\n")
	writeBody(b, contentType, body)
}

func writeBody(b *bytes.Buffer, contentType, body string) {
	writeHeader(b, "Content-Type", contentType)
	writeHeader(b, "Content-Transfer-Encoding", "base64")
	b.WriteString("\r\n")
	enc := base64.StdEncoding.EncodeToString([]byte(body))
	for len(enc) > 76 {
		b.WriteString(enc[:76] + "\r\n")
		enc = enc[76:]
	}
	b.WriteString(enc + "\r\n")
}

type LogTransport struct {
	logger *log.Logger
}

func NewLogTransport(logger *log.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Send(_ context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrNoRecipient
	}
	if t.logger != nil {
		t.logger.Printf("[Mail] Logged message to=%s subject=%q html_bytes=%d text_bytes=%d", msg.To, msg.Subject, len(msg.HTML), len(msg.Text))
	}
	return nil
}

var (
	_ Transport = (*SMTPTransport)(nil)
	_ Transport = (*LogTransport)(nil)
)
