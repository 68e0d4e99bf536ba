package email

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"

	"github.com/frental-api/internal/config"
	"github.com/frental-api/internal/domain"
)

// SMTPSender is the fallback transport: direct SMTP submission.
type SMTPSender struct {
	host     string
	port     string
	from     string
	fromName string
	username string
	password string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPUsername,
		fromName: cfg.SenderName,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

// Verify checks that the SMTP endpoint is reachable before a send is
// attempted. Returns ErrKindConfigurationMissing when credentials are absent.
func (s *SMTPSender) Verify(ctx context.Context) domain.ErrorKind {
	if s.host == "" || s.username == "" || s.password == "" {
		return domain.ErrKindConfigurationMissing
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(s.host, s.port))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.ErrKindTimeout
		}
		return domain.ErrKindProviderUnreachable
	}
	conn.Close()
	return domain.ErrKindNone
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, htmlBody string) domain.DeliveryResult {
	if kind := s.Verify(ctx); kind != domain.ErrKindNone {
		return domain.DeliveryResult{Provider: "smtp", Kind: kind, Detail: "pre-flight check failed"}
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.fromName, s.from, to, subject, htmlBody)
	addr := net.JoinHostPort(s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	// net/smtp has no context support; run the submission in a goroutine and
	// race it against the context so a hung provider cannot stall the worker.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg))
	}()

	select {
	case <-ctx.Done():
		return domain.DeliveryResult{Provider: "smtp", Kind: domain.ErrKindTimeout, Detail: ctx.Err().Error()}
	case err := <-done:
		if err != nil {
			return domain.DeliveryResult{Provider: "smtp", Kind: domain.ErrKindProviderRejected, Detail: err.Error()}
		}
		return domain.DeliveryResult{Success: true, Provider: "smtp"}
	}
}
