package mail

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"
)

// Config holds the SMTP relay settings.
type Config struct {
	Host          string
	Port          int
	Username      string
	Password      string
	Secure        bool // implicit TLS; true when the relay listens on 465
	SenderName    string
	SenderAddress string
}

// SMTPSender delivers messages through an authenticated SMTP relay.
type SMTPSender struct {
	dialer        *gomail.Dialer
	senderName    string
	senderAddress string
}

// NewSMTPSender returns a sender that dials per message. The relay is not
// contacted until the first Send.
func NewSMTPSender(cfg Config) *SMTPSender {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.Secure
	return &SMTPSender{
		dialer:        dialer,
		senderName:    cfg.SenderName,
		senderAddress: cfg.SenderAddress,
	}
}

// Send builds the MIME message and hands it to the relay. gomail carries
// no context through the dial, so cancellation is honoured up front only.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderAddress, s.senderName))
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	for i, att := range msg.Attachments {
		copyContent := gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(att.Content)
			return err
		})
		settings := []gomail.FileSetting{copyContent}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		m.Attach(att.Filename, settings...)
		if att.Inline() {
			m.Embed(InlineCID(i, att), copyContent)
		}
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("SMTP gönderimi başarısız: %w", err)
	}
	return nil
}
