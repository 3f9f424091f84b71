package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"commenthub/internal/microservices/http-api/models"
)

// Envelope is one outgoing notification mail
type Envelope struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Mailer delivers an envelope. Implementations may fail; the dispatcher
// decides what that means.
type Mailer interface {
	Send(envelope *Envelope) error
}

// NotificationService sends a best-effort mail about a new comment.
// Delivery failures are logged and swallowed: notification is not part of
// the transactional outcome of a submission.
type NotificationService interface {
	NotifyNewComment(ctx context.Context, node *models.Node, comment *models.Comment)
}

type notificationService struct {
	mailer    Mailer
	logger    *slog.Logger
	siteTitle string
	siteEmail string
	from      string
}

func NewNotificationService(mailer Mailer, logger *slog.Logger, siteTitle, siteEmail, from string) NotificationService {
	return &notificationService{
		mailer:    mailer,
		logger:    logger,
		siteTitle: siteTitle,
		siteEmail: siteEmail,
		from:      from,
	}
}

func (s *notificationService) NotifyNewComment(ctx context.Context, node *models.Node, comment *models.Comment) {
	envelope := &Envelope{
		From:    s.from,
		To:      s.siteEmail,
		Subject: fmt.Sprintf("[%s] New comment posted under %s", s.siteTitle, node.Title),
		Body: fmt.Sprintf(
			"A new comment (#%d, status %s) was posted under %q by %s <%s>.\n\n%s\n\n%s#comment-%d\n",
			comment.ID, comment.Status, node.Title, comment.Name, comment.Email, comment.Body, node.URL, comment.ID,
		),
	}

	if err := s.mailer.Send(envelope); err != nil {
		s.logger.Error("Error sending comment notification",
			"error", err,
			"comment_id", comment.ID,
			"node_id", node.ID,
		)
	}
}

// SMTPMailer delivers envelopes over plain SMTP
type SMTPMailer struct {
	addr     string
	username string
	password string
}

func NewSMTPMailer(addr, username, password string) *SMTPMailer {
	return &SMTPMailer{
		addr:     addr,
		username: username,
		password: password,
	}
}

func (m *SMTPMailer) Send(envelope *Envelope) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", envelope.From)
	fmt.Fprintf(&msg, "To: %s\r\n", envelope.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", envelope.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(envelope.Body)

	var auth smtp.Auth
	if m.username != "" {
		host := m.addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.username, m.password, host)
	}

	return smtp.SendMail(m.addr, auth, envelope.From, []string{envelope.To}, []byte(msg.String()))
}
