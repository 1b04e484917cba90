package notifier

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/Itish41/asset-audit/models"
	"go.uber.org/zap"
)

var errNoRecipient = errors.New("assignee has no email address")

type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Password string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPDispatcher mails one HTML digest per assignee.
type SMTPDispatcher struct {
	cfg    SMTPConfig
	send   sendFunc
	logger *zap.Logger
}

func NewSMTPDispatcher(cfg SMTPConfig, logger *zap.Logger) *SMTPDispatcher {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPDispatcher{cfg: cfg, send: smtp.SendMail, logger: logger.Named("smtp")}
}

func (d *SMTPDispatcher) Dispatch(ctx context.Context, r models.Reminder) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("remind %s: %w", r.Assignee.ID, errNoRecipient)
	}

	auth := smtp.PlainAuth("", d.cfg.From, d.cfg.Password, d.cfg.Host)
	addr := d.cfg.Host + ":" + strconv.Itoa(d.cfg.Port)
	if err := d.send(addr, auth, d.cfg.From, []string{r.Email}, d.message(r)); err != nil {
		d.logger.Warn("send reminder mail", zap.String("assignee", r.Assignee.ID), zap.Error(err))
		return err
	}
	d.logger.Info("reminder mail sent",
		zap.String("assignee", r.Assignee.ID), zap.Int("actions", len(r.Actions)))
	return nil
}

func (d *SMTPDispatcher) message(r models.Reminder) []byte {
	subject := fmt.Sprintf("Corrective actions due: %d open item(s)", len(r.Actions))

	var rows strings.Builder
	for _, a := range r.Actions {
		due := "-"
		if a.DueDate != nil {
			due = a.DueDate.Format("January 2, 2006")
		}
		fmt.Fprintf(&rows, "\t\t\t<li><strong>%s</strong> (%s, due %s): %s</li>\n",
			html.EscapeString(a.Issue), html.EscapeString(string(a.Priority)), due, html.EscapeString(a.Action))
	}

	name := r.Assignee.Name
	if name == "" {
		name = "colleague"
	}
	body := fmt.Sprintf(`
	<html>
	<body>
		<h2>Corrective Actions Pending</h2>
		<p>Dear %s,</p>
		<p>The following corrective actions from the asset audit are assigned to you:</p>
		<ul>
%s		</ul>
		<p>Please take the necessary actions to complete them.</p>
		<p>Best regards,<br>Asset Audit Team</p>
	</body>
	</html>
`, html.EscapeString(name), rows.String())

	return []byte("Subject: " + subject + "\r\n" +
		"From: " + d.cfg.From + "\r\n" +
		"To: " + r.Email + "\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
		body)
}
