package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerconnect-api/config"
	"github.com/oksasatya/careerconnect-api/pkg/mailer"
	mailtpl "github.com/oksasatya/careerconnect-api/pkg/mailer/templates"
)

// JSONPublisher puts one JSON message on the email queue.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// MailNotifier queues a status_changed email for the email worker.
type MailNotifier struct {
	Publisher JSONPublisher
	Config    *config.Config
	Logger    *logrus.Logger
}

func NewMailNotifier(pub JSONPublisher, cfg *config.Config, logger *logrus.Logger) *MailNotifier {
	return &MailNotifier{Publisher: pub, Config: cfg, Logger: logger}
}

func (n *MailNotifier) StatusChanged(ctx context.Context, change StatusChange) error {
	if n.Publisher == nil || n.Config == nil {
		return errors.New("mail notifier not configured")
	}
	cand := change.Candidate
	if cand == nil || cand.Email == "" {
		loggerOr(n.Logger).WithField("application_id", change.Application.ID).Debug("no recipient for status email")
		return nil
	}
	title, company := PlaceholderTitle, ""
	if change.Internship != nil {
		title, company = change.Internship.Title, change.Internship.Company
	}
	data := mailtpl.NewStatusChangedData(n.Config, cand.Name, cand.Email, title, string(change.Application.Status),
		mailtpl.WithPreviousStatus(string(change.Previous)),
		mailtpl.WithCompany(company),
		mailtpl.WithTime(time.Now()),
	)
	job := mailer.NewTemplateJob(cand.Email, mailtpl.StatusChanged, data)
	if err := job.Validate(); err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return n.Publisher.PublishJSON(c, job)
}

var _ StatusNotifier = (*MailNotifier)(nil)
