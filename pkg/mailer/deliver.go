package mailer

import (
	"context"
	"errors"
	"fmt"

	mailtpl "github.com/oksasatya/careerconnect-api/pkg/mailer/templates"
)

// ErrPermanent marks a job that will never succeed on retry.
var ErrPermanent = errors.New("permanent email failure")

// Prepare returns the subject and bodies for job, rendering its template
// when one is set.
func Prepare(job EmailJob) (subject, text, html string, err error) {
	if err := job.Validate(); err != nil {
		return "", "", "", fmt.Errorf("%w: %v", ErrPermanent, err)
	}
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: render %s: %v", ErrPermanent, job.Template, err)
	}
	return subject, text, html, nil
}

// Deliver renders job and hands it to s. Errors wrapping ErrPermanent should
// not be retried.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	subject, text, html, err := Prepare(job)
	if err != nil {
		return err
	}
	return s.Send(ctx, job.To, subject, text, html)
}
