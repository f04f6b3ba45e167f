package mailer

import "errors"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (rendered by the worker from Data) or Subject with Text/HTML
// must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "status_changed"
	Data     map[string]any `json:"data,omitempty"`
}

func NewTemplateJob(to, template string, data map[string]any) EmailJob {
	return EmailJob{To: to, Template: template, Data: data}
}

// Validate rejects jobs the worker could never deliver.
func (j EmailJob) Validate() error {
	if j.To == "" {
		return errors.New("email job: missing recipient")
	}
	if j.Template == "" && j.Subject == "" {
		return errors.New("email job: template or subject required")
	}
	return nil
}
