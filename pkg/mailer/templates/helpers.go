package templates

import (
	"time"

	"github.com/oksasatya/careerconnect-api/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithPreviousStatus(s string) Option { return func(d *EmailData) { d.PreviousStatus = s } }
func WithCompany(c string) Option        { return func(d *EmailData) { d.Company = c } }

// NewBaseEmailData fills the branding fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		RecipientEmail: recipient,
		Type:           typ,

		AppName:    cfg.AppName,
		AppURL:     cfg.AppURL,
		SupportURL: cfg.SupportURL,

		ApplicationsURL: cfg.AppURL + "/candidate/applications",
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewStatusChangedData(cfg *config.Config, name, recipient, title, status string, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, StatusChanged, name, recipient, opts...)
	d.InternshipTitle = title
	d.Status = status
	return ToMap(d)
}
