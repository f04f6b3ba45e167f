package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/domain/repository"
	"github.com/oksasatya/careerconnect-api/pkg/apperror"
)

const (
	PlaceholderTitle = "Internship No Longer Available"
	NotAvailable     = "N/A"
	UnknownApplicant = "Unknown"

	DefaultNotificationsLimit = 20
)

// StatusChange describes a status transition that actually changed the
// stored value. Internship and Candidate may be nil when they no longer exist.
type StatusChange struct {
	Application entity.Application
	Previous    entity.ApplicationStatus
	Internship  *entity.Internship
	Candidate   *entity.Candidate
}

// StatusNotifier is told about every effective status change. Errors are
// logged by the caller and never fail the transition.
type StatusNotifier interface {
	StatusChanged(ctx context.Context, change StatusChange) error
}

// ApplicantView is an application joined with the redacted candidate.
type ApplicantView struct {
	entity.Application
	CandidateDetails entity.CandidateDetails `json:"candidateDetails"`
}

// MyApplicationView is an application joined with the posting it targets.
type MyApplicationView struct {
	entity.Application
	InternshipTitle  string                  `json:"internshipTitle"`
	CompanyName      string                  `json:"companyName"`
	Location         string                  `json:"location"`
	Logo             string                  `json:"logo"`
	Stipend          *entity.Stipend         `json:"stipend,omitempty"`
	InternshipStatus entity.InternshipStatus `json:"internshipStatus,omitempty"`
}

type ApplicationService struct {
	Apps        repository.ApplicationRepository
	Internships repository.InternshipRepository
	Profiles    repository.ProfileRepository
	Notifier    StatusNotifier
	Logger      *logrus.Logger

	// NotificationsLimit bounds how many recent applications feed the
	// notification list. 0 means all of them.
	NotificationsLimit int
	Now                func() time.Time
}

func NewApplicationService(apps repository.ApplicationRepository, internships repository.InternshipRepository, profiles repository.ProfileRepository, notifier StatusNotifier, logger *logrus.Logger, notificationsLimit int) *ApplicationService {
	if notificationsLimit < 0 {
		notificationsLimit = DefaultNotificationsLimit
	}
	return &ApplicationService{
		Apps:               apps,
		Internships:        internships,
		Profiles:           profiles,
		Notifier:           notifier,
		Logger:             logger,
		NotificationsLimit: notificationsLimit,
		Now:                time.Now,
	}
}

func (s *ApplicationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *ApplicationService) log() *logrus.Logger { return loggerOr(s.Logger) }

func loggerOr(l *logrus.Logger) *logrus.Logger {
	if l != nil {
		return l
	}
	return logrus.StandardLogger()
}

// Submit records candidateID's application to internshipID.
func (s *ApplicationService) Submit(ctx context.Context, candidateID, internshipID string) (*entity.Application, error) {
	internshipID = strings.TrimSpace(internshipID)
	if internshipID == "" {
		return nil, apperror.BadRequest("internshipId is required.")
	}
	a := &entity.Application{
		ID:           uuid.NewString(),
		CandidateID:  candidateID,
		InternshipID: internshipID,
		Status:       entity.StatusApplied,
		AppliedOn:    s.now(),
	}
	if err := s.Apps.Submit(ctx, a); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("Internship not found.")
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperror.Conflict("You have already applied for this internship.")
		}
		return nil, apperror.Internal("failed to submit application", err)
	}
	applicationsSubmitted.Add(1)
	s.log().WithFields(logrus.Fields{
		"application_id": a.ID,
		"internship_id":  a.InternshipID,
		"user_id":        candidateID,
	}).Info("application submitted")
	return a, nil
}

// ListApplicants returns applications to internshipID that recruiterID owns.
// A recruiter who does not own the posting gets an empty list.
func (s *ApplicationService) ListApplicants(ctx context.Context, recruiterID, internshipID string) ([]ApplicantView, error) {
	if strings.TrimSpace(internshipID) == "" {
		return nil, apperror.BadRequest("internshipId is required.")
	}
	apps, err := s.Apps.ListForInternship(ctx, internshipID, recruiterID)
	if err != nil {
		return nil, apperror.Internal("failed to list applicants", err)
	}
	cands := candidatesFor(ctx, s.Profiles, s.log(), apps)
	out := make([]ApplicantView, 0, len(apps))
	for _, a := range apps {
		out = append(out, ApplicantView{Application: *a, CandidateDetails: detailsOrUnknown(cands, a.CandidateID, UnknownApplicant)})
	}
	return out, nil
}

// candidatesFor loads the candidates behind apps. A failed lookup degrades to
// an empty map so every applicant shows as unknown instead of failing the list.
func candidatesFor(ctx context.Context, profiles repository.ProfileRepository, logger *logrus.Logger, apps []*entity.Application) map[string]*entity.Candidate {
	ids := make([]string, 0, len(apps))
	seen := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		if _, ok := seen[a.CandidateID]; ok {
			continue
		}
		seen[a.CandidateID] = struct{}{}
		ids = append(ids, a.CandidateID)
	}
	cands, err := profiles.GetCandidates(ctx, ids)
	if err != nil {
		logger.WithError(err).Warn("candidate lookup failed")
		return map[string]*entity.Candidate{}
	}
	return cands
}

func detailsOrUnknown(cands map[string]*entity.Candidate, id, placeholder string) entity.CandidateDetails {
	if c, ok := cands[id]; ok {
		return c.Details()
	}
	return entity.UnknownCandidate(placeholder)
}

// internshipsFor loads the postings behind apps, degrading to an empty map.
func internshipsFor(ctx context.Context, internships repository.InternshipRepository, logger *logrus.Logger, apps []*entity.Application) map[string]*entity.Internship {
	ids := make([]string, 0, len(apps))
	seen := make(map[string]struct{}, len(apps))
	for _, a := range apps {
		if _, ok := seen[a.InternshipID]; ok {
			continue
		}
		seen[a.InternshipID] = struct{}{}
		ids = append(ids, a.InternshipID)
	}
	postings, err := internships.GetByIDs(ctx, ids)
	if err != nil {
		logger.WithError(err).Warn("internship lookup failed")
		return map[string]*entity.Internship{}
	}
	return postings
}

// Transition moves an application to rawStatus on behalf of its recruiter.
// It reports whether the stored status changed.
func (s *ApplicationService) Transition(ctx context.Context, recruiterID, applicationID, rawStatus string) (*entity.Application, bool, error) {
	if strings.TrimSpace(rawStatus) == "" {
		return nil, false, apperror.BadRequest("Status is required.")
	}
	next, err := entity.ParseApplicationStatus(rawStatus)
	if err != nil {
		return nil, false, apperror.BadRequest(fmt.Sprintf("Invalid status %q.", rawStatus))
	}
	a, err := s.Apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, apperror.NotFound("Application not found.")
		}
		return nil, false, apperror.Internal("failed to load application", err)
	}
	if a.RecruiterID != recruiterID {
		return nil, false, apperror.Forbidden("You are not authorized to update this application.")
	}
	if a.Status == next {
		return a, false, nil
	}
	if !entity.CanTransition(a.Status, next) {
		return nil, false, apperror.BadRequest(fmt.Sprintf("Cannot change status from %s to %s.", a.Status, next))
	}
	if err := s.Apps.UpdateStatus(ctx, a.ID, next); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, apperror.NotFound("Application not found.")
		}
		return nil, false, apperror.Internal("failed to update application status", err)
	}
	prev := a.Status
	a.Status = next
	a.IsRead = false
	statusChanges.Add(1)

	fields := logrus.Fields{"application_id": a.ID, "user_id": recruiterID, "from": prev, "to": next}
	s.log().WithFields(fields).Info("application status changed")
	s.notify(ctx, *a, prev)
	return a, true, nil
}

func (s *ApplicationService) notify(ctx context.Context, a entity.Application, prev entity.ApplicationStatus) {
	if s.Notifier == nil {
		return
	}
	change := StatusChange{Application: a, Previous: prev}
	if posting, err := s.Internships.GetByID(ctx, a.InternshipID); err == nil {
		change.Internship = posting
	}
	if cand, err := s.Profiles.GetCandidate(ctx, a.CandidateID); err == nil {
		change.Candidate = cand
	}
	if err := s.Notifier.StatusChanged(ctx, change); err != nil {
		s.log().WithError(err).WithField("application_id", a.ID).Warn("status notification failed")
	}
}

// Notifications derives the candidate's notifications from their most recent
// applications whose status left Applied.
func (s *ApplicationService) Notifications(ctx context.Context, candidateID string) ([]entity.Notification, error) {
	apps, err := s.Apps.ListByCandidate(ctx, candidateID, s.NotificationsLimit)
	if err != nil {
		return nil, apperror.Internal("failed to load notifications", err)
	}
	postings := internshipsFor(ctx, s.Internships, s.log(), apps)
	out := make([]entity.Notification, 0, len(apps))
	for _, a := range apps {
		title := PlaceholderTitle
		if p, ok := postings[a.InternshipID]; ok {
			title = p.Title
		}
		if n, ok := entity.NotificationFor(*a, title); ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// MarkNotificationRead acknowledges the notification backed by applicationID.
// Repeating it is a no-op.
func (s *ApplicationService) MarkNotificationRead(ctx context.Context, candidateID, applicationID string) error {
	if strings.TrimSpace(applicationID) == "" {
		return apperror.BadRequest("Notification id is required.")
	}
	a, err := s.Apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Notification not found.")
		}
		return apperror.Internal("failed to load notification", err)
	}
	if a.CandidateID != candidateID {
		return apperror.Forbidden("You are not authorized to update this notification.")
	}
	if a.IsRead {
		return nil
	}
	if err := s.Apps.MarkRead(ctx, a.ID); err != nil {
		return apperror.Internal("failed to mark notification as read", err)
	}
	return nil
}

// ListMine returns the candidate's applications joined with posting fields,
// newest first.
func (s *ApplicationService) ListMine(ctx context.Context, candidateID string) ([]MyApplicationView, error) {
	apps, err := s.Apps.ListByCandidate(ctx, candidateID, 0)
	if err != nil {
		return nil, apperror.Internal("failed to list applications", err)
	}
	postings := internshipsFor(ctx, s.Internships, s.log(), apps)
	out := make([]MyApplicationView, 0, len(apps))
	for _, a := range apps {
		v := MyApplicationView{
			Application:     *a,
			InternshipTitle: PlaceholderTitle,
			CompanyName:     NotAvailable,
			Location:        NotAvailable,
			Logo:            entity.DefaultCompanyLogo,
		}
		if p, ok := postings[a.InternshipID]; ok {
			v.InternshipTitle = p.Title
			v.CompanyName = orDefault(p.Company, NotAvailable)
			v.Location = orDefault(p.Location, NotAvailable)
			v.Logo = orDefault(p.Logo, entity.DefaultCompanyLogo)
			st := p.Stipend
			v.Stipend = &st
			v.InternshipStatus = p.Status
		}
		out = append(out, v)
	}
	return out, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
