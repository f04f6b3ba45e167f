package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/domain/repository"
	"github.com/oksasatya/careerconnect-api/pkg/apperror"
)

const (
	RecentApplicantsLimit = 5
	NewApplicantWindow    = 24 * time.Hour
)

type DashboardStats struct {
	TotalPostedJobs  int `json:"totalPostedJobs"`
	TotalApplicants  int `json:"totalApplicants"`
	TotalShortlisted int `json:"totalShortlisted"`
	NewApplicants    int `json:"newApplicants"`
}

type RecentApplicant struct {
	entity.Application
	CandidateDetails entity.CandidateDetails `json:"candidateDetails"`
	InternshipTitle  string                  `json:"internshipTitle"`
}

// DashboardService aggregates a recruiter's own postings and applications.
type DashboardService struct {
	Apps        repository.ApplicationRepository
	Internships repository.InternshipRepository
	Profiles    repository.ProfileRepository
	Logger      *logrus.Logger
	Now         func() time.Time
}

func NewDashboardService(apps repository.ApplicationRepository, internships repository.InternshipRepository, profiles repository.ProfileRepository, logger *logrus.Logger) *DashboardService {
	return &DashboardService{Apps: apps, Internships: internships, Profiles: profiles, Logger: logger, Now: time.Now}
}

func (s *DashboardService) Stats(ctx context.Context, recruiterID string) (*DashboardStats, error) {
	postings, err := s.Internships.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, apperror.Internal("failed to load postings", err)
	}
	apps, err := s.Apps.ListByRecruiter(ctx, recruiterID, 0)
	if err != nil {
		return nil, apperror.Internal("failed to load applications", err)
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	cutoff := now.Add(-NewApplicantWindow)
	st := &DashboardStats{TotalPostedJobs: len(postings), TotalApplicants: len(apps)}
	for _, a := range apps {
		if a.Status == entity.StatusShortlisted {
			st.TotalShortlisted++
		}
		if a.AppliedOn.After(cutoff) {
			st.NewApplicants++
		}
	}
	return st, nil
}

func (s *DashboardService) RecentApplicants(ctx context.Context, recruiterID string) ([]RecentApplicant, error) {
	apps, err := s.Apps.ListByRecruiter(ctx, recruiterID, RecentApplicantsLimit)
	if err != nil {
		return nil, apperror.Internal("failed to load applications", err)
	}
	cands := candidatesFor(ctx, s.Profiles, loggerOr(s.Logger), apps)
	postings := internshipsFor(ctx, s.Internships, loggerOr(s.Logger), apps)

	out := make([]RecentApplicant, 0, len(apps))
	for _, a := range apps {
		title := NotAvailable
		if p, ok := postings[a.InternshipID]; ok {
			title = p.Title
		}
		out = append(out, RecentApplicant{
			Application:      *a,
			CandidateDetails: detailsOrUnknown(cands, a.CandidateID, NotAvailable),
			InternshipTitle:  title,
		})
	}
	return out, nil
}
