package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/domain/repository"
	"github.com/oksasatya/careerconnect-api/pkg/apperror"
)

const (
	DefaultInternshipTitle    = "Default Title"
	DefaultInternshipLocation = "Default Location"
	DefaultDeadlineWindow     = 30 * 24 * time.Hour
	MaxSearchResults          = 50
)

// Defaults applied to fields a new posting leaves out.
var (
	DefaultStipend        = entity.Stipend{Min: decimal.Zero, Max: decimal.Zero, Currency: "₹", Interval: "/Month"}
	DefaultWorkDetails    = entity.WorkDetails{WorkingDays: "5 Days", Schedule: "Flexible"}
	DefaultInternshipType = entity.InternshipType{Type: "Hybrid", Timing: "Part Time"}
	DefaultEligibility    = []string{"Undergraduate", "Postgraduate"}
)

// InternshipIndex is the full-text search side of postings.
type InternshipIndex interface {
	Index(ctx context.Context, i *entity.Internship) error
	Delete(ctx context.Context, id string) error
	// Search returns matching posting ids, best match first.
	Search(ctx context.Context, q string, size int) ([]string, error)
}

type StipendInput struct {
	Min      *decimal.Decimal `json:"min"`
	Max      *decimal.Decimal `json:"max"`
	Currency *string          `json:"currency" binding:"omitempty,max=8"`
	Interval *string          `json:"interval" binding:"omitempty,max=32"`
}

type WorkDetailsInput struct {
	WorkingDays *string `json:"workingDays" binding:"omitempty,max=64"`
	Schedule    *string `json:"schedule" binding:"omitempty,max=64"`
}

type InternshipTypeInput struct {
	Type   *string `json:"type" binding:"omitempty,max=64"`
	Timing *string `json:"timing" binding:"omitempty,max=64"`
}

// InternshipInput is both the create body and the update patch. Nil fields
// are left at their default (create) or current value (update).
type InternshipInput struct {
	Title                   *string                  `json:"title" binding:"omitempty,min=1,max=200"`
	Location                *string                  `json:"location" binding:"omitempty,max=200"`
	Duration                *string                  `json:"duration" binding:"omitempty,max=64"`
	Stipend                 *StipendInput            `json:"stipend"`
	WorkDetails             *WorkDetailsInput        `json:"workDetails"`
	InternshipType          *InternshipTypeInput     `json:"internshipType"`
	Eligibility             []string                 `json:"eligibility" binding:"omitempty,dive,max=200"`
	Responsibilities        []string                 `json:"responsibilities" binding:"omitempty,dive,max=2000"`
	Requirements            []string                 `json:"requirements" binding:"omitempty,dive,max=2000"`
	SkillsAndQualifications []string                 `json:"skillsAndQualifications" binding:"omitempty,dive,max=2000"`
	Perks                   []string                 `json:"perks" binding:"omitempty,dive,max=500"`
	ApplicationDeadline     *time.Time               `json:"applicationDeadline"`
	Openings                *int                     `json:"openings" binding:"omitempty,gte=1"`
	Status                  *entity.InternshipStatus `json:"status" binding:"omitempty,postingstatus"`
}

type InternshipService struct {
	Repo     repository.InternshipRepository
	Profiles repository.ProfileRepository
	Index    InternshipIndex
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewInternshipService(repo repository.InternshipRepository, profiles repository.ProfileRepository, index InternshipIndex, logger *logrus.Logger) *InternshipService {
	return &InternshipService{Repo: repo, Profiles: profiles, Index: index, Logger: logger, Now: time.Now}
}

func (s *InternshipService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *InternshipService) Create(ctx context.Context, recruiterID string, in InternshipInput) (*entity.Internship, error) {
	rec, err := s.Profiles.GetRecruiter(ctx, recruiterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Recruiter profile not found.")
		}
		return nil, apperror.Internal("failed to load recruiter", err)
	}
	now := s.now()
	i := &entity.Internship{
		ID:                  uuid.NewString(),
		RecruiterID:         rec.ID,
		Company:             rec.Company,
		Logo:                orDefault(rec.CompanyLogo, entity.DefaultCompanyLogo),
		CompanyDescription:  rec.Description,
		Title:               DefaultInternshipTitle,
		Location:            DefaultInternshipLocation,
		Duration:            NotAvailable,
		Stipend:             DefaultStipend,
		WorkDetails:         DefaultWorkDetails,
		InternshipType:      DefaultInternshipType,
		Eligibility:         append([]string{}, DefaultEligibility...),
		ApplicationDeadline: now.Add(DefaultDeadlineWindow),
		Status:              entity.InternshipActive,
		Stats:               entity.Stats{Openings: 1},
		PostedOn:            now,
		UpdatedOn:           now,
	}
	if err := applyInput(i, in); err != nil {
		return nil, err
	}
	i.Normalize()
	if err := s.Repo.Create(ctx, i); err != nil {
		return nil, apperror.Internal("failed to create internship", err)
	}
	postingsCreated.Add(1)
	loggerOr(s.Logger).WithFields(logrus.Fields{"internship_id": i.ID, "user_id": recruiterID}).Info("internship created")
	s.index(ctx, i)
	return i, nil
}

// Update merges in onto the recruiter's own posting.
func (s *InternshipService) Update(ctx context.Context, recruiterID, id string, in InternshipInput) (*entity.Internship, error) {
	i, err := s.owned(ctx, recruiterID, id)
	if err != nil {
		return nil, err
	}
	if err := applyInput(i, in); err != nil {
		return nil, err
	}
	i.UpdatedOn = s.now()
	if err := s.Repo.Update(ctx, i); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Internship not found.")
		}
		return nil, apperror.Internal("failed to update internship", err)
	}
	s.index(ctx, i)
	return i, nil
}

func (s *InternshipService) Close(ctx context.Context, recruiterID, id string) (*entity.Internship, error) {
	closed := entity.InternshipClosed
	return s.Update(ctx, recruiterID, id, InternshipInput{Status: &closed})
}

// Delete removes the posting. Its applications stay and later show the
// placeholder title.
func (s *InternshipService) Delete(ctx context.Context, recruiterID, id string) error {
	if _, err := s.owned(ctx, recruiterID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Internship not found.")
		}
		return apperror.Internal("failed to delete internship", err)
	}
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id); err != nil {
			loggerOr(s.Logger).WithError(err).WithField("internship_id", id).Warn("search index delete failed")
		}
	}
	return nil
}

func (s *InternshipService) owned(ctx context.Context, recruiterID, id string) (*entity.Internship, error) {
	i, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.RecruiterID != recruiterID {
		return nil, apperror.Forbidden("Not authorized.")
	}
	return i, nil
}

func (s *InternshipService) Get(ctx context.Context, id string) (*entity.Internship, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.BadRequest("Internship id is required.")
	}
	i, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Internship not found.")
		}
		return nil, apperror.Internal("failed to load internship", err)
	}
	return i, nil
}

func (s *InternshipService) ListPublic(ctx context.Context) ([]*entity.Internship, error) {
	list, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list internships", err)
	}
	return list, nil
}

func (s *InternshipService) ListMine(ctx context.Context, recruiterID string) ([]*entity.Internship, error) {
	list, err := s.Repo.ListByRecruiter(ctx, recruiterID)
	if err != nil {
		return nil, apperror.Internal("failed to list internships", err)
	}
	return list, nil
}

// Search returns Active postings matching q. Without an index, or when the
// index is unreachable, the result is empty.
func (s *InternshipService) Search(ctx context.Context, q string, size int) ([]*entity.Internship, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperror.BadRequest("Query parameter q is required.")
	}
	if size <= 0 || size > MaxSearchResults {
		size = 10
	}
	out := make([]*entity.Internship, 0)
	if s.Index == nil {
		return out, nil
	}
	ids, err := s.Index.Search(ctx, q, size)
	if err != nil {
		loggerOr(s.Logger).WithError(err).Warn("internship search failed")
		return out, nil
	}
	found, err := s.Repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal("failed to load internships", err)
	}
	for _, id := range ids {
		if i, ok := found[id]; ok && i.Status == entity.InternshipActive {
			out = append(out, i)
		}
	}
	return out, nil
}

func (s *InternshipService) index(ctx context.Context, i *entity.Internship) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, i); err != nil {
		loggerOr(s.Logger).WithError(err).WithField("internship_id", i.ID).Warn("search index failed")
	}
}

// applyInput merges the non-nil parts of in onto i. It never touches id,
// recruiterId, postedOn or stats.applied.
func applyInput(i *entity.Internship, in InternshipInput) error {
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return apperror.Validation("invalid payload", map[string]string{"title": "is required"})
		}
		i.Title = t
	}
	if in.Location != nil {
		i.Location = strings.TrimSpace(*in.Location)
	}
	if in.Duration != nil {
		i.Duration = strings.TrimSpace(*in.Duration)
	}
	if st := in.Stipend; st != nil {
		if st.Min != nil {
			i.Stipend.Min = *st.Min
		}
		if st.Max != nil {
			i.Stipend.Max = *st.Max
		}
		if st.Currency != nil {
			i.Stipend.Currency = *st.Currency
		}
		if st.Interval != nil {
			i.Stipend.Interval = *st.Interval
		}
	}
	if i.Stipend.Min.IsNegative() || i.Stipend.Max.IsNegative() {
		return apperror.Validation("invalid payload", map[string]string{"stipend": "amounts must not be negative"})
	}
	if i.Stipend.Min.GreaterThan(i.Stipend.Max) {
		return apperror.Validation("invalid payload", map[string]string{"stipend": "min must not exceed max"})
	}
	if wd := in.WorkDetails; wd != nil {
		if wd.WorkingDays != nil {
			i.WorkDetails.WorkingDays = *wd.WorkingDays
		}
		if wd.Schedule != nil {
			i.WorkDetails.Schedule = *wd.Schedule
		}
	}
	if it := in.InternshipType; it != nil {
		if it.Type != nil {
			i.InternshipType.Type = *it.Type
		}
		if it.Timing != nil {
			i.InternshipType.Timing = *it.Timing
		}
	}
	if in.Eligibility != nil {
		i.Eligibility = in.Eligibility
	}
	if in.Responsibilities != nil {
		i.Responsibilities = in.Responsibilities
	}
	if in.Requirements != nil {
		i.Requirements = in.Requirements
	}
	if in.SkillsAndQualifications != nil {
		i.SkillsAndQualifications = in.SkillsAndQualifications
	}
	if in.Perks != nil {
		i.Perks = in.Perks
	}
	if in.ApplicationDeadline != nil {
		i.ApplicationDeadline = in.ApplicationDeadline.UTC()
	}
	if in.Openings != nil {
		if *in.Openings < 1 {
			return apperror.Validation("invalid payload", map[string]string{"openings": "must be at least 1"})
		}
		i.Stats.Openings = *in.Openings
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return apperror.Validation("invalid payload", map[string]string{"status": "must be one of: Active, Closed"})
		}
		i.Status = *in.Status
	}
	return nil
}
