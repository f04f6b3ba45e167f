package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/domain/repository"
	"github.com/oksasatya/careerconnect-api/pkg/apperror"
)

const MaxResumeBytes = 5 << 20

var resumeTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// FileStorage stores an uploaded object and returns its public URL.
type FileStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type RegisterInput struct {
	Email    string      `json:"email" binding:"omitempty,email"`
	Name     string      `json:"name" binding:"omitempty,max=120"`
	Role     entity.Role `json:"role" binding:"required,role"`
	Company  string      `json:"company" binding:"max=200"`
	Position string      `json:"position" binding:"max=120"`
}

type ProfileDocsInput struct {
	ResumeURL     *string `json:"resumeUrl" binding:"omitempty,url"`
	ProfilePicURL *string `json:"profilePicUrl" binding:"omitempty,url"`
}

// ProfileUpdateInput carries the editable fields of both roles. Fields that
// do not belong to the caller's role are ignored.
type ProfileUpdateInput struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=120"`
	Location *string `json:"location" binding:"omitempty,max=200"`

	Headline       *string                 `json:"headline" binding:"omitempty,max=200"`
	Skills         []string                `json:"skills" binding:"omitempty,dive,max=100"`
	Education      []entity.Education      `json:"education"`
	WorkExperience []entity.WorkExperience `json:"workExperience"`
	Profile        *ProfileDocsInput       `json:"profile"`
	SocialLinks    map[string]string       `json:"socialLinks"`

	Company     *string  `json:"company" binding:"omitempty,max=200"`
	Position    *string  `json:"position" binding:"omitempty,max=120"`
	CompanyLogo *string  `json:"companyLogo" binding:"omitempty,max=500"`
	Description *string  `json:"description" binding:"omitempty,max=5000"`
	Website     *string  `json:"website" binding:"omitempty,url"`
	Locations   []string `json:"locations" binding:"omitempty,dive,max=200"`
}

type ProfileService struct {
	Repo        repository.ProfileRepository
	Internships repository.InternshipRepository
	Storage     FileStorage
	Logger      *logrus.Logger
}

func NewProfileService(repo repository.ProfileRepository, internships repository.InternshipRepository, storage FileStorage, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Repo: repo, Internships: internships, Storage: storage, Logger: logger}
}

// ResolvePrincipal looks the subject up as a candidate first, then as a recruiter.
func (s *ProfileService) ResolvePrincipal(ctx context.Context, id string) (*entity.Principal, error) {
	c, err := s.Repo.GetCandidate(ctx, id)
	if err == nil {
		return &entity.Principal{ID: c.ID, Role: entity.RoleCandidate, Candidate: c}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("failed to load profile", err)
	}
	r, err := s.Repo.GetRecruiter(ctx, id)
	if err == nil {
		return &entity.Principal{ID: r.ID, Role: entity.RoleRecruiter, Recruiter: r}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("failed to load profile", err)
	}
	return nil, apperror.NotFound("User profile not found.")
}

// Register creates the profile for a freshly signed-up subject. tokenEmail
// is used when the body omits the email.
func (s *ProfileService) Register(ctx context.Context, subject, tokenEmail string, in RegisterInput) (*entity.Principal, error) {
	if subject == "" {
		return nil, apperror.Unauthorized("missing subject")
	}
	if !in.Role.Valid() {
		return nil, apperror.BadRequest("Invalid role.")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		email = tokenEmail
	}
	name := strings.TrimSpace(in.Name)
	if email == "" || name == "" {
		return nil, apperror.BadRequest("Missing required fields.")
	}

	if _, err := s.ResolvePrincipal(ctx, subject); err == nil {
		return nil, apperror.Conflict("Profile already exists.")
	} else if !apperror.Is(err, apperror.KindNotFound) {
		return nil, err
	}

	var (
		p   *entity.Principal
		err error
	)
	now := time.Now().UTC()
	switch in.Role {
	case entity.RoleCandidate:
		c := &entity.Candidate{ID: subject, Name: name, Email: email, CreatedAt: now, UpdatedAt: now}
		c.Normalize()
		err = s.Repo.CreateCandidate(ctx, c)
		p = &entity.Principal{ID: subject, Role: entity.RoleCandidate, Candidate: c}
	case entity.RoleRecruiter:
		r := &entity.Recruiter{ID: subject, Name: name, Email: email, Company: strings.TrimSpace(in.Company), Position: strings.TrimSpace(in.Position), CreatedAt: now, UpdatedAt: now}
		r.Normalize()
		err = s.Repo.CreateRecruiter(ctx, r)
		p = &entity.Principal{ID: subject, Role: entity.RoleRecruiter, Recruiter: r}
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("Profile already exists.")
		}
		return nil, apperror.Internal("failed to create profile", err)
	}
	loggerOr(s.Logger).WithFields(logrus.Fields{"user_id": subject, "role": in.Role}).Info("profile registered")
	return p, nil
}

func (s *ProfileService) GetMe(ctx context.Context, id string) (*entity.Principal, error) {
	return s.ResolvePrincipal(ctx, id)
}

// UpdateMe merges in onto the caller's profile. id, role, email and
// createdAt never change.
func (s *ProfileService) UpdateMe(ctx context.Context, id string, in ProfileUpdateInput) (*entity.Principal, error) {
	p, err := s.ResolvePrincipal(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperror.Validation("invalid payload", map[string]string{"name": "is required"})
	}
	switch p.Role {
	case entity.RoleCandidate:
		c := p.Candidate
		mergeCandidate(c, in)
		c.UpdatedAt = time.Now().UTC()
		err = s.Repo.UpdateCandidate(ctx, c)
	case entity.RoleRecruiter:
		r := p.Recruiter
		mergeRecruiter(r, in)
		r.UpdatedAt = time.Now().UTC()
		err = s.Repo.UpdateRecruiter(ctx, r)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("User profile not found.")
		}
		return nil, apperror.Internal("failed to update profile", err)
	}
	return p, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func mergeCandidate(c *entity.Candidate, in ProfileUpdateInput) {
	setString(&c.Name, in.Name)
	setString(&c.Location, in.Location)
	setString(&c.Headline, in.Headline)
	if in.Skills != nil {
		c.Skills = in.Skills
	}
	if in.Education != nil {
		c.Education = in.Education
	}
	if in.WorkExperience != nil {
		c.WorkExperience = in.WorkExperience
	}
	if in.Profile != nil {
		setString(&c.Profile.ResumeURL, in.Profile.ResumeURL)
		setString(&c.Profile.ProfilePicURL, in.Profile.ProfilePicURL)
	}
	if in.SocialLinks != nil {
		c.SocialLinks = in.SocialLinks
	}
}

func mergeRecruiter(r *entity.Recruiter, in ProfileUpdateInput) {
	setString(&r.Name, in.Name)
	setString(&r.Company, in.Company)
	setString(&r.Position, in.Position)
	setString(&r.CompanyLogo, in.CompanyLogo)
	setString(&r.Description, in.Description)
	setString(&r.Website, in.Website)
	if in.Locations != nil {
		r.Locations = in.Locations
	}
}

// ToggleSaved saves internshipID for the candidate or removes it when already
// saved. Only an existing posting can be saved; a stale id can still be removed.
func (s *ProfileService) ToggleSaved(ctx context.Context, candidateID, internshipID string) ([]string, bool, error) {
	internshipID = strings.TrimSpace(internshipID)
	if internshipID == "" {
		return nil, false, apperror.BadRequest("Internship id is required.")
	}
	c, err := s.Repo.GetCandidate(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, apperror.NotFound("Candidate not found.")
		}
		return nil, false, apperror.Internal("failed to load candidate", err)
	}
	if !c.HasSaved(internshipID) {
		if _, err := s.Internships.GetByID(ctx, internshipID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, false, apperror.NotFound("Internship not found.")
			}
			return nil, false, apperror.Internal("failed to load internship", err)
		}
	}
	saved, added, err := s.Repo.ToggleSavedInternship(ctx, candidateID, internshipID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, apperror.NotFound("Candidate not found.")
		}
		return nil, false, apperror.Internal("failed to update saved internships", err)
	}
	return saved, added, nil
}

// ListSaved returns the saved postings in saved order, skipping deleted ones.
func (s *ProfileService) ListSaved(ctx context.Context, candidateID string) ([]*entity.Internship, error) {
	c, err := s.Repo.GetCandidate(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found.")
		}
		return nil, apperror.Internal("failed to load candidate", err)
	}
	found, err := s.Internships.GetByIDs(ctx, c.SavedInternships)
	if err != nil {
		return nil, apperror.Internal("failed to load internships", err)
	}
	out := make([]*entity.Internship, 0, len(found))
	for _, id := range c.SavedInternships {
		if i, ok := found[id]; ok {
			out = append(out, i)
		}
	}
	return out, nil
}

// UploadResume stores a PDF/DOC/DOCX resume and points profile.resumeUrl at it.
func (s *ProfileService) UploadResume(ctx context.Context, candidateID, filename string, size int64, r io.Reader) (*entity.Candidate, error) {
	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := resumeTypes[ext]
	if !ok {
		return nil, apperror.BadRequest("Only PDF, DOC and DOCX files are allowed.")
	}
	if size <= 0 || size > MaxResumeBytes {
		return nil, apperror.BadRequest("Resume must be between 1 byte and 5 MB.")
	}
	if s.Storage == nil {
		return nil, apperror.Internal("file storage not configured", nil)
	}
	c, err := s.Repo.GetCandidate(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("Candidate not found.")
		}
		return nil, apperror.Internal("failed to load candidate", err)
	}
	objectPath := path.Join("resumes", candidateID, uuid.NewString()+ext)
	url, err := s.Storage.Upload(ctx, objectPath, contentType, io.LimitReader(r, MaxResumeBytes))
	if err != nil {
		return nil, apperror.Internal("failed to store resume", err)
	}
	c.Profile.ResumeURL = url
	c.UpdatedAt = time.Now().UTC()
	if err := s.Repo.UpdateCandidate(ctx, c); err != nil {
		return nil, apperror.Internal("failed to update profile", err)
	}
	loggerOr(s.Logger).WithFields(logrus.Fields{"user_id": candidateID, "object": objectPath}).Info("resume uploaded")
	return c, nil
}
