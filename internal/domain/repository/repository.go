package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

type ProfileRepository interface {
	CreateCandidate(ctx context.Context, c *entity.Candidate) error
	CreateRecruiter(ctx context.Context, r *entity.Recruiter) error
	GetCandidate(ctx context.Context, id string) (*entity.Candidate, error)
	GetRecruiter(ctx context.Context, id string) (*entity.Recruiter, error)
	// GetCandidates returns the found candidates keyed by id. Missing ids are
	// simply absent from the map.
	GetCandidates(ctx context.Context, ids []string) (map[string]*entity.Candidate, error)
	UpdateCandidate(ctx context.Context, c *entity.Candidate) error
	UpdateRecruiter(ctx context.Context, r *entity.Recruiter) error
	// ToggleSavedInternship adds internshipID to the saved list or removes it
	// if present, atomically. It returns the resulting list.
	ToggleSavedInternship(ctx context.Context, candidateID, internshipID string) (saved []string, added bool, err error)
}

type InternshipRepository interface {
	Create(ctx context.Context, i *entity.Internship) error
	GetByID(ctx context.Context, id string) (*entity.Internship, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Internship, error)
	// Update writes every field except id, recruiterId, postedOn and stats.applied.
	Update(ctx context.Context, i *entity.Internship) error
	Delete(ctx context.Context, id string) error
	// ListActive returns Active postings ordered by updatedOn descending.
	ListActive(ctx context.Context) ([]*entity.Internship, error)
	ListByRecruiter(ctx context.Context, recruiterID string) ([]*entity.Internship, error)
}

type ApplicationRepository interface {
	// Submit stores a and increments the posting's applied counter as one
	// unit. It fills RecruiterID from the posting. Closed postings still
	// accept applications. It returns ErrNotFound for a missing posting and
	// ErrDuplicate when the candidate already applied.
	Submit(ctx context.Context, a *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	// ListForInternship returns applications to internshipID owned by recruiterID.
	ListForInternship(ctx context.Context, internshipID, recruiterID string) ([]*entity.Application, error)
	// ListByCandidate returns the candidate's applications, newest first.
	// limit <= 0 means no limit.
	ListByCandidate(ctx context.Context, candidateID string, limit int) ([]*entity.Application, error)
	// ListByRecruiter returns applications across the recruiter's postings, newest first.
	ListByRecruiter(ctx context.Context, recruiterID string, limit int) ([]*entity.Application, error)
	// UpdateStatus overwrites status and clears isRead.
	UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus) error
	MarkRead(ctx context.Context, id string) error
}
