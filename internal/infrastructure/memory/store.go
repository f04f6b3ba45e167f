// Package memory is an in-process store with the same guarantees as the
// Postgres repositories. It backs STORE_DRIVER=memory and the tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/domain/repository"
)

// Store holds every collection behind one mutex so Submit can update the
// posting counter and the application set together.
type Store struct {
	mu           sync.Mutex
	candidates   map[string]*entity.Candidate
	recruiters   map[string]*entity.Recruiter
	internships  map[string]*entity.Internship
	applications map[string]*entity.Application
	pairs        map[pairKey]string
}

type pairKey struct{ candidateID, internshipID string }

func NewStore() *Store {
	return &Store{
		candidates:   map[string]*entity.Candidate{},
		recruiters:   map[string]*entity.Recruiter{},
		internships:  map[string]*entity.Internship{},
		applications: map[string]*entity.Application{},
		pairs:        map[pairKey]string{},
	}
}

func (s *Store) Profiles() *ProfileRepository         { return &ProfileRepository{s: s} }
func (s *Store) Internships() *InternshipRepository   { return &InternshipRepository{s: s} }
func (s *Store) Applications() *ApplicationRepository { return &ApplicationRepository{s: s} }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

func cloneCandidate(c *entity.Candidate) *entity.Candidate {
	cp := *c
	cp.Skills = cloneStrings(c.Skills)
	cp.SavedInternships = cloneStrings(c.SavedInternships)
	cp.Education = append([]entity.Education(nil), c.Education...)
	cp.WorkExperience = append([]entity.WorkExperience(nil), c.WorkExperience...)
	if c.SocialLinks != nil {
		cp.SocialLinks = make(map[string]string, len(c.SocialLinks))
		for k, v := range c.SocialLinks {
			cp.SocialLinks[k] = v
		}
	}
	cp.Normalize()
	return &cp
}

func cloneRecruiter(r *entity.Recruiter) *entity.Recruiter {
	cp := *r
	cp.Locations = cloneStrings(r.Locations)
	cp.Normalize()
	return &cp
}

func cloneInternship(i *entity.Internship) *entity.Internship {
	cp := *i
	cp.Eligibility = cloneStrings(i.Eligibility)
	cp.Responsibilities = cloneStrings(i.Responsibilities)
	cp.Requirements = cloneStrings(i.Requirements)
	cp.SkillsAndQualifications = cloneStrings(i.SkillsAndQualifications)
	cp.Perks = cloneStrings(i.Perks)
	cp.Normalize()
	return &cp
}

func cloneApplication(a *entity.Application) *entity.Application {
	cp := *a
	return &cp
}

type ProfileRepository struct{ s *Store }

func (r *ProfileRepository) CreateCandidate(_ context.Context, c *entity.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.candidates[c.ID]; ok {
		return repository.ErrDuplicate
	}
	c.Normalize()
	r.s.candidates[c.ID] = cloneCandidate(c)
	return nil
}

func (r *ProfileRepository) CreateRecruiter(_ context.Context, rc *entity.Recruiter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.recruiters[rc.ID]; ok {
		return repository.ErrDuplicate
	}
	rc.Normalize()
	r.s.recruiters[rc.ID] = cloneRecruiter(rc)
	return nil
}

func (r *ProfileRepository) GetCandidate(_ context.Context, id string) (*entity.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCandidate(c), nil
}

func (r *ProfileRepository) GetRecruiter(_ context.Context, id string) (*entity.Recruiter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rc, ok := r.s.recruiters[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneRecruiter(rc), nil
}

func (r *ProfileRepository) GetCandidates(_ context.Context, ids []string) (map[string]*entity.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]*entity.Candidate, len(ids))
	for _, id := range ids {
		if c, ok := r.s.candidates[id]; ok {
			out[id] = cloneCandidate(c)
		}
	}
	return out, nil
}

func (r *ProfileRepository) UpdateCandidate(_ context.Context, c *entity.Candidate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.candidates[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	next := cloneCandidate(c)
	next.SavedInternships = cloneStrings(cur.SavedInternships)
	next.CreatedAt = cur.CreatedAt
	r.s.candidates[c.ID] = next
	c.SavedInternships = cloneStrings(cur.SavedInternships)
	return nil
}

func (r *ProfileRepository) UpdateRecruiter(_ context.Context, rc *entity.Recruiter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.recruiters[rc.ID]
	if !ok {
		return repository.ErrNotFound
	}
	next := cloneRecruiter(rc)
	next.CreatedAt = cur.CreatedAt
	r.s.recruiters[rc.ID] = next
	return nil
}

func (r *ProfileRepository) ToggleSavedInternship(_ context.Context, candidateID, internshipID string) ([]string, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.candidates[candidateID]
	if !ok {
		return nil, false, repository.ErrNotFound
	}
	added := !c.HasSaved(internshipID)
	if added {
		c.SavedInternships = append(c.SavedInternships, internshipID)
	} else {
		kept := make([]string, 0, len(c.SavedInternships))
		for _, id := range c.SavedInternships {
			if id != internshipID {
				kept = append(kept, id)
			}
		}
		c.SavedInternships = kept
	}
	return cloneStrings(c.SavedInternships), added, nil
}

type InternshipRepository struct{ s *Store }

func (r *InternshipRepository) Create(_ context.Context, i *entity.Internship) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.internships[i.ID]; ok {
		return repository.ErrDuplicate
	}
	i.Normalize()
	r.s.internships[i.ID] = cloneInternship(i)
	return nil
}

func (r *InternshipRepository) GetByID(_ context.Context, id string) (*entity.Internship, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.internships[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneInternship(i), nil
}

func (r *InternshipRepository) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Internship, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]*entity.Internship, len(ids))
	for _, id := range ids {
		if i, ok := r.s.internships[id]; ok {
			out[id] = cloneInternship(i)
		}
	}
	return out, nil
}

func (r *InternshipRepository) Update(_ context.Context, i *entity.Internship) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.internships[i.ID]
	if !ok {
		return repository.ErrNotFound
	}
	next := cloneInternship(i)
	next.RecruiterID = cur.RecruiterID
	next.PostedOn = cur.PostedOn
	next.Stats.Applied = cur.Stats.Applied
	r.s.internships[i.ID] = next
	i.Stats.Applied = cur.Stats.Applied
	return nil
}

func (r *InternshipRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.internships[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.internships, id)
	return nil
}

func (r *InternshipRepository) list(keep func(*entity.Internship) bool) []*entity.Internship {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Internship, 0)
	for _, i := range r.s.internships {
		if keep(i) {
			out = append(out, cloneInternship(i))
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if !out[a].UpdatedOn.Equal(out[b].UpdatedOn) {
			return out[a].UpdatedOn.After(out[b].UpdatedOn)
		}
		return out[a].ID < out[b].ID
	})
	return out
}

func (r *InternshipRepository) ListActive(_ context.Context) ([]*entity.Internship, error) {
	return r.list(func(i *entity.Internship) bool { return i.Status == entity.InternshipActive }), nil
}

func (r *InternshipRepository) ListByRecruiter(_ context.Context, recruiterID string) ([]*entity.Internship, error) {
	return r.list(func(i *entity.Internship) bool { return i.RecruiterID == recruiterID }), nil
}

type ApplicationRepository struct{ s *Store }

func (r *ApplicationRepository) Submit(_ context.Context, a *entity.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	posting, ok := r.s.internships[a.InternshipID]
	if !ok {
		return repository.ErrNotFound
	}
	key := pairKey{a.CandidateID, a.InternshipID}
	if _, dup := r.s.pairs[key]; dup {
		return repository.ErrDuplicate
	}
	a.RecruiterID = posting.RecruiterID
	r.s.applications[a.ID] = cloneApplication(a)
	r.s.pairs[key] = a.ID
	// counter only; UpdatedOn is not bumped
	posting.Stats.Applied++
	return nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id string) (*entity.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneApplication(a), nil
}

func (r *ApplicationRepository) list(limit int, keep func(*entity.Application) bool) []*entity.Application {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Application, 0)
	for _, a := range r.s.applications {
		if keep(a) {
			out = append(out, cloneApplication(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppliedOn.Equal(out[j].AppliedOn) {
			return out[i].AppliedOn.After(out[j].AppliedOn)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *ApplicationRepository) ListForInternship(_ context.Context, internshipID, recruiterID string) ([]*entity.Application, error) {
	return r.list(0, func(a *entity.Application) bool {
		return a.InternshipID == internshipID && a.RecruiterID == recruiterID
	}), nil
}

func (r *ApplicationRepository) ListByCandidate(_ context.Context, candidateID string, limit int) ([]*entity.Application, error) {
	return r.list(limit, func(a *entity.Application) bool { return a.CandidateID == candidateID }), nil
}

func (r *ApplicationRepository) ListByRecruiter(_ context.Context, recruiterID string, limit int) ([]*entity.Application, error) {
	return r.list(limit, func(a *entity.Application) bool { return a.RecruiterID == recruiterID }), nil
}

func (r *ApplicationRepository) UpdateStatus(_ context.Context, id string, status entity.ApplicationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Status = status
	a.IsRead = false
	return nil
}

func (r *ApplicationRepository) MarkRead(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.applications[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.IsRead = true
	return nil
}

var (
	_ repository.ProfileRepository     = (*ProfileRepository)(nil)
	_ repository.InternshipRepository  = (*InternshipRepository)(nil)
	_ repository.ApplicationRepository = (*ApplicationRepository)(nil)
)
