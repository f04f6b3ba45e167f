package entity

import "time"

// Role partitions the profile store. It is fixed when the profile is created.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleRecruiter
}

const DefaultCompanyLogo = "/icons/default-logo.png"

type Education struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldOfStudy"`
	StartYear    string `json:"startYear"`
	EndYear      string `json:"endYear"`
}

type WorkExperience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// CandidateProfile holds uploaded documents of a candidate.
type CandidateProfile struct {
	ResumeURL     string `json:"resumeUrl"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
}

// Candidate is keyed by the identity provider subject.
type Candidate struct {
	ID               string            `json:"id"`
	Role             Role              `json:"role"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	Headline         string            `json:"headline"`
	Location         string            `json:"location"`
	Skills           []string          `json:"skills"`
	Education        []Education       `json:"education"`
	WorkExperience   []WorkExperience  `json:"workExperience"`
	SavedInternships []string          `json:"savedInternships"`
	Profile          CandidateProfile  `json:"profile"`
	SocialLinks      map[string]string `json:"socialLinks"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// CandidateDetails is the view of a candidate shown to recruiters.
// The saved list stays private to the candidate.
type CandidateDetails struct {
	ID             string            `json:"id,omitempty"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Headline       string            `json:"headline,omitempty"`
	Location       string            `json:"location,omitempty"`
	Skills         []string          `json:"skills,omitempty"`
	Education      []Education       `json:"education,omitempty"`
	WorkExperience []WorkExperience  `json:"workExperience,omitempty"`
	Profile        *CandidateProfile `json:"profile,omitempty"`
	SocialLinks    map[string]string `json:"socialLinks,omitempty"`
}

func (c *Candidate) Details() CandidateDetails {
	p := c.Profile
	return CandidateDetails{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Headline:       c.Headline,
		Location:       c.Location,
		Skills:         c.Skills,
		Education:      c.Education,
		WorkExperience: c.WorkExperience,
		Profile:        &p,
		SocialLinks:    c.SocialLinks,
	}
}

// UnknownCandidate stands in for an applicant whose profile is gone.
func UnknownCandidate(placeholder string) CandidateDetails {
	return CandidateDetails{Name: placeholder, Email: placeholder}
}

// HasSaved reports whether internshipID is in the saved list.
func (c *Candidate) HasSaved(internshipID string) bool {
	for _, id := range c.SavedInternships {
		if id == internshipID {
			return true
		}
	}
	return false
}

// Normalize replaces nil collections so the stored document never holds nulls.
func (c *Candidate) Normalize() {
	c.Role = RoleCandidate
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Education == nil {
		c.Education = []Education{}
	}
	if c.WorkExperience == nil {
		c.WorkExperience = []WorkExperience{}
	}
	if c.SavedInternships == nil {
		c.SavedInternships = []string{}
	}
	if c.SocialLinks == nil {
		c.SocialLinks = map[string]string{}
	}
}

type Recruiter struct {
	ID          string    `json:"id"`
	Role        Role      `json:"role"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	CompanyLogo string    `json:"companyLogo"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	Locations   []string  `json:"locations"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r *Recruiter) Normalize() {
	r.Role = RoleRecruiter
	if r.Locations == nil {
		r.Locations = []string{}
	}
	if r.CompanyLogo == "" {
		r.CompanyLogo = DefaultCompanyLogo
	}
}

// Principal is the caller resolved from a verified bearer token.
// Exactly one of Candidate or Recruiter is set, matching Role.
type Principal struct {
	ID        string
	Role      Role
	Candidate *Candidate
	Recruiter *Recruiter
}

func (p *Principal) Name() string {
	switch {
	case p.Candidate != nil:
		return p.Candidate.Name
	case p.Recruiter != nil:
		return p.Recruiter.Name
	}
	return ""
}

func (p *Principal) Email() string {
	switch {
	case p.Candidate != nil:
		return p.Candidate.Email
	case p.Recruiter != nil:
		return p.Recruiter.Email
	}
	return ""
}
