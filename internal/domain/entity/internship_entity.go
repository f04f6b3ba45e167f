package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// stipend amounts travel as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type InternshipStatus string

const (
	InternshipActive InternshipStatus = "Active"
	InternshipClosed InternshipStatus = "Closed"
)

func (s InternshipStatus) Valid() bool {
	return s == InternshipActive || s == InternshipClosed
}

type Stipend struct {
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	Currency string          `json:"currency"`
	Interval string          `json:"interval"`
}

type WorkDetails struct {
	WorkingDays string `json:"workingDays"`
	Schedule    string `json:"schedule"`
}

type InternshipType struct {
	Type   string `json:"type"`
	Timing string `json:"timing"`
}

// Stats.Applied is maintained by the store alongside application inserts;
// posting updates never write it.
type Stats struct {
	Applied     int `json:"applied"`
	Openings    int `json:"openings"`
	Impressions int `json:"impressions"`
}

// Internship is a posting owned by exactly one recruiter.
type Internship struct {
	ID                      string           `json:"id"`
	RecruiterID             string           `json:"recruiterId"`
	Company                 string           `json:"company"`
	Logo                    string           `json:"logo"`
	CompanyDescription      string           `json:"companyDescription"`
	Title                   string           `json:"title"`
	Location                string           `json:"location"`
	Duration                string           `json:"duration"`
	Stipend                 Stipend          `json:"stipend"`
	WorkDetails             WorkDetails      `json:"workDetails"`
	InternshipType          InternshipType   `json:"internshipType"`
	Eligibility             []string         `json:"eligibility"`
	Responsibilities        []string         `json:"responsibilities"`
	Requirements            []string         `json:"requirements"`
	SkillsAndQualifications []string         `json:"skillsAndQualifications"`
	Perks                   []string         `json:"perks"`
	ApplicationDeadline     time.Time        `json:"applicationDeadline"`
	Status                  InternshipStatus `json:"status"`
	Stats                   Stats            `json:"stats"`
	PostedOn                time.Time        `json:"postedOn"`
	UpdatedOn               time.Time        `json:"updatedOn"`
}

func (i *Internship) Normalize() {
	for _, s := range []*[]string{&i.Eligibility, &i.Responsibilities, &i.Requirements, &i.SkillsAndQualifications, &i.Perks} {
		if *s == nil {
			*s = []string{}
		}
	}
	if i.Status == "" {
		i.Status = InternshipActive
	}
}
