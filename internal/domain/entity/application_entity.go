package entity

import (
	"fmt"
	"strings"
	"time"
)

// ApplicationStatus is the closed set of states an application moves through.
type ApplicationStatus string

const (
	StatusApplied            ApplicationStatus = "Applied"
	StatusShortlisted        ApplicationStatus = "Shortlisted"
	StatusInterviewScheduled ApplicationStatus = "Interview Scheduled"
	StatusRejected           ApplicationStatus = "Rejected"
	StatusHired              ApplicationStatus = "Hired"
)

var AllStatuses = []ApplicationStatus{
	StatusApplied,
	StatusShortlisted,
	StatusInterviewScheduled,
	StatusRejected,
	StatusHired,
}

// transitions lists the states a recruiter may move to from each state.
// Applied is initial only; review states can be revised freely.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusApplied:            {StatusShortlisted, StatusInterviewScheduled, StatusRejected, StatusHired},
	StatusShortlisted:        {StatusInterviewScheduled, StatusRejected, StatusHired},
	StatusInterviewScheduled: {StatusShortlisted, StatusRejected, StatusHired},
	StatusRejected:           {StatusShortlisted, StatusInterviewScheduled, StatusHired},
	StatusHired:              {StatusShortlisted, StatusInterviewScheduled, StatusRejected},
}

// ParseApplicationStatus accepts any casing and "_" or "-" for spaces,
// e.g. "shortlisted" or "interview_scheduled".
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	norm = strings.Join(strings.Fields(norm), " ")
	for _, s := range AllStatuses {
		if strings.ToLower(string(s)) == norm {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown application status %q", raw)
}

// CanTransition reports whether from -> to is allowed. Staying in the same
// state is always allowed.
func CanTransition(from, to ApplicationStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Application links one candidate to one posting. RecruiterID is copied from
// the posting when the application is stored.
type Application struct {
	ID           string            `json:"id"`
	CandidateID  string            `json:"candidateId"`
	InternshipID string            `json:"internshipId"`
	RecruiterID  string            `json:"recruiterId"`
	Status       ApplicationStatus `json:"status"`
	AppliedOn    time.Time         `json:"appliedOn"`
	IsRead       bool              `json:"isRead"`
}
