package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationStatus(t *testing.T) {
	cases := map[string]ApplicationStatus{
		"Applied":               StatusApplied,
		"shortlisted":           StatusShortlisted,
		"  REJECTED ":           StatusRejected,
		"interview_scheduled":   StatusInterviewScheduled,
		"Interview-Scheduled":   StatusInterviewScheduled,
		"interview   scheduled": StatusInterviewScheduled,
		"hired":                 StatusHired,
	}
	for raw, want := range cases {
		got, err := ParseApplicationStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, bad := range []string{"", "pending", "shortlist"} {
		_, err := ParseApplicationStatus(bad)
		assert.Error(t, err, bad)
	}
}

func TestCanTransition(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, CanTransition(s, s), "same state %s", s)
		if s != StatusApplied {
			assert.True(t, CanTransition(StatusApplied, s), "applied -> %s", s)
			assert.False(t, CanTransition(s, StatusApplied), "%s -> applied", s)
		}
	}
	assert.True(t, CanTransition(StatusRejected, StatusShortlisted))
	assert.True(t, CanTransition(StatusShortlisted, StatusHired))
	assert.True(t, CanTransition(StatusHired, StatusRejected))
}

func TestNotificationFor(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	_, ok := NotificationFor(Application{ID: "a1", Status: StatusApplied, AppliedOn: at}, "Go Intern")
	assert.False(t, ok)

	n, ok := NotificationFor(Application{ID: "a2", Status: StatusShortlisted, AppliedOn: at, IsRead: true}, "Go Intern")
	require.True(t, ok)
	assert.Equal(t, "a2", n.ID)
	assert.Equal(t, "Your application for 'Go Intern' was Shortlisted.", n.Message)
	assert.True(t, n.Read)
	assert.Equal(t, at, n.Date)
}

func TestNormalizeFillsCollections(t *testing.T) {
	c := &Candidate{ID: "c1"}
	c.Normalize()
	assert.Equal(t, RoleCandidate, c.Role)
	assert.NotNil(t, c.Skills)
	assert.NotNil(t, c.SavedInternships)
	assert.NotNil(t, c.SocialLinks)

	r := &Recruiter{ID: "r1"}
	r.Normalize()
	assert.Equal(t, DefaultCompanyLogo, r.CompanyLogo)
	assert.NotNil(t, r.Locations)

	i := &Internship{ID: "i1"}
	i.Normalize()
	assert.Equal(t, InternshipActive, i.Status)
	assert.NotNil(t, i.Eligibility)
}

func TestDetailsHidesSavedList(t *testing.T) {
	c := &Candidate{ID: "c1", Name: "Asha", Email: "asha@example.com", SavedInternships: []string{"i1"}}
	d := c.Details()
	assert.Equal(t, "Asha", d.Name)
	assert.Equal(t, "asha@example.com", d.Email)
	require.NotNil(t, d.Profile)

	u := UnknownCandidate("Unknown")
	assert.Equal(t, "Unknown", u.Name)
	assert.Equal(t, "Unknown", u.Email)
}
