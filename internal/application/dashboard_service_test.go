package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.recruiter(t, "r1", "Acme")
	f.recruiter(t, "r2", "Globex")
	f.candidate(t, "c1")
	f.candidate(t, "c2")
	p1 := f.posting(t, "r1", "Alpha")
	p2 := f.posting(t, "r1", "Beta")
	other := f.posting(t, "r2", "Other")

	a1 := f.apply(t, "c1", p1.ID)
	f.apply(t, "c2", p1.ID)
	f.apply(t, "c1", p2.ID)
	f.apply(t, "c1", other.ID)
	_, _, err := f.applications.Transition(ctx, "r1", a1.ID, "Shortlisted")
	require.NoError(t, err)

	st, err := f.dashboard.Stats(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalPostedJobs)
	assert.Equal(t, 3, st.TotalApplicants)
	assert.Equal(t, 1, st.TotalShortlisted)
	assert.Equal(t, 3, st.NewApplicants)

	// two days later nothing is new
	later := f.clock.Now().Add(48 * time.Hour)
	f.dashboard.Now = func() time.Time { return later }
	st, err = f.dashboard.Stats(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 0, st.NewApplicants)
}

func TestRecentApplicants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.recruiter(t, "r1", "Acme")
	p := f.posting(t, "r1", "Alpha")
	var last string
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5", "c6"} {
		f.candidate(t, id)
		last = f.apply(t, id, p.ID).ID
	}

	list, err := f.dashboard.RecentApplicants(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, list, RecentApplicantsLimit)
	assert.Equal(t, last, list[0].ID)
	assert.Equal(t, "Alpha", list[0].InternshipTitle)
	assert.Equal(t, "Candidate c6", list[0].CandidateDetails.Name)

	require.NoError(t, f.internships.Delete(ctx, "r1", p.ID))
	list, err = f.dashboard.RecentApplicants(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, NotAvailable, list[0].InternshipTitle)

	empty, err := f.dashboard.RecentApplicants(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
