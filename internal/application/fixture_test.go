package application

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/infrastructure/memory"
)

type recordingNotifier struct {
	mu      sync.Mutex
	changes []StatusChange
	err     error
}

func (n *recordingNotifier) StatusChanged(_ context.Context, c StatusChange) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, c)
	return n.err
}

func (n *recordingNotifier) all() []StatusChange {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]StatusChange(nil), n.changes...)
}

// clock hands out strictly increasing times.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fixture struct {
	store        *memory.Store
	clock        *clock
	notifier     *recordingNotifier
	profiles     *ProfileService
	internships  *InternshipService
	applications *ApplicationService
	dashboard    *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	clk := newClock()
	n := &recordingNotifier{}
	log := quietLogger()
	f := &fixture{
		store:        s,
		clock:        clk,
		notifier:     n,
		profiles:     NewProfileService(s.Profiles(), s.Internships(), nil, log),
		internships:  NewInternshipService(s.Internships(), s.Profiles(), nil, log),
		applications: NewApplicationService(s.Applications(), s.Internships(), s.Profiles(), n, log, DefaultNotificationsLimit),
		dashboard:    NewDashboardService(s.Applications(), s.Internships(), s.Profiles(), log),
	}
	f.internships.Now = clk.Now
	f.applications.Now = clk.Now
	f.dashboard.Now = clk.Now
	return f
}

func (f *fixture) recruiter(t *testing.T, id, company string) {
	t.Helper()
	_, err := f.profiles.Register(context.Background(), id, id+"@example.com", RegisterInput{Name: "Recruiter " + id, Role: entity.RoleRecruiter, Company: company})
	require.NoError(t, err)
}

func (f *fixture) candidate(t *testing.T, id string) {
	t.Helper()
	_, err := f.profiles.Register(context.Background(), id, id+"@example.com", RegisterInput{Name: "Candidate " + id, Role: entity.RoleCandidate})
	require.NoError(t, err)
}

func (f *fixture) posting(t *testing.T, recruiterID, title string) *entity.Internship {
	t.Helper()
	i, err := f.internships.Create(context.Background(), recruiterID, InternshipInput{Title: &title})
	require.NoError(t, err)
	return i
}

func (f *fixture) apply(t *testing.T, candidateID, internshipID string) *entity.Application {
	t.Helper()
	a, err := f.applications.Submit(context.Background(), candidateID, internshipID)
	require.NoError(t, err)
	return a
}
