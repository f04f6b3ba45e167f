package application

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/pkg/apperror"
)

type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	err     error
}

func (m *memStorage) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects, m.types = map[string][]byte{}, map[string]string{}
	}
	m.objects[objectPath] = b
	m.types[objectPath] = contentType
	return "https://storage.example.com/bucket/" + objectPath, nil
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.profiles.Register(ctx, "u1", "token@example.com", RegisterInput{Name: " Asha ", Role: entity.RoleCandidate})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCandidate, p.Role)
	require.NotNil(t, p.Candidate)
	assert.Equal(t, "Asha", p.Candidate.Name)
	assert.Equal(t, "token@example.com", p.Candidate.Email)
	assert.Empty(t, p.Candidate.SavedInternships)
	assert.Empty(t, p.Candidate.Profile.ResumeURL)

	_, err = f.profiles.Register(ctx, "u1", "token@example.com", RegisterInput{Name: "Asha", Role: entity.RoleRecruiter})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	r, err := f.profiles.Register(ctx, "u2", "", RegisterInput{Email: "hr@acme.test", Name: "Ravi", Role: entity.RoleRecruiter, Company: "Acme"})
	require.NoError(t, err)
	require.NotNil(t, r.Recruiter)
	assert.Equal(t, entity.DefaultCompanyLogo, r.Recruiter.CompanyLogo)
	assert.Equal(t, "hr@acme.test", r.Email())

	_, err = f.profiles.Register(ctx, "u3", "x@example.com", RegisterInput{Name: "X", Role: "admin"})
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))

	_, err = f.profiles.Register(ctx, "u4", "", RegisterInput{Name: "No Email", Role: entity.RoleCandidate})
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
}

func TestResolvePrincipal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.candidate(t, "c1")
	f.recruiter(t, "r1", "Acme")

	p, err := f.profiles.ResolvePrincipal(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCandidate, p.Role)

	p, err = f.profiles.ResolvePrincipal(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleRecruiter, p.Role)
	assert.Equal(t, "Recruiter r1", p.Name())

	_, err = f.profiles.ResolvePrincipal(ctx, "nobody")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUpdateMeKeepsIdentityFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.candidate(t, "c1")
	p := f.posting(t, mustRecruiter(t, f), "Alpha")
	_, _, err := f.profiles.ToggleSaved(ctx, "c1", p.ID)
	require.NoError(t, err)

	url := "https://cdn.example.com/me.png"
	got, err := f.profiles.UpdateMe(ctx, "c1", ProfileUpdateInput{
		Name:     ptr("Asha K"),
		Skills:   []string{"Go", "SQL"},
		Profile:  &ProfileDocsInput{ProfilePicURL: &url},
		Company:  ptr("ignored for candidates"),
		Headline: ptr("Backend enthusiast"),
	})
	require.NoError(t, err)
	c := got.Candidate
	assert.Equal(t, "Asha K", c.Name)
	assert.Equal(t, "c1@example.com", c.Email)
	assert.Equal(t, []string{"Go", "SQL"}, c.Skills)
	assert.Equal(t, url, c.Profile.ProfilePicURL)
	assert.Equal(t, []string{p.ID}, c.SavedInternships)

	_, err = f.profiles.UpdateMe(ctx, "c1", ProfileUpdateInput{Name: ptr(" ")})
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))
}

func mustRecruiter(t *testing.T, f *fixture) string {
	t.Helper()
	f.recruiter(t, "r-fixture", "Acme")
	return "r-fixture"
}

func TestToggleSavedAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.candidate(t, "c1")
	rid := mustRecruiter(t, f)
	a := f.posting(t, rid, "Alpha")
	b := f.posting(t, rid, "Beta")

	_, _, err := f.profiles.ToggleSaved(ctx, "c1", "missing")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	saved, added, err := f.profiles.ToggleSaved(ctx, "c1", a.ID)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{a.ID}, saved)

	_, _, err = f.profiles.ToggleSaved(ctx, "c1", b.ID)
	require.NoError(t, err)
	require.NoError(t, f.internships.Delete(ctx, rid, b.ID))

	list, err := f.profiles.ListSaved(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	// a deleted posting can still be unsaved
	saved, added, err = f.profiles.ToggleSaved(ctx, "c1", b.ID)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{a.ID}, saved)
}

func TestUploadResume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.candidate(t, "c1")

	_, err := f.profiles.UploadResume(ctx, "c1", "cv.pdf", 10, strings.NewReader("0123456789"))
	assert.True(t, apperror.Is(err, apperror.KindInternal), "storage not configured")

	store := &memStorage{}
	f.profiles.Storage = store

	_, err = f.profiles.UploadResume(ctx, "c1", "cv.exe", 10, strings.NewReader("x"))
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))

	_, err = f.profiles.UploadResume(ctx, "c1", "cv.pdf", MaxResumeBytes+1, strings.NewReader("x"))
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))

	body := []byte("%PDF-1.7 resume")
	c, err := f.profiles.UploadResume(ctx, "c1", "My CV.PDF", int64(len(body)), bytes.NewReader(body))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.Profile.ResumeURL, "https://storage.example.com/bucket/resumes/c1/"))
	assert.True(t, strings.HasSuffix(c.Profile.ResumeURL, ".pdf"))

	require.Len(t, store.objects, 1)
	for path, b := range store.objects {
		assert.Equal(t, body, b)
		assert.Equal(t, "application/pdf", store.types[path])
	}

	me, err := f.profiles.GetMe(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, c.Profile.ResumeURL, me.Candidate.Profile.ResumeURL)

	store.err = errors.New("bucket gone")
	_, err = f.profiles.UploadResume(ctx, "c1", "cv.docx", 4, strings.NewReader("docx"))
	assert.True(t, apperror.Is(err, apperror.KindInternal))
}
