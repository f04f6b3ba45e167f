package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
)

func TestCategoryOf(t *testing.T) {
	cases := map[string]string{
		"Data Science Intern":   "Data Science",
		"Frontend developer":    "Frontend",
		"UI/UX Designer Intern": "UI/UX",
		"Marketing":             "Marketing",
		"  Product Manager  ":   "Product",
		"Intern":                "Intern",
	}
	for in, want := range cases {
		assert.Equal(t, want, CategoryOf(in), in)
	}
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.recruiter(t, "r1", "Acme")
	f.recruiter(t, "r2", "acme")
	f.recruiter(t, "r3", "Globex")
	f.posting(t, "r1", "Data Science Intern")
	f.posting(t, "r2", "Data Science Analyst")
	closed := f.posting(t, "r3", "Backend Developer")
	_, err := f.internships.Update(ctx, "r3", closed.ID, InternshipInput{Status: ptr(entity.InternshipClosed)})
	require.NoError(t, err)

	svc := NewCatalogService(f.store.Internships(), quietLogger())

	companies, err := svc.Companies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1, "closed postings and case duplicates are skipped")
	assert.Equal(t, entity.DefaultCompanyLogo, companies[0].Logo)

	cats, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Category{{Title: "Data Science", Image: DefaultCategoryIcon}}, cats)

	locs, err := svc.Locations(ctx)
	require.NoError(t, err)
	assert.Len(t, locs, 1)
}
