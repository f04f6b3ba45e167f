package application

import (
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/domain/repository"
	"github.com/oksasatya/careerconnect-api/pkg/apperror"
)

const DefaultCategoryIcon = "/icons/default.png"

var categorySuffix = regexp.MustCompile(`(?i) (Intern|Developer|Analyst|Designer|Specialist|Manager)`)

type Company struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type Category struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

// CatalogService derives the browse filters (companies, categories,
// locations) from the active postings.
type CatalogService struct {
	Internships repository.InternshipRepository
	Logger      *logrus.Logger
}

func NewCatalogService(internships repository.InternshipRepository, logger *logrus.Logger) *CatalogService {
	return &CatalogService{Internships: internships, Logger: logger}
}

func (s *CatalogService) active(ctx context.Context) ([]*entity.Internship, error) {
	list, err := s.Internships.ListActive(ctx)
	if err != nil {
		return nil, apperror.Internal("failed to list internships", err)
	}
	return list, nil
}

// Companies is distinct by case-insensitive name; the first logo seen wins.
func (s *CatalogService) Companies(ctx context.Context) ([]Company, error) {
	list, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	out := []Company{}
	for _, i := range list {
		name := strings.TrimSpace(i.Company)
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Company{Name: name, Logo: orDefault(i.Logo, entity.DefaultCompanyLogo)})
	}
	return out, nil
}

// CategoryOf cuts a title at its role word: "Data Science Intern" is "Data Science".
func CategoryOf(title string) string {
	title = strings.TrimSpace(title)
	if loc := categorySuffix.FindStringIndex(title); loc != nil {
		if head := strings.TrimSpace(title[:loc[0]]); head != "" {
			return head
		}
	}
	return title
}

func (s *CatalogService) Categories(ctx context.Context) ([]Category, error) {
	list, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	out := []Category{}
	for _, i := range list {
		c := CategoryOf(i.Title)
		if c == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(c)]; ok {
			continue
		}
		seen[strings.ToLower(c)] = struct{}{}
		out = append(out, Category{Title: c, Image: DefaultCategoryIcon})
	}
	return out, nil
}

func (s *CatalogService) Locations(ctx context.Context) ([]string, error) {
	list, err := s.active(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	out := []string{}
	for _, i := range list {
		loc := strings.TrimSpace(i.Location)
		if loc == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(loc)]; ok {
			continue
		}
		seen[strings.ToLower(loc)] = struct{}{}
		out = append(out, loc)
	}
	return out, nil
}
