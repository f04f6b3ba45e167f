package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/domain/repository"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const candidateColumns = `id, name, email, headline, location, skills, education, work_experience,
	saved_internships, profile, social_links, created_at, updated_at`

func scanCandidate(row pgx.Row) (*entity.Candidate, error) {
	c := &entity.Candidate{}
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Headline, &c.Location, &c.Skills, &c.Education,
		&c.WorkExperience, &c.SavedInternships, &c.Profile, &c.SocialLinks, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	c.Normalize()
	return c, nil
}

func (r *ProfileRepository) CreateCandidate(ctx context.Context, c *entity.Candidate) error {
	c.Normalize()
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO candidates (`+candidateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, c.ID, c.Name, c.Email, c.Headline, c.Location, c.Skills, c.Education, c.WorkExperience,
		c.SavedInternships, c.Profile, c.SocialLinks, c.CreatedAt, c.UpdatedAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *ProfileRepository) GetCandidate(ctx context.Context, id string) (*entity.Candidate, error) {
	return scanCandidate(r.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id))
}

func (r *ProfileRepository) GetCandidates(ctx context.Context, ids []string) (map[string]*entity.Candidate, error) {
	out := make(map[string]*entity.Candidate, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	return out, rows.Err()
}

// UpdateCandidate overwrites the editable fields. The saved list is only
// changed through ToggleSavedInternship.
func (r *ProfileRepository) UpdateCandidate(ctx context.Context, c *entity.Candidate) error {
	c.Normalize()
	c.UpdatedAt = time.Now().UTC()
	res, err := r.pool.Exec(ctx, `
		UPDATE candidates
		SET name = $1, email = $2, headline = $3, location = $4, skills = $5, education = $6,
		    work_experience = $7, profile = $8, social_links = $9, updated_at = $10
		WHERE id = $11
	`, c.Name, c.Email, c.Headline, c.Location, c.Skills, c.Education, c.WorkExperience,
		c.Profile, c.SocialLinks, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) ToggleSavedInternship(ctx context.Context, candidateID, internshipID string) ([]string, bool, error) {
	var saved []string
	var added bool
	err := r.pool.QueryRow(ctx, `
		UPDATE candidates
		SET saved_internships = CASE
		        WHEN saved_internships ? $2::text THEN saved_internships - $2::text
		        ELSE saved_internships || to_jsonb($2::text)
		    END,
		    updated_at = now()
		WHERE id = $1
		RETURNING saved_internships, saved_internships ? $2::text
	`, candidateID, internshipID).Scan(&saved, &added)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, repository.ErrNotFound
		}
		return nil, false, err
	}
	if saved == nil {
		saved = []string{}
	}
	return saved, added, nil
}

const recruiterColumns = `id, name, email, company, position, company_logo, description, website,
	locations, created_at, updated_at`

func scanRecruiter(row pgx.Row) (*entity.Recruiter, error) {
	rc := &entity.Recruiter{}
	if err := row.Scan(&rc.ID, &rc.Name, &rc.Email, &rc.Company, &rc.Position, &rc.CompanyLogo,
		&rc.Description, &rc.Website, &rc.Locations, &rc.CreatedAt, &rc.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	rc.Normalize()
	return rc, nil
}

func (r *ProfileRepository) CreateRecruiter(ctx context.Context, rc *entity.Recruiter) error {
	rc.Normalize()
	now := time.Now().UTC()
	rc.CreatedAt, rc.UpdatedAt = now, now
	_, err := r.pool.Exec(ctx, `
		INSERT INTO recruiters (`+recruiterColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, rc.ID, rc.Name, rc.Email, rc.Company, rc.Position, rc.CompanyLogo, rc.Description, rc.Website,
		rc.Locations, rc.CreatedAt, rc.UpdatedAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *ProfileRepository) GetRecruiter(ctx context.Context, id string) (*entity.Recruiter, error) {
	return scanRecruiter(r.pool.QueryRow(ctx, `SELECT `+recruiterColumns+` FROM recruiters WHERE id = $1`, id))
}

func (r *ProfileRepository) UpdateRecruiter(ctx context.Context, rc *entity.Recruiter) error {
	rc.Normalize()
	rc.UpdatedAt = time.Now().UTC()
	res, err := r.pool.Exec(ctx, `
		UPDATE recruiters
		SET name = $1, email = $2, company = $3, position = $4, company_logo = $5,
		    description = $6, website = $7, locations = $8, updated_at = $9
		WHERE id = $10
	`, rc.Name, rc.Email, rc.Company, rc.Position, rc.CompanyLogo, rc.Description, rc.Website,
		rc.Locations, rc.UpdatedAt, rc.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
