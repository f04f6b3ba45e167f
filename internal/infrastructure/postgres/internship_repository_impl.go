package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/domain/repository"
)

type InternshipRepository struct {
	pool *pgxpool.Pool
}

func NewInternshipRepository(pool *pgxpool.Pool) *InternshipRepository {
	return &InternshipRepository{pool: pool}
}

const internshipColumns = `id, recruiter_id, company, logo, company_description, title, location, duration,
	stipend_min, stipend_max, stipend_currency, stipend_interval, work_details, internship_type,
	eligibility, responsibilities, requirements, skills_and_qualifications, perks,
	application_deadline, status, stats_applied, stats_openings, stats_impressions, posted_on, updated_on`

func scanInternship(row pgx.Row) (*entity.Internship, error) {
	i := &entity.Internship{}
	if err := row.Scan(&i.ID, &i.RecruiterID, &i.Company, &i.Logo, &i.CompanyDescription, &i.Title,
		&i.Location, &i.Duration, &i.Stipend.Min, &i.Stipend.Max, &i.Stipend.Currency, &i.Stipend.Interval,
		&i.WorkDetails, &i.InternshipType, &i.Eligibility, &i.Responsibilities, &i.Requirements,
		&i.SkillsAndQualifications, &i.Perks, &i.ApplicationDeadline, &i.Status, &i.Stats.Applied,
		&i.Stats.Openings, &i.Stats.Impressions, &i.PostedOn, &i.UpdatedOn); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	i.Normalize()
	return i, nil
}

func collectInternships(rows pgx.Rows) ([]*entity.Internship, error) {
	defer rows.Close()
	out := make([]*entity.Internship, 0)
	for rows.Next() {
		i, err := scanInternship(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *InternshipRepository) Create(ctx context.Context, i *entity.Internship) error {
	i.Normalize()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO internships (`+internshipColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
		        $20, $21, $22, $23, $24, $25, $26)
	`, i.ID, i.RecruiterID, i.Company, i.Logo, i.CompanyDescription, i.Title, i.Location, i.Duration,
		i.Stipend.Min, i.Stipend.Max, i.Stipend.Currency, i.Stipend.Interval, i.WorkDetails, i.InternshipType,
		i.Eligibility, i.Responsibilities, i.Requirements, i.SkillsAndQualifications, i.Perks,
		i.ApplicationDeadline, i.Status, i.Stats.Applied, i.Stats.Openings, i.Stats.Impressions,
		i.PostedOn, i.UpdatedOn)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *InternshipRepository) GetByID(ctx context.Context, id string) (*entity.Internship, error) {
	return scanInternship(r.pool.QueryRow(ctx, `SELECT `+internshipColumns+` FROM internships WHERE id = $1`, id))
}

func (r *InternshipRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Internship, error) {
	out := make(map[string]*entity.Internship, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+internshipColumns+` FROM internships WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	list, err := collectInternships(rows)
	if err != nil {
		return nil, err
	}
	for _, i := range list {
		out[i.ID] = i
	}
	return out, nil
}

// Update leaves stats_applied alone; Submit owns that counter. The in-memory
// value is refreshed from the row so callers see the current count.
func (r *InternshipRepository) Update(ctx context.Context, i *entity.Internship) error {
	i.Normalize()
	err := r.pool.QueryRow(ctx, `
		UPDATE internships
		SET company = $1, logo = $2, company_description = $3, title = $4, location = $5, duration = $6,
		    stipend_min = $7, stipend_max = $8, stipend_currency = $9, stipend_interval = $10,
		    work_details = $11, internship_type = $12, eligibility = $13, responsibilities = $14,
		    requirements = $15, skills_and_qualifications = $16, perks = $17,
		    application_deadline = $18, status = $19, stats_openings = $20, stats_impressions = $21,
		    updated_on = $22
		WHERE id = $23
		RETURNING stats_applied
	`, i.Company, i.Logo, i.CompanyDescription, i.Title, i.Location, i.Duration,
		i.Stipend.Min, i.Stipend.Max, i.Stipend.Currency, i.Stipend.Interval,
		i.WorkDetails, i.InternshipType, i.Eligibility, i.Responsibilities,
		i.Requirements, i.SkillsAndQualifications, i.Perks,
		i.ApplicationDeadline, i.Status, i.Stats.Openings, i.Stats.Impressions,
		i.UpdatedOn, i.ID).Scan(&i.Stats.Applied)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func (r *InternshipRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM internships WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *InternshipRepository) ListActive(ctx context.Context) ([]*entity.Internship, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+internshipColumns+`
		FROM internships
		WHERE status = $1
		ORDER BY updated_on DESC, id
	`, entity.InternshipActive)
	if err != nil {
		return nil, err
	}
	return collectInternships(rows)
}

func (r *InternshipRepository) ListByRecruiter(ctx context.Context, recruiterID string) ([]*entity.Internship, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+internshipColumns+`
		FROM internships
		WHERE recruiter_id = $1
		ORDER BY updated_on DESC, id
	`, recruiterID)
	if err != nil {
		return nil, err
	}
	return collectInternships(rows)
}

var _ repository.InternshipRepository = (*InternshipRepository)(nil)
