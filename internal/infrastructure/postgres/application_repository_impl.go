package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/careerconnect-api/internal/domain/entity"
	"github.com/oksasatya/careerconnect-api/internal/domain/repository"
)

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

const applicationColumns = `id, candidate_id, internship_id, recruiter_id, status, applied_on, is_read`

func scanApplication(row pgx.Row) (*entity.Application, error) {
	a := &entity.Application{}
	if err := row.Scan(&a.ID, &a.CandidateID, &a.InternshipID, &a.RecruiterID, &a.Status, &a.AppliedOn, &a.IsRead); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func collectApplications(rows pgx.Rows) ([]*entity.Application, error) {
	defer rows.Close()
	out := make([]*entity.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Submit runs the counter increment and the insert in one transaction. The
// increment goes first so the posting row lock orders concurrent submitters
// and a duplicate insert rolls the increment back. updated_on is left alone.
func (r *ApplicationRepository) Submit(ctx context.Context, a *entity.Application) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		UPDATE internships
		SET stats_applied = stats_applied + 1
		WHERE id = $1
		RETURNING recruiter_id
	`, a.InternshipID).Scan(&a.RecruiterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}

	res, err := tx.Exec(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ON CONSTRAINT applications_candidate_internship_key DO NOTHING
	`, a.ID, a.CandidateID, a.InternshipID, a.RecruiterID, a.Status, a.AppliedOn, a.IsRead)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrDuplicate
	}
	return tx.Commit(ctx)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	return scanApplication(r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
}

func (r *ApplicationRepository) ListForInternship(ctx context.Context, internshipID, recruiterID string) ([]*entity.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE internship_id = $1 AND recruiter_id = $2
		ORDER BY applied_on DESC, id
	`, internshipID, recruiterID)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID string, limit int) ([]*entity.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE candidate_id = $1
		ORDER BY applied_on DESC, id
		LIMIT NULLIF($2::int, 0)
	`, candidateID, max(limit, 0))
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByRecruiter(ctx context.Context, recruiterID string, limit int) ([]*entity.Application, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE recruiter_id = $1
		ORDER BY applied_on DESC, id
		LIMIT NULLIF($2::int, 0)
	`, recruiterID, max(limit, 0))
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus) error {
	res, err := r.pool.Exec(ctx, `UPDATE applications SET status = $1, is_read = false WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepository) MarkRead(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `UPDATE applications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)
