package testimonials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/dbx"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
)

const columns = `id, name, position, company, industry, testimonial, rating, image, status, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Testimonial, error) {
	t := &models.Testimonial{}
	var status string
	err := row.Scan(&t.ID, &t.Name, &t.Position, &t.Company, &t.Industry,
		&t.Testimonial, &t.Rating, &t.Image, &status, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Status = models.Status(status)
	return t, nil
}

// mapError turns a lookup failure into common.ErrorNotFound where the id
// cannot match any row.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Testimonial) (*models.Testimonial, error) {
	query :=
		`INSERT INTO testimonials (id, name, position, company, industry, testimonial, rating, image, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.Name, t.Position, t.Company, t.Industry, t.Testimonial, t.Rating, t.Image, string(t.Status),
	).Scan(&t.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Testimonial, error) {
	query := `SELECT ` + columns + ` FROM testimonials ORDER BY created_at DESC`
	return r.query(ctx, query)
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, status models.Status) ([]models.Testimonial, error) {
	query := `SELECT ` + columns + ` FROM testimonials WHERE status = $1 ORDER BY created_at DESC`
	return r.query(ctx, query, string(status))
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]models.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Testimonial, 0)
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	query := `SELECT ` + columns + ` FROM testimonials WHERE id = $1`

	t, err := scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Testimonial, error) {
	query := `UPDATE testimonials SET status = $2 WHERE id = $1 RETURNING ` + columns

	t, err := scan(r.db.QueryRowContext(ctx, query, id, string(status)))
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
