package blogs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/dbx"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
)

const columns = `id, slug, title, excerpt, content, author, category, tags, image, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*models.Blog, error) {
	b := &models.Blog{}
	var tags []byte
	err := row.Scan(&b.ID, &b.Slug, &b.Title, &b.Excerpt, &b.Content, &b.Author,
		&b.Category, &tags, &b.Image, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if b.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	return b, nil
}

// Tags are kept as a JSON array so their order survives the round trip.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	return string(b), err
}

func decodeTags(raw []byte) ([]string, error) {
	tags := make([]string, 0)
	if len(raw) == 0 {
		return tags, nil
	}
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return tags, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows), dbx.IsInvalidText(err):
		return common.ErrorNotFound
	case dbx.IsUniqueViolation(err):
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	tags, err := encodeTags(b.Tags)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO blogs (id, slug, title, excerpt, content, author, category, tags, image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		b.ID, b.Slug, b.Title, b.Excerpt, b.Content, b.Author, b.Category, tags, b.Image,
	).Scan(&b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		return nil, mapError(err)
	}

	return b, nil
}

// Update rewrites every editable field of the post with id b.ID. The slug and
// creation time are left alone.
func (r *PostgresRepository) Update(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	tags, err := encodeTags(b.Tags)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE blogs
		 SET title = $2, excerpt = $3, content = $4, author = $5, category = $6, tags = $7, image = $8, updated_at = now()
		 WHERE id = $1
		 RETURNING ` + columns

	updated, err := scan(r.db.QueryRowContext(ctx, query,
		b.ID, b.Title, b.Excerpt, b.Content, b.Author, b.Category, tags, b.Image))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Blog, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+columns+` FROM blogs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Blog, 0)
	for rows.Next() {
		b, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	b, err := scan(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM blogs WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	b, err := scan(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM blogs WHERE slug = $1`, slug))
	if err != nil {
		return nil, mapError(err)
	}
	return b, nil
}

func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM blogs WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
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
