package admins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/dbx"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	query :=
		`INSERT INTO admins (id, email, password_hash)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		admin.ID, admin.Email, admin.PasswordHash).Scan(&admin.ID, &admin.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return admin, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query :=
		`SELECT id, email, password_hash, created_at FROM admins
		 WHERE email = $1
		 `

	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return admin, nil
}
