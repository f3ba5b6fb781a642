package admins

import (
	"context"

	"github.com/dmitrijs2005/wastecms/internal/server/models"
)

type Repository interface {
	// Upsert creates the admin or, when the email is taken, replaces its
	// password hash. The stored record is returned.
	Upsert(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}
