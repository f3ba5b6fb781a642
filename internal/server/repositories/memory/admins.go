package memory

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
)

type AdminRepository struct {
	s *Store
}

func (r *AdminRepository) Upsert(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := strings.ToLower(admin.Email)
	if existing, ok := r.s.admins[key]; ok {
		existing.PasswordHash = admin.PasswordHash
		out := *existing
		return &out, nil
	}

	stored := *admin
	stored.CreatedAt = r.s.now()
	r.s.admins[key] = &stored
	out := stored
	return &out, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.admins[strings.ToLower(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *a
	return &out, nil
}
