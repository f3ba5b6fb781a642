package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/cryptox"
	"github.com/dmitrijs2005/wastecms/internal/dbx"
	"github.com/dmitrijs2005/wastecms/internal/logging"
	"github.com/dmitrijs2005/wastecms/internal/server/auth"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthService signs admins in and verifies their bearer tokens.
type AuthService struct {
	db                          dbx.DBTX
	repomanager                 repomanager.RepositoryManager
	log                         logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration

	// dummyHash keeps unknown-email logins as slow as wrong-password ones.
	dummyHash string
}

func NewAuthService(db dbx.DBTX, m repomanager.RepositoryManager, log logging.Logger, secret string, ttl time.Duration) *AuthService {
	random, _ := common.MakeRandHexString(16)
	dummy, _ := cryptox.HashPassword(random)
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		log:                         log,
		jwtSecret:                   []byte(secret),
		accessTokenValidityDuration: ttl,
		dummyHash:                   dummy,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SeedAdmin creates the admin account or resets its password.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: admin email is required", common.ErrorValidation)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	admin, err := s.repomanager.Admins(s.db).Upsert(ctx, &models.Admin{ID: uuid.NewString(), Email: email, PasswordHash: hash})
	if err != nil {
		return fmt.Errorf("error seeding admin: %w", err)
	}

	s.log.Info(ctx, "admin account ready", "email", admin.Email, "id", admin.ID)
	return nil
}

// Login checks the credentials and returns a signed access token. Unknown
// emails and wrong passwords both yield common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	admin, err := s.repomanager.Admins(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			cryptox.CheckPassword(s.dummyHash, password)
			return "", common.ErrorUnauthorized
		}
		s.log.Error(ctx, "admin lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	if !cryptox.CheckPassword(admin.PasswordHash, password) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(admin.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Authenticate returns the admin id a token was issued for. Any failure is
// reported as common.ErrorUnauthorized wrapping the reason.
func (s *AuthService) Authenticate(token string) (string, error) {
	id, err := auth.GetAdminIDFromToken(token, s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return id, nil
}
