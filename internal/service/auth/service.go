package auth

import (
	"context"

	"github.com/google/uuid"

	pkgauth "github.com/clinicore/clinic-api/pkg/auth"
	apperr "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/security"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type Service struct {
	users   repository.UserRepository
	tokens  pkgauth.TokenService
	hasher  security.PasswordHasher
	revoked repository.TokenStore
}

// NewService wires the credential flow. revoked may be nil, in which case
// logout is a no-op.
func NewService(users repository.UserRepository, tokens pkgauth.TokenService,
	hasher security.PasswordHasher, revoked repository.TokenStore) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		hasher:  hasher,
		revoked: revoked,
	}
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password fail identically so callers cannot probe for registered emails.
func (s *Service) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperr.NewUnauthorized("invalid credentials")
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperr.NewUnauthorized("invalid credentials")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperr.NewInternal(err)
	}

	user.PasswordHash = ""
	return &model.LoginResponse{Token: token, User: user}, nil
}

// Profile returns the caller's own record.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Logout revokes the presented token. The revocation TTL is the maximum
// token lifetime, an upper bound on how long the entry is needed.
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.revoked == nil {
		return nil
	}
	return s.revoked.Revoke(ctx, token, pkgauth.DefaultTokenExpiry)
}
