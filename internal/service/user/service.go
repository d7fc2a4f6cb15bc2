package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperr "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/security"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type Service struct {
	repo   repository.UserRepository
	hasher security.PasswordHasher
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *Service) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, apperr.NewValidation(err.Error())
	}

	// Fast-path duplicate checks; the unique constraint remains the
	// enforcement point under concurrent creates.
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperr.NewDuplicate("email already registered")
	}

	if req.Phone != "" {
		exists, err = s.repo.PhoneExists(ctx, req.Phone)
		if err != nil {
			return nil, fmt.Errorf("failed to check phone: %w", err)
		}
		if exists {
			return nil, apperr.NewDuplicate("phone already registered")
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperr.NewValidation(err.Error())
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Name:         req.Name,
		Phone:        req.Phone,
		Status:       model.UserStatusActive,
		ClinicID:     req.ClinicID,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, req *model.UpdateUserRequest) (*model.User, error) {
	if req.IsEmpty() {
		return nil, apperr.NewValidation("no fields provided")
	}

	upd := &model.UserUpdate{
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Status:   req.Status,
		ClinicID: req.ClinicID,
	}

	if req.Role != nil {
		role, err := model.ParseRole(*req.Role)
		if err != nil {
			return nil, apperr.NewValidation(err.Error())
		}
		upd.Role = &role
	}

	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, apperr.NewValidation(err.Error())
		}
		upd.PasswordHash = &hash
	}

	user, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
