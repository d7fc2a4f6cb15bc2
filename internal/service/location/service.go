package location

import (
	"context"
	"fmt"

	apperr "github.com/clinicore/clinic-api/pkg/errors"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type Service struct {
	repo repository.LocationRepository
}

func NewService(repo repository.LocationRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListLocations(ctx context.Context) ([]*model.Location, error) {
	return s.repo.List(ctx)
}

func (s *Service) CreateLocation(ctx context.Context, req *model.CreateLocationRequest) (*model.Location, error) {
	exists, err := s.repo.TripleExists(ctx, req.State, req.District, req.Area)
	if err != nil {
		return nil, fmt.Errorf("failed to check location: %w", err)
	}
	if exists {
		return nil, apperr.NewDuplicate("location already exists")
	}

	location := &model.Location{
		State:    req.State,
		District: req.District,
		Area:     req.Area,
	}
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}
