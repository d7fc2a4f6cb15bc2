package clinic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type Service struct {
	repo repository.ClinicRepository
}

func NewService(repo repository.ClinicRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListClinics(ctx context.Context) ([]*model.Clinic, error) {
	clinics, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range clinics {
		if err := unmarshalJSONFields(c); err != nil {
			return nil, err
		}
	}
	return clinics, nil
}

func (s *Service) GetClinic(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	clinic, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSONFields(clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

func (s *Service) CreateClinic(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error) {
	clinic := &model.Clinic{
		Name:           req.Name,
		Address:        req.Address,
		ContactInfo:    req.ContactInfo,
		LocationID:     req.LocationID,
		AdminID:        req.AdminID,
		Status:         model.ClinicStatusActive,
		Facilities:     req.Facilities,
		OperatingHours: req.OperatingHours,
	}

	if err := marshalJSONFields(clinic); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

func marshalJSONFields(c *model.Clinic) error {
	if c.Facilities == nil {
		c.Facilities = []string{}
	}
	if c.OperatingHours == nil {
		c.OperatingHours = map[string]string{}
	}

	facilities, err := json.Marshal(c.Facilities)
	if err != nil {
		return fmt.Errorf("failed to marshal facilities: %w", err)
	}
	hours, err := json.Marshal(c.OperatingHours)
	if err != nil {
		return fmt.Errorf("failed to marshal operating hours: %w", err)
	}

	c.FacilitiesJSON = string(facilities)
	c.OperatingHoursJSON = string(hours)
	return nil
}

func unmarshalJSONFields(c *model.Clinic) error {
	c.Facilities = []string{}
	c.OperatingHours = map[string]string{}

	if c.FacilitiesJSON != "" {
		if err := json.Unmarshal([]byte(c.FacilitiesJSON), &c.Facilities); err != nil {
			return fmt.Errorf("failed to unmarshal facilities: %w", err)
		}
	}
	if c.OperatingHoursJSON != "" {
		if err := json.Unmarshal([]byte(c.OperatingHoursJSON), &c.OperatingHours); err != nil {
			return fmt.Errorf("failed to unmarshal operating hours: %w", err)
		}
	}
	return nil
}
