package doctor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	apperr "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/security"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type Service struct {
	repo   repository.DoctorRepository
	cipher security.FieldCipher
}

func NewService(repo repository.DoctorRepository, cipher security.FieldCipher) *Service {
	return &Service{repo: repo, cipher: cipher}
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		s.decryptFields(d)
	}
	return doctors, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.decryptFields(doctor)
	return doctor, nil
}

func (s *Service) CreateDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	slots, err := marshalSlots(req.AvailableSlots)
	if err != nil {
		return nil, err
	}

	doctor := &model.Doctor{
		UserID:         req.UserID,
		ClinicID:       req.ClinicID,
		Name:           req.Name,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Qualification:  req.Qualification,
		Description:    req.Description,
		AvailableSlots: req.AvailableSlots,
		DescriptionEnc: s.cipher.SafeEncrypt(req.Description),
		SlotsJSON:      slots,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	if req.IsEmpty() {
		return nil, apperr.NewValidation("no fields provided")
	}

	upd := &model.DoctorUpdate{
		ClinicID:       req.ClinicID,
		Name:           req.Name,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Qualification:  req.Qualification,
	}

	if req.Description != nil {
		enc := s.cipher.SafeEncrypt(*req.Description)
		upd.DescriptionEnc = &enc
	}

	if req.AvailableSlots != nil {
		slots, err := marshalSlots(*req.AvailableSlots)
		if err != nil {
			return nil, err
		}
		upd.SlotsJSON = &slots
	}

	doctor, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.decryptFields(doctor)
	return doctor, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// decryptFields resolves the at-rest representation into display fields.
// Decryption failures degrade to empty strings rather than failing the read.
func (s *Service) decryptFields(d *model.Doctor) {
	d.Description = s.cipher.SafeDecrypt(d.DescriptionEnc)

	if d.Email != nil && security.IsCipherToken(*d.Email) {
		email := s.cipher.SafeDecrypt(*d.Email)
		d.Email = &email
	}
	if d.Phone != nil && security.IsCipherToken(*d.Phone) {
		phone := s.cipher.SafeDecrypt(*d.Phone)
		d.Phone = &phone
	}

	d.AvailableSlots = []model.DaySlots{}
	if d.SlotsJSON != "" {
		// Display field; a corrupt blob renders as no slots.
		_ = json.Unmarshal([]byte(d.SlotsJSON), &d.AvailableSlots)
	}
}

func marshalSlots(slots []model.DaySlots) (string, error) {
	if slots == nil {
		slots = []model.DaySlots{}
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return "", fmt.Errorf("failed to marshal available slots: %w", err)
	}
	return string(raw), nil
}
