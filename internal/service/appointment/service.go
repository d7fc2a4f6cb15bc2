package appointment

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperr "github.com/clinicore/clinic-api/pkg/errors"

	"github.com/clinicore/clinic-api/internal/email"
	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

type Service struct {
	repo     repository.AppointmentRepository
	doctors  repository.DoctorRepository
	users    repository.UserRepository
	notifier email.Notifier
	logger   zerolog.Logger
}

func NewService(repo repository.AppointmentRepository, doctors repository.DoctorRepository,
	users repository.UserRepository, notifier email.Notifier, logger zerolog.Logger) *Service {
	if notifier == nil {
		notifier = email.NoopNotifier{}
	}
	return &Service{
		repo:     repo,
		doctors:  doctors,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// ListAppointments scopes the listing to the requesting identity: patients
// see their own, doctors see their own schedule, admins see everything.
func (s *Service) ListAppointments(ctx context.Context, identity *model.TokenClaims) ([]*model.Appointment, error) {
	filter := &model.AppointmentFilter{}

	switch identity.Role {
	case model.RoleAdmin:
	case model.RolePatient:
		filter.PatientID = &identity.UserID
	case model.RoleDoctor:
		doctor, err := s.doctors.GetByUserID(ctx, identity.UserID)
		if err != nil {
			if apperr.Is(err, apperr.ErrNotFound) {
				return []*model.Appointment{}, nil
			}
			return nil, err
		}
		filter.DoctorID = &doctor.ID
	default:
		return nil, apperr.NewForbidden("insufficient permissions")
	}

	return s.repo.List(ctx, filter)
}

func (s *Service) CreateAppointment(ctx context.Context, identity *model.TokenClaims, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patientID := identity.UserID
	if req.PatientID != nil {
		patientID = *req.PatientID
	}

	// A patient can only book for themselves.
	if identity.Role == model.RolePatient && patientID != identity.UserID {
		return nil, apperr.NewOwnership()
	}

	appointment := &model.Appointment{
		PatientID: patientID,
		DoctorID:  req.DoctorID,
		ClinicID:  req.ClinicID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    model.AppointmentStatusPending,
		Reason:    req.Reason,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.notify(ctx, appointment)
	return appointment, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, identity *model.TokenClaims, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if req.IsEmpty() {
		return nil, apperr.NewValidation("no fields provided")
	}

	if err := s.authorize(ctx, identity, id); err != nil {
		return nil, err
	}

	upd := &model.AppointmentUpdate{
		Date:   req.Date,
		Time:   req.Time,
		Reason: req.Reason,
		Notes:  req.Notes,
	}
	if req.Status != nil {
		status := model.AppointmentStatus(*req.Status)
		upd.Status = &status
	}

	return s.repo.Update(ctx, id, upd)
}

func (s *Service) DeleteAppointment(ctx context.Context, identity *model.TokenClaims, id uuid.UUID) error {
	if err := s.authorize(ctx, identity, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// authorize enforces ownership on top of the role check: a patient may act
// only on their own appointments, a doctor only on those of the doctor
// record owned by their user, admins are exempt.
func (s *Service) authorize(ctx context.Context, identity *model.TokenClaims, id uuid.UUID) error {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	switch identity.Role {
	case model.RoleAdmin:
		return nil
	case model.RolePatient:
		if appointment.PatientID != identity.UserID {
			return apperr.NewOwnership()
		}
		return nil
	case model.RoleDoctor:
		doctor, err := s.doctors.GetByUserID(ctx, identity.UserID)
		if err != nil {
			if apperr.Is(err, apperr.ErrNotFound) {
				return apperr.NewOwnership()
			}
			return err
		}
		if appointment.DoctorID != doctor.ID {
			return apperr.NewOwnership()
		}
		return nil
	}
	return apperr.NewForbidden("insufficient permissions")
}

// notify sends the confirmation email off the request path; failures are
// logged, never surfaced.
func (s *Service) notify(ctx context.Context, appointment *model.Appointment) {
	patient, err := s.users.Get(ctx, appointment.PatientID)
	if err != nil || patient.Email == "" {
		return
	}

	go func(to string, appt model.Appointment) {
		if err := s.notifier.SendAppointmentConfirmation(to, &appt); err != nil {
			s.logger.Warn().Err(err).
				Str("appointment_id", appt.ID.String()).
				Msg("failed to send appointment confirmation")
		}
	}(patient.Email, *appointment)
}
