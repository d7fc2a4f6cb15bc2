package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id uuid.UUID, upd *model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LocationRepository interface {
	Create(ctx context.Context, location *model.Location) error
	List(ctx context.Context) ([]*model.Location, error)
	TripleExists(ctx context.Context, state, district, area string) (bool, error)
}

type ClinicRepository interface {
	Create(ctx context.Context, clinic *model.Clinic) error
	Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	List(ctx context.Context) ([]*model.Clinic, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error)
	List(ctx context.Context) ([]*model.Doctor, error)
	Update(ctx context.Context, id uuid.UUID, upd *model.DoctorUpdate) (*model.Doctor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, upd *model.AppointmentUpdate) (*model.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenStore tracks revoked tokens until their natural expiry.
type TokenStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
