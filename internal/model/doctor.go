package model

import (
	"github.com/google/uuid"
)

// DaySlots is one entry of a doctor's weekly availability.
type DaySlots struct {
	Day   string   `json:"day"`
	Times []string `json:"times"`
}

// Doctor links a doctor-role user to a clinic. The description is encrypted
// at rest; available slots are persisted as a JSON text column. Email and
// phone are joined in from the owning user on read paths.
type Doctor struct {
	Base
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	ClinicID       *uuid.UUID `json:"clinic_id,omitempty" db:"clinic_id"`
	Name           string     `json:"name" db:"name"`
	Specialization string     `json:"specialization" db:"specialization"`
	Experience     int        `json:"experience" db:"experience"`
	Qualification  string     `json:"qualification" db:"qualification"`
	Description    string     `json:"description" db:"-"`
	AvailableSlots []DaySlots `json:"available_slots" db:"-"`

	DescriptionEnc string  `json:"-" db:"description"`
	SlotsJSON      string  `json:"-" db:"available_slots"`
	Email          *string `json:"email,omitempty" db:"email"`
	Phone          *string `json:"phone,omitempty" db:"phone"`
}

type CreateDoctorRequest struct {
	UserID         uuid.UUID  `json:"user_id" binding:"required"`
	ClinicID       *uuid.UUID `json:"clinic_id"`
	Name           string     `json:"name" binding:"required"`
	Specialization string     `json:"specialization" binding:"required"`
	Experience     int        `json:"experience"`
	Qualification  string     `json:"qualification"`
	Description    string     `json:"description"`
	AvailableSlots []DaySlots `json:"available_slots"`
}

type UpdateDoctorRequest struct {
	ClinicID       *uuid.UUID  `json:"clinic_id"`
	Name           *string     `json:"name"`
	Specialization *string     `json:"specialization"`
	Experience     *int        `json:"experience"`
	Qualification  *string     `json:"qualification"`
	Description    *string     `json:"description"`
	AvailableSlots *[]DaySlots `json:"available_slots"`
}

func (r *UpdateDoctorRequest) IsEmpty() bool {
	return r.ClinicID == nil && r.Name == nil && r.Specialization == nil &&
		r.Experience == nil && r.Qualification == nil &&
		r.Description == nil && r.AvailableSlots == nil
}

// DoctorUpdate is the typed field-update set consumed by the repository;
// the description arrives already encrypted and slots already serialized.
type DoctorUpdate struct {
	ClinicID       *uuid.UUID
	Name           *string
	Specialization *string
	Experience     *int
	Qualification  *string
	DescriptionEnc *string
	SlotsJSON      *string
}
