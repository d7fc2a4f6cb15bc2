package model

import (
	"github.com/google/uuid"
)

// AppointmentStatus is an open set; the listed values are the ones the
// API itself assigns.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	Base
	PatientID uuid.UUID         `json:"patient_id" db:"patient_id"`
	DoctorID  uuid.UUID         `json:"doctor_id" db:"doctor_id"`
	ClinicID  *uuid.UUID        `json:"clinic_id,omitempty" db:"clinic_id"`
	Date      string            `json:"date" db:"date"`
	Time      string            `json:"time" db:"time"`
	Status    AppointmentStatus `json:"status" db:"status"`
	Reason    string            `json:"reason" db:"reason"`
	Notes     string            `json:"notes" db:"notes"`
}

type CreateAppointmentRequest struct {
	PatientID *uuid.UUID `json:"patient_id"`
	DoctorID  uuid.UUID  `json:"doctor_id" binding:"required"`
	ClinicID  *uuid.UUID `json:"clinic_id"`
	Date      string     `json:"date" binding:"required,datetime=2006-01-02"`
	Time      string     `json:"time" binding:"required,datetime=15:04"`
	Reason    string     `json:"reason"`
}

type UpdateAppointmentRequest struct {
	Date   *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time   *string `json:"time" binding:"omitempty,datetime=15:04"`
	Status *string `json:"status"`
	Reason *string `json:"reason"`
	Notes  *string `json:"notes"`
}

func (r *UpdateAppointmentRequest) IsEmpty() bool {
	return r.Date == nil && r.Time == nil && r.Status == nil &&
		r.Reason == nil && r.Notes == nil
}

// AppointmentUpdate is the typed field-update set consumed by the repository.
type AppointmentUpdate struct {
	Date   *string
	Time   *string
	Status *AppointmentStatus
	Reason *string
	Notes  *string
}

// AppointmentFilter scopes listings to the requesting identity.
type AppointmentFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}
