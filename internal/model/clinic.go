package model

import (
	"github.com/google/uuid"
)

// Clinic status constants
const (
	ClinicStatusActive   = "active"
	ClinicStatusInactive = "inactive"
)

// Clinic holds facilities and operating hours as JSON text columns; the
// structured fields are (de)serialized at the service boundary.
type Clinic struct {
	Base
	Name           string            `json:"name" db:"name"`
	Address        string            `json:"address" db:"address"`
	ContactInfo    string            `json:"contact_info" db:"contact_info"`
	LocationID     *uuid.UUID        `json:"location_id,omitempty" db:"location_id"`
	AdminID        uuid.UUID         `json:"admin_id" db:"admin_id"`
	Status         string            `json:"status" db:"status"`
	Facilities     []string          `json:"facilities" db:"-"`
	OperatingHours map[string]string `json:"operating_hours" db:"-"`

	FacilitiesJSON     string `json:"-" db:"facilities"`
	OperatingHoursJSON string `json:"-" db:"operating_hours"`
}

type CreateClinicRequest struct {
	Name           string            `json:"name" binding:"required"`
	Address        string            `json:"address" binding:"required"`
	ContactInfo    string            `json:"contact_info"`
	LocationID     *uuid.UUID        `json:"location_id"`
	AdminID        uuid.UUID         `json:"admin_id" binding:"required"`
	Facilities     []string          `json:"facilities"`
	OperatingHours map[string]string `json:"operating_hours"`
}
