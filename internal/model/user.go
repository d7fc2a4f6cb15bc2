package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ParseRole validates and converts a raw role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleDoctor, RolePatient:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User represents a system user. The password hash never leaves the
// service: it is excluded from JSON and from list projections.
type User struct {
	Base
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         Role       `json:"role" db:"role"`
	Name         string     `json:"name" db:"name"`
	Phone        string     `json:"phone" db:"phone"`
	Status       string     `json:"status" db:"status"`
	ClinicID     *uuid.UUID `json:"clinic_id,omitempty" db:"clinic_id"`
}

// CreateUserRequest represents user creation parameters
type CreateUserRequest struct {
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=8"`
	Role     string     `json:"role" binding:"required,role"`
	Name     string     `json:"name" binding:"required"`
	Phone    string     `json:"phone"`
	ClinicID *uuid.UUID `json:"clinic_id"`
}

// UpdateUserRequest represents a partial user update; only the supplied
// fields are written.
type UpdateUserRequest struct {
	Email    *string    `json:"email" binding:"omitempty,email"`
	Password *string    `json:"password" binding:"omitempty,min=8"`
	Role     *string    `json:"role" binding:"omitempty,role"`
	Name     *string    `json:"name"`
	Phone    *string    `json:"phone"`
	Status   *string    `json:"status" binding:"omitempty,oneof=active inactive"`
	ClinicID *uuid.UUID `json:"clinic_id"`
}

func (r *UpdateUserRequest) IsEmpty() bool {
	return r.Email == nil && r.Password == nil && r.Role == nil &&
		r.Name == nil && r.Phone == nil && r.Status == nil && r.ClinicID == nil
}

// UserUpdate is the typed field-update set consumed by the repository.
// Every field maps to a known column; nil means untouched.
type UserUpdate struct {
	Email        *string
	PasswordHash *string
	Role         *Role
	Name         *string
	Phone        *string
	Status       *string
	ClinicID     *uuid.UUID
}
