package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperr "github.com/clinicore/clinic-api/pkg/errors"

	"github.com/clinicore/clinic-api/internal/model"
	"github.com/clinicore/clinic-api/internal/repository"
)

// doctorColumns joins the owning user's contact fields into every read.
const doctorColumns = `
	d.id, d.user_id, d.clinic_id, d.name, d.specialization, d.experience,
	d.qualification, d.description, d.available_slots, d.created_at, d.updated_at,
	u.email AS email, u.phone AS phone
`

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (id, user_id, clinic_id, name, specialization, experience,
			qualification, description, available_slots, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = doctor.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.UserID,
		doctor.ClinicID,
		doctor.Name,
		doctor.Specialization,
		doctor.Experience,
		doctor.Qualification,
		doctor.DescriptionEnc,
		doctor.SlotsJSON,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM doctors d
		LEFT JOIN users u ON u.id = d.user_id
		WHERE d.id = $1
	`, doctorColumns)

	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NewNotFound("doctor")
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM doctors d
		LEFT JOIN users u ON u.id = d.user_id
		WHERE d.user_id = $1
	`, doctorColumns)

	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NewNotFound("doctor")
		}
		return nil, fmt.Errorf("failed to get doctor by user: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM doctors d
		LEFT JOIN users u ON u.id = d.user_id
		ORDER BY d.id
	`, doctorColumns)

	doctors := []*model.Doctor{}
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, id uuid.UUID, upd *model.DoctorUpdate) (*model.Doctor, error) {
	sets := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.ClinicID != nil {
		add("clinic_id", *upd.ClinicID)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Specialization != nil {
		add("specialization", *upd.Specialization)
	}
	if upd.Experience != nil {
		add("experience", *upd.Experience)
	}
	if upd.Qualification != nil {
		add("qualification", *upd.Qualification)
	}
	if upd.DescriptionEnc != nil {
		add("description", *upd.DescriptionEnc)
	}
	if upd.SlotsJSON != nil {
		add("available_slots", *upd.SlotsJSON)
	}

	if len(sets) == 0 {
		return nil, apperr.NewValidation("no fields provided")
	}
	add("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE doctors SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, apperr.NewNotFound("doctor")
	}

	return r.Get(ctx, id)
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.NewNotFound("doctor")
	}
	return nil
}
