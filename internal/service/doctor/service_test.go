package doctor

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/clinicore/clinic-api/pkg/errors"
	"github.com/clinicore/clinic-api/pkg/security"

	"github.com/clinicore/clinic-api/internal/model"
)

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]*model.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uuid.UUID]*model.Doctor)}
}

func (f *fakeDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	d.ID = uuid.New()
	f.doctors[d.ID] = d
	return nil
}

func (f *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, apperr.NewNotFound("doctor")
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDoctorRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Doctor, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, apperr.NewNotFound("doctor")
}

func (f *fakeDoctorRepo) List(_ context.Context) ([]*model.Doctor, error) {
	out := []*model.Doctor{}
	for _, d := range f.doctors {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeDoctorRepo) Update(_ context.Context, id uuid.UUID, upd *model.DoctorUpdate) (*model.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, apperr.NewNotFound("doctor")
	}
	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.Specialization != nil {
		d.Specialization = *upd.Specialization
	}
	if upd.Experience != nil {
		d.Experience = *upd.Experience
	}
	if upd.Qualification != nil {
		d.Qualification = *upd.Qualification
	}
	if upd.DescriptionEnc != nil {
		d.DescriptionEnc = *upd.DescriptionEnc
	}
	if upd.SlotsJSON != nil {
		d.SlotsJSON = *upd.SlotsJSON
	}
	if upd.ClinicID != nil {
		d.ClinicID = upd.ClinicID
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDoctorRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.doctors[id]; !ok {
		return apperr.NewNotFound("doctor")
	}
	delete(f.doctors, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeDoctorRepo, security.FieldCipher) {
	t.Helper()
	cipher, err := security.NewFieldCipher(bytes.Repeat([]byte{7}, security.KeySize))
	require.NoError(t, err)
	repo := newFakeDoctorRepo()
	return NewService(repo, cipher), repo, cipher
}

func TestCreateDoctorEncryptsDescription(t *testing.T) {
	svc, repo, cipher := newTestService(t)

	created, err := svc.CreateDoctor(context.Background(), &model.CreateDoctorRequest{
		UserID:         uuid.New(),
		Name:           "Dr. House",
		Specialization: "Diagnostics",
		Description:    "Brilliant but difficult",
		AvailableSlots: []model.DaySlots{{Day: "monday", Times: []string{"09:00", "10:00"}}},
	})
	require.NoError(t, err)

	stored := repo.doctors[created.ID]
	assert.True(t, security.IsCipherToken(stored.DescriptionEnc),
		"description must be stored as a cipher token")
	assert.Equal(t, "Brilliant but difficult", cipher.SafeDecrypt(stored.DescriptionEnc))
	assert.Contains(t, stored.SlotsJSON, "monday")
}

func TestListDoctorsDecrypts(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateDoctor(context.Background(), &model.CreateDoctorRequest{
		UserID:         uuid.New(),
		Name:           "Dr. Grey",
		Specialization: "Surgery",
		Description:    "Specialises in general surgery",
	})
	require.NoError(t, err)

	doctors, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)

	assert.Equal(t, "Specialises in general surgery", doctors[0].Description)
	assert.False(t, security.IsCipherToken(doctors[0].Description),
		"read path must never expose the raw cipher token")
}

func TestListDoctorsDecryptsJoinedContact(t *testing.T) {
	svc, repo, cipher := newTestService(t)

	created, err := svc.CreateDoctor(context.Background(), &model.CreateDoctorRequest{
		UserID: uuid.New(),
		Name:   "Dr. Wilson", Specialization: "Oncology",
	})
	require.NoError(t, err)

	// Simulate contact fields stored encrypted on the joined user row.
	email := cipher.SafeEncrypt("wilson@example.com")
	plainPhone := "+15550000"
	repo.doctors[created.ID].Email = &email
	repo.doctors[created.ID].Phone = &plainPhone

	doctors, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)

	require.NotNil(t, doctors[0].Email)
	assert.Equal(t, "wilson@example.com", *doctors[0].Email)
	require.NotNil(t, doctors[0].Phone)
	assert.Equal(t, "+15550000", *doctors[0].Phone, "plaintext contact passes through untouched")
}

func TestDecryptFailureDegradesToEmpty(t *testing.T) {
	svc, repo, _ := newTestService(t)

	created, err := svc.CreateDoctor(context.Background(), &model.CreateDoctorRequest{
		UserID: uuid.New(),
		Name:   "Dr. Strange", Specialization: "Neurosurgery",
		Description: "original",
	})
	require.NoError(t, err)

	// Corrupt the stored ciphertext; reads must degrade, not fail.
	repo.doctors[created.ID].DescriptionEnc = "aabb:ccdd:eeff"

	got, err := svc.GetDoctor(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.Description)
}

func TestUpdateDoctorReencrypts(t *testing.T) {
	svc, repo, cipher := newTestService(t)

	created, err := svc.CreateDoctor(context.Background(), &model.CreateDoctorRequest{
		UserID: uuid.New(),
		Name:   "Dr. Bailey", Specialization: "General",
		Description: "before",
	})
	require.NoError(t, err)
	oldEnc := repo.doctors[created.ID].DescriptionEnc

	desc := "after"
	slots := []model.DaySlots{{Day: "friday", Times: []string{"14:00"}}}
	updated, err := svc.UpdateDoctor(context.Background(), created.ID, &model.UpdateDoctorRequest{
		Description:    &desc,
		AvailableSlots: &slots,
	})
	require.NoError(t, err)

	newEnc := repo.doctors[created.ID].DescriptionEnc
	assert.NotEqual(t, oldEnc, newEnc)
	assert.Equal(t, "after", cipher.SafeDecrypt(newEnc))
	assert.Equal(t, "after", updated.Description)
	require.Len(t, updated.AvailableSlots, 1)
	assert.Equal(t, "friday", updated.AvailableSlots[0].Day)
}

func TestUpdateDoctorEmptyPatch(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateDoctor(context.Background(), uuid.New(), &model.UpdateDoctorRequest{})
	assert.True(t, apperr.Is(err, apperr.ErrValidation))
}

func TestDeleteDoctorNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.DeleteDoctor(context.Background(), uuid.New())
	assert.True(t, apperr.Is(err, apperr.ErrNotFound))
}
