package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/clinicore/clinic-api/pkg/errors"

	"github.com/clinicore/clinic-api/internal/model"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *model.Appointment) error {
	a.ID = uuid.New()
	if a.Status == "" {
		a.Status = model.AppointmentStatusPending
	}
	f.appointments[a.ID] = a
	return nil
}

func (f *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, apperr.NewNotFound("appointment")
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error) {
	out := []*model.Appointment{}
	for _, a := range f.appointments {
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Update(_ context.Context, id uuid.UUID, upd *model.AppointmentUpdate) (*model.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, apperr.NewNotFound("appointment")
	}
	if upd.Date != nil {
		a.Date = *upd.Date
	}
	if upd.Time != nil {
		a.Time = *upd.Time
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	if upd.Reason != nil {
		a.Reason = *upd.Reason
	}
	if upd.Notes != nil {
		a.Notes = *upd.Notes
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.appointments[id]; !ok {
		return apperr.NewNotFound("appointment")
	}
	delete(f.appointments, id)
	return nil
}

type fakeDoctorRepo struct {
	byUser map[uuid.UUID]*model.Doctor
}

func (f *fakeDoctorRepo) Create(context.Context, *model.Doctor) error { return nil }

func (f *fakeDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	for _, d := range f.byUser {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, apperr.NewNotFound("doctor")
}

func (f *fakeDoctorRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*model.Doctor, error) {
	d, ok := f.byUser[userID]
	if !ok {
		return nil, apperr.NewNotFound("doctor")
	}
	return d, nil
}

func (f *fakeDoctorRepo) List(context.Context) ([]*model.Doctor, error) { return nil, nil }

func (f *fakeDoctorRepo) Update(context.Context, uuid.UUID, *model.DoctorUpdate) (*model.Doctor, error) {
	return nil, apperr.NewNotFound("doctor")
}

func (f *fakeDoctorRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeUserRepo) Create(context.Context, *model.User) error { return nil }

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NewNotFound("user")
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, apperr.NewNotFound("user")
}

func (f *fakeUserRepo) EmailExists(context.Context, string) (bool, error) { return false, nil }
func (f *fakeUserRepo) PhoneExists(context.Context, string) (bool, error) { return false, nil }
func (f *fakeUserRepo) List(context.Context) ([]*model.User, error)       { return nil, nil }

func (f *fakeUserRepo) Update(context.Context, uuid.UUID, *model.UserUpdate) (*model.User, error) {
	return nil, apperr.NewNotFound("user")
}

func (f *fakeUserRepo) Delete(context.Context, uuid.UUID) error { return nil }

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []string
	await chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{await: make(chan struct{}, 8)}
}

func (n *recordingNotifier) SendAppointmentConfirmation(to string, _ *model.Appointment) error {
	n.mu.Lock()
	n.sent = append(n.sent, to)
	n.mu.Unlock()
	n.await <- struct{}{}
	return nil
}

func (n *recordingNotifier) recipients(t *testing.T) []string {
	t.Helper()
	select {
	case <-n.await:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.sent...)
}

type fixture struct {
	svc      *Service
	repo     *fakeAppointmentRepo
	doctors  *fakeDoctorRepo
	users    *fakeUserRepo
	notifier *recordingNotifier
}

func newFixture() *fixture {
	repo := newFakeAppointmentRepo()
	doctors := &fakeDoctorRepo{byUser: make(map[uuid.UUID]*model.Doctor)}
	users := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	notifier := newRecordingNotifier()
	return &fixture{
		svc:      NewService(repo, doctors, users, notifier, zerolog.Nop()),
		repo:     repo,
		doctors:  doctors,
		users:    users,
		notifier: notifier,
	}
}

func identity(role model.Role) *model.TokenClaims {
	return &model.TokenClaims{UserID: uuid.New(), Role: role}
}

func (f *fixture) seedAppointment(patientID, doctorID uuid.UUID) *model.Appointment {
	a := &model.Appointment{PatientID: patientID, DoctorID: doctorID}
	_ = f.repo.Create(context.Background(), a)
	return a
}

func TestCreateAppointmentDefaultsToSelf(t *testing.T) {
	f := newFixture()
	patient := identity(model.RolePatient)

	created, err := f.svc.CreateAppointment(context.Background(), patient, &model.CreateAppointmentRequest{
		DoctorID: uuid.New(),
		Date:     "2026-09-15",
		Time:     "10:30",
		Reason:   "checkup",
	})
	require.NoError(t, err)

	assert.Equal(t, patient.UserID, created.PatientID)
	assert.Equal(t, model.AppointmentStatusPending, created.Status)
}

func TestCreateAppointmentForOtherPatientDenied(t *testing.T) {
	f := newFixture()
	patient := identity(model.RolePatient)
	other := uuid.New()

	_, err := f.svc.CreateAppointment(context.Background(), patient, &model.CreateAppointmentRequest{
		PatientID: &other,
		DoctorID:  uuid.New(),
		Date:      "2026-09-15",
		Time:      "10:30",
	})
	assert.True(t, apperr.Is(err, apperr.ErrOwnership))
	assert.Empty(t, f.repo.appointments)
}

func TestCreateAppointmentAdminBooksForPatient(t *testing.T) {
	f := newFixture()
	admin := identity(model.RoleAdmin)
	patientID := uuid.New()

	created, err := f.svc.CreateAppointment(context.Background(), admin, &model.CreateAppointmentRequest{
		PatientID: &patientID,
		DoctorID:  uuid.New(),
		Date:      "2026-09-15",
		Time:      "10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, patientID, created.PatientID)
}

func TestCreateAppointmentNotifiesPatient(t *testing.T) {
	f := newFixture()
	patient := identity(model.RolePatient)
	f.users.users[patient.UserID] = &model.User{Email: "patient@example.com"}

	_, err := f.svc.CreateAppointment(context.Background(), patient, &model.CreateAppointmentRequest{
		DoctorID: uuid.New(),
		Date:     "2026-09-15",
		Time:     "10:30",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"patient@example.com"}, f.notifier.recipients(t))
}

func TestListAppointmentsScopedByRole(t *testing.T) {
	f := newFixture()

	patient := identity(model.RolePatient)
	doctorUser := identity(model.RoleDoctor)
	admin := identity(model.RoleAdmin)

	doctorID := uuid.New()
	f.doctors.byUser[doctorUser.UserID] = &model.Doctor{
		Base:   model.Base{ID: doctorID},
		UserID: doctorUser.UserID,
	}

	f.seedAppointment(patient.UserID, doctorID)
	f.seedAppointment(uuid.New(), doctorID)
	f.seedAppointment(uuid.New(), uuid.New())

	mine, err := f.svc.ListAppointments(context.Background(), patient)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	schedule, err := f.svc.ListAppointments(context.Background(), doctorUser)
	require.NoError(t, err)
	assert.Len(t, schedule, 2)

	all, err := f.svc.ListAppointments(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListAppointmentsDoctorWithoutRecord(t *testing.T) {
	f := newFixture()
	f.seedAppointment(uuid.New(), uuid.New())

	got, err := f.svc.ListAppointments(context.Background(), identity(model.RoleDoctor))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateAppointmentOwnership(t *testing.T) {
	f := newFixture()

	owner := identity(model.RolePatient)
	appt := f.seedAppointment(owner.UserID, uuid.New())

	status := string(model.AppointmentStatusCancelled)
	patch := &model.UpdateAppointmentRequest{Status: &status}

	_, err := f.svc.UpdateAppointment(context.Background(), identity(model.RolePatient), appt.ID, patch)
	assert.True(t, apperr.Is(err, apperr.ErrOwnership))

	updated, err := f.svc.UpdateAppointment(context.Background(), owner, appt.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, updated.Status)
}

func TestUpdateAppointmentDoctorScope(t *testing.T) {
	f := newFixture()

	doctorUser := identity(model.RoleDoctor)
	doctorID := uuid.New()
	f.doctors.byUser[doctorUser.UserID] = &model.Doctor{
		Base:   model.Base{ID: doctorID},
		UserID: doctorUser.UserID,
	}

	own := f.seedAppointment(uuid.New(), doctorID)
	foreign := f.seedAppointment(uuid.New(), uuid.New())

	notes := "bring previous scans"
	patch := &model.UpdateAppointmentRequest{Notes: &notes}

	updated, err := f.svc.UpdateAppointment(context.Background(), doctorUser, own.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)

	_, err = f.svc.UpdateAppointment(context.Background(), doctorUser, foreign.ID, patch)
	assert.True(t, apperr.Is(err, apperr.ErrOwnership))
}

func TestUpdateAppointmentEmptyPatch(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpdateAppointment(context.Background(), identity(model.RoleAdmin), uuid.New(), &model.UpdateAppointmentRequest{})
	assert.True(t, apperr.Is(err, apperr.ErrValidation))
}

func TestDeleteAppointment(t *testing.T) {
	f := newFixture()

	owner := identity(model.RolePatient)
	appt := f.seedAppointment(owner.UserID, uuid.New())

	err := f.svc.DeleteAppointment(context.Background(), identity(model.RolePatient), appt.ID)
	assert.True(t, apperr.Is(err, apperr.ErrOwnership))

	require.NoError(t, f.svc.DeleteAppointment(context.Background(), owner, appt.ID))

	err = f.svc.DeleteAppointment(context.Background(), owner, appt.ID)
	assert.True(t, apperr.Is(err, apperr.ErrNotFound))
}
