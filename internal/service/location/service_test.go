package location

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/clinicore/clinic-api/pkg/errors"

	"github.com/clinicore/clinic-api/internal/model"
)

type fakeLocationRepo struct {
	locations []*model.Location
}

func (f *fakeLocationRepo) Create(_ context.Context, l *model.Location) error {
	l.ID = uuid.New()
	f.locations = append(f.locations, l)
	return nil
}

func (f *fakeLocationRepo) List(_ context.Context) ([]*model.Location, error) {
	return f.locations, nil
}

func (f *fakeLocationRepo) TripleExists(_ context.Context, state, district, area string) (bool, error) {
	for _, l := range f.locations {
		if strings.EqualFold(l.State, state) &&
			strings.EqualFold(l.District, district) &&
			strings.EqualFold(l.Area, area) {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateLocation(t *testing.T) {
	svc := NewService(&fakeLocationRepo{})

	created, err := svc.CreateLocation(context.Background(), &model.CreateLocationRequest{
		State: "Kerala", District: "Ernakulam", Area: "Kochi",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	locations, err := svc.ListLocations(context.Background())
	require.NoError(t, err)
	assert.Len(t, locations, 1)
}

func TestCreateLocationDuplicateTriple(t *testing.T) {
	svc := NewService(&fakeLocationRepo{})

	req := &model.CreateLocationRequest{State: "Kerala", District: "Ernakulam", Area: "Kochi"}
	_, err := svc.CreateLocation(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CreateLocation(context.Background(), req)
	assert.True(t, apperr.Is(err, apperr.ErrDuplicate))

	// Same state and district but a different area is a distinct location.
	_, err = svc.CreateLocation(context.Background(), &model.CreateLocationRequest{
		State: "Kerala", District: "Ernakulam", Area: "Fort Kochi",
	})
	assert.NoError(t, err)
}
