package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-records/internal/domain/pets"
	"vet-clinic-records/internal/platform/httpx"
)

func newTestService() (*Service, *fakeRepo) {
	p := &fakePets{byID: map[string]pets.Pet{
		"p1": {ID: "p1", Name: "Rex", Owner: pets.Owner{ID: "o1"}},
		"p2": {ID: "p2", Name: "Michi", Owner: pets.Owner{ID: "o2"}},
	}}
	repo := newFakeRepo(p)
	svc := NewService(repo)
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	return svc, repo
}

func TestService_CreateValidates(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{PetID: "p1", Date: tomorrow}, "")
	assert.ErrorIs(t, err, httpx.ErrValidation)
	_, err = svc.Create(ctx, CreateInput{Date: tomorrow}, "u1")
	assert.ErrorIs(t, err, httpx.ErrValidation)
	_, err = svc.Create(ctx, CreateInput{PetID: "p1"}, "u1")
	assert.ErrorIs(t, err, httpx.ErrValidation)
	assert.Equal(t, 0, repo.creates)
}

func TestService_ListFilters(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{PetID: "p1", Date: tomorrow}, "u1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{PetID: "p2", Date: tomorrow}, "u1")
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{PetID: "p2", Date: tomorrow}, "u2")
	require.NoError(t, err)

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.List(ctx, ListFilter{UserID: " u1 "})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	michi, err := svc.List(ctx, ListFilter{UserID: "u1", PetID: "p2"})
	require.NoError(t, err)
	require.Len(t, michi, 1)
	assert.Equal(t, "o2", michi[0].Pet.OwnerID)
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{PetID: "p1", Date: tomorrow, Description: "control"}, "u1")
	require.NoError(t, err)

	later := tomorrow.Add(2 * time.Hour)
	desc := "  control anual "
	updated, err := svc.Update(ctx, a.ID, UpdateInput{Date: &later, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, later, updated.Date)
	assert.Equal(t, "control anual", updated.Description)
	assert.Equal(t, "Rex", updated.Pet.Name)

	var zero time.Time
	_, err = svc.Update(ctx, a.ID, UpdateInput{Date: &zero})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	msg, err := svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgDeleted, msg.Message)

	_, err = svc.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
