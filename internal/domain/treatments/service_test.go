package treatments

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-records/internal/platform/httpx"
)

type testRepo struct {
	items   []Treatment
	creates int
}

func (r *testRepo) Create(ctx context.Context, t Treatment) error {
	r.creates++
	r.items = append(r.items, t)
	return nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Treatment, error) {
	var out []Treatment
	for _, t := range r.items {
		if t.PetID == petID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, petID, treatmentID string) error {
	for i, t := range r.items {
		if t.PetID == petID && t.ID == treatmentID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: treatment", httpx.ErrNotFound)
}

func knownPets(ids ...string) PetLookupFunc {
	return func(ctx context.Context, id string) (bool, error) {
		for _, known := range ids {
			if known == id {
				return true, nil
			}
		}
		return false, nil
	}
}

func TestCreate_RequiresExistingPet(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo, knownPets("pet1"))
	ctx := context.Background()
	in := CreateInput{Vet: "Dr", Date: time.Date(2025, 9, 29, 0, 0, 0, 0, time.UTC), Description: "check", Cost: 50}

	tr, err := svc.Create(ctx, "user1", "pet1", in)
	require.NoError(t, err)
	assert.NotEmpty(t, tr.ID)
	assert.Equal(t, "pet1", tr.PetID)
	assert.Equal(t, "user1", tr.RecordedBy)

	_, err = svc.Create(ctx, "user1", "ghost", in)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
	assert.Equal(t, 1, repo.creates)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&testRepo{}, knownPets("pet1"))
	ctx := context.Background()
	day := time.Date(2025, 9, 29, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, "", "pet1", CreateInput{Vet: "Dr", Date: day})
	assert.ErrorIs(t, err, httpx.ErrValidation)
	_, err = svc.Create(ctx, "u1", "pet1", CreateInput{Date: day})
	assert.ErrorIs(t, err, httpx.ErrValidation)
	_, err = svc.Create(ctx, "u1", "pet1", CreateInput{Vet: "Dr"})
	assert.ErrorIs(t, err, httpx.ErrValidation)
	_, err = svc.Create(ctx, "u1", "pet1", CreateInput{Vet: "Dr", Date: day, Cost: -1})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestListByPet_PropagatesLookupError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(&testRepo{}, PetLookupFunc(func(context.Context, string) (bool, error) {
		return false, boom
	}))

	_, err := svc.ListByPet(context.Background(), "pet1")
	assert.ErrorIs(t, err, boom)
}

func TestDelete_MessageResults(t *testing.T) {
	repo := &testRepo{items: []Treatment{{ID: "treat1", PetID: "pet1"}}}
	svc := NewService(repo, knownPets("pet1"))
	ctx := context.Background()

	res, err := svc.Delete(ctx, "pet1", "treat1")
	require.NoError(t, err)
	assert.Equal(t, MsgDeleted, res.Message)

	res, err = svc.Delete(ctx, "pet1", "treat1")
	require.NoError(t, err)
	assert.Equal(t, MsgNotFound, res.Message)
}
