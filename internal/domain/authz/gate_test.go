package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-records/internal/domain/users"
	"vet-clinic-records/internal/platform/logger"
)

type spyPets struct {
	calls []string
	res   Result
	err   error
}

func (s *spyPets) Delete(ctx context.Context, petID string) (Result, error) {
	s.calls = append(s.calls, petID)
	return s.res, s.err
}

type spyTreatments struct {
	calls [][2]string
	res   Result
}

func (s *spyTreatments) Delete(ctx context.Context, petID, treatmentID string) (Result, error) {
	s.calls = append(s.calls, [2]string{petID, treatmentID})
	return s.res, nil
}

func TestGuard_NonAdminNeverInvokes(t *testing.T) {
	for _, role := range []users.Role{users.RoleStaff, "user", ""} {
		invoked := false
		res, err := Guard(context.Background(), role, func(context.Context) (Result, error) {
			invoked = true
			return Result{Message: "Pet deleted"}, nil
		})

		require.NoError(t, err)
		assert.False(t, invoked, "role %q", role)
		assert.True(t, res.Denied)
		assert.Equal(t, "Only admin can delete", res.Message)
	}
}

func TestAdminOnly_DeletePet(t *testing.T) {
	pets := &spyPets{res: Result{Message: "Pet deleted"}}
	rec := logger.NewRecorder()
	gate := NewAdminOnly(pets, &spyTreatments{}, rec)

	res, err := gate.DeletePet(context.Background(), users.RoleStaff, "p1")
	require.NoError(t, err)
	assert.Equal(t, DeniedMessage, res.Message)
	assert.Empty(t, pets.calls)

	res, err = gate.DeletePet(context.Background(), users.RoleAdmin, "p1")
	require.NoError(t, err)
	assert.Equal(t, Result{Message: "Pet deleted"}, res)
	assert.Equal(t, []string{"p1"}, pets.calls)

	assert.Len(t, rec.Infos(), 2)
}

func TestAdminOnly_PassesNotFoundVerbatim(t *testing.T) {
	treatments := &spyTreatments{res: Result{Message: "Treatment not found"}}
	gate := NewAdminOnly(&spyPets{}, treatments, nil)

	res, err := gate.DeleteTreatment(context.Background(), users.RoleAdmin, "p1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "Treatment not found", res.Message)
	assert.False(t, res.Denied)
	assert.Equal(t, [][2]string{{"p1", "t1"}}, treatments.calls)
}

func TestAdminOnly_PropagatesUnexpectedErrors(t *testing.T) {
	boom := errors.New("db down")
	gate := NewAdminOnly(&spyPets{err: boom}, &spyTreatments{}, nil)

	_, err := gate.DeletePet(context.Background(), users.RoleAdmin, "p1")
	assert.ErrorIs(t, err, boom)
}
