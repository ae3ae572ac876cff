package users

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"vet-clinic-records/internal/platform/httpx"
	"vet-clinic-records/internal/ports/auth"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]*User
	updates int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]*User{}}
}

func (r *testRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range r.byID {
		if existing.Email() == u.Email() {
			return fmt.Errorf("%w: email already registered", httpx.ErrConflict)
		}
	}
	r.byID[u.ID()] = u
	return nil
}

func (r *testRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.byID[u.ID()]; !ok {
		return httpx.ErrNotFound
	}
	r.updates++
	r.byID[u.ID()] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: user", httpx.ErrNotFound)
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.byID {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: user", httpx.ErrNotFound)
}

type testIssuer struct {
	last auth.Claims
	err  error
}

func (i *testIssuer) Issue(c auth.Claims) (string, error) {
	i.last = c
	if i.err != nil {
		return "", i.err
	}
	return "token-" + c.UserID, nil
}

func newTestService() (*Service, *testRepo, *testIssuer) {
	repo := newTestRepo()
	iss := &testIssuer{}
	svc := NewService(repo, iss)
	svc.cost = bcrypt.MinCost
	svc.now = func() time.Time { return time.Date(2025, 9, 29, 10, 0, 0, 0, time.UTC) }
	return svc, repo, iss
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_AlwaysStaff(t *testing.T) {
	svc, repo, iss := newTestService()

	res, err := svc.Register(context.Background(), RegisterInput{
		Name: "Test", Email: "Test@Example.com", Password: "12345",
	})
	require.NoError(t, err)

	assert.Equal(t, RoleStaff, res.User.Role)
	assert.Equal(t, "test@example.com", res.User.Email)
	assert.Equal(t, "token-"+res.User.ID, res.Token)
	assert.Equal(t, "staff", iss.last.Role)

	stored := repo.byID[res.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "12345", stored.PasswordHash(), "password must be hashed")
	assert.True(t, stored.VerifyCredential("12345"))
}

func TestService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestService()
	in := RegisterInput{Name: "Test", Email: "dup@gmail.com", Password: "12345"}

	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, httpx.ErrConflict)
}

func TestService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestService_Login(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Register(context.Background(), RegisterInput{Name: "T", Email: "tester@gmail.com", Password: "123456"})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), " Tester@gmail.com ", "123456")
	require.NoError(t, err)
	assert.Equal(t, "tester@gmail.com", res.User.Email)

	_, err = svc.Login(context.Background(), "tester@gmail.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost@gmail.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_TokenFailure(t *testing.T) {
	svc, _, iss := newTestService()
	_, err := svc.Register(context.Background(), RegisterInput{Name: "T", Email: "t@gmail.com", Password: "123456"})
	require.NoError(t, err)

	iss.err = errors.New("signing key missing")
	_, err = svc.Login(context.Background(), "t@gmail.com", "123456")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_UpdateProfile_NilAndEmptyKeepValues(t *testing.T) {
	svc, _, _ := newTestService()
	reg, err := svc.Register(context.Background(), RegisterInput{Name: "Old", Email: "o@x.io", Password: "123456", Phone: "1"})
	require.NoError(t, err)

	empty := ""
	newName := "new user"
	rec, err := svc.UpdateProfile(context.Background(), reg.User.ID, UpdateProfileInput{
		Name:  &newName,
		Phone: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, "new user", rec.Name)
	assert.Equal(t, "1", rec.Phone)
	assert.Equal(t, "o@x.io", rec.Email)

	_, err = svc.UpdateProfile(context.Background(), "missing", UpdateProfileInput{Name: &newName})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestService_SetRole(t *testing.T) {
	svc, repo, _ := newTestService()
	reg, err := svc.Register(context.Background(), RegisterInput{Name: "S", Email: "s@x.io", Password: "123456"})
	require.NoError(t, err)

	admin := Principal{ID: "a1", Role: RoleAdmin}
	staff := Principal{ID: "s1", Role: RoleStaff}

	_, err = svc.SetRole(context.Background(), staff, reg.User.ID, "admin")
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	rec, err := svc.SetRole(context.Background(), admin, reg.User.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, rec.Role)
	assert.Equal(t, 0, repo.updates, "unknown role must not persist anything")

	rec, err = svc.SetRole(context.Background(), admin, reg.User.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, rec.Role)
	assert.Equal(t, 1, repo.updates)
}
