package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vet-clinic-records/internal/platform/httpx"
	"vet-clinic-records/internal/ports/auth"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", httpx.ErrUnauthorized)
	ErrAdminOnly          = fmt.Errorf("%w: only admin can change roles", httpx.ErrForbidden)
)

type Service struct {
	repo   Repository
	tokens auth.TokenIssuer
	now    func() time.Time
	cost   int
}

func NewService(repo Repository, tokens auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	Position string
	Address  string
}

// AuthResult es lo que devuelven registro y login.
type AuthResult struct {
	Token string `json:"token"`
	User  Record `json:"user"`
}

// Register crea un usuario staff. El rol nunca viene del request.
func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	if strings.TrimSpace(in.Password) == "" {
		return AuthResult{}, ErrMissingFields
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	u, err := NewUser(UserInput{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
		Password: hash,
		Role:     RoleStaff,
		Position: in.Position,
		Address:  in.Address,
	})
	if err != nil {
		return AuthResult{}, err
	}
	u.Touch(s.now())

	if err := s.repo.Create(ctx, u); err != nil {
		return AuthResult{}, err
	}
	return s.authResult(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if !u.VerifyCredential(password) {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.authResult(u)
}

func (s *Service) Profile(ctx context.Context, id string) (Record, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Record{}, err
	}
	return u.ToRecord(), nil
}

// UpdateProfileInput usa punteros: nil = no tocar.
type UpdateProfileInput struct {
	Name     *string
	Phone    *string
	Email    *string
	Password *string
	Position *string
	Address  *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (Record, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Record{}, err
	}

	if in.Name != nil {
		u.SetName(*in.Name)
	}
	if in.Phone != nil {
		u.SetPhone(*in.Phone)
	}
	if in.Email != nil {
		u.SetEmail(*in.Email)
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := s.hash(*in.Password)
		if err != nil {
			return Record{}, err
		}
		u.SetPassword(hash)
	}
	if in.Position != nil {
		u.SetPosition(*in.Position)
	}
	if in.Address != nil {
		u.SetAddress(*in.Address)
	}
	u.Touch(s.now())

	if err := s.repo.Update(ctx, u); err != nil {
		return Record{}, err
	}
	return u.ToRecord(), nil
}

// SetRole cambia el rol de otro usuario. Solo admin. Un rol fuera del enum
// deja el usuario como estaba (mismo comportamiento que User.SetRole).
func (s *Service) SetRole(ctx context.Context, actor Principal, userID, role string) (Record, error) {
	if !actor.IsAdmin() {
		return Record{}, ErrAdminOnly
	}
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return Record{}, err
	}

	before := u.Role()
	u.SetRole(role)
	if u.Role() == before {
		return u.ToRecord(), nil
	}

	u.Touch(s.now())
	if err := s.repo.Update(ctx, u); err != nil {
		return Record{}, err
	}
	return u.ToRecord(), nil
}

func (s *Service) authResult(u *User) (AuthResult, error) {
	token, err := s.tokens.Issue(auth.Claims{
		UserID: u.ID(),
		Email:  u.Email(),
		Role:   string(u.Role()),
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{Token: token, User: u.ToRecord()}, nil
}

func (s *Service) hash(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}
