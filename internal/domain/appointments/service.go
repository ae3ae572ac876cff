package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic-records/internal/platform/httpx"
)

var (
	ErrInvalidInput = fmt.Errorf("%w: invalid appointment input", httpx.ErrValidation)
	ErrNotFound     = fmt.Errorf("%w: appointment not found", httpx.ErrNotFound)
)

const MsgDeleted = "Appointment deleted"

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID       string
	Date        time.Time
	Description string
}

// Create persiste la cita a nombre de userID.
func (s *Service) Create(ctx context.Context, in CreateInput, userID string) (Appointment, error) {
	userID = strings.TrimSpace(userID)
	petID := strings.TrimSpace(in.PetID)
	if userID == "" || petID == "" || in.Date.IsZero() {
		return Appointment{}, ErrInvalidInput
	}

	now := s.now()
	return s.repo.Create(ctx, Appointment{
		ID:          uuid.NewString(),
		User:        UserRef{ID: userID},
		Pet:         PetRef{ID: petID},
		Date:        in.Date,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Appointment, error) {
	f.UserID = strings.TrimSpace(f.UserID)
	f.PetID = strings.TrimSpace(f.PetID)
	return s.repo.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id string) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return Appointment{}, ErrNotFound
		}
		return Appointment{}, err
	}
	return a, nil
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Date        *time.Time
	Description *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Appointment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	if in.Date != nil {
		if in.Date.IsZero() {
			return Appointment{}, ErrInvalidInput
		}
		a.Date = *in.Date
	}
	if in.Description != nil {
		a.Description = strings.TrimSpace(*in.Description)
	}
	a.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return Appointment{}, ErrNotFound
		}
		return Appointment{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) (httpx.MessageResponse, error) {
	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return httpx.MessageResponse{}, ErrNotFound
		}
		return httpx.MessageResponse{}, err
	}
	return httpx.MessageResponse{Message: MsgDeleted}, nil
}
