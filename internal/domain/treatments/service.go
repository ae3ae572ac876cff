package treatments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vet-clinic-records/internal/domain/authz"
	"vet-clinic-records/internal/platform/httpx"
)

var (
	ErrInvalidInput = fmt.Errorf("%w: invalid treatment input", httpx.ErrValidation)
	ErrPetNotFound  = fmt.Errorf("%w: pet not found", httpx.ErrNotFound)
)

const (
	MsgDeleted  = "Treatment deleted"
	MsgNotFound = "Treatment not found"
)

// PetLookup es lo único que necesitamos de pets.
type PetLookup interface {
	Find(ctx context.Context, id string) (petExists bool, err error)
}

// PetLookupFunc adapta una función a PetLookup.
type PetLookupFunc func(ctx context.Context, id string) (bool, error)

func (f PetLookupFunc) Find(ctx context.Context, id string) (bool, error) { return f(ctx, id) }

type Service struct {
	repo Repository
	pets PetLookup
	now  func() time.Time
}

func NewService(repo Repository, pets PetLookup) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

type CreateInput struct {
	Vet         string
	Date        time.Time
	Description string
	Cost        float64
}

func (s *Service) Create(ctx context.Context, recordedBy, petID string, in CreateInput) (Treatment, error) {
	petID = strings.TrimSpace(petID)
	recordedBy = strings.TrimSpace(recordedBy)
	if petID == "" || recordedBy == "" {
		return Treatment{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Vet) == "" || in.Date.IsZero() {
		return Treatment{}, ErrInvalidInput
	}
	if in.Cost < 0 {
		return Treatment{}, ErrInvalidInput
	}

	ok, err := s.pets.Find(ctx, petID)
	if err != nil {
		return Treatment{}, err
	}
	if !ok {
		return Treatment{}, ErrPetNotFound
	}

	t := Treatment{
		ID:          uuid.NewString(),
		PetID:       petID,
		Vet:         strings.TrimSpace(in.Vet),
		Date:        in.Date,
		Description: strings.TrimSpace(in.Description),
		Cost:        in.Cost,
		RecordedBy:  recordedBy,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Treatment, error) {
	petID = strings.TrimSpace(petID)
	ok, err := s.pets.Find(ctx, petID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPetNotFound
	}
	return s.repo.ListByPet(ctx, petID)
}

// Delete se invoca a través del gate (authz.AdminOnly).
func (s *Service) Delete(ctx context.Context, petID, treatmentID string) (authz.Result, error) {
	err := s.repo.Delete(ctx, strings.TrimSpace(petID), strings.TrimSpace(treatmentID))
	switch {
	case err == nil:
		return authz.Result{Message: MsgDeleted}, nil
	case errors.Is(err, httpx.ErrNotFound):
		return authz.Result{Message: MsgNotFound}, nil
	default:
		return authz.Result{}, err
	}
}
