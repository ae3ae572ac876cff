package pets

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
	ErrInvalidInput = fmt.Errorf("%w: invalid pet input", httpx.ErrValidation)
	ErrNotFound     = fmt.Errorf("%w: pet not found", httpx.ErrNotFound)
)

const (
	MsgDeleted  = "Pet deleted"
	MsgNotFound = "Pet not found"
)

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
	Name       string
	Species    string
	Breed      string
	Sex        string
	BirthDate  *time.Time
	Microchip  string
	Notes      string
	OwnerID    string // vacío => el usuario que crea la ficha
	OwnerName  string
	OwnerPhone string
}

func (s *Service) Create(ctx context.Context, createdBy string, in CreateInput) (Pet, error) {
	createdBy = strings.TrimSpace(createdBy)
	if createdBy == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	species := Species(strings.ToLower(strings.TrimSpace(in.Species)))
	if !ValidSpecies(species) {
		return Pet{}, ErrInvalidInput
	}
	sex := Sex(strings.ToLower(strings.TrimSpace(in.Sex)))
	if !ValidSex(sex) {
		return Pet{}, ErrInvalidInput
	}
	if sex == "" {
		sex = SexUnknown
	}
	breed := normalizeBreed(in.Breed)
	if !ValidBreed(species, breed) {
		return Pet{}, ErrInvalidInput
	}
	chip := strings.TrimSpace(in.Microchip)
	if !ValidMicrochip(chip) {
		return Pet{}, ErrInvalidInput
	}

	ownerID := strings.TrimSpace(in.OwnerID)
	if ownerID == "" {
		ownerID = createdBy
	}

	now := s.now()
	p := Pet{
		ID: uuid.NewString(),
		Owner: Owner{
			ID:    ownerID,
			Name:  strings.TrimSpace(in.OwnerName),
			Phone: strings.TrimSpace(in.OwnerPhone),
		},
		Name:      strings.TrimSpace(in.Name),
		Species:   species,
		Breed:     breed,
		Sex:       sex,
		BirthDate: in.BirthDate,
		Microchip: chip,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return Pet{}, ErrNotFound
		}
		return Pet{}, err
	}
	return p, nil
}

// Find es el lookup que usa la orquestación de citas: (pet, true) si existe,
// (zero, false) si no. Los errores de infraestructura se propagan.
func (s *Service) Find(ctx context.Context, id string) (Pet, bool, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, false, nil
		}
		return Pet{}, false, err
	}
	return p, true, nil
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(ownerID))
}

// BirthDatePatch permite distinguir "no enviado" de "null = limpiar".
type BirthDatePatch struct {
	Present bool
	Value   *time.Time
}

// UpdateProfileInput usa punteros para PATCH real: nil = no tocar.
type UpdateProfileInput struct {
	Name       *string
	Species    *string
	Breed      *string
	Sex        *string
	BirthDate  BirthDatePatch
	Microchip  *string
	Notes      *string
	OwnerName  *string
	OwnerPhone *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Species != nil {
		sp := Species(strings.ToLower(strings.TrimSpace(*in.Species)))
		if !ValidSpecies(sp) {
			return Pet{}, ErrInvalidInput
		}
		p.Species = sp
	}
	if in.Breed != nil {
		p.Breed = normalizeBreed(*in.Breed)
	}
	// La raza se valida contra la especie final (pudo cambiar cualquiera de las dos).
	if !ValidBreed(p.Species, p.Breed) {
		return Pet{}, ErrInvalidInput
	}
	if in.Sex != nil {
		sx := Sex(strings.ToLower(strings.TrimSpace(*in.Sex)))
		if !ValidSex(sx) || sx == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Sex = sx
	}
	if in.BirthDate.Present {
		p.BirthDate = in.BirthDate.Value
	}
	if in.Microchip != nil {
		chip := strings.TrimSpace(*in.Microchip)
		if !ValidMicrochip(chip) {
			return Pet{}, ErrInvalidInput
		}
		p.Microchip = chip
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.OwnerName != nil {
		p.Owner.Name = strings.TrimSpace(*in.OwnerName)
	}
	if in.OwnerPhone != nil {
		p.Owner.Phone = strings.TrimSpace(*in.OwnerPhone)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return Pet{}, ErrNotFound
		}
		return Pet{}, err
	}
	return p, nil
}

// Delete borra la ficha. Not found es un resultado, no un error.
// Se invoca a través del gate (authz.AdminOnly).
func (s *Service) Delete(ctx context.Context, id string) (authz.Result, error) {
	err := s.repo.Delete(ctx, strings.TrimSpace(id))
	switch {
	case err == nil:
		return authz.Result{Message: MsgDeleted}, nil
	case errors.Is(err, httpx.ErrNotFound):
		return authz.Result{Message: MsgNotFound}, nil
	default:
		return authz.Result{}, err
	}
}
