// Package authz restringe las operaciones de borrado a admin.
//
// La denegación no es un error: Guard devuelve un Result con Denied=true y
// el mismo shape {message} que un "not found" del dominio, así los handlers
// renderizan ambos igual.
package authz

import (
	"context"

	"vet-clinic-records/internal/domain/users"
	"vet-clinic-records/internal/platform/logger"
)

const DeniedMessage = "Only admin can delete"

// Result es la respuesta de una operación sensible.
type Result struct {
	Message string `json:"message"`
	Denied  bool   `json:"-"`
}

// Operation es la operación envuelta. Devuelve Result tanto para éxito como
// para fallos de dominio (p.ej. not found); error solo para lo inesperado.
type Operation func(ctx context.Context) (Result, error)

// Guard ejecuta op solo si role es admin.
func Guard(ctx context.Context, role users.Role, op Operation) (Result, error) {
	if role != users.RoleAdmin {
		return Result{Message: DeniedMessage, Denied: true}, nil
	}
	return op(ctx)
}

type PetDeleter interface {
	Delete(ctx context.Context, petID string) (Result, error)
}

type TreatmentDeleter interface {
	Delete(ctx context.Context, petID, treatmentID string) (Result, error)
}

// AdminOnly expone una operación guardada por cada borrado sensible.
type AdminOnly struct {
	pets       PetDeleter
	treatments TreatmentDeleter
	log        logger.Logger
}

func NewAdminOnly(pets PetDeleter, treatments TreatmentDeleter, log logger.Logger) *AdminOnly {
	if log == nil {
		log = logger.Nop()
	}
	return &AdminOnly{pets: pets, treatments: treatments, log: log}
}

func (g *AdminOnly) DeletePet(ctx context.Context, role users.Role, petID string) (Result, error) {
	res, err := Guard(ctx, role, func(ctx context.Context) (Result, error) {
		return g.pets.Delete(ctx, petID)
	})
	g.audit("pet", petID, role, res)
	return res, err
}

func (g *AdminOnly) DeleteTreatment(ctx context.Context, role users.Role, petID, treatmentID string) (Result, error) {
	res, err := Guard(ctx, role, func(ctx context.Context) (Result, error) {
		return g.treatments.Delete(ctx, petID, treatmentID)
	})
	g.audit("treatment", treatmentID, role, res)
	return res, err
}

func (g *AdminOnly) audit(kind, id string, role users.Role, res Result) {
	if res.Denied {
		g.log.Warn("delete denied", map[string]any{"kind": kind, "id": id, "role": string(role)})
		return
	}
	g.log.Info("delete executed", map[string]any{"kind": kind, "id": id, "result": res.Message})
}
