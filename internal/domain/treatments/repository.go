package treatments

import "context"

type Repository interface {
	Create(ctx context.Context, t Treatment) error
	// ListByPet devuelve los tratamientos ordenados por fecha asc.
	ListByPet(ctx context.Context, petID string) ([]Treatment, error)
	// Delete devuelve un error que envuelve httpx.ErrNotFound si no existe
	// el tratamiento para esa mascota.
	Delete(ctx context.Context, petID, treatmentID string) error
}
