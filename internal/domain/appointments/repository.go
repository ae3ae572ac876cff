package appointments

import "context"

// ListFilter filtra por usuario y/o mascota. Vacío = sin filtro.
type ListFilter struct {
	UserID string
	PetID  string
}

// Repository persiste citas. Create y GetByID devuelven la cita con las
// referencias User y Pet pobladas. GetByID/Update/Delete envuelven
// httpx.ErrNotFound cuando la cita no existe.
type Repository interface {
	Create(ctx context.Context, a Appointment) (Appointment, error)
	Update(ctx context.Context, a Appointment) (Appointment, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context, f ListFilter) ([]Appointment, error)
}
