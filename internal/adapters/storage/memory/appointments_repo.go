package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"vet-clinic-records/internal/domain/appointments"
	"vet-clinic-records/internal/domain/pets"
	"vet-clinic-records/internal/domain/users"
	"vet-clinic-records/internal/platform/httpx"
)

// appointmentRepo guarda solo los ids de usuario y mascota y puebla las
// referencias al leer, igual que el JOIN del repo postgres.
type appointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment

	users users.Repository
	pets  pets.Repository
}

func NewAppointmentRepo(u users.Repository, p pets.Repository) appointments.Repository {
	return &appointmentRepo{
		byID:  make(map[string]appointments.Appointment),
		users: u,
		pets:  p,
	}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	r.mu.Lock()
	r.byID[a.ID] = stripRefs(a)
	r.mu.Unlock()

	return r.populate(ctx, a)
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	r.mu.Lock()
	if _, ok := r.byID[a.ID]; !ok {
		r.mu.Unlock()
		return appointments.Appointment{}, ErrNotFound
	}
	r.byID[a.ID] = stripRefs(a)
	r.mu.Unlock()

	return r.populate(ctx, a)
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	a, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return appointments.Appointment{}, ErrNotFound
	}
	return r.populate(ctx, a)
}

func (r *appointmentRepo) List(ctx context.Context, f appointments.ListFilter) ([]appointments.Appointment, error) {
	r.mu.RLock()
	matched := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if f.UserID != "" && a.User.ID != f.UserID {
			continue
		}
		if f.PetID != "" && a.Pet.ID != f.PetID {
			continue
		}
		matched = append(matched, a)
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})

	out := make([]appointments.Appointment, 0, len(matched))
	for _, a := range matched {
		full, err := r.populate(ctx, a)
		if err != nil {
			return nil, err
		}
		out = append(out, full)
	}
	return out, nil
}

// populate completa User y Pet. Una referencia colgante (usuario o mascota
// borrados) deja solo el id, como un populate sin match.
func (r *appointmentRepo) populate(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	a = stripRefs(a)

	u, err := r.users.GetByID(ctx, a.User.ID)
	switch {
	case err == nil:
		a.User.Name = u.Name()
	case !errors.Is(err, httpx.ErrNotFound):
		return appointments.Appointment{}, err
	}

	p, err := r.pets.GetByID(ctx, a.Pet.ID)
	switch {
	case err == nil:
		a.Pet.Name = p.Name
		a.Pet.OwnerID = p.Owner.ID
	case !errors.Is(err, httpx.ErrNotFound):
		return appointments.Appointment{}, err
	}
	return a, nil
}

func stripRefs(a appointments.Appointment) appointments.Appointment {
	a.User = appointments.UserRef{ID: a.User.ID}
	a.Pet = appointments.PetRef{ID: a.Pet.ID}
	return a
}
