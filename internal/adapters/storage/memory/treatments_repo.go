package memory

import (
	"context"
	"sort"
	"sync"

	"vet-clinic-records/internal/domain/treatments"
)

type treatmentRepo struct {
	mu   sync.RWMutex
	byID map[string]treatments.Treatment
}

func NewTreatmentRepo() treatments.Repository {
	return &treatmentRepo{
		byID: make(map[string]treatments.Treatment),
	}
}

func (r *treatmentRepo) Create(ctx context.Context, t treatments.Treatment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[t.ID] = t
	return nil
}

func (r *treatmentRepo) ListByPet(ctx context.Context, petID string) ([]treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]treatments.Treatment, 0)
	for _, t := range r.byID {
		if t.PetID == petID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *treatmentRepo) Delete(ctx context.Context, petID, treatmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[treatmentID]
	if !ok || t.PetID != petID {
		return ErrNotFound
	}
	delete(r.byID, treatmentID)
	return nil
}
