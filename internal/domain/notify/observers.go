package notify

import (
	"context"

	"vet-clinic-records/internal/platform/logger"
)

// UserObserver registra en el log que el usuario recibió la notificación.
type UserObserver struct {
	Name string
	Log  logger.Logger
}

func NewUserObserver(name string, log logger.Logger) *UserObserver {
	return &UserObserver{Name: name, Log: log}
}

func (o *UserObserver) Update(ctx context.Context, ev Event) error {
	o.Log.Info("User "+o.Name+" received notification: "+ev.String(), map[string]any{"event_type": ev.Type})
	return nil
}

// PetObserver idem para una mascota.
type PetObserver struct {
	Name string
	Log  logger.Logger
}

func NewPetObserver(name string, log logger.Logger) *PetObserver {
	return &PetObserver{Name: name, Log: log}
}

func (o *PetObserver) Update(ctx context.Context, ev Event) error {
	o.Log.Info("Pet "+o.Name+" received notification: "+ev.String(), map[string]any{"event_type": ev.Type})
	return nil
}
