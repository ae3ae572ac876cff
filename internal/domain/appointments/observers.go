package appointments

import (
	"context"

	"vet-clinic-records/internal/domain/notify"
	"vet-clinic-records/internal/platform/logger"
)

// ParticipantsObserver avisa al usuario y a la mascota de la cita: por cada
// evento de cita arma un UserObserver y un PetObserver con sus nombres.
// Los eventos que no son de cita se ignoran.
func ParticipantsObserver(log logger.Logger) notify.Observer {
	if log == nil {
		log = logger.Nop()
	}
	return notify.ObserverFunc(func(ctx context.Context, ev notify.Event) error {
		a, ok := ev.Payload.(Appointment)
		if !ok {
			return nil
		}
		if err := notify.NewUserObserver(labelOr(a.User.Name, a.User.ID), log).Update(ctx, ev); err != nil {
			return err
		}
		return notify.NewPetObserver(labelOr(a.Pet.Name, a.Pet.ID), log).Update(ctx, ev)
	})
}

func labelOr(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
