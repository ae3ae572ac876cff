package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vet-clinic-records/internal/domain/notify"
	"vet-clinic-records/internal/domain/pets"
	"vet-clinic-records/internal/domain/users"
	"vet-clinic-records/internal/platform/httpx"
	"vet-clinic-records/internal/platform/logger"
)

var (
	ErrPetNotFound  = fmt.Errorf("%w: pet not found", httpx.ErrNotFound)
	ErrInvalidActor = fmt.Errorf("%w: invalid user", httpx.ErrValidation)
)

const (
	EventCreated   = "appointment.created"
	SuccessMessage = "Appointment created and notifications sent!"
)

// Pasos de la creación completa. Cada uno es intercambiable.

type PetChecker interface {
	Check(ctx context.Context, petID string) error
}

type ActorValidator interface {
	Validate(actor users.Principal) error
}

type AppointmentCreator interface {
	Create(ctx context.Context, in CreateInput, actor users.Principal) (Appointment, error)
}

type NotificationSender interface {
	Send(ctx context.Context, a Appointment) error
}

// Steps agrupa los cuatro pasos. Se ejecutan en este orden.
type Steps struct {
	Pets     PetChecker
	Actor    ActorValidator
	Creator  AppointmentCreator
	Notifier NotificationSender
}

// Result es lo que devuelve CreateCompleteAppointment cuando todo salió bien.
type Result struct {
	Success     bool
	Appointment Appointment
	UserID      string
	PetID       string
	Owner       string
	Message     string
}

type Facade struct {
	steps Steps
	log   logger.Logger
}

// NewFacade arma la fachada con los pasos por defecto.
func NewFacade(petLookup PetLookup, svc *Service, n *notify.Notifier, log logger.Logger) *Facade {
	if log == nil {
		log = logger.Nop()
	}
	return NewFacadeWithSteps(Steps{
		Pets:     &petChecker{pets: petLookup},
		Actor:    &actorValidator{log: log},
		Creator:  &serviceCreator{svc: svc, log: log},
		Notifier: &notifierSender{notifier: n, now: time.Now},
	}, log)
}

func NewFacadeWithSteps(steps Steps, log logger.Logger) *Facade {
	if log == nil {
		log = logger.Nop()
	}
	return &Facade{steps: steps, log: log}
}

// CreateCompleteAppointment corre pet check, validación del actor,
// persistencia y notificación, en ese orden. El primer fallo corta la
// secuencia y se devuelve tal cual.
//
// Si la notificación falla, la cita ya quedó persistida (no hay rollback).
func (f *Facade) CreateCompleteAppointment(ctx context.Context, in CreateInput, actor users.Principal) (Result, error) {
	f.log.Info("Starting Complete Appointment Process...", map[string]any{"pet_id": in.PetID, "user_id": actor.ID})

	if err := f.steps.Pets.Check(ctx, in.PetID); err != nil {
		f.log.Error("appointment process aborted", map[string]any{"step": "pet_check", "error": err.Error()})
		return Result{}, err
	}

	if err := f.steps.Actor.Validate(actor); err != nil {
		f.log.Error("appointment process aborted", map[string]any{"step": "actor", "error": err.Error()})
		return Result{}, err
	}

	appt, err := f.steps.Creator.Create(ctx, in, actor)
	if err != nil {
		f.log.Error("appointment process aborted", map[string]any{"step": "persist", "error": err.Error()})
		return Result{}, err
	}

	if err := f.steps.Notifier.Send(ctx, appt); err != nil {
		f.log.Error("appointment persisted but notification failed", map[string]any{"appointment_id": appt.ID, "error": err.Error()})
		return Result{}, err
	}

	f.log.Info("Appointment process completed!", map[string]any{"appointment_id": appt.ID})

	return Result{
		Success:     true,
		Appointment: appt,
		UserID:      appt.User.ID,
		PetID:       appt.Pet.ID,
		Owner:       appt.Pet.OwnerID,
		Message:     SuccessMessage,
	}, nil
}

// -------------------------
// Pasos por defecto
// -------------------------

// PetLookup es el lookup de mascotas (pets.Service lo cumple).
type PetLookup interface {
	Find(ctx context.Context, id string) (pets.Pet, bool, error)
}

type petChecker struct {
	pets PetLookup
}

func (c *petChecker) Check(ctx context.Context, petID string) error {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return fmt.Errorf("%w: petId is required", ErrPetNotFound)
	}
	_, ok, err := c.pets.Find(ctx, petID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPetNotFound
	}
	return nil
}

type actorValidator struct {
	log logger.Logger
}

func (v *actorValidator) Validate(actor users.Principal) error {
	v.log.Debug("User Validator: Validating user", nil)
	if strings.TrimSpace(actor.ID) == "" {
		return ErrInvalidActor
	}
	return nil
}

type serviceCreator struct {
	svc *Service
	log logger.Logger
}

func (c *serviceCreator) Create(ctx context.Context, in CreateInput, actor users.Principal) (Appointment, error) {
	c.log.Debug("Appointment Creator: Creating appointment", nil)
	a, err := c.svc.Create(ctx, in, actor.ID)
	if err != nil {
		return Appointment{}, err
	}
	c.log.Info("Appointment Creator: Appointment saved", map[string]any{"appointment_id": a.ID})
	return a, nil
}

type notifierSender struct {
	notifier *notify.Notifier
	now      func() time.Time
}

func (s *notifierSender) Send(ctx context.Context, a Appointment) error {
	return s.notifier.Notify(ctx, CreatedEvent(a, s.now()))
}

// CreatedEvent arma el evento que se publica al crear una cita.
func CreatedEvent(a Appointment, at time.Time) notify.Event {
	subject := "appointment " + a.ID
	if a.Pet.Name != "" {
		subject += " for " + a.Pet.Name
	}
	subject += " on " + a.Date.Format("2006-01-02 15:04")
	return notify.Event{
		Type:       EventCreated,
		Subject:    subject,
		Payload:    a,
		OccurredAt: at,
	}
}
