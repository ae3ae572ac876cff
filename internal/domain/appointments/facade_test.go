package appointments

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-records/internal/domain/notify"
	"vet-clinic-records/internal/domain/pets"
	"vet-clinic-records/internal/domain/users"
	"vet-clinic-records/internal/platform/httpx"
	"vet-clinic-records/internal/platform/logger"
)

// -------------------------
// Fakes
// -------------------------

type fakePets struct {
	byID  map[string]pets.Pet
	err   error
	calls int
}

func (f *fakePets) Find(ctx context.Context, id string) (pets.Pet, bool, error) {
	f.calls++
	if f.err != nil {
		return pets.Pet{}, false, f.err
	}
	p, ok := f.byID[id]
	return p, ok, nil
}

// fakeRepo puebla las referencias como lo haría el repositorio real.
type fakeRepo struct {
	pets    *fakePets
	names   map[string]string
	saved   map[string]Appointment
	creates int
	err     error
}

func newFakeRepo(p *fakePets) *fakeRepo {
	return &fakeRepo{pets: p, names: map[string]string{}, saved: map[string]Appointment{}}
}

func (r *fakeRepo) populate(a Appointment) Appointment {
	a.User.Name = r.names[a.User.ID]
	if p, ok := r.pets.byID[a.Pet.ID]; ok {
		a.Pet.Name = p.Name
		a.Pet.OwnerID = p.Owner.ID
	}
	return a
}

func (r *fakeRepo) Create(ctx context.Context, a Appointment) (Appointment, error) {
	r.creates++
	if r.err != nil {
		return Appointment{}, r.err
	}
	r.saved[a.ID] = a
	return r.populate(a), nil
}

func (r *fakeRepo) Update(ctx context.Context, a Appointment) (Appointment, error) {
	if _, ok := r.saved[a.ID]; !ok {
		return Appointment{}, fmt.Errorf("%w: appointment", httpx.ErrNotFound)
	}
	r.saved[a.ID] = a
	return r.populate(a), nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.saved[id]; !ok {
		return fmt.Errorf("%w: appointment", httpx.ErrNotFound)
	}
	delete(r.saved, id)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (Appointment, error) {
	a, ok := r.saved[id]
	if !ok {
		return Appointment{}, fmt.Errorf("%w: appointment", httpx.ErrNotFound)
	}
	return r.populate(a), nil
}

func (r *fakeRepo) List(ctx context.Context, f ListFilter) ([]Appointment, error) {
	var out []Appointment
	for _, a := range r.saved {
		if f.UserID != "" && a.User.ID != f.UserID {
			continue
		}
		if f.PetID != "" && a.Pet.ID != f.PetID {
			continue
		}
		out = append(out, r.populate(a))
	}
	return out, nil
}

type countingObserver struct {
	events []notify.Event
	err    error
}

func (o *countingObserver) Update(ctx context.Context, ev notify.Event) error {
	o.events = append(o.events, ev)
	return o.err
}

type fixture struct {
	pets     *fakePets
	repo     *fakeRepo
	observer *countingObserver
	log      *logger.Recorder
	facade   *Facade
}

func newFixture() *fixture {
	p := &fakePets{byID: map[string]pets.Pet{
		"p1": {ID: "p1", Name: "Rex", Owner: pets.Owner{ID: "o1"}},
	}}
	repo := newFakeRepo(p)
	repo.names["u1"] = "Ana"

	n := notify.NewNotifier()
	obs := &countingObserver{}
	n.Subscribe(obs)

	log := logger.NewRecorder()
	return &fixture{
		pets:     p,
		repo:     repo,
		observer: obs,
		log:      log,
		facade:   NewFacade(p, NewService(repo), n, log),
	}
}

var tomorrow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

// -------------------------
// Tests
// -------------------------

func TestCreateCompleteAppointment_EndToEnd(t *testing.T) {
	fx := newFixture()

	res, err := fx.facade.CreateCompleteAppointment(context.Background(),
		CreateInput{PetID: "p1", Date: tomorrow, Description: "vacuna"},
		users.Principal{ID: "u1"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "u1", res.UserID)
	assert.Equal(t, "p1", res.PetID)
	assert.Equal(t, "o1", res.Owner)
	assert.Equal(t, SuccessMessage, res.Message)
	assert.Equal(t, "Ana", res.Appointment.User.Name)
	assert.Equal(t, "Rex", res.Appointment.Pet.Name)

	require.Len(t, fx.observer.events, 1)
	ev := fx.observer.events[0]
	assert.Equal(t, EventCreated, ev.Type)
	assert.Equal(t, res.Appointment, ev.Payload)
}

func TestCreateCompleteAppointment_UnknownPet(t *testing.T) {
	fx := newFixture()

	_, err := fx.facade.CreateCompleteAppointment(context.Background(),
		CreateInput{PetID: "ghost", Date: tomorrow}, users.Principal{ID: "u1"})

	assert.ErrorIs(t, err, ErrPetNotFound)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
	assert.Equal(t, 0, fx.repo.creates)
	assert.Empty(t, fx.observer.events)
}

func TestCreateCompleteAppointment_EmptyPetID(t *testing.T) {
	fx := newFixture()

	_, err := fx.facade.CreateCompleteAppointment(context.Background(),
		CreateInput{PetID: " ", Date: tomorrow}, users.Principal{ID: "u1"})

	assert.ErrorIs(t, err, ErrPetNotFound)
	assert.Equal(t, 0, fx.pets.calls)
	assert.Equal(t, 0, fx.repo.creates)
}

func TestCreateCompleteAppointment_EmptyActor(t *testing.T) {
	fx := newFixture()

	_, err := fx.facade.CreateCompleteAppointment(context.Background(),
		CreateInput{PetID: "p1", Date: tomorrow}, users.Principal{})

	assert.ErrorIs(t, err, ErrInvalidActor)
	assert.ErrorIs(t, err, httpx.ErrValidation)
	assert.Equal(t, 0, fx.repo.creates)
	assert.Empty(t, fx.observer.events)
}

func TestCreateCompleteAppointment_LookupFailurePropagates(t *testing.T) {
	fx := newFixture()
	boom := errors.New("connection refused")
	fx.pets.err = boom

	_, err := fx.facade.CreateCompleteAppointment(context.Background(),
		CreateInput{PetID: "p1", Date: tomorrow}, users.Principal{ID: "u1"})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 500, httpx.StatusFor(err))
	assert.Equal(t, 0, fx.repo.creates)
}

func TestCreateCompleteAppointment_PersistFailureSkipsPublish(t *testing.T) {
	fx := newFixture()
	boom := errors.New("insert failed")
	fx.repo.err = boom

	_, err := fx.facade.CreateCompleteAppointment(context.Background(),
		CreateInput{PetID: "p1", Date: tomorrow}, users.Principal{ID: "u1"})

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, fx.observer.events)
}

func TestCreateCompleteAppointment_PublishFailureKeepsAppointment(t *testing.T) {
	fx := newFixture()
	boom := errors.New("broker down")
	fx.observer.err = boom

	res, err := fx.facade.CreateCompleteAppointment(context.Background(),
		CreateInput{PetID: "p1", Date: tomorrow}, users.Principal{ID: "u1"})

	assert.ErrorIs(t, err, boom)
	assert.False(t, res.Success)
	// no hay rollback
	assert.Len(t, fx.repo.saved, 1)
	assert.NotEmpty(t, fx.log.Errors())
}

type recordingStep struct {
	name  string
	trace *[]string
	err   error
}

func (s recordingStep) Check(ctx context.Context, petID string) error {
	*s.trace = append(*s.trace, s.name)
	return s.err
}

func (s recordingStep) Validate(actor users.Principal) error {
	*s.trace = append(*s.trace, s.name)
	return s.err
}

func (s recordingStep) Create(ctx context.Context, in CreateInput, actor users.Principal) (Appointment, error) {
	*s.trace = append(*s.trace, s.name)
	return Appointment{ID: "a1", User: UserRef{ID: actor.ID}, Pet: PetRef{ID: in.PetID, OwnerID: "o9"}}, s.err
}

func (s recordingStep) Send(ctx context.Context, a Appointment) error {
	*s.trace = append(*s.trace, s.name)
	return s.err
}

func TestCreateCompleteAppointment_StepOrderAndShortCircuit(t *testing.T) {
	var trace []string
	steps := Steps{
		Pets:     recordingStep{name: "pets", trace: &trace},
		Actor:    recordingStep{name: "actor", trace: &trace},
		Creator:  recordingStep{name: "persist", trace: &trace},
		Notifier: recordingStep{name: "publish", trace: &trace},
	}

	res, err := NewFacadeWithSteps(steps, nil).CreateCompleteAppointment(context.Background(),
		CreateInput{PetID: "p9"}, users.Principal{ID: "u9"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pets", "actor", "persist", "publish"}, trace)
	assert.Equal(t, "o9", res.Owner)

	trace = nil
	steps.Actor = recordingStep{name: "actor", trace: &trace, err: ErrInvalidActor}
	_, err = NewFacadeWithSteps(steps, nil).CreateCompleteAppointment(context.Background(),
		CreateInput{PetID: "p9"}, users.Principal{})
	assert.ErrorIs(t, err, ErrInvalidActor)
	assert.Equal(t, []string{"pets", "actor"}, trace)
}

func TestCreatedEvent_Subject(t *testing.T) {
	a := Appointment{ID: "a1", Pet: PetRef{Name: "Rex"}, Date: tomorrow}
	ev := CreatedEvent(a, tomorrow)
	assert.Equal(t, "appointment.created: appointment a1 for Rex on 2026-10-19 09:30", ev.String())
}
