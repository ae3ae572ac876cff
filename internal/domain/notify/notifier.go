// Package notify implementa el fan-out de notificaciones en proceso.
//
// Entrega at-most-once, best-effort, síncrona y en orden de suscripción.
// Sin persistencia, sin reintentos, sin ack.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Event es lo que se entrega a cada observer.
type Event struct {
	Type       string    `json:"type"`
	Subject    string    `json:"subject"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e Event) String() string {
	if e.Subject == "" {
		return e.Type
	}
	return e.Type + ": " + e.Subject
}

// Observer recibe eventos.
type Observer interface {
	Update(ctx context.Context, ev Event) error
}

// ObserverFunc adapta una función a Observer.
type ObserverFunc func(ctx context.Context, ev Event) error

func (f ObserverFunc) Update(ctx context.Context, ev Event) error { return f(ctx, ev) }

// Notifier es el registro de observers. Se construye en main y se inyecta.
type Notifier struct {
	mu        sync.Mutex
	observers []Observer
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe agrega el observer al final. No deduplica.
func (n *Notifier) Subscribe(o Observer) {
	if o == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.observers = append(n.observers, o)
}

func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.observers)
}

// Notify entrega ev a cada observer suscrito al momento de la llamada.
// Un observer que falla (error o panic) no corta la entrega al resto; los
// fallos se juntan en el error devuelto.
func (n *Notifier) Notify(ctx context.Context, ev Event) error {
	n.mu.Lock()
	snapshot := make([]Observer, len(n.observers))
	copy(snapshot, n.observers)
	n.mu.Unlock()

	var errs []error
	for i, o := range snapshot {
		if err := deliver(ctx, o, ev); err != nil {
			errs = append(errs, fmt.Errorf("observer %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func deliver(ctx context.Context, o Observer, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return o.Update(ctx, ev)
}
