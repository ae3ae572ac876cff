package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"vet-clinic-records/internal/domain/users"
	"vet-clinic-records/internal/platform/httpx"
)

type userRepo struct {
	mu      sync.RWMutex
	byID    map[string]users.User
	byEmail map[string]string
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:    make(map[string]users.User),
		byEmail: make(map[string]string),
	}
}

// Se guardan copias para que las mutaciones del servicio solo persistan vía Update.

func (r *userRepo) Create(ctx context.Context, u *users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID()) == "" {
		return errors.New("user id required")
	}
	if _, taken := r.byEmail[u.Email()]; taken {
		return fmt.Errorf("%w: email already registered", httpx.ErrConflict)
	}
	r.byID[u.ID()] = *u
	r.byEmail[u.Email()] = u.ID()
	return nil
}

func (r *userRepo) Update(ctx context.Context, u *users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[u.ID()]
	if !ok {
		return ErrNotFound
	}
	if owner, taken := r.byEmail[u.Email()]; taken && owner != u.ID() {
		return fmt.Errorf("%w: email already registered", httpx.ErrConflict)
	}
	delete(r.byEmail, prev.Email())
	r.byID[u.ID()] = *u
	r.byEmail[u.Email()] = u.ID()
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}
