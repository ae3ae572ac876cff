package users

import "context"

// Repository persiste usuarios. GetBy* devuelven un error que envuelve
// httpx.ErrNotFound si no existe; Create devuelve httpx.ErrConflict si el
// email ya está registrado.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
