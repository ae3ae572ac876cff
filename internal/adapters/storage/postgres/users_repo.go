package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-clinic-records/internal/domain/users"
	"vet-clinic-records/internal/platform/httpx"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `id, name, phone, email, password, role, position, address, created_at, updated_at`

func (r *UsersRepo) Create(ctx context.Context, u *users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		u.ID(),
		u.Name(),
		u.Phone(),
		u.Email(),
		u.PasswordHash(),
		string(u.Role()),
		u.Position(),
		u.Address(),
		u.CreatedAt(),
		u.UpdatedAt(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: email already registered", httpx.ErrConflict)
	}
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u *users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			name = $2,
			phone = $3,
			email = $4,
			password = $5,
			role = $6,
			position = $7,
			address = $8,
			updated_at = $9
		WHERE id = $1
	`,
		u.ID(),
		u.Name(),
		u.Phone(),
		u.Email(),
		u.PasswordHash(),
		string(u.Role()),
		u.Position(),
		u.Address(),
		u.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already registered", httpx.ErrConflict)
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, strings.TrimSpace(id))
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
}

func (r *UsersRepo) getOne(ctx context.Context, q string, arg string) (*users.User, error) {
	if arg == "" {
		return nil, ErrNotFound
	}

	var (
		in      users.UserInput
		role    string
		created time.Time
		updated time.Time
	)
	err := r.db.QueryRowContext(ctx, q, arg).Scan(
		&in.ID,
		&in.Name,
		&in.Phone,
		&in.Email,
		&in.Password,
		&role,
		&in.Position,
		&in.Address,
		&created,
		&updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	in.Role = users.Role(role)
	in.CreatedAt = created
	in.UpdatedAt = updated

	return users.NewUser(in)
}
