package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"vet-clinic-records/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

// LEFT JOIN: una referencia colgante vuelve solo con el id.
const appointmentSelect = `
	SELECT
		a.id, a.user_id, COALESCE(u.name, ''),
		a.pet_id, COALESCE(p.name, ''), COALESCE(p.owner_id, ''),
		a.date, a.description, a.created_at, a.updated_at
	FROM appointments a
	LEFT JOIN users u ON u.id = a.user_id
	LEFT JOIN pets p ON p.id = a.pet_id`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, user_id, pet_id, date, description, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.User.ID,
		a.Pet.ID,
		a.Date,
		a.Description,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		return appointments.Appointment{}, err
	}
	return r.GetByID(ctx, a.ID)
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET date = $2, description = $3, updated_at = $4
		WHERE id = $1
	`, a.ID, a.Date, a.Description, a.UpdatedAt)
	if err != nil {
		return appointments.Appointment{}, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.Appointment{}, ErrNotFound
	}
	return r.GetByID(ctx, a.ID)
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, ErrNotFound
	}

	a, err := scanAppointment(r.db.QueryRowContext(ctx, appointmentSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context, f appointments.ListFilter) ([]appointments.Appointment, error) {
	var (
		where []string
		args  []any
	)
	if f.UserID != "" {
		args = append(args, f.UserID)
		where = append(where, "a.user_id = $"+strconv.Itoa(len(args)))
	}
	if f.PetID != "" {
		args = append(args, f.PetID)
		where = append(where, "a.pet_id = $"+strconv.Itoa(len(args)))
	}

	q := appointmentSelect
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY a.date ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(row rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	err := row.Scan(
		&a.ID,
		&a.User.ID,
		&a.User.Name,
		&a.Pet.ID,
		&a.Pet.Name,
		&a.Pet.OwnerID,
		&a.Date,
		&a.Description,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}
