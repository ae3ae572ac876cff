package postgres

import (
	"context"
	"database/sql"

	"vet-clinic-records/internal/domain/treatments"
)

type TreatmentsRepo struct {
	db *sql.DB
}

func NewTreatmentsRepo(db *sql.DB) *TreatmentsRepo {
	return &TreatmentsRepo{db: db}
}

func (r *TreatmentsRepo) Create(ctx context.Context, t treatments.Treatment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO treatments (
			id, pet_id, vet, date, description, cost, recorded_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		t.ID,
		t.PetID,
		t.Vet,
		t.Date,
		t.Description,
		t.Cost,
		t.RecordedBy,
		t.CreatedAt,
	)
	return err
}

func (r *TreatmentsRepo) ListByPet(ctx context.Context, petID string) ([]treatments.Treatment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, vet, date, description, cost, recorded_by, created_at
		FROM treatments
		WHERE pet_id = $1
		ORDER BY date ASC, created_at ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]treatments.Treatment, 0)
	for rows.Next() {
		var t treatments.Treatment
		if err := rows.Scan(
			&t.ID,
			&t.PetID,
			&t.Vet,
			&t.Date,
			&t.Description,
			&t.Cost,
			&t.RecordedBy,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TreatmentsRepo) Delete(ctx context.Context, petID, treatmentID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM treatments WHERE id = $1 AND pet_id = $2`, treatmentID, petID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
