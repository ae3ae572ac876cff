package treatments

import "time"

// Treatment es una entrada de tratamiento en la historia clínica de una mascota.
type Treatment struct {
	ID    string
	PetID string

	Vet         string
	Date        time.Time
	Description string
	Cost        float64

	// Usuario de la clínica que registró el tratamiento.
	RecordedBy string

	CreatedAt time.Time
}
