package appointments

import "time"

// UserRef es la referencia poblada al usuario dueño de la cita.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// PetRef es la referencia poblada a la mascota, con su dueño.
type PetRef struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	OwnerID string `json:"owner,omitempty"`
}

// Appointment es una cita tal como queda persistida. User y Pet vienen
// poblados por el repositorio al leer. Los tags JSON son los del payload
// de las notificaciones y de la API.
type Appointment struct {
	ID   string  `json:"id"`
	User UserRef `json:"user"`
	Pet  PetRef  `json:"pet"`

	Date        time.Time `json:"date"`
	Description string    `json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
