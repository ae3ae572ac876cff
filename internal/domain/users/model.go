package users

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vet-clinic-records/internal/platform/httpx"
)

// Role del usuario dentro de la clínica.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// ParseRole devuelve el rol y si pertenece al enum.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleAdmin, RoleStaff:
		return r, true
	default:
		return "", false
	}
}

// Capabilities base que todo usuario tiene.
const (
	PermAppointmentView = "appointment:view"
	PermPetView         = "pet:view"
	PermTreatmentView   = "treatment:view"
)

var (
	ErrMissingFields = fmt.Errorf("%w: user: name, email, password are required", httpx.ErrValidation)
	ErrInvalidRole   = fmt.Errorf("%w: user: role must be admin or staff", httpx.ErrValidation)
)

// UserInput son los datos crudos con los que se construye un User,
// ya sea desde un request o desde un registro persistido.
type UserInput struct {
	ID       string
	Name     string
	Phone    string
	Email    string
	Password string // hash bcrypt
	Role     Role
	Position string
	Address  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// User es el actor autenticado. Los campos son privados: solo se mutan
// mediante los setters, que ignoran valores vacíos.
type User struct {
	id       string
	name     string
	phone    string
	email    string
	password string
	role     Role
	position string
	address  string

	createdAt time.Time
	updatedAt time.Time
}

func NewUser(in UserInput) (*User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, ErrMissingFields
	}

	role := RoleStaff
	if strings.TrimSpace(string(in.Role)) != "" {
		r, ok := ParseRole(string(in.Role))
		if !ok {
			return nil, ErrInvalidRole
		}
		role = r
	}

	return &User{
		id:        strings.TrimSpace(in.ID),
		name:      name,
		phone:     strings.TrimSpace(in.Phone),
		email:     email,
		password:  in.Password,
		role:      role,
		position:  strings.TrimSpace(in.Position),
		address:   strings.TrimSpace(in.Address),
		createdAt: in.CreatedAt,
		updatedAt: in.UpdatedAt,
	}, nil
}

func (u *User) ID() string           { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Phone() string        { return u.phone }
func (u *User) Email() string        { return u.email }
func (u *User) Role() Role           { return u.role }
func (u *User) Position() string     { return u.position }
func (u *User) Address() string      { return u.address }
func (u *User) PasswordHash() string { return u.password }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	u.name = name
}

func (u *User) SetPhone(phone string) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return
	}
	u.phone = phone
}

func (u *User) SetEmail(email string) {
	email = normalizeEmail(email)
	if email == "" {
		return
	}
	u.email = email
}

// SetPassword recibe el hash ya calculado.
func (u *User) SetPassword(hash string) {
	if hash == "" {
		return
	}
	u.password = hash
}

// SetRole solo acepta admin|staff. Cualquier otro valor se ignora en silencio.
func (u *User) SetRole(candidate string) {
	if r, ok := ParseRole(candidate); ok {
		u.role = r
	}
}

// SetPosition y SetAddress limpian el campo con input vacío.
func (u *User) SetPosition(position string) { u.position = strings.TrimSpace(position) }
func (u *User) SetAddress(address string)   { u.address = strings.TrimSpace(address) }

func (u *User) Touch(now time.Time) {
	if u.createdAt.IsZero() {
		u.createdAt = now
	}
	u.updatedAt = now
}

// Permissions es el set fijo de capabilities base. No depende del rol:
// la elevación de admin se resuelve en el gate de borrado, no acá.
func (u *User) Permissions() []string {
	return []string{PermAppointmentView, PermPetView, PermTreatmentView}
}

// VerifyCredential compara candidate contra el hash guardado.
// Un password incorrecto devuelve false, nunca error.
func (u *User) VerifyCredential(candidate string) bool {
	if u.password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.password), []byte(candidate)) == nil
}

// Principal devuelve la identidad que viaja en el request.
func (u *User) Principal() Principal {
	return Principal{ID: u.id, Name: u.name, Role: u.role}
}

// RequestShape es la proyección de escritura (incluye credencial, sin id).
type RequestShape struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Position string `json:"position,omitempty"`
	Address  string `json:"address,omitempty"`
	Role     Role   `json:"role"`
}

// Record es la proyección de lectura (incluye id, nunca la credencial).
type Record struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email"`
	Position string `json:"position,omitempty"`
	Address  string `json:"address,omitempty"`
	Role     Role   `json:"role"`
}

func (u *User) ToRequest() RequestShape {
	return RequestShape{
		Name:     u.name,
		Phone:    u.phone,
		Email:    u.email,
		Password: u.password,
		Position: u.position,
		Address:  u.address,
		Role:     u.role,
	}
}

func (u *User) ToRecord() Record {
	return Record{
		ID:       u.id,
		Name:     u.name,
		Phone:    u.phone,
		Email:    u.email,
		Position: u.position,
		Address:  u.address,
		Role:     u.role,
	}
}

// Principal es el actor de un request: identidad y rol.
type Principal struct {
	ID   string
	Name string
	Role Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
