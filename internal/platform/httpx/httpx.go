// Package httpx agrupa helpers HTTP compartidos por los handlers de dominio.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Errores centinela. Los dominios los envuelven con fmt.Errorf("%w: ...")
// y RespondError los traduce a status HTTP con errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// MessageResponse es el cuerpo {message} que usan los deletes, las
// denegaciones del gate y los errores.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON escribe v como JSON con el status indicado.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message escribe {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageResponse{Message: msg})
}

// StatusFor mapea un error de dominio a su status HTTP.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// RespondError escribe el error como {message}. Los errores no clasificados
// se ocultan detrás de "internal error".
func RespondError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		Message(w, status, "internal error")
		return
	}
	Message(w, status, err.Error())
}

// DecodeJSON decodifica el body rechazando campos desconocidos.
// Cualquier fallo se devuelve como ErrValidation.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid json", ErrValidation)
	}
	return nil
}
