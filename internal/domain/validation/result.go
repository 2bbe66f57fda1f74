// Package validation contiene las reglas de negocio que se verifican antes de persistir
// Product, Sale, StandaloneCredit y Payment. Son funciones puras: no tocan repositorios,
// no lanzan pánicos y acumulan todas las reglas violadas (no solo la primera).
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/autoparts-ledger/internal/domain"
)

// Result resultado de una validación.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func newResult() *Result {
	return &Result{Valid: true, Errors: []string{}}
}

func (r *Result) addf(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Err devuelve nil si es válido; si no, un *Error con todos los mensajes.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Messages: append([]string(nil), r.Errors...)}
}

// Error error de validación con la lista de mensajes para el usuario.
// errors.Is(err, domain.ErrInvalidInput) es verdadero.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "validación: " + strings.Join(e.Messages, "; ")
}

// Unwrap permite errors.Is contra domain.ErrInvalidInput.
func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// Formatos de fecha aceptados en la entrada.
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate interpreta una fecha de entrada. Las fechas sin zona se leen en hora local
// (una fecha "de hoy" nunca queda en el futuro por diferencia de zona).
// Una cadena vacía o inválida devuelve el tiempo cero, que los validadores reportan.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("fecha vacía")
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida: %q", raw)
}

func checkDate(r *Result, date, now time.Time) {
	if date.IsZero() {
		r.addf("Date is required and must be a valid date")
		return
	}
	if date.After(now) {
		r.addf("Date cannot be in the future")
	}
}
