package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrRemoteUnavailable la tienda remota no está configurada o no responde.
	ErrRemoteUnavailable = errors.New("tienda remota no disponible")
)

// ErrBusy otra instancia tiene tomada la operación (p. ej. sincronización en curso).
var ErrBusy = errors.New("operación en curso")
