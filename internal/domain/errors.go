package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrValidation         = errors.New("validación fallida")
	ErrRemote             = errors.New("error del servidor de datos")
	ErrSubmitInProgress   = errors.New("la venta ya se está guardando")
)

// ValidationError dato faltante o inválido, detectado antes de cualquier llamada remota.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite errors.Is(err, ErrValidation) y errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || target == ErrInvalidInput
}

// StockExhaustedError el producto no tiene existencias para agregar una unidad más.
type StockExhaustedError struct {
	ProductID string
	Name      string
	Available int
}

func (e *StockExhaustedError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (disponibles: %d)", e.Name, e.Available)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *StockExhaustedError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// RemoteError falla devuelta por el procedimiento de venta. Message es el texto tal cual llegó.
type RemoteError struct {
	Message string
	Err     error
}

func (e *RemoteError) Error() string { return e.Message }

func (e *RemoteError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrRemote).
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote
}
