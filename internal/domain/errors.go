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
	ErrInvalidOperation   = errors.New("operación no permitida")
	ErrPaymentFailed      = errors.New("pago rechazado por la pasarela")
)

// PaymentError envuelve el rechazo de la pasarela con el código y mensaje que
// devolvió (card_declined, invalid_token, fallo de red). No hay reintento
// automático: el caller decide si el usuario reintenta con un token nuevo.
type PaymentError struct {
	Code    string // código del gateway, ej "card_declined"; "network" si no hubo respuesta
	Message string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("pago rechazado (%s): %s", e.Code, e.Message)
}

// Unwrap permite errors.Is(err, ErrPaymentFailed) sobre el error tipado.
func (e *PaymentError) Unwrap() error { return ErrPaymentFailed }
