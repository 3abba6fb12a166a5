package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrTransport     = errors.New("no se pudo conectar con el servidor")
	ErrInvalidNumber = errors.New("valor numérico inválido")
	ErrNotConfirmed  = errors.New("operación cancelada por el usuario")
	ErrUnknownField  = errors.New("campo desconocido")
	ErrModalClosed   = errors.New("no hay formulario abierto")
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
)

// RequestFailedError respuesta no-2xx del backend.
// Message es el campo "message" del cuerpo, o el texto por defecto de la operación.
type RequestFailedError struct {
	Status  int
	Message string
}

func (e *RequestFailedError) Error() string {
	return e.Message
}

// NewRequestFailed construye el error usando fallback cuando el servidor no envió mensaje.
func NewRequestFailed(status int, serverMessage, fallback string) *RequestFailedError {
	msg := serverMessage
	if msg == "" {
		msg = fallback
	}
	return &RequestFailedError{Status: status, Message: msg}
}

// InvalidNumberError indica qué campo no pudo convertirse a número.
type InvalidNumberError struct {
	Field string
	Value string
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("%s: %q no es un valor válido", e.Field, e.Value)
}

func (e *InvalidNumberError) Unwrap() error { return ErrInvalidNumber }

// UserMessage traduce un error al texto que se muestra en la alerta.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Message
	}
	var inv *InvalidNumberError
	if errors.As(err, &inv) {
		return inv.Error()
	}
	if errors.Is(err, ErrTransport) {
		return ErrTransport.Error()
	}
	return err.Error()
}
