package entity

import (
	"time"

	"github.com/google/uuid"
)

// Severity nivel de una alerta.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Alert mensaje transitorio mostrado tras una operación. Como máximo una visible a la vez.
type Alert struct {
	ID        uuid.UUID // UUIDv7, ordenado por tiempo
	Message   string
	Severity  Severity
	CreatedAt time.Time
}
