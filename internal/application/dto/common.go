package dto

// ErrorResponse cuerpo de error devuelto por el backend.
type ErrorResponse struct {
	Message string `json:"message"`
}
