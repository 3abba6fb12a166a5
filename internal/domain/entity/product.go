package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo remoto.
// Precio se decodifica del número JSON como decimal; Descripcion es opcional.
type Product struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Categoria   string          `json:"categoria"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Descripcion string          `json:"descripcion,omitempty"`
}
