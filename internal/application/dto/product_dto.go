package dto

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/admin-console/internal/domain"
	"github.com/jhoicas/admin-console/internal/domain/entity"
)

// Campos del modal de producto.
const (
	FieldNombre      = "nombre"
	FieldCategoria   = "categoria"
	FieldPrecio      = "precio"
	FieldStock       = "stock"
	FieldDescripcion = "descripcion"
)

// ProductFields conjunto de campos del modal de producto.
var ProductFields = []string{FieldNombre, FieldCategoria, FieldPrecio, FieldStock, FieldDescripcion}

// ProductPayload cuerpo de POST/PUT /api/productos (sin id).
// Precio viaja como número de punto flotante y Stock como entero.
type ProductPayload struct {
	Nombre      string  `json:"nombre"`
	Categoria   string  `json:"categoria"`
	Precio      float64 `json:"precio"`
	Stock       int     `json:"stock"`
	Descripcion string  `json:"descripcion"`
}

// ProductPayloadFromForm convierte los textos del modal a los tipos del backend.
// Un precio o stock mal formado, o negativo, devuelve *domain.InvalidNumberError.
func ProductPayloadFromForm(values map[string]string) (ProductPayload, error) {
	rawPrecio := strings.TrimSpace(values[FieldPrecio])
	precio, err := decimal.NewFromString(rawPrecio)
	if err != nil || precio.IsNegative() {
		return ProductPayload{}, &domain.InvalidNumberError{Field: FieldPrecio, Value: rawPrecio}
	}
	rawStock := strings.TrimSpace(values[FieldStock])
	stock, err := strconv.Atoi(rawStock)
	if err != nil || stock < 0 {
		return ProductPayload{}, &domain.InvalidNumberError{Field: FieldStock, Value: rawStock}
	}
	return ProductPayload{
		Nombre:      values[FieldNombre],
		Categoria:   values[FieldCategoria],
		Precio:      precio.InexactFloat64(),
		Stock:       stock,
		Descripcion: values[FieldDescripcion],
	}, nil
}

// ProductFormValues vuelca un producto al modal de edición (números como texto, descripción ausente → "").
func ProductFormValues(p entity.Product) map[string]string {
	return map[string]string{
		FieldNombre:      p.Nombre,
		FieldCategoria:   p.Categoria,
		FieldPrecio:      p.Precio.String(),
		FieldStock:       strconv.Itoa(p.Stock),
		FieldDescripcion: p.Descripcion,
	}
}
