package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/admin-console/internal/domain/entity"
)

// Stats tarjetas de resumen del dashboard.
type Stats struct {
	TotalUsuarios  int
	TotalProductos int
}

// ChartSlice porción de un gráfico de pastel.
type ChartSlice struct {
	Label string
	Value decimal.Decimal
	Share decimal.Decimal // fracción del total, 0..1
}

// Chart serie de porciones con título.
type Chart struct {
	Title  string
	Slices []ChartSlice
}

// DashboardData estado cargado del dashboard.
// Fallback indica que se muestra el conjunto de ejemplo porque el backend no respondió.
type DashboardData struct {
	Usuarios  []entity.User
	Productos []entity.Product
	Stats     Stats
	Charts    []Chart
	Fallback  bool
}
