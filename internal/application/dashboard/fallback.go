package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/domain/entity"
)

// Totales fijos del conjunto de ejemplo (no coinciden con la longitud de las listas).
const (
	fallbackTotalUsuarios  = 25
	fallbackTotalProductos = 150
)

// Fallback conjunto de ejemplo mostrado cuando el backend no responde.
func Fallback() dto.DashboardData {
	stats := dto.Stats{TotalUsuarios: fallbackTotalUsuarios, TotalProductos: fallbackTotalProductos}
	return dto.DashboardData{
		Usuarios: []entity.User{
			{ID: 1, Username: "admin", Firstname: "Admin", Lastname: "User", Country: "México"},
			{ID: 2, Username: "user1", Firstname: "Juan", Lastname: "Pérez", Country: "España"},
			{ID: 3, Username: "user2", Firstname: "María", Lastname: "García", Country: "Colombia"},
		},
		Productos: []entity.Product{
			{ID: 1, Nombre: "Laptop HP", Categoria: "Electronics", Precio: decimal.RequireFromString("899.99"), Stock: 15},
			{ID: 2, Nombre: "Mouse Inalámbrico", Categoria: "Accesorios", Precio: decimal.RequireFromString("25.50"), Stock: 50},
			{ID: 3, Nombre: "Teclado Mecánico", Categoria: "Accesorios", Precio: decimal.RequireFromString("120.00"), Stock: 30},
		},
		Stats:    stats,
		Charts:   Charts(stats),
		Fallback: true,
	}
}
