package ports

import (
	"context"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/domain/entity"
)

// ResourceAPI define el puerto de salida hacia el backend REST (auth, usuarios, productos).
// Cualquier adaptador (HTTP, fake en memoria) debe implementar esta interfaz.
//
// Contrato de errores:
//   - fallo de red: error que envuelve domain.ErrTransport
//   - respuesta no-2xx en una mutación: *domain.RequestFailedError
//   - respuesta no-2xx en un listado: slice vacío y error nil
type ResourceAPI interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, in dto.RegisterRequest) error

	ListUsers(ctx context.Context) ([]entity.User, error)
	CreateUser(ctx context.Context, in dto.UserPayload) error
	UpdateUser(ctx context.Context, id int64, in dto.UserPayload) error
	DeleteUser(ctx context.Context, id int64) error

	ListProducts(ctx context.Context) ([]entity.Product, error)
	CreateProduct(ctx context.Context, in dto.ProductPayload) error
	UpdateProduct(ctx context.Context, id int64, in dto.ProductPayload) error
	DeleteProduct(ctx context.Context, id int64) error
}
