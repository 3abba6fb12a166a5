package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/domain/entity"
)

// ListUsers GET /api/usuarios.
func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	return list[entity.User](ctx, c, pathUsuarios)
}

// CreateUser POST /api/usuarios.
func (c *Client) CreateUser(ctx context.Context, in dto.UserPayload) error {
	return c.mutate(ctx, http.MethodPost, pathUsuarios, in, msgCreateUser, true)
}

// UpdateUser PUT /api/usuarios/{id}. Sin password el backend conserva la actual.
func (c *Client) UpdateUser(ctx context.Context, id int64, in dto.UserPayload) error {
	return c.mutate(ctx, http.MethodPut, itemPath(pathUsuarios, id), in, msgUpdateUser, true)
}

// DeleteUser DELETE /api/usuarios/{id}. El error siempre usa el mensaje fijo.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, itemPath(pathUsuarios, id), nil, msgDeleteUser, false)
}
