package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/domain/entity"
)

// ListProducts GET /api/productos.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return list[entity.Product](ctx, c, pathProductos)
}

// CreateProduct POST /api/productos.
func (c *Client) CreateProduct(ctx context.Context, in dto.ProductPayload) error {
	return c.mutate(ctx, http.MethodPost, pathProductos, in, msgCreateProduct, true)
}

// UpdateProduct PUT /api/productos/{id}.
func (c *Client) UpdateProduct(ctx context.Context, id int64, in dto.ProductPayload) error {
	return c.mutate(ctx, http.MethodPut, itemPath(pathProductos, id), in, msgUpdateProduct, true)
}

// DeleteProduct DELETE /api/productos/{id}.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, itemPath(pathProductos, id), nil, msgDeleteProduct, false)
}
