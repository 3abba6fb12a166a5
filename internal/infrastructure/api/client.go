// Package api implementa ports.ResourceAPI sobre HTTP/JSON contra el backend REST.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/application/ports"
	"github.com/jhoicas/admin-console/internal/domain"
	"github.com/jhoicas/admin-console/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa ResourceAPI.
var _ ports.ResourceAPI = (*Client)(nil)

const (
	pathLogin     = "/auth/login"
	pathRegister  = "/auth/register"
	pathUsuarios  = "/api/usuarios"
	pathProductos = "/api/productos"

	maxBodyBytes = 1 << 20
)

// Mensajes por defecto cuando el servidor no envía "message".
const (
	msgLoginFailed    = "Error al iniciar sesión"
	msgRegisterFailed = "Error al registrar usuario"
	msgCreateUser     = "Error al crear usuario"
	msgUpdateUser     = "Error al actualizar usuario"
	msgDeleteUser     = "Error al eliminar usuario"
	msgCreateProduct  = "Error al crear producto"
	msgUpdateProduct  = "Error al actualizar producto"
	msgDeleteProduct  = "Error al eliminar producto"
)

// Client adaptador HTTP del backend. No guarda estado entre llamadas ni cachea listados.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. baseURL sin barra final, ej. "http://localhost:8080".
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Component("api"),
	}
}

// response resultado crudo de una llamada.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool { return r.status >= 200 && r.status < 300 }

// serverMessage extrae el campo "message" del cuerpo, si existe.
func (r response) serverMessage() string {
	var e dto.ErrorResponse
	if err := json.Unmarshal(r.body, &e); err != nil {
		return ""
	}
	return e.Message
}

// do ejecuta la petición. Los fallos de red se envuelven en domain.ErrTransport.
func (c *Client) do(ctx context.Context, method, path string, payload any) (response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return response{}, fmt.Errorf("api: serializar %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return response{}, fmt.Errorf("api: crear request %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return response{}, fmt.Errorf("api: %s %s cancelada: %w", method, path, ctx.Err())
		}
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend inaccesible")
		return response{}, fmt.Errorf("api: %s %s: %w (%w)", method, path, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return response{}, fmt.Errorf("api: leer respuesta %s %s: %w (%w)", method, path, domain.ErrTransport, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("petición API")

	return response{status: resp.StatusCode, body: raw}, nil
}

// mutate ejecuta una escritura. Si withServerMessage es false el error usa siempre fallback.
func (c *Client) mutate(ctx context.Context, method, path string, payload any, fallback string, withServerMessage bool) error {
	resp, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if resp.ok() {
		return nil
	}
	msg := ""
	if withServerMessage {
		msg = resp.serverMessage()
	}
	return domain.NewRequestFailed(resp.status, msg, fallback)
}

// list obtiene una colección completa. Un estado no-2xx degrada a slice vacío.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		c.log.Warn().Str("path", path).Int("status", resp.status).Msg("listado no disponible, se usa lista vacía")
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(resp.body, &items); err != nil {
		return nil, fmt.Errorf("api: decodificar %s: %w", path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func itemPath(base string, id int64) string {
	return fmt.Sprintf("%s/%d", base, id)
}
