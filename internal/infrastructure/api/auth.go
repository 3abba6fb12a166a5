package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/domain"
)

// Login envía las credenciales a POST /auth/login.
// El token de la respuesta se devuelve tal cual; el cliente no lo persiste.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, pathLogin, in)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, domain.NewRequestFailed(resp.status, resp.serverMessage(), msgLoginFailed)
	}
	out := &dto.LoginResponse{}
	if len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, out); err != nil {
			c.log.Debug().Err(err).Msg("respuesta de login sin JSON")
		}
	}
	return out, nil
}

// Register envía el perfil completo a POST /auth/register.
func (c *Client) Register(ctx context.Context, in dto.RegisterRequest) error {
	return c.mutate(ctx, http.MethodPost, pathRegister, in, msgRegisterFailed, true)
}
