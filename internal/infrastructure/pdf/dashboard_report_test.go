package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/admin-console/internal/application/dashboard"
	"github.com/jhoicas/admin-console/internal/application/dto"
)

func TestRenderDashboard_GeneraPDF(t *testing.T) {
	g := NewDashboardReport(nil)

	out, err := g.RenderDashboard(context.Background(), dashboard.Fallback())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderDashboard_SinDatos(t *testing.T) {
	g := NewDashboardReport(nil)

	out, err := g.RenderDashboard(context.Background(), dto.DashboardData{Charts: dashboard.Charts(dto.Stats{})})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderDashboard_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDashboardReport(nil).RenderDashboard(ctx, dashboard.Fallback())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 5, barWidth(decimal.RequireFromString("0.8")))
	assert.Equal(t, 1, barWidth(decimal.RequireFromString("0.2")))
	assert.Equal(t, 1, barWidth(decimal.RequireFromString("0.1")))
	assert.Equal(t, 0, barWidth(decimal.Zero))
	assert.Equal(t, barCols, barWidth(decimal.NewFromInt(3)))
}
