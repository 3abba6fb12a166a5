package ports

import (
	"context"

	"github.com/jhoicas/admin-console/internal/application/dto"
)

// ReportRenderer genera el reporte imprimible del dashboard (totales, gráficos y listados).
type ReportRenderer interface {
	RenderDashboard(ctx context.Context, data dto.DashboardData) ([]byte, error)
}
