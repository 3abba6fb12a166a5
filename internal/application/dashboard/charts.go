package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/admin-console/internal/application/dto"
)

type ratio struct {
	label string
	share decimal.Decimal
}

// Proporciones fijas de los gráficos del panel.
var (
	userRatios = []ratio{
		{"Usuarios Activos", decimal.RequireFromString("0.8")},
		{"Usuarios Inactivos", decimal.RequireFromString("0.2")},
	}
	productRatios = []ratio{
		{"En Stock", decimal.RequireFromString("0.7")},
		{"Bajo Stock", decimal.RequireFromString("0.2")},
		{"Sin Stock", decimal.RequireFromString("0.1")},
	}
)

// Charts deriva las series de los dos gráficos de pastel a partir de los totales.
func Charts(stats dto.Stats) []dto.Chart {
	return []dto.Chart{
		chart("Estado de Usuarios", stats.TotalUsuarios, userRatios),
		chart("Estado de Productos", stats.TotalProductos, productRatios),
	}
}

func chart(title string, total int, ratios []ratio) dto.Chart {
	t := decimal.NewFromInt(int64(total))
	slices := make([]dto.ChartSlice, 0, len(ratios))
	for _, r := range ratios {
		slices = append(slices, dto.ChartSlice{
			Label: r.label,
			Value: t.Mul(r.share),
			Share: r.share,
		})
	}
	return dto.Chart{Title: title, Slices: slices}
}
