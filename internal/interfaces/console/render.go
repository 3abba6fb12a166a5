package console

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/application/form"
	"github.com/jhoicas/admin-console/internal/application/view"
	"github.com/jhoicas/admin-console/internal/domain/entity"
)

// render dibuja alerta, indicador de carga y la pantalla activa.
func (c *Console) render() {
	var b strings.Builder
	c.writeAlert(&b)
	if ops := c.app.Activity.Active(); len(ops) > 0 {
		fmt.Fprintf(&b, "(cargando: %s)\n", strings.Join(ops, ", "))
	}

	switch c.app.Router.Screen() {
	case view.ScreenAuth:
		c.writeAuth(&b)
	case view.ScreenDashboard:
		c.writeNav(&b)
		c.writeDashboard(&b)
	case view.ScreenProductos:
		c.writeNav(&b)
		c.writeProducts(&b)
	case view.ScreenUsuarios:
		c.writeNav(&b)
		c.writeUsers(&b)
	}
	c.printf("%s", b.String())
}

func (c *Console) renderAlert() {
	var b strings.Builder
	c.writeAlert(&b)
	c.printf("%s", b.String())
}

func (c *Console) writeAlert(b *strings.Builder) {
	a, ok := c.app.Alerts.Current()
	if !ok {
		return
	}
	tag := "OK"
	if a.Severity == entity.SeverityError {
		tag = "ERROR"
	}
	fmt.Fprintf(b, "[%s] %s\n", tag, a.Message)
}

func (c *Console) writeAuth(b *strings.Builder) {
	f := c.app.Auth.Form()
	fields := []string{dto.FieldUsername, dto.FieldPassword}
	if c.app.Router.LoginMode() {
		b.WriteString("== Iniciar Sesión ==\n")
	} else {
		b.WriteString("== Crear Cuenta ==\n")
		fields = dto.AuthFields
	}
	writeFields(b, f, fields)
	if c.app.Router.LoginMode() {
		b.WriteString("\"enviar\" para entrar, \"modo\" para registrarte.\n")
	} else {
		b.WriteString("\"enviar\" para registrarte, \"modo\" para volver al login.\n")
	}
}

func (c *Console) writeNav(b *strings.Builder) {
	current := c.app.Router.Section()
	parts := make([]string, 0, len(view.Sections))
	for _, s := range view.Sections {
		if s == current {
			parts = append(parts, "["+string(s)+"]")
			continue
		}
		parts = append(parts, string(s))
	}
	fmt.Fprintf(b, "%s | logout\n", strings.Join(parts, " "))
}

func (c *Console) writeDashboard(b *strings.Builder) {
	data := c.app.Dashboard.Data()
	if data.Fallback {
		b.WriteString("Sin conexión con el servidor: se muestran datos de ejemplo.\n")
	}
	fmt.Fprintf(b, "Total Usuarios: %s    Total Productos: %s\n",
		c.fmt.Int(data.Stats.TotalUsuarios), c.fmt.Int(data.Stats.TotalProductos))

	for _, ch := range data.Charts {
		fmt.Fprintf(b, "\n%s\n", ch.Title)
		tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
		for _, s := range ch.Slices {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
				s.Label, c.fmt.Amount(s.Value), c.fmt.Percent(s.Share), bar(s))
		}
		_ = tw.Flush()
	}
}

func (c *Console) writeProducts(b *strings.Builder) {
	p := c.app.Products
	b.WriteString("== Productos ==\n")
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNombre\tCategoría\tPrecio\tStock\tDescripción")
	for _, it := range p.Page() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.Nombre, it.Categoria, c.fmt.Price(it.Precio), c.fmt.Int(it.Stock), it.Descripcion)
	}
	_ = tw.Flush()
	writePager(b, p.Pager().Page(), p.TotalPages(), len(p.Items()))
	writeModal(b, "producto", p.Modal().IsOpen(), p.Modal().Mode(), p.Modal().SelectedID(), p.Modal().Form())
}

func (c *Console) writeUsers(b *strings.Builder) {
	p := c.app.Users
	b.WriteString("== Usuarios ==\n")
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUsuario\tNombre\tPaís")
	for _, it := range p.Page() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", it.ID, it.Username, it.FullName(), it.Country)
	}
	_ = tw.Flush()
	writePager(b, p.Pager().Page(), p.TotalPages(), len(p.Items()))
	writeModal(b, "usuario", p.Modal().IsOpen(), p.Modal().Mode(), p.Modal().SelectedID(), p.Modal().Form())
}

func writePager(b *strings.Builder, page, pages, total int) {
	if total == 0 {
		b.WriteString("(sin registros)\n")
		return
	}
	fmt.Fprintf(b, "Página %d de %d (%d registros)\n", page, pages, total)
}

func writeModal(b *strings.Builder, name string, open bool, mode form.Mode, id int64, f *form.Form) {
	if !open {
		return
	}
	if mode == form.ModeEdit {
		fmt.Fprintf(b, "-- Editar %s #%d --\n", name, id)
	} else {
		fmt.Fprintf(b, "-- Nuevo %s --\n", name)
	}
	writeFields(b, f, f.Fields())
	b.WriteString("\"guardar\" para enviar, \"cancelar\" para cerrar.\n")
}

// writeFields lista los campos; la contraseña se enmascara y los obligatorios vacíos llevan "*".
func writeFields(b *strings.Builder, f *form.Form, fields []string) {
	missing := map[string]bool{}
	for _, m := range f.Missing() {
		missing[m] = true
	}
	tw := tabwriter.NewWriter(b, 0, 0, 1, ' ', 0)
	for _, name := range fields {
		v := f.Get(name)
		if name == dto.FieldPassword && v != "" {
			v = strings.Repeat("*", len(v))
		}
		mark := ""
		if missing[name] {
			mark = " *"
		}
		fmt.Fprintf(tw, "  %s%s:\t%s\n", name, mark, v)
	}
	_ = tw.Flush()
}

const barWidth = 20

// bar barra de hasta barWidth caracteres proporcional a la porción.
func bar(s dto.ChartSlice) string {
	n := int(s.Share.Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
	if n < 0 {
		n = 0
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("#", n)
}
