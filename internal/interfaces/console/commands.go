package console

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/admin-console/internal/application/crud"
	"github.com/jhoicas/admin-console/internal/application/view"
	"github.com/jhoicas/admin-console/internal/domain"
)

type command struct {
	usage string
	help  string
	auth  bool // requiere sesión iniciada
	run   func(ctx context.Context, args string) (bool, error)
}

// panel operaciones comunes de los paneles de usuarios y productos.
type panel interface {
	Name() string
	OpenCreate()
	OpenEdit(id int64) error
	Set(field, value string) error
	Cancel()
	Submit(ctx context.Context) error
	Delete(ctx context.Context, id int64, c crud.Confirmer) error
	GoTo(n int) int
	Next() int
	Prev() int
}

// registerCommands tabla de comandos; los alias comparten la misma entrada.
func (c *Console) registerCommands() map[string]command {
	cmds := map[string]command{}
	add := func(cmd command, names ...string) {
		for _, n := range names {
			cmds[n] = cmd
		}
	}

	add(command{usage: "ayuda", help: "muestra esta lista", run: c.cmdHelp}, "ayuda", "help", "?")
	add(command{usage: "salir", help: "cierra la consola", run: func(context.Context, string) (bool, error) {
		return true, nil
	}}, "salir", "quit", "exit")
	add(command{usage: "ver", help: "dibuja la pantalla actual", run: func(context.Context, string) (bool, error) {
		c.render()
		return false, nil
	}}, "ver", "show")

	// Formulario de acceso y modales.
	add(command{usage: "set <campo> <valor>", help: "escribe un campo del formulario abierto", run: c.cmdSet}, "set")
	add(command{usage: "enviar", help: "inicia sesión o registra, según el modo", run: c.cmdSubmit}, "enviar", "submit")
	add(command{usage: "modo", help: "alterna entre login y registro", run: func(context.Context, string) (bool, error) {
		if c.app.Router.Authenticated() {
			return false, fmt.Errorf("%w: ya hay una sesión iniciada", domain.ErrInvalidInput)
		}
		c.app.Auth.Toggle()
		return false, nil
	}}, "modo", "toggle")

	// Navegación.
	add(command{usage: "logout", help: "cierra la sesión", auth: true, run: func(context.Context, string) (bool, error) {
		c.app.Auth.Logout()
		return false, nil
	}}, "logout", "cerrar-sesion")
	add(command{usage: "ir <dashboard|productos|usuarios>", help: "cambia de sección", auth: true, run: c.cmdSection}, "ir", "section")
	for _, s := range view.Sections {
		sec := s
		add(command{usage: string(sec), help: "atajo de \"ir " + string(sec) + "\"", auth: true,
			run: func(ctx context.Context, _ string) (bool, error) { return c.cmdSection(ctx, string(sec)) },
		}, string(sec))
	}
	add(command{usage: "refrescar", help: "recarga usuarios y productos", auth: true, run: func(ctx context.Context, _ string) (bool, error) {
		_, err := c.app.Dashboard.Refresh(ctx)
		return false, err
	}}, "refrescar", "refresh")
	add(command{usage: "reporte <archivo.pdf>", help: "exporta el dashboard a PDF", auth: true, run: c.cmdReport}, "reporte", "report")

	// Paneles.
	add(command{usage: "pagina <n>", help: "salta a la página n", auth: true, run: c.cmdPage}, "pagina", "page")
	add(command{usage: "sig", help: "página siguiente", auth: true, run: c.onPanel(func(_ context.Context, p panel, _ string) error {
		p.Next()
		return nil
	})}, "sig", "next")
	add(command{usage: "ant", help: "página anterior", auth: true, run: c.onPanel(func(_ context.Context, p panel, _ string) error {
		p.Prev()
		return nil
	})}, "ant", "prev")
	add(command{usage: "nuevo", help: "abre el formulario de alta", auth: true, run: c.onPanel(func(_ context.Context, p panel, _ string) error {
		p.OpenCreate()
		return nil
	})}, "nuevo", "new")
	add(command{usage: "editar <id>", help: "abre el formulario de edición", auth: true, run: c.onPanel(func(_ context.Context, p panel, args string) error {
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return p.OpenEdit(id)
	})}, "editar", "edit")
	add(command{usage: "guardar", help: "envía el formulario abierto", auth: true, run: c.onPanel(func(ctx context.Context, p panel, _ string) error {
		return p.Submit(ctx)
	})}, "guardar", "save")
	add(command{usage: "cancelar", help: "cierra el formulario sin guardar", auth: true, run: c.onPanel(func(_ context.Context, p panel, _ string) error {
		p.Cancel()
		return nil
	})}, "cancelar", "cancel")
	add(command{usage: "eliminar <id>", help: "elimina un registro (pide confirmación)", auth: true, run: c.onPanel(func(ctx context.Context, p panel, args string) error {
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return p.Delete(ctx, id, c)
	})}, "eliminar", "delete")

	return cmds
}

func (c *Console) cmdHelp(context.Context, string) (bool, error) {
	seen := map[string]bool{}
	var lines []string
	for _, cmd := range c.commands {
		if seen[cmd.usage] {
			continue
		}
		seen[cmd.usage] = true
		lines = append(lines, fmt.Sprintf("  %-36s %s", cmd.usage, cmd.help))
	}
	sort.Strings(lines)
	c.printf("Comandos:\n%s\n", strings.Join(lines, "\n"))
	return false, nil
}

// cmdSet escribe en el formulario de acceso si no hay sesión, o en el modal del panel activo.
func (c *Console) cmdSet(_ context.Context, args string) (bool, error) {
	field, value, _ := strings.Cut(args, " ")
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		return false, fmt.Errorf("%w: uso: set <campo> <valor>", domain.ErrInvalidInput)
	}
	value = strings.TrimSpace(value)
	if !c.app.Router.Authenticated() {
		return false, c.app.Auth.Set(field, value)
	}
	p, err := c.currentPanel()
	if err != nil {
		return false, err
	}
	return false, p.Set(field, value)
}

func (c *Console) cmdSubmit(ctx context.Context, _ string) (bool, error) {
	if c.app.Router.Authenticated() {
		return false, fmt.Errorf("%w: usa \"guardar\" para enviar un formulario del panel", domain.ErrInvalidInput)
	}
	return false, c.app.Auth.Submit(ctx)
}

func (c *Console) cmdSection(_ context.Context, args string) (bool, error) {
	s, err := view.ParseSection(strings.ToLower(strings.TrimSpace(args)))
	if err != nil {
		return false, err
	}
	c.app.Router.SetSection(s)
	return false, nil
}

func (c *Console) cmdReport(ctx context.Context, args string) (bool, error) {
	name := strings.TrimSpace(args)
	if name == "" {
		name = "dashboard.pdf"
	}
	path, err := c.app.ExportReport(ctx, name)
	if err != nil {
		return false, err
	}
	c.printf("Reporte guardado en %s\n", path)
	return false, nil
}

func (c *Console) cmdPage(ctx context.Context, args string) (bool, error) {
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return false, fmt.Errorf("%w: página %q", domain.ErrInvalidInput, args)
	}
	return c.onPanel(func(_ context.Context, p panel, _ string) error {
		p.GoTo(n)
		return nil
	})(ctx, args)
}

// onPanel adapta una acción sobre el panel de la sección activa.
func (c *Console) onPanel(fn func(ctx context.Context, p panel, args string) error) func(context.Context, string) (bool, error) {
	return func(ctx context.Context, args string) (bool, error) {
		p, err := c.currentPanel()
		if err != nil {
			return false, err
		}
		return false, fn(ctx, p, args)
	}
}

func (c *Console) currentPanel() (panel, error) {
	switch c.app.Router.Section() {
	case view.SectionProductos:
		return c.app.Products, nil
	case view.SectionUsuarios:
		return c.app.Users, nil
	default:
		return nil, fmt.Errorf("%w: elige primero \"productos\" o \"usuarios\"", domain.ErrInvalidInput)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", domain.ErrInvalidInput, s)
	}
	return id, nil
}
