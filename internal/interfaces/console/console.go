// Package console es el front end de texto: lee comandos línea a línea, los
// aplica sobre admin.App y vuelve a dibujar la pantalla activa.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jhoicas/admin-console/internal/application/admin"
	"github.com/jhoicas/admin-console/internal/domain"
	"github.com/jhoicas/admin-console/pkg/logger"
	"github.com/jhoicas/admin-console/pkg/numfmt"
)

// Config opciones de la consola.
type Config struct {
	In  io.Reader
	Out io.Writer
	// Interactive muestra el prompt y redibuja tras cada comando.
	Interactive bool
	Format      *numfmt.Formatter
	Logger      *logger.Logger
}

// Console bucle de lectura sobre una App.
type Console struct {
	app         *admin.App
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
	fmt         *numfmt.Formatter
	log         *logger.Logger
	commands    map[string]command

	// mu serializa escrituras a out: los temporizadores (login, alertas) no escriben, pero Confirm sí.
	mu sync.Mutex
}

// New construye la consola.
func New(app *admin.App, cfg Config) *Console {
	if cfg.Format == nil {
		cfg.Format = numfmt.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	c := &Console{
		app:         app,
		in:          bufio.NewScanner(cfg.In),
		out:         cfg.Out,
		interactive: cfg.Interactive,
		fmt:         cfg.Format,
		log:         cfg.Logger.Component("console"),
	}
	c.commands = c.registerCommands()
	return c
}

// Run procesa comandos hasta "salir", fin de la entrada o cancelación de ctx.
func (c *Console) Run(ctx context.Context) error {
	c.printf("Panel de Administración. Escribe \"ayuda\" para ver los comandos.\n")
	if c.interactive {
		c.render()
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.interactive {
			c.printf("%s> ", c.app.Router.Screen())
		}
		line, ok := c.readLine()
		if !ok {
			return c.in.Err()
		}
		quit, err := c.Execute(ctx, line)
		if err != nil {
			c.reportError(err)
		}
		if quit {
			return nil
		}
		if c.interactive {
			c.render()
		}
	}
}

// Execute interpreta una línea. Devuelve quit=true para "salir".
func (c *Console) Execute(ctx context.Context, line string) (quit bool, err error) {
	name, rest := splitCommand(line)
	if name == "" {
		return false, nil
	}
	cmd, ok := c.commands[name]
	if !ok {
		return false, fmt.Errorf("%w: comando desconocido %q", domain.ErrInvalidInput, name)
	}
	if cmd.auth && !c.app.Router.Authenticated() {
		return false, fmt.Errorf("%w: inicia sesión primero", domain.ErrInvalidInput)
	}
	c.log.Debug().Str("comando", name).Msg("ejecutando")
	return cmd.run(ctx, rest)
}

// Confirm implementa crud.Confirmer leyendo la siguiente línea de la entrada.
func (c *Console) Confirm(prompt string) bool {
	c.printf("%s (s/n) ", prompt)
	line, ok := c.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

// reportError los fallos del backend ya se muestran como alerta; el resto se imprime.
func (c *Console) reportError(err error) {
	var rf *domain.RequestFailedError
	if errors.As(err, &rf) || errors.Is(err, domain.ErrTransport) || errors.Is(err, domain.ErrInvalidNumber) {
		if !c.interactive {
			c.renderAlert()
		}
		return
	}
	c.printf("! %s\n", domain.UserMessage(err))
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// splitCommand separa la primera palabra (en minúsculas) del resto de la línea.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	name, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(name), strings.TrimSpace(rest)
}
