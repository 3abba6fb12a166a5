// Package sandbox levanta una API REST en memoria con las mismas rutas que el
// backend real (auth, usuarios, productos). Sirve como backend falso en los tests
// y como modo demostración de la consola (--sandbox).
package sandbox

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/pkg/logger"
)

// Config opciones del sandbox.
type Config struct {
	Addr      string // por defecto 127.0.0.1:0 (puerto libre)
	JWTSecret string
	JWTIssuer string
	Seed      bool // carga usuarios y productos de ejemplo
	Logger    *logger.Logger
}

// Request petición registrada por el sandbox (para aserciones en tests).
type Request struct {
	Method string
	Path   string
	Body   []byte
}

type failure struct {
	status  int
	message string
}

// Server API en memoria sobre Fiber.
type Server struct {
	app   *fiber.App
	ln    net.Listener
	store *store
	log   *logger.Logger

	mu       sync.Mutex
	requests []Request
	failures map[string]failure

	closeOnce sync.Once
	closeErr  error
}

// Start arranca el sandbox y devuelve cuando ya acepta conexiones.
func Start(cfg Config) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:0"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "sandbox-secret"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "admin-console-sandbox"
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("sandbox: escuchar en %s: %w", cfg.Addr, err)
	}

	s := &Server{
		// Coste mínimo: los hashes del sandbox no protegen nada y los tests crean muchos.
		store:    newStore(bcrypt.MinCost),
		ln:       ln,
		log:      cfg.Logger.Component("sandbox"),
		failures: make(map[string]failure),
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "admin-console-sandbox",
		Immutable:             true,
		DisableStartupMessage: true,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
	})
	s.app.Use(recover.New())
	s.app.Use(s.record)
	s.routes(cfg)

	if cfg.Seed {
		if err := s.seed(); err != nil {
			_ = ln.Close()
			return nil, err
		}
	}

	go func() {
		if err := s.app.Listener(ln); err != nil {
			s.log.Error().Err(err).Msg("sandbox finalizado")
		}
	}()
	s.log.Info().Str("url", s.URL()).Msg("sandbox escuchando")
	return s, nil
}

func (s *Server) routes(cfg Config) {
	authHandler := newAuthHandler(s.store, cfg.JWTSecret, cfg.JWTIssuer)
	auth := s.app.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)

	api := s.app.Group("/api")

	userHandler := newUserHandler(s.store)
	usuarios := api.Group("/usuarios")
	usuarios.Get("/", userHandler.List)
	usuarios.Post("/", userHandler.Create)
	usuarios.Put("/:id", userHandler.Update)
	usuarios.Delete("/:id", userHandler.Delete)

	productHandler := newProductHandler(s.store)
	productos := api.Group("/productos")
	productos.Get("/", productHandler.List)
	productos.Post("/", productHandler.Create)
	productos.Put("/:id", productHandler.Update)
	productos.Delete("/:id", productHandler.Delete)
}

// record guarda cada petición y aplica los fallos inyectados con Fail.
func (s *Server) record(c *fiber.Ctx) error {
	req := Request{
		Method: c.Method(),
		Path:   c.Path(),
		Body:   append([]byte(nil), c.Body()...),
	}
	s.mu.Lock()
	s.requests = append(s.requests, req)
	f, failing := s.failures[failureKey(req.Method, req.Path)]
	s.mu.Unlock()

	if failing {
		if f.message == "" {
			return c.SendStatus(f.status)
		}
		return c.Status(f.status).JSON(dto.ErrorResponse{Message: f.message})
	}
	return c.Next()
}

func failureKey(method, path string) string {
	return method + " " + path
}

// URL dirección base, ej. "http://127.0.0.1:43127".
func (s *Server) URL() string {
	return "http://" + s.ln.Addr().String()
}

// Close detiene el servidor. Llamadas posteriores devuelven el mismo resultado.
// Cierra también el listener: Fiber puede no haber empezado a servir todavía.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeErr = s.app.ShutdownWithContext(ctx)
		// Si Fiber ya lo cerró, el segundo Close solo devuelve "use of closed network connection".
		_ = s.ln.Close()
	})
	return s.closeErr
}

// Fail hace que method+path responda con status (y message en el cuerpo si no está vacío)
// hasta que se llame a Recover.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[failureKey(method, path)] = failure{status: status, message: message}
}

// Recover elimina todos los fallos inyectados.
func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]failure)
}

// Requests copia de las peticiones recibidas, en orden.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo filtra las peticiones por método y ruta.
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// AddUser crea un usuario directamente en el store.
func (s *Server) AddUser(in dto.UserPayload) (int64, error) {
	u, err := s.store.createUser(in)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// AddProduct crea un producto directamente en el store.
func (s *Server) AddProduct(in dto.ProductPayload) int64 {
	return s.store.createProduct(in).ID
}

// seed datos de demostración; la cuenta admin/admin123 permite entrar a la consola.
func (s *Server) seed() error {
	users := []dto.UserPayload{
		{Username: "admin", Password: "admin123", Firstname: "Admin", Lastname: "User", Country: "México"},
		{Username: "jperez", Password: "jperez123", Firstname: "Juan", Lastname: "Pérez", Country: "España"},
		{Username: "mgarcia", Password: "mgarcia123", Firstname: "María", Lastname: "García", Country: "Colombia"},
	}
	for _, u := range users {
		if _, err := s.store.createUser(u); err != nil {
			return fmt.Errorf("sandbox: seed usuario %s: %w", u.Username, err)
		}
	}
	products := []dto.ProductPayload{
		{Nombre: "Laptop HP", Categoria: "Electronics", Precio: 899.99, Stock: 15, Descripcion: "14 pulgadas, 16 GB RAM"},
		{Nombre: "Mouse Inalámbrico", Categoria: "Accesorios", Precio: 25.50, Stock: 50},
		{Nombre: "Teclado Mecánico", Categoria: "Accesorios", Precio: 120.00, Stock: 30},
		{Nombre: "Monitor 27\"", Categoria: "Electronics", Precio: 329.90, Stock: 8},
	}
	for _, p := range products {
		s.store.createProduct(p)
	}
	return nil
}
