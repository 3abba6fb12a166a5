package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	UI      UIConfig
	Sandbox SandboxConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// APIConfig dirección del backend REST. Se fija al arrancar; no es editable desde la consola.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout devuelve el timeout por petición HTTP.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// UIConfig tiempos y tamaños de la interfaz.
type UIConfig struct {
	PageSize        int
	AlertTTLMs      int // auto-cierre de alertas
	LoginDelayMs    int // espera entre el aviso de login y la entrada al panel
	RegisterDelayMs int // espera entre el aviso de registro y la vuelta al login
	ReportDir       string
}

// AlertTTL devuelve la duración de una alerta visible.
func (c UIConfig) AlertTTL() time.Duration { return time.Duration(c.AlertTTLMs) * time.Millisecond }

// LoginDelay devuelve la espera posterior a un login exitoso.
func (c UIConfig) LoginDelay() time.Duration { return time.Duration(c.LoginDelayMs) * time.Millisecond }

// RegisterDelay devuelve la espera posterior a un registro exitoso.
func (c UIConfig) RegisterDelay() time.Duration {
	return time.Duration(c.RegisterDelayMs) * time.Millisecond
}

// SandboxConfig API en memoria para demostraciones sin backend.
type SandboxConfig struct {
	Enabled   bool
	JWTSecret string
	JWTIssuer string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, PAGE_SIZE, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "admin-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL:        strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8080"), "/"),
			TimeoutSeconds: getInt(v, "API_TIMEOUT_SECONDS", 10),
		},
		UI: UIConfig{
			PageSize:        getInt(v, "PAGE_SIZE", 10),
			AlertTTLMs:      getInt(v, "ALERT_TTL_MS", 5000),
			LoginDelayMs:    getInt(v, "LOGIN_DELAY_MS", 1000),
			RegisterDelayMs: getInt(v, "REGISTER_DELAY_MS", 2000),
			ReportDir:       getString(v, "REPORT_DIR", "."),
		},
		Sandbox: SandboxConfig{
			Enabled:   getBool(v, "SANDBOX_ENABLED", false),
			JWTSecret: getString(v, "SANDBOX_JWT_SECRET", "sandbox-secret"),
			JWTIssuer: getString(v, "SANDBOX_JWT_ISSUER", "admin-console-sandbox"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: API_BASE_URL inválida: %q", c.API.BaseURL)
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("config: PAGE_SIZE debe ser positivo (%d)", c.UI.PageSize)
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = 10
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
