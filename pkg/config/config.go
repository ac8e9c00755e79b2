package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App         AppConfig
	DB          DBConfig
	JWT         JWTConfig
	HTTP        HTTPConfig
	Redis       RedisConfig
	Numbering   NumberingConfig
	Alerts      AlertsConfig
	Idempotency IdempotencyConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Storage  string // postgres | memory
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	LockTimeout time.Duration // SET LOCAL lock_timeout por transacción
	TxTimeout   time.Duration // duración máxima de una transacción
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN arma el connection string con la contraseña escapada.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig almacén de claves de idempotencia. Addr vacío = almacenamiento en memoria de Fiber.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// IdempotencyConfig tiempo de vida de las respuestas guardadas por X-Idempotency-Key.
type IdempotencyConfig struct {
	TTL time.Duration
}

// NumberingConfig primeros correlativos de órdenes y solicitudes.
type NumberingConfig struct {
	OrderStart   int
	RequestStart int
}

// AlertsConfig revisión periódica de alertas.
type AlertsConfig struct {
	ScanInterval     time.Duration // 0 desactiva la revisión periódica
	StaleOrderDays   int
	StaleRequestDays int
	HighValueExit    string // decimal; "0" desactiva
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, REDIS_ADDR, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "bodega-api"),
			Storage:  getString(v, "APP_STORAGE", "postgres"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "bodega"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			LockTimeout: time.Duration(getInt(v, "DB_LOCK_TIMEOUT_MS", 3000)) * time.Millisecond,
			TxTimeout:   time.Duration(getInt(v, "DB_TX_TIMEOUT_MS", 15000)) * time.Millisecond,
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "bodega-api"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "HTTP_CORS_ORIGINS", "*"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Idempotency: IdempotencyConfig{
			TTL: time.Duration(getInt(v, "IDEMPOTENCY_TTL_MINUTES", 30)) * time.Minute,
		},
		Numbering: NumberingConfig{
			OrderStart:   getInt(v, "ORDER_NUMBER_START", 1),
			RequestStart: getInt(v, "REQUEST_NUMBER_START", 3400),
		},
		Alerts: AlertsConfig{
			ScanInterval:     time.Duration(getInt(v, "ALERTS_SCAN_INTERVAL_MINUTES", 60)) * time.Minute,
			StaleOrderDays:   getInt(v, "ALERTS_STALE_ORDER_DAYS", 10),
			StaleRequestDays: getInt(v, "ALERTS_STALE_REQUEST_DAYS", 5),
			HighValueExit:    getString(v, "ALERTS_HIGH_VALUE_EXIT", "0"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate revisa combinaciones inválidas antes de arrancar.
func (c *Config) Validate() error {
	var errs []error
	if c.App.Storage != "postgres" && c.App.Storage != "memory" {
		errs = append(errs, fmt.Errorf("APP_STORAGE debe ser postgres o memory, no %q", c.App.Storage))
	}
	if c.JWT.Secret == "" && c.App.Env == "production" {
		errs = append(errs, errors.New("JWT_SECRET es obligatorio en production"))
	}
	if c.Numbering.OrderStart < 1 || c.Numbering.RequestStart < 1 {
		errs = append(errs, errors.New("ORDER_NUMBER_START y REQUEST_NUMBER_START deben ser >= 1"))
	}
	if c.Alerts.StaleOrderDays < 1 || c.Alerts.StaleRequestDays < 1 {
		errs = append(errs, errors.New("ALERTS_STALE_*_DAYS deben ser >= 1"))
	}
	if d, err := decimal.NewFromString(c.Alerts.HighValueExit); err != nil || d.IsNegative() {
		errs = append(errs, fmt.Errorf("ALERTS_HIGH_VALUE_EXIT inválido: %q", c.Alerts.HighValueExit))
	}
	return errors.Join(errs...)
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}
