package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Drivers de caché local soportados.
const (
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Session SessionConfig
	Cache   CacheConfig
	Redis   RedisConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string `validate:"oneof=development staging production test"`
	Name     string `validate:"required"`
	LogLevel string `validate:"oneof=trace debug info warn error"`
	// SyncOnStartup empuja la caché local al almacén remoto antes de servir.
	SyncOnStartup bool
}

// DBConfig configuración de PostgreSQL (almacén remoto).
// Si DatabaseURL no está vacío, se usa como connection string completo.
// Sin DatabaseURL ni Host la app corre solo con la caché local.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int `validate:"omitempty,min=1,max=65535"`
	User        string
	Password    string
	DBName      string
	SSLMode     string `validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	// Migrate aplica las migraciones embebidas al arrancar.
	Migrate bool
}

// Enabled indica si hay un almacén remoto configurado.
func (c DBConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.Host != ""
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int `validate:"min=1"` // minutos
	Issuer     string
}

// SessionConfig candado por código de acceso. PasscodeHash vacío = sin candado.
type SessionConfig struct {
	PasscodeHash string
}

// Enabled indica si las rutas /api requieren sesión.
func (c SessionConfig) Enabled() bool {
	return c.PasscodeHash != ""
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int `validate:"min=1,max=65535"`
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig caché local de respaldo.
type CacheConfig struct {
	Driver string `validate:"oneof=memory file redis"`
	Dir    string `validate:"required_if=Driver file"`
}

// RedisConfig conexión a Redis (solo con CACHE_DRIVER=redis).
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int `validate:"min=0,max=15"`
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, CACHE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

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

	return FromViper(v)
}

// FromViper construye y valida la configuración desde una instancia de Viper ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:           getString(v, "APP_ENV", "development"),
			Name:          getString(v, "APP_NAME", "autoparts-ledger"),
			LogLevel:      getString(v, "LOG_LEVEL", "info"),
			SyncOnStartup: getBool(v, "SYNC_ON_STARTUP", true),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "autoparts_ledger"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			Migrate:     getBool(v, "DB_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 720),
			Issuer:     getString(v, "JWT_ISSUER", "autoparts-ledger"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Session: SessionConfig{
			PasscodeHash: getString(v, "PASSCODE_HASH", ""),
		},
		Cache: CacheConfig{
			Driver: strings.ToLower(getString(v, "CACHE_DRIVER", CacheFile)),
			Dir:    getString(v, "CACHE_DIR", "./data"),
		},
		Redis: RedisConfig{
			Host:     getString(v, "REDIS_HOST", "localhost"),
			Port:     getInt(v, "REDIS_PORT", 6379),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate aplica las reglas de los tags y las reglas cruzadas entre secciones.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config inválida: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config inválida: %w", err)
	}
	if c.Session.Enabled() && c.JWT.Secret == "" {
		return fmt.Errorf("config inválida: PASSCODE_HASH requiere JWT_SECRET")
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
