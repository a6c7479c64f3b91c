package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Source kinds accepted by USERS_SOURCE.
const (
	SourceHTTP  = "http"
	SourceMySQL = "mysql"
)

type Env struct {
	AppAddr string `env:"APP_ADDR" envDefault:":8080"`
	GinMode string `env:"GIN_MODE"`

	UsersSource          string        `env:"USERS_SOURCE" envDefault:"http"`
	UsersSourceURL       string        `env:"USERS_SOURCE_URL" envDefault:"https://jsonplaceholder.typicode.com/users"`
	UsersRefreshInterval time.Duration `env:"USERS_REFRESH_INTERVAL" envDefault:"5m"`
	UsersCacheTTL        time.Duration `env:"USERS_CACHE_TTL" envDefault:"1m"`
	DefaultPageSize      int           `env:"DEFAULT_PAGE_SIZE" envDefault:"3"`

	DB    Database
	Redis Redis

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Database holds the MySQL connection settings used when USERS_SOURCE=mysql.
type Database struct {
	User     string `env:"DB_USER" envDefault:"root"`
	Password string `env:"DB_PASSWORD"`
	Addr     string `env:"DB_ADDR" envDefault:"127.0.0.1:3306"`
	Name     string `env:"DB_NAME" envDefault:"dashboard"`
}

// Redis is optional; an empty URL disables the shared snapshot store.
type Redis struct {
	URL       string `env:"REDIS_URL"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"dashboard:"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}

	e.AppAddr = strings.TrimSpace(e.AppAddr)
	if e.AppAddr == "" {
		e.AppAddr = ":8080"
	}
	e.GinMode = strings.TrimSpace(e.GinMode)
	e.UsersSource = strings.ToLower(strings.TrimSpace(e.UsersSource))

	switch e.UsersSource {
	case SourceHTTP, SourceMySQL:
	default:
		return Env{}, fmt.Errorf("unsupported USERS_SOURCE %q", e.UsersSource)
	}
	if e.UsersSource == SourceHTTP && strings.TrimSpace(e.UsersSourceURL) == "" {
		return Env{}, fmt.Errorf("USERS_SOURCE_URL is required for the http source")
	}

	origins := e.CORSAllowedOrigins[:0]
	for _, o := range e.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	e.CORSAllowedOrigins = origins

	return e, nil
}
