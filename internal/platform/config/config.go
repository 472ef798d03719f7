package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config agrupa las variables que consume cmd/api.
// Nada de singletons: main carga una vez y pasa valores explícitos.
type Config struct {
	Addr      string
	DBDSN     string
	JWTSecret string

	CORSOrigin string

	LogLevel  string
	LogFormat string
	AppName   string
}

// Load lee .env (si existe) y arma la config desde env vars.
func Load() Config {
	// .env es opcional; en prod las vars vienen del entorno.
	_ = godotenv.Load()

	addr := ":8080"
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		addr = ":" + v
	}

	origin := strings.TrimSpace(os.Getenv("CORS_ORIGIN"))
	if origin == "" {
		origin = "http://localhost:3000" // frontend SPA en dev
	}

	return Config{
		Addr:       addr,
		DBDSN:      strings.TrimSpace(os.Getenv("DB_DSN")),
		JWTSecret:  strings.TrimSpace(os.Getenv("JWT_SECRET")),
		CORSOrigin: origin,
		LogLevel:   os.Getenv("LOG_LEVEL"),
		LogFormat:  os.Getenv("LOG_FORMAT"),
		AppName:    os.Getenv("APP_NAME"),
	}
}
