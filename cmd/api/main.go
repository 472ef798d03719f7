package main

import (
	"net/http"
	"time"

	"clinical-records/internal/adapters/auth/jwtauth"
	"clinical-records/internal/adapters/storage/postgres"
	"clinical-records/internal/platform/config"
	"clinical-records/internal/platform/logger"
	"clinical-records/internal/router"
)

// @title Clinical Records API
// @version 1.0
// @description Expedientes clínicos con control de acceso por rol y delegación de pacientes.
// @host localhost:8080
// @BasePath /api
func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		App:    cfg.AppName,
	})

	// Sin secreto no hay forma de verificar tokens: mejor no arrancar
	// que arrancar abierto.
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	opts := router.Options{
		Verifier:   jwtauth.NewVerifier(cfg.JWTSecret),
		Logger:     log,
		CORSOrigin: cfg.CORSOrigin,
	}

	if cfg.DBDSN != "" {
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to postgres")
		}
		defer db.Close()
		opts.DB = db
		log.Info().Msg("storage: postgres")
	} else {
		log.Warn().Msg("DB_DSN not set, using in-memory storage")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.New(opts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info().Str("addr", cfg.Addr).Msg("api listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
