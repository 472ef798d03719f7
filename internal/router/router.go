package router

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"clinical-records/internal/adapters/storage/memory"
	"clinical-records/internal/adapters/storage/postgres"
	"clinical-records/internal/domain/accessgrants"
	"clinical-records/internal/domain/appointments"
	"clinical-records/internal/domain/authz"
	"clinical-records/internal/domain/medicalrecords"
	"clinical-records/internal/domain/patients"
	"clinical-records/internal/middleware"
	"clinical-records/internal/ports/auth"

	_ "clinical-records/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Options agrupa las dependencias que main inyecta al router.
// Si DB es nil se usan los repos in-memory (modo dev / tests).
type Options struct {
	Verifier   auth.Verifier
	DB         *sql.DB
	Logger     zerolog.Logger
	CORSOrigin string
}

func New(opts Options) http.Handler {
	var (
		patientsRepo       patients.Repository
		appointmentsRepo   appointments.Repository
		medicalRecordsRepo medicalrecords.Repository
		grantsRepo         accessgrants.Repository
		usersDir           accessgrants.UserDirectory
	)

	if opts.DB != nil {
		patientsRepo = postgres.NewPatientsRepo(opts.DB)
		appointmentsRepo = postgres.NewAppointmentsRepo(opts.DB)
		medicalRecordsRepo = postgres.NewMedicalRecordsRepo(opts.DB)
		grantsRepo = postgres.NewAccessGrantsRepo(opts.DB)
		usersDir = postgres.NewUsersDirectory(opts.DB)
	} else {
		patientsRepo = memory.NewPatientsRepo()
		appointmentsRepo = memory.NewAppointmentsRepo()
		medicalRecordsRepo = memory.NewMedicalRecordsRepo()
		grantsRepo = memory.NewAccessGrantsRepo()
		// sin directorio de usuarios: el check de existencia se omite
	}

	patientsSvc := patients.NewService(patientsRepo)
	appointmentsSvc := appointments.NewService(appointmentsRepo)
	medicalRecordsSvc := medicalrecords.NewService(medicalRecordsRepo)
	grantsSvc := accessgrants.NewService(grantsRepo, patientsSvc, usersDir)

	engine := authz.NewEngine(grantsRepo)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)
	r.Use(httprate.LimitByIP(100, time.Minute))

	origin := opts.CORSOrigin
	if origin == "" {
		origin = "http://localhost:3000"
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", healthHandler)

		// Todo lo demás exige un bearer token válido.
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticate(opts.Verifier))

			patients.RegisterRoutes(protected, patientsSvc, engine)
			appointments.RegisterRoutes(protected, appointmentsSvc, engine)
			medicalrecords.RegisterRoutes(protected, medicalRecordsSvc, engine)
			accessgrants.RegisterRoutes(protected, grantsSvc)
		})
	})

	return r
}

// healthHandler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "backend is healthy"})
}
