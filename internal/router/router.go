package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	goredis "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/unrolled/secure"

	rdb "vet-clinic-records/internal/adapters/broadcast/redis"
	mem "vet-clinic-records/internal/adapters/storage/memory"
	pg "vet-clinic-records/internal/adapters/storage/postgres"
	_ "vet-clinic-records/internal/docs"
	"vet-clinic-records/internal/domain/appointments"
	"vet-clinic-records/internal/domain/authz"
	"vet-clinic-records/internal/domain/notify"
	"vet-clinic-records/internal/domain/pets"
	"vet-clinic-records/internal/domain/treatments"
	"vet-clinic-records/internal/domain/users"
	"vet-clinic-records/internal/middleware"
	"vet-clinic-records/internal/platform/httpx"
	"vet-clinic-records/internal/platform/logger"
	"vet-clinic-records/internal/ports/auth"
)

type Options struct {
	// Firma los tokens de login/registro. Requerido.
	TokenIssuer auth.TokenIssuer
	// Si es nil y TokenIssuer también verifica (jwtauth.Signer), se usa ese.
	AuthVerifier auth.AuthVerifier

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: si viene, los eventos de cita también salen por Redis.
	Redis        goredis.UniversalClient
	RedisChannel string

	// Observers extra que se suscriben al notifier (tests, integraciones).
	Observers []notify.Observer

	Logger logger.Logger

	DebugAuth          bool
	Production         bool
	LoginRatePerMinute int
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	verifier := opts.AuthVerifier
	if verifier == nil {
		if v, ok := opts.TokenIssuer.(auth.AuthVerifier); ok {
			verifier = v
		}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        opts.Production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !opts.Production,
	}).Handler)

	r.Use(middleware.AuthContext(verifier, opts.DebugAuth))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		userRepo        users.Repository
		petRepo         pets.Repository
		treatmentRepo   treatments.Repository
		appointmentRepo appointments.Repository
	)

	if opts.DB != nil {
		userRepo = pg.NewUsersRepo(opts.DB)
		petRepo = pg.NewPetsRepo(opts.DB)
		treatmentRepo = pg.NewTreatmentsRepo(opts.DB)
		appointmentRepo = pg.NewAppointmentsRepo(opts.DB)
	} else {
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo()
		treatmentRepo = mem.NewTreatmentRepo()
		appointmentRepo = mem.NewAppointmentRepo(userRepo, petRepo)
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo, opts.TokenIssuer)
	petsSvc := pets.NewService(petRepo)
	treatmentsSvc := treatments.NewService(treatmentRepo, treatments.PetLookupFunc(
		func(ctx context.Context, id string) (bool, error) {
			_, ok, err := petsSvc.Find(ctx, id)
			return ok, err
		}))
	appointmentsSvc := appointments.NewService(appointmentRepo)

	// Fan-out de notificaciones
	notifier := notify.NewNotifier()
	notifier.Subscribe(appointments.ParticipantsObserver(log))
	if opts.Redis != nil {
		notifier.Subscribe(rdb.NewObserver(opts.Redis, opts.RedisChannel))
	}
	for _, o := range opts.Observers {
		notifier.Subscribe(o)
	}

	gate := authz.NewAdminOnly(petsSvc, treatmentsSvc, log.With(map[string]any{"component": "authz"}))
	facade := appointments.NewFacade(petsSvc, appointmentsSvc, notifier, log.With(map[string]any{"component": "appointments"}))

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, authLimiter(opts.LoginRatePerMinute))
	pets.RegisterRoutes(r, petsSvc, gate)
	treatments.RegisterRoutes(r, treatmentsSvc, gate)
	appointments.RegisterRoutes(r, appointmentsSvc, facade)

	return r
}

// authLimiter limita register/login por IP.
func authLimiter(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return nil
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Message(w, http.StatusTooManyRequests, "too many requests")
		}),
	)
}
