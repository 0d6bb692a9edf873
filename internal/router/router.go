package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-adoption-api/docs"
	fmem "pet-adoption-api/internal/adapters/files/memory"
	"pet-adoption-api/internal/config"
	"pet-adoption-api/internal/domain/adoptions"
	"pet-adoption-api/internal/domain/animals"
	"pet-adoption-api/internal/domain/shelters"
	"pet-adoption-api/internal/domain/users"
	"pet-adoption-api/internal/intake"
	"pet-adoption-api/internal/middleware"
	"pet-adoption-api/internal/platform/logger"
	"pet-adoption-api/internal/ports/auth"
	"pet-adoption-api/internal/ports/files"
)

type Options struct {
	Logger logger.Logger  // nil = Nop
	Config *config.Config // nil = FromEnv()

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	TokenIssuer  auth.TokenIssuer  // nil = login sin token

	// Opcionales: si no vienen, memoria.
	Stores *Stores
	Files  files.Storage

	AnimalsCache animals.ListingCache     // nil = sin cache
	Events       adoptions.EventPublisher // nil = sin eventos
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.FromEnv()
	}

	stores := MemoryStores()
	if opts.Stores != nil {
		stores = *opts.Stores
	}
	store := opts.Files
	if store == nil {
		log.Warn("no file storage configured, using memory", nil)
		store = fmem.New()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(cors.New(cfg.Server.CorsOptions()).Handler)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/uploads/{filename}", uploadsHandler(store, log))
	r.Get("/docs/*", httpSwagger.WrapHandler)

	in := intake.New(store, log, cfg.Files.MaxUploadBytes())

	// Services por módulo
	usersSvc := users.NewService(stores.Users)
	sheltersSvc := shelters.NewService(stores.Shelters)
	animalsSvc := animals.NewService(stores.Animals, sheltersSvc)
	if opts.AnimalsCache != nil {
		animalsSvc.WithCache(opts.AnimalsCache, log)
	}

	dir := directory{users: usersSvc, shelters: sheltersSvc, animals: animalsSvc}
	adoptionsSvc := adoptions.NewService(stores.Adoptions, adoptions.Deps{
		Users:    dir,
		Animals:  dir,
		Shelters: dir,
		Adopter:  dir,
		Events:   opts.Events,
		Log:      log,
	})

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		users.RegisterRoutes(api, usersSvc, in, opts.TokenIssuer, log)
		shelters.RegisterRoutes(api, sheltersSvc, in, opts.TokenIssuer, log)
		animals.RegisterRoutes(api, animalsSvc, in, log)
		adoptions.RegisterRoutes(api, adoptionsSvc, in, log)
	})

	return r
}
