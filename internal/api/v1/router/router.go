package router

import (
	"net/http"

	"coursehub/internal/api/v1/dto"
	"coursehub/internal/api/v1/handler"
	"coursehub/internal/config"
	"coursehub/internal/middleware"
	"coursehub/internal/pubsub"
	"coursehub/internal/repository"
	"coursehub/internal/service"
	"coursehub/internal/storage"
	"coursehub/internal/util"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

const adminRole = "ADMIN"

// Dependencies are the infrastructure clients built by main. Queue and
// Publisher may be nil, in which case the matching side effects are skipped.
type Dependencies struct {
	Pool      *pgxpool.Pool
	Covers    storage.ObjectStore
	Queue     service.JobQueue
	Publisher pubsub.Publisher
	JWTKey    string
	Registry  *prometheus.Registry
}

func New(cfg *config.Config, deps Dependencies, logger zerolog.Logger) http.Handler {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initialized")

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	validate := dto.NewValidator()

	// Repositories & services & handlers
	courseRepo := repository.NewCourseRepo(deps.Pool)
	categoryRepo := repository.NewCategoryRepo(deps.Pool)
	sessionRepo := repository.NewSessionRepo(deps.Pool)
	commentRepo := repository.NewCommentRepo(deps.Pool)
	enrollmentRepo := repository.NewEnrollmentRepo(deps.Pool)
	userRepo := repository.NewUserRepo(deps.Pool)
	dlqRepo := repository.NewDLQRepository(deps.Pool)

	courseSvc := service.NewCourseService(service.CourseDeps{
		Courses:      courseRepo,
		Categories:   categoryRepo,
		Sessions:     sessionRepo,
		Comments:     commentRepo,
		Enrollments:  enrollmentRepo,
		Covers:       deps.Covers,
		Queue:        deps.Queue,
		Publisher:    deps.Publisher,
		CleanupQueue: cfg.CoverCleanupQueueName,
		CourseTopic:  cfg.PubSubCourseTopic,
	}, logger)
	sessionSvc := service.NewSessionService(sessionRepo, courseRepo, logger)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, courseRepo, userRepo, deps.Publisher, cfg.PubSubEnrollmentTopic, logger)
	dlqSvc := service.NewDLQService(dlqRepo)

	courseHandler := handler.NewCourseHandler(courseSvc, validate, logger)
	sessionHandler := handler.NewSessionHandler(sessionSvc, validate, logger)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc, validate, logger)
	dlqHandler := handler.NewDLQHandler(dlqSvc, logger)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(deps.JWTKey, logger)
	adminMiddleware := middleware.RequireRole(adminRole, logger)
	isLocalDev := cfg.PubSubEmulatorHost != ""
	pubsubAuthMiddleware := middleware.PubSubAuthMiddleware(isLocalDev, cfg.DLQEndpointURL, cfg.PubSubPushServiceAccountEmail, logger)
	metrics := middleware.NewMetrics(registry)

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)
	r.Use(chimw.RequestID, chimw.RealIP, middleware.LoggerMiddleware(logger), chimw.Recoverer, metrics.Middleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		util.WriteError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		util.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		util.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(v1 chi.Router) {
		courseHandler.RegisterRoutes(v1, authMiddleware, adminMiddleware)
		sessionHandler.RegisterRoutes(v1, authMiddleware, adminMiddleware)
		enrollmentHandler.RegisterRoutes(v1, authMiddleware)
		dlqHandler.RegisterRoutes(v1, pubsubAuthMiddleware)
	})

	return r
}

