package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/inventory-service/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-service/internal/config"
	"github.com/tuanvumaihuynh/inventory-service/internal/http/apierr"
	"github.com/tuanvumaihuynh/inventory-service/internal/http/metric"
	"github.com/tuanvumaihuynh/inventory-service/internal/http/middleware"
	"github.com/tuanvumaihuynh/inventory-service/internal/http/swagger"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
	"github.com/tuanvumaihuynh/inventory-service/internal/session"
	"github.com/tuanvumaihuynh/inventory-service/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-service/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Dependencies are the application services the HTTP layer serves.
type Dependencies struct {
	AuthSvc     service.AuthService
	ProductSvc  service.ProductService
	SupplierSvc service.SupplierService
	AuditLog    service.AuditLog
	Sessions    *session.Manager
	Health      db.HealthChecker
}

// Service represents the HTTP service.
type Service struct {
	cfg       config.HTTP
	uploadCfg config.Upload
	logger    *slog.Logger
	metrics   *metric.Metrics
	validator validator.Validator

	deps Dependencies
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	uploadCfg config.Upload,
	log *slog.Logger,
	deps Dependencies,
) (*Service, error) {
	v, err := validator.NewDefaultValidator()
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	return &Service{
		cfg:       cfg,
		uploadCfg: uploadCfg,
		logger:    log.With(slog.String("service", "http")),
		metrics:   metric.New(),
		validator: v,
		deps:      deps,
	}, nil
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	handler, err := s.Handler(ctx)
	if err != nil {
		return nil, err
	}

	return s.RunWithServer(ctx, handler)
}

// Handler builds the complete router.
func (s *Service) Handler(ctx context.Context) (http.Handler, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		if err := swagger.Register(ctx, r); err != nil {
			return nil, fmt.Errorf("register swagger: %w", err)
		}
	}

	s.RegisterHandlers(r)

	return r, nil
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(s.cfg.CorsOrigins),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handle(s.register))
		r.Post("/login", s.handle(s.login))
		r.With(middleware.RequireSession(s.deps.Sessions, s.handleResponseError)).
			Get("/me", s.handle(s.me))
		r.Get("/users", s.handle(s.listUsers))
		r.Get("/users/{id}", s.handle(s.getUser))
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Route("/product", func(r chi.Router) {
			r.Post("/add", s.handle(s.addProduct))
			r.Get("/get/all", s.handle(s.listProducts))
			r.Get("/search", s.handle(s.searchProducts))
			r.Get("/{id}", s.handle(s.getProduct))
			r.Patch("/{id}", s.handle(s.updateProduct))
			r.Delete("/{id}", s.handle(s.removeProduct))
		})
		r.Route("/supplier", func(r chi.Router) {
			r.Post("/add", s.handle(s.addSupplier))
			r.Get("/get/all", s.handle(s.listSuppliers))
			r.Get("/search", s.handle(s.searchSuppliers))
			r.Delete("/{id}", s.handle(s.removeSupplier))
		})
	})

	r.Get("/logs", s.handle(s.listLogs))
	r.Get("/healthz", s.handle(s.healthz))

	mount := "/" + strings.Trim(s.uploadCfg.MountPath, "/")
	r.Handle(mount+"/*", http.StripPrefix(mount+"/", http.FileServer(http.Dir(s.uploadCfg.Dir))))

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

// handlerFunc is an http.HandlerFunc that reports failures instead of writing them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Service) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.handleResponseError(w, r, err)
		}
	}
}

func (s *Service) handleResponseError(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err, s.cfg.ExposeInternalErrors)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}

func (s *Service) healthz(w http.ResponseWriter, r *http.Request) error {
	ok, err := s.deps.Health.IsHealthy(r.Context())
	if err != nil || !ok {
		return apperr.DatabaseUnavailableErr.WrapParent(err)
	}

	return writeJSON(w, http.StatusOK, messageResponse{Message: "ok"})
}
