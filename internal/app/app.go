package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"workerTracker/internal/config"
	"workerTracker/internal/handlers"
	"workerTracker/internal/logger"
	"workerTracker/internal/middleware"
	"workerTracker/internal/repository"
	"workerTracker/internal/repository/inmemory"
	"workerTracker/internal/repository/postgres"
	"workerTracker/internal/repository/sqlite"
	"workerTracker/internal/service"
	"workerTracker/internal/worker"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	storage   service.Storage
	worker    *worker.ReminderWorker
	shutdowns []func() // выполняются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

// Init собирает зависимости: логгер, хранилище, сервисы, маршруты, воркер.
func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	storage, err := NewStorage(ctx, a.config)
	if err != nil {
		a.shutdown()
		return nil, err
	}
	a.storage = storage
	a.shutdowns = append(a.shutdowns, storage.Close)

	a.router = NewRouter(a.config, BuildHandlers(storage, a.config))

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      otelhttp.NewHandler(a.router, "worker-tracker"),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	if a.config.Worker.Enabled {
		a.worker = worker.NewReminderWorker(storage, a.config.Worker.ReminderSpec)
	}

	logger.Info("Приложение инициализировано",
		zap.String("repository", a.config.Repository.Type),
		zap.String("addr", a.server.Addr),
		zap.Bool("worker", a.worker != nil))
	return a, nil
}

// NewStorage выбирает хранилище по repository.type.
func NewStorage(ctx context.Context, cfg *config.Config) (service.Storage, error) {
	switch cfg.Repository.Type {
	case repository.TypeInMemory:
		return inmemory.NewStorage(), nil
	case repository.TypePostgres:
		if err := postgres.MigrateUp(cfg.Database.URL); err != nil {
			return nil, err
		}
		return postgres.New(ctx, cfg.Database)
	case repository.TypeSQLite:
		return sqlite.New(cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("%w: %q", repository.ErrUnknownType, cfg.Repository.Type)
	}
}

func BuildHandlers(storage service.Storage, cfg *config.Config) *handlers.Handlers {
	calendarService := service.NewCalendarService(storage, cfg.Calendar.MaxRangeDays)
	taskService := service.NewTaskService(storage, storage)

	return &handlers.Handlers{
		Tasks:         handlers.NewTaskHandler(taskService, calendarService),
		Notes:         handlers.NewNoteHandler(service.NewNoteService(storage), calendarService),
		Notifications: handlers.NewNotificationHandler(service.NewNotificationService(storage)),
		Settings:      handlers.NewSettingHandler(service.NewSettingService(storage)),
		Calendar:      handlers.NewCalendarHandler(calendarService),
		Health:        handlers.NewHealthHandler(storage),
	}
}

func NewRouter(cfg *config.Config, h *handlers.Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if cfg.HTTP.RequestTimeout > 0 {
			r.Use(chimw.Timeout(cfg.HTTP.RequestTimeout))
		}
		r.Use(middleware.RateLimit(cfg.HTTP.RateLimitRPM))
		h.Mount(r)
	})
	return r
}

// Run блокируется до отмены ctx или ошибки сервера, затем останавливает всё по очереди.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	if a.worker != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.worker.Start(ctx); err != nil {
				errCh <- fmt.Errorf("воркер напоминаний: %w", err)
			}
		}()
	}

	go func() {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http сервер: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Получен сигнал остановки")
	case runErr = <-errCh:
		logger.Error("Аварийная остановка", runErr)
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer stop()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", err)
	}

	wg.Wait()
	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
