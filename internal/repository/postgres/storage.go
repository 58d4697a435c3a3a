package postgres

import (
	"context"
	"fmt"
	"time"

	"workerTracker/internal/config"
	"workerTracker/internal/dates"
	"workerTracker/internal/logger"
	"workerTracker/internal/metrics"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const backend = "postgres"

type Storage struct {
	pool          *pgxpool.Pool
	slowThreshold time.Duration
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = int32(cfg.MinConnections)
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	threshold := cfg.SlowQueryThreshold
	if threshold <= 0 {
		threshold = 100 * time.Millisecond
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL",
		zap.Int32("max_conns", poolConfig.MaxConns))
	return &Storage{pool: pool, slowThreshold: threshold}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	logger.Debug("Repository: Соединение стабильно")
	return nil
}

// track замеряет операцию: гистограмма по бэкенду и предупреждение о медленном запросе.
// Использование: defer s.track("create_task")()
func (s *Storage) track(operation string) func() {
	start := time.Now()
	timer := metrics.TrackStoreOperation(backend, operation)
	return func() {
		timer.ObserveDuration()
		if elapsed := time.Since(start); elapsed > s.slowThreshold {
			logger.Warn("Repository: Медленная операция",
				zap.String("operation", operation),
				zap.Duration("ms", elapsed))
		}
	}
}

func dayParam(day *dates.DayKey) pgtype.Date {
	if day == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: day.Time(), Valid: true}
}

func dayFromPg(d pgtype.Date) *dates.DayKey {
	if !d.Valid {
		return nil
	}
	key := dates.DayKeyOf(d.Time)
	return &key
}
