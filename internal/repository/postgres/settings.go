package postgres

import (
	"context"
	"errors"
	"fmt"

	"workerTracker/internal/logger"
	repo "workerTracker/internal/repository"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func (s *Storage) GetSetting(ctx context.Context, key string) (string, error) {
	defer s.track("get_setting")()

	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка чтения настройки", err, zap.String("key", key))
		return "", fmt.Errorf("чтение настройки: %w", err)
	}
	return value, nil
}

func (s *Storage) SetSetting(ctx context.Context, key, value string) error {
	defer s.track("set_setting")()

	query := `INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`

	if _, err := s.pool.Exec(ctx, query, key, value); err != nil {
		logger.Error("Repository: Ошибка записи настройки", err, zap.String("key", key))
		return fmt.Errorf("запись настройки: %w", err)
	}
	return nil
}
