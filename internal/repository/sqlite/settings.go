package sqlite

import (
	"context"
	"errors"
	"fmt"

	"workerTracker/internal/logger"
	"workerTracker/internal/metrics"
	repo "workerTracker/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Storage) GetSetting(ctx context.Context, key string) (string, error) {
	defer metrics.TrackStoreOperation(backend, "get_setting").ObserveDuration()

	var row settingRow
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка чтения настройки", err, zap.String("key", key))
		return "", fmt.Errorf("чтение настройки: %w", err)
	}
	return row.Value, nil
}

func (s *Storage) SetSetting(ctx context.Context, key, value string) error {
	defer metrics.TrackStoreOperation(backend, "set_setting").ObserveDuration()

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&settingRow{Key: key, Value: value}).Error
	if err != nil {
		logger.Error("Repository: Ошибка записи настройки", err, zap.String("key", key))
		return fmt.Errorf("запись настройки: %w", err)
	}
	return nil
}
