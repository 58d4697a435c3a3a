package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"workerTracker/internal/logger"
	"workerTracker/internal/models/setting"
	rep "workerTracker/internal/repository"

	"go.uber.org/zap"
)

type SettingService struct {
	repo SettingRepository
}

func NewSettingService(repo SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

func (s *SettingService) GetSetting(ctx context.Context, key string) (*setting.Setting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, NewValidationError("key", "ключ не может быть пустым")
	}
	value, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		return nil, repoError(err, "настройка", key, "получение настройки")
	}
	return &setting.Setting{Key: key, Value: value}, nil
}

func (s *SettingService) SetSetting(ctx context.Context, key, value string) (*setting.Setting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, NewValidationError("key", "ключ не может быть пустым")
	}
	if key == setting.KeyDailyTasksCount {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 1 {
			return nil, NewValidationError("value", "dailyTasksCount должно быть положительным целым")
		}
		value = strconv.Itoa(n)
	}

	if err := s.repo.SetSetting(ctx, key, value); err != nil {
		logger.Error("Service: Не удалось сохранить настройку", err, zap.String("key", key))
		return nil, fmt.Errorf("сохранение настройки: %w", err)
	}

	logger.Info("Service: Настройка сохранена", zap.String("key", key), zap.String("value", value))
	return &setting.Setting{Key: key, Value: value}, nil
}

// dailyTasksCount читает лимит ежедневных слотов; без записи или при мусоре - значение по умолчанию
func dailyTasksCount(ctx context.Context, repo SettingRepository) (int, error) {
	raw, err := repo.GetSetting(ctx, setting.KeyDailyTasksCount)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return setting.DefaultDailyTasksCount, nil
		}
		return 0, fmt.Errorf("получение dailyTasksCount: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		logger.Warn("Service: Некорректное значение dailyTasksCount, используется значение по умолчанию",
			zap.String("value", raw))
		return setting.DefaultDailyTasksCount, nil
	}
	return n, nil
}
