package service

import (
	"context"
	"fmt"
	"time"

	"workerTracker/internal/logger"
	"workerTracker/internal/models/notification"

	"go.uber.org/zap"
)

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// CreateNotification: существование задачи не проверяется, isRead всегда false
func (s *NotificationService) CreateNotification(ctx context.Context, taskID int64, at time.Time) (*notification.Notification, error) {
	if taskID < 1 {
		return nil, NewValidationError("taskId", "идентификатор задачи должен быть положительным")
	}
	if at.IsZero() {
		return nil, NewValidationError("notificationTime", "время уведомления обязательно")
	}

	n := &notification.Notification{
		TaskID:           taskID,
		NotificationTime: at.UTC(),
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		logger.Error("Service: Не удалось создать уведомление", err, zap.Int64("task_id", taskID))
		return nil, fmt.Errorf("создание уведомления: %w", err)
	}

	logger.Info("Service: Уведомление создано",
		zap.Int64("notification_id", n.ID),
		zap.Int64("task_id", taskID))
	return n, nil
}

func (s *NotificationService) ListNotifications(ctx context.Context) ([]*notification.Notification, error) {
	list, err := s.repo.ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение уведомлений: %w", err)
	}
	return list, nil
}

func (s *NotificationService) ListUnreadNotifications(ctx context.Context) ([]*notification.Notification, error) {
	list, err := s.repo.ListUnreadNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение непрочитанных уведомлений: %w", err)
	}
	return list, nil
}

func (s *NotificationService) MarkNotificationRead(ctx context.Context, id int64) (*notification.Notification, error) {
	n, err := s.repo.MarkNotificationRead(ctx, id)
	if err != nil {
		return nil, repoError(err, "уведомление", id, "отметка уведомления")
	}
	return n, nil
}

func (s *NotificationService) DeleteNotification(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.DeleteNotification(ctx, id)
	if err != nil {
		logger.Error("Service: Не удалось удалить уведомление", err, zap.Int64("notification_id", id))
		return false, fmt.Errorf("удаление уведомления: %w", err)
	}
	return deleted, nil
}
