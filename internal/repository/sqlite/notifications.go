package sqlite

import (
	"context"
	"errors"
	"fmt"

	"workerTracker/internal/logger"
	"workerTracker/internal/metrics"
	"workerTracker/internal/models/notification"
	repo "workerTracker/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *Storage) CreateNotification(ctx context.Context, n *notification.Notification) error {
	defer metrics.TrackStoreOperation(backend, "create_notification").ObserveDuration()

	row := &notificationRow{TaskID: n.TaskID, NotificationTime: n.NotificationTime.UTC()}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		logger.Error("Repository: Ошибка создания уведомления", err, zap.Int64("task_id", n.TaskID))
		return fmt.Errorf("создание уведомления: %w", err)
	}
	n.ID = row.ID
	n.IsRead = false
	n.CreatedAt = row.CreatedAt
	return nil
}

func (s *Storage) ListNotifications(ctx context.Context) ([]*notification.Notification, error) {
	defer metrics.TrackStoreOperation(backend, "list_notifications").ObserveDuration()
	return s.findNotifications(s.db.WithContext(ctx))
}

func (s *Storage) ListUnreadNotifications(ctx context.Context) ([]*notification.Notification, error) {
	defer metrics.TrackStoreOperation(backend, "list_unread_notifications").ObserveDuration()
	return s.findNotifications(s.db.WithContext(ctx).Where("is_read = ?", false))
}

func (s *Storage) MarkNotificationRead(ctx context.Context, id int64) (*notification.Notification, error) {
	defer metrics.TrackStoreOperation(backend, "mark_notification_read").ObserveDuration()

	var row notificationRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		row.IsRead = true
		return tx.Model(&row).Update("is_read", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка отметки уведомления", err, zap.Int64("notification_id", id))
		return nil, fmt.Errorf("отметка уведомления: %w", err)
	}
	return row.toNotification(), nil
}

func (s *Storage) DeleteNotification(ctx context.Context, id int64) (bool, error) {
	defer metrics.TrackStoreOperation(backend, "delete_notification").ObserveDuration()

	res := s.db.WithContext(ctx).Delete(&notificationRow{}, id)
	if res.Error != nil {
		logger.Error("Repository: Ошибка удаления уведомления", res.Error, zap.Int64("notification_id", id))
		return false, fmt.Errorf("удаление уведомления: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Storage) findNotifications(query *gorm.DB) ([]*notification.Notification, error) {
	var rows []notificationRow
	if err := query.Order("id").Find(&rows).Error; err != nil {
		logger.Error("Repository: Ошибка выборки уведомлений", err)
		return nil, fmt.Errorf("выборка уведомлений: %w", err)
	}
	res := make([]*notification.Notification, 0, len(rows))
	for i := range rows {
		res = append(res, rows[i].toNotification())
	}
	return res, nil
}
