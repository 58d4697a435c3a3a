package postgres

import (
	"context"
	"errors"
	"fmt"

	"workerTracker/internal/logger"
	"workerTracker/internal/models/notification"
	repo "workerTracker/internal/repository"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const notificationColumns = `id, task_id, notification_time, is_read, created_at`

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var n notification.Notification
	if err := row.Scan(&n.ID, &n.TaskID, &n.NotificationTime, &n.IsRead, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.NotificationTime = n.NotificationTime.UTC()
	return &n, nil
}

func (s *Storage) CreateNotification(ctx context.Context, n *notification.Notification) error {
	defer s.track("create_notification")()

	query := `INSERT INTO notifications (task_id, notification_time)
		VALUES ($1, $2)
		RETURNING id, is_read, created_at`

	err := s.pool.QueryRow(ctx, query, n.TaskID, n.NotificationTime).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		logger.Error("Repository: Ошибка создания уведомления", err, zap.Int64("task_id", n.TaskID))
		return fmt.Errorf("создание уведомления: %w", err)
	}
	return nil
}

func (s *Storage) ListNotifications(ctx context.Context) ([]*notification.Notification, error) {
	defer s.track("list_notifications")()
	return s.queryNotifications(ctx, `SELECT `+notificationColumns+` FROM notifications ORDER BY id`)
}

func (s *Storage) ListUnreadNotifications(ctx context.Context) ([]*notification.Notification, error) {
	defer s.track("list_unread_notifications")()
	return s.queryNotifications(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE NOT is_read ORDER BY id`)
}

func (s *Storage) MarkNotificationRead(ctx context.Context, id int64) (*notification.Notification, error) {
	defer s.track("mark_notification_read")()

	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 RETURNING ` + notificationColumns

	n, err := scanNotification(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка отметки уведомления", err, zap.Int64("notification_id", id))
		return nil, fmt.Errorf("отметка уведомления: %w", err)
	}
	return n, nil
}

func (s *Storage) DeleteNotification(ctx context.Context, id int64) (bool, error) {
	defer s.track("delete_notification")()

	tag, err := s.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Ошибка удаления уведомления", err, zap.Int64("notification_id", id))
		return false, fmt.Errorf("удаление уведомления: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Storage) queryNotifications(ctx context.Context, query string) ([]*notification.Notification, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: Ошибка выборки уведомлений", err)
		return nil, fmt.Errorf("выборка уведомлений: %w", err)
	}
	defer rows.Close()

	res := []*notification.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("чтение строки уведомления: %w", err)
		}
		res = append(res, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("обход уведомлений: %w", err)
	}
	return res, nil
}
