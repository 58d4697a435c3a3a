package sqlite

import (
	"context"
	"errors"
	"fmt"

	"workerTracker/internal/dates"
	"workerTracker/internal/logger"
	"workerTracker/internal/metrics"
	"workerTracker/internal/models/task"
	repo "workerTracker/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *Storage) CreateTask(ctx context.Context, taskToCreate *task.Task) error {
	defer metrics.TrackStoreOperation(backend, "create_task").ObserveDuration()

	row := toTaskRow(taskToCreate)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		logger.Error("Repository: Ошибка создания задачи", err)
		return fmt.Errorf("создание задачи: %w", err)
	}
	taskToCreate.ID = row.ID
	taskToCreate.CreatedAt = row.CreatedAt
	return nil
}

func (s *Storage) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	defer metrics.TrackStoreOperation(backend, "get_task").ObserveDuration()

	var row taskRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка получения задачи", err, zap.Int64("task_id", id))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return row.toTask(), nil
}

func (s *Storage) ListTasks(ctx context.Context) ([]*task.Task, error) {
	defer metrics.TrackStoreOperation(backend, "list_tasks").ObserveDuration()
	return s.findTasks(s.db.WithContext(ctx))
}

func (s *Storage) ListDailyTasks(ctx context.Context) ([]*task.Task, error) {
	defer metrics.TrackStoreOperation(backend, "list_daily_tasks").ObserveDuration()
	return s.findTasks(s.db.WithContext(ctx).Where("is_daily = ?", true))
}

func (s *Storage) ListTasksOnDay(ctx context.Context, day dates.DayKey) ([]*task.Task, error) {
	defer metrics.TrackStoreOperation(backend, "list_tasks_on_day").ObserveDuration()
	return s.findTasks(s.db.WithContext(ctx).Where("scheduled_date = ?", day.String()))
}

func (s *Storage) UpdateTask(ctx context.Context, id int64, options ...task.TaskOption) (*task.Task, error) {
	defer metrics.TrackStoreOperation(backend, "update_task").ObserveDuration()

	var updated *task.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row taskRow
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		updated = row.toTask()
		task.Apply(updated, options...)
		return tx.Save(toTaskRow(updated)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка обновления задачи", err, zap.Int64("task_id", id))
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	return updated, nil
}

func (s *Storage) DeleteTask(ctx context.Context, id int64) (bool, error) {
	defer metrics.TrackStoreOperation(backend, "delete_task").ObserveDuration()

	res := s.db.WithContext(ctx).Delete(&taskRow{}, id)
	if res.Error != nil {
		logger.Error("Repository: Ошибка удаления задачи", res.Error, zap.Int64("task_id", id))
		return false, fmt.Errorf("удаление задачи: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Storage) findTasks(query *gorm.DB) ([]*task.Task, error) {
	var rows []taskRow
	if err := query.Order("id").Find(&rows).Error; err != nil {
		logger.Error("Repository: Ошибка выборки задач", err)
		return nil, fmt.Errorf("выборка задач: %w", err)
	}
	res := make([]*task.Task, 0, len(rows))
	for i := range rows {
		res = append(res, rows[i].toTask())
	}
	return res, nil
}
