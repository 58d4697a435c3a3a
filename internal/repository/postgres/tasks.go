package postgres

import (
	"context"
	"errors"
	"fmt"

	"workerTracker/internal/dates"
	"workerTracker/internal/logger"
	"workerTracker/internal/models/task"
	repo "workerTracker/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

const taskColumns = `id, name, task_type, is_completed, letter_value, subjective_content,
	is_daily, daily_position, scheduled_date, scheduled_time, end_time, has_time_required,
	duration, notification_time, is_recurring, recurring_type, recurring_days,
	recurring_end_date, created_at`

func scanTask(row pgx.Row) (*task.Task, error) {
	var (
		t             task.Task
		taskType      string
		recurringType *string
		recurringDays *string
		scheduled     pgtype.Date
		recurringEnd  pgtype.Date
	)
	err := row.Scan(&t.ID, &t.Name, &taskType, &t.IsCompleted, &t.LetterValue, &t.SubjectiveContent,
		&t.IsDaily, &t.DailyPosition, &scheduled, &t.ScheduledTime, &t.EndTime, &t.HasTimeRequired,
		&t.Duration, &t.NotificationTime, &t.IsRecurring, &recurringType, &recurringDays,
		&recurringEnd, &t.CreatedAt)
	if err != nil {
		return nil, err
	}

	t.TaskType = task.Type(taskType)
	if recurringType != nil {
		rt := task.RecurringType(*recurringType)
		t.RecurringType = &rt
	}
	t.RecurringDays = task.ParseDays(recurringDays)
	t.ScheduledDate = dayFromPg(scheduled)
	t.RecurringEndDate = dayFromPg(recurringEnd)
	return &t, nil
}

// taskArgs - значения изменяемых колонок в порядке taskColumns без id и created_at
func taskArgs(t *task.Task) []any {
	var recurringType *string
	if t.RecurringType != nil {
		rt := string(*t.RecurringType)
		recurringType = &rt
	}
	return []any{
		t.Name, string(t.TaskType), t.IsCompleted, t.LetterValue, t.SubjectiveContent,
		t.IsDaily, t.DailyPosition, dayParam(t.ScheduledDate), t.ScheduledTime, t.EndTime,
		t.HasTimeRequired, t.Duration, t.NotificationTime, t.IsRecurring, recurringType,
		task.FormatDays(t.RecurringDays), dayParam(t.RecurringEndDate),
	}
}

func (s *Storage) CreateTask(ctx context.Context, taskToCreate *task.Task) error {
	defer s.track("create_task")()

	query := `INSERT INTO tasks (name, task_type, is_completed, letter_value, subjective_content,
			is_daily, daily_position, scheduled_date, scheduled_time, end_time, has_time_required,
			duration, notification_time, is_recurring, recurring_type, recurring_days, recurring_end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query, taskArgs(taskToCreate)...).Scan(&taskToCreate.ID, &taskToCreate.CreatedAt)
	if err != nil {
		logger.Error("Repository: Ошибка создания задачи", err)
		return fmt.Errorf("создание задачи: %w", err)
	}

	logger.Debug("Repository: Задача сохранена", zap.Int64("task_id", taskToCreate.ID))
	return nil
}

func (s *Storage) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	defer s.track("get_task")()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка получения задачи", err, zap.Int64("task_id", id))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

func (s *Storage) ListTasks(ctx context.Context) ([]*task.Task, error) {
	defer s.track("list_tasks")()
	return s.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
}

func (s *Storage) ListDailyTasks(ctx context.Context) ([]*task.Task, error) {
	defer s.track("list_daily_tasks")()
	return s.queryTasks(ctx, `SELECT `+taskColumns+` FROM tasks WHERE is_daily ORDER BY id`)
}

func (s *Storage) ListTasksOnDay(ctx context.Context, day dates.DayKey) ([]*task.Task, error) {
	defer s.track("list_tasks_on_day")()
	return s.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE scheduled_date = $1 ORDER BY id`, dayParam(&day))
}

// UpdateTask читает строку под блокировкой, накладывает опции и пишет её целиком
func (s *Storage) UpdateTask(ctx context.Context, id int64, options ...task.TaskOption) (*task.Task, error) {
	defer s.track("update_task")()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: Ошибка начала транзакции", err)
		return nil, fmt.Errorf("начало транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка чтения задачи для обновления", err, zap.Int64("task_id", id))
		return nil, fmt.Errorf("чтение задачи: %w", err)
	}

	task.Apply(existing, options...)

	query := `UPDATE tasks
			SET name = $1, task_type = $2, is_completed = $3, letter_value = $4,
				subjective_content = $5, is_daily = $6, daily_position = $7,
				scheduled_date = $8, scheduled_time = $9, end_time = $10,
				has_time_required = $11, duration = $12, notification_time = $13,
				is_recurring = $14, recurring_type = $15, recurring_days = $16,
				recurring_end_date = $17
			WHERE id = $18`

	args := append(taskArgs(existing), id)
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		logger.Error("Repository: Ошибка обновления задачи", err, zap.Int64("task_id", id))
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: Ошибка фиксации транзакции", err)
		return nil, fmt.Errorf("фиксация транзакции: %w", err)
	}
	return existing, nil
}

func (s *Storage) DeleteTask(ctx context.Context, id int64) (bool, error) {
	defer s.track("delete_task")()

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Ошибка удаления задачи", err, zap.Int64("task_id", id))
		return false, fmt.Errorf("удаление задачи: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (s *Storage) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	return collectTasks(ctx, s.pool, query, args...)
}

func collectTasks(ctx context.Context, q querier, query string, args ...any) ([]*task.Task, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Ошибка выборки задач", err)
		return nil, fmt.Errorf("выборка задач: %w", err)
	}
	defer rows.Close()

	res := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("чтение строки задачи: %w", err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка обхода задач", err)
		return nil, fmt.Errorf("обход задач: %w", err)
	}
	return res, nil
}
