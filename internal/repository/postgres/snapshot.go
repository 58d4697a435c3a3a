package postgres

import (
	"context"
	"fmt"

	"workerTracker/internal/dates"
	"workerTracker/internal/logger"
	"workerTracker/internal/models/note"
	"workerTracker/internal/models/task"

	"github.com/jackc/pgx/v5"
)

// CalendarSnapshot читает задачи и заметки в одной read-only транзакции REPEATABLE READ,
// так что обе выборки видят одно и то же состояние базы.
func (s *Storage) CalendarSnapshot(ctx context.Context, start, end dates.DayKey) ([]*task.Task, []*note.Note, error) {
	defer s.track("calendar_snapshot")()

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		logger.Error("Repository: Ошибка начала транзакции снимка", err)
		return nil, nil, fmt.Errorf("начало транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	from, to := dayParam(&start), dayParam(&end)

	tasks, err := collectTasks(ctx, tx,
		`SELECT `+taskColumns+` FROM tasks WHERE scheduled_date BETWEEN $1 AND $2 ORDER BY id`, from, to)
	if err != nil {
		return nil, nil, err
	}

	notes, err := collectNotes(ctx, tx,
		`SELECT `+noteColumns+` FROM notes WHERE associated_date BETWEEN $1 AND $2 ORDER BY id`, from, to)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("фиксация транзакции: %w", err)
	}
	return tasks, notes, nil
}
