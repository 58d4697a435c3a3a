package postgres

import (
	"context"
	"errors"
	"fmt"

	"workerTracker/internal/dates"
	"workerTracker/internal/logger"
	"workerTracker/internal/models/note"
	repo "workerTracker/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

const noteColumns = `id, title, content, associated_date, created_at`

func scanNote(row pgx.Row) (*note.Note, error) {
	var (
		n   note.Note
		day pgtype.Date
	)
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &day, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.AssociatedDate = dayFromPg(day)
	return &n, nil
}

func (s *Storage) CreateNote(ctx context.Context, n *note.Note) error {
	defer s.track("create_note")()

	query := `INSERT INTO notes (title, content, associated_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query, n.Title, n.Content, dayParam(n.AssociatedDate)).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		logger.Error("Repository: Ошибка создания заметки", err)
		return fmt.Errorf("создание заметки: %w", err)
	}
	return nil
}

func (s *Storage) GetNote(ctx context.Context, id int64) (*note.Note, error) {
	defer s.track("get_note")()

	n, err := scanNote(s.pool.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка получения заметки", err, zap.Int64("note_id", id))
		return nil, fmt.Errorf("получение заметки: %w", err)
	}
	return n, nil
}

func (s *Storage) ListNotes(ctx context.Context) ([]*note.Note, error) {
	defer s.track("list_notes")()
	return collectNotes(ctx, s.pool, `SELECT `+noteColumns+` FROM notes ORDER BY id`)
}

func (s *Storage) ListNotesOnDay(ctx context.Context, day dates.DayKey) ([]*note.Note, error) {
	defer s.track("list_notes_on_day")()
	return collectNotes(ctx, s.pool,
		`SELECT `+noteColumns+` FROM notes WHERE associated_date = $1 ORDER BY id`, dayParam(&day))
}

func (s *Storage) UpdateNote(ctx context.Context, id int64, options ...note.NoteOption) (*note.Note, error) {
	defer s.track("update_note")()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: Ошибка начала транзакции", err)
		return nil, fmt.Errorf("начало транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanNote(tx.QueryRow(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка чтения заметки для обновления", err, zap.Int64("note_id", id))
		return nil, fmt.Errorf("чтение заметки: %w", err)
	}

	note.Apply(existing, options...)

	_, err = tx.Exec(ctx, `UPDATE notes SET title = $1, content = $2, associated_date = $3 WHERE id = $4`,
		existing.Title, existing.Content, dayParam(existing.AssociatedDate), id)
	if err != nil {
		logger.Error("Repository: Ошибка обновления заметки", err, zap.Int64("note_id", id))
		return nil, fmt.Errorf("обновление заметки: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: Ошибка фиксации транзакции", err)
		return nil, fmt.Errorf("фиксация транзакции: %w", err)
	}
	return existing, nil
}

func (s *Storage) DeleteNote(ctx context.Context, id int64) (bool, error) {
	defer s.track("delete_note")()

	tag, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Ошибка удаления заметки", err, zap.Int64("note_id", id))
		return false, fmt.Errorf("удаление заметки: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func collectNotes(ctx context.Context, q querier, query string, args ...any) ([]*note.Note, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Ошибка выборки заметок", err)
		return nil, fmt.Errorf("выборка заметок: %w", err)
	}
	defer rows.Close()

	res := []*note.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("чтение строки заметки: %w", err)
		}
		res = append(res, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("обход заметок: %w", err)
	}
	return res, nil
}
