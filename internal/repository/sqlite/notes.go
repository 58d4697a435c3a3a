package sqlite

import (
	"context"
	"errors"
	"fmt"

	"workerTracker/internal/dates"
	"workerTracker/internal/logger"
	"workerTracker/internal/metrics"
	"workerTracker/internal/models/note"
	repo "workerTracker/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *Storage) CreateNote(ctx context.Context, n *note.Note) error {
	defer metrics.TrackStoreOperation(backend, "create_note").ObserveDuration()

	row := toNoteRow(n)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		logger.Error("Repository: Ошибка создания заметки", err)
		return fmt.Errorf("создание заметки: %w", err)
	}
	n.ID = row.ID
	n.CreatedAt = row.CreatedAt
	return nil
}

func (s *Storage) GetNote(ctx context.Context, id int64) (*note.Note, error) {
	defer metrics.TrackStoreOperation(backend, "get_note").ObserveDuration()

	var row noteRow
	if err := s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка получения заметки", err, zap.Int64("note_id", id))
		return nil, fmt.Errorf("получение заметки: %w", err)
	}
	return row.toNote(), nil
}

func (s *Storage) ListNotes(ctx context.Context) ([]*note.Note, error) {
	defer metrics.TrackStoreOperation(backend, "list_notes").ObserveDuration()
	return s.findNotes(s.db.WithContext(ctx))
}

func (s *Storage) ListNotesOnDay(ctx context.Context, day dates.DayKey) ([]*note.Note, error) {
	defer metrics.TrackStoreOperation(backend, "list_notes_on_day").ObserveDuration()
	return s.findNotes(s.db.WithContext(ctx).Where("associated_date = ?", day.String()))
}

func (s *Storage) UpdateNote(ctx context.Context, id int64, options ...note.NoteOption) (*note.Note, error) {
	defer metrics.TrackStoreOperation(backend, "update_note").ObserveDuration()

	var updated *note.Note
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row noteRow
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		updated = row.toNote()
		note.Apply(updated, options...)
		return tx.Save(toNoteRow(updated)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Ошибка обновления заметки", err, zap.Int64("note_id", id))
		return nil, fmt.Errorf("обновление заметки: %w", err)
	}
	return updated, nil
}

func (s *Storage) DeleteNote(ctx context.Context, id int64) (bool, error) {
	defer metrics.TrackStoreOperation(backend, "delete_note").ObserveDuration()

	res := s.db.WithContext(ctx).Delete(&noteRow{}, id)
	if res.Error != nil {
		logger.Error("Repository: Ошибка удаления заметки", res.Error, zap.Int64("note_id", id))
		return false, fmt.Errorf("удаление заметки: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Storage) findNotes(query *gorm.DB) ([]*note.Note, error) {
	var rows []noteRow
	if err := query.Order("id").Find(&rows).Error; err != nil {
		logger.Error("Repository: Ошибка выборки заметок", err)
		return nil, fmt.Errorf("выборка заметок: %w", err)
	}
	res := make([]*note.Note, 0, len(rows))
	for i := range rows {
		res = append(res, rows[i].toNote())
	}
	return res, nil
}
