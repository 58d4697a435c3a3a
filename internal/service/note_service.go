package service

import (
	"context"
	"fmt"
	"strings"

	"workerTracker/internal/logger"
	"workerTracker/internal/models/note"
	"workerTracker/internal/optional"

	"go.uber.org/zap"
)

// NoteInput: null или пустая строка в AssociatedDate отвязывает заметку от дня
type NoteInput struct {
	Title          *string
	Content        *string
	AssociatedDate optional.Value[string]
}

type NoteService struct {
	repo NoteRepository
}

func NewNoteService(repo NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

func (s *NoteService) CreateNote(ctx context.Context, in NoteInput) (*note.Note, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, NewValidationError("title", "заголовок не может быть пустым")
	}
	if in.Content == nil {
		return nil, NewValidationError("content", "содержание обязательно")
	}

	options, err := noteOptions(in)
	if err != nil {
		return nil, err
	}

	newNote := &note.Note{}
	note.Apply(newNote, options...)

	if err := s.repo.CreateNote(ctx, newNote); err != nil {
		logger.Error("Service: Не удалось создать заметку", err)
		return nil, fmt.Errorf("создание заметки: %w", err)
	}

	logger.Info("Service: Заметка создана", zap.Int64("note_id", newNote.ID))
	return newNote, nil
}

func (s *NoteService) GetNote(ctx context.Context, id int64) (*note.Note, error) {
	n, err := s.repo.GetNote(ctx, id)
	if err != nil {
		return nil, repoError(err, "заметка", id, "получение заметки")
	}
	return n, nil
}

func (s *NoteService) ListNotes(ctx context.Context) ([]*note.Note, error) {
	notes, err := s.repo.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение заметок: %w", err)
	}
	return notes, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, id int64, in NoteInput) (*note.Note, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, NewValidationError("title", "заголовок не может быть пустым")
	}

	options, err := noteOptions(in)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateNote(ctx, id, options...)
	if err != nil {
		return nil, repoError(err, "заметка", id, "обновление заметки")
	}

	logger.Info("Service: Заметка обновлена", zap.Int64("note_id", id))
	return updated, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.DeleteNote(ctx, id)
	if err != nil {
		logger.Error("Service: Не удалось удалить заметку", err, zap.Int64("note_id", id))
		return false, fmt.Errorf("удаление заметки: %w", err)
	}
	return deleted, nil
}

func noteOptions(in NoteInput) ([]note.NoteOption, error) {
	var options []note.NoteOption

	if in.Title != nil {
		options = append(options, note.WithTitle(strings.TrimSpace(*in.Title)))
	}
	if in.Content != nil {
		options = append(options, note.WithContent(*in.Content))
	}
	if in.AssociatedDate.Set {
		day, err := optionalDay("associatedDate", in.AssociatedDate.Value)
		if err != nil {
			return nil, err
		}
		options = append(options, note.WithAssociatedDate(day))
	}
	return options, nil
}
