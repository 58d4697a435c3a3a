package service

import (
	"context"
	"fmt"

	"workerTracker/internal/dates"
	"workerTracker/internal/logger"
	"workerTracker/internal/metrics"
	"workerTracker/internal/models/calendar"
	"workerTracker/internal/models/note"
	"workerTracker/internal/models/task"

	"go.uber.org/zap"
)

const DefaultMaxRangeDays = 366

// CalendarReader - то, что нужно агрегатору от хранилища.
type CalendarReader interface {
	ListDailyTasks(ctx context.Context) ([]*task.Task, error)
	ListTasksOnDay(ctx context.Context, day dates.DayKey) ([]*task.Task, error)
	ListNotesOnDay(ctx context.Context, day dates.DayKey) ([]*note.Note, error)
	CalendarRepository
}

type CalendarService struct {
	repo         CalendarReader
	maxRangeDays int
}

func NewCalendarService(repo CalendarReader, maxRangeDays int) *CalendarService {
	if maxRangeDays < 1 {
		maxRangeDays = DefaultMaxRangeDays
	}
	return &CalendarService{
		repo:         repo,
		maxRangeDays: maxRangeDays,
	}
}

func (s *CalendarService) TasksOnDay(ctx context.Context, day string) ([]*task.Task, error) {
	key, err := parseDay("date", day)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListTasksOnDay(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("получение задач на день: %w", err)
	}
	return tasks, nil
}

func (s *CalendarService) NotesOnDay(ctx context.Context, day string) ([]*note.Note, error) {
	key, err := parseDay("date", day)
	if err != nil {
		return nil, err
	}
	notes, err := s.repo.ListNotesOnDay(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("получение заметок на день: %w", err)
	}
	return notes, nil
}

func (s *CalendarService) DailyTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.ListDailyTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение ежедневных задач: %w", err)
	}
	return tasks, nil
}

// AggregateRange раскладывает задачи и заметки по дням отрезка [start, end].
// Данные берутся одним снимком и обходятся один раз.
func (s *CalendarService) AggregateRange(ctx context.Context, start, end string) (*calendar.Calendar, error) {
	startKey, err := parseDay("startDate", start)
	if err != nil {
		return nil, err
	}
	endKey, err := parseDay("endDate", end)
	if err != nil {
		return nil, err
	}

	n, err := dates.DaysBetween(startKey, endKey)
	if err != nil {
		return nil, &BusinessError{
			Code:    CodeValidation,
			Message: "Начало диапазона позже конца",
			Details: map[string]any{"startDate": startKey.String(), "endDate": endKey.String()},
			Err:     err,
		}
	}
	if n > s.maxRangeDays {
		return nil, NewBusinessError(CodeValidation,
			fmt.Sprintf("Диапазон больше %d дней", s.maxRangeDays),
			ToDetail("days", n),
			ToDetail("maxDays", s.maxRangeDays))
	}

	metrics.CalendarRangeDays.Observe(float64(n))

	days, err := dates.Range(startKey, endKey)
	if err != nil {
		return nil, fmt.Errorf("построение диапазона: %w", err)
	}

	tasks, notes, err := s.repo.CalendarSnapshot(ctx, startKey, endKey)
	if err != nil {
		logger.Error("Service: Не удалось получить снимок календаря", err)
		return nil, fmt.Errorf("снимок календаря: %w", err)
	}

	cal := calendar.New(days)
	for _, t := range tasks {
		cal.AddTask(t)
	}
	for _, nt := range notes {
		cal.AddNote(nt)
	}

	logger.Debug("Service: Календарь собран",
		zap.String("start", startKey.String()),
		zap.String("end", endKey.String()),
		zap.Int("tasks", len(tasks)),
		zap.Int("notes", len(notes)))
	return cal, nil
}

func parseDay(field, value string) (dates.DayKey, error) {
	key, err := dates.ParseDayKey(value)
	if err != nil {
		return "", &BusinessError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("Неверное значение поля '%s': ожидается YYYY-MM-DD", field),
			Details: map[string]any{"field": field, "value": value},
			Err:     err,
		}
	}
	return key, nil
}
