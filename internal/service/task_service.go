package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"workerTracker/internal/dates"
	"workerTracker/internal/logger"
	"workerTracker/internal/metrics"
	"workerTracker/internal/models/task"
	"workerTracker/internal/optional"
	rep "workerTracker/internal/repository"

	"go.uber.org/zap"
)

// TaskInput - поля задачи от клиента. nil и Set=false означают "не передано".
// Null в необязательном поле очищает его, пустая строка работает так же.
type TaskInput struct {
	Name              *string
	TaskType          *string
	IsCompleted       *bool
	LetterValue       optional.Value[string]
	SubjectiveContent optional.Value[string]
	IsDaily           *bool
	DailyPosition     optional.Value[int]
	ScheduledDate     optional.Value[string]
	ScheduledTime     optional.Value[string]
	EndTime           optional.Value[string]
	HasTimeRequired   *bool
	Duration          optional.Value[int]
	NotificationTime  optional.Value[int]
	IsRecurring       *bool
	RecurringType     optional.Value[string]
	RecurringDays     optional.Value[[]int]
	RecurringEndDate  optional.Value[string]
}

// Outcome - результат выполнения. Completed читается для yes-no, Value - для letter и subjective.
type Outcome struct {
	Completed bool
	Value     string
}

// здесь происходит проверка ошибок бизнес-логики
type TaskService struct {
	repo     TaskRepository
	settings SettingRepository

	// назначение ежедневного слота - чтение и запись, сериализуем их
	slotMtx sync.Mutex
}

func NewTaskService(repo TaskRepository, settings SettingRepository) *TaskService {
	return &TaskService{
		repo:     repo,
		settings: settings,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, in TaskInput) (*task.Task, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, NewValidationError("name", "название не может быть пустым")
	}
	if in.TaskType == nil {
		return nil, NewValidationError("taskType", "тип задачи обязателен")
	}

	options, err := taskOptions(in)
	if err != nil {
		return nil, err
	}

	newTask := &task.Task{HasTimeRequired: true}
	task.Apply(newTask, options...)

	if newTask.HasTimeRequired {
		if newTask.Duration == nil {
			d := task.DefaultDuration
			newTask.Duration = &d
		}
		if newTask.NotificationTime == nil {
			n := task.DefaultNotificationTime
			newTask.NotificationTime = &n
		}
	}

	s.slotMtx.Lock()
	defer s.slotMtx.Unlock()

	if newTask.IsDaily && newTask.DailyPosition == nil {
		position, err := s.freeDailySlot(ctx)
		if err != nil {
			return nil, err
		}
		if position > 0 {
			newTask.DailyPosition = &position
		}
	}

	if err := s.repo.CreateTask(ctx, newTask); err != nil {
		logger.Error("Service: Не удалось создать задачу", err)
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана",
		zap.Int64("task_id", newTask.ID),
		zap.String("task_type", string(newTask.TaskType)))
	return newTask, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, repoError(err, "задача", id, "получение задачи")
	}
	return t, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) ListDailyTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.ListDailyTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение ежедневных задач: %w", err)
	}
	return tasks, nil
}

// UpdateTask применяет только переданные поля, значения по умолчанию повторно не ставятся.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, in TaskInput) (*task.Task, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, NewValidationError("name", "название не может быть пустым")
	}

	options, err := taskOptions(in)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateTask(ctx, id, options...)
	if err != nil {
		return nil, repoError(err, "задача", id, "обновление задачи")
	}

	logger.Info("Service: Задача обновлена", zap.Int64("task_id", id), zap.Int("fields", len(options)))
	return updated, nil
}

// CompleteTask - переход состояния в зависимости от типа задачи.
// Тип через этот метод не меняется, только через UpdateTask.
// Прочитанная копия нужна только для проверки значения: сам переход делает
// task.WithOutcome по тому типу, который хранилище видит при записи.
func (s *TaskService) CompleteTask(ctx context.Context, id int64, outcome Outcome) (*task.Task, error) {
	existing, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, repoError(err, "задача", id, "получение задачи")
	}

	blank := strings.TrimSpace(outcome.Value) == ""
	switch existing.TaskType {
	case task.TypeYesNo:
	case task.TypeLetter:
		if blank {
			return nil, NewValidationError("value", "буква не может быть пустой")
		}
	case task.TypeSubjective:
		if blank {
			return nil, NewValidationError("value", "содержание не может быть пустым")
		}
	default:
		return nil, NewValidationError("taskType", fmt.Sprintf("неизвестный тип задачи %q", existing.TaskType))
	}

	updated, err := s.repo.UpdateTask(ctx, id, task.WithOutcome(outcome.Completed, outcome.Value))
	if err != nil {
		return nil, repoError(err, "задача", id, "выполнение задачи")
	}

	metrics.TrackCompletion(string(updated.TaskType))
	logger.Info("Service: Задача отмечена",
		zap.Int64("task_id", id),
		zap.String("task_type", string(updated.TaskType)),
		zap.Bool("completed", updated.IsCompleted))
	return updated, nil
}

// DeleteTask не трогает уведомления и заметки, ссылки на задачу остаются висячими.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.DeleteTask(ctx, id)
	if err != nil {
		logger.Error("Service: Не удалось удалить задачу", err, zap.Int64("task_id", id))
		return false, fmt.Errorf("удаление задачи: %w", err)
	}
	return deleted, nil
}

// freeDailySlot - наименьшая свободная позиция 1..dailyTasksCount, 0 если свободных нет
func (s *TaskService) freeDailySlot(ctx context.Context) (int, error) {
	limit, err := dailyTasksCount(ctx, s.settings)
	if err != nil {
		return 0, err
	}

	daily, err := s.repo.ListDailyTasks(ctx)
	if err != nil {
		return 0, fmt.Errorf("получение ежедневных задач: %w", err)
	}

	taken := make(map[int]bool, len(daily))
	for _, t := range daily {
		if t.DailyPosition != nil {
			taken[*t.DailyPosition] = true
		}
	}
	for position := 1; position <= limit; position++ {
		if !taken[position] {
			return position, nil
		}
	}

	logger.Warn("Service: Свободных ежедневных слотов нет", zap.Int("limit", limit))
	return 0, nil
}

// taskOptions проверяет переданные поля и превращает их в опции обновления.
// Тип задачи идёт первым, чтобы остальные поля ложились на уже новый тип.
func taskOptions(in TaskInput) ([]task.TaskOption, error) {
	var options []task.TaskOption

	if in.TaskType != nil {
		taskType := task.Type(*in.TaskType)
		if !taskType.Valid() {
			return nil, NewValidationError("taskType", fmt.Sprintf("неизвестный тип %q", *in.TaskType))
		}
		options = append(options, task.WithTaskType(taskType))
	}

	if in.Name != nil {
		options = append(options, task.WithName(strings.TrimSpace(*in.Name)))
	}
	if in.IsCompleted != nil {
		options = append(options, task.WithIsCompleted(*in.IsCompleted))
	}

	// у null Value нулевое, так что для строк он совпадает с пустой строкой
	if in.LetterValue.Set {
		if trimmed := strings.TrimSpace(in.LetterValue.Value); trimmed == "" {
			options = append(options, task.WithLetterValue(nil))
		} else {
			letter := task.LetterOf(trimmed)
			options = append(options, task.WithLetterValue(&letter))
		}
	}
	if in.SubjectiveContent.Set {
		options = append(options, task.WithSubjectiveContent(emptyToNil(in.SubjectiveContent.Value)))
	}

	if in.IsDaily != nil {
		options = append(options, task.WithIsDaily(*in.IsDaily))
	}
	if in.DailyPosition.Set {
		if in.DailyPosition.Present() && in.DailyPosition.Value < 1 {
			return nil, NewValidationError("dailyPosition", "позиция начинается с 1")
		}
		options = append(options, task.WithDailyPosition(in.DailyPosition.Ptr()))
	}

	if in.ScheduledDate.Set {
		day, err := optionalDay("scheduledDate", in.ScheduledDate.Value)
		if err != nil {
			return nil, err
		}
		options = append(options, task.WithScheduledDate(day))
	}
	if in.ScheduledTime.Set {
		clock, err := optionalClock("scheduledTime", in.ScheduledTime.Value)
		if err != nil {
			return nil, err
		}
		options = append(options, task.WithScheduledTime(clock))
	}
	if in.EndTime.Set {
		clock, err := optionalClock("endTime", in.EndTime.Value)
		if err != nil {
			return nil, err
		}
		options = append(options, task.WithEndTime(clock))
	}
	if in.HasTimeRequired != nil {
		options = append(options, task.WithHasTimeRequired(*in.HasTimeRequired))
	}
	if in.Duration.Set {
		if in.Duration.Present() && in.Duration.Value < 0 {
			return nil, NewValidationError("duration", "длительность не может быть отрицательной")
		}
		options = append(options, task.WithDuration(in.Duration.Ptr()))
	}
	if in.NotificationTime.Set {
		if in.NotificationTime.Present() && in.NotificationTime.Value < 0 {
			return nil, NewValidationError("notificationTime", "время уведомления не может быть отрицательным")
		}
		options = append(options, task.WithNotificationTime(in.NotificationTime.Ptr()))
	}

	if in.IsRecurring != nil {
		options = append(options, task.WithIsRecurring(*in.IsRecurring))
	}
	if in.RecurringType.Set {
		if in.RecurringType.Value == "" {
			options = append(options, task.WithRecurringType(nil))
		} else {
			recurringType := task.RecurringType(in.RecurringType.Value)
			if !recurringType.Valid() {
				return nil, NewValidationError("recurringType", fmt.Sprintf("неизвестный тип повторения %q", in.RecurringType.Value))
			}
			options = append(options, task.WithRecurringType(&recurringType))
		}
	}
	if in.RecurringDays.Set {
		days, err := normalizeWeekdays(in.RecurringDays.Value)
		if err != nil {
			return nil, err
		}
		options = append(options, task.WithRecurringDays(days))
	}
	if in.RecurringEndDate.Set {
		day, err := optionalDay("recurringEndDate", in.RecurringEndDate.Value)
		if err != nil {
			return nil, err
		}
		options = append(options, task.WithRecurringEndDate(day))
	}

	return options, nil
}

// normalizeWeekdays: множество дней 1..7 хранится отсортированным списком без повторов
func normalizeWeekdays(days []int) ([]int, error) {
	if len(days) == 0 {
		return nil, nil
	}
	seen := make(map[int]bool, len(days))
	res := make([]int, 0, len(days))
	for _, d := range days {
		if d < 1 || d > 7 {
			return nil, NewValidationError("recurringDays", fmt.Sprintf("день недели %d вне диапазона 1-7", d))
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		res = append(res, d)
	}
	sort.Ints(res)
	return res, nil
}

func optionalDay(field, value string) (*dates.DayKey, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	day, err := parseDay(field, value)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func optionalClock(field, value string) (*string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	if _, err := dates.ToClockMinutes(value); err != nil {
		return nil, NewInvalidTimeFormat(field, value, err)
	}
	clock := value
	return &clock, nil
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// repoError переводит ErrNotFound хранилища в бизнес-ошибку, остальное оборачивает
func repoError(err error, resource string, id any, operation string) error {
	if errors.Is(err, rep.ErrNotFound) {
		logger.Info("Service: Запись не найдена",
			zap.String("resource", resource),
			zap.Any("target_id", id))
		return NewNotFound(resource, id)
	}
	logger.Error("Service: Ошибка хранилища", err, zap.String("operation", operation))
	return fmt.Errorf("%s: %w", operation, err)
}
