package task

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"workerTracker/internal/dates"
)

// TaskOption - функция частичного обновления.
// Набор конструкторов ниже и есть список изменяемых полей: id и createdAt через них не поменять.
type TaskOption func(*Task)

// Apply применяет опции по порядку, nil-опции пропускаются.
func Apply(t *Task, options ...TaskOption) {
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	t.enforceType()
}

func WithName(name string) TaskOption {
	return func(task *Task) {
		task.Name = name
	}
}

func WithTaskType(taskType Type) TaskOption {
	return func(task *Task) {
		task.TaskType = taskType
	}
}

func WithIsCompleted(completed bool) TaskOption {
	return func(task *Task) {
		task.IsCompleted = completed
	}
}

func WithLetterValue(letter *string) TaskOption {
	return func(task *Task) {
		task.LetterValue = clonePtr(letter)
	}
}

func WithSubjectiveContent(content *string) TaskOption {
	return func(task *Task) {
		task.SubjectiveContent = clonePtr(content)
	}
}

func WithIsDaily(daily bool) TaskOption {
	return func(task *Task) {
		task.IsDaily = daily
	}
}

func WithDailyPosition(position *int) TaskOption {
	return func(task *Task) {
		task.DailyPosition = clonePtr(position)
	}
}

func WithScheduledDate(day *dates.DayKey) TaskOption {
	return func(task *Task) {
		task.ScheduledDate = clonePtr(day)
	}
}

func WithScheduledTime(hhmm *string) TaskOption {
	return func(task *Task) {
		task.ScheduledTime = clonePtr(hhmm)
	}
}

func WithEndTime(hhmm *string) TaskOption {
	return func(task *Task) {
		task.EndTime = clonePtr(hhmm)
	}
}

func WithHasTimeRequired(required bool) TaskOption {
	return func(task *Task) {
		task.HasTimeRequired = required
	}
}

func WithDuration(minutes *int) TaskOption {
	return func(task *Task) {
		task.Duration = clonePtr(minutes)
	}
}

func WithNotificationTime(minutes *int) TaskOption {
	return func(task *Task) {
		task.NotificationTime = clonePtr(minutes)
	}
}

func WithIsRecurring(recurring bool) TaskOption {
	return func(task *Task) {
		task.IsRecurring = recurring
	}
}

func WithRecurringType(recurringType *RecurringType) TaskOption {
	return func(task *Task) {
		task.RecurringType = clonePtr(recurringType)
	}
}

func WithRecurringDays(days []int) TaskOption {
	return func(task *Task) {
		if days == nil {
			task.RecurringDays = nil
			return
		}
		task.RecurringDays = append([]int(nil), days...)
	}
}

func WithRecurringEndDate(day *dates.DayKey) TaskOption {
	return func(task *Task) {
		task.RecurringEndDate = clonePtr(day)
	}
}

// WithOutcome - отметка выполнения. Ветка выбирается по типу задачи в момент применения,
// то есть внутри обновления хранилища, а не по ранее прочитанной копии.
// Пустое значение для letter и subjective задачу не меняет.
func WithOutcome(completed bool, value string) TaskOption {
	return func(task *Task) {
		switch task.TaskType {
		case TypeYesNo:
			task.IsCompleted = completed
		case TypeLetter:
			letter := LetterOf(value)
			if letter == "" {
				return
			}
			task.LetterValue = &letter
			task.IsCompleted = true
		case TypeSubjective:
			if strings.TrimSpace(value) == "" {
				return
			}
			content := value
			task.SubjectiveContent = &content
			task.IsCompleted = true
		}
	}
}

// LetterOf - первая буква без пробелов вокруг, в верхнем регистре
func LetterOf(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	return string(unicode.ToUpper(r))
}
