package task

import (
	"strconv"
	"strings"
	"time"

	"workerTracker/internal/dates"
)

type Task struct {
	ID                int64          `json:"id" db:"id"`
	Name              string         `json:"name" db:"name"`
	TaskType          Type           `json:"taskType" db:"task_type"`
	IsCompleted       bool           `json:"isCompleted" db:"is_completed"`
	LetterValue       *string        `json:"letterValue" db:"letter_value"`
	SubjectiveContent *string        `json:"subjectiveContent" db:"subjective_content"`
	IsDaily           bool           `json:"isDaily" db:"is_daily"`
	DailyPosition     *int           `json:"dailyPosition" db:"daily_position"`
	ScheduledDate     *dates.DayKey  `json:"scheduledDate" db:"scheduled_date"`
	ScheduledTime     *string        `json:"scheduledTime" db:"scheduled_time"`
	EndTime           *string        `json:"endTime" db:"end_time"`
	HasTimeRequired   bool           `json:"hasTimeRequired" db:"has_time_required"`
	Duration          *int           `json:"duration" db:"duration"`
	NotificationTime  *int           `json:"notificationTime" db:"notification_time"`
	IsRecurring       bool           `json:"isRecurring" db:"is_recurring"`
	RecurringType     *RecurringType `json:"recurringType" db:"recurring_type"`
	RecurringDays     []int          `json:"recurringDays" db:"recurring_days"`
	RecurringEndDate  *dates.DayKey  `json:"recurringEndDate" db:"recurring_end_date"`
	CreatedAt         time.Time      `json:"createdAt" db:"created_at"`
}

type Type string
type RecurringType string

const TypeYesNo Type = "yes-no"
const TypeLetter Type = "letter"
const TypeSubjective Type = "subjective"

const RecurringDaily RecurringType = "daily"
const RecurringWeekly RecurringType = "weekly"
const RecurringMonthly RecurringType = "monthly"
const RecurringCustom RecurringType = "custom"

const DefaultDuration = 30
const DefaultNotificationTime = 15

func (t Type) Valid() bool {
	switch t {
	case TypeYesNo, TypeLetter, TypeSubjective:
		return true
	}
	return false
}

func (r RecurringType) Valid() bool {
	switch r {
	case RecurringDaily, RecurringWeekly, RecurringMonthly, RecurringCustom:
		return true
	}
	return false
}

// Window - временное окно задачи в минутах от полуночи.
type Window struct {
	Start  int
	End    int
	Notify int
}

// TimeWindow возвращает окно, только если задаче нужно время и задано начало.
// При HasTimeRequired=false временные поля не учитываются, даже если сохранены.
func (t *Task) TimeWindow() (Window, bool) {
	if !t.HasTimeRequired || t.ScheduledTime == nil {
		return Window{}, false
	}
	start, err := dates.ToClockMinutes(*t.ScheduledTime)
	if err != nil {
		return Window{}, false
	}

	w := Window{Start: start, End: start + DefaultDuration}
	if t.Duration != nil {
		w.End = start + *t.Duration
	}
	if t.EndTime != nil {
		if end, err := dates.ToClockMinutes(*t.EndTime); err == nil && end > start {
			w.End = end
		}
	}
	if t.NotificationTime != nil {
		w.Notify = *t.NotificationTime
	}
	return w, true
}

// DayKey - нормализованный день задачи, если он задан.
func (t *Task) DayKey() (dates.DayKey, bool) {
	if t.ScheduledDate == nil {
		return "", false
	}
	return *t.ScheduledDate, true
}

// enforceType оставляет активным только поле, соответствующее типу задачи.
func (t *Task) enforceType() {
	if t.TaskType != TypeLetter {
		t.LetterValue = nil
	}
	if t.TaskType != TypeSubjective {
		t.SubjectiveContent = nil
	}
}

// Clone - глубокая копия, хранилище никогда не отдаёт свои указатели наружу.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	out := *t
	out.LetterValue = clonePtr(t.LetterValue)
	out.SubjectiveContent = clonePtr(t.SubjectiveContent)
	out.DailyPosition = clonePtr(t.DailyPosition)
	out.ScheduledDate = clonePtr(t.ScheduledDate)
	out.ScheduledTime = clonePtr(t.ScheduledTime)
	out.EndTime = clonePtr(t.EndTime)
	out.Duration = clonePtr(t.Duration)
	out.NotificationTime = clonePtr(t.NotificationTime)
	out.RecurringType = clonePtr(t.RecurringType)
	out.RecurringEndDate = clonePtr(t.RecurringEndDate)
	if t.RecurringDays != nil {
		out.RecurringDays = append([]int(nil), t.RecurringDays...)
	}
	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// FormatDays кодирует дни недели через запятую, для хранения в одной колонке.
func FormatDays(days []int) *string {
	if len(days) == 0 {
		return nil
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	s := strings.Join(parts, ",")
	return &s
}

// ParseDays - обратное к FormatDays, мусорные элементы пропускаются.
func ParseDays(raw *string) []int {
	if raw == nil || *raw == "" {
		return nil
	}
	var days []int
	for _, part := range strings.Split(*raw, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	return days
}
