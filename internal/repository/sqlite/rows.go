package sqlite

import (
	"time"

	"workerTracker/internal/dates"
	"workerTracker/internal/models/note"
	"workerTracker/internal/models/notification"
	"workerTracker/internal/models/task"
)

// Дни хранятся строкой YYYY-MM-DD: лексикографический порядок совпадает с календарным,
// поэтому BETWEEN по колонке работает без преобразований.

type taskRow struct {
	ID                int64   `gorm:"primaryKey;autoIncrement"`
	Name              string  `gorm:"not null"`
	TaskType          string  `gorm:"not null"`
	IsCompleted       bool    `gorm:"not null;default:false"`
	LetterValue       *string
	SubjectiveContent *string
	IsDaily           bool `gorm:"not null;default:false;index"`
	DailyPosition     *int
	ScheduledDate     *string `gorm:"index"`
	ScheduledTime     *string
	EndTime           *string
	HasTimeRequired   bool `gorm:"not null"`
	Duration          *int
	NotificationTime  *int
	IsRecurring       bool `gorm:"not null;default:false"`
	RecurringType     *string
	RecurringDays     *string
	RecurringEndDate  *string
	CreatedAt         time.Time
}

func (taskRow) TableName() string { return "tasks" }

type noteRow struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	Title          string  `gorm:"not null"`
	Content        string  `gorm:"not null"`
	AssociatedDate *string `gorm:"index"`
	CreatedAt      time.Time
}

func (noteRow) TableName() string { return "notes" }

type notificationRow struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	TaskID           int64     `gorm:"not null"`
	NotificationTime time.Time `gorm:"not null"`
	IsRead           bool      `gorm:"not null;default:false"`
	CreatedAt        time.Time
}

func (notificationRow) TableName() string { return "notifications" }

type settingRow struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (settingRow) TableName() string { return "settings" }

func dayString(day *dates.DayKey) *string {
	if day == nil {
		return nil
	}
	s := day.String()
	return &s
}

func dayKey(raw *string) *dates.DayKey {
	if raw == nil {
		return nil
	}
	key, err := dates.ParseDayKey(*raw)
	if err != nil {
		return nil
	}
	return &key
}

func toTaskRow(t *task.Task) *taskRow {
	row := &taskRow{
		ID:                t.ID,
		Name:              t.Name,
		TaskType:          string(t.TaskType),
		IsCompleted:       t.IsCompleted,
		LetterValue:       t.LetterValue,
		SubjectiveContent: t.SubjectiveContent,
		IsDaily:           t.IsDaily,
		DailyPosition:     t.DailyPosition,
		ScheduledDate:     dayString(t.ScheduledDate),
		ScheduledTime:     t.ScheduledTime,
		EndTime:           t.EndTime,
		HasTimeRequired:   t.HasTimeRequired,
		Duration:          t.Duration,
		NotificationTime:  t.NotificationTime,
		IsRecurring:       t.IsRecurring,
		RecurringDays:     task.FormatDays(t.RecurringDays),
		RecurringEndDate:  dayString(t.RecurringEndDate),
		CreatedAt:         t.CreatedAt,
	}
	if t.RecurringType != nil {
		rt := string(*t.RecurringType)
		row.RecurringType = &rt
	}
	return row
}

func (r *taskRow) toTask() *task.Task {
	t := &task.Task{
		ID:                r.ID,
		Name:              r.Name,
		TaskType:          task.Type(r.TaskType),
		IsCompleted:       r.IsCompleted,
		LetterValue:       r.LetterValue,
		SubjectiveContent: r.SubjectiveContent,
		IsDaily:           r.IsDaily,
		DailyPosition:     r.DailyPosition,
		ScheduledDate:     dayKey(r.ScheduledDate),
		ScheduledTime:     r.ScheduledTime,
		EndTime:           r.EndTime,
		HasTimeRequired:   r.HasTimeRequired,
		Duration:          r.Duration,
		NotificationTime:  r.NotificationTime,
		IsRecurring:       r.IsRecurring,
		RecurringDays:     task.ParseDays(r.RecurringDays),
		RecurringEndDate:  dayKey(r.RecurringEndDate),
		CreatedAt:         r.CreatedAt,
	}
	if r.RecurringType != nil {
		rt := task.RecurringType(*r.RecurringType)
		t.RecurringType = &rt
	}
	return t
}

func toNoteRow(n *note.Note) *noteRow {
	return &noteRow{
		ID:             n.ID,
		Title:          n.Title,
		Content:        n.Content,
		AssociatedDate: dayString(n.AssociatedDate),
		CreatedAt:      n.CreatedAt,
	}
}

func (r *noteRow) toNote() *note.Note {
	return &note.Note{
		ID:             r.ID,
		Title:          r.Title,
		Content:        r.Content,
		AssociatedDate: dayKey(r.AssociatedDate),
		CreatedAt:      r.CreatedAt,
	}
}

func (r *notificationRow) toNotification() *notification.Notification {
	return &notification.Notification{
		ID:               r.ID,
		TaskID:           r.TaskID,
		NotificationTime: r.NotificationTime.UTC(),
		IsRead:           r.IsRead,
		CreatedAt:        r.CreatedAt,
	}
}
