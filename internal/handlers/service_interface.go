package handlers

import (
	"context"
	"time"

	"workerTracker/internal/models/calendar"
	"workerTracker/internal/models/note"
	"workerTracker/internal/models/notification"
	"workerTracker/internal/models/setting"
	"workerTracker/internal/models/task"
	"workerTracker/internal/service"
)

type TaskService interface {
	CreateTask(ctx context.Context, in service.TaskInput) (*task.Task, error)
	GetTask(ctx context.Context, id int64) (*task.Task, error)
	ListTasks(ctx context.Context) ([]*task.Task, error)
	ListDailyTasks(ctx context.Context) ([]*task.Task, error)
	UpdateTask(ctx context.Context, id int64, in service.TaskInput) (*task.Task, error)
	CompleteTask(ctx context.Context, id int64, outcome service.Outcome) (*task.Task, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)
}

type NoteService interface {
	CreateNote(ctx context.Context, in service.NoteInput) (*note.Note, error)
	GetNote(ctx context.Context, id int64) (*note.Note, error)
	ListNotes(ctx context.Context) ([]*note.Note, error)
	UpdateNote(ctx context.Context, id int64, in service.NoteInput) (*note.Note, error)
	DeleteNote(ctx context.Context, id int64) (bool, error)
}

type NotificationService interface {
	CreateNotification(ctx context.Context, taskID int64, at time.Time) (*notification.Notification, error)
	ListNotifications(ctx context.Context) ([]*notification.Notification, error)
	ListUnreadNotifications(ctx context.Context) ([]*notification.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) (*notification.Notification, error)
	DeleteNotification(ctx context.Context, id int64) (bool, error)
}

type SettingService interface {
	GetSetting(ctx context.Context, key string) (*setting.Setting, error)
	SetSetting(ctx context.Context, key, value string) (*setting.Setting, error)
}

type CalendarService interface {
	TasksOnDay(ctx context.Context, day string) ([]*task.Task, error)
	NotesOnDay(ctx context.Context, day string) ([]*note.Note, error)
	AggregateRange(ctx context.Context, start, end string) (*calendar.Calendar, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
