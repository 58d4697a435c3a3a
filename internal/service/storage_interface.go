package service

import (
	"context"

	"workerTracker/internal/dates"
	"workerTracker/internal/models/note"
	"workerTracker/internal/models/notification"
	"workerTracker/internal/models/task"
)

// Хранилище сущностей. Реализации: inmemory, postgres, sqlite.
// Get/Update возвращают repository.ErrNotFound, наружу отдаются только копии.

type TaskRepository interface {
	CreateTask(ctx context.Context, t *task.Task) error
	GetTask(ctx context.Context, id int64) (*task.Task, error)
	ListTasks(ctx context.Context) ([]*task.Task, error)
	ListDailyTasks(ctx context.Context) ([]*task.Task, error)
	ListTasksOnDay(ctx context.Context, day dates.DayKey) ([]*task.Task, error)
	UpdateTask(ctx context.Context, id int64, options ...task.TaskOption) (*task.Task, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)
}

type NoteRepository interface {
	CreateNote(ctx context.Context, n *note.Note) error
	GetNote(ctx context.Context, id int64) (*note.Note, error)
	ListNotes(ctx context.Context) ([]*note.Note, error)
	ListNotesOnDay(ctx context.Context, day dates.DayKey) ([]*note.Note, error)
	UpdateNote(ctx context.Context, id int64, options ...note.NoteOption) (*note.Note, error)
	DeleteNote(ctx context.Context, id int64) (bool, error)
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *notification.Notification) error
	ListNotifications(ctx context.Context) ([]*notification.Notification, error)
	ListUnreadNotifications(ctx context.Context) ([]*notification.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) (*notification.Notification, error)
	DeleteNotification(ctx context.Context, id int64) (bool, error)
}

type SettingRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// CalendarRepository отдаёт задачи и заметки диапазона из одного согласованного снимка.
type CalendarRepository interface {
	CalendarSnapshot(ctx context.Context, start, end dates.DayKey) ([]*task.Task, []*note.Note, error)
}

type Storage interface {
	TaskRepository
	NoteRepository
	NotificationRepository
	SettingRepository
	CalendarRepository
	HealthCheck(ctx context.Context) error
	Close()
}
