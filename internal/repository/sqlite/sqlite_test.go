package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"workerTracker/internal/dates"
	"workerTracker/internal/models/note"
	"workerTracker/internal/models/notification"
	"workerTracker/internal/models/setting"
	"workerTracker/internal/models/task"
	"workerTracker/internal/repository"
	"workerTracker/internal/repository/sqlite"
	"workerTracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ service.Storage = (*sqlite.Storage)(nil)

func ptr[T any](v T) *T { return &v }

func newStorage(t *testing.T) *sqlite.Storage {
	t.Helper()
	storage, err := sqlite.New(filepath.Join(t.TempDir(), "data", "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(storage.Close)
	return storage
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := sqlite.New("")
	assert.Error(t, err)
}

func TestStorage_HealthCheck(t *testing.T) {
	assert.NoError(t, newStorage(t).HealthCheck(context.Background()))
}

func TestStorage_TaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := newStorage(t)

	day := dates.MustDayKey("2024-03-10")
	custom := task.RecurringCustom
	created := &task.Task{
		Name:            "Gym",
		TaskType:        task.TypeYesNo,
		ScheduledDate:   &day,
		ScheduledTime:   ptr("09:00"),
		HasTimeRequired: true,
		Duration:        ptr(30),
		IsRecurring:     true,
		RecurringType:   &custom,
		RecurringDays:   []int{2, 4},
	}
	require.NoError(t, storage.CreateTask(ctx, created))
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := storage.GetTask(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ScheduledDate)
	assert.Equal(t, day, *got.ScheduledDate)
	assert.Equal(t, []int{2, 4}, got.RecurringDays)
	require.NotNil(t, got.RecurringType)
	assert.Equal(t, task.RecurringCustom, *got.RecurringType)
	assert.True(t, got.HasTimeRequired)

	_, err = storage.GetTask(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStorage_UpdateTask(t *testing.T) {
	ctx := context.Background()
	storage := newStorage(t)

	created := &task.Task{Name: "Read", TaskType: task.TypeLetter, LetterValue: ptr("C"), HasTimeRequired: true}
	require.NoError(t, storage.CreateTask(ctx, created))

	updated, err := storage.UpdateTask(ctx, created.ID,
		task.WithLetterValue(ptr("A")),
		task.WithIsCompleted(true),
		task.WithHasTimeRequired(false))
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.False(t, updated.HasTimeRequired)

	got, err := storage.GetTask(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LetterValue)
	assert.Equal(t, "A", *got.LetterValue)
	assert.False(t, got.HasTimeRequired)

	_, err = storage.UpdateTask(ctx, 42, task.WithName("x"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStorage_TaskListsAndDelete(t *testing.T) {
	ctx := context.Background()
	storage := newStorage(t)

	day := dates.MustDayKey("2024-03-10")
	require.NoError(t, storage.CreateTask(ctx, &task.Task{Name: "on", TaskType: task.TypeYesNo, ScheduledDate: &day}))
	require.NoError(t, storage.CreateTask(ctx, &task.Task{Name: "daily", TaskType: task.TypeYesNo, IsDaily: true, DailyPosition: ptr(1)}))

	all, err := storage.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "on", all[0].Name)

	onDay, err := storage.ListTasksOnDay(ctx, day)
	require.NoError(t, err)
	assert.Len(t, onDay, 1)

	dailies, err := storage.ListDailyTasks(ctx)
	require.NoError(t, err)
	require.Len(t, dailies, 1)
	assert.Equal(t, "daily", dailies[0].Name)

	deleted, err := storage.DeleteTask(ctx, all[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = storage.DeleteTask(ctx, all[0].ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestStorage_Notes(t *testing.T) {
	ctx := context.Background()
	storage := newStorage(t)

	day := dates.MustDayKey("2024-03-10")
	n := &note.Note{Title: "Plan", Content: "", AssociatedDate: &day}
	require.NoError(t, storage.CreateNote(ctx, n))

	updated, err := storage.UpdateNote(ctx, n.ID, note.WithContent("details"))
	require.NoError(t, err)
	assert.Equal(t, "details", updated.Content)
	require.NotNil(t, updated.AssociatedDate)

	onDay, err := storage.ListNotesOnDay(ctx, day)
	require.NoError(t, err)
	require.Len(t, onDay, 1)
	assert.Equal(t, "details", onDay[0].Content)

	_, err = storage.UpdateNote(ctx, 42, note.WithTitle("x"))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err := storage.DeleteNote(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	all, err := storage.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStorage_Notifications(t *testing.T) {
	ctx := context.Background()
	storage := newStorage(t)

	at := time.Date(2024, 3, 10, 8, 45, 0, 0, time.UTC)
	n := &notification.Notification{TaskID: 3, NotificationTime: at}
	require.NoError(t, storage.CreateNotification(ctx, n))

	read, err := storage.MarkNotificationRead(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	assert.True(t, at.Equal(read.NotificationTime))

	unread, err := storage.ListUnreadNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, unread)

	all, err := storage.ListNotifications(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = storage.MarkNotificationRead(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err := storage.DeleteNotification(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestStorage_Settings(t *testing.T) {
	ctx := context.Background()
	storage := newStorage(t)

	value, err := storage.GetSetting(ctx, setting.KeyDailyTasksCount)
	require.NoError(t, err)
	assert.Equal(t, "8", value)

	require.NoError(t, storage.SetSetting(ctx, setting.KeyDailyTasksCount, "3"))
	require.NoError(t, storage.SetSetting(ctx, "theme", "dark"))

	value, err = storage.GetSetting(ctx, setting.KeyDailyTasksCount)
	require.NoError(t, err)
	assert.Equal(t, "3", value)

	_, err = storage.GetSetting(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStorage_ReopenKeepsDataAndSettings(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tracker.db")

	first, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, first.SetSetting(ctx, setting.KeyDailyTasksCount, "5"))
	require.NoError(t, first.CreateTask(ctx, &task.Task{Name: "kept", TaskType: task.TypeYesNo}))
	first.Close()

	second, err := sqlite.New(path)
	require.NoError(t, err)
	defer second.Close()

	value, err := second.GetSetting(ctx, setting.KeyDailyTasksCount)
	require.NoError(t, err)
	assert.Equal(t, "5", value)

	tasks, err := second.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestStorage_CalendarThroughService(t *testing.T) {
	ctx := context.Background()
	storage := newStorage(t)

	for _, d := range []string{"2024-03-08", "2024-03-09", "2024-03-11"} {
		day := dates.MustDayKey(d)
		require.NoError(t, storage.CreateTask(ctx, &task.Task{Name: d, TaskType: task.TypeYesNo, ScheduledDate: &day}))
	}
	day := dates.MustDayKey("2024-03-10")
	require.NoError(t, storage.CreateNote(ctx, &note.Note{Title: "n", Content: "", AssociatedDate: &day}))

	cal, err := service.NewCalendarService(storage, 31).AggregateRange(ctx, "2024-03-09", "2024-03-11")
	require.NoError(t, err)
	assert.Equal(t, 3, cal.Len())

	b, ok := cal.Get(dates.MustDayKey("2024-03-09"))
	require.True(t, ok)
	assert.Len(t, b.Tasks, 1)
	b, ok = cal.Get(day)
	require.True(t, ok)
	assert.Empty(t, b.Tasks)
	assert.Len(t, b.Notes, 1)
}
