package worker

import (
	"context"
	"fmt"
	"time"

	"workerTracker/internal/dates"
	"workerTracker/internal/logger"
	"workerTracker/internal/metrics"
	"workerTracker/internal/models/notification"
	"workerTracker/internal/models/task"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultSpec = "@every 1m"

type ReminderStore interface {
	ListTasksOnDay(ctx context.Context, day dates.DayKey) ([]*task.Task, error)
	ListNotifications(ctx context.Context) ([]*notification.Notification, error)
	CreateNotification(ctx context.Context, n *notification.Notification) error
}

// ReminderWorker только создаёт записи уведомлений, доставкой не занимается.
type ReminderWorker struct {
	repo ReminderStore
	spec string
	now  func() time.Time
}

func NewReminderWorker(repo ReminderStore, spec string) *ReminderWorker {
	if spec == "" {
		spec = DefaultSpec
	}
	return &ReminderWorker{
		repo: repo,
		spec: spec,
		now:  time.Now,
	}
}

// WithClock подменяет часы, нужен для тестов.
func (w *ReminderWorker) WithClock(now func() time.Time) *ReminderWorker {
	w.now = now
	return w
}

// Start блокирует до отмены ctx. Ошибка только при неверном расписании.
func (w *ReminderWorker) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(w.spec, func() {
		logger.Info("Worker: Проверка напоминаний", zap.Time("started_at", w.now()))
		if _, err := w.Check(ctx); err != nil {
			logger.Warn("Worker: Ошибка проверки напоминаний", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("расписание %q: %w", w.spec, err)
	}

	c.Start()
	logger.Info("Worker: Напоминания запущены", zap.String("spec", w.spec))

	<-ctx.Done()
	logger.Info("Worker: Фоновая проверка останавливается")
	<-c.Stop().Done()
	return nil
}

// Check создаёт по одной записи на (задача, момент напоминания) для сегодняшних
// невыполненных задач, у которых момент напоминания уже наступил, а окно ещё не закончилось.
func (w *ReminderWorker) Check(ctx context.Context) (int, error) {
	start := time.Now()
	now := w.now().UTC()
	today := dates.DayKeyOf(now)

	tasks, err := w.repo.ListTasksOnDay(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("получение задач на сегодня: %w", err)
	}

	existing, err := w.repo.ListNotifications(ctx)
	if err != nil {
		return 0, fmt.Errorf("получение уведомлений: %w", err)
	}
	sent := make(map[reminderKey]bool, len(existing))
	for _, n := range existing {
		sent[reminderKey{taskID: n.TaskID, at: n.NotificationTime.Unix()}] = true
	}

	created := 0
	for _, t := range tasks {
		if t.IsCompleted {
			continue
		}
		window, ok := t.TimeWindow()
		if !ok {
			continue
		}

		remindAt := dates.At(today, window.Start-window.Notify)
		endAt := dates.At(today, window.End)
		if now.Before(remindAt) || !now.Before(endAt) {
			continue
		}

		key := reminderKey{taskID: t.ID, at: remindAt.Unix()}
		if sent[key] {
			continue
		}

		n := &notification.Notification{TaskID: t.ID, NotificationTime: remindAt}
		if err := w.repo.CreateNotification(ctx, n); err != nil {
			logger.Warn("Worker: Ошибка создания уведомления", zap.Int64("task_id", t.ID), zap.Error(err))
			continue
		}
		sent[key] = true
		created++
		metrics.RemindersCreatedTotal.Inc()
	}

	logger.Info("Worker: Завершение проверки напоминаний",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", len(tasks)),
		zap.Int("created", created))
	return created, nil
}

type reminderKey struct {
	taskID int64
	at     int64
}
