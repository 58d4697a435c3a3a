package inmemory

import (
	"context"
	"sync"
	"time"

	"workerTracker/internal/dates"
	"workerTracker/internal/logger"
	"workerTracker/internal/models/note"
	"workerTracker/internal/models/notification"
	"workerTracker/internal/models/setting"
	"workerTracker/internal/models/task"
)

// Storage держит все сущности под одним мьютексом: каждая операция атомарна
// относительно остальных, а снимок календаря берётся под одной блокировкой.
type Storage struct {
	mtx *sync.RWMutex
	now func() time.Time

	tasks      map[int64]*task.Task
	taskIDs    []int64
	nextTaskID int64

	notes      map[int64]*note.Note
	noteIDs    []int64
	nextNoteID int64

	notifications      map[int64]*notification.Notification
	notificationIDs    []int64
	nextNotificationID int64

	settings map[string]string
}

func NewStorage() *Storage {
	s := &Storage{
		mtx: &sync.RWMutex{},
		now: time.Now,

		tasks:      make(map[int64]*task.Task),
		taskIDs:    []int64{},
		nextTaskID: 1,

		notes:      make(map[int64]*note.Note),
		noteIDs:    []int64{},
		nextNoteID: 1,

		notifications:      make(map[int64]*notification.Notification),
		notificationIDs:    []int64{},
		nextNotificationID: 1,

		settings: setting.Defaults(),
	}
	return s
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *Storage) Close() {}

func (s *Storage) CalendarSnapshot(ctx context.Context, start, end dates.DayKey) ([]*task.Task, []*note.Note, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tasks := []*task.Task{}
	for _, id := range s.taskIDs {
		t := s.tasks[id]
		if day, ok := t.DayKey(); ok && day.Within(start, end) {
			tasks = append(tasks, t.Clone())
		}
	}

	notes := []*note.Note{}
	for _, id := range s.noteIDs {
		n := s.notes[id]
		if day, ok := n.DayKey(); ok && day.Within(start, end) {
			notes = append(notes, n.Clone())
		}
	}
	return tasks, notes, nil
}

// removeID удаляет id из упорядоченного списка, порядок остальных сохраняется
func removeID(ids []int64, id int64) []int64 {
	for ind, val := range ids {
		if val == id {
			return append(ids[:ind], ids[ind+1:]...)
		}
	}
	return ids
}
