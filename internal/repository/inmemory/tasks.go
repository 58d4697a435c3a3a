package inmemory

import (
	"context"

	"workerTracker/internal/dates"
	"workerTracker/internal/models/task"
	repo "workerTracker/internal/repository"
)

func (s *Storage) CreateTask(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToCreate.ID = s.nextTaskID
	s.nextTaskID++
	taskToCreate.CreatedAt = s.now()

	s.tasks[taskToCreate.ID] = taskToCreate.Clone()
	s.taskIDs = append(s.taskIDs, taskToCreate.ID)
	return nil
}

func (s *Storage) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.tasks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return taskToGet.Clone(), nil
}

func (s *Storage) ListTasks(ctx context.Context) ([]*task.Task, error) {
	return s.scanTasks(func(*task.Task) bool { return true }), nil
}

func (s *Storage) ListDailyTasks(ctx context.Context) ([]*task.Task, error) {
	return s.scanTasks(func(t *task.Task) bool { return t.IsDaily }), nil
}

func (s *Storage) ListTasksOnDay(ctx context.Context, day dates.DayKey) ([]*task.Task, error) {
	return s.scanTasks(func(t *task.Task) bool {
		taskDay, ok := t.DayKey()
		return ok && taskDay == day
	}), nil
}

// UpdateTask накладывает опции на копию и подменяет запись целиком
func (s *Storage) UpdateTask(ctx context.Context, id int64, options ...task.TaskOption) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.tasks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	updated := existing.Clone()
	task.Apply(updated, options...)
	s.tasks[id] = updated

	return updated.Clone(), nil
}

func (s *Storage) DeleteTask(ctx context.Context, id int64) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	s.taskIDs = removeID(s.taskIDs, id)
	return true, nil
}

// scanTasks проходит задачи в порядке добавления
func (s *Storage) scanTasks(match func(*task.Task) bool) []*task.Task {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.taskIDs {
		t := s.tasks[id]
		if !match(t) {
			continue
		}
		res = append(res, t.Clone())
	}
	return res
}
