package inmemory

import (
	"context"

	repo "workerTracker/internal/repository"
)

func (s *Storage) GetSetting(ctx context.Context, key string) (string, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	value, ok := s.settings[key]
	if !ok {
		return "", repo.ErrNotFound
	}
	return value, nil
}

func (s *Storage) SetSetting(ctx context.Context, key, value string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.settings[key] = value
	return nil
}
