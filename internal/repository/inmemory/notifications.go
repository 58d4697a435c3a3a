package inmemory

import (
	"context"

	"workerTracker/internal/models/notification"
	repo "workerTracker/internal/repository"
)

func (s *Storage) CreateNotification(ctx context.Context, n *notification.Notification) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	n.ID = s.nextNotificationID
	s.nextNotificationID++
	n.CreatedAt = s.now()
	n.IsRead = false

	s.notifications[n.ID] = n.Clone()
	s.notificationIDs = append(s.notificationIDs, n.ID)
	return nil
}

func (s *Storage) ListNotifications(ctx context.Context) ([]*notification.Notification, error) {
	return s.scanNotifications(false), nil
}

func (s *Storage) ListUnreadNotifications(ctx context.Context) ([]*notification.Notification, error) {
	return s.scanNotifications(true), nil
}

func (s *Storage) MarkNotificationRead(ctx context.Context, id int64) (*notification.Notification, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	n, ok := s.notifications[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	n.IsRead = true
	return n.Clone(), nil
}

func (s *Storage) DeleteNotification(ctx context.Context, id int64) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.notifications[id]; !ok {
		return false, nil
	}
	delete(s.notifications, id)
	s.notificationIDs = removeID(s.notificationIDs, id)
	return true, nil
}

func (s *Storage) scanNotifications(unreadOnly bool) []*notification.Notification {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*notification.Notification{}
	for _, id := range s.notificationIDs {
		n := s.notifications[id]
		if unreadOnly && n.IsRead {
			continue
		}
		res = append(res, n.Clone())
	}
	return res
}
