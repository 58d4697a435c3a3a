package notification

import "time"

// Notification - запись о напоминании. TaskID не проверяется: ссылка на удалённую задачу допустима.
type Notification struct {
	ID               int64     `json:"id" db:"id"`
	TaskID           int64     `json:"taskId" db:"task_id"`
	NotificationTime time.Time `json:"notificationTime" db:"notification_time"`
	IsRead           bool      `json:"isRead" db:"is_read"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}
	out := *n
	return &out
}
