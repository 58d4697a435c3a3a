package note

import (
	"time"

	"workerTracker/internal/dates"
)

type Note struct {
	ID             int64         `json:"id" db:"id"`
	Title          string        `json:"title" db:"title"`
	Content        string        `json:"content" db:"content"`
	AssociatedDate *dates.DayKey `json:"associatedDate" db:"associated_date"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
}

func (n *Note) DayKey() (dates.DayKey, bool) {
	if n.AssociatedDate == nil {
		return "", false
	}
	return *n.AssociatedDate, true
}

func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	out := *n
	if n.AssociatedDate != nil {
		day := *n.AssociatedDate
		out.AssociatedDate = &day
	}
	return &out
}

type NoteOption func(*Note)

func Apply(n *Note, options ...NoteOption) {
	for _, opt := range options {
		if opt != nil {
			opt(n)
		}
	}
}

func WithTitle(title string) NoteOption {
	return func(note *Note) {
		note.Title = title
	}
}

func WithContent(content string) NoteOption {
	return func(note *Note) {
		note.Content = content
	}
}

func WithAssociatedDate(day *dates.DayKey) NoteOption {
	return func(note *Note) {
		if day == nil {
			note.AssociatedDate = nil
			return
		}
		d := *day
		note.AssociatedDate = &d
	}
}
