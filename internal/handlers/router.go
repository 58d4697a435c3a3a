package handlers

import (
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Tasks         TaskHandler
	Notes         NoteHandler
	Notifications NotificationHandler
	Settings      SettingHandler
	Calendar      CalendarHandler
	Health        HealthHandler
}

// Mount вешает REST-маршруты на r под префиксом /api
func (h *Handlers) Mount(r chi.Router) {
	r.Get("/health", h.Health.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.Tasks.ListTasks)
			r.Post("/", h.Tasks.PostTask)
			r.Get("/daily", h.Tasks.ListDailyTasks)
			r.Get("/date/{date}", h.Tasks.ListTasksOnDay)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Tasks.GetTaskByID)
				r.Put("/", h.Tasks.UpdateTaskByID)
				r.Delete("/", h.Tasks.DeleteTaskByID)
				r.Post("/complete", h.Tasks.CompleteTask)
			})
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", h.Notes.ListNotes)
			r.Post("/", h.Notes.PostNote)
			r.Get("/date/{date}", h.Notes.ListNotesOnDay)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Notes.GetNoteByID)
				r.Put("/", h.Notes.UpdateNoteByID)
				r.Delete("/", h.Notes.DeleteNoteByID)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.Notifications.ListNotifications)
			r.Post("/", h.Notifications.PostNotification)
			r.Get("/unread", h.Notifications.ListUnreadNotifications)
			r.Put("/{id}/read", h.Notifications.MarkRead)
			r.Delete("/{id}", h.Notifications.DeleteNotificationByID)
		})

		r.Get("/settings/{key}", h.Settings.GetSetting)
		r.Put("/settings/{key}", h.Settings.PutSetting)

		r.Get("/calendar/{startDate}/{endDate}", h.Calendar.GetRange)
	})
}
