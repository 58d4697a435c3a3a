package handlers

import (
	"net/http"

	"workerTracker/internal/handlers/dto"
	"workerTracker/internal/logger"
	"workerTracker/internal/service"

	"go.uber.org/zap"
)

type NotificationHandler struct {
	NotificationService NotificationService
}

func NewNotificationHandler(notificationService NotificationService) NotificationHandler {
	return NotificationHandler{NotificationService: notificationService}
}

func (s *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	list, err := s.NotificationService.ListNotifications(r.Context())
	if err != nil {
		handleServiceError(w, r, err, "list_notifications")
		return
	}
	responseWithData(w, http.StatusOK, list)
}

func (s *NotificationHandler) ListUnreadNotifications(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	list, err := s.NotificationService.ListUnreadNotifications(r.Context())
	if err != nil {
		handleServiceError(w, r, err, "list_unread_notifications")
		return
	}
	responseWithData(w, http.StatusOK, list)
}

func (s *NotificationHandler) PostNotification(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.NotificationRequest
	if !decodeBody(w, r, &request) {
		return
	}

	created, err := s.NotificationService.CreateNotification(r.Context(), request.TaskID, request.NotificationTime)
	if err != nil {
		handleServiceError(w, r, err, "create_notification")
		return
	}

	logger.Info("HTTP_OUT: Уведомление создано",
		zap.Int64("notification_id", created.ID),
		zap.Int("http_status", http.StatusCreated))

	responseWithData(w, http.StatusCreated, created)
}

func (s *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	n, err := s.NotificationService.MarkNotificationRead(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "mark_notification_read")
		return
	}
	responseWithData(w, http.StatusOK, n)
}

func (s *NotificationHandler) DeleteNotificationByID(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	deleted, err := s.NotificationService.DeleteNotification(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "delete_notification")
		return
	}
	if !deleted {
		responseWithError(w, http.StatusNotFound, service.CodeNotFound, "уведомление не найдено")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
