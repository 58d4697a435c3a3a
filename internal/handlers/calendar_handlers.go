package handlers

import (
	"net/http"
	"time"

	"workerTracker/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	CalendarService CalendarService
}

func NewCalendarHandler(calendarService CalendarService) CalendarHandler {
	return CalendarHandler{CalendarService: calendarService}
}

// GetRange: GET /calendar/{startDate}/{endDate}
func (s *CalendarHandler) GetRange(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	startDate := chi.URLParam(r, "startDate")
	endDate := chi.URLParam(r, "endDate")

	cal, err := s.CalendarService.AggregateRange(r.Context(), startDate, endDate)
	if err != nil {
		handleServiceError(w, r, err, "aggregate_range")
		return
	}

	logger.Info("HTTP_OUT: Календарь собран",
		zap.String("start", startDate),
		zap.String("end", endDate),
		zap.Int("days", cal.Len()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, cal)
}
