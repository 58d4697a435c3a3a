package handlers

import (
	"net/http"

	"workerTracker/internal/handlers/dto"
	"workerTracker/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SettingHandler struct {
	SettingService SettingService
}

func NewSettingHandler(settingService SettingService) SettingHandler {
	return SettingHandler{SettingService: settingService}
}

func (s *SettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	st, err := s.SettingService.GetSetting(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		handleServiceError(w, r, err, "get_setting")
		return
	}
	responseWithData(w, http.StatusOK, st)
}

func (s *SettingHandler) PutSetting(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	key := chi.URLParam(r, "key")
	var request dto.SettingRequest
	if !decodeBody(w, r, &request) {
		return
	}

	st, err := s.SettingService.SetSetting(r.Context(), key, *request.Value)
	if err != nil {
		handleServiceError(w, r, err, "set_setting")
		return
	}

	logger.Info("HTTP_OUT: Настройка сохранена", zap.String("key", key))
	responseWithData(w, http.StatusOK, st)
}
