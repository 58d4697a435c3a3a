package handlers

import (
	"net/http"
	"time"

	"workerTracker/internal/handlers/dto"
	"workerTracker/internal/logger"
	"workerTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NoteHandler struct {
	NoteService     NoteService
	CalendarService CalendarService
}

func NewNoteHandler(noteService NoteService, calendarService CalendarService) NoteHandler {
	return NoteHandler{
		NoteService:     noteService,
		CalendarService: calendarService,
	}
}

func (s *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	notes, err := s.NoteService.ListNotes(r.Context())
	if err != nil {
		handleServiceError(w, r, err, "list_notes")
		return
	}

	logger.Info("HTTP_OUT: Заметки получены",
		zap.Int("count", len(notes)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, notes)
}

func (s *NoteHandler) ListNotesOnDay(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	day := chi.URLParam(r, "date")
	notes, err := s.CalendarService.NotesOnDay(r.Context(), day)
	if err != nil {
		handleServiceError(w, r, err, "list_notes_on_day")
		return
	}

	logger.Info("HTTP_OUT: Заметки на день получены",
		zap.String("date", day),
		zap.Int("count", len(notes)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, notes)
}

func (s *NoteHandler) PostNote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.NoteRequest
	if !decodeBody(w, r, &request) {
		return
	}

	created, err := s.NoteService.CreateNote(r.Context(), request.ToInput())
	if err != nil {
		handleServiceError(w, r, err, "create_note")
		return
	}

	logger.Info("HTTP_OUT: Заметка создана",
		zap.Int64("note_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithData(w, http.StatusCreated, created)
}

func (s *NoteHandler) GetNoteByID(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	n, err := s.NoteService.GetNote(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "get_note")
		return
	}
	responseWithData(w, http.StatusOK, n)
}

func (s *NoteHandler) UpdateNoteByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var request dto.NoteRequest
	if !decodeBody(w, r, &request) {
		return
	}

	updated, err := s.NoteService.UpdateNote(r.Context(), id, request.ToInput())
	if err != nil {
		handleServiceError(w, r, err, "update_note")
		return
	}

	logger.Info("HTTP_OUT: Заметка обновлена",
		zap.Int64("note_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, updated)
}

func (s *NoteHandler) DeleteNoteByID(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	deleted, err := s.NoteService.DeleteNote(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "delete_note")
		return
	}
	if !deleted {
		responseWithError(w, http.StatusNotFound, service.CodeNotFound, "заметка не найдена")
		return
	}

	logger.Info("HTTP_OUT: Заметка удалена", zap.Int64("note_id", id))
	w.WriteHeader(http.StatusNoContent)
}
