package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"workerTracker/internal/logger"
	"workerTracker/internal/optional"
	"workerTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = newValidator()

// newValidator учит validator смотреть внутрь optional.Value: null и отсутствие
// превращаются в nil, и omitempty их пропускает.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		return field.Interface().(optional.Value[int]).Ptr()
	}, optional.Value[int]{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		return field.Interface().(optional.Value[string]).Ptr()
	}, optional.Value[string]{})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		return field.Interface().(optional.Value[[]int]).Ptr()
	}, optional.Value[[]int]{})
	return v
}

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// decodeBody проверяет тип контента, читает JSON и прогоняет теги validate.
// При ошибке ответ уже записан.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, codeBadRequest, "Content-Type должен быть application/json")
		return false
	}

	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, codeBadRequest, "неверное тело запроса: "+err.Error())
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make(map[string]any, len(fieldErrs))
			for _, fe := range fieldErrs {
				details[lowerFirst(fe.Field())] = fe.Tag()
			}

			logger.Warn("HTTP: Ошибка валидации",
				zap.Any("fields", details),
				zap.String("client_ip", r.RemoteAddr))

			responseWithJSON(w, http.StatusBadRequest,
				toPayload("error", service.CodeValidation),
				toPayload("message", "неверные поля запроса"),
				toPayload("details", details))
			return false
		}
		responseWithError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return false
	}
	return true
}

// parseID читает {id} из пути, ответ при ошибке уже записан
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil || id < 1 {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("id", idParam),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, service.CodeValidation, fmt.Sprintf("неверный id %q", idParam))
		return 0, false
	}
	return id, true
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
