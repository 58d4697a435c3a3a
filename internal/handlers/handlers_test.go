package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"workerTracker/internal/dates"
	"workerTracker/internal/handlers"
	"workerTracker/internal/models/calendar"
	"workerTracker/internal/models/note"
	"workerTracker/internal/models/notification"
	"workerTracker/internal/models/setting"
	"workerTracker/internal/models/task"
	"workerTracker/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTaskService - мок сервиса задач
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(ctx context.Context, in service.TaskInput) (*task.Task, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) ListDailyTasks(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id int64, in service.TaskInput) (*task.Task, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) CompleteTask(ctx context.Context, id int64, outcome service.Outcome) (*task.Task, error) {
	args := m.Called(ctx, id, outcome)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ handlers.TaskService = (*MockTaskService)(nil)

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) CreateNote(ctx context.Context, in service.NoteInput) (*note.Note, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*note.Note), args.Error(1)
}

func (m *MockNoteService) GetNote(ctx context.Context, id int64) (*note.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*note.Note), args.Error(1)
}

func (m *MockNoteService) ListNotes(ctx context.Context) ([]*note.Note, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*note.Note), args.Error(1)
}

func (m *MockNoteService) UpdateNote(ctx context.Context, id int64, in service.NoteInput) (*note.Note, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*note.Note), args.Error(1)
}

func (m *MockNoteService) DeleteNote(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ handlers.NoteService = (*MockNoteService)(nil)

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) CreateNotification(ctx context.Context, taskID int64, at time.Time) (*notification.Notification, error) {
	args := m.Called(ctx, taskID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationService) ListNotifications(ctx context.Context) ([]*notification.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationService) ListUnreadNotifications(ctx context.Context) ([]*notification.Notification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkNotificationRead(ctx context.Context, id int64) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationService) DeleteNotification(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

var _ handlers.NotificationService = (*MockNotificationService)(nil)

type MockSettingService struct {
	mock.Mock
}

func (m *MockSettingService) GetSetting(ctx context.Context, key string) (*setting.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*setting.Setting), args.Error(1)
}

func (m *MockSettingService) SetSetting(ctx context.Context, key, value string) (*setting.Setting, error) {
	args := m.Called(ctx, key, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*setting.Setting), args.Error(1)
}

var _ handlers.SettingService = (*MockSettingService)(nil)

type MockCalendarService struct {
	mock.Mock
}

func (m *MockCalendarService) TasksOnDay(ctx context.Context, day string) ([]*task.Task, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockCalendarService) NotesOnDay(ctx context.Context, day string) ([]*note.Note, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*note.Note), args.Error(1)
}

func (m *MockCalendarService) AggregateRange(ctx context.Context, start, end string) (*calendar.Calendar, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Calendar), args.Error(1)
}

var _ handlers.CalendarService = (*MockCalendarService)(nil)

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mocks struct {
	tasks         *MockTaskService
	notes         *MockNoteService
	notifications *MockNotificationService
	settings      *MockSettingService
	calendar      *MockCalendarService
	health        *MockHealthChecker
}

func newRouter() (http.Handler, mocks) {
	m := mocks{
		tasks:         new(MockTaskService),
		notes:         new(MockNoteService),
		notifications: new(MockNotificationService),
		settings:      new(MockSettingService),
		calendar:      new(MockCalendarService),
		health:        new(MockHealthChecker),
	}
	h := &handlers.Handlers{
		Tasks:         handlers.NewTaskHandler(m.tasks, m.calendar),
		Notes:         handlers.NewNoteHandler(m.notes, m.calendar),
		Notifications: handlers.NewNotificationHandler(m.notifications),
		Settings:      handlers.NewSettingHandler(m.settings),
		Calendar:      handlers.NewCalendarHandler(m.calendar),
		Health:        handlers.NewHealthHandler(m.health),
	}
	r := chi.NewRouter()
	h.Mount(r)
	return r, m
}

func (m mocks) assertExpectations(t *testing.T) {
	m.tasks.AssertExpectations(t)
	m.notes.AssertExpectations(t)
	m.notifications.AssertExpectations(t)
	m.settings.AssertExpectations(t)
	m.calendar.AssertExpectations(t)
	m.health.AssertExpectations(t)
}

func do(router http.Handler, method, path, body, contentType string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	code, _ := body["error"].(string)
	return code
}

func strPtr(s string) *string {
	return &s
}

// TestHealthCheck тестирует HealthCheck
func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockHealthChecker)
		expectedStatus int
	}{
		{
			name: "success - healthy",
			setupMock: func(m *MockHealthChecker) {
				m.On("HealthCheck", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "error - unhealthy",
			setupMock: func(m *MockHealthChecker) {
				m.On("HealthCheck", mock.Anything).Return(errors.New("storage unavailable"))
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newRouter()
			tt.setupMock(m.health)

			w := do(router, http.MethodGet, "/health", "", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), "worker-tracker")
			m.assertExpectations(t)
		})
	}
}

// TestTaskHandler_PostTask тестирует создание задачи
func TestTaskHandler_PostTask(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    string
		contentType    string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:        "success - create task",
			requestBody: `{"name": "Зарядка", "taskType": "yes-no", "scheduledDate": "2024-03-10"}`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.MatchedBy(func(in service.TaskInput) bool {
					return in.Name != nil && *in.Name == "Зарядка" &&
						in.ScheduledDate.Present() && in.ScheduledDate.Value == "2024-03-10" &&
						!in.Duration.Set
				})).Return(&task.Task{ID: 1, Name: "Зарядка", TaskType: task.TypeYesNo}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "error - invalid content type",
			requestBody:    `{}`,
			contentType:    "text/plain",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "error - invalid JSON",
			requestBody:    `{invalid json}`,
			contentType:    "application/json",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - unknown task type rejected by tags",
			requestBody:    `{"name": "x", "taskType": "maybe"}`,
			contentType:    "application/json",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.CodeValidation,
		},
		{
			name:           "error - zero daily position",
			requestBody:    `{"name": "x", "taskType": "yes-no", "dailyPosition": 0}`,
			contentType:    "application/json",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.CodeValidation,
		},
		{
			name:        "error - service validation",
			requestBody: `{"taskType": "yes-no"}`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.Anything).
					Return(nil, service.NewValidationError("name", "пусто"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   service.CodeValidation,
		},
		{
			name:        "error - invalid time format",
			requestBody: `{"name": "x", "taskType": "yes-no", "scheduledTime": "9am"}`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.Anything).
					Return(nil, service.NewInvalidTimeFormat("scheduledTime", "9am", dates.ErrInvalidTimeFormat))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   service.CodeInvalidTimeFormat,
		},
		{
			name:        "error - service failure",
			requestBody: `{"name": "x", "taskType": "yes-no"}`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newRouter()
			tt.setupMock(m.tasks)

			w := do(router, http.MethodPost, "/api/tasks", tt.requestBody, tt.contentType)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				var response task.Task
				require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
				assert.Equal(t, "Зарядка", response.Name)
				assert.Equal(t, int64(1), response.ID)
			}
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			}
			m.assertExpectations(t)
		})
	}
}

// TestTaskHandler_GetTaskByID тестирует получение задачи по ID
func TestTaskHandler_GetTaskByID(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*MockTaskService)
		expectedStatus int
	}{
		{
			name: "success - get task",
			path: "/api/tasks/7",
			setupMock: func(m *MockTaskService) {
				m.On("GetTask", mock.Anything, int64(7)).Return(&task.Task{ID: 7, Name: "a"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "error - invalid id",
			path:           "/api/tasks/abc",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - zero id",
			path:           "/api/tasks/0",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error - not found",
			path: "/api/tasks/9",
			setupMock: func(m *MockTaskService) {
				m.On("GetTask", mock.Anything, int64(9)).Return(nil, service.NewNotFound("задача", int64(9)))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "error - wrapped not found",
			path: "/api/tasks/9",
			setupMock: func(m *MockTaskService) {
				m.On("GetTask", mock.Anything, int64(9)).
					Return(nil, errors.Join(errors.New("ctx"), service.NewNotFound("задача", int64(9))))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newRouter()
			tt.setupMock(m.tasks)

			w := do(router, http.MethodGet, tt.path, "", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			m.assertExpectations(t)
		})
	}
}

func TestTaskHandler_ListRoutes(t *testing.T) {
	router, m := newRouter()
	m.tasks.On("ListTasks", mock.Anything).Return([]*task.Task{{ID: 1}, {ID: 2}}, nil)
	m.tasks.On("ListDailyTasks", mock.Anything).Return([]*task.Task{}, nil)
	m.calendar.On("TasksOnDay", mock.Anything, "2024-03-10").Return([]*task.Task{{ID: 2}}, nil)
	m.calendar.On("TasksOnDay", mock.Anything, "bad").Return(nil, service.NewValidationError("date", "плохая дата"))

	w := do(router, http.MethodGet, "/api/tasks", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []task.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&all))
	assert.Len(t, all, 2)

	w = do(router, http.MethodGet, "/api/tasks/daily", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = do(router, http.MethodGet, "/api/tasks/date/2024-03-10", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/api/tasks/date/bad", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m.assertExpectations(t)
}

func TestTaskHandler_UpdateAndComplete(t *testing.T) {
	router, m := newRouter()

	m.tasks.On("UpdateTask", mock.Anything, int64(3), mock.MatchedBy(func(in service.TaskInput) bool {
		return in.ScheduledDate.Present() && in.ScheduledDate.Value == "" && in.Name == nil
	})).Return(&task.Task{ID: 3, Name: "a"}, nil)
	m.tasks.On("CompleteTask", mock.Anything, int64(3), service.Outcome{Value: "b"}).
		Return(&task.Task{ID: 3, TaskType: task.TypeLetter, LetterValue: strPtr("B"), IsCompleted: true}, nil)
	m.tasks.On("CompleteTask", mock.Anything, int64(4), service.Outcome{Value: ""}).
		Return(nil, service.NewValidationError("value", "пусто"))

	w := do(router, http.MethodPut, "/api/tasks/3", `{"scheduledDate": ""}`, "application/json")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/api/tasks/3/complete", `{"value": "b"}`, "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	var completed task.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&completed))
	assert.Equal(t, "B", *completed.LetterValue)
	assert.True(t, completed.IsCompleted)

	w = do(router, http.MethodPost, "/api/tasks/4/complete", `{"value": ""}`, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m.assertExpectations(t)
}

// TestTaskHandler_UpdateWithNull: явный null доходит до сервиса как очистка поля,
// отсутствующие поля остаются нетронутыми
func TestTaskHandler_UpdateWithNull(t *testing.T) {
	router, m := newRouter()

	m.tasks.On("UpdateTask", mock.Anything, int64(5), mock.MatchedBy(func(in service.TaskInput) bool {
		return in.ScheduledDate.Set && in.ScheduledDate.Null &&
			in.Duration.Set && in.Duration.Null &&
			in.LetterValue.Set && in.LetterValue.Null &&
			in.RecurringDays.Set && in.RecurringDays.Null &&
			!in.ScheduledTime.Set && !in.NotificationTime.Set && in.Name == nil
	})).Return(&task.Task{ID: 5, Name: "a", TaskType: task.TypeLetter}, nil)

	w := do(router, http.MethodPut, "/api/tasks/5",
		`{"scheduledDate": null, "duration": null, "letterValue": null, "recurringDays": null}`, "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	var got task.Task
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Nil(t, got.ScheduledDate)
	assert.Nil(t, got.Duration)

	m.assertExpectations(t)
}

func TestTaskHandler_OptionalFieldTags(t *testing.T) {
	tests := []struct {
		name        string
		requestBody string
		field       string
	}{
		{name: "negative duration", requestBody: `{"duration": -1}`, field: "duration"},
		{name: "duration over a day", requestBody: `{"duration": 1441}`, field: "duration"},
		{name: "zero daily position", requestBody: `{"dailyPosition": 0}`, field: "dailyPosition"},
		{name: "negative notification time", requestBody: `{"notificationTime": -5}`, field: "notificationTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newRouter()

			w := do(router, http.MethodPut, "/api/tasks/5", tt.requestBody, "application/json")

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"`+tt.field+`"`)
			assert.Equal(t, service.CodeValidation, errorCode(t, w))
			m.tasks.AssertNotCalled(t, "UpdateTask", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestNoteHandler_UpdateWithNullDate(t *testing.T) {
	router, m := newRouter()

	m.notes.On("UpdateNote", mock.Anything, int64(4), mock.MatchedBy(func(in service.NoteInput) bool {
		return in.AssociatedDate.Set && in.AssociatedDate.Null && in.Title == nil && in.Content == nil
	})).Return(&note.Note{ID: 4, Title: "t"}, nil)

	w := do(router, http.MethodPut, "/api/notes/4", `{"associatedDate": null}`, "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	var got note.Note
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Nil(t, got.AssociatedDate)

	m.assertExpectations(t)
}

func TestTaskHandler_DeleteTaskByID(t *testing.T) {
	router, m := newRouter()
	m.tasks.On("DeleteTask", mock.Anything, int64(1)).Return(true, nil).Once()
	m.tasks.On("DeleteTask", mock.Anything, int64(1)).Return(false, nil).Once()

	w := do(router, http.MethodDelete, "/api/tasks/1", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = do(router, http.MethodDelete, "/api/tasks/1", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	m.assertExpectations(t)
}

func TestNoteHandlers(t *testing.T) {
	router, m := newRouter()
	day := dates.DayKey("2024-03-09")

	m.notes.On("CreateNote", mock.Anything, mock.MatchedBy(func(in service.NoteInput) bool {
		return in.Title != nil && *in.Title == "Идея" && in.AssociatedDate.Present()
	})).Return(&note.Note{ID: 1, Title: "Идея", AssociatedDate: &day}, nil)
	m.notes.On("GetNote", mock.Anything, int64(2)).Return(nil, service.NewNotFound("заметка", int64(2)))
	m.calendar.On("NotesOnDay", mock.Anything, "2024-03-09").Return([]*note.Note{{ID: 1}}, nil)
	m.notes.On("DeleteNote", mock.Anything, int64(1)).Return(true, nil)

	w := do(router, http.MethodPost, "/api/notes", `{"title": "Идея", "content": "", "associatedDate": "2024-03-09"}`, "application/json")
	require.Equal(t, http.StatusCreated, w.Code)
	var created note.Note
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	require.NotNil(t, created.AssociatedDate)
	assert.Equal(t, day, *created.AssociatedDate)

	w = do(router, http.MethodGet, "/api/notes/2", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, service.CodeNotFound, errorCode(t, w))

	w = do(router, http.MethodGet, "/api/notes/date/2024-03-09", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodDelete, "/api/notes/1", "", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	m.assertExpectations(t)
}

func TestNotificationHandlers(t *testing.T) {
	router, m := newRouter()
	at := time.Date(2024, 3, 10, 8, 45, 0, 0, time.UTC)

	m.notifications.On("CreateNotification", mock.Anything, int64(5), at).
		Return(&notification.Notification{ID: 1, TaskID: 5, NotificationTime: at}, nil)
	m.notifications.On("ListUnreadNotifications", mock.Anything).Return([]*notification.Notification{}, nil)
	m.notifications.On("MarkNotificationRead", mock.Anything, int64(1)).
		Return(&notification.Notification{ID: 1, TaskID: 5, IsRead: true}, nil)
	m.notifications.On("MarkNotificationRead", mock.Anything, int64(8)).
		Return(nil, service.NewNotFound("уведомление", int64(8)))

	w := do(router, http.MethodPost, "/api/notifications", `{"taskId": 5, "notificationTime": "2024-03-10T08:45:00Z"}`, "application/json")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodPost, "/api/notifications", `{"taskId": 0, "notificationTime": "2024-03-10T08:45:00Z"}`, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/api/notifications/unread", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPut, "/api/notifications/1/read", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPut, "/api/notifications/8/read", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	m.assertExpectations(t)
}

func TestSettingHandlers(t *testing.T) {
	router, m := newRouter()

	m.settings.On("GetSetting", mock.Anything, setting.KeyDailyTasksCount).
		Return(&setting.Setting{Key: setting.KeyDailyTasksCount, Value: "8"}, nil)
	m.settings.On("SetSetting", mock.Anything, setting.KeyDailyTasksCount, "-1").
		Return(nil, service.NewValidationError("value", "должно быть положительным"))

	w := do(router, http.MethodGet, "/api/settings/dailyTasksCount", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var st setting.Setting
	require.NoError(t, json.NewDecoder(w.Body).Decode(&st))
	assert.Equal(t, "8", st.Value)

	w = do(router, http.MethodPut, "/api/settings/dailyTasksCount", `{"value": "-1"}`, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPut, "/api/settings/dailyTasksCount", `{}`, "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m.assertExpectations(t)
}

func TestCalendarHandler_GetRange(t *testing.T) {
	router, m := newRouter()

	cal := calendar.New([]dates.DayKey{"2024-03-09", "2024-03-10", "2024-03-11"})
	day := dates.DayKey("2024-03-10")
	cal.AddTask(&task.Task{ID: 1, Name: "A", ScheduledDate: &day})

	m.calendar.On("AggregateRange", mock.Anything, "2024-03-09", "2024-03-11").Return(cal, nil)
	m.calendar.On("AggregateRange", mock.Anything, "2024-03-11", "2024-03-09").
		Return(nil, service.NewValidationError("startDate", "позже конца"))

	w := do(router, http.MethodGet, "/api/calendar/2024-03-09/2024-03-11", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "2024-03-09"), strings.Index(body, "2024-03-10"))
	assert.Less(t, strings.Index(body, "2024-03-10"), strings.Index(body, "2024-03-11"))

	var decoded map[string]calendar.Bucket
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	assert.Len(t, decoded, 3)
	assert.Len(t, decoded["2024-03-10"].Tasks, 1)
	assert.Empty(t, decoded["2024-03-11"].Notes)

	w = do(router, http.MethodGet, "/api/calendar/2024-03-11/2024-03-09", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m.assertExpectations(t)
}
