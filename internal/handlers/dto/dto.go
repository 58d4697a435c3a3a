package dto

import (
	"time"

	"workerTracker/internal/optional"
	"workerTracker/internal/service"
)

// TaskRequest используется и для создания, и для частичного обновления.
// Отсутствующее поле не трогает запись. null в необязательном поле очищает его,
// для обязательных полей null равносилен отсутствию.
type TaskRequest struct {
	Name              *string                `json:"name,omitempty" validate:"omitempty,max=500"`
	TaskType          *string                `json:"taskType,omitempty" validate:"omitempty,oneof=yes-no letter subjective"`
	IsCompleted       *bool                  `json:"isCompleted,omitempty"`
	LetterValue       optional.Value[string] `json:"letterValue"`
	SubjectiveContent optional.Value[string] `json:"subjectiveContent"`
	IsDaily           *bool                  `json:"isDaily,omitempty"`
	DailyPosition     optional.Value[int]    `json:"dailyPosition" validate:"omitempty,min=1"`
	ScheduledDate     optional.Value[string] `json:"scheduledDate"`
	ScheduledTime     optional.Value[string] `json:"scheduledTime"`
	EndTime           optional.Value[string] `json:"endTime"`
	HasTimeRequired   *bool                  `json:"hasTimeRequired,omitempty"`
	Duration          optional.Value[int]    `json:"duration" validate:"omitempty,min=0,max=1440"`
	NotificationTime  optional.Value[int]    `json:"notificationTime" validate:"omitempty,min=0"`
	IsRecurring       *bool                  `json:"isRecurring,omitempty"`
	RecurringType     optional.Value[string] `json:"recurringType"`
	RecurringDays     optional.Value[[]int]  `json:"recurringDays"`
	RecurringEndDate  optional.Value[string] `json:"recurringEndDate"`
}

func (r TaskRequest) ToInput() service.TaskInput {
	return service.TaskInput{
		Name:              r.Name,
		TaskType:          r.TaskType,
		IsCompleted:       r.IsCompleted,
		LetterValue:       r.LetterValue,
		SubjectiveContent: r.SubjectiveContent,
		IsDaily:           r.IsDaily,
		DailyPosition:     r.DailyPosition,
		ScheduledDate:     r.ScheduledDate,
		ScheduledTime:     r.ScheduledTime,
		EndTime:           r.EndTime,
		HasTimeRequired:   r.HasTimeRequired,
		Duration:          r.Duration,
		NotificationTime:  r.NotificationTime,
		IsRecurring:       r.IsRecurring,
		RecurringType:     r.RecurringType,
		RecurringDays:     r.RecurringDays,
		RecurringEndDate:  r.RecurringEndDate,
	}
}

// CompleteTaskRequest: completed для yes-no, value - буква или текст
type CompleteTaskRequest struct {
	Completed bool   `json:"completed"`
	Value     string `json:"value"`
}

func (r CompleteTaskRequest) ToOutcome() service.Outcome {
	return service.Outcome{Completed: r.Completed, Value: r.Value}
}

type NoteRequest struct {
	Title          *string                `json:"title,omitempty" validate:"omitempty,max=500"`
	Content        *string                `json:"content,omitempty"`
	AssociatedDate optional.Value[string] `json:"associatedDate"`
}

func (r NoteRequest) ToInput() service.NoteInput {
	return service.NoteInput{
		Title:          r.Title,
		Content:        r.Content,
		AssociatedDate: r.AssociatedDate,
	}
}

type NotificationRequest struct {
	TaskID           int64     `json:"taskId" validate:"required,gt=0"`
	NotificationTime time.Time `json:"notificationTime"`
}

type SettingRequest struct {
	Value *string `json:"value" validate:"required"`
}
