package domain

import "context"

// Background task names.
const (
	TaskSendConfirmationEmail = "send_confirmation_email"
	TaskSetFeaturedSpeaker    = "set_featured_speaker"
)

// Task parameter names.
const (
	ParamEmail          = "email"
	ParamConferenceInfo = "conference_info"
	ParamConferenceID   = "conference_id"
	ParamSpeaker        = "speaker"
)

// Task is a unit of background work.
type Task struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params"`
}

// TaskDispatcher hands tasks to the background worker.
type TaskDispatcher interface {
	Dispatch(ctx context.Context, t Task) error
}

// TaskHandler processes one task.
type TaskHandler interface {
	Handle(ctx context.Context, t Task) error
}
