package schedule_event

import (
	"context"

	scheduleEvent "github.com/m04kA/SMC-WorkshopService/internal/usecase/schedule_event"
)

type ScheduleEventUseCase interface {
	Execute(ctx context.Context, req *scheduleEvent.Request) (*scheduleEvent.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
