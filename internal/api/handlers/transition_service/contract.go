package transition_service

import (
	"context"

	transitionService "github.com/m04kA/SMC-WorkshopService/internal/usecase/transition_service"
)

type TransitionServiceUseCase interface {
	Execute(ctx context.Context, req *transitionService.Request) (*transitionService.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
