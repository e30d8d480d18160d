package worker

import (
	"github.com/spec-kit/weight-tracker/internal/service"
)

// StartProgressWorker registers progress evaluation handlers.
func StartProgressWorker(progressService *service.ProgressService) {
	if progressService == nil {
		return
	}
	progressService.RegisterHandlers()
}
