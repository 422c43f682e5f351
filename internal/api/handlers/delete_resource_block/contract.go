package delete_resource_block

import (
	"context"
)

type ScheduleService interface {
	DeleteBlock(ctx context.Context, resourceID, blockID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
