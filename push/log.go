package push

import (
	"context"

	"github.com/giygas/medreminder/interfaces"
	"github.com/giygas/medreminder/logging"
)

// LogPusher only logs. It is the default when no provider is configured.
type LogPusher struct{}

var _ interfaces.Pusher = LogPusher{}

func NewLogPusher() LogPusher { return LogPusher{} }

func (LogPusher) Name() string { return "log" }

func (LogPusher) Push(_ context.Context, req interfaces.PushRequest) error {
	logging.Info("Push notification", "title", req.Title, "message", req.Message)
	return nil
}
