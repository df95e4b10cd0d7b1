package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type startKey struct{}

// LogHook logs every command and pipeline at debug level with its latency.
// A miss (redis.Nil) is not logged as an error.
type LogHook struct {
	logger *zap.Logger
}

var _ redis.Hook = (*LogHook)(nil)

func NewLogHook(logger *zap.Logger) *LogHook {
	return &LogHook{logger: logger.Named("redis")}
}

func (h *LogHook) BeforeProcess(ctx context.Context, _ redis.Cmder) (context.Context, error) {
	return context.WithValue(ctx, startKey{}, time.Now()), nil
}

func (h *LogHook) AfterProcess(ctx context.Context, cmd redis.Cmder) error {
	h.log(ctx, cmd.Name(), 1, cmd.Err())
	return nil
}

func (h *LogHook) BeforeProcessPipeline(ctx context.Context, _ []redis.Cmder) (context.Context, error) {
	return context.WithValue(ctx, startKey{}, time.Now()), nil
}

func (h *LogHook) AfterProcessPipeline(ctx context.Context, cmds []redis.Cmder) error {
	var err error
	for _, cmd := range cmds {
		if cmdErr := cmd.Err(); cmdErr != nil && cmdErr != redis.Nil {
			err = cmdErr
			break
		}
	}
	h.log(ctx, "pipeline", len(cmds), err)
	return nil
}

func (h *LogHook) log(ctx context.Context, name string, cmds int, err error) {
	fields := []zap.Field{zap.String("cmd", name), zap.Int("cmds", cmds)}
	if start, ok := ctx.Value(startKey{}).(time.Time); ok {
		fields = append(fields, zap.Duration("took", time.Since(start)))
	}
	if err != nil && err != redis.Nil {
		fields = append(fields, zap.Error(err))
	}
	h.logger.Debug("redis", fields...)
}
