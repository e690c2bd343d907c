package database

import (
	"context"
	"time"

	"github.com/geekhub/mainframe/mainframe/logger"
	"github.com/uptrace/bun"
)

// QueryLogHook sends every bun query through the shared query logger.
type QueryLogHook struct{}

var _ bun.QueryHook = QueryLogHook{}

func (QueryLogHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (QueryLogHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	logger.LogQuery(event.Query, time.Since(event.StartTime), event.Err)
}
