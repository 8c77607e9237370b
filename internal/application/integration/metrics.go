package integration

import (
	"context"
	"time"
)

// Metrics receives sync instrumentation. telemetry.SyncMetrics implements it.
type Metrics interface {
	RecordSyncOperation(ctx context.Context, syncType, status string, d time.Duration)
	RecordSyncAllItem(ctx context.Context, outcome string, dryRun bool)
	RecordSyncAllRun(ctx context.Context, status string, dryRun bool, d time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) RecordSyncOperation(context.Context, string, string, time.Duration) {}
func (nopMetrics) RecordSyncAllItem(context.Context, string, bool)                    {}
func (nopMetrics) RecordSyncAllRun(context.Context, string, bool, time.Duration)      {}
