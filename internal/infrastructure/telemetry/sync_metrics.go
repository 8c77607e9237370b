package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// SyncMetrics records marketplace sync and order fulfillment activity.
type SyncMetrics struct {
	logger *zap.Logger

	syncOperationsTotal *Counter
	syncDuration        *Histogram
	syncAllItemsTotal   *Counter
	syncAllRunsTotal    *Counter
	syncAllDuration     *Histogram
	transitionsTotal    *Counter
}

// NewSyncMetrics registers the sync instruments on meter.
func NewSyncMetrics(meter metric.Meter, logger *zap.Logger) (*SyncMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &SyncMetrics{logger: logger}
	var err error

	if m.syncOperationsTotal, err = NewCounter(meter,
		"sf_marketplace_sync_operations_total",
		"Marketplace sync operations by type and outcome",
		"{operations}"); err != nil {
		return nil, err
	}
	if m.syncDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "sf_marketplace_sync_duration_seconds",
		Description: "Duration of single marketplace sync operations",
		Unit:        "s",
		Boundaries:  RemoteCallBuckets,
	}); err != nil {
		return nil, err
	}
	if m.syncAllItemsTotal, err = NewCounter(meter,
		"sf_marketplace_sync_all_items_total",
		"Products processed by catalog-wide sync runs",
		"{products}"); err != nil {
		return nil, err
	}
	if m.syncAllRunsTotal, err = NewCounter(meter,
		"sf_marketplace_sync_all_runs_total",
		"Catalog-wide sync runs by outcome",
		"{runs}"); err != nil {
		return nil, err
	}
	if m.syncAllDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "sf_marketplace_sync_all_duration_seconds",
		Description: "Duration of catalog-wide sync runs",
		Unit:        "s",
		Boundaries:  SyncRunBuckets,
	}); err != nil {
		return nil, err
	}
	if m.transitionsTotal, err = NewCounter(meter,
		"sf_order_transitions_total",
		"Order status change requests by outcome",
		"{requests}"); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordSyncOperation records one single-product or order sync.
func (m *SyncMetrics) RecordSyncOperation(ctx context.Context, syncType, status string, d time.Duration) {
	attrs := []attribute.KeyValue{AttrSyncType.String(syncType), AttrSyncStatus.String(status)}
	m.syncOperationsTotal.Inc(ctx, attrs...)
	m.syncDuration.RecordDuration(ctx, d, attrs...)
}

// RecordSyncAllItem records the outcome of one product inside a sync-all run.
func (m *SyncMetrics) RecordSyncAllItem(ctx context.Context, outcome string, dryRun bool) {
	m.syncAllItemsTotal.Inc(ctx, AttrItemOutcome.String(outcome), AttrSyncDryRun.Bool(dryRun))
}

// RecordSyncAllRun records a finished sync-all run.
func (m *SyncMetrics) RecordSyncAllRun(ctx context.Context, status string, dryRun bool, d time.Duration) {
	attrs := []attribute.KeyValue{AttrSyncStatus.String(status), AttrSyncDryRun.Bool(dryRun)}
	m.syncAllRunsTotal.Inc(ctx, attrs...)
	m.syncAllDuration.RecordDuration(ctx, d, attrs...)
}

// RecordTransition records an order status change request.
func (m *SyncMetrics) RecordTransition(ctx context.Context, from, to, outcome string) {
	m.transitionsTotal.Inc(ctx,
		AttrOrderFrom.String(from),
		AttrOrderTo.String(to),
		AttrOrderOutcome.String(outcome),
	)
}
