package integration

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/catalog"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/logger"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSyncAll acquires the sync-all lease and reconciles the whole active
// catalog in the background. When another run holds the lease it returns
// Accepted=false together with ErrSyncAlreadyRunning.
func (o *SyncOrchestrator) StartSyncAll(ctx context.Context, dryRun bool) (*StartResult, error) {
	dryRun = dryRun || o.cfg.DryRunOnly
	runID := uuid.NewString()

	acquired, err := o.leases.Acquire(ctx, integration.SyncAllLeaseName, runID, o.cfg.LeaseTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire sync-all lease: %w", err)
	}
	if !acquired {
		return &StartResult{Accepted: false, Reason: ReasonAlreadyRunning, DryRun: dryRun}, integration.ErrSyncAlreadyRunning
	}

	// The run outlives the request that started it.
	runCtx, runLogger := logger.WithRunID(context.WithoutCancel(ctx), o.logger, runID)
	runLogger.Info("Sync-all started", zap.Bool("dry_run", dryRun))

	o.runs.Add(1)
	go func() {
		defer o.runs.Done()
		o.runSyncAll(runCtx, runID, dryRun, runLogger)
	}()

	return &StartResult{Accepted: true, RunID: runID, DryRun: dryRun}, nil
}

type syncJob struct {
	product *catalog.Product
	link    *integration.MarketplaceLink
}

func (o *SyncOrchestrator) runSyncAll(ctx context.Context, runID string, dryRun bool, log *zap.Logger) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sync", "sync_all",
		telemetry.SpanAttrSyncRunID, runID,
		telemetry.SpanAttrSyncDryRun, dryRun,
	)
	defer span.End()

	start := o.now()
	summary := &SyncAllSummary{RunID: runID, DryRun: dryRun, StartedAt: start, Items: []ItemResult{}}

	hbCtx, stopHeartbeat := context.WithCancel(ctx)
	var hb sync.WaitGroup
	hb.Add(1)
	go func() {
		defer hb.Done()
		o.heartbeat(hbCtx, runID, log)
	}()

	runErr := o.reconcileCatalog(ctx, summary, dryRun)
	stopHeartbeat()
	hb.Wait()

	summary.FinishedAt = o.now()
	if runErr != nil {
		summary.Error = runErr.Error()
	}
	status := summary.Status()

	payload := SyncAllPayload{RunID: runID, DryRun: dryRun, Mode: syncMode(dryRun)}
	var cause error
	if status != integration.SyncLogStatusCompleted {
		cause = runErr
		if cause == nil {
			cause = fmt.Errorf("%d of %d products failed", summary.Failed, summary.Total)
		}
	}
	if entry, err := integration.NewSyncLog(integration.SyncLogTypeSyncAll, status, payload, summary, cause); err != nil {
		log.Error("Failed to build sync-all log", zap.Error(err))
	} else if err := o.logs.Append(ctx, entry); err != nil {
		log.Error("Failed to write sync-all log", zap.Error(err))
	}

	// Released only after the log is written so status polling never sees a
	// finished run without its log.
	if err := o.leases.Release(ctx, integration.SyncAllLeaseName, runID); err != nil {
		log.Error("Failed to release sync-all lease", zap.Error(err))
	}

	elapsed := summary.FinishedAt.Sub(start)
	o.metrics.RecordSyncAllRun(ctx, string(status), dryRun, elapsed)
	telemetry.SetAttributes(span, telemetry.SpanAttrSyncLogStatus, string(status))
	telemetry.RecordError(span, cause)

	log.Info("Sync-all finished",
		zap.String("status", string(status)),
		zap.Int("total", summary.Total),
		zap.Int("updated", summary.Updated),
		zap.Int("unchanged", summary.Unchanged),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Duration("elapsed", elapsed),
	)
}

// heartbeat renews the lease every ttl/3 until ctx is cancelled
func (o *SyncOrchestrator) heartbeat(ctx context.Context, runID string, log *zap.Logger) {
	interval := o.cfg.LeaseTTL / 3
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok, err := o.leases.Renew(ctx, integration.SyncAllLeaseName, runID, o.cfg.LeaseTTL)
			switch {
			case err != nil && !errors.Is(err, context.Canceled):
				log.Warn("Sync-all lease renewal failed", zap.Error(err))
			case err == nil && !ok:
				log.Warn("Sync-all lease lost; another instance may start a run")
			}
		}
	}
}

// reconcileCatalog pings the marketplace, then walks the active catalog page
// by page and fans the products out to a bounded worker pool.
func (o *SyncOrchestrator) reconcileCatalog(ctx context.Context, summary *SyncAllSummary, dryRun bool) error {
	if err := o.gateway.Ping(ctx); err != nil {
		return integration.NewRemoteError("ping", err)
	}

	jobs := make(chan syncJob)
	results := make(chan ItemResult)

	var workers sync.WaitGroup
	for range o.cfg.Workers {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for job := range jobs {
				results <- o.reconcileItem(ctx, job, dryRun)
			}
		}()
	}

	var walkErr error
	go func() {
		defer close(jobs)
		walkErr = o.walkCatalog(ctx, jobs)
	}()

	go func() {
		workers.Wait()
		close(results)
	}()

	for item := range results {
		summary.add(item)
		o.metrics.RecordSyncAllItem(ctx, string(item.Outcome), dryRun)
	}
	return walkErr
}

func (o *SyncOrchestrator) walkCatalog(ctx context.Context, jobs chan<- syncJob) error {
	filter := shared.Filter{Page: 1, PageSize: o.cfg.PageSize, OrderBy: "createdAt", OrderDir: "asc"}
	for {
		products, total, err := o.products.FindActive(ctx, filter)
		if err != nil {
			return fmt.Errorf("list products page %d: %w", filter.Page, err)
		}
		if len(products) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(products))
		for _, p := range products {
			ids = append(ids, p.ID)
		}
		links, err := o.links.FindByProductIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("load links page %d: %w", filter.Page, err)
		}

		for _, p := range products {
			select {
			case jobs <- syncJob{product: p, link: links[p.ID]}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if int64(filter.Page*filter.PageSize) >= total {
			return nil
		}
		filter.Page++
	}
}

// reconcileItem pulls one product. Dry runs only compute the diff from the
// page snapshot. Live runs claim the product like a single pull, re-read it,
// and commit the product and its link together; a product another sync is
// working on fails the item with ErrSyncInProgress.
func (o *SyncOrchestrator) reconcileItem(ctx context.Context, job syncJob, dryRun bool) ItemResult {
	item := ItemResult{ProductID: job.product.ID}
	if !job.link.IsLinked() {
		item.Outcome = ItemSkipped
		return item
	}
	item.ExternalProductID = job.link.ExternalID()
	fail := func(err error) ItemResult {
		item.Outcome = ItemFailed
		item.Error = err.Error()
		item.Changes = nil
		return item
	}

	if dryRun {
		remote, err := o.fetchRemote(ctx, job.link.ExternalID())
		if err != nil {
			return fail(err)
		}
		item.Changes = job.product.Diff(toVariantUpdates(remote.Variants, true))
		return classify(item)
	}

	link, err := o.links.FindByProductID(ctx, job.product.ID)
	if err != nil {
		return fail(err)
	}
	prev, err := o.claim(ctx, link)
	if err != nil {
		return fail(err)
	}
	product, err := o.products.FindByID(ctx, job.product.ID)
	if err != nil {
		o.release(ctx, link, prev)
		return fail(err)
	}

	remote, err := o.fetchRemote(ctx, link.ExternalID())
	if err != nil {
		link.RecordFailure(err.Error(), o.now())
		if saveErr := o.links.SaveWithLock(ctx, link); saveErr != nil {
			logger.FromContext(ctx).Warn("Failed to record sync failure",
				zap.String("product_id", job.product.ID.String()), zap.Error(saveErr))
		}
		return fail(err)
	}

	item.Changes = product.Apply(toVariantUpdates(remote.Variants, true))
	link.RecordSuccess(o.now())
	err = o.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if len(item.Changes) > 0 {
			if err := repos.ProductRepo().UpdateVariants(ctx, product); err != nil {
				return err
			}
		}
		return repos.LinkRepo().SaveWithLock(ctx, link)
	})
	if err != nil {
		o.abandon(ctx, err, link)
		return fail(err)
	}
	return classify(item)
}

func (o *SyncOrchestrator) fetchRemote(ctx context.Context, externalID string) (*integration.RemoteProduct, error) {
	remote, err := o.gateway.GetProduct(ctx, externalID)
	if err == nil && remote == nil {
		err = integration.ErrPlatformInvalidResponse
	}
	return remote, err
}

func classify(item ItemResult) ItemResult {
	if len(item.Changes) > 0 {
		item.Outcome = ItemUpdated
	} else {
		item.Outcome = ItemUnchanged
	}
	return item
}
