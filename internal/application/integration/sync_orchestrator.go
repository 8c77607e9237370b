package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/catalog"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncConfig tunes the orchestrator
type SyncConfig struct {
	DryRunOnly bool
	Workers    int
	PageSize   int
	LeaseTTL   time.Duration
	// ClaimTTL bounds how long a product stays claimed by one push/pull.
	// It must outlast a single marketplace call.
	ClaimTTL time.Duration
}

// DefaultSyncConfig returns the production defaults
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{Workers: 4, PageSize: 50, LeaseTTL: 10 * time.Minute, ClaimTTL: 2 * time.Minute}
}

// SyncOrchestrator runs every marketplace synchronization. Each operation that
// reaches the marketplace writes exactly one sync log entry; rejections that
// happen before the first remote call write none.
//
// Product pushes and pulls have a single writer per product: before calling
// the marketplace they persist the link as pending under its version, and a
// second sync on the same product fails with ErrSyncInProgress until the
// first one commits its outcome.
type SyncOrchestrator struct {
	gateway  integration.MarketplaceGateway
	products catalog.ProductRepository
	links    integration.MarketplaceLinkRepository
	logs     integration.SyncLogRepository
	orders   order.Repository
	leases   integration.LeaseStore
	txScope  TransactionScope
	metrics  Metrics
	logger   *zap.Logger
	cfg      SyncConfig
	now      func() time.Time

	runs sync.WaitGroup
}

// OrchestratorOption configures optional collaborators
type OrchestratorOption func(*SyncOrchestrator)

// WithMetrics records sync instrumentation
func WithMetrics(m Metrics) OrchestratorOption {
	return func(o *SyncOrchestrator) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithLogger sets the orchestrator logger
func WithLogger(l *zap.Logger) OrchestratorOption {
	return func(o *SyncOrchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *SyncOrchestrator) { o.now = now }
}

// NewSyncOrchestrator creates a SyncOrchestrator
func NewSyncOrchestrator(
	gateway integration.MarketplaceGateway,
	products catalog.ProductRepository,
	links integration.MarketplaceLinkRepository,
	logs integration.SyncLogRepository,
	orders order.Repository,
	leases integration.LeaseStore,
	txScope TransactionScope,
	cfg SyncConfig,
	opts ...OrchestratorOption,
) *SyncOrchestrator {
	def := DefaultSyncConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = def.LeaseTTL
	}
	if cfg.ClaimTTL <= 0 {
		cfg.ClaimTTL = def.ClaimTTL
	}
	o := &SyncOrchestrator{
		gateway:  gateway,
		products: products,
		links:    links,
		logs:     logs,
		orders:   orders,
		leases:   leases,
		txScope:  txScope,
		metrics:  nopMetrics{},
		logger:   zap.NewNop(),
		cfg:      cfg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ---------------------------------------------------------------------------
// Push product
// ---------------------------------------------------------------------------

// PushProduct creates or updates the marketplace listing of a product.
// The first successful push links the product.
func (o *SyncOrchestrator) PushProduct(ctx context.Context, productID uuid.UUID) (*PushResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sync", "push_product", telemetry.SpanAttrProductID, productID.String())
	defer span.End()
	start := o.now()

	if _, err := o.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	link, err := o.findLink(ctx, productID)
	if err != nil {
		return nil, err
	}
	prev, err := o.claim(ctx, link)
	if err != nil {
		return nil, err
	}
	product, err := o.products.FindByID(ctx, productID)
	if err != nil {
		o.release(ctx, link, prev)
		return nil, err
	}

	req := &integration.PushProductRequest{
		ExternalID: link.ExternalID(),
		Name:       product.Name,
		Variants:   toRemoteVariants(product),
	}
	res, callErr := o.gateway.PushProduct(ctx, req)
	if callErr == nil && (res == nil || strings.TrimSpace(res.ExternalID) == "") {
		callErr = integration.ErrPlatformInvalidResponse
	}
	now := o.now()

	status := integration.SyncLogStatusSuccess
	if callErr != nil {
		status = integration.SyncLogStatusFailed
		link.RecordFailure(callErr.Error(), now)
	} else {
		link.Link(res.ExternalID)
		link.RecordSuccess(now)
	}

	payload := productPayload{ProductID: productID, ExternalID: req.ExternalID, Request: req}
	if err := o.commit(ctx, integration.SyncLogTypePushProduct, status, payload, res, callErr, func(repos TransactionalRepositories) error {
		return repos.LinkRepo().SaveWithLock(ctx, link)
	}); err != nil {
		o.abandon(ctx, err, link)
		return nil, err
	}
	o.metrics.RecordSyncOperation(ctx, string(integration.SyncLogTypePushProduct), string(status), o.now().Sub(start))

	if callErr != nil {
		telemetry.RecordError(span, callErr)
		return nil, integration.NewRemoteError("push_product", callErr)
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrExternalID, link.ExternalID())
	return &PushResult{
		ProductID:         productID,
		ExternalProductID: link.ExternalID(),
		Created:           res.Created,
		Badge:             link.Badge(),
	}, nil
}

// ---------------------------------------------------------------------------
// Pull product
// ---------------------------------------------------------------------------

// PullProduct overwrites local variant stock and price from the marketplace.
// An unlinked product fails with ErrUnlinkedProduct before any remote call.
func (o *SyncOrchestrator) PullProduct(ctx context.Context, productID uuid.UUID) (*PullResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sync", "pull_product", telemetry.SpanAttrProductID, productID.String())
	defer span.End()

	if _, err := o.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	link, err := o.findLink(ctx, productID)
	if err != nil {
		return nil, err
	}
	res, err := o.pull(ctx, link)
	telemetry.RecordError(span, err)
	return res, err
}

// PullProductByExternalID resolves the product through its marketplace id
// and pulls it.
func (o *SyncOrchestrator) PullProductByExternalID(ctx context.Context, externalID string) (*PullResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sync", "pull_product", telemetry.SpanAttrExternalID, externalID)
	defer span.End()

	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, integration.ErrUnlinkedProduct
	}
	link, err := o.links.FindByExternalID(ctx, externalID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, integration.ErrUnlinkedProduct
	}
	if err != nil {
		return nil, err
	}
	res, err := o.pull(ctx, link)
	telemetry.RecordError(span, err)
	return res, err
}

// pull claims the product, then reads it so the stock and price written back
// come from a snapshot no other sync can change underneath.
func (o *SyncOrchestrator) pull(ctx context.Context, link *integration.MarketplaceLink) (*PullResult, error) {
	if !link.IsLinked() {
		return nil, integration.ErrUnlinkedProduct
	}
	prev, err := o.claim(ctx, link)
	if err != nil {
		return nil, err
	}
	product, err := o.products.FindByID(ctx, link.ProductID)
	if err != nil {
		o.release(ctx, link, prev)
		return nil, err
	}

	start := o.now()
	externalID := link.ExternalID()
	payload := productPayload{ProductID: product.ID, ExternalID: externalID}

	remote, callErr := o.gateway.GetProduct(ctx, externalID)
	if callErr == nil && remote == nil {
		callErr = integration.ErrPlatformInvalidResponse
	}
	now := o.now()
	if callErr != nil {
		link.RecordFailure(callErr.Error(), now)
		if err := o.commit(ctx, integration.SyncLogTypePullProduct, integration.SyncLogStatusFailed, payload, nil, callErr,
			func(repos TransactionalRepositories) error {
				return repos.LinkRepo().SaveWithLock(ctx, link)
			}); err != nil {
			o.abandon(ctx, err, link)
			return nil, err
		}
		o.metrics.RecordSyncOperation(ctx, string(integration.SyncLogTypePullProduct), string(integration.SyncLogStatusFailed), o.now().Sub(start))
		return nil, integration.NewRemoteError("pull_product", callErr)
	}

	changes := product.Apply(toVariantUpdates(remote.Variants, true))
	link.RecordSuccess(now)
	response := pullResponse{Remote: remote, Changes: changes}
	if err := o.commit(ctx, integration.SyncLogTypePullProduct, integration.SyncLogStatusSuccess, payload, response, nil,
		func(repos TransactionalRepositories) error {
			if len(changes) > 0 {
				if err := repos.ProductRepo().UpdateVariants(ctx, product); err != nil {
					return err
				}
			}
			return repos.LinkRepo().SaveWithLock(ctx, link)
		}); err != nil {
		o.abandon(ctx, err, link)
		return nil, err
	}
	o.metrics.RecordSyncOperation(ctx, string(integration.SyncLogTypePullProduct), string(integration.SyncLogStatusSuccess), o.now().Sub(start))

	if changes == nil {
		changes = []catalog.VariantChange{}
	}
	return &PullResult{
		ProductID:         product.ID,
		ExternalProductID: externalID,
		Changes:           changes,
		Badge:             link.Badge(),
	}, nil
}

// ---------------------------------------------------------------------------
// Pull stock
// ---------------------------------------------------------------------------

// PullStock refreshes variant stock by SKU. An empty productIDs means every
// linked active product. Every covered product is claimed up front; if any
// of them is busy the whole pull is refused before the marketplace is called.
func (o *SyncOrchestrator) PullStock(ctx context.Context, productIDs []uuid.UUID) (*StockResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sync", "pull_stock")
	defer span.End()

	links, err := o.stockTargets(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return &StockResult{Changes: []catalog.VariantChange{}}, nil
	}

	claimed := make([]*integration.MarketplaceLink, 0, len(links))
	prevs := make([]integration.LinkSyncStatus, 0, len(links))
	releaseAll := func() {
		for i, l := range claimed {
			o.release(ctx, l, prevs[i])
		}
	}
	for _, l := range links {
		prev, err := o.claim(ctx, l)
		if err != nil {
			releaseAll()
			return nil, err
		}
		claimed = append(claimed, l)
		prevs = append(prevs, prev)
	}

	ids := make([]uuid.UUID, 0, len(claimed))
	for _, l := range claimed {
		ids = append(ids, l.ProductID)
	}
	products, err := o.products.FindByIDs(ctx, ids)
	if err != nil {
		releaseAll()
		return nil, err
	}

	start := o.now()
	payload := stockPayload{}
	for _, p := range products {
		payload.ProductIDs = append(payload.ProductIDs, p.ID)
		payload.SKUs = append(payload.SKUs, p.SKUs()...)
	}

	stock, callErr := o.gateway.ListStock(ctx, payload.SKUs)
	now := o.now()
	if callErr != nil {
		for _, l := range claimed {
			l.RecordFailure(callErr.Error(), now)
		}
		if err := o.commit(ctx, integration.SyncLogTypePullStock, integration.SyncLogStatusFailed, payload, nil, callErr,
			saveLinks(ctx, claimed)); err != nil {
			o.abandon(ctx, err, claimed...)
			return nil, err
		}
		o.metrics.RecordSyncOperation(ctx, string(integration.SyncLogTypePullStock), string(integration.SyncLogStatusFailed), o.now().Sub(start))
		telemetry.RecordError(span, callErr)
		return nil, integration.NewRemoteError("pull_stock", callErr)
	}

	updates := make([]catalog.VariantUpdate, 0, len(stock))
	for _, s := range stock {
		qty := s.Stock
		updates = append(updates, catalog.VariantUpdate{SKU: s.SKU, Stock: &qty})
	}
	changes := []catalog.VariantChange{}
	var changed []*catalog.Product
	for _, p := range products {
		if c := p.Apply(updates); len(c) > 0 {
			changes = append(changes, c...)
			changed = append(changed, p)
		}
	}
	for _, l := range claimed {
		l.RecordSuccess(now)
	}

	response := stockResponse{Stock: stock, Changes: changes}
	if err := o.commit(ctx, integration.SyncLogTypePullStock, integration.SyncLogStatusSuccess, payload, response, nil,
		func(repos TransactionalRepositories) error {
			for _, p := range changed {
				if err := repos.ProductRepo().UpdateVariants(ctx, p); err != nil {
					return err
				}
			}
			return saveLinks(ctx, claimed)(repos)
		}); err != nil {
		o.abandon(ctx, err, claimed...)
		return nil, err
	}
	o.metrics.RecordSyncOperation(ctx, string(integration.SyncLogTypePullStock), string(integration.SyncLogStatusSuccess), o.now().Sub(start))
	return &StockResult{Products: len(products), Changes: changes}, nil
}

// stockTargets returns the links of the products a stock pull covers
func (o *SyncOrchestrator) stockTargets(ctx context.Context, productIDs []uuid.UUID) ([]*integration.MarketplaceLink, error) {
	if len(productIDs) == 0 {
		linked, err := o.links.FindLinked(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]uuid.UUID, 0, len(linked))
		for _, l := range linked {
			ids = append(ids, l.ProductID)
		}
		if len(ids) == 0 {
			return nil, nil
		}
		products, err := o.products.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		active := make(map[uuid.UUID]bool, len(products))
		for _, p := range products {
			active[p.ID] = p.IsActive
		}
		targets := linked[:0]
		for _, l := range linked {
			if active[l.ProductID] {
				targets = append(targets, l)
			}
		}
		return targets, nil
	}

	unique := uniqueIDs(productIDs)
	products, err := o.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(unique) {
		return nil, catalog.ErrProductNotFound
	}
	links, err := o.links.FindByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	targets := make([]*integration.MarketplaceLink, 0, len(products))
	for _, p := range products {
		if !links[p.ID].IsLinked() {
			return nil, integration.ErrUnlinkedProduct
		}
		targets = append(targets, links[p.ID])
	}
	return targets, nil
}

func saveLinks(ctx context.Context, links []*integration.MarketplaceLink) func(TransactionalRepositories) error {
	return func(repos TransactionalRepositories) error {
		for _, l := range links {
			if err := repos.LinkRepo().SaveWithLock(ctx, l); err != nil {
				return err
			}
		}
		return nil
	}
}

// ---------------------------------------------------------------------------
// Push order
// ---------------------------------------------------------------------------

// PushOrder forwards an order and its fulfillment data to the marketplace.
func (o *SyncOrchestrator) PushOrder(ctx context.Context, orderID uuid.UUID) (*OrderPushResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sync", "push_order", telemetry.SpanAttrOrderID, orderID.String())
	defer span.End()

	ord, err := o.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !ord.Status.IsForwardable() {
		return nil, shared.NewDomainError(order.ErrNotForwardable.Code,
			fmt.Sprintf("Orders in status %s are not forwarded to the marketplace", ord.Status))
	}

	start := o.now()
	req := toPushOrderRequest(ord)
	res, callErr := o.gateway.PushOrder(ctx, req)
	if callErr == nil && res == nil {
		callErr = integration.ErrPlatformInvalidResponse
	}

	status := integration.SyncLogStatusSuccess
	if callErr != nil {
		status = integration.SyncLogStatusFailed
	}
	if err := o.commit(ctx, integration.SyncLogTypePushOrder, status, orderPayload{OrderID: orderID, Request: req}, res, callErr, nil); err != nil {
		return nil, err
	}
	o.metrics.RecordSyncOperation(ctx, string(integration.SyncLogTypePushOrder), string(status), o.now().Sub(start))

	if callErr != nil {
		telemetry.RecordError(span, callErr)
		return nil, integration.NewRemoteError("push_order", callErr)
	}
	return &OrderPushResult{OrderID: orderID, OrderNumber: ord.OrderNumber, ExternalOrderID: res.ExternalOrderID}, nil
}

// ---------------------------------------------------------------------------
// Badge and status
// ---------------------------------------------------------------------------

// GetSyncBadge returns the admin badge of a product
func (o *SyncOrchestrator) GetSyncBadge(ctx context.Context, productID uuid.UUID) (*BadgeResult, error) {
	if _, err := o.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	link, err := o.links.FindByProductID(ctx, productID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		link = nil
	}
	res := &BadgeResult{ProductID: productID, Badge: link.Badge()}
	if link != nil {
		res.ExternalProductID = link.ExternalID()
		res.LastSyncedAt = link.LastSyncedAt
		if link.LastError != nil {
			res.LastError = *link.LastError
		}
	}
	return res, nil
}

// SyncAllStatus reports the current sync-all lease
func (o *SyncOrchestrator) SyncAllStatus(ctx context.Context) (*SyncStatus, error) {
	lease, err := o.leases.Current(ctx, integration.SyncAllLeaseName)
	if err != nil {
		return nil, err
	}
	if lease == nil || lease.IsExpired(o.now()) {
		return &SyncStatus{}, nil
	}
	expires := lease.ExpiresAt
	return &SyncStatus{Running: true, RunID: lease.Holder, ExpiresAt: &expires}, nil
}

// Wait blocks until background sync-all runs finish or ctx is done
func (o *SyncOrchestrator) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		o.runs.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (o *SyncOrchestrator) findLink(ctx context.Context, productID uuid.UUID) (*integration.MarketplaceLink, error) {
	link, err := o.links.FindByProductID(ctx, productID)
	if errors.Is(err, shared.ErrNotFound) {
		return integration.NewMarketplaceLink(productID), nil
	}
	return link, err
}

// claim persists the link as pending under its current version. It returns
// the status to restore if the operation is abandoned before any remote call.
func (o *SyncOrchestrator) claim(ctx context.Context, link *integration.MarketplaceLink) (integration.LinkSyncStatus, error) {
	now := o.now()
	if link.InFlight(now, o.cfg.ClaimTTL) {
		return "", integration.ErrSyncInProgress
	}
	prev := link.SyncStatus
	link.MarkPending(now)
	if err := o.links.SaveWithLock(ctx, link); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return "", integration.ErrSyncInProgress
		}
		return "", err
	}
	return prev, nil
}

// release undoes a claim whose operation never reached the marketplace
func (o *SyncOrchestrator) release(ctx context.Context, link *integration.MarketplaceLink, prev integration.LinkSyncStatus) {
	link.Restore(prev, o.now())
	if err := o.links.SaveWithLock(ctx, link); err != nil {
		o.logger.Warn("Failed to release product sync claim",
			zap.String("product_id", link.ProductID.String()), zap.Error(err))
	}
}

// abandon marks claims whose outcome could not be saved as failed, so the
// products are not held until the claim lapses. The stored row is re-read
// because the in-memory version may have moved inside the rolled back
// transaction.
func (o *SyncOrchestrator) abandon(ctx context.Context, cause error, links ...*integration.MarketplaceLink) {
	for _, l := range links {
		stored, err := o.links.FindByProductID(ctx, l.ProductID)
		if err == nil && stored.SyncStatus == integration.LinkSyncStatusPending {
			stored.RecordFailure(cause.Error(), o.now())
			err = o.links.SaveWithLock(ctx, stored)
		}
		if err != nil {
			o.logger.Warn("Failed to give up product sync claim",
				zap.String("product_id", l.ProductID.String()), zap.Error(err))
		}
	}
}

// commit writes the log entry and the projection changes in one transaction.
// When that transaction fails the entry is still appended on its own as a
// failure, so the attempt stays on record.
func (o *SyncOrchestrator) commit(
	ctx context.Context,
	typ integration.SyncLogType,
	status integration.SyncLogStatus,
	payload, response any,
	cause error,
	apply func(repos TransactionalRepositories) error,
) error {
	entry, err := integration.NewSyncLog(typ, status, payload, response, cause)
	if err != nil {
		return err
	}
	err = o.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if apply != nil {
			if err := apply(repos); err != nil {
				return err
			}
		}
		return repos.SyncLogRepo().Append(ctx, entry)
	})
	if err != nil {
		o.logger.Error("Failed to record sync result",
			zap.String("type", string(typ)),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		if apply != nil {
			o.recordLostOutcome(ctx, typ, payload, response, err)
		}
		return fmt.Errorf("record %s sync log: %w", typ, err)
	}
	return nil
}

func (o *SyncOrchestrator) recordLostOutcome(ctx context.Context, typ integration.SyncLogType, payload, response any, cause error) {
	entry, err := integration.NewSyncLog(typ, integration.SyncLogStatusFailed, payload, response,
		fmt.Errorf("outcome not saved: %w", cause))
	if err == nil {
		err = o.logs.Append(ctx, entry)
	}
	if err != nil {
		o.logger.Error("Failed to record lost sync outcome", zap.String("type", string(typ)), zap.Error(err))
	}
}

func toRemoteVariants(p *catalog.Product) []integration.RemoteVariant {
	out := make([]integration.RemoteVariant, 0, len(p.Variants))
	for _, v := range p.Variants {
		out = append(out, integration.RemoteVariant{SKU: v.SKU, Price: v.Price, Stock: v.Stock})
	}
	return out
}

func toVariantUpdates(variants []integration.RemoteVariant, withPrice bool) []catalog.VariantUpdate {
	out := make([]catalog.VariantUpdate, 0, len(variants))
	for _, v := range variants {
		stock := v.Stock
		u := catalog.VariantUpdate{SKU: v.SKU, Stock: &stock}
		if withPrice {
			price := v.Price
			u.Price = &price
		}
		out = append(out, u)
	}
	return out
}

func toPushOrderRequest(o *order.Order) *integration.PushOrderRequest {
	addr := o.ShippingAddress
	parts := []string{addr.Street, addr.Subdistrict, addr.City, addr.Province, addr.PostalCode}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}

	req := &integration.PushOrderRequest{
		OrderNumber:    o.OrderNumber,
		Status:         string(o.Status),
		CourierName:    o.Courier.Name,
		CourierService: o.Courier.Service,
		Recipient:      addr.RecipientName,
		Phone:          addr.Phone,
		Address:        strings.Join(nonEmpty, ", "),
		Total:          o.Total,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.TrackingNumber != nil {
		req.TrackingNumber = *o.TrackingNumber
	}
	for _, it := range o.Items {
		req.Items = append(req.Items, integration.PushOrderItem{
			SKU:       it.VariantSKU,
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return req
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
