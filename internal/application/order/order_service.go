package order

import (
	"context"
	"errors"

	appintegration "github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/application/integration"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/order"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/logger"
	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Transition outcomes reported to metrics
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
)

// OrderPusher forwards an order to the marketplace
type OrderPusher interface {
	PushOrder(ctx context.Context, orderID uuid.UUID) (*appintegration.OrderPushResult, error)
}

// TransitionMetrics records status change attempts
type TransitionMetrics interface {
	RecordTransition(ctx context.Context, from, to, outcome string)
}

// OrderService is the admin order surface: listing, detail, stats and
// status transitions.
type OrderService struct {
	repo             order.Repository
	pusher           OrderPusher
	pushOnTransition bool
	metrics          TransitionMetrics
	logger           *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(repo order.Repository, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{repo: repo, logger: logger}
}

// SetOrderPusher enables forwarding orders to the marketplace after a
// successful transition into a forwardable status.
func (s *OrderService) SetOrderPusher(p OrderPusher, enabled bool) {
	s.pusher = p
	s.pushOnTransition = enabled && p != nil
}

// SetMetrics sets the transition metrics recorder
func (s *OrderService) SetMetrics(m TransitionMetrics) {
	s.metrics = m
}

// List returns a page of orders
func (s *OrderService) List(ctx context.Context, q ListOrdersQuery) ([]OrderResponse, shared.PageMeta, error) {
	if q.Status != "" && !q.Status.IsValid() {
		return nil, shared.PageMeta{}, order.ErrInvalidStatus
	}
	if q.PaymentMethod != "" && !q.PaymentMethod.IsValid() {
		return nil, shared.PageMeta{}, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown payment method")
	}
	if q.StartDate != nil && q.EndDate != nil && q.EndDate.Before(*q.StartDate) {
		return nil, shared.PageMeta{}, shared.NewDomainError(shared.ErrInvalidInput.Code, "endDate must not be before startDate")
	}

	filter := order.Filter{
		Filter: shared.Filter{
			Page:     q.Page,
			PageSize: q.Limit,
			OrderBy:  q.SortBy,
			OrderDir: q.SortOrder,
			Search:   q.Search,
		},
		Status:        q.Status,
		PaymentMethod: q.PaymentMethod,
		StartDate:     q.StartDate,
		EndDate:       q.EndDate,
	}
	filter.Normalize()

	orders, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, shared.PageMeta{}, err
	}
	items := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, ToOrderResponse(o))
	}
	return items, shared.NewPageMeta(total, filter.Page, filter.PageSize), nil
}

// Get returns one order
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// Stats counts orders per status
func (s *OrderService) Stats(ctx context.Context) (*StatsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range counts {
		total += n
	}
	return &StatsResponse{Total: total, ByStatus: counts}, nil
}

// Transition applies a status change. When a concurrent writer wins the
// version check, the order is reloaded: a target that is no longer legal
// yields InvalidTransitionError against the fresh status, otherwise
// shared.ErrConcurrencyConflict.
func (s *OrderService) Transition(ctx context.Context, id uuid.UUID, req TransitionRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "transition",
		telemetry.SpanAttrOrderID, id.String(),
		telemetry.SpanAttrTargetStatus, string(req.Status),
	)
	defer span.End()

	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := o.Status
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderStatus, string(from))

	if err := o.RequestTransition(req.Status, req.TrackingNumber, req.Notes); err != nil {
		s.record(ctx, from, req.Status, OutcomeRejected)
		return nil, err
	}

	if err := s.repo.SaveWithLock(ctx, o); err != nil {
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			telemetry.RecordError(span, err)
			return nil, err
		}
		fresh, ferr := s.repo.FindByID(ctx, id)
		if ferr != nil {
			return nil, ferr
		}
		if cerr := fresh.CheckTransition(req.Status); cerr != nil {
			s.record(ctx, fresh.Status, req.Status, OutcomeRejected)
			return nil, cerr
		}
		s.record(ctx, from, req.Status, OutcomeConflict)
		return nil, err
	}

	s.record(ctx, from, o.Status, OutcomeApplied)
	logger.L(ctx).Info("Order status changed",
		zap.String("order_id", id.String()),
		zap.String("order_number", o.OrderNumber),
		zap.String("from", string(from)),
		zap.String("to", string(o.Status)),
	)

	if s.pushOnTransition && o.Status.IsForwardable() {
		// The transition is already committed; a failed push is only logged.
		if _, err := s.pusher.PushOrder(ctx, o.ID); err != nil {
			s.logger.Warn("Marketplace order push failed after transition",
				zap.String("order_id", id.String()),
				zap.String("status", string(o.Status)),
				zap.Error(err),
			)
		}
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

func (s *OrderService) record(ctx context.Context, from, to order.Status, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordTransition(ctx, string(from), string(to), outcome)
	}
}
