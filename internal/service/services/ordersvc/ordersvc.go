package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/corray333/tutti-amici/internal/dal/interfaces/idocumentrepo"
	"github.com/corray333/tutti-amici/internal/dal/interfaces/ieventsrepo"
	"github.com/corray333/tutti-amici/internal/service/models/collection"
	"github.com/corray333/tutti-amici/internal/service/models/document"
	"github.com/corray333/tutti-amici/internal/service/models/order"
	"github.com/corray333/tutti-amici/internal/service/models/orderevent"
)

const statusField = "status"

// OrderService is a service for managing orders.
type OrderService struct {
	repo   idocumentrepo.IDocumentRepository
	events ieventsrepo.IOrderEventsRepository
	now    func() time.Time
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithDocumentRepository sets the document store for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDocumentRepository(repo idocumentrepo.IDocumentRepository) option {
	return func(s *OrderService) {
		s.repo = repo
	}
}

// WithEventsRepository enables publishing of order events.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventsRepository(events ieventsrepo.IOrderEventsRepository) option {
	return func(s *OrderService) {
		s.events = events
	}
}

// CreateOrder stores o and returns its identifier. When events are enabled an
// order.created event is published afterwards; a publish failure is logged
// and does not fail the call.
func (s *OrderService) CreateOrder(ctx context.Context, o order.Order) (string, error) {
	if s.repo == nil {
		return "", idocumentrepo.ErrStorageUnavailable
	}

	id, err := s.repo.Create(ctx, collection.Order, o)
	if err != nil {
		return "", err
	}

	if s.events != nil {
		event := orderevent.NewOrderCreated(id, o, s.now())
		if err := s.events.PublishOrderCreated(ctx, event); err != nil {
			slog.ErrorContext(ctx, "Failed to publish order created event", "order_id", id, "error", err)
		}
	}

	return id, nil
}

// ListOrders returns stored orders, restricted to status when it is not empty.
func (s *OrderService) ListOrders(ctx context.Context, status string) ([]document.Document, error) {
	if s.repo == nil {
		return nil, idocumentrepo.ErrStorageUnavailable
	}

	return s.repo.Find(ctx, collection.Order, document.NewFilter(statusField, status))
}
