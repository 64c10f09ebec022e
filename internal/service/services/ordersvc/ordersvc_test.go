package ordersvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/tutti-amici/internal/dal/interfaces/idocumentrepo"
	memoryrepo "github.com/corray333/tutti-amici/internal/dal/repositories/document/memory"
	"github.com/corray333/tutti-amici/internal/service/models/collection"
	"github.com/corray333/tutti-amici/internal/service/models/document"
	"github.com/corray333/tutti-amici/internal/service/models/order"
	"github.com/corray333/tutti-amici/internal/service/models/orderevent"
	"github.com/corray333/tutti-amici/internal/service/models/orderitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEvents struct {
	events []orderevent.OrderCreated
	err    error
}

func (r *recordingEvents) PublishOrderCreated(_ context.Context, event orderevent.OrderCreated) error {
	r.events = append(r.events, event)

	return r.err
}

type failingRepo struct {
	err error
}

func (r failingRepo) Create(context.Context, collection.Kind, any) (string, error) {
	return "", r.err
}

func (r failingRepo) Find(context.Context, collection.Kind, *document.Filter) ([]document.Document, error) {
	return nil, r.err
}

func (r failingRepo) ListCollections(context.Context, int) ([]string, error) {
	return nil, r.err
}

func sampleOrder(status string) order.Order {
	return order.Order{
		Items: []orderitem.OrderItem{
			{MenuItemID: "m1", Name: "Margherita", Price: 12.5, Quantity: 2},
		},
		Subtotal: 25,
		Tax:      2.5,
		Total:    27.5,
		Status:   status,
		Customer: order.Customer{Name: "Ada", Phone: "1"},
	}
}

func TestCreateOrderPublishesEvent(t *testing.T) {
	ctx := context.Background()
	events := &recordingEvents{}
	fixed := time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC)

	svc := MustNewOrderService(
		WithDocumentRepository(memoryrepo.NewDocumentRepository()),
		WithEventsRepository(events),
	)
	svc.now = func() time.Time { return fixed }

	id, err := svc.CreateOrder(ctx, sampleOrder(order.StatusPending))
	require.NoError(t, err)

	require.Len(t, events.events, 1)
	assert.Equal(t, id, events.events[0].ID)
	assert.Equal(t, 2, events.events[0].ItemCount)
	assert.Equal(t, fixed, events.events[0].CreatedAt)
}

func TestCreateOrderIgnoresPublishFailure(t *testing.T) {
	events := &recordingEvents{err: errors.New("broker down")}
	svc := MustNewOrderService(
		WithDocumentRepository(memoryrepo.NewDocumentRepository()),
		WithEventsRepository(events),
	)

	id, err := svc.CreateOrder(context.Background(), sampleOrder(order.StatusPending))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestCreateOrderStorageFailure(t *testing.T) {
	storageErr := errors.New("write failed")
	events := &recordingEvents{}
	svc := MustNewOrderService(
		WithDocumentRepository(failingRepo{err: storageErr}),
		WithEventsRepository(events),
	)

	_, err := svc.CreateOrder(context.Background(), sampleOrder(order.StatusPending))
	assert.ErrorIs(t, err, storageErr)
	assert.Empty(t, events.events)
}

func TestListOrdersByStatus(t *testing.T) {
	ctx := context.Background()
	svc := MustNewOrderService(WithDocumentRepository(memoryrepo.NewDocumentRepository()))

	for _, status := range []string{order.StatusPending, order.StatusReady, order.StatusPending, "whatever"} {
		_, err := svc.CreateOrder(ctx, sampleOrder(status))
		require.NoError(t, err)
	}

	pending, err := svc.ListOrders(ctx, order.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	custom, err := svc.ListOrders(ctx, "whatever")
	require.NoError(t, err)
	assert.Len(t, custom, 1)

	all, err := svc.ListOrders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	again, err := svc.ListOrders(ctx, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, all, again)
}

func TestOrderServiceWithoutStorage(t *testing.T) {
	svc := MustNewOrderService()

	_, err := svc.CreateOrder(context.Background(), sampleOrder(order.StatusPending))
	assert.ErrorIs(t, err, idocumentrepo.ErrStorageUnavailable)

	_, err = svc.ListOrders(context.Background(), order.StatusPending)
	assert.ErrorIs(t, err, idocumentrepo.ErrStorageUnavailable)
}
