package ieventsrepo

import (
	"context"

	"github.com/corray333/tutti-amici/internal/service/models/orderevent"
)

// IOrderEventsRepository is interface for order events repository.
type IOrderEventsRepository interface {
	PublishOrderCreated(ctx context.Context, event orderevent.OrderCreated) error
}
