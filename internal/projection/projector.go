package projection

import (
	"context"
	"fmt"

	"github.com/example/fpv-storefront/internal/domain/order"
	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"github.com/example/fpv-storefront/internal/readmodel"
	"go.uber.org/zap"
)

// Projector turns order events into the orders read model
type Projector struct {
	readStore store.ReadStoreInterface
	logger    *zap.Logger
}

func NewProjector(readStore store.ReadStoreInterface, logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{readStore: readStore, logger: logger.Named("projector")}
}

// HandleEvent applies one event. Events of other aggregates are ignored.
func (p *Projector) HandleEvent(ctx context.Context, event store.Event) error {
	p.logger.Debug("received event",
		zap.String("event_type", event.EventType),
		zap.String("aggregate_id", event.AggregateID),
		zap.Int("version", event.Version),
	)

	if event.AggregateType != order.AggregateType {
		return nil
	}
	return p.handleOrderEvent(event)
}

// Publish lets the projector stand in for the message bus when the API runs
// without Kafka, projecting each event as it is stored.
func (p *Projector) Publish(ctx context.Context, key string, event any) error {
	e, ok := event.(store.Event)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	return p.HandleEvent(ctx, e)
}

// Replay projects events in order, logging and skipping failures. It returns
// the number of events that failed.
func (p *Projector) Replay(ctx context.Context, events []store.Event) int {
	failed := 0
	for _, event := range events {
		if err := p.HandleEvent(ctx, event); err != nil {
			failed++
			p.logger.Warn("replay failed", zap.String("event_id", event.ID), zap.Error(err))
		}
	}
	p.logger.Info("replay completed", zap.Int("events", len(events)), zap.Int("failed", failed))
	return failed
}

func (p *Projector) handleOrderEvent(event store.Event) error {
	switch event.EventType {
	case order.EventOrderPlaced:
		var e order.OrderPlaced
		if err := event.Decode(&e); err != nil {
			return err
		}
		p.readStore.Set(store.CollectionOrders, e.OrderID, orderReadModel(e))

	case order.EventOrderStatusChanged:
		var e order.OrderStatusChanged
		if err := event.Decode(&e); err != nil {
			return err
		}
		found := p.readStore.Update(store.CollectionOrders, e.OrderID, func(current any) any {
			o := current.(*readmodel.OrderReadModel)
			o.Status = string(e.To)
			o.UpdatedAt = e.ChangedAt
			return o
		})
		if !found {
			p.logger.Warn("status change for unknown order", zap.String("order_id", e.OrderID))
		}
	}
	return nil
}

func orderReadModel(e order.OrderPlaced) *readmodel.OrderReadModel {
	items := make([]readmodel.OrderItemReadModel, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, readmodel.OrderItemReadModel{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			OldPrice: item.OldPrice,
			Quantity: item.Quantity,
			Image:    item.Image,
		})
	}

	return &readmodel.OrderReadModel{
		ID:                  e.OrderID,
		OrderNumber:         e.OrderNumber,
		SessionID:           e.SessionID,
		FirstName:           e.Customer.FirstName,
		LastName:            e.Customer.LastName,
		Phone:               e.Customer.Phone,
		Email:               e.Customer.Email,
		City:                e.Customer.City,
		DeliveryMethod:      string(e.Delivery.Method),
		Warehouse:           e.Delivery.Warehouse,
		Address:             e.Delivery.Address,
		PaymentMethod:       string(e.PaymentMethod),
		Comment:             e.Comment,
		Items:               items,
		TotalPrice:          e.TotalPrice,
		TotalSavings:        e.TotalSavings,
		HasCustomPriceItems: e.HasCustomPriceItems,
		Status:              string(order.StatusPending),
		CreatedAt:           e.PlacedAt,
		UpdatedAt:           e.PlacedAt,
	}
}
