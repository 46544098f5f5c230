package notification

import (
	"context"
	"strings"

	"github.com/example/fpv-storefront/internal/domain/order"
	"github.com/example/fpv-storefront/internal/email"
	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"go.uber.org/zap"
)

// ConfirmationSender delivers order confirmations
type ConfirmationSender interface {
	SendOrderConfirmation(to string, confirmation email.OrderConfirmation) error
}

// Handler processes events for sending notifications
type Handler struct {
	sender ConfirmationSender
	logger *zap.Logger
}

func NewHandler(sender ConfirmationSender, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{sender: sender, logger: logger.Named("notifier")}
}

// HandleEvent sends a confirmation for every placed order and ignores other events
func (h *Handler) HandleEvent(ctx context.Context, event store.Event) error {
	if event.AggregateType != order.AggregateType || event.EventType != order.EventOrderPlaced {
		return nil
	}

	var e order.OrderPlaced
	if err := event.Decode(&e); err != nil {
		h.logger.Error("failed to decode OrderPlaced", zap.String("event_id", event.ID), zap.Error(err))
		return err
	}
	if e.Customer.Email == "" {
		h.logger.Warn("order has no customer email", zap.String("order_id", e.OrderID))
		return nil
	}

	if err := h.sender.SendOrderConfirmation(e.Customer.Email, Confirmation(e)); err != nil {
		h.logger.Error("failed to send order confirmation",
			zap.String("order_id", e.OrderID),
			zap.String("email", e.Customer.Email),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("order confirmation sent",
		zap.String("order_id", e.OrderID),
		zap.String("order_number", e.OrderNumber),
		zap.String("email", e.Customer.Email),
	)
	return nil
}

// Confirmation builds the email content for a placed order
func Confirmation(e order.OrderPlaced) email.OrderConfirmation {
	items := make([]email.OrderItem, len(e.Items))
	for i, item := range e.Items {
		items[i] = email.OrderItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price}
	}
	return email.OrderConfirmation{
		OrderNumber:         e.OrderNumber,
		CustomerName:        strings.TrimSpace(e.Customer.FirstName + " " + e.Customer.LastName),
		Items:               items,
		TotalPrice:          e.TotalPrice,
		TotalSavings:        e.TotalSavings,
		HasCustomPriceItems: e.HasCustomPriceItems,
		DeliverySummary:     deliverySummary(e.Delivery, e.Customer.City),
	}
}

func deliverySummary(d order.Delivery, city string) string {
	parts := []string{city}
	switch d.Method {
	case order.DeliveryNovaPoshta:
		parts = append(parts, "Нова Пошта", d.Warehouse)
	case order.DeliveryCourier:
		parts = append(parts, "кур'єр", d.Address)
	default:
		parts = append(parts, "самовивіз")
	}

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}
