package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/fpv-storefront/internal/domain/aggregate"
	"github.com/example/fpv-storefront/internal/infrastructure/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const AggregateType = "Order"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyOrder        = errors.New("order must have at least one item")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {}, // terminal state
	StatusCancelled:  {}, // terminal state
}

// ParseStatus accepts the lower-case status names
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := validTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// Statuses lists every status in lifecycle order
func Statuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

type Order struct {
	ID                  string        `json:"id"`
	OrderNumber         string        `json:"order_number"`
	SessionID           string        `json:"session_id"`
	Customer            Customer      `json:"customer"`
	Delivery            Delivery      `json:"delivery"`
	PaymentMethod       PaymentMethod `json:"payment_method"`
	Comment             string        `json:"comment,omitempty"`
	Items               []Item        `json:"items"`
	TotalPrice          int           `json:"total_price"`
	TotalSavings        int           `json:"total_savings"`
	HasCustomPriceItems bool          `json:"has_custom_price_items"`
	Status              Status        `json:"status"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
	Version             int           `json:"version"`
}

func (o *Order) GetID() string   { return o.ID }
func (o *Order) GetVersion() int { return o.Version }

// CanTransitionTo checks if the order can move to target
func (o *Order) CanTransitionTo(target Status) bool {
	for _, s := range validTransitions[o.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// ApplyEvent implements aggregate.Aggregate
func (o *Order) ApplyEvent(event store.Event) error {
	switch event.EventType {
	case EventOrderPlaced:
		var data OrderPlaced
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		o.ID = data.OrderID
		o.OrderNumber = data.OrderNumber
		o.SessionID = data.SessionID
		o.Customer = data.Customer
		o.Delivery = data.Delivery
		o.PaymentMethod = data.PaymentMethod
		o.Comment = data.Comment
		o.Items = data.Items
		o.TotalPrice = data.TotalPrice
		o.TotalSavings = data.TotalSavings
		o.HasCustomPriceItems = data.HasCustomPriceItems
		o.Status = StatusPending
		o.CreatedAt = data.PlacedAt
		o.UpdatedAt = data.PlacedAt
	case EventOrderStatusChanged:
		var data OrderStatusChanged
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return err
		}
		o.Status = data.To
		o.UpdatedAt = data.ChangedAt
	}
	o.Version = event.Version
	return nil
}

// PlaceOrder is the checkout hand-off: the form plus the cart contents and
// totals read once at submit time.
type PlaceOrder struct {
	SessionID           string
	Customer            Customer
	Delivery            Delivery
	PaymentMethod       PaymentMethod
	Comment             string
	Items               []Item
	TotalPrice          int
	TotalSavings        int
	HasCustomPriceItems bool
}

// Validate normalizes the form fields in place and reports every invalid field
func (p *PlaceOrder) Validate() error {
	p.Customer = p.Customer.normalize()
	p.Delivery = p.Delivery.normalize()
	p.PaymentMethod = normalizePayment(p.PaymentMethod)
	p.Comment = strings.TrimSpace(p.Comment)

	fields := make(map[string]string)
	p.Customer.validate(fields)
	p.Delivery.validate(fields)
	validatePayment(p.PaymentMethod, fields)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type Service struct {
	eventStore store.EventStoreInterface
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(es store.EventStoreInterface, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{eventStore: es, logger: logger.Named("order"), now: time.Now}
}

// OrderNumber formats the customer-facing number for an order placed at t
func OrderNumber(t time.Time) string {
	return "FLG-" + strconv.FormatInt(t.UnixMilli(), 10)
}

func (s *Service) loadOrder(ctx context.Context, orderID string) (*Order, error) {
	o, err := aggregate.Load(ctx, s.eventStore, orderID, func() *Order { return &Order{} })
	if errors.Is(err, aggregate.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Get returns the current state of an order from the event store
func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.loadOrder(ctx, orderID)
}

func (s *Service) Place(ctx context.Context, cmd PlaceOrder) (*Order, error) {
	if len(cmd.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	o := &Order{ID: uuid.New().String()}
	event := OrderPlaced{
		OrderID:             o.ID,
		OrderNumber:         OrderNumber(now),
		SessionID:           cmd.SessionID,
		Customer:            cmd.Customer,
		Delivery:            cmd.Delivery,
		PaymentMethod:       cmd.PaymentMethod,
		Comment:             cmd.Comment,
		Items:               cmd.Items,
		TotalPrice:          cmd.TotalPrice,
		TotalSavings:        cmd.TotalSavings,
		HasCustomPriceItems: cmd.HasCustomPriceItems,
		PlacedAt:            now,
	}

	if _, err := aggregate.Append(ctx, s.eventStore, s.logger, o, AggregateType, EventOrderPlaced, event); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Int("items", len(o.Items)),
		zap.Int("total_price", o.TotalPrice),
		zap.Bool("has_custom_price_items", o.HasCustomPriceItems),
	)
	return o, nil
}

// ChangeStatus moves an order along its lifecycle. Setting the current
// status again is a no-op.
func (s *Service) ChangeStatus(ctx context.Context, orderID string, target Status) (*Order, error) {
	if _, ok := validTransitions[target]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == target {
		return o, nil
	}
	if !o.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, o.Status, target)
	}

	event := OrderStatusChanged{
		OrderID:   orderID,
		From:      o.Status,
		To:        target,
		ChangedAt: s.now(),
	}
	if _, err := aggregate.Append(ctx, s.eventStore, s.logger, o, AggregateType, EventOrderStatusChanged, event); err != nil {
		return nil, err
	}

	s.logger.Info("order status changed",
		zap.String("order_id", orderID),
		zap.String("from", string(event.From)),
		zap.String("to", string(event.To)),
	)
	return o, nil
}
