package cart

type EventType string

const (
	EventItemAdded       EventType = "ItemAddedToCart"
	EventItemRemoved     EventType = "ItemRemovedFromCart"
	EventQuantityUpdated EventType = "CartQuantityUpdated"
	EventCartCleared     EventType = "CartCleared"
)

// Event describes a cart change that already happened. Quantity is the
// resulting quantity of the row, zero for removals and clears.
type Event struct {
	Type     EventType
	ItemID   string
	Quantity int
}

// Listener is notified after a mutation is applied and persisted
type Listener func(Event)
