package cart

// Pure transitions over the line item sequence. None of them mutate their
// input; the Store swaps in the returned slice.

func indexOf(items []LineItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].OldPrice != nil {
			out[i].OldPrice = IntPtr(*out[i].OldPrice)
		}
	}
	return out
}

// addItem merges quantity into an existing row or appends a new one.
// The returned event type is empty when nothing changed.
func addItem(items []LineItem, ref ProductRef, quantity int) ([]LineItem, Event) {
	if i := indexOf(items, ref.ID); i >= 0 {
		next := cloneItems(items)
		next[i].Quantity += quantity
		if next[i].Quantity <= 0 {
			return append(next[:i], next[i+1:]...), Event{Type: EventItemRemoved, ItemID: ref.ID}
		}
		return next, Event{Type: EventItemAdded, ItemID: ref.ID, Quantity: next[i].Quantity}
	}
	if quantity <= 0 {
		return items, Event{}
	}
	next := append(cloneItems(items), LineItem{ProductRef: ref, Quantity: quantity})
	if ref.OldPrice != nil {
		next[len(next)-1].OldPrice = IntPtr(*ref.OldPrice)
	}
	return next, Event{Type: EventItemAdded, ItemID: ref.ID, Quantity: quantity}
}

func removeItem(items []LineItem, id string) ([]LineItem, Event) {
	i := indexOf(items, id)
	if i < 0 {
		return items, Event{}
	}
	next := cloneItems(items)
	return append(next[:i], next[i+1:]...), Event{Type: EventItemRemoved, ItemID: id}
}

// updateQuantity sets an absolute quantity; non-positive removes the row.
func updateQuantity(items []LineItem, id string, quantity int) ([]LineItem, Event) {
	if quantity <= 0 {
		return removeItem(items, id)
	}
	i := indexOf(items, id)
	if i < 0 || items[i].Quantity == quantity {
		return items, Event{}
	}
	next := cloneItems(items)
	next[i].Quantity = quantity
	return next, Event{Type: EventQuantityUpdated, ItemID: id, Quantity: quantity}
}

func clearItems(items []LineItem) ([]LineItem, Event) {
	if len(items) == 0 {
		return items, Event{}
	}
	return []LineItem{}, Event{Type: EventCartCleared}
}
