package cart

import (
	"encoding/json"
	"fmt"
)

// encodeItems serializes the rows as a JSON array; an empty cart is "[]".
func encodeItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart: %w", err)
	}
	return data, nil
}

// decodeItems parses persisted rows, dropping entries that break the
// id/quantity invariants. It returns how many entries were dropped.
func decodeItems(data []byte) ([]LineItem, int, error) {
	var raw []LineItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	items := make([]LineItem, 0, len(raw))
	dropped := 0
	for _, item := range raw {
		if item.ID == "" || item.Quantity <= 0 || indexOf(items, item.ID) >= 0 {
			dropped++
			continue
		}
		items = append(items, item)
	}
	return items, dropped, nil
}
