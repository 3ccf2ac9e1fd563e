package cart

import "context"

// SlotKey names the persistence slot all cart state lives under. It is part
// of the stored-data layout: changing it orphans previously saved carts.
const SlotKey = "insanyshop_cart_v1"

// Slot is one persistent location holding a serialized item sequence. Load
// returns (nil, nil) when nothing has been saved yet; any other failure is
// an error the Store downgrades to a warning.
type Slot interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
}

// SlotFactory builds the slot backing one session's cart.
type SlotFactory func(sessionID string) Slot
