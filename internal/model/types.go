package model

import (
	"fmt"
	"time"
)

// DateLayout is the on-disk and in-database layout of PriceSnapshot.Date.
const DateLayout = "2006-01-02"

// Item is catalogue metadata for one tradeable entity.
type Item struct {
	ItemID      int64  // Primary key from the item database
	Icon        string // Icon URL
	Type        string // Category label (e.g., "Ammo")
	Name        string // Display name
	Description string // Examine text
	IsMembers   bool   // Members-only item
}

// PriceSnapshot is one day's price reading for one item.
type PriceSnapshot struct {
	ItemID      int64     // Foreign key to Item (not unique across days)
	Date        time.Time // Calendar day of the fetch
	Price       int64     // Current guide price in coins
	Trend       string    // "neutral", "positive" or "negative"
	ChangeToday int64     // Price change today in coins (may be negative)
}

// DateString formats Date with DateLayout.
func (p PriceSnapshot) DateString() string {
	return p.Date.Format(DateLayout)
}

// Catalogue is the result of one fetch: item metadata and the matching price snapshots.
// Items[i] and Prices[i] always describe the same item.
type Catalogue struct {
	Items  []Item
	Prices []PriceSnapshot
}

// Len returns the number of items in the catalogue.
func (c *Catalogue) Len() int {
	return len(c.Items)
}

// Validate checks that item IDs are unique and that every price snapshot refers to
// an item of the same catalogue.
func (c *Catalogue) Validate() error {
	ids := make(map[int64]struct{}, len(c.Items))
	for _, it := range c.Items {
		if _, dup := ids[it.ItemID]; dup {
			return fmt.Errorf("duplicate item %d", it.ItemID)
		}
		ids[it.ItemID] = struct{}{}
	}
	for _, p := range c.Prices {
		if _, ok := ids[p.ItemID]; !ok {
			return fmt.Errorf("price snapshot for item %d has no matching item", p.ItemID)
		}
	}
	return nil
}
