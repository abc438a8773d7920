package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CatalogueResponse from GET /catalogue/items.json
type CatalogueResponse struct {
	Items *[]APIItem `json:"items"`
}

// APIItem represents one catalogue entry. Pointer fields distinguish a missing key
// from a zero value; every field is required. Keys not persisted (total, icon_large,
// typeIcon) are not decoded.
type APIItem struct {
	ID          *int64      `json:"id"`
	Icon        *string     `json:"icon"`
	Type        *string     `json:"type"`
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Members     *flexString `json:"members"`
	Current     *APIPrice   `json:"current"`
	Today       *APIPrice   `json:"today"`
}

// APIPrice is the current/today price block.
type APIPrice struct {
	Trend *string     `json:"trend"`
	Price *flexString `json:"price"`
}

// flexString accepts a JSON string, number or boolean and keeps its text.
// The item database mixes `"price": 120` and `"price": "1.2k"` in one payload.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		if b {
			*f = "true"
		} else {
			*f = "false"
		}
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = flexString(n.String())
	}
	return nil
}
