// internal/domain/catalog/quantity_map.go
package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// QuantityMap maps a SKU code to a non-negative quantity. It is used
// uniformly for requested, fulfilled and on-hand quantities. Absent
// keys read as zero. SKU codes are open strings so new items never
// require a structural change.
type QuantityMap map[string]float64

// Value serializes the map as a JSON column. A nil map persists as NULL,
// which is how "unset" fulfilled quantities are represented.
func (m QuantityMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan deserializes the JSON column.
func (m *QuantityMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported quantity map source type %T", value)
	}
}

// GormDataType tells GORM to declare a JSON column.
func (QuantityMap) GormDataType() string {
	return "json"
}

// Get returns the quantity for a SKU, treating absent keys as zero.
func (m QuantityMap) Get(sku string) float64 {
	if m == nil {
		return 0
	}
	return m[sku]
}

// HasPositive reports whether at least one quantity is greater than zero.
func (m QuantityMap) HasPositive() bool {
	for _, qty := range m {
		if qty > 0 {
			return true
		}
	}
	return false
}

// Validate rejects negative quantities.
func (m QuantityMap) Validate() error {
	for sku, qty := range m {
		if qty < 0 {
			return fmt.Errorf("quantity for %q must not be negative, got %v", sku, qty)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (m QuantityMap) Clone() QuantityMap {
	if m == nil {
		return nil
	}
	out := make(QuantityMap, len(m))
	for sku, qty := range m {
		out[sku] = qty
	}
	return out
}

// SortedSKUs returns the SKU codes in stable order. Ledger movements are
// written in this order so audit rows are deterministic.
func (m QuantityMap) SortedSKUs() []string {
	skus := make([]string, 0, len(m))
	for sku := range m {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}
