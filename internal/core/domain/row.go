package domain

import (
	"math"
	"strings"
)

// MaxRowIDLength bounds the id accepted from clients.
const MaxRowIDLength = 256

// Row is a single record of the table.
//
// ID is the external key and orders the table (plain Go string comparison,
// so "10" sorts before "2"). Revision is the table revision at which the row
// was last stamped by the store.
type Row struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Revision int64   `json:"revision"`
}

// Validate checks that the row can be stored.
func (r *Row) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrRowValidation.WithDetails("id is required")
	}
	if len(r.ID) > MaxRowIDLength {
		return ErrRowValidation.WithDetails("id exceeds maximum length")
	}
	if math.IsNaN(r.Price) || math.IsInf(r.Price, 0) {
		return ErrRowValidation.WithDetails("price must be a finite number")
	}
	return nil
}

// State is an ordered list of rows together with the table revision the list
// was read at. It is the payload of both full-state and delta responses.
type State struct {
	Rows     []Row `json:"rows"`
	Revision int64 `json:"revision"`
}

// IsEmpty reports whether the state carries no rows.
func (s State) IsEmpty() bool {
	return len(s.Rows) == 0
}

// IDs returns the row ids in order.
func (s State) IDs() []string {
	ids := make([]string, len(s.Rows))
	for i, r := range s.Rows {
		ids[i] = r.ID
	}
	return ids
}
