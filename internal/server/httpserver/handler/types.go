package handler

import "time"

// MaxBodyBytes bounds the size of an add request body.
const MaxBodyBytes = 1 << 20

// AddRowRequest is the request body for POST /table/add.
//
// Revision is accepted for symmetry with the response rows and ignored.
type AddRowRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Revision int64   `json:"revision,omitempty"`
}

// HealthResponse is the body of GET /health and GET /ready.
type HealthResponse struct {
	Status   string    `json:"status"`
	Revision int64     `json:"revision"`
	Time     time.Time `json:"time"`
}
