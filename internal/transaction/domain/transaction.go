package domain

import "time"

type Kind string

const (
	KindAdHoc   Kind = "adhoc"
	KindCatalog Kind = "catalog"
)

// Line is a frozen copy of one cart line taken at checkout.
type Line struct {
	Kind        Kind   `json:"kind"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}

// Record is an immutable committed sale.
type Record struct {
	ID          int64     `json:"id"`
	ReceiptNo   string    `json:"receipt_no"`
	TotalAmount int64     `json:"total_amount"`
	Items       []Line    `json:"items"`
	CreatedAt   time.Time `json:"created_at"`
}

// Summary aggregates records over a period.
type Summary struct {
	Count   int64 `json:"count"`
	Revenue int64 `json:"revenue"`
}
