package domain

import "time"

type Product struct {
	ID        string
	Name      string
	Price     int64
	Category  string
	Stock     int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
