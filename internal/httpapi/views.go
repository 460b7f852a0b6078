package httpapi

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	cartapp "github.com/dwikikusuma/warung-pos/internal/cart/app"
	cartdomain "github.com/dwikikusuma/warung-pos/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/warung-pos/internal/catalog/domain"
	checkoutdomain "github.com/dwikikusuma/warung-pos/internal/checkout/domain"
	txdomain "github.com/dwikikusuma/warung-pos/internal/transaction/domain"
)

type CartItemView struct {
	Identity    string `json:"identity"`
	Kind        string `json:"kind"`
	CatalogID   string `json:"catalog_id,omitempty"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int64  `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
	Display     string `json:"display_subtotal"`
}

type CartView struct {
	Items        []CartItemView `json:"items"`
	TotalAmount  int64          `json:"total_amount"`
	TotalDisplay string         `json:"total_display"`
	Committing   bool           `json:"committing"`
}

type TransactionView struct {
	txdomain.Record
	TotalDisplay string `json:"total_display"`
}

type SummaryView struct {
	txdomain.Summary
	RevenueDisplay string `json:"revenue_display"`
	Since          string `json:"since"`
}

type ProductView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        int64     `json:"price"`
	PriceDisplay string    `json:"price_display"`
	Category     string    `json:"category"`
	Stock        int64     `json:"stock"`
	CreatedAt    time.Time `json:"created_at"`
}

// formatRupiah renders whole rupiah with dot thousands separators: Rp 6.000.
func formatRupiah(amount int64) string {
	return "Rp " + strings.ReplaceAll(humanize.Comma(amount), ",", ".")
}

func toCartView(s cartapp.Snapshot, committing bool) CartView {
	items := make([]CartItemView, 0, len(s.Items))
	for _, it := range s.Items {
		desc := it.DisplayName
		if it.Kind == cartdomain.KindAdHoc {
			desc = checkoutdomain.AdHocDescription(it.UnitPrice)
		}
		items = append(items, CartItemView{
			Identity:    string(it.Identity()),
			Kind:        string(it.Kind),
			CatalogID:   it.CatalogID,
			Description: desc,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal(),
			Display:     formatRupiah(it.Subtotal()),
		})
	}
	return CartView{
		Items:        items,
		TotalAmount:  s.TotalAmount,
		TotalDisplay: formatRupiah(s.TotalAmount),
		Committing:   committing,
	}
}

func toTransactionView(rec txdomain.Record) TransactionView {
	return TransactionView{Record: rec, TotalDisplay: formatRupiah(rec.TotalAmount)}
}

func toProductView(p catalogdomain.Product) ProductView {
	return ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		PriceDisplay: formatRupiah(p.Price),
		Category:     p.Category,
		Stock:        p.Stock,
		CreatedAt:    p.CreatedAt,
	}
}
