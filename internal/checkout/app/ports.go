package app

import (
	"context"

	txdomain "github.com/dwikikusuma/warung-pos/internal/transaction/domain"
)

// CartSession is the register cart as seen by checkout. Freeze blocks
// further cart mutation until Release is called.
type CartSession interface {
	Freeze() ([]CartItem, int64, error)
	Release(committed bool)
}

type CartItem struct {
	Kind        txdomain.Kind
	CatalogID   string
	DisplayName string
	UnitPrice   int64
	Quantity    int64
}

// TransactionRecorder durably stores one sale; it must not partially apply.
type TransactionRecorder interface {
	RecordTransaction(ctx context.Context, totalAmount int64, lines []txdomain.Line) (txdomain.Record, error)
}

// Observer receives the outcome of each checkout attempt.
type Observer interface {
	ObserveCheckout(result string, amount int64, seconds float64)
}
