package adapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	checkoutapp "github.com/dwikikusuma/warung-pos/internal/checkout/app"
	txapp "github.com/dwikikusuma/warung-pos/internal/transaction/app"
	txdomain "github.com/dwikikusuma/warung-pos/internal/transaction/domain"
	"github.com/sony/gobreaker/v2"
)

type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before a trial request.
	OpenTimeout time.Duration
	// OnStateChange, if set, is called after every transition.
	OnStateChange func(from, to gobreaker.State)
}

// BreakerRecorder fails checkouts fast while storage keeps erroring. It never
// retries: each RecordTransaction call is at most one write.
type BreakerRecorder struct {
	next checkoutapp.TransactionRecorder
	cb   *gobreaker.CircuitBreaker[txdomain.Record]
}

func NewBreakerRecorder(next checkoutapp.TransactionRecorder, s BreakerSettings, log *slog.Logger) *BreakerRecorder {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 5
	}
	if s.OpenTimeout <= 0 {
		s.OpenTimeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[txdomain.Record](gobreaker.Settings{
		Name:        "transaction-recorder",
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, txapp.ErrInvalidInput)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			if s.OnStateChange != nil {
				s.OnStateChange(from, to)
			}
		},
	})

	return &BreakerRecorder{next: next, cb: cb}
}

func (r *BreakerRecorder) RecordTransaction(ctx context.Context, totalAmount int64, lines []txdomain.Line) (txdomain.Record, error) {
	return r.cb.Execute(func() (txdomain.Record, error) {
		return r.next.RecordTransaction(ctx, totalAmount, lines)
	})
}

func (r *BreakerRecorder) State() gobreaker.State {
	return r.cb.State()
}
