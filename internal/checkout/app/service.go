package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	cartdomain "github.com/dwikikusuma/warung-pos/internal/cart/domain"
	"github.com/dwikikusuma/warung-pos/internal/checkout/domain"
	txdomain "github.com/dwikikusuma/warung-pos/internal/transaction/domain"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrPersistenceFailure = errors.New("failed to record transaction")
)

const (
	ResultCommitted = "committed"
	ResultEmpty     = "empty"
	ResultBusy      = "busy"
	ResultFailed    = "failed"
)

type Service struct {
	cart     CartSession
	recorder TransactionRecorder

	log      *slog.Logger
	observer Observer

	mu    sync.Mutex
	state domain.State
}

func NewService(cart CartSession, recorder TransactionRecorder, log *slog.Logger, observer Observer) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cart:     cart,
		recorder: recorder,
		log:      log,
		observer: observer,
		state:    domain.StateIdle,
	}
}

func (s *Service) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Checkout commits the current cart as one transaction. The cart is cleared
// only after the recorder confirms the write; on any failure it is left as
// it was. There is exactly one write attempt per call.
func (s *Service) Checkout(ctx context.Context) (txdomain.Record, error) {
	start := time.Now()

	items, total, err := s.cart.Freeze()
	if err != nil {
		s.observe(ResultBusy, 0, start)
		return txdomain.Record{}, err
	}

	committed := false
	s.setState(domain.StateCommitting)
	defer func() {
		s.cart.Release(committed)
		s.setState(domain.StateIdle)
	}()

	if len(items) == 0 {
		s.observe(ResultEmpty, 0, start)
		return txdomain.Record{}, ErrEmptyCart
	}

	lines, err := BuildLines(items)
	if err != nil {
		s.observe(ResultFailed, 0, start)
		return txdomain.Record{}, err
	}

	rec, err := s.recorder.RecordTransaction(ctx, total, lines)
	if err != nil {
		s.log.Error("checkout failed, cart retained",
			slog.Int64("total", total),
			slog.Int("lines", len(lines)),
			slog.Any("err", err),
		)
		s.observe(ResultFailed, total, start)
		return txdomain.Record{}, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	committed = true
	s.log.Info("checkout committed",
		slog.Int64("id", rec.ID),
		slog.String("receipt_no", rec.ReceiptNo),
		slog.Int64("total", rec.TotalAmount),
	)
	s.observe(ResultCommitted, total, start)
	return rec, nil
}

// BuildLines freezes cart items into receipt lines, keeping cart order.
func BuildLines(items []CartItem) ([]txdomain.Line, error) {
	lines := make([]txdomain.Line, len(items))
	for i, it := range items {
		var desc string
		switch it.Kind {
		case txdomain.KindAdHoc:
			desc = domain.AdHocDescription(it.UnitPrice)
		case txdomain.KindCatalog:
			desc = it.DisplayName
		default:
			panic(fmt.Sprintf("checkout: unknown item kind %q", it.Kind))
		}
		sub, err := cartdomain.Subtotal(it.UnitPrice, it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		lines[i] = txdomain.Line{
			Kind:        it.Kind,
			Description: desc,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    sub,
		}
	}
	return lines, nil
}

func (s *Service) setState(st domain.State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Service) observe(result string, amount int64, start time.Time) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveCheckout(result, amount, time.Since(start).Seconds())
}
