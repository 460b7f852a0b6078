package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dwikikusuma/warung-pos/internal/transaction/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const DefaultRetentionDays = 30

type Service struct {
	repo TransactionRepo
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo TransactionRepo, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{repo: repo, log: log, now: time.Now}
}

// RecordTransaction persists a sale. Either the record exists with all of
// its lines or nothing was written.
func (s *Service) RecordTransaction(ctx context.Context, totalAmount int64, lines []domain.Line) (domain.Record, error) {
	if totalAmount <= 0 {
		return domain.Record{}, fmt.Errorf("%w: total amount must be positive, got %d", ErrInvalidInput, totalAmount)
	}
	if len(lines) == 0 {
		return domain.Record{}, fmt.Errorf("%w: transaction has no items", ErrInvalidInput)
	}

	var sum int64
	for i, ln := range lines {
		if ln.Quantity <= 0 {
			return domain.Record{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidInput, i, ln.Quantity)
		}
		if ln.UnitPrice <= 0 {
			return domain.Record{}, fmt.Errorf("%w: item %d: unit price must be positive, got %d", ErrInvalidInput, i, ln.UnitPrice)
		}
		if ln.UnitPrice > math.MaxInt64/ln.Quantity || ln.Subtotal != ln.UnitPrice*ln.Quantity {
			return domain.Record{}, fmt.Errorf("%w: item %d: subtotal mismatch", ErrInvalidInput, i)
		}
		if sum > math.MaxInt64-ln.Subtotal {
			return domain.Record{}, fmt.Errorf("%w: items total overflows", ErrInvalidInput)
		}
		sum += ln.Subtotal
	}
	if sum != totalAmount {
		return domain.Record{}, fmt.Errorf("%w: total %d does not match items %d", ErrInvalidInput, totalAmount, sum)
	}

	rec, err := s.repo.Insert(ctx, domain.Record{
		TotalAmount: totalAmount,
		Items:       lines,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return domain.Record{}, err
	}

	s.log.Info("transaction recorded",
		slog.Int64("id", rec.ID),
		slog.String("receipt_no", rec.ReceiptNo),
		slog.Int64("total", rec.TotalAmount),
	)
	return rec, nil
}

func (s *Service) GetTransaction(ctx context.Context, id int64) (domain.Record, error) {
	if id <= 0 {
		return domain.Record{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

// ListTransactions returns the newest records first. limit <= 0 means all.
func (s *Service) ListTransactions(ctx context.Context, limit int) ([]domain.Record, error) {
	if limit < 0 {
		limit = 0
	}
	return s.repo.List(ctx, limit)
}

// TodaySummary counts sales since local midnight.
func (s *Service) TodaySummary(ctx context.Context) (domain.Summary, error) {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.repo.Summary(ctx, midnight)
}

func (s *Service) DeleteTransaction(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Warn("transaction deleted", slog.Int64("id", id))
	return nil
}

// PurgeOlderThan removes records older than the given number of days.
func (s *Service) PurgeOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		days = DefaultRetentionDays
	}
	cutoff := s.now().AddDate(0, 0, -days)
	n, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.log.Info("old transactions purged", slog.Int("days", days), slog.Int64("removed", n))
	return n, nil
}

func (s *Service) Reset(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Warn("transaction history reset", slog.Int64("removed", n))
	return n, nil
}
