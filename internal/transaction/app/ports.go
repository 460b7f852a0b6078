package app

import (
	"context"
	"time"

	"github.com/dwikikusuma/warung-pos/internal/transaction/domain"
)

type TransactionRepo interface {
	Insert(ctx context.Context, rec domain.Record) (domain.Record, error)
	Get(ctx context.Context, id int64) (domain.Record, error)
	List(ctx context.Context, limit int) ([]domain.Record, error)
	Summary(ctx context.Context, since time.Time) (domain.Summary, error)
	Delete(ctx context.Context, id int64) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
