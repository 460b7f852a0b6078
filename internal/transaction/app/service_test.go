package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/dwikikusuma/warung-pos/internal/transaction/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	inserted []domain.Record
	since    time.Time
	cutoff   time.Time
	err      error
}

func (f *fakeRepo) Insert(_ context.Context, rec domain.Record) (domain.Record, error) {
	if f.err != nil {
		return domain.Record{}, f.err
	}
	rec.ID = int64(len(f.inserted) + 1)
	rec.ReceiptNo = "r-1"
	f.inserted = append(f.inserted, rec)
	return rec, nil
}

func (f *fakeRepo) Get(context.Context, int64) (domain.Record, error) { return domain.Record{}, ErrNotFound }
func (f *fakeRepo) List(context.Context, int) ([]domain.Record, error) {
	return f.inserted, nil
}
func (f *fakeRepo) Summary(_ context.Context, since time.Time) (domain.Summary, error) {
	f.since = since
	return domain.Summary{}, nil
}
func (f *fakeRepo) Delete(context.Context, int64) error { return nil }
func (f *fakeRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 3, nil
}
func (f *fakeRepo) DeleteAll(context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := int64(len(f.inserted))
	f.inserted = nil
	return n, nil
}

func newTestService(repo TransactionRepo, now time.Time) *Service {
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return now }
	return svc
}

var lines = []domain.Line{
	{Kind: domain.KindAdHoc, Description: "Ad-hoc Rp1000", UnitPrice: 1000, Quantity: 2, Subtotal: 2000},
	{Kind: domain.KindCatalog, Description: "Tea", UnitPrice: 4000, Quantity: 1, Subtotal: 4000},
}

func TestRecordTransactionValidation(t *testing.T) {
	svc := newTestService(&fakeRepo{}, time.Now())
	ctx := context.Background()

	t.Run("non-positive total -> invalid", func(t *testing.T) {
		_, err := svc.RecordTransaction(ctx, 0, lines)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("no items -> invalid", func(t *testing.T) {
		_, err := svc.RecordTransaction(ctx, 6000, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("total mismatch -> invalid", func(t *testing.T) {
		_, err := svc.RecordTransaction(ctx, 5000, lines)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("bad subtotal -> invalid", func(t *testing.T) {
		bad := []domain.Line{{Kind: domain.KindAdHoc, UnitPrice: 1000, Quantity: 2, Subtotal: 1000}}
		_, err := svc.RecordTransaction(ctx, 1000, bad)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("wrapped subtotal -> invalid", func(t *testing.T) {
		bad := []domain.Line{
			{Kind: domain.KindAdHoc, UnitPrice: 1 << 62, Quantity: 4, Subtotal: 0},
			{Kind: domain.KindAdHoc, UnitPrice: 1000, Quantity: 1, Subtotal: 1000},
		}
		_, err := svc.RecordTransaction(ctx, 1000, bad)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("wrapped items total -> invalid", func(t *testing.T) {
		bad := []domain.Line{
			{Kind: domain.KindAdHoc, UnitPrice: math.MaxInt64, Quantity: 1, Subtotal: math.MaxInt64},
			{Kind: domain.KindAdHoc, UnitPrice: math.MaxInt64, Quantity: 1, Subtotal: math.MaxInt64},
			{Kind: domain.KindAdHoc, UnitPrice: 4, Quantity: 1, Subtotal: 4},
		}
		_, err := svc.RecordTransaction(ctx, 2, bad)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRecordTransaction(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	repo := &fakeRepo{}
	svc := newTestService(repo, now)

	rec, err := svc.RecordTransaction(context.Background(), 6000, lines)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, int64(6000), rec.TotalAmount)
	assert.Equal(t, time.UTC, rec.CreatedAt.Location())
	assert.True(t, now.Equal(rec.CreatedAt))
}

func TestRecordTransaction_RepoError(t *testing.T) {
	boom := errors.New("disk full")
	svc := newTestService(&fakeRepo{err: boom}, time.Now())

	_, err := svc.RecordTransaction(context.Background(), 6000, lines)
	assert.ErrorIs(t, err, boom)
}

func TestTodaySummaryUsesLocalMidnight(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Date(2026, 10, 18, 15, 45, 0, 0, loc)
	repo := &fakeRepo{}
	svc := newTestService(repo, now)

	_, err := svc.TodaySummary(context.Background())
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 10, 18, 0, 0, 0, 0, loc).Equal(repo.since))
}

func TestPurgeOlderThanDefaultsTo30Days(t *testing.T) {
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	svc := newTestService(repo, now)

	n, err := svc.PurgeOlderThan(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.True(t, now.AddDate(0, 0, -30).Equal(repo.cutoff))
}

func TestGetAndDeleteRejectBadID(t *testing.T) {
	svc := newTestService(&fakeRepo{}, time.Now())

	_, err := svc.GetTransaction(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, svc.DeleteTransaction(context.Background(), -1), ErrInvalidInput)
}

func TestReset(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, time.Now())
	ctx := context.Background()

	_, err := svc.RecordTransaction(ctx, 6000, lines)
	require.NoError(t, err)

	n, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Empty(t, repo.inserted)

	repo.err = errors.New("database is locked")
	_, err = svc.Reset(ctx)
	assert.ErrorIs(t, err, repo.err)
}
