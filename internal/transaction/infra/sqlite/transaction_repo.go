package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dwikikusuma/warung-pos/internal/transaction/app"
	"github.com/dwikikusuma/warung-pos/internal/transaction/domain"
	"github.com/google/uuid"
)

type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

func (r *TransactionRepo) execTX(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w; rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func (r *TransactionRepo) Insert(ctx context.Context, rec domain.Record) (domain.Record, error) {
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return domain.Record{}, fmt.Errorf("failed to encode items: %w", err)
	}

	rec.ReceiptNo = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	err = r.execTX(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (receipt_no, total_amount, items, created_at)
			VALUES (?, ?, ?, ?)`,
			rec.ReceiptNo, rec.TotalAmount, string(items), formatTime(rec.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read transaction id: %w", err)
		}
		rec.ID = id
		return nil
	})
	if err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

func (r *TransactionRepo) Get(ctx context.Context, id int64) (domain.Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, receipt_no, total_amount, items, created_at
		FROM transactions WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

func (r *TransactionRepo) List(ctx context.Context, limit int) ([]domain.Record, error) {
	query := `
		SELECT id, receipt_no, total_amount, items, created_at
		FROM transactions
		ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

func (r *TransactionRepo) Summary(ctx context.Context, since time.Time) (domain.Summary, error) {
	var s domain.Summary
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM transactions WHERE created_at >= ?`, formatTime(since)).Scan(&s.Count, &s.Revenue)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	return s, nil
}

func (r *TransactionRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *TransactionRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE created_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old transactions: %w", err)
	}
	return res.RowsAffected()
}

func (r *TransactionRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions`)
	if err != nil {
		return 0, fmt.Errorf("failed to reset transactions: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (domain.Record, error) {
	var (
		rec       domain.Record
		items     string
		createdAt string
	)
	if err := s.Scan(&rec.ID, &rec.ReceiptNo, &rec.TotalAmount, &items, &createdAt); err != nil {
		return domain.Record{}, err
	}
	if err := json.Unmarshal([]byte(items), &rec.Items); err != nil {
		return domain.Record{}, fmt.Errorf("transaction %d: failed to decode items: %w", rec.ID, err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return domain.Record{}, fmt.Errorf("transaction %d: bad timestamp: %w", rec.ID, err)
	}
	rec.CreatedAt = t
	return rec, nil
}

// Timestamps are stored as fixed-width UTC strings so they compare
// lexically in SQL.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
