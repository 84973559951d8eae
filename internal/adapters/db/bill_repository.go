// internal/adapters/db/bill_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/ports"
)

// billRepository implements ports.BillRepository on PostgreSQL. Bills and
// their lines live in two tables; a bill is always written together with
// its lines in one transaction.
type billRepository struct {
	db     *Database
	sb     squirrel.StatementBuilderType
	logger *slog.Logger
}

// NewBillRepository creates a new Postgres-backed bill repository
func NewBillRepository(db *Database, logger *slog.Logger) ports.BillRepository {
	return &billRepository{
		db:     db,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger: logger.With(slog.String("repository", "bill_pg")),
	}
}

// LoadAll reads the whole bill history ordered by bill number.
func (r *billRepository) LoadAll(ctx context.Context) ([]domain.Bill, error) {
	return r.queryBills(ctx, r.selectBills().OrderBy("bill_number ASC"))
}

// SaveAll replaces the stored history with bills in one transaction.
func (r *billRepository) SaveAll(ctx context.Context, bills []domain.Bill) error {
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM bill_lines`); err != nil {
			return fmt.Errorf("failed to clear bill lines: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM bills`); err != nil {
			return fmt.Errorf("failed to clear bills: %w", err)
		}
		for i := range bills {
			if err := insertBill(ctx, tx, bills[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "bill history saved", slog.Int("bills", len(bills)))
	return nil
}

// Append adds one bill and its lines in a single transaction.
func (r *billRepository) Append(ctx context.Context, bill domain.Bill) error {
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		return insertBill(ctx, tx, bill)
	})
}

func insertBill(ctx context.Context, tx pgx.Tx, bill domain.Bill) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO bills (
			bill_number, buyer_info, created_by, date_created,
			subtotal, discount_amount, total
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		bill.BillNumber, bill.BuyerInfo, bill.CreatedBy, bill.DateCreated,
		bill.Subtotal, bill.DiscountAmount, bill.Total,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill %d: %w", bill.BillNumber, err)
	}

	if len(bill.Lines) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for pos, line := range bill.Lines {
		batch.Queue(`
			INSERT INTO bill_lines (
				bill_number, position, item_id, item_name,
				unit_price, discount_percentage
			) VALUES ($1, $2, $3, $4, $5, $6)`,
			bill.BillNumber, pos, line.ItemID, line.ItemName,
			line.UnitPrice, line.DiscountPercentage,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for range bill.Lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert line for bill %d: %w", bill.BillNumber, err)
		}
	}
	return nil
}

// FindByNumber returns the bill with the given number, or nil when absent.
func (r *billRepository) FindByNumber(ctx context.Context, number int64) (*domain.Bill, error) {
	bills, err := r.queryBills(ctx, r.selectBills().Where(squirrel.Eq{"bill_number": number}))
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, nil
	}
	return &bills[0], nil
}

// BillsOnDate returns the bills cut on the given calendar day.
func (r *billRepository) BillsOnDate(ctx context.Context, day time.Time) ([]domain.Bill, error) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	return r.queryBills(ctx, r.selectBills().
		Where(squirrel.GtOrEq{"date_created": start}).
		Where(squirrel.Lt{"date_created": end}).
		OrderBy("bill_number ASC"))
}

// MaxBillNumber returns the highest persisted bill number, or 0 when empty.
func (r *billRepository) MaxBillNumber(ctx context.Context) (int64, error) {
	var max int64
	err := r.db.QueryRow(ctx, `SELECT COALESCE(MAX(bill_number), 0) FROM bills`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to query max bill number: %w", err)
	}
	return max, nil
}

func (r *billRepository) selectBills() squirrel.SelectBuilder {
	return r.sb.Select(
		"bill_number", "buyer_info", "created_by", "date_created",
		"subtotal", "discount_amount", "total",
	).From("bills")
}

func (r *billRepository) queryBills(ctx context.Context, builder squirrel.SelectBuilder) ([]domain.Bill, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []domain.Bill
	for rows.Next() {
		var b domain.Bill
		err := rows.Scan(
			&b.BillNumber, &b.BuyerInfo, &b.CreatedBy, &b.DateCreated,
			&b.Subtotal, &b.DiscountAmount, &b.Total,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	for i := range bills {
		if err := r.loadLines(ctx, &bills[i]); err != nil {
			return nil, err
		}
	}
	return bills, nil
}

func (r *billRepository) loadLines(ctx context.Context, bill *domain.Bill) error {
	rows, err := r.db.Query(ctx, `
		SELECT item_id, item_name, unit_price, discount_percentage
		FROM bill_lines
		WHERE bill_number = $1
		ORDER BY position ASC`,
		bill.BillNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to query lines for bill %d: %w", bill.BillNumber, err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.BillLine
		if err := rows.Scan(&line.ItemID, &line.ItemName, &line.UnitPrice, &line.DiscountPercentage); err != nil {
			return fmt.Errorf("failed to scan line for bill %d: %w", bill.BillNumber, err)
		}
		bill.Lines = append(bill.Lines, line)
	}
	return rows.Err()
}
