package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Rangdog/hanbin/internal/domain/model"
	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
	pgutil "github.com/Rangdog/hanbin/pkg/postgres"
)

// Compile-time interface check.
var _ port.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `
	id, company_id, user_id, buyer, invoice_number,
	amount, interest_rate, customer_income, monthly_payment, total_amount_with_interest,
	status, risk_level, review_reason,
	payment_terms, installment_period, risk_score, approved_by_admin,
	version, created_at, updated_at`

// OrderRepo implements port.OrderRepository.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepo creates a new PostgreSQL-backed order repository.
func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create inserts the order, reserves stock for each item and inserts the
// items, all in one transaction.
func (r *OrderRepo) Create(ctx context.Context, order model.Order) error {
	return pgutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (`+orderColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
			order.ID(), order.CompanyID(), order.UserID(), order.Buyer(), order.InvoiceNumber(),
			order.Amount(), order.InterestRate(), order.CustomerIncome(), order.MonthlyPayment(), order.TotalAmountWithInterest(),
			order.Status().String(), order.RiskLevel().String(), order.ReviewReason(),
			order.PaymentTerms(), order.InstallmentPeriod(), order.RiskScore(), order.ApprovedByAdmin(),
			order.Version(), order.CreatedAt(), order.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, item := range order.Items() {
			if err := reserveStock(ctx, tx, item); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, subtotal)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				item.ID, order.ID(), item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
			)
			if err != nil {
				return fmt.Errorf("insert order item %s: %w", item.ProductID, err)
			}
		}
		return nil
	})
}

// reserveStock locks the product row and decrements its stock.
func reserveStock(ctx context.Context, tx pgx.Tx, item model.OrderItem) error {
	if _, err := uuid.Parse(item.ProductID); err != nil {
		return fmt.Errorf("product %s: %w", item.ProductID, model.ErrProductNotFound)
	}

	var p model.Product
	err := tx.QueryRow(ctx, `
		SELECT id, name, status, price, stock_quantity
		FROM products
		WHERE id = $1
		FOR UPDATE`, item.ProductID,
	).Scan(&p.ID, &p.Name, &p.Status, &p.Price, &p.StockQuantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("product %s: %w", item.ProductID, model.ErrProductNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock product %s: %w", item.ProductID, err)
	}

	reserved, err := p.Reserve(item.Quantity)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE products SET stock_quantity = $2 WHERE id = $1`,
		reserved.ID, reserved.StockQuantity,
	); err != nil {
		return fmt.Errorf("update stock %s: %w", item.ProductID, err)
	}
	return nil
}

// UpdateStatus persists a status change using optimistic locking on version.
func (r *OrderRepo) UpdateStatus(ctx context.Context, order model.Order) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET
			status            = $2,
			review_reason     = $3,
			approved_by_admin = $4,
			updated_at        = $5,
			version           = version + 1
		WHERE id = $1 AND version = $6`,
		order.ID(), order.Status().String(), order.ReviewReason(), order.ApprovedByAdmin(),
		order.UpdatedAt(), order.Version(),
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s version %d: %w", order.ID(), order.Version(), model.ErrConcurrentUpdate)
	}
	return nil
}

// FindByID retrieves an order and its items.
func (r *OrderRepo) FindByID(ctx context.Context, id string) (model.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Order{}, fmt.Errorf("order %s: %w", id, model.ErrOrderNotFound)
	}

	snap, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Order{}, fmt.Errorf("order %s: %w", id, model.ErrOrderNotFound)
	}
	if err != nil {
		return model.Order{}, err
	}

	items, err := r.loadItems(ctx, []string{id})
	if err != nil {
		return model.Order{}, err
	}
	snap.Items = items[id]
	return model.ReconstructOrder(snap), nil
}

// ListByCompany returns a company's orders, newest first.
func (r *OrderRepo) ListByCompany(ctx context.Context, companyID string, filter port.OrderFilter) ([]model.Order, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, nil
	}

	query := `SELECT ` + orderColumns + ` FROM orders WHERE company_id = $1`
	args := []any{companyID}
	if !filter.Status.IsZero() {
		args = append(args, filter.Status.String())
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var snaps []model.OrderSnapshot
	for rows.Next() {
		snap, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	if len(snaps) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(snaps))
	for _, s := range snaps {
		ids = append(ids, s.ID)
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(snaps))
	for _, s := range snaps {
		s.Items = items[s.ID]
		orders = append(orders, model.ReconstructOrder(s))
	}
	return orders, nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanOrder(s scannable) (model.OrderSnapshot, error) {
	var (
		snap                  model.OrderSnapshot
		statusStr, levelStr   string
		createdAt, updatedAt  time.Time
		amount, rate, income  decimal.Decimal
		monthly, totalWithInt decimal.Decimal
	)

	err := s.Scan(
		&snap.ID, &snap.CompanyID, &snap.UserID, &snap.Buyer, &snap.InvoiceNumber,
		&amount, &rate, &income, &monthly, &totalWithInt,
		&statusStr, &levelStr, &snap.ReviewReason,
		&snap.PaymentTerms, &snap.InstallmentPeriod, &snap.RiskScore, &snap.ApprovedByAdmin,
		&snap.Version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OrderSnapshot{}, err
		}
		return model.OrderSnapshot{}, fmt.Errorf("scan order: %w", err)
	}

	status, err := valueobject.NewOrderStatus(statusStr)
	if err != nil {
		return model.OrderSnapshot{}, fmt.Errorf("parse order status: %w", err)
	}
	level, err := valueobject.RiskLevelFromString(levelStr)
	if err != nil {
		return model.OrderSnapshot{}, fmt.Errorf("parse risk level: %w", err)
	}

	snap.Status = status
	snap.RiskLevel = level
	snap.Amount = amount
	snap.InterestRate = rate
	snap.CustomerIncome = income
	snap.MonthlyPayment = monthly
	snap.TotalAmountWithInterest = totalWithInt
	snap.CreatedAt = createdAt.UTC()
	snap.UpdatedAt = updatedAt.UTC()
	return snap, nil
}

// loadItems returns the items of the given orders keyed by order ID.
func (r *OrderRepo) loadItems(ctx context.Context, orderIDs []string) (map[string][]model.OrderItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_id, id, product_id, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			orderID string
			item    model.OrderItem
		)
		if err := rows.Scan(&orderID, &item.ID, &item.ProductID, &item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out[orderID] = append(out[orderID], item)
	}
	return out, rows.Err()
}
