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
)

var _ port.CompanyRepository = (*CompanyRepo)(nil)

// settledStatuses are the order statuses counted in company totals.
var settledStatuses = []string{"paid", "shipping", "completed"}

// CompanyRepo reads and locks merchant companies.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

func NewCompanyRepo(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

// FindByID returns model.ErrCompanyNotFound for unknown IDs.
func (r *CompanyRepo) FindByID(ctx context.Context, id string) (model.Company, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Company{}, fmt.Errorf("company %s: %w", id, model.ErrCompanyNotFound)
	}

	c, err := scanCompany(r.pool.QueryRow(ctx,
		`SELECT id, name, is_locked, created_at FROM companies WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Company{}, fmt.Errorf("company %s: %w", id, model.ErrCompanyNotFound)
	}
	if err != nil {
		return model.Company{}, fmt.Errorf("query company: %w", err)
	}
	return c, nil
}

// List returns companies newest first with their settled order totals.
func (r *CompanyRepo) List(ctx context.Context, filter port.CompanyFilter) ([]model.CompanySummary, error) {
	query := `
		SELECT c.id, c.name, c.is_locked, c.created_at,
		       COUNT(o.id),
		       COALESCE(SUM(o.amount), 0)
		FROM companies c
		LEFT JOIN orders o ON o.company_id = c.id AND o.status = ANY($1)
		WHERE TRUE`
	args := []any{settledStatuses}
	if filter.Search != "" {
		args = append(args, filter.Search)
		query += fmt.Sprintf(" AND c.name ILIKE '%%' || $%d || '%%'", len(args))
	}
	if filter.Locked != nil {
		args = append(args, *filter.Locked)
		query += fmt.Sprintf(" AND c.is_locked = $%d", len(args))
	}
	query += " GROUP BY c.id ORDER BY c.created_at DESC, c.id"
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
		return nil, fmt.Errorf("query companies: %w", err)
	}
	defer rows.Close()

	var out []model.CompanySummary
	for rows.Next() {
		var (
			s         model.CompanySummary
			createdAt time.Time
			spent     decimal.Decimal
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.IsLocked, &createdAt, &s.OrderCount, &spent); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		s.CreatedAt = createdAt.UTC()
		s.TotalSpent = spent
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return out, nil
}

// SetLocked updates the lock flag of a company.
func (r *CompanyRepo) SetLocked(ctx context.Context, id string, locked bool) (model.Company, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Company{}, fmt.Errorf("company %s: %w", id, model.ErrCompanyNotFound)
	}

	c, err := scanCompany(r.pool.QueryRow(ctx, `
		UPDATE companies SET is_locked = $2
		WHERE id = $1
		RETURNING id, name, is_locked, created_at`, id, locked))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Company{}, fmt.Errorf("company %s: %w", id, model.ErrCompanyNotFound)
	}
	if err != nil {
		return model.Company{}, fmt.Errorf("update company lock: %w", err)
	}
	return c, nil
}

func scanCompany(s scannable) (model.Company, error) {
	var (
		c         model.Company
		createdAt time.Time
	)
	if err := s.Scan(&c.ID, &c.Name, &c.IsLocked, &createdAt); err != nil {
		return model.Company{}, err
	}
	c.CreatedAt = createdAt.UTC()
	return c, nil
}
