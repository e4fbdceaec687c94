//go:build integration

package postgres_test

import (
	"context"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rangdog/hanbin/internal/domain/model"
	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/domain/service"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
	"github.com/Rangdog/hanbin/internal/infrastructure/postgres"
	"github.com/Rangdog/hanbin/pkg/testutil"
)

func migrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "migrations")
}

type fixture struct {
	pg        *testutil.PostgresContainer
	orders    *postgres.OrderRepo
	companies *postgres.CompanyRepo
	companyID string
	productID string
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	pg := testutil.NewPostgresContainer(ctx, t)
	pg.Migrate(t, migrationsDir())

	f := fixture{
		pg:        pg,
		orders:    postgres.NewOrderRepo(pg.Pool),
		companies: postgres.NewCompanyRepo(pg.Pool),
		companyID: testutil.TestCompanyID.String(),
		productID: testutil.TestProductID.String(),
	}
	pg.Exec(t, `INSERT INTO companies (id, name) VALUES ($1, 'Hanbin Trading')`, f.companyID)
	pg.Exec(t, `INSERT INTO companies (id, name, is_locked) VALUES ($1, 'Locked Co', TRUE)`, testutil.TestCompany2ID.String())
	pg.Exec(t, `INSERT INTO products (id, name, status, price, stock_quantity) VALUES ($1, 'Rice 50kg', 'active', 1500000, 5)`, f.productID)
	pg.Exec(t, `INSERT INTO products (id, name, status, price, stock_quantity) VALUES ($1, 'Old stock', 'inactive', 100000, 50)`, testutil.TestProduct2ID.String())
	return f
}

func newOrder(t *testing.T, companyID string, items ...model.OrderItem) model.Order {
	t.Helper()
	amount := decimal.NewFromInt(3_000_000)
	if len(items) > 0 {
		amount = model.ItemsTotal(items)
	}
	income := decimal.NewFromInt(20_000_000)

	quote, err := service.QuoteOrder(service.RiskInput{CustomerIncome: income, OrderAmount: amount, InstallmentPeriod: 6})
	require.NoError(t, err)

	order, err := model.NewOrder(model.NewOrderParams{
		CompanyID:         companyID,
		UserID:            testutil.TestUserID.String(),
		Buyer:             "Nguyen Van A",
		InvoiceNumber:     "INV-" + uuid.NewString()[:8],
		Amount:            amount,
		CustomerIncome:    income,
		InstallmentPeriod: 6,
		Items:             items,
	}, quote, time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, err)
	return order
}

func item(t *testing.T, productID string, qty int) model.OrderItem {
	t.Helper()
	it, err := model.NewOrderItem(productID, qty, decimal.NewFromInt(1_500_000))
	require.NoError(t, err)
	return it
}

func stockOf(t *testing.T, f fixture, productID string) int {
	t.Helper()
	var qty int
	require.NoError(t, f.pg.Pool.QueryRow(context.Background(),
		`SELECT stock_quantity FROM products WHERE id = $1`, productID).Scan(&qty))
	return qty
}

func TestOrderRepo(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("create and find round trip", func(t *testing.T) {
		order := newOrder(t, f.companyID, item(t, f.productID, 2))

		require.NoError(t, f.orders.Create(ctx, order))

		got, err := f.orders.FindByID(ctx, order.ID())
		require.NoError(t, err)
		assert.Equal(t, order.ID(), got.ID())
		assert.Equal(t, order.Status(), got.Status())
		assert.Equal(t, order.RiskLevel(), got.RiskLevel())
		assert.Equal(t, order.RiskScore(), got.RiskScore())
		assert.True(t, order.Amount().Equal(got.Amount()))
		assert.True(t, order.MonthlyPayment().Equal(got.MonthlyPayment()))
		assert.True(t, order.InterestRate().Equal(got.InterestRate()))
		assert.Equal(t, 180, got.PaymentTerms())
		require.Len(t, got.Items(), 1)
		assert.Equal(t, 2, got.Items()[0].Quantity)
		assert.Equal(t, 3, stockOf(t, f, f.productID))
	})

	t.Run("insufficient stock rolls back", func(t *testing.T) {
		before := stockOf(t, f, f.productID)
		order := newOrder(t, f.companyID, item(t, f.productID, before+1))

		err := f.orders.Create(ctx, order)

		assert.ErrorIs(t, err, model.ErrInsufficientStock)
		_, err = f.orders.FindByID(ctx, order.ID())
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
		assert.Equal(t, before, stockOf(t, f, f.productID))
	})

	t.Run("inactive and unknown products", func(t *testing.T) {
		err := f.orders.Create(ctx, newOrder(t, f.companyID, item(t, testutil.TestProduct2ID.String(), 1)))
		assert.ErrorIs(t, err, model.ErrProductUnavailable)

		err = f.orders.Create(ctx, newOrder(t, f.companyID, item(t, uuid.NewString(), 1)))
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("concurrent orders never oversell", func(t *testing.T) {
		before := stockOf(t, f, f.productID)
		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			oks int
		)
		orders := make([]model.Order, before+2)
		for i := range orders {
			orders[i] = newOrder(t, f.companyID, item(t, f.productID, 1))
		}
		for _, o := range orders {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := f.orders.Create(ctx, o); err == nil {
					mu.Lock()
					oks++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, before, oks)
		assert.Zero(t, stockOf(t, f, f.productID))
	})

	t.Run("update status with optimistic locking", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Microsecond)
		snap := newOrder(t, f.companyID).Snapshot()
		snap.Status = valueobject.OrderStatusPending
		snap.ApprovedByAdmin = false
		pending := model.ReconstructOrder(snap)
		require.NoError(t, f.orders.Create(ctx, pending))

		loaded, err := f.orders.FindByID(ctx, pending.ID())
		require.NoError(t, err)
		approved, err := loaded.Approve(testutil.TestAdminID.String(), "checked", now)
		require.NoError(t, err)

		require.NoError(t, f.orders.UpdateStatus(ctx, approved))

		got, err := f.orders.FindByID(ctx, pending.ID())
		require.NoError(t, err)
		assert.Equal(t, valueobject.OrderStatusApproved, got.Status())
		assert.True(t, got.ApprovedByAdmin())
		assert.Equal(t, "checked", got.ReviewReason())
		assert.Equal(t, 2, got.Version())

		// Writing from the stale copy again must fail.
		err = f.orders.UpdateStatus(ctx, approved)
		assert.ErrorIs(t, err, model.ErrConcurrentUpdate)
	})

	t.Run("list by company newest first with status filter", func(t *testing.T) {
		all, err := f.orders.ListByCompany(ctx, f.companyID, port.OrderFilter{})
		require.NoError(t, err)
		require.NotEmpty(t, all)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].CreatedAt().After(all[i-1].CreatedAt()))
		}

		pending, err := f.orders.ListByCompany(ctx, f.companyID, port.OrderFilter{Status: valueobject.OrderStatusApproved, Limit: 1})
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, valueobject.OrderStatusApproved, pending[0].Status())

		none, err := f.orders.ListByCompany(ctx, testutil.TestCompany2ID.String(), port.OrderFilter{})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("find unknown ids", func(t *testing.T) {
		_, err := f.orders.FindByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
		_, err = f.orders.FindByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}

func TestCompanyRepo(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	c, err := f.companies.FindByID(ctx, f.companyID)
	require.NoError(t, err)
	assert.Equal(t, "Hanbin Trading", c.Name)
	assert.NoError(t, c.CanOrder())

	locked, err := f.companies.FindByID(ctx, testutil.TestCompany2ID.String())
	require.NoError(t, err)
	assert.ErrorIs(t, locked.CanOrder(), model.ErrCompanyLocked)

	_, err = f.companies.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, model.ErrCompanyNotFound)

	t.Run("lock and unlock", func(t *testing.T) {
		c, err := f.companies.SetLocked(ctx, f.companyID, true)
		require.NoError(t, err)
		assert.True(t, c.IsLocked)
		assert.Equal(t, "Hanbin Trading", c.Name)

		reloaded, err := f.companies.FindByID(ctx, f.companyID)
		require.NoError(t, err)
		assert.ErrorIs(t, reloaded.CanOrder(), model.ErrCompanyLocked)

		c, err = f.companies.SetLocked(ctx, f.companyID, false)
		require.NoError(t, err)
		assert.False(t, c.IsLocked)

		_, err = f.companies.SetLocked(ctx, uuid.NewString(), true)
		assert.ErrorIs(t, err, model.ErrCompanyNotFound)
	})

	t.Run("list with settled totals", func(t *testing.T) {
		order := newOrder(t, f.companyID)
		require.NoError(t, f.orders.Create(ctx, order))
		paid, err := order.TransitionTo(valueobject.OrderStatusPaid, testutil.TestUserID.String(), "", time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, f.orders.UpdateStatus(ctx, paid))
		require.NoError(t, f.orders.Create(ctx, newOrder(t, f.companyID)))

		all, err := f.companies.List(ctx, port.CompanyFilter{})
		require.NoError(t, err)
		require.Len(t, all, 2)

		byID := map[string]model.CompanySummary{}
		for _, c := range all {
			byID[c.ID] = c
		}
		assert.Equal(t, 1, byID[f.companyID].OrderCount)
		assert.True(t, order.Amount().Equal(byID[f.companyID].TotalSpent))
		assert.Equal(t, 0, byID[testutil.TestCompany2ID.String()].OrderCount)

		locked := true
		onlyLocked, err := f.companies.List(ctx, port.CompanyFilter{Locked: &locked})
		require.NoError(t, err)
		require.Len(t, onlyLocked, 1)
		assert.Equal(t, "Locked Co", onlyLocked[0].Name)

		search, err := f.companies.List(ctx, port.CompanyFilter{Search: "hanbin"})
		require.NoError(t, err)
		require.Len(t, search, 1)
		assert.Equal(t, f.companyID, search[0].ID)
	})
}
