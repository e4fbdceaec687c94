package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rangdog/hanbin/internal/application/dto"
	"github.com/Rangdog/hanbin/internal/application/usecase"
	"github.com/Rangdog/hanbin/internal/domain/event"
	"github.com/Rangdog/hanbin/internal/domain/model"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
	"github.com/Rangdog/hanbin/pkg/testutil"
)

func TestReviewOrder_Execute(t *testing.T) {
	adminID := testutil.TestAdminID.String()

	newUseCase := func(orders *mockOrderRepository) (*usecase.ReviewOrderUseCase, *mockEventPublisher, *mockDecisionRecorder) {
		publisher := &mockEventPublisher{}
		recorder := &mockDecisionRecorder{}
		return usecase.NewReviewOrderUseCase(orders, publisher, recorder, discardLogger()), publisher, recorder
	}

	t.Run("approves a pending order", func(t *testing.T) {
		repo := findingOrders(storedOrder("order-1", companyID, valueobject.OrderStatusPending))
		uc, publisher, recorder := newUseCase(repo)

		resp, err := uc.Execute(context.Background(), dto.ReviewOrderRequest{
			OrderID: "order-1", ReviewerID: adminID, Decision: "Approve", Reason: " verified invoice ",
		})

		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		assert.True(t, resp.ApprovedByAdmin)
		assert.Equal(t, "verified invoice", resp.ReviewReason)
		require.Len(t, repo.updated, 1)
		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, event.TypeOrderApproved, publisher.publishedEvents[0].EventType())
		assert.Equal(t, []string{"approved"}, recorder.decisions)
	})

	t.Run("rejects a pending order", func(t *testing.T) {
		repo := findingOrders(storedOrder("order-1", companyID, valueobject.OrderStatusPending))
		uc, publisher, _ := newUseCase(repo)

		resp, err := uc.Execute(context.Background(), dto.ReviewOrderRequest{
			OrderID: "order-1", ReviewerID: adminID, Decision: dto.DecisionReject, Reason: "income not verifiable",
		})

		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.Status)
		assert.False(t, resp.ApprovedByAdmin)
		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, event.TypeOrderRejected, publisher.publishedEvents[0].EventType())
	})

	t.Run("only pending orders can be reviewed", func(t *testing.T) {
		repo := findingOrders(storedOrder("order-1", companyID, valueobject.OrderStatusApproved))
		uc, _, _ := newUseCase(repo)

		_, err := uc.Execute(context.Background(), dto.ReviewOrderRequest{
			OrderID: "order-1", ReviewerID: adminID, Decision: dto.DecisionReject,
		})

		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
		assert.Empty(t, repo.updated)
	})

	t.Run("unknown decision", func(t *testing.T) {
		repo := findingOrders(storedOrder("order-1", companyID, valueobject.OrderStatusPending))
		uc, _, _ := newUseCase(repo)

		_, err := uc.Execute(context.Background(), dto.ReviewOrderRequest{OrderID: "order-1", Decision: "maybe"})

		assert.ErrorIs(t, err, valueobject.ErrInvalidInput)
	})

	t.Run("concurrent update", func(t *testing.T) {
		repo := findingOrders(storedOrder("order-1", companyID, valueobject.OrderStatusPending))
		repo.updateStatusFunc = func(context.Context, model.Order) error { return model.ErrConcurrentUpdate }
		uc, publisher, _ := newUseCase(repo)

		_, err := uc.Execute(context.Background(), dto.ReviewOrderRequest{
			OrderID: "order-1", ReviewerID: adminID, Decision: dto.DecisionApprove,
		})

		assert.ErrorIs(t, err, model.ErrConcurrentUpdate)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("missing order", func(t *testing.T) {
		uc, _, _ := newUseCase(findingOrders())

		_, err := uc.Execute(context.Background(), dto.ReviewOrderRequest{OrderID: "x", Decision: dto.DecisionApprove})

		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}
