package valueobject

import "fmt"

// OrderStatus is the lifecycle stage of a financed order.
type OrderStatus struct {
	value string
}

const (
	orderStatusPending   = "pending"
	orderStatusApproved  = "approved"
	orderStatusRejected  = "rejected"
	orderStatusPaid      = "paid"
	orderStatusShipping  = "shipping"
	orderStatusCompleted = "completed"
	orderStatusCancelled = "cancelled"
)

var (
	OrderStatusPending   = OrderStatus{value: orderStatusPending}
	OrderStatusApproved  = OrderStatus{value: orderStatusApproved}
	OrderStatusRejected  = OrderStatus{value: orderStatusRejected}
	OrderStatusPaid      = OrderStatus{value: orderStatusPaid}
	OrderStatusShipping  = OrderStatus{value: orderStatusShipping}
	OrderStatusCompleted = OrderStatus{value: orderStatusCompleted}
	OrderStatusCancelled = OrderStatus{value: orderStatusCancelled}
)

var validOrderStatuses = map[string]OrderStatus{
	orderStatusPending:   OrderStatusPending,
	orderStatusApproved:  OrderStatusApproved,
	orderStatusRejected:  OrderStatusRejected,
	orderStatusPaid:      OrderStatusPaid,
	orderStatusShipping:  OrderStatusShipping,
	orderStatusCompleted: OrderStatusCompleted,
	orderStatusCancelled: OrderStatusCancelled,
}

// allowedOrderTransitions lists the statuses reachable from each status.
var allowedOrderTransitions = map[string][]string{
	orderStatusPending:  {orderStatusApproved, orderStatusRejected, orderStatusCancelled},
	orderStatusApproved: {orderStatusPaid, orderStatusShipping, orderStatusCancelled},
	orderStatusPaid:     {orderStatusShipping, orderStatusCompleted},
	orderStatusShipping: {orderStatusCompleted},
}

// NewOrderStatus creates an OrderStatus from a raw string.
func NewOrderStatus(s string) (OrderStatus, error) {
	v, ok := validOrderStatuses[s]
	if !ok {
		return OrderStatus{}, fmt.Errorf("invalid order status: %q", s)
	}
	return v, nil
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, v := range allowedOrderTransitions[s.value] {
		if v == next.value {
			return true
		}
	}
	return false
}

// IsTerminal is true for rejected, completed and cancelled orders.
func (s OrderStatus) IsTerminal() bool {
	return len(allowedOrderTransitions[s.value]) == 0
}

// String returns the string representation of the status.
func (s OrderStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s OrderStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s OrderStatus) Equal(other OrderStatus) bool { return s.value == other.value }
