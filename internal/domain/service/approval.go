package service

import "github.com/Rangdog/hanbin/internal/domain/valueobject"

// approvalScoreCeiling lets any score below it auto-approve, whatever the level.
const approvalScoreCeiling = 70

// CanApprove gates automatic approval. Low and medium levels always pass, and
// so does any score under 70, which admits some high-level requests.
func CanApprove(score int, level valueobject.RiskLevel) bool {
	return level.Equal(valueobject.RiskLevelLow) ||
		level.Equal(valueobject.RiskLevelMedium) ||
		score < approvalScoreCeiling
}

// DecideStatus picks the initial status of a new order.
func DecideStatus(score int, level valueobject.RiskLevel) valueobject.OrderStatus {
	switch {
	case CanApprove(score, level):
		return valueobject.OrderStatusApproved
	case level.Equal(valueobject.RiskLevelVeryHigh):
		return valueobject.OrderStatusRejected
	default:
		return valueobject.OrderStatusPending
	}
}
