package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

func TestCanApprove(t *testing.T) {
	tests := []struct {
		name  string
		level valueobject.RiskLevel
		score int
		want  bool
	}{
		{"low", valueobject.RiskLevelLow, 20, true},
		{"medium", valueobject.RiskLevelMedium, 55, true},
		{"medium level passes even with score at 70", valueobject.RiskLevelMedium, 75, true},
		// The score override admits high-level requests scoring below 70.
		{"high with score 65 auto-approves", valueobject.RiskLevelHigh, 65, true},
		{"high at 70 does not", valueobject.RiskLevelHigh, 70, false},
		{"high at 75", valueobject.RiskLevelHigh, 75, false},
		{"very high", valueobject.RiskLevelVeryHigh, 90, false},
		{"very high label with low score still passes", valueobject.RiskLevelVeryHigh, 69, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanApprove(tt.score, tt.level))
		})
	}
}

func TestDecideStatus(t *testing.T) {
	assert.Equal(t, valueobject.OrderStatusApproved, DecideStatus(30, valueobject.RiskLevelLow))
	assert.Equal(t, valueobject.OrderStatusApproved, DecideStatus(65, valueobject.RiskLevelHigh))
	assert.Equal(t, valueobject.OrderStatusPending, DecideStatus(75, valueobject.RiskLevelHigh))
	assert.Equal(t, valueobject.OrderStatusRejected, DecideStatus(90, valueobject.RiskLevelVeryHigh))
}

func TestDecideStatus_FromAssessment(t *testing.T) {
	a := AssessRisk(d("30000000"), d("15000000"), 3)
	assert.Equal(t, valueobject.OrderStatusApproved, DecideStatus(a.RiskScore, a.RiskLevel))

	v := AssessRisk(d("20000000"), d("50000000"), 6)
	assert.Equal(t, valueobject.OrderStatusRejected, DecideStatus(v.RiskScore, v.RiskLevel))
}
