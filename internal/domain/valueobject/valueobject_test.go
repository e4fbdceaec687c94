package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskLevelFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  RiskLevel
	}{
		{0, RiskLevelLow},
		{30, RiskLevelLow},
		{39, RiskLevelLow},
		{40, RiskLevelMedium},
		{59, RiskLevelMedium},
		{60, RiskLevelHigh},
		{79, RiskLevelHigh},
		{80, RiskLevelVeryHigh},
		{100, RiskLevelVeryHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskLevelFromScore(tt.score), "score %d", tt.score)
	}
}

func TestRiskLevelFromString(t *testing.T) {
	for _, s := range []string{"low", "medium", "high", "very_high"} {
		lvl, err := RiskLevelFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, lvl.String())
	}

	_, err := RiskLevelFromString("VERY_HIGH")
	assert.Error(t, err)
	_, err = RiskLevelFromString("")
	assert.Error(t, err)
}

func TestRiskLevelOrdering(t *testing.T) {
	assert.Less(t, RiskLevelLow.Rank(), RiskLevelMedium.Rank())
	assert.Less(t, RiskLevelMedium.Rank(), RiskLevelHigh.Rank())
	assert.Less(t, RiskLevelHigh.Rank(), RiskLevelVeryHigh.Rank())
	assert.Zero(t, RiskLevel{}.Rank())
	assert.True(t, RiskLevel{}.IsZero())
}

func TestRiskLevelJSON(t *testing.T) {
	type wrapper struct {
		Level RiskLevel `json:"level"`
	}

	b, err := json.Marshal(wrapper{Level: RiskLevelVeryHigh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"very_high"}`, string(b))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"level":"medium"}`), &w))
	assert.True(t, w.Level.Equal(RiskLevelMedium))

	assert.Error(t, json.Unmarshal([]byte(`{"level":"extreme"}`), &w))
}

func TestRiskLevelLabel(t *testing.T) {
	assert.Equal(t, "Low", RiskLevelLow.Label())
	assert.Equal(t, "Very high", RiskLevelVeryHigh.Label())
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusApproved))
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusRejected))
	assert.False(t, OrderStatusApproved.CanTransitionTo(OrderStatusRejected))
	assert.False(t, OrderStatusRejected.CanTransitionTo(OrderStatusApproved))
	assert.True(t, OrderStatusRejected.IsTerminal())
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
}

func TestNewOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected", "paid", "shipping", "completed", "cancelled"} {
		st, err := NewOrderStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, st.String())
	}
	_, err := NewOrderStatus("unknown")
	assert.Error(t, err)
}
