package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Rangdog/hanbin/internal/domain/port"
	"github.com/Rangdog/hanbin/internal/domain/service"
	"github.com/Rangdog/hanbin/internal/domain/valueobject"
)

var _ port.AssessmentCache = (*RedisAssessmentCache)(nil)

const keyPrefix = "bnpl:risk:v1:"

// RedisAssessmentCache stores preview assessments in Redis keyed by their
// normalised input.
type RedisAssessmentCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisAssessmentCache(client redis.Cmdable, ttl time.Duration) *RedisAssessmentCache {
	return &RedisAssessmentCache{client: client, ttl: ttl}
}

type cachedAssessment struct {
	RiskLevel               string          `json:"risk_level"`
	MonthlyPayment          decimal.Decimal `json:"monthly_payment"`
	TotalAmountWithInterest decimal.Decimal `json:"total_amount_with_interest"`
	AdjustedInterestRate    decimal.Decimal `json:"adjusted_interest_rate"`
	Message                 string          `json:"message"`
	DebtToIncomeRatio       float64         `json:"debt_to_income_ratio"`
	RiskScore               int             `json:"risk_score"`
}

// Key returns the cache key of in. Equal amounts with different scales
// ("100" and "100.00") share a key.
func Key(in service.RiskInput) string {
	return keyPrefix + in.CustomerIncome.String() + ":" + in.OrderAmount.String() + ":" + strconv.Itoa(in.InstallmentPeriod)
}

// Get returns the cached assessment, or ok=false on a miss.
func (c *RedisAssessmentCache) Get(ctx context.Context, in service.RiskInput) (service.RiskAssessment, bool, error) {
	raw, err := c.client.Get(ctx, Key(in)).Bytes()
	if errors.Is(err, redis.Nil) {
		return service.RiskAssessment{}, false, nil
	}
	if err != nil {
		return service.RiskAssessment{}, false, fmt.Errorf("redis get: %w", err)
	}

	var entry cachedAssessment
	if err := json.Unmarshal(raw, &entry); err != nil {
		return service.RiskAssessment{}, false, fmt.Errorf("decode cached assessment: %w", err)
	}
	level, err := valueobject.RiskLevelFromString(entry.RiskLevel)
	if err != nil {
		return service.RiskAssessment{}, false, fmt.Errorf("decode cached assessment: %w", err)
	}

	return service.RiskAssessment{
		RiskScore:               entry.RiskScore,
		RiskLevel:               level,
		DebtToIncomeRatio:       entry.DebtToIncomeRatio,
		MonthlyPayment:          entry.MonthlyPayment,
		TotalAmountWithInterest: entry.TotalAmountWithInterest,
		AdjustedInterestRate:    entry.AdjustedInterestRate,
		Message:                 entry.Message,
	}, true, nil
}

// Set stores a. Unusable sentinel assessments are not cached.
func (c *RedisAssessmentCache) Set(ctx context.Context, in service.RiskInput, a service.RiskAssessment) error {
	if a.IsUnusable() {
		return nil
	}

	raw, err := json.Marshal(cachedAssessment{
		RiskScore:               a.RiskScore,
		RiskLevel:               a.RiskLevel.String(),
		DebtToIncomeRatio:       a.DebtToIncomeRatio,
		MonthlyPayment:          a.MonthlyPayment,
		TotalAmountWithInterest: a.TotalAmountWithInterest,
		AdjustedInterestRate:    a.AdjustedInterestRate,
		Message:                 a.Message,
	})
	if err != nil {
		return fmt.Errorf("encode assessment: %w", err)
	}

	if err := c.client.Set(ctx, Key(in), string(raw), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
