package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionTiming decides when an expense amount is converted.
type ConversionTiming string

const (
	TimingSubmission ConversionTiming = "Submission"
	TimingApproval   ConversionTiming = "Approval"
	TimingPayment    ConversionTiming = "Payment"
)

func (t ConversionTiming) Valid() bool {
	switch t {
	case TimingSubmission, TimingApproval, TimingPayment:
		return true
	}
	return false
}

// RoundingMethod selects how converted amounts are rounded.
type RoundingMethod string

const (
	RoundingRound    RoundingMethod = "Round"
	RoundingFloor    RoundingMethod = "Floor"
	RoundingCeiling  RoundingMethod = "Ceiling"
	RoundingTruncate RoundingMethod = "Truncate"
)

func (m RoundingMethod) Valid() bool {
	switch m {
	case RoundingRound, RoundingFloor, RoundingCeiling, RoundingTruncate:
		return true
	}
	return false
}

// CurrencyPolicy holds a company's conversion behaviour. At most one per company.
type CurrencyPolicy struct {
	ID                      int64            `json:"id,omitempty"`
	CompanyID               int64            `json:"company_id"`
	AllowMultiCurrency      bool             `json:"allow_multi_currency"`
	AutoConvertToBase       bool             `json:"auto_convert_to_base"`
	ConversionTiming        ConversionTiming `json:"conversion_timing"`
	RateTolerancePercentage decimal.Decimal  `json:"rate_tolerance_percentage"`
	AllowManualRateOverride bool             `json:"allow_manual_rate_override"`
	RoundingMethod          RoundingMethod   `json:"rounding_method"`
	RoundingPrecision       int              `json:"rounding_precision"`
	UseFallbackRate         bool             `json:"use_fallback_rate"`
	MaxRateAgeDays          int              `json:"max_rate_age_days"`
	CreatedAt               *time.Time       `json:"created_at,omitempty"`
	CreatedBy               *int64           `json:"created_by,omitempty"`
	UpdatedAt               *time.Time       `json:"updated_at,omitempty"`
	UpdatedBy               *int64           `json:"updated_by,omitempty"`
	IsDefault               bool             `json:"is_default"` // true when not persisted
	BaseCurrency            *Currency        `json:"base_currency,omitempty"`
	DefaultExpenseCurrency  *Currency        `json:"default_expense_currency,omitempty"`
}

// DefaultCurrencyPolicy is what a company gets before it saves a policy.
func DefaultCurrencyPolicy(companyID int64) CurrencyPolicy {
	return CurrencyPolicy{
		CompanyID:               companyID,
		AllowMultiCurrency:      true,
		AutoConvertToBase:       true,
		ConversionTiming:        TimingSubmission,
		RateTolerancePercentage: decimal.NewFromInt(5),
		AllowManualRateOverride: false,
		RoundingMethod:          RoundingRound,
		RoundingPrecision:       2,
		UseFallbackRate:         false,
		MaxRateAgeDays:          30,
		IsDefault:               true,
	}
}

// CurrencyPolicyUpdate is a partial policy update. Nil means unchanged.
type CurrencyPolicyUpdate struct {
	AllowMultiCurrency      *bool
	AutoConvertToBase       *bool
	ConversionTiming        *ConversionTiming
	RateTolerancePercentage *decimal.Decimal
	AllowManualRateOverride *bool
	RoundingMethod          *RoundingMethod
	RoundingPrecision       *int
	UseFallbackRate         *bool
	MaxRateAgeDays          *int
}

// Apply merges the provided fields onto p.
func (u CurrencyPolicyUpdate) Apply(p *CurrencyPolicy) {
	if u.AllowMultiCurrency != nil {
		p.AllowMultiCurrency = *u.AllowMultiCurrency
	}
	if u.AutoConvertToBase != nil {
		p.AutoConvertToBase = *u.AutoConvertToBase
	}
	if u.ConversionTiming != nil {
		p.ConversionTiming = *u.ConversionTiming
	}
	if u.RateTolerancePercentage != nil {
		p.RateTolerancePercentage = *u.RateTolerancePercentage
	}
	if u.AllowManualRateOverride != nil {
		p.AllowManualRateOverride = *u.AllowManualRateOverride
	}
	if u.RoundingMethod != nil {
		p.RoundingMethod = *u.RoundingMethod
	}
	if u.RoundingPrecision != nil {
		p.RoundingPrecision = *u.RoundingPrecision
	}
	if u.UseFallbackRate != nil {
		p.UseFallbackRate = *u.UseFallbackRate
	}
	if u.MaxRateAgeDays != nil {
		p.MaxRateAgeDays = *u.MaxRateAgeDays
	}
}
