package dto

import (
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdateCurrencyPolicyRequest merges the provided settings onto the company policy.
type UpdateCurrencyPolicyRequest struct {
	AllowMultiCurrency      *bool            `json:"allow_multi_currency"`
	AutoConvertToBase       *bool            `json:"auto_convert_to_base"`
	ConversionTiming        *string          `json:"conversion_timing" binding:"omitempty,oneof=Submission Approval Payment"`
	RateTolerancePercentage *decimal.Decimal `json:"rate_tolerance_percentage"`
	AllowManualRateOverride *bool            `json:"allow_manual_rate_override"`
	RoundingMethod          *string          `json:"rounding_method" binding:"omitempty,oneof=Round Floor Ceiling Truncate"`
	RoundingPrecision       *int             `json:"rounding_precision" binding:"omitempty,gte=0,lte=4"`
	UseFallbackRate         *bool            `json:"use_fallback_rate"`
	MaxRateAgeDays          *int             `json:"max_rate_age_days" binding:"omitempty,gte=0"`
}

// ToUpdate converts the request into a domain.CurrencyPolicyUpdate.
func (r UpdateCurrencyPolicyRequest) ToUpdate() domain.CurrencyPolicyUpdate {
	u := domain.CurrencyPolicyUpdate{
		AllowMultiCurrency:      r.AllowMultiCurrency,
		AutoConvertToBase:       r.AutoConvertToBase,
		RateTolerancePercentage: r.RateTolerancePercentage,
		AllowManualRateOverride: r.AllowManualRateOverride,
		RoundingPrecision:       r.RoundingPrecision,
		UseFallbackRate:         r.UseFallbackRate,
		MaxRateAgeDays:          r.MaxRateAgeDays,
	}
	if r.ConversionTiming != nil {
		t := domain.ConversionTiming(*r.ConversionTiming)
		u.ConversionTiming = &t
	}
	if r.RoundingMethod != nil {
		m := domain.RoundingMethod(*r.RoundingMethod)
		u.RoundingMethod = &m
	}
	return u
}
