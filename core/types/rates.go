package types

import (
	"errors"

	"code.tenorprotocol.io/tenor/libs/num"
)

var (
	ErrInvalidETHRate  = errors.New("invalid reference exchange rate")
	ErrInvalidCashRate = errors.New("invalid asset cash rate")
)

// ETHRate is a currency's exchange rate against the reference unit
// together with its risk adjustment percentages. Buffer marks up
// debt (>= 100), Haircut marks down collateral (<= 100) and
// LiquidationDiscount (> 100) is the bonus basis granted to a
// liquidator purchasing this currency.
type ETHRate struct {
	// RateDecimals is the scaling of Rate, e.g. 1e18.
	RateDecimals *num.Int
	// Rate is the reference units received for one unit of the
	// currency, scaled by RateDecimals.
	Rate                *num.Int
	Buffer              uint64
	Haircut             uint64
	LiquidationDiscount uint64
}

// Validate checks the governance ordering constraints on the rate.
func (r *ETHRate) Validate() error {
	if r == nil || r.Rate == nil || !r.Rate.IsPositive() ||
		r.RateDecimals == nil || !r.RateDecimals.IsPositive() {
		return ErrInvalidETHRate
	}
	if r.Buffer < 100 || r.Haircut > 100 || r.LiquidationDiscount <= 100 {
		return ErrInvalidETHRate
	}
	return nil
}

// ConvertETHTo converts a reference-unit balance into this currency,
// with no buffer or haircut applied.
func (r *ETHRate) ConvertETHTo(ethBalance *num.Int) *num.Int {
	return num.MulDiv(ethBalance, r.RateDecimals, r.Rate)
}

// ConvertToETH converts a balance of this currency into the reference
// unit, with no buffer or haircut applied.
func (r *ETHRate) ConvertToETH(balance *num.Int) *num.Int {
	return num.MulDiv(balance, r.Rate, r.RateDecimals)
}

// ExchangeRate returns the units of the quote currency received for
// one unit of the base currency, scaled by the base currency's rate
// decimals.
func ExchangeRate(base, quote *ETHRate) *num.Int {
	return num.MulDiv(base.Rate, quote.RateDecimals, quote.Rate)
}

// CashRate converts between asset cash (the interest bearing cash
// balance held internally) and its underlying denomination. Rate is
// scaled by RatePrecision, it grows over time as interest accrues.
type CashRate struct {
	Rate *num.Int
}

func (c *CashRate) Validate() error {
	if c == nil || c.Rate == nil || !c.Rate.IsPositive() {
		return ErrInvalidCashRate
	}
	return nil
}

// ConvertToUnderlying converts an asset cash balance to underlying.
func (c *CashRate) ConvertToUnderlying(assetCash *num.Int) *num.Int {
	return num.MulDiv(assetCash, c.Rate, RatePrecision)
}

// ConvertFromUnderlying converts an underlying balance to asset cash.
func (c *CashRate) ConvertFromUnderlying(underlying *num.Int) *num.Int {
	return num.MulDiv(underlying, RatePrecision, c.Rate)
}
