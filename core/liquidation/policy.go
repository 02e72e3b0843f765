package liquidation

import (
	"code.tenorprotocol.io/tenor/libs/num"
)

// calculateLiquidationAmount applies the three-way cap used for every
// "how much may be sold" decision. The liquidator may always take the
// default portion of maxAvailable even when less is required, the
// result never exceeds maxAvailable, and a positive callerMax caps it
// further (a non-positive callerMax means no caller cap).
//
//	result = min(max(required, portion*maxAvailable), maxAvailable, callerMax)
//
// All quantities are non-negative on entry.
func (e *Engine) calculateLiquidationAmount(required, maxAvailable, callerMax *num.Int) *num.Int {
	if !maxAvailable.IsPositive() {
		return num.IntZero()
	}
	defaultAmount := pctMul(maxAvailable, e.cfg.DefaultLiquidationPortion)

	result := required.Clone()
	if result.LT(defaultAmount) {
		result = defaultAmount
	}
	if result.GT(maxAvailable) {
		result = maxAvailable.Clone()
	}
	if callerMax != nil && callerMax.IsPositive() && result.GT(callerMax) {
		result = callerMax.Clone()
	}
	return result
}

var hundred = num.NewInt(100)

// pctMul returns x * pct / 100 without mutating x.
func pctMul(x *num.Int, pct uint64) *num.Int {
	return num.MulDiv(x, num.NewInt(int64(pct)), hundred)
}

// pctDiv returns x * 100 / pct without mutating x.
func pctDiv(x *num.Int, pct uint64) *num.Int {
	return num.MulDiv(x, hundred, num.NewInt(int64(pct)))
}
