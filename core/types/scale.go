package types

import (
	"code.tenorprotocol.io/tenor/libs/num"
)

// Internal fixed point bases. Balances, notionals and cash claims are
// held at BalancePrecision, rates and discount factors at
// RatePrecision. Risk percentages (buffers, haircuts, discounts) sit
// on a 100 basis, interest haircuts and buffers are expressed in
// basis points of the rate basis.
var (
	BalancePrecision = num.NewInt(100_000_000)
	RatePrecision    = num.NewInt(1_000_000_000)
	PercentBasis     = num.NewInt(100)
	BasisPoint       = num.NewInt(100_000)
)

// SecondsPerYear is the annualisation basis for oracle rates.
const SecondsPerYear int64 = 31_536_000
