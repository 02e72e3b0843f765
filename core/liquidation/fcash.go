package liquidation

import (
	"math"

	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"
	"code.tenorprotocol.io/tenor/logging"
)

// fCashContext carries the working state of a fixed-term liquidation
// across maturities. Available amounts are mutated as each maturity is
// processed so later maturities see the effect of earlier purchases.
type fCashContext struct {
	factors *types.LiquidationFactors

	// benefitRequired is the outstanding requirement, in underlying of
	// the benefit currency (local for the local path, collateral for
	// the cross-currency path).
	benefitRequired *num.Int
	// localCashFromLiquidator accumulates the net local cash the
	// liquidator owes across maturities: underlying on the local path
	// (converted to asset cash once at the end), asset cash on the
	// cross-currency path where localToPurchase already prices in
	// asset terms.
	localCashFromLiquidator *num.Int
	// transfers holds one signed notional per requested maturity,
	// positive when the position moves from the account to the
	// liquidator.
	transfers []*num.Int
}

// fCashDiscounts returns the risk-adjusted and liquidation discount
// factors for a maturity, both scaled by RatePrecision.
//
// Credit positions are discounted above the oracle rate, debt below
// it, and the liquidation adjustment always sits strictly inside the
// risk adjustment. The gap between the two factors is the
// free-collateral benefit of moving one unit of notional at the
// liquidation price.
func fCashDiscounts(cg *types.CashGroup, maturity uint64, blockTime int64, debt bool) (riskDF, liqDF *num.Int, err error) {
	oracleRate, err := cg.OracleRate(maturity)
	if err != nil {
		return nil, nil, err
	}
	timeToMaturity := int64(maturity) - blockTime
	if timeToMaturity < 0 {
		timeToMaturity = 0
	}

	if debt {
		riskRate := num.SubToZero(oracleRate, num.NewInt(int64(cg.DebtBufferBP)).Mul(types.BasisPoint))
		liqRate := num.SubToZero(oracleRate, num.NewInt(int64(cg.LiquidationDebtBufferBP)).Mul(types.BasisPoint))
		return discountFactor(riskRate, timeToMaturity), discountFactor(liqRate, timeToMaturity), nil
	}
	riskRate := oracleRate.Clone().Add(num.NewInt(int64(cg.FCashHaircutBP)).Mul(types.BasisPoint))
	liqRate := oracleRate.Clone().Add(num.NewInt(int64(cg.LiquidationfCashHaircutBP)).Mul(types.BasisPoint))
	return discountFactor(riskRate, timeToMaturity), discountFactor(liqRate, timeToMaturity), nil
}

// discountFactor returns exp(-rate * t / year) scaled by
// RatePrecision. Continuous compounding keeps the factor monotonic in
// both rate and time, so the liquidation/risk ordering established on
// the rates survives the transform.
func discountFactor(annualRate *num.Int, timeToMaturity int64) *num.Int {
	rate := num.DecimalFromInt(annualRate).Div(num.DecimalFromInt(types.RatePrecision))
	years := float64(timeToMaturity) / float64(types.SecondsPerYear)
	df := num.DecimalFromFloat(math.Exp(-rate.InexactFloat64() * years))
	out, _ := num.IntFromDecimal(df.Mul(num.DecimalFromInt(types.RatePrecision)))
	return out
}

// liquidatefCashLocal transfers fixed-term positions in the debt's own
// currency at their liquidation price. Credits are bought below par by
// the liquidator, debts are assumed by the liquidator against the
// account's positive cash.
func (e *Engine) liquidatefCashLocal(
	factors *types.LiquidationFactors,
	portfolio *types.PortfolioState,
	balance *types.BalanceState,
	blockTime int64,
	maturities []uint64,
	maxAmounts []*num.Int,
) (*fCashContext, error) {
	if factors.CashGroup == nil {
		return nil, types.ErrInvalidCashGroup
	}
	if err := factors.CashGroup.Validate(); err != nil {
		return nil, err
	}

	requiredUnderlying, err := localLiquidationUnderlyingRequired(factors)
	if err != nil {
		return nil, err
	}
	c := &fCashContext{
		factors:                 factors,
		benefitRequired:         requiredUnderlying,
		localCashFromLiquidator: num.IntZero(),
		transfers:               make([]*num.Int, len(maturities)),
	}

	// cash the account can surrender when the liquidator assumes debt,
	// in underlying, tracked as a running balance across maturities
	availableCash := factors.LocalCashRate.ConvertToUnderlying(balance.StoredCashBalance)

	for i, maturity := range maturities {
		c.transfers[i] = num.IntZero()
		if !c.benefitRequired.IsPositive() {
			continue
		}
		notional := portfolio.FCashNotional(factors.LocalCurrency, maturity)
		if notional.IsZero() {
			continue
		}
		debt := notional.IsNegative()

		riskDF, liqDF, err := fCashDiscounts(factors.CashGroup, maturity, blockTime, debt)
		if err != nil {
			return nil, err
		}
		// a collapsed discount spread means no transfer amount can
		// benefit both sides, matching the cross-currency divisor check
		benefitPerUnit := liqDF.Clone().Sub(riskDF).Abs()
		if benefitPerUnit.IsZero() {
			return nil, ErrNoProfitableLiquidation
		}

		fCashAmount := num.MulDiv(c.benefitRequired, types.RatePrecision, benefitPerUnit)
		fCashAmount = e.calculateLiquidationAmount(fCashAmount, notional.Abs(), maxAmounts[i])
		cashUnderlying := num.MulDiv(fCashAmount, liqDF, types.RatePrecision)

		if debt {
			// the account pays the liquidator for taking the debt, it
			// can only spend cash it actually holds
			if cashUnderlying.GT(availableCash) {
				if !availableCash.IsPositive() {
					return nil, ErrInsufficientLocalCash
				}
				fCashAmount = num.MulDiv(fCashAmount, availableCash, cashUnderlying)
				cashUnderlying = availableCash.Clone()
			}
			availableCash = num.SubToZero(availableCash, cashUnderlying)
			c.localCashFromLiquidator.Sub(cashUnderlying)
			c.transfers[i] = fCashAmount.Neg()
			portfolio.AddFCash(factors.LocalCurrency, maturity, fCashAmount)
		} else {
			availableCash.Add(cashUnderlying)
			c.localCashFromLiquidator.Add(cashUnderlying)
			c.transfers[i] = fCashAmount.Clone()
			portfolio.AddFCash(factors.LocalCurrency, maturity, fCashAmount.Neg())
		}
		c.benefitRequired = num.SubToZero(c.benefitRequired,
			num.MulDiv(fCashAmount, benefitPerUnit, types.RatePrecision))

		if e.log.IsDebug() {
			e.log.Debug("fixed-term local liquidation leg",
				logging.Uint64("maturity", maturity),
				logging.Stringer("fcash-transfer", c.transfers[i]),
				logging.Stringer("cash-underlying", cashUnderlying),
			)
		}
	}

	if c.localCashFromLiquidator.IsZero() && transfersAllZero(c.transfers) {
		return nil, ErrNothingLiquidated
	}
	netAsset := factors.LocalCashRate.ConvertFromUnderlying(c.localCashFromLiquidator)
	balance.NetCashChange.Add(netAsset)
	return c, nil
}

// liquidatefCashCrossCurrency sells the account's fixed-term credits
// in the collateral currency against its local debt. Only positive
// notionals are eligible, a cross-currency debt cannot secure anything.
func (e *Engine) liquidatefCashCrossCurrency(
	factors *types.LiquidationFactors,
	portfolio *types.PortfolioState,
	blockTime int64,
	maturities []uint64,
	maxAmounts []*num.Int,
) (*fCashContext, error) {
	if !factors.LocalAssetAvailable.IsNegative() {
		return nil, ErrNoLocalDebt
	}
	if factors.CashGroup == nil {
		return nil, types.ErrInvalidCashGroup
	}
	if err := factors.CashGroup.Validate(); err != nil {
		return nil, err
	}

	benefit, discount := crossCurrencyBenefitAndDiscount(factors)
	c := &fCashContext{
		factors:                 factors,
		benefitRequired:         benefit,
		localCashFromLiquidator: num.IntZero(),
		transfers:               make([]*num.Int, len(maturities)),
	}

	buffer := num.NewInt(int64(factors.LocalETHRate.Buffer))
	haircut := num.NewInt(int64(factors.CollateralETHRate.Haircut))
	discountI := num.NewInt(int64(discount))

	for i, maturity := range maturities {
		c.transfers[i] = num.IntZero()
		if !c.benefitRequired.IsPositive() || !c.factors.CollateralAssetAvailable.IsPositive() {
			continue
		}
		notional := portfolio.FCashNotional(factors.CollateralCurrency, maturity)
		if !notional.IsPositive() {
			continue
		}

		riskDF, liqDF, err := fCashDiscounts(factors.CashGroup, maturity, blockTime, false)
		if err != nil {
			return nil, err
		}

		// Selling x notional at the liquidation price repays
		// x*liqDF/discount of buffered local debt and gives up
		// x*riskDF of haircut collateral value:
		//
		//	benefit = x*liqDF*buffer/discount - x*riskDF*haircut/100
		//	=> x = benefit * 100 * discount / (liqDF*buffer*100 - riskDF*haircut*discount)
		//
		// with the discount factors carrying an extra RatePrecision.
		divisor := liqDF.Clone().Mul(buffer).Mul(hundred).Sub(
			riskDF.Clone().Mul(haircut).Mul(discountI))
		if !divisor.IsPositive() {
			return nil, ErrNoProfitableLiquidation
		}
		fCashAmount := c.benefitRequired.Clone().Mul(hundred).Mul(discountI).Mul(types.RatePrecision).Div(divisor)
		fCashAmount = e.calculateLiquidationAmount(fCashAmount, notional, maxAmounts[i])

		fCashAmount, localAsset, err := e.limitPurchaseByAvailableAmounts(c, discount, riskDF, liqDF, fCashAmount)
		if err != nil {
			return nil, err
		}
		if !fCashAmount.IsPositive() {
			continue
		}

		c.localCashFromLiquidator.Add(localAsset)
		c.transfers[i] = fCashAmount.Clone()
		portfolio.AddFCash(factors.CollateralCurrency, maturity, fCashAmount.Neg())
		c.benefitRequired = num.SubToZero(c.benefitRequired,
			num.MulDiv(fCashAmount, liqDF, types.RatePrecision))

		if e.log.IsDebug() {
			e.log.Debug("fixed-term cross-currency liquidation leg",
				logging.Uint64("maturity", maturity),
				logging.Stringer("fcash-transfer", c.transfers[i]),
				logging.Stringer("local-asset", localAsset),
			)
		}
	}

	if transfersAllZero(c.transfers) {
		return nil, ErrNothingLiquidated
	}
	return c, nil
}

// limitPurchaseByAvailableAmounts caps a cross-currency fixed-term
// purchase against both sides of the trade and rolls the effect into
// the working factors so the next maturity prices against the reduced
// availability.
//
// The collateral given up is the credit's risk-adjusted value, it may
// not exceed what the account has available. The local side is capped
// through localToPurchase so the debt is never overpaid, and any
// reduction there scales the notional back proportionally.
func (e *Engine) limitPurchaseByAvailableAmounts(
	c *fCashContext,
	discount uint64,
	riskDF, liqDF, fCashAmount *num.Int,
) (*num.Int, *num.Int, error) {
	riskAdjustedPV := num.MulDiv(fCashAmount, riskDF, types.RatePrecision)
	collateralAvailablePV := c.factors.CollateralCashRate.ConvertToUnderlying(c.factors.CollateralAssetAvailable)
	if riskAdjustedPV.GT(collateralAvailablePV) {
		fCashAmount = num.MulDiv(fCashAmount, collateralAvailablePV, riskAdjustedPV)
		riskAdjustedPV = collateralAvailablePV
	}

	liquidationPV := num.MulDiv(fCashAmount, liqDF, types.RatePrecision)
	limited, localAsset := localToPurchase(c.factors, discount, liquidationPV, fCashAmount)
	if limited.LT(fCashAmount) {
		riskAdjustedPV = num.MulDiv(riskAdjustedPV, limited, fCashAmount)
		fCashAmount = limited
	}

	c.factors.CollateralAssetAvailable.Sub(
		c.factors.CollateralCashRate.ConvertFromUnderlying(riskAdjustedPV))
	c.factors.LocalAssetAvailable.Add(localAsset)
	return fCashAmount, localAsset, nil
}

func transfersAllZero(transfers []*num.Int) bool {
	for _, t := range transfers {
		if !t.IsZero() {
			return false
		}
	}
	return true
}
