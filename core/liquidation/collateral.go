package liquidation

import (
	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"
	"code.tenorprotocol.io/tenor/logging"
)

// liquidateCollateralCurrency cures a local-currency debt by selling
// collateral denominated in another currency, draining the account's
// cash balance, liquidity token claims and nTokens in that fixed
// preference order. Returns the local asset cash the liquidator must
// supply in exchange for the raised collateral.
func (e *Engine) liquidateCollateralCurrency(
	factors *types.LiquidationFactors,
	portfolio *types.PortfolioState,
	balance *types.BalanceState,
	maxCollateralLiquidation, maxNTokenLiquidation *num.Int,
) (*num.Int, *num.Int, error) {
	if !factors.LocalAssetAvailable.IsNegative() {
		return nil, nil, ErrNoLocalDebt
	}
	if !factors.CollateralAssetAvailable.IsPositive() {
		return nil, nil, ErrNoCollateralAvailable
	}

	requiredCollateral, localFromLiquidator, discount, err := e.collateralToRaise(factors, maxCollateralLiquidation)
	if err != nil {
		return nil, nil, err
	}

	remaining := requiredCollateral.Clone()
	raised := num.IntZero()

	// stored cash balance first
	if balance.StoredCashBalance.IsPositive() {
		cashPortion := num.MinI(remaining, balance.StoredCashBalance).Clone()
		balance.NetCashChange.Sub(cashPortion)
		remaining.Sub(cashPortion)
		raised.Add(cashPortion)
	}

	// then liquidity token cash claims, at face value
	if remaining.IsPositive() && factors.CashGroup != nil {
		if err := factors.CashGroup.Validate(); err != nil {
			return nil, nil, err
		}
		res, err := e.withdrawLiquidityTokens(factors, portfolio, remaining,
			factors.CollateralCurrency, 0, 0)
		if err != nil {
			return nil, nil, err
		}
		balance.LiquidityCashWithdrawn.Add(res.cashClaimed)
		balance.LiquidityfCashWithdrawn.Add(res.fCashClaimed)
		remaining = res.remaining
		raised.Add(res.cashClaimed)
	}

	// finally nTokens
	if remaining.IsPositive() &&
		factors.NTokenHaircutAssetValue != nil && factors.NTokenHaircutAssetValue.IsPositive() &&
		balance.StoredNTokenBalance.IsPositive() {
		nTokenValue, err := e.liquidateCollateralNTokens(factors, balance, remaining, maxNTokenLiquidation)
		if err != nil {
			return nil, nil, err
		}
		remaining = num.SubToZero(remaining, nTokenValue)
		raised.Add(nTokenValue)
	}

	if !raised.IsPositive() {
		return nil, nil, ErrNothingLiquidated
	}

	// proportional remainder arithmetic can leave the realised
	// collateral short of the target, reprice the local leg against
	// what was actually raised
	if raised.LT(requiredCollateral) {
		raisedPV := factors.CollateralCashRate.ConvertToUnderlying(raised)
		raised, localFromLiquidator = localToPurchase(factors, discount, raisedPV, raised)
	}

	if e.log.IsDebug() {
		e.log.Debug("collateral currency liquidation computed",
			logging.String("account", factors.Account),
			logging.Uint64("local-currency", uint64(factors.LocalCurrency)),
			logging.Uint64("collateral-currency", uint64(factors.CollateralCurrency)),
			logging.Stringer("collateral-raised", raised),
			logging.Stringer("local-from-liquidator", localFromLiquidator),
		)
	}
	return localFromLiquidator, raised, nil
}

// collateralToRaise inverts the free-collateral identity to find the
// collateral amount whose sale cures the shortfall.
//
// Selling collateral x nets the account localPurchased = x / (exRate
// * discount) of local currency. The benefit, in collateral terms, is
// the buffered debt repaid minus the haircut collateral given up:
//
//	shortfall = x * buffer/discount - x * haircut
//	=> x = shortfall * discount * 100 / (buffer*100 - haircut*discount)
//
// The result is capped by the policy against the collateral available
// and the caller's maximum, then priced via localToPurchase.
func (e *Engine) collateralToRaise(
	factors *types.LiquidationFactors,
	maxCollateralLiquidation *num.Int,
) (*num.Int, *num.Int, uint64, error) {
	shortfall, discount := crossCurrencyBenefitAndDiscount(factors)

	buffer := factors.LocalETHRate.Buffer
	haircut := factors.CollateralETHRate.Haircut
	denominator := int64(buffer*100) - int64(haircut*discount)
	if denominator <= 0 {
		return nil, nil, 0, ErrNoProfitableLiquidation
	}

	requiredUnderlying := num.MulDiv(
		shortfall,
		num.NewInt(int64(discount*100)),
		num.NewInt(denominator),
	)
	requiredCollateral := factors.CollateralCashRate.ConvertFromUnderlying(requiredUnderlying)
	requiredCollateral = e.calculateLiquidationAmount(
		requiredCollateral, factors.CollateralAssetAvailable, maxCollateralLiquidation)

	collateralPV := factors.CollateralCashRate.ConvertToUnderlying(requiredCollateral)
	requiredCollateral, localFromLiquidator := localToPurchase(factors, discount, collateralPV, requiredCollateral)
	return requiredCollateral, localFromLiquidator, discount, nil
}

// liquidateCollateralNTokens prices nTokens at the liquidation
// haircut to cover the remaining collateral requirement, the inverse
// of the relation used on the local path:
//
//	n = remaining * pvHaircut * balance / (liquidationHaircut * haircutAssetValue)
//
// Returns the collateral asset cash value of the transferred tokens.
func (e *Engine) liquidateCollateralNTokens(
	factors *types.LiquidationFactors,
	balance *types.BalanceState,
	remaining, maxNTokenLiquidation *num.Int,
) (*num.Int, error) {
	if err := factors.NToken.Validate(); err != nil {
		return nil, err
	}
	pvHaircut := num.NewInt(int64(factors.NToken.PVHaircut))
	liqHaircut := num.NewInt(int64(factors.NToken.LiquidationHaircut))

	nTokensToLiquidate := num.MulDiv(
		remaining.Clone().Mul(pvHaircut),
		balance.StoredNTokenBalance,
		liqHaircut.Clone().Mul(factors.NTokenHaircutAssetValue),
	)
	nTokensToLiquidate = num.MinI(nTokensToLiquidate, balance.StoredNTokenBalance).Clone()
	if maxNTokenLiquidation != nil && maxNTokenLiquidation.IsPositive() {
		nTokensToLiquidate = num.MinI(nTokensToLiquidate, maxNTokenLiquidation).Clone()
	}
	if !nTokensToLiquidate.IsPositive() {
		return num.IntZero(), nil
	}

	balance.NetNTokenTransfer.Sub(nTokensToLiquidate)

	value := num.MulDiv(
		nTokensToLiquidate.Clone().Mul(liqHaircut),
		factors.NTokenHaircutAssetValue,
		pvHaircut.Clone().Mul(balance.StoredNTokenBalance),
	)
	return value, nil
}
