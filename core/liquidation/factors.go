package liquidation

import (
	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"
)

// localLiquidationUnderlyingRequired computes the local-underlying
// benefit needed to neutralise the shortfall when debt and collateral
// sit in the same currency.
//
// When the local currency itself is in debt the requirement is the
// debt, directly. Otherwise only the haircut gap on local collateral
// can improve free collateral, so the aggregate reference shortfall
// is converted to local terms and grossed up by the haircut:
//
//	required = convertETHTo(-netETHValue) * 100 / multiplier
//
// with multiplier the haircut for positive local value and the buffer
// for anything else. A zero multiplier is a governance configuration
// under which liquidating this currency cannot move free collateral.
func localLiquidationUnderlyingRequired(factors *types.LiquidationFactors) (*num.Int, error) {
	if factors.LocalAssetAvailable.IsNegative() {
		return factors.LocalCashRate.ConvertToUnderlying(factors.LocalAssetAvailable.Neg()), nil
	}

	multiplier := factors.LocalETHRate.Buffer
	if factors.LocalAssetAvailable.IsPositive() {
		multiplier = factors.LocalETHRate.Haircut
	}
	if multiplier == 0 {
		return nil, ErrZeroRateMultiplier
	}

	localShortfall := factors.LocalETHRate.ConvertETHTo(factors.NetETHValue.Neg())
	return pctDiv(localShortfall, multiplier), nil
}

// crossCurrencyBenefitAndDiscount converts the reference shortfall
// into collateral underlying terms and picks the liquidation discount
// for the pair, the larger of the two currencies' configured
// discounts since the liquidator wears exchange risk on both legs.
func crossCurrencyBenefitAndDiscount(factors *types.LiquidationFactors) (*num.Int, uint64) {
	benefit := factors.CollateralETHRate.ConvertETHTo(factors.NetETHValue.Neg())
	discount := factors.LocalETHRate.LiquidationDiscount
	if factors.CollateralETHRate.LiquidationDiscount > discount {
		discount = factors.CollateralETHRate.LiquidationDiscount
	}
	return benefit, discount
}

// localToPurchase prices a present value amount of collateral in
// local currency at the given discount and caps the purchase so the
// local debt is never overpaid.
//
//	localUnderlying = collateralPV * 100 * localRateDecimals / (exchangeRate(local, collateral) * discount)
//
// When the priced local amount would push the local available value
// past zero, both the collateral sold and the local amount are scaled
// back proportionally so local available lands exactly at zero.
// Returns the (possibly reduced) collateral asset amount to sell and
// the local asset cash owed by the liquidator.
func localToPurchase(factors *types.LiquidationFactors, discount uint64, collateralUnderlyingPV, collateralAssetToSell *num.Int) (*num.Int, *num.Int) {
	crossRate := types.ExchangeRate(factors.LocalETHRate, factors.CollateralETHRate)
	localUnderlying := num.MulDiv(
		collateralUnderlyingPV.Clone().Mul(hundred),
		factors.LocalETHRate.RateDecimals,
		crossRate.Mul(num.NewInt(int64(discount))),
	)
	localAsset := factors.LocalCashRate.ConvertFromUnderlying(localUnderlying)

	maxLocalAsset := factors.LocalAssetAvailable.Neg()
	if localAsset.GT(maxLocalAsset) {
		collateralAssetToSell = num.MulDiv(collateralAssetToSell, maxLocalAsset, localAsset)
		localAsset = maxLocalAsset
	}
	return collateralAssetToSell.Clone(), localAsset
}
