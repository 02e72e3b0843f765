package liquidation

import (
	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"
	"code.tenorprotocol.io/tenor/logging"
)

// liquidateLocalCurrency cures a shortfall using assets denominated
// in the debt's own currency: liquidity token claims first, then the
// account's nToken holding. Returns the net local asset cash owed by
// the liquidator, negative when the repo incentive means the account
// owes the liquidator instead.
func (e *Engine) liquidateLocalCurrency(
	factors *types.LiquidationFactors,
	portfolio *types.PortfolioState,
	balance *types.BalanceState,
	maxNTokenLiquidation *num.Int,
) (*num.Int, error) {
	if factors.LocalAssetAvailable.IsZero() {
		return nil, ErrNoBalanceToLiquidate
	}

	requiredUnderlying, err := localLiquidationUnderlyingRequired(factors)
	if err != nil {
		return nil, err
	}
	benefitRequired := factors.LocalCashRate.ConvertFromUnderlying(requiredUnderlying)
	netFromLiquidator := num.IntZero()

	res := &withdrawResult{
		remaining:     benefitRequired,
		cashClaimed:   num.IntZero(),
		fCashClaimed:  num.IntZero(),
		incentivePaid: num.IntZero(),
	}
	if factors.CashGroup != nil {
		if err := factors.CashGroup.Validate(); err != nil {
			return nil, err
		}
		res, err = e.withdrawLiquidityTokens(factors, portfolio, benefitRequired,
			factors.LocalCurrency, factors.CashGroup.LiquidityTokenHaircut, e.cfg.TokenRepoIncentive)
		if err != nil {
			return nil, err
		}
	}
	benefitRequired = res.remaining
	if res.cashClaimed.IsPositive() {
		// withdrawn cash goes to the account, the incentive cut to
		// the liquidator
		balance.NetCashChange.Add(res.cashClaimed.Clone().Sub(res.incentivePaid))
		balance.LiquidityCashWithdrawn.Add(res.cashClaimed)
		balance.LiquidityfCashWithdrawn.Add(res.fCashClaimed)
		netFromLiquidator.Sub(res.incentivePaid)
	}

	if benefitRequired.IsPositive() &&
		factors.NTokenHaircutAssetValue != nil && factors.NTokenHaircutAssetValue.IsPositive() &&
		balance.StoredNTokenBalance.IsPositive() {
		nTokenPayment, err := e.liquidateLocalNTokens(factors, balance, benefitRequired, maxNTokenLiquidation)
		if err != nil {
			return nil, err
		}
		netFromLiquidator.Add(nTokenPayment)
	}

	if balance.NetNTokenTransfer.IsZero() && res.cashClaimed.IsZero() {
		return nil, ErrNothingLiquidated
	}

	if e.log.IsDebug() {
		e.log.Debug("local currency liquidation computed",
			logging.String("account", factors.Account),
			logging.Uint64("currency", uint64(factors.LocalCurrency)),
			logging.Stringer("net-from-liquidator", netFromLiquidator),
			logging.Stringer("ntoken-transfer", balance.NetNTokenTransfer),
		)
	}
	return netFromLiquidator, nil
}

// liquidateLocalNTokens solves the closed form for the nToken amount
// whose haircut gap covers the remaining requirement.
//
// The snapshot values the holding at the PV haircut:
//
//	haircutAssetValue = balance * pvHaircut/100 * assetPVPerToken
//
// so the benefit of transferring n tokens priced at the liquidation
// haircut is
//
//	benefit = n * (liquidationHaircut - pvHaircut)/pvHaircut * haircutAssetValue/balance
//	=> n = benefit * pvHaircut * balance / ((liquidationHaircut - pvHaircut) * haircutAssetValue)
//
// and the liquidator pays
//
//	payment = n * liquidationHaircut * haircutAssetValue / (pvHaircut * balance)
func (e *Engine) liquidateLocalNTokens(
	factors *types.LiquidationFactors,
	balance *types.BalanceState,
	benefitRequired, maxNTokenLiquidation *num.Int,
) (*num.Int, error) {
	if err := factors.NToken.Validate(); err != nil {
		return nil, err
	}
	pvHaircut := num.NewInt(int64(factors.NToken.PVHaircut))
	liqHaircut := num.NewInt(int64(factors.NToken.LiquidationHaircut))
	haircutGap := liqHaircut.Clone().Sub(pvHaircut)

	nTokensToLiquidate := num.MulDiv(
		benefitRequired.Clone().Mul(pvHaircut),
		balance.StoredNTokenBalance,
		haircutGap.Clone().Mul(factors.NTokenHaircutAssetValue),
	)
	nTokensToLiquidate = e.calculateLiquidationAmount(
		nTokensToLiquidate, balance.StoredNTokenBalance, maxNTokenLiquidation)
	if !nTokensToLiquidate.IsPositive() {
		return num.IntZero(), nil
	}

	balance.NetNTokenTransfer.Sub(nTokensToLiquidate)

	payment := num.MulDiv(
		nTokensToLiquidate.Clone().Mul(liqHaircut),
		factors.NTokenHaircutAssetValue,
		pvHaircut.Clone().Mul(balance.StoredNTokenBalance),
	)
	balance.NetCashChange.Add(payment)
	return payment, nil
}
