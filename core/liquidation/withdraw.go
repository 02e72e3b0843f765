package liquidation

import (
	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"
	"code.tenorprotocol.io/tenor/logging"
)

// withdrawResult accumulates what a liquidity withdrawal pass
// realised, all in asset cash of the withdrawn currency.
type withdrawResult struct {
	// remaining is the benefit still required after the pass.
	remaining *num.Int
	// cashClaimed is the total asset cash returned from the pools.
	cashClaimed *num.Int
	// fCashClaimed is the total fCash credited back to the portfolio.
	fCashClaimed *num.Int
	// incentivePaid is the repo incentive owed to the liquidator.
	incentivePaid *num.Int
}

// withdrawLiquidityTokens walks the account's liquidity token
// positions in the given currency, longest maturity first, burning
// tokens until the required benefit is met or the positions run out.
//
// The contribution of burning tokens with cash claim c is
//
//	netCashIncrease = c * (100 - haircut) / 100
//	contribution    = netCashIncrease - netCashIncrease * incentive / 100
//
// On the local-currency path the haircut gap on the claim is the
// free-collateral benefit and the liquidator is paid the repo
// incentive cut. On the collateral path the claim is withdrawn at
// face value, both percentages are zero there.
//
// A position whose full contribution is no more than the remaining
// requirement is burned entirely. Otherwise a proportional fraction
// sized to the requirement is burned and the position's notional
// updated in place:
//
//	tokensToRemove = tokens * remaining / contribution
//
// Pool state is only mutated for a real liquidation, a dry-run quote
// (IsCalculation) prices against an untouched pool.
func (e *Engine) withdrawLiquidityTokens(
	factors *types.LiquidationFactors,
	portfolio *types.PortfolioState,
	benefitRequired *num.Int,
	currencyID uint32,
	haircut, incentivePct uint64,
) (*withdrawResult, error) {
	res := &withdrawResult{
		remaining:     benefitRequired.Clone(),
		cashClaimed:   num.IntZero(),
		fCashClaimed:  num.IntZero(),
		incentivePaid: num.IntZero(),
	}
	cg := factors.CashGroup

	for _, asset := range portfolio.LiquidityTokens(currencyID) {
		if !res.remaining.IsPositive() {
			break
		}
		market, err := cg.Market(asset.Maturity)
		if err != nil {
			return nil, err
		}

		cashClaim, _, err := market.CashClaims(asset.Notional)
		if err != nil {
			return nil, err
		}
		netCashIncrease := pctMul(cashClaim, 100-haircut)
		contribution := netCashIncrease.Clone().Sub(pctMul(netCashIncrease, incentivePct))
		if !contribution.IsPositive() {
			continue
		}

		tokensToRemove := asset.Notional.Clone()
		if contribution.GT(res.remaining) {
			// partial burn sized to exactly satisfy the requirement
			tokensToRemove = num.MulDiv(tokensToRemove, res.remaining, contribution)
		}

		var cash, fCash *num.Int
		if factors.IsCalculation {
			cash, fCash, err = market.CashClaims(tokensToRemove)
		} else {
			cash, fCash, err = market.RemoveLiquidity(tokensToRemove)
		}
		if err != nil {
			return nil, err
		}

		realisedIncrease := pctMul(cash, 100-haircut)
		realisedIncentive := pctMul(realisedIncrease, incentivePct)

		if tokensToRemove.EQ(asset.Notional) {
			portfolio.Remove(asset)
			res.remaining = num.SubToZero(res.remaining, realisedIncrease.Clone().Sub(realisedIncentive))
		} else {
			portfolio.ReduceNotional(asset, tokensToRemove)
			res.remaining = num.IntZero()
		}
		portfolio.AddFCash(currencyID, asset.Maturity, fCash)

		res.cashClaimed.Add(cash)
		res.fCashClaimed.Add(fCash)
		res.incentivePaid.Add(realisedIncentive)

		if e.log.IsDebug() {
			e.log.Debug("liquidity token withdrawal",
				logging.Uint64("maturity", asset.Maturity),
				logging.Stringer("tokens-removed", tokensToRemove),
				logging.Stringer("cash-claim", cash),
				logging.Stringer("fcash-claim", fCash),
				logging.Stringer("incentive", realisedIncentive),
			)
		}
	}
	return res, nil
}
