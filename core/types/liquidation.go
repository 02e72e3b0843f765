package types

import (
	"errors"

	"code.tenorprotocol.io/tenor/libs/num"
)

var ErrInvalidLiquidationFactors = errors.New("invalid liquidation factors")

// LiquidationFactors is the free-collateral snapshot a valuation
// service resolves for one liquidation call. It is never persisted,
// the engine is a pure function over it. Available values are in each
// currency's own asset cash units, NetETHValue is the aggregate
// risk-adjusted collateral in the reference unit and is negative for
// as long as liquidation is permitted.
type LiquidationFactors struct {
	Account            string
	LocalCurrency      uint32
	CollateralCurrency uint32

	NetETHValue              *num.Int
	LocalAssetAvailable      *num.Int
	CollateralAssetAvailable *num.Int

	LocalETHRate       *ETHRate
	CollateralETHRate  *ETHRate
	LocalCashRate      *CashRate
	CollateralCashRate *CashRate

	// CashGroup prices the fixed-term positions being liquidated: the
	// local currency's group on the local paths, the collateral
	// currency's group on the cross-currency paths.
	CashGroup *CashGroup

	// NTokenHaircutAssetValue is the account's nToken holding valued
	// at the PV haircut, in asset cash of the nToken's currency.
	NTokenHaircutAssetValue *num.Int
	NToken                  NTokenParameters

	// IsCalculation marks a dry-run quote, market pool state must not
	// be mutated.
	IsCalculation bool
}

// Validate checks the snapshot is internally usable. It does not
// check liquidation eligibility, the engine owns that precondition.
func (f *LiquidationFactors) Validate() error {
	if f == nil || f.Account == "" || f.LocalCurrency == 0 {
		return ErrInvalidLiquidationFactors
	}
	if f.NetETHValue == nil || f.LocalAssetAvailable == nil {
		return ErrInvalidLiquidationFactors
	}
	if err := f.LocalETHRate.Validate(); err != nil {
		return err
	}
	if err := f.LocalCashRate.Validate(); err != nil {
		return err
	}
	if f.CollateralCurrency != 0 {
		if f.CollateralAssetAvailable == nil {
			return ErrInvalidLiquidationFactors
		}
		if err := f.CollateralETHRate.Validate(); err != nil {
			return err
		}
		if err := f.CollateralCashRate.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LiquidationResult is the full set of signed deltas one liquidation
// call produces. The caller applies them to persistent balances and
// portfolios atomically, the engine itself never writes state.
type LiquidationResult struct {
	Account            string
	LocalCurrency      uint32
	CollateralCurrency uint32

	// NetLocalFromLiquidator is the local currency asset cash the
	// liquidator owes (positive) or is owed (negative).
	NetLocalFromLiquidator *num.Int

	// FCashMaturities and FCashTransfers are parallel, one signed
	// notional transfer per caller-specified maturity.
	FCashMaturities []uint64
	FCashTransfers  []*num.Int

	LocalBalance      *BalanceState
	CollateralBalance *BalanceState
	Portfolio         *PortfolioState

	// Pass-through finalisation flags for the collateral path.
	WithdrawCollateral bool
	RedeemToUnderlying bool
}
