package liquidation

import (
	"context"

	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"
	"code.tenorprotocol.io/tenor/logging"

	"github.com/pkg/errors"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/valuation_mock.go -package mocks code.tenorprotocol.io/tenor/core/liquidation Valuation

// Valuation resolves the free-collateral snapshot a liquidation call
// prices against. The engine never reads persistent state directly.
type Valuation interface {
	// LiquidationFactors returns the account's risk snapshot for the
	// currency pair, together with a working copy of its fixed-term
	// portfolio. A zero collateral currency requests the single
	// currency (local) variant.
	LiquidationFactors(ctx context.Context, account string, localCurrency, collateralCurrency uint32) (*types.LiquidationFactors, *types.PortfolioState, error)
	// BalanceState returns a working copy of the account's balance in
	// the given currency.
	BalanceState(ctx context.Context, account string, currencyID uint32) (*types.BalanceState, error)
}

// Engine computes liquidation transfer amounts. It is a pure pricing
// component: every call returns the signed deltas in a
// LiquidationResult and the caller applies them atomically, so a
// failed call leaves nothing to roll back.
type Engine struct {
	log *logging.Logger
	cfg Config
	val Valuation
}

// New returns a liquidation engine reading snapshots from the given
// valuation service.
func New(log *logging.Logger, cfg Config, val Valuation) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Engine{
		log: log,
		cfg: cfg,
		val: val,
	}, nil
}

// ReloadConf updates the engine configuration.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}
	if err := cfg.Validate(); err != nil {
		e.log.Error("invalid configuration on reload, keeping previous",
			logging.Error(err))
		return
	}
	e.cfg = cfg
}

// LiquidateLocalCurrency cures a shortfall with assets in the debt's
// own currency: liquidity token claims first, then nTokens. A positive
// maxNTokenLiquidation caps the nToken transfer.
func (e *Engine) LiquidateLocalCurrency(
	ctx context.Context,
	liquidator, account string,
	currencyID uint32,
	maxNTokenLiquidation *num.Int,
) (*types.LiquidationResult, error) {
	if err := checkParties(liquidator, account); err != nil {
		return nil, err
	}
	if currencyID == 0 {
		return nil, ErrInvalidCurrency
	}

	factors, portfolio, err := e.resolveFactors(ctx, account, currencyID, 0)
	if err != nil {
		return nil, err
	}
	balance, err := e.val.BalanceState(ctx, account, currencyID)
	if err != nil {
		return nil, errors.Wrap(err, "resolving balance state")
	}

	netFromLiquidator, err := e.liquidateLocalCurrency(factors, portfolio, balance, maxNTokenLiquidation)
	if err != nil {
		return nil, err
	}
	return &types.LiquidationResult{
		Account:                account,
		LocalCurrency:          currencyID,
		NetLocalFromLiquidator: netFromLiquidator,
		LocalBalance:           balance,
		Portfolio:              portfolio,
	}, nil
}

// LiquidateCollateralCurrency cures a local currency debt by selling
// the account's cash, liquidity token claims and nTokens in another
// currency. The caller can cap the collateral raised and the nToken
// transfer, and flag the raised collateral for withdrawal or
// redemption.
func (e *Engine) LiquidateCollateralCurrency(
	ctx context.Context,
	liquidator, account string,
	localCurrency, collateralCurrency uint32,
	maxCollateralLiquidation, maxNTokenLiquidation *num.Int,
	withdrawCollateral, redeemToUnderlying bool,
) (*types.LiquidationResult, error) {
	if err := checkParties(liquidator, account); err != nil {
		return nil, err
	}
	if localCurrency == 0 || collateralCurrency == 0 || localCurrency == collateralCurrency {
		return nil, ErrInvalidCurrency
	}

	factors, portfolio, err := e.resolveFactors(ctx, account, localCurrency, collateralCurrency)
	if err != nil {
		return nil, err
	}
	localBalance, err := e.val.BalanceState(ctx, account, localCurrency)
	if err != nil {
		return nil, errors.Wrap(err, "resolving local balance state")
	}
	collateralBalance, err := e.val.BalanceState(ctx, account, collateralCurrency)
	if err != nil {
		return nil, errors.Wrap(err, "resolving collateral balance state")
	}

	localFromLiquidator, _, err := e.liquidateCollateralCurrency(
		factors, portfolio, collateralBalance, maxCollateralLiquidation, maxNTokenLiquidation)
	if err != nil {
		return nil, err
	}
	localBalance.NetCashChange.Add(localFromLiquidator)

	return &types.LiquidationResult{
		Account:                account,
		LocalCurrency:          localCurrency,
		CollateralCurrency:     collateralCurrency,
		NetLocalFromLiquidator: localFromLiquidator,
		LocalBalance:           localBalance,
		CollateralBalance:      collateralBalance,
		Portfolio:              portfolio,
		WithdrawCollateral:     withdrawCollateral,
		RedeemToUnderlying:     redeemToUnderlying,
	}, nil
}

// LiquidatefCashLocal transfers fixed-term positions in the debt's own
// currency at their liquidation price. Maturities must be strictly
// descending, maxAmounts is parallel to maturities with one cap per
// position (zero means uncapped).
func (e *Engine) LiquidatefCashLocal(
	ctx context.Context,
	liquidator, account string,
	currencyID uint32,
	blockTime int64,
	maturities []uint64,
	maxAmounts []*num.Int,
) (*types.LiquidationResult, error) {
	if err := checkParties(liquidator, account); err != nil {
		return nil, err
	}
	if currencyID == 0 {
		return nil, ErrInvalidCurrency
	}
	if err := checkMaturities(maturities, maxAmounts); err != nil {
		return nil, err
	}

	factors, portfolio, err := e.resolveFactors(ctx, account, currencyID, 0)
	if err != nil {
		return nil, err
	}
	balance, err := e.val.BalanceState(ctx, account, currencyID)
	if err != nil {
		return nil, errors.Wrap(err, "resolving balance state")
	}

	c, err := e.liquidatefCashLocal(factors, portfolio, balance, blockTime, maturities, maxAmounts)
	if err != nil {
		return nil, err
	}
	return &types.LiquidationResult{
		Account:                account,
		LocalCurrency:          currencyID,
		NetLocalFromLiquidator: factors.LocalCashRate.ConvertFromUnderlying(c.localCashFromLiquidator),
		FCashMaturities:        maturities,
		FCashTransfers:         c.transfers,
		LocalBalance:           balance,
		Portfolio:              portfolio,
	}, nil
}

// LiquidatefCashCrossCurrency sells the account's fixed-term credits
// in the collateral currency against its local debt. Maturities must
// be strictly descending, maxAmounts parallel.
func (e *Engine) LiquidatefCashCrossCurrency(
	ctx context.Context,
	liquidator, account string,
	localCurrency, collateralCurrency uint32,
	blockTime int64,
	maturities []uint64,
	maxAmounts []*num.Int,
) (*types.LiquidationResult, error) {
	if err := checkParties(liquidator, account); err != nil {
		return nil, err
	}
	if localCurrency == 0 || collateralCurrency == 0 || localCurrency == collateralCurrency {
		return nil, ErrInvalidCurrency
	}
	if err := checkMaturities(maturities, maxAmounts); err != nil {
		return nil, err
	}

	factors, portfolio, err := e.resolveFactors(ctx, account, localCurrency, collateralCurrency)
	if err != nil {
		return nil, err
	}
	localBalance, err := e.val.BalanceState(ctx, account, localCurrency)
	if err != nil {
		return nil, errors.Wrap(err, "resolving local balance state")
	}

	c, err := e.liquidatefCashCrossCurrency(factors, portfolio, blockTime, maturities, maxAmounts)
	if err != nil {
		return nil, err
	}
	localBalance.NetCashChange.Add(c.localCashFromLiquidator)

	return &types.LiquidationResult{
		Account:                account,
		LocalCurrency:          localCurrency,
		CollateralCurrency:     collateralCurrency,
		NetLocalFromLiquidator: c.localCashFromLiquidator,
		FCashMaturities:        maturities,
		FCashTransfers:         c.transfers,
		LocalBalance:           localBalance,
		Portfolio:              portfolio,
	}, nil
}

// resolveFactors fetches and validates the risk snapshot, rejecting
// solvent accounts.
func (e *Engine) resolveFactors(ctx context.Context, account string, localCurrency, collateralCurrency uint32) (*types.LiquidationFactors, *types.PortfolioState, error) {
	factors, portfolio, err := e.val.LiquidationFactors(ctx, account, localCurrency, collateralCurrency)
	if err != nil {
		return nil, nil, errors.Wrap(err, "resolving liquidation factors")
	}
	if err := factors.Validate(); err != nil {
		return nil, nil, err
	}
	if !factors.NetETHValue.IsNegative() {
		return nil, nil, ErrAccountSolvent
	}
	return factors, portfolio, nil
}

func checkParties(liquidator, account string) error {
	if liquidator == account {
		return ErrSelfLiquidation
	}
	return nil
}

func checkMaturities(maturities []uint64, maxAmounts []*num.Int) error {
	if len(maturities) == 0 || len(maturities) != len(maxAmounts) {
		return ErrInputLengthMismatch
	}
	for i := 1; i < len(maturities); i++ {
		if maturities[i] >= maturities[i-1] {
			return ErrMaturitiesUnordered
		}
	}
	return nil
}
