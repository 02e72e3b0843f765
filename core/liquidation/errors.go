package liquidation

import "errors"

var (
	// ErrSelfLiquidation is returned when the liquidator and the
	// liquidated account are the same party.
	ErrSelfLiquidation = errors.New("cannot liquidate own account")
	// ErrInvalidCurrency is returned on a zero currency id or when
	// the local and collateral currency are the same.
	ErrInvalidCurrency = errors.New("invalid currency arguments")
	// ErrAccountSolvent is returned when the account's net reference
	// value is not negative, liquidation is not permitted.
	ErrAccountSolvent = errors.New("account is not eligible for liquidation")
	// ErrNoBalanceToLiquidate is returned when the local currency has
	// no available value to act on.
	ErrNoBalanceToLiquidate = errors.New("no available balance to liquidate")
	// ErrNoLocalDebt is returned on the cross-currency paths when the
	// local currency is not in debt.
	ErrNoLocalDebt = errors.New("local currency is not in debt")
	// ErrNoCollateralAvailable is returned on the cross-currency
	// paths when the collateral currency has no positive value.
	ErrNoCollateralAvailable = errors.New("no collateral currency value available")
	// ErrMaturitiesUnordered is returned when the caller-specified
	// maturities are not in strictly descending order.
	ErrMaturitiesUnordered = errors.New("maturities must be strictly descending")
	// ErrInputLengthMismatch is returned when the maturities and the
	// caller maximums are not parallel.
	ErrInputLengthMismatch = errors.New("maturities and max amounts length mismatch")
	// ErrZeroRateMultiplier is returned when the applicable haircut
	// or buffer is configured to zero, liquidating the currency could
	// not move free collateral.
	ErrZeroRateMultiplier = errors.New("currency haircut or buffer is zero")
	// ErrInsufficientLocalCash is returned when a negative fCash
	// position is liquidated while the account's running local cash
	// balance is negative.
	ErrInsufficientLocalCash = errors.New("insufficient local cash to liquidate fcash debt")
	// ErrNoProfitableLiquidation is returned when the discount spread
	// or benefit divisor collapses to zero or below, there is no
	// transfer amount that benefits both sides.
	ErrNoProfitableLiquidation = errors.New("no profitable liquidation available")
	// ErrNothingLiquidated is returned when a call completes without
	// moving any asset.
	ErrNothingLiquidated = errors.New("no assets available to liquidate")
)
