package types

import (
	"code.tenorprotocol.io/tenor/libs/num"
)

// BalanceState is the per-account, per-currency working balance a
// liquidation call mutates. The stored fields are the snapshot, the
// net fields accumulate the deltas the caller applies afterwards.
// LiquidityCashWithdrawn and LiquidityfCashWithdrawn track claims
// returned from burning liquidity tokens, they are portfolio
// movements rather than token transfers and are kept apart from
// NetCashChange deliberately.
type BalanceState struct {
	CurrencyID          uint32
	StoredCashBalance   *num.Int
	StoredNTokenBalance *num.Int

	NetCashChange           *num.Int
	NetNTokenTransfer       *num.Int
	LiquidityCashWithdrawn  *num.Int
	LiquidityfCashWithdrawn *num.Int
}

// NewBalanceState returns a working balance for the given snapshot
// with all mutation accumulators zeroed.
func NewBalanceState(currencyID uint32, cashBalance, nTokenBalance *num.Int) *BalanceState {
	return &BalanceState{
		CurrencyID:              currencyID,
		StoredCashBalance:       cashBalance.Clone(),
		StoredNTokenBalance:     nTokenBalance.Clone(),
		NetCashChange:           num.IntZero(),
		NetNTokenTransfer:       num.IntZero(),
		LiquidityCashWithdrawn:  num.IntZero(),
		LiquidityfCashWithdrawn: num.IntZero(),
	}
}

func (b *BalanceState) Clone() *BalanceState {
	return &BalanceState{
		CurrencyID:              b.CurrencyID,
		StoredCashBalance:       b.StoredCashBalance.Clone(),
		StoredNTokenBalance:     b.StoredNTokenBalance.Clone(),
		NetCashChange:           b.NetCashChange.Clone(),
		NetNTokenTransfer:       b.NetNTokenTransfer.Clone(),
		LiquidityCashWithdrawn:  b.LiquidityCashWithdrawn.Clone(),
		LiquidityfCashWithdrawn: b.LiquidityfCashWithdrawn.Clone(),
	}
}
