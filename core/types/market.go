package types

import (
	"errors"

	"code.tenorprotocol.io/tenor/libs/num"
)

var (
	ErrNoActiveMarkets    = errors.New("cash group holds no active markets")
	ErrMarketNotFound     = errors.New("no market for the given maturity")
	ErrInvalidCashGroup   = errors.New("invalid cash group parameters")
	ErrNoMarketLiquidity  = errors.New("market has no liquidity outstanding")
	ErrExcessiveLiquidity = errors.New("liquidity removed exceeds market total")
)

// MarketState is the snapshot of one fixed-rate AMM at a single
// maturity: the pooled asset cash and fCash backing the outstanding
// liquidity tokens, and the oracle rate for the maturity.
type MarketState struct {
	Maturity       uint64
	TotalAssetCash *num.Int
	TotalfCash     *num.Int
	TotalLiquidity *num.Int
	// OracleRate is the time weighted rate for this maturity, scaled
	// by RatePrecision.
	OracleRate *num.Int
}

func (m *MarketState) Clone() *MarketState {
	return &MarketState{
		Maturity:       m.Maturity,
		TotalAssetCash: m.TotalAssetCash.Clone(),
		TotalfCash:     m.TotalfCash.Clone(),
		TotalLiquidity: m.TotalLiquidity.Clone(),
		OracleRate:     m.OracleRate.Clone(),
	}
}

// CashClaims returns the proportional asset cash and fCash claims for
// the given amount of liquidity tokens, without touching the pool.
func (m *MarketState) CashClaims(tokens *num.Int) (*num.Int, *num.Int, error) {
	if m.TotalLiquidity.IsZero() {
		return nil, nil, ErrNoMarketLiquidity
	}
	cash := num.MulDiv(m.TotalAssetCash, tokens, m.TotalLiquidity)
	fCash := num.MulDiv(m.TotalfCash, tokens, m.TotalLiquidity)
	return cash, fCash, nil
}

// RemoveLiquidity burns the given amount of liquidity tokens,
// shrinking the pool and returning the proportional claims.
func (m *MarketState) RemoveLiquidity(tokens *num.Int) (*num.Int, *num.Int, error) {
	if tokens.GT(m.TotalLiquidity) {
		return nil, nil, ErrExcessiveLiquidity
	}
	cash, fCash, err := m.CashClaims(tokens)
	if err != nil {
		return nil, nil, err
	}
	m.TotalAssetCash.Sub(cash)
	m.TotalfCash.Sub(fCash)
	m.TotalLiquidity.Sub(tokens)
	return cash, fCash, nil
}

// CashGroup bundles the interest rate parameters of one currency's
// fixed-rate markets. Haircuts loosen credit valuations, buffers
// tighten debt valuations, the liquidation variants sit strictly
// inside their free-collateral counterparts so a liquidation always
// prices between the risk-adjusted and the oracle value.
type CashGroup struct {
	CurrencyID uint32
	// Markets are the active maturities, ascending.
	Markets []*MarketState
	// Rate adjustments, in basis points of the rate basis.
	FCashHaircutBP            uint64
	LiquidationfCashHaircutBP uint64
	DebtBufferBP              uint64
	LiquidationDebtBufferBP   uint64
	// LiquidityTokenHaircut is the percentage of a liquidity token
	// cash claim NOT counted towards free collateral.
	LiquidityTokenHaircut uint64
}

func (cg *CashGroup) Clone() *CashGroup {
	markets := make([]*MarketState, 0, len(cg.Markets))
	for _, m := range cg.Markets {
		markets = append(markets, m.Clone())
	}
	cp := *cg
	cp.Markets = markets
	return &cp
}

// Validate checks the governance ordering invariants. A violation is
// fatal for any liquidation against this cash group.
func (cg *CashGroup) Validate() error {
	if cg == nil || cg.CurrencyID == 0 {
		return ErrInvalidCashGroup
	}
	if cg.LiquidationfCashHaircutBP >= cg.FCashHaircutBP {
		return ErrInvalidCashGroup
	}
	if cg.LiquidationDebtBufferBP >= cg.DebtBufferBP {
		return ErrInvalidCashGroup
	}
	if cg.LiquidityTokenHaircut > 100 {
		return ErrInvalidCashGroup
	}
	for i := 1; i < len(cg.Markets); i++ {
		if cg.Markets[i].Maturity <= cg.Markets[i-1].Maturity {
			return ErrInvalidCashGroup
		}
	}
	return nil
}

// Market returns the market at exactly the given maturity, or an
// error when the maturity has no market.
func (cg *CashGroup) Market(maturity uint64) (*MarketState, error) {
	for _, m := range cg.Markets {
		if m.Maturity == maturity {
			return m, nil
		}
	}
	return nil, ErrMarketNotFound
}

// OracleRate returns the oracle rate for an arbitrary maturity,
// linearly interpolated between the two adjacent markets and clamped
// to the first/last market rate outside the listed range.
func (cg *CashGroup) OracleRate(maturity uint64) (*num.Int, error) {
	if len(cg.Markets) == 0 {
		return nil, ErrNoActiveMarkets
	}
	first, last := cg.Markets[0], cg.Markets[len(cg.Markets)-1]
	if maturity <= first.Maturity {
		return first.OracleRate.Clone(), nil
	}
	if maturity >= last.Maturity {
		return last.OracleRate.Clone(), nil
	}
	for i := 1; i < len(cg.Markets); i++ {
		lo, hi := cg.Markets[i-1], cg.Markets[i]
		if maturity > hi.Maturity {
			continue
		}
		// rate = lo + (hi - lo) * (maturity - lo) / (hi - lo)
		span := num.NewInt(int64(hi.Maturity - lo.Maturity))
		offset := num.NewInt(int64(maturity - lo.Maturity))
		diff := hi.OracleRate.Clone().Sub(lo.OracleRate)
		return lo.OracleRate.Clone().Add(num.MulDiv(diff, offset, span)), nil
	}
	return last.OracleRate.Clone(), nil
}
