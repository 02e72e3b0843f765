package types_test

import (
	"testing"

	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMarket(maturity uint64, rate int64) *types.MarketState {
	return &types.MarketState{
		Maturity:       maturity,
		TotalAssetCash: num.NewInt(10_000),
		TotalfCash:     num.NewInt(5_000),
		TotalLiquidity: num.NewInt(1_000),
		OracleRate:     num.NewInt(rate),
	}
}

func TestMarketClaims(t *testing.T) {
	t.Run("claims are proportional to the tokens", func(t *testing.T) {
		m := testMarket(1000, 50_000_000)
		cash, fCash, err := m.CashClaims(num.NewInt(250))
		require.NoError(t, err)
		assert.Equal(t, num.NewInt(2_500), cash)
		assert.Equal(t, num.NewInt(1_250), fCash)
		// quoting does not touch the pool
		assert.Equal(t, num.NewInt(10_000), m.TotalAssetCash)
	})
	t.Run("empty pool cannot be claimed against", func(t *testing.T) {
		m := testMarket(1000, 50_000_000)
		m.TotalLiquidity = num.IntZero()
		_, _, err := m.CashClaims(num.NewInt(250))
		assert.ErrorIs(t, err, types.ErrNoMarketLiquidity)
	})
	t.Run("removing liquidity shrinks the pool", func(t *testing.T) {
		m := testMarket(1000, 50_000_000)
		cash, fCash, err := m.RemoveLiquidity(num.NewInt(250))
		require.NoError(t, err)
		assert.Equal(t, num.NewInt(2_500), cash)
		assert.Equal(t, num.NewInt(1_250), fCash)
		assert.Equal(t, num.NewInt(7_500), m.TotalAssetCash)
		assert.Equal(t, num.NewInt(3_750), m.TotalfCash)
		assert.Equal(t, num.NewInt(750), m.TotalLiquidity)
	})
	t.Run("cannot remove more than outstanding", func(t *testing.T) {
		m := testMarket(1000, 50_000_000)
		_, _, err := m.RemoveLiquidity(num.NewInt(1_001))
		assert.ErrorIs(t, err, types.ErrExcessiveLiquidity)
	})
}

func TestCashGroupValidate(t *testing.T) {
	cg := &types.CashGroup{
		CurrencyID:                1,
		Markets:                   []*types.MarketState{testMarket(1000, 50_000_000), testMarket(2000, 60_000_000)},
		FCashHaircutBP:            100,
		LiquidationfCashHaircutBP: 50,
		DebtBufferBP:              200,
		LiquidationDebtBufferBP:   100,
		LiquidityTokenHaircut:     20,
	}
	require.NoError(t, cg.Validate())

	t.Run("liquidation haircut must sit inside the risk haircut", func(t *testing.T) {
		bad := cg.Clone()
		bad.LiquidationfCashHaircutBP = 100
		assert.ErrorIs(t, bad.Validate(), types.ErrInvalidCashGroup)
	})
	t.Run("liquidation buffer must sit inside the debt buffer", func(t *testing.T) {
		bad := cg.Clone()
		bad.LiquidationDebtBufferBP = 200
		assert.ErrorIs(t, bad.Validate(), types.ErrInvalidCashGroup)
	})
	t.Run("maturities must be ascending", func(t *testing.T) {
		bad := cg.Clone()
		bad.Markets[0].Maturity = 2000
		assert.ErrorIs(t, bad.Validate(), types.ErrInvalidCashGroup)
	})
}

func TestCashGroupOracleRate(t *testing.T) {
	cg := &types.CashGroup{
		CurrencyID: 1,
		Markets: []*types.MarketState{
			testMarket(1000, 40_000_000),
			testMarket(3000, 60_000_000),
		},
	}

	t.Run("exact maturities return the market rate", func(t *testing.T) {
		rate, err := cg.OracleRate(1000)
		require.NoError(t, err)
		assert.Equal(t, num.NewInt(40_000_000), rate)
	})
	t.Run("in between maturities interpolate linearly", func(t *testing.T) {
		rate, err := cg.OracleRate(2000)
		require.NoError(t, err)
		assert.Equal(t, num.NewInt(50_000_000), rate)
	})
	t.Run("outside the range clamps to the nearest market", func(t *testing.T) {
		rate, err := cg.OracleRate(500)
		require.NoError(t, err)
		assert.Equal(t, num.NewInt(40_000_000), rate)

		rate, err = cg.OracleRate(5000)
		require.NoError(t, err)
		assert.Equal(t, num.NewInt(60_000_000), rate)
	})
	t.Run("no markets is an error", func(t *testing.T) {
		empty := &types.CashGroup{CurrencyID: 1}
		_, err := empty.OracleRate(1000)
		assert.ErrorIs(t, err, types.ErrNoActiveMarkets)
	})
	t.Run("missing exact market lookup", func(t *testing.T) {
		_, err := cg.Market(2000)
		assert.ErrorIs(t, err, types.ErrMarketNotFound)
	})
}
