package liquidation

import (
	"testing"

	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiquidateCollateralCurrency(t *testing.T) {
	t.Run("cash balance covers the requirement", testCollateralFromCash)
	t.Run("nTokens make up a cash shortfall", testCollateralCashThenNTokens)
	t.Run("liquidity claims are withdrawn at face value", testCollateralFromLiquidity)
	t.Run("misconfigured cash group aborts the call", testCollateralBadCashGroup)
	t.Run("short raise reprices the local leg", testCollateralShortRaise)
	t.Run("no local debt is rejected", testCollateralNoLocalDebt)
	t.Run("no collateral value is rejected", testCollateralNoneAvailable)
	t.Run("collapsed benefit divisor is rejected", testCollateralNoProfit)
}

func testCollateralFromCash(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	portfolio := types.NewPortfolioState(nil)
	balance := types.NewBalanceState(2, num.NewInt(10_000), num.IntZero())

	local, raised, err := e.liquidateCollateralCurrency(factors, portfolio, balance, nil, nil)
	require.NoError(t, err)

	// shortfall 1000, discount 106, buffer 120, haircut 80:
	// required = 1000*106*100/(12000-8480) = 3011, bumped to the 40%
	// default portion of the 10000 available
	assert.Equal(t, num.NewInt(4_000), raised)
	// local leg: 4000*100/106 = 3773
	assert.Equal(t, num.NewInt(3_773), local)
	assert.Equal(t, num.NewInt(-4_000), balance.NetCashChange)
	assert.Equal(t, num.IntZero(), balance.NetNTokenTransfer)
}

func testCollateralCashThenNTokens(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.NTokenHaircutAssetValue = num.NewInt(9_000)
	portfolio := types.NewPortfolioState(nil)
	balance := types.NewBalanceState(2, num.NewInt(1_000), num.NewInt(10_000))

	local, raised, err := e.liquidateCollateralCurrency(factors, portfolio, balance, nil, nil)
	require.NoError(t, err)

	// cash gives 1000 of the 4000, nTokens cover the remaining 3000:
	// n = 3000*90*10000/(96*9000) = 3125 at value 3000
	assert.Equal(t, num.NewInt(4_000), raised)
	assert.Equal(t, num.NewInt(3_773), local)
	assert.Equal(t, num.NewInt(-1_000), balance.NetCashChange)
	assert.Equal(t, num.NewInt(-3_125), balance.NetNTokenTransfer)
}

func testCollateralFromLiquidity(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.CashGroup = testCashGroup(factors.CollateralCurrency)
	portfolio := testLiquidityPortfolio(factors.CollateralCurrency, 1000)
	balance := types.NewBalanceState(2, num.IntZero(), num.IntZero())

	local, raised, err := e.liquidateCollateralCurrency(factors, portfolio, balance, nil, nil)
	require.NoError(t, err)

	// face value claims, no haircut or incentive on this path:
	// tokens = 1000*4000/10000 = 400
	assert.Equal(t, num.NewInt(4_000), raised)
	assert.Equal(t, num.NewInt(3_773), local)
	assert.Equal(t, num.NewInt(4_000), balance.LiquidityCashWithdrawn)
	assert.Equal(t, num.NewInt(2_000), balance.LiquidityfCashWithdrawn)
	assert.Equal(t, num.IntZero(), balance.NetCashChange)
}

func testCollateralBadCashGroup(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.NTokenHaircutAssetValue = num.NewInt(9_000)
	factors.CashGroup = testCashGroup(factors.CollateralCurrency)
	factors.CashGroup.LiquidityTokenHaircut = 150
	portfolio := testLiquidityPortfolio(factors.CollateralCurrency, 1000)
	balance := types.NewBalanceState(2, num.IntZero(), num.NewInt(10_000))

	_, _, err := e.liquidateCollateralCurrency(factors, portfolio, balance, nil, nil)
	assert.ErrorIs(t, err, types.ErrInvalidCashGroup)
	assert.Equal(t, num.IntZero(), balance.LiquidityCashWithdrawn)
	assert.Equal(t, num.IntZero(), balance.NetNTokenTransfer)
}

func testCollateralShortRaise(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	portfolio := types.NewPortfolioState(nil)
	// only 2500 cash and nothing else to drain
	balance := types.NewBalanceState(2, num.NewInt(2_500), num.IntZero())

	local, raised, err := e.liquidateCollateralCurrency(factors, portfolio, balance, nil, nil)
	require.NoError(t, err)

	// the local leg is repriced off the 2500 actually raised
	assert.Equal(t, num.NewInt(2_500), raised)
	assert.Equal(t, num.NewInt(2_358), local)
}

func testCollateralNoLocalDebt(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.LocalAssetAvailable = num.NewInt(100)
	balance := types.NewBalanceState(2, num.NewInt(10_000), num.IntZero())

	_, _, err := e.liquidateCollateralCurrency(factors, types.NewPortfolioState(nil), balance, nil, nil)
	assert.ErrorIs(t, err, ErrNoLocalDebt)
}

func testCollateralNoneAvailable(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.CollateralAssetAvailable = num.IntZero()
	balance := types.NewBalanceState(2, num.NewInt(10_000), num.IntZero())

	_, _, err := e.liquidateCollateralCurrency(factors, types.NewPortfolioState(nil), balance, nil, nil)
	assert.ErrorIs(t, err, ErrNoCollateralAvailable)
}

func testCollateralNoProfit(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	// buffer at par and a full-value haircut leave no spread to share
	factors.LocalETHRate.Buffer = 100
	factors.CollateralETHRate.Haircut = 100
	balance := types.NewBalanceState(2, num.NewInt(10_000), num.IntZero())

	_, _, err := e.liquidateCollateralCurrency(factors, types.NewPortfolioState(nil), balance, nil, nil)
	assert.ErrorIs(t, err, ErrNoProfitableLiquidation)
}
