package liquidation

import (
	"testing"

	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiquidateLocalCurrency(t *testing.T) {
	t.Run("nToken transfer covers a local debt", testLocalNTokenLiquidation)
	t.Run("caller maximum caps the nToken transfer", testLocalNTokenCallerCap)
	t.Run("liquidity withdrawal runs before nTokens", testLocalLiquidityFirst)
	t.Run("misconfigured cash group aborts the call", testLocalBadCashGroup)
	t.Run("zero available balance is rejected", testLocalNoBalance)
	t.Run("nothing to act on is rejected", testLocalNothingLiquidated)
	t.Run("bad nToken haircuts abort the call", testLocalBadNTokenParameters)
}

func testLocalNTokenLiquidation(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.LocalAssetAvailable = num.NewInt(-1000)
	factors.NTokenHaircutAssetValue = num.NewInt(9_000)
	portfolio := types.NewPortfolioState(nil)
	balance := types.NewBalanceState(1, num.IntZero(), num.NewInt(10_000))

	net, err := e.liquidateLocalCurrency(factors, portfolio, balance, nil)
	require.NoError(t, err)

	// required 1000 needs 1000*90*10000/(6*9000) = 16666 tokens, more
	// than held, so the whole balance goes:
	// payment = 10000 * 0.96 * 9000 / (0.90 * 10000) = 9600
	assert.Equal(t, num.NewInt(-10_000), balance.NetNTokenTransfer)
	assert.Equal(t, num.NewInt(9_600), net)
	assert.Equal(t, num.NewInt(9_600), balance.NetCashChange)
}

func testLocalNTokenCallerCap(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.LocalAssetAvailable = num.NewInt(-1000)
	factors.NTokenHaircutAssetValue = num.NewInt(9_000)
	portfolio := types.NewPortfolioState(nil)
	balance := types.NewBalanceState(1, num.IntZero(), num.NewInt(10_000))

	net, err := e.liquidateLocalCurrency(factors, portfolio, balance, num.NewInt(5_000))
	require.NoError(t, err)

	assert.Equal(t, num.NewInt(-5_000), balance.NetNTokenTransfer)
	assert.Equal(t, num.NewInt(4_800), net)
}

func testLocalLiquidityFirst(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.LocalAssetAvailable = num.NewInt(-500)
	factors.CashGroup = testCashGroup(factors.LocalCurrency)
	portfolio := testLiquidityPortfolio(factors.LocalCurrency, 1000)
	balance := types.NewBalanceState(1, num.IntZero(), num.IntZero())

	net, err := e.liquidateLocalCurrency(factors, portfolio, balance, nil)
	require.NoError(t, err)

	// the pool covers the requirement, no nTokens were held anyway:
	// tokens = 1000*500/(10000*0.80*0.90) = 69, cash claim 690, repo
	// incentive 10% of the 552 counted
	assert.Equal(t, num.NewInt(690), balance.LiquidityCashWithdrawn)
	assert.Equal(t, num.NewInt(345), balance.LiquidityfCashWithdrawn)
	assert.Equal(t, num.NewInt(-55), net)
	assert.Equal(t, num.NewInt(635), balance.NetCashChange)
	assert.Equal(t, num.IntZero(), balance.NetNTokenTransfer)
}

func testLocalBadCashGroup(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.LocalAssetAvailable = num.NewInt(-500)
	factors.NTokenHaircutAssetValue = num.NewInt(9_000)
	factors.CashGroup = testCashGroup(factors.LocalCurrency)
	factors.CashGroup.LiquidityTokenHaircut = 150
	portfolio := testLiquidityPortfolio(factors.LocalCurrency, 1000)
	balance := types.NewBalanceState(1, num.IntZero(), num.NewInt(10_000))

	// a haircut above 100 must fail the call, not fall through to the
	// nToken phase with nothing withdrawn
	_, err := e.liquidateLocalCurrency(factors, portfolio, balance, nil)
	assert.ErrorIs(t, err, types.ErrInvalidCashGroup)
	assert.Equal(t, num.IntZero(), balance.LiquidityCashWithdrawn)
	assert.Equal(t, num.IntZero(), balance.NetNTokenTransfer)
}

func testLocalNoBalance(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.LocalAssetAvailable = num.IntZero()
	balance := types.NewBalanceState(1, num.IntZero(), num.IntZero())

	_, err := e.liquidateLocalCurrency(factors, types.NewPortfolioState(nil), balance, nil)
	assert.ErrorIs(t, err, ErrNoBalanceToLiquidate)
}

func testLocalNothingLiquidated(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.LocalAssetAvailable = num.NewInt(-1000)
	balance := types.NewBalanceState(1, num.IntZero(), num.IntZero())

	_, err := e.liquidateLocalCurrency(factors, types.NewPortfolioState(nil), balance, nil)
	assert.ErrorIs(t, err, ErrNothingLiquidated)
}

func testLocalBadNTokenParameters(t *testing.T) {
	e := newTestEngine(t)
	factors := testFactors()
	factors.LocalAssetAvailable = num.NewInt(-1000)
	factors.NTokenHaircutAssetValue = num.NewInt(9_000)
	factors.NToken = types.NTokenParameters{PVHaircut: 96, LiquidationHaircut: 90}
	balance := types.NewBalanceState(1, num.IntZero(), num.NewInt(10_000))

	_, err := e.liquidateLocalCurrency(factors, types.NewPortfolioState(nil), balance, nil)
	assert.ErrorIs(t, err, types.ErrInvalidNTokenParameters)
}
