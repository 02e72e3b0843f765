package liquidation

import (
	"testing"

	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testFactors returns a snapshot with both currencies pegged 1:1 to
// the reference unit and unit cash rates, so underlying and asset
// amounts coincide and expectations stay readable.
func testFactors() *types.LiquidationFactors {
	one := num.NewInt(1_000_000_000)
	return &types.LiquidationFactors{
		Account:            "acc-1",
		LocalCurrency:      1,
		CollateralCurrency: 2,

		NetETHValue:              num.NewInt(-1000),
		LocalAssetAvailable:      num.NewInt(-100_000),
		CollateralAssetAvailable: num.NewInt(10_000),

		LocalETHRate: &types.ETHRate{
			RateDecimals:        one.Clone(),
			Rate:                one.Clone(),
			Buffer:              120,
			Haircut:             80,
			LiquidationDiscount: 104,
		},
		CollateralETHRate: &types.ETHRate{
			RateDecimals:        one.Clone(),
			Rate:                one.Clone(),
			Buffer:              120,
			Haircut:             80,
			LiquidationDiscount: 106,
		},
		LocalCashRate:      &types.CashRate{Rate: one.Clone()},
		CollateralCashRate: &types.CashRate{Rate: one.Clone()},

		NTokenHaircutAssetValue: num.IntZero(),
		NToken:                  types.NTokenParameters{PVHaircut: 90, LiquidationHaircut: 96},
	}
}

func TestLocalLiquidationUnderlyingRequired(t *testing.T) {
	t.Run("local debt is required directly", testRequiredFromDebt)
	t.Run("positive local value grosses the shortfall up by the haircut", testRequiredFromHaircut)
	t.Run("zero local value uses the buffer", testRequiredFromBuffer)
	t.Run("zero multiplier is rejected", testRequiredZeroMultiplier)
}

func testRequiredFromDebt(t *testing.T) {
	factors := testFactors()
	factors.LocalAssetAvailable = num.NewInt(-500)
	// asset cash is worth twice its face in underlying
	factors.LocalCashRate = &types.CashRate{Rate: num.NewInt(2_000_000_000)}

	got, err := localLiquidationUnderlyingRequired(factors)
	require.NoError(t, err)
	assert.Equal(t, num.NewInt(1000), got)
}

func testRequiredFromHaircut(t *testing.T) {
	factors := testFactors()
	factors.LocalAssetAvailable = num.NewInt(5000)
	factors.NetETHValue = num.NewInt(-100)

	got, err := localLiquidationUnderlyingRequired(factors)
	require.NoError(t, err)
	// 100 / 0.80
	assert.Equal(t, num.NewInt(125), got)
}

func testRequiredFromBuffer(t *testing.T) {
	factors := testFactors()
	factors.LocalAssetAvailable = num.IntZero()
	factors.NetETHValue = num.NewInt(-120)

	got, err := localLiquidationUnderlyingRequired(factors)
	require.NoError(t, err)
	// 120 / 1.20
	assert.Equal(t, num.NewInt(100), got)
}

func testRequiredZeroMultiplier(t *testing.T) {
	factors := testFactors()
	factors.LocalAssetAvailable = num.NewInt(5000)
	factors.LocalETHRate.Haircut = 0

	_, err := localLiquidationUnderlyingRequired(factors)
	assert.ErrorIs(t, err, ErrZeroRateMultiplier)
}

func TestCrossCurrencyBenefitAndDiscount(t *testing.T) {
	factors := testFactors()
	factors.NetETHValue = num.NewInt(-200)

	benefit, discount := crossCurrencyBenefitAndDiscount(factors)
	assert.Equal(t, num.NewInt(200), benefit)
	assert.EqualValues(t, 106, discount)

	// the larger configured discount wins regardless of which side
	// carries it
	factors.LocalETHRate.LiquidationDiscount = 110
	_, discount = crossCurrencyBenefitAndDiscount(factors)
	assert.EqualValues(t, 110, discount)
}

func TestLocalToPurchase(t *testing.T) {
	t.Run("prices the collateral at the discounted cross rate", testLocalToPurchasePricing)
	t.Run("scales back rather than overpaying the debt", testLocalToPurchaseScaleBack)
}

func testLocalToPurchasePricing(t *testing.T) {
	factors := testFactors()

	collateral, localAsset := localToPurchase(factors, 106, num.NewInt(1060), num.NewInt(1060))
	// 1060 / 1.06 at a unit cross rate
	assert.Equal(t, num.NewInt(1000), localAsset)
	assert.Equal(t, num.NewInt(1060), collateral)
}

func testLocalToPurchaseScaleBack(t *testing.T) {
	factors := testFactors()
	factors.LocalAssetAvailable = num.NewInt(-600)

	collateral, localAsset := localToPurchase(factors, 106, num.NewInt(1060), num.NewInt(1060))
	// local lands exactly on zero debt, collateral shrinks in
	// proportion: 1060 * 600/1000
	assert.Equal(t, num.NewInt(600), localAsset)
	assert.Equal(t, num.NewInt(636), collateral)
}
