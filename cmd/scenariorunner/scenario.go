package main

import (
	"context"
	"fmt"
	"math/big"

	"code.tenorprotocol.io/tenor/core/liquidation"
	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// scenario is the TOML description of one liquidation call: the
// operation to run, the account snapshot, and the caller arguments.
// Amounts are strings so scenarios can carry full precision values.
type scenario struct {
	Operation          string `toml:"operation"`
	Liquidator         string `toml:"liquidator"`
	Account            string `toml:"account"`
	LocalCurrency      uint32 `toml:"local-currency"`
	CollateralCurrency uint32 `toml:"collateral-currency"`
	BlockTime          int64  `toml:"block-time"`

	MaxNTokenLiquidation     string   `toml:"max-ntoken-liquidation"`
	MaxCollateralLiquidation string   `toml:"max-collateral-liquidation"`
	Maturities               []uint64 `toml:"maturities"`
	MaxFCashLiquidation      []string `toml:"max-fcash-liquidation"`
	WithdrawCollateral       bool     `toml:"withdraw-collateral"`
	RedeemToUnderlying       bool     `toml:"redeem-to-underlying"`

	Factors           factorsSection    `toml:"factors"`
	LocalBalance      balanceSection    `toml:"local-balance"`
	CollateralBalance balanceSection    `toml:"collateral-balance"`
	Portfolio         []assetSection    `toml:"portfolio"`
	CashGroup         *cashGroupSection `toml:"cash-group"`
}

type factorsSection struct {
	NetETHValue              string      `toml:"net-eth-value"`
	LocalAssetAvailable      string      `toml:"local-asset-available"`
	CollateralAssetAvailable string      `toml:"collateral-asset-available"`
	LocalETHRate             rateSection `toml:"local-eth-rate"`
	CollateralETHRate        rateSection `toml:"collateral-eth-rate"`
	LocalCashRate            string      `toml:"local-cash-rate"`
	CollateralCashRate       string      `toml:"collateral-cash-rate"`
	NTokenHaircutAssetValue  string      `toml:"ntoken-haircut-asset-value"`
	NTokenPVHaircut          uint64      `toml:"ntoken-pv-haircut"`
	NTokenLiquidationHaircut uint64      `toml:"ntoken-liquidation-haircut"`
	IsCalculation            bool        `toml:"is-calculation"`
}

type rateSection struct {
	RateDecimals        string `toml:"rate-decimals"`
	Rate                string `toml:"rate"`
	Buffer              uint64 `toml:"buffer"`
	Haircut             uint64 `toml:"haircut"`
	LiquidationDiscount uint64 `toml:"liquidation-discount"`
}

type balanceSection struct {
	CashBalance   string `toml:"cash-balance"`
	NTokenBalance string `toml:"ntoken-balance"`
}

type assetSection struct {
	CurrencyID uint32 `toml:"currency-id"`
	Maturity   uint64 `toml:"maturity"`
	Class      string `toml:"class"`
	Notional   string `toml:"notional"`
}

type cashGroupSection struct {
	CurrencyID                uint32          `toml:"currency-id"`
	FCashHaircutBP            uint64          `toml:"fcash-haircut-bp"`
	LiquidationfCashHaircutBP uint64          `toml:"liquidation-fcash-haircut-bp"`
	DebtBufferBP              uint64          `toml:"debt-buffer-bp"`
	LiquidationDebtBufferBP   uint64          `toml:"liquidation-debt-buffer-bp"`
	LiquidityTokenHaircut     uint64          `toml:"liquidity-token-haircut"`
	Markets                   []marketSection `toml:"markets"`
}

type marketSection struct {
	Maturity       uint64 `toml:"maturity"`
	TotalAssetCash string `toml:"total-asset-cash"`
	TotalfCash     string `toml:"total-fcash"`
	TotalLiquidity string `toml:"total-liquidity"`
	OracleRate     string `toml:"oracle-rate"`
}

func loadScenario(path string) (*scenario, error) {
	s := &scenario{}
	if _, err := toml.DecodeFile(path, s); err != nil {
		return nil, errors.Wrap(err, "decoding scenario file")
	}
	return s, nil
}

// amount parses a decimal integer string, an empty string reads as
// zero so optional scenario fields can be left out.
func amount(s string) (*num.Int, error) {
	if s == "" {
		return num.IntZero(), nil
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	i, overflow := num.IntFromBig(b)
	if overflow {
		return nil, fmt.Errorf("amount %q out of range", s)
	}
	return i, nil
}

func (r rateSection) toETHRate() (*types.ETHRate, error) {
	decimals, err := amount(r.RateDecimals)
	if err != nil {
		return nil, err
	}
	rate, err := amount(r.Rate)
	if err != nil {
		return nil, err
	}
	return &types.ETHRate{
		RateDecimals:        decimals,
		Rate:                rate,
		Buffer:              r.Buffer,
		Haircut:             r.Haircut,
		LiquidationDiscount: r.LiquidationDiscount,
	}, nil
}

func (s *scenario) liquidationFactors() (*types.LiquidationFactors, error) {
	f := &types.LiquidationFactors{
		Account:            s.Account,
		LocalCurrency:      s.LocalCurrency,
		CollateralCurrency: s.CollateralCurrency,
		NToken: types.NTokenParameters{
			PVHaircut:          s.Factors.NTokenPVHaircut,
			LiquidationHaircut: s.Factors.NTokenLiquidationHaircut,
		},
		IsCalculation: s.Factors.IsCalculation,
	}
	var err error
	if f.NetETHValue, err = amount(s.Factors.NetETHValue); err != nil {
		return nil, err
	}
	if f.LocalAssetAvailable, err = amount(s.Factors.LocalAssetAvailable); err != nil {
		return nil, err
	}
	if f.CollateralAssetAvailable, err = amount(s.Factors.CollateralAssetAvailable); err != nil {
		return nil, err
	}
	if f.NTokenHaircutAssetValue, err = amount(s.Factors.NTokenHaircutAssetValue); err != nil {
		return nil, err
	}
	if f.LocalETHRate, err = s.Factors.LocalETHRate.toETHRate(); err != nil {
		return nil, err
	}
	localCash, err := amount(s.Factors.LocalCashRate)
	if err != nil {
		return nil, err
	}
	f.LocalCashRate = &types.CashRate{Rate: localCash}
	if s.CollateralCurrency != 0 {
		if f.CollateralETHRate, err = s.Factors.CollateralETHRate.toETHRate(); err != nil {
			return nil, err
		}
		collateralCash, err := amount(s.Factors.CollateralCashRate)
		if err != nil {
			return nil, err
		}
		f.CollateralCashRate = &types.CashRate{Rate: collateralCash}
	}
	if s.CashGroup != nil {
		if f.CashGroup, err = s.CashGroup.toCashGroup(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (cg *cashGroupSection) toCashGroup() (*types.CashGroup, error) {
	out := &types.CashGroup{
		CurrencyID:                cg.CurrencyID,
		FCashHaircutBP:            cg.FCashHaircutBP,
		LiquidationfCashHaircutBP: cg.LiquidationfCashHaircutBP,
		DebtBufferBP:              cg.DebtBufferBP,
		LiquidationDebtBufferBP:   cg.LiquidationDebtBufferBP,
		LiquidityTokenHaircut:     cg.LiquidityTokenHaircut,
	}
	for _, m := range cg.Markets {
		cash, err := amount(m.TotalAssetCash)
		if err != nil {
			return nil, err
		}
		fCash, err := amount(m.TotalfCash)
		if err != nil {
			return nil, err
		}
		liq, err := amount(m.TotalLiquidity)
		if err != nil {
			return nil, err
		}
		rate, err := amount(m.OracleRate)
		if err != nil {
			return nil, err
		}
		out.Markets = append(out.Markets, &types.MarketState{
			Maturity:       m.Maturity,
			TotalAssetCash: cash,
			TotalfCash:     fCash,
			TotalLiquidity: liq,
			OracleRate:     rate,
		})
	}
	return out, out.Validate()
}

func (s *scenario) portfolioState() (*types.PortfolioState, error) {
	assets := make([]*types.PortfolioAsset, 0, len(s.Portfolio))
	for _, a := range s.Portfolio {
		notional, err := amount(a.Notional)
		if err != nil {
			return nil, err
		}
		class := types.AssetClassFCash
		if a.Class == "liquidity-token" {
			class = types.AssetClassLiquidityToken
		}
		assets = append(assets, &types.PortfolioAsset{
			CurrencyID: a.CurrencyID,
			Maturity:   a.Maturity,
			Class:      class,
			Notional:   notional,
		})
	}
	return types.NewPortfolioState(assets), nil
}

func (b balanceSection) toBalanceState(currencyID uint32) (*types.BalanceState, error) {
	cash, err := amount(b.CashBalance)
	if err != nil {
		return nil, err
	}
	nTokens, err := amount(b.NTokenBalance)
	if err != nil {
		return nil, err
	}
	return types.NewBalanceState(currencyID, cash, nTokens), nil
}

// staticValuation serves the engine straight from the scenario file.
type staticValuation struct {
	scenario *scenario
}

func (v *staticValuation) LiquidationFactors(_ context.Context, _ string, _, _ uint32) (*types.LiquidationFactors, *types.PortfolioState, error) {
	factors, err := v.scenario.liquidationFactors()
	if err != nil {
		return nil, nil, err
	}
	portfolio, err := v.scenario.portfolioState()
	if err != nil {
		return nil, nil, err
	}
	return factors, portfolio, nil
}

func (v *staticValuation) BalanceState(_ context.Context, _ string, currencyID uint32) (*types.BalanceState, error) {
	if currencyID == v.scenario.CollateralCurrency && currencyID != v.scenario.LocalCurrency {
		return v.scenario.CollateralBalance.toBalanceState(currencyID)
	}
	return v.scenario.LocalBalance.toBalanceState(currencyID)
}

var _ liquidation.Valuation = (*staticValuation)(nil)
