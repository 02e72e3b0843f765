package main

import (
	"context"
	"fmt"
	"os"

	"code.tenorprotocol.io/tenor/core/liquidation"
	"code.tenorprotocol.io/tenor/core/types"
	"code.tenorprotocol.io/tenor/libs/num"
	"code.tenorprotocol.io/tenor/logging"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

type options struct {
	Env                       string `default:"dev" description:"Logging environment (dev for console output)" long:"env"`
	DefaultLiquidationPortion uint64 `default:"40" description:"Minimum percentage of an asset a liquidator may seize" long:"default-liquidation-portion"`
	TokenRepoIncentive        uint64 `default:"10" description:"Percentage of withdrawn liquidity paid as repo incentive" long:"token-repo-incentive"`

	Args struct {
		Scenarios []string `description:"Scenario TOML files to run" positional-arg-name:"scenario" required:"yes"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	log := logging.NewLoggerFromEnv(opts.Env)
	defer log.AtExit()

	for _, path := range opts.Args.Scenarios {
		if err := runScenario(log, opts, path); err != nil {
			log.Error("scenario failed",
				logging.String("scenario", path),
				logging.Error(err),
			)
			os.Exit(1)
		}
	}
}

func runScenario(log *logging.Logger, opts options, path string) error {
	s, err := loadScenario(path)
	if err != nil {
		return err
	}
	log.Info("running scenario",
		logging.String("scenario", path),
		logging.String("operation", s.Operation),
		logging.String("account", s.Account),
	)

	cfg := liquidation.NewDefaultConfig()
	cfg.DefaultLiquidationPortion = opts.DefaultLiquidationPortion
	cfg.TokenRepoIncentive = opts.TokenRepoIncentive

	engine, err := liquidation.New(log, cfg, &staticValuation{scenario: s})
	if err != nil {
		return err
	}

	res, err := dispatch(engine, s)
	if err != nil {
		return err
	}
	printResult(s, res)
	return nil
}

func dispatch(engine *liquidation.Engine, s *scenario) (*types.LiquidationResult, error) {
	ctx := context.Background()
	maxNToken, err := amount(s.MaxNTokenLiquidation)
	if err != nil {
		return nil, err
	}
	maxCollateral, err := amount(s.MaxCollateralLiquidation)
	if err != nil {
		return nil, err
	}
	maxFCash := make([]*num.Int, 0, len(s.MaxFCashLiquidation))
	for _, m := range s.MaxFCashLiquidation {
		v, err := amount(m)
		if err != nil {
			return nil, err
		}
		maxFCash = append(maxFCash, v)
	}

	switch s.Operation {
	case "local":
		return engine.LiquidateLocalCurrency(ctx, s.Liquidator, s.Account,
			s.LocalCurrency, maxNToken)
	case "collateral":
		return engine.LiquidateCollateralCurrency(ctx, s.Liquidator, s.Account,
			s.LocalCurrency, s.CollateralCurrency, maxCollateral, maxNToken,
			s.WithdrawCollateral, s.RedeemToUnderlying)
	case "fcash-local":
		return engine.LiquidatefCashLocal(ctx, s.Liquidator, s.Account,
			s.LocalCurrency, s.BlockTime, s.Maturities, maxFCash)
	case "fcash-cross":
		return engine.LiquidatefCashCrossCurrency(ctx, s.Liquidator, s.Account,
			s.LocalCurrency, s.CollateralCurrency, s.BlockTime, s.Maturities, maxFCash)
	default:
		return nil, errors.Errorf("unknown operation %q", s.Operation)
	}
}

func printResult(s *scenario, res *types.LiquidationResult) {
	fmt.Printf("account:                   %s\n", res.Account)
	fmt.Printf("operation:                 %s\n", s.Operation)
	fmt.Printf("net local from liquidator: %s\n", res.NetLocalFromLiquidator)
	if res.LocalBalance != nil {
		printBalance("local", res.LocalBalance)
	}
	if res.CollateralBalance != nil {
		printBalance("collateral", res.CollateralBalance)
	}
	for i, maturity := range res.FCashMaturities {
		fmt.Printf("fcash transfer:            maturity=%d notional=%s\n",
			maturity, res.FCashTransfers[i])
	}
	if res.Portfolio != nil {
		for _, a := range res.Portfolio.Apply() {
			fmt.Printf("portfolio:                 currency=%d maturity=%d class=%s notional=%s\n",
				a.CurrencyID, a.Maturity, a.Class, a.Notional)
		}
	}
}

func printBalance(name string, b *types.BalanceState) {
	fmt.Printf("%s cash change:         %s\n", name, b.NetCashChange)
	fmt.Printf("%s ntoken transfer:     %s\n", name, b.NetNTokenTransfer)
	if !b.LiquidityCashWithdrawn.IsZero() || !b.LiquidityfCashWithdrawn.IsZero() {
		fmt.Printf("%s liquidity withdrawn: cash=%s fcash=%s\n",
			name, b.LiquidityCashWithdrawn, b.LiquidityfCashWithdrawn)
	}
}
