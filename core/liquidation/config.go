package liquidation

import (
	"errors"

	"code.tenorprotocol.io/tenor/libs/config/encoding"
	"code.tenorprotocol.io/tenor/logging"
)

const namedLogger = "liquidation"

var ErrInvalidConfig = errors.New("invalid liquidation engine configuration")

// Config holds the engine's tuning. The two percentages are protocol
// economics: DefaultLiquidationPortion is the share of an asset a
// liquidator may always take so seizures stay worth the transaction
// cost, TokenRepoIncentive is the cut of the freed-up cash paid for
// withdrawing liquidity tokens on the liquidated account's behalf.
type Config struct {
	Level                     encoding.LogLevel `choice:"debug" choice:"info" choice:"warning" choice:"error" description:"Logging level (default: info)" long:"log-level"`
	DefaultLiquidationPortion uint64            `description:"Minimum percentage of an asset a liquidator may seize" long:"default-liquidation-portion"`
	TokenRepoIncentive        uint64            `description:"Percentage of withdrawn liquidity paid as repo incentive" long:"token-repo-incentive"`
}

// NewDefaultConfig creates an instance of the package specific
// configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:                     encoding.LogLevel{Level: logging.InfoLevel},
		DefaultLiquidationPortion: 40,
		TokenRepoIncentive:        10,
	}
}

func (c Config) Validate() error {
	if c.DefaultLiquidationPortion == 0 || c.DefaultLiquidationPortion > 100 {
		return ErrInvalidConfig
	}
	if c.TokenRepoIncentive == 0 || c.TokenRepoIncentive >= 100 {
		return ErrInvalidConfig
	}
	return nil
}
