package types

import (
	"errors"
)

var ErrInvalidNTokenParameters = errors.New("nToken liquidation haircut must exceed the PV haircut")

// NTokenParameters are the risk percentages of a currency's nToken.
// PVHaircut is the share of the nToken present value counted towards
// free collateral, LiquidationHaircut the (strictly larger) share a
// liquidator pays for it. The gap between the two is the benefit a
// liquidation realises per token.
type NTokenParameters struct {
	PVHaircut          uint64
	LiquidationHaircut uint64
}

// NewNTokenParameters builds the parameter record, rejecting the
// degenerate configuration where liquidating the nToken could not
// improve free collateral.
func NewNTokenParameters(pvHaircut, liquidationHaircut uint64) (NTokenParameters, error) {
	p := NTokenParameters{
		PVHaircut:          pvHaircut,
		LiquidationHaircut: liquidationHaircut,
	}
	return p, p.Validate()
}

// Validate re-checks the ordering invariant. Engines call this before
// pricing nTokens, a violation aborts the call.
func (p NTokenParameters) Validate() error {
	if p.LiquidationHaircut <= p.PVHaircut || p.LiquidationHaircut > 100 || p.PVHaircut == 0 {
		return ErrInvalidNTokenParameters
	}
	return nil
}
