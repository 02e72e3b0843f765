package types

import (
	"code.tenorprotocol.io/tenor/libs/num"

	"golang.org/x/exp/slices"
)

// AssetClass distinguishes the two kinds of fixed-term positions an
// account can hold.
type AssetClass uint8

const (
	AssetClassUnspecified AssetClass = iota
	// AssetClassFCash is a fixed-maturity credit (positive notional)
	// or debt (negative notional) position.
	AssetClassFCash
	// AssetClassLiquidityToken is a per-maturity claim on an AMM's
	// pooled cash and fCash.
	AssetClassLiquidityToken
)

func (c AssetClass) String() string {
	switch c {
	case AssetClassFCash:
		return "fcash"
	case AssetClassLiquidityToken:
		return "liquidity-token"
	default:
		return "unspecified"
	}
}

// AssetChange tags what a liquidation did to a portfolio asset. The
// working copy keeps every asset with its tag, Apply produces the
// post-liquidation list.
type AssetChange uint8

const (
	AssetUnchanged AssetChange = iota
	AssetUpdated
	AssetRemoved
)

// PortfolioAsset is one fixed-term position held by the liquidated
// account.
type PortfolioAsset struct {
	CurrencyID uint32
	Maturity   uint64
	Class      AssetClass
	Notional   *num.Int
	Change     AssetChange
}

func (a *PortfolioAsset) Clone() *PortfolioAsset {
	cp := *a
	cp.Notional = a.Notional.Clone()
	return &cp
}

// PortfolioState is the working copy of the account's fixed-term
// assets for the duration of one liquidation call.
type PortfolioState struct {
	Assets []*PortfolioAsset
}

func NewPortfolioState(assets []*PortfolioAsset) *PortfolioState {
	p := &PortfolioState{Assets: make([]*PortfolioAsset, 0, len(assets))}
	for _, a := range assets {
		p.Assets = append(p.Assets, a.Clone())
	}
	return p
}

func (p *PortfolioState) Clone() *PortfolioState {
	return NewPortfolioState(p.Assets)
}

// FCashNotional returns the held fCash notional at the given currency
// and maturity. An absent or removed position yields zero, a caller
// over-specifying maturities gets a no-op rather than an error.
func (p *PortfolioState) FCashNotional(currencyID uint32, maturity uint64) *num.Int {
	for _, a := range p.Assets {
		if a.Class == AssetClassFCash && a.CurrencyID == currencyID &&
			a.Maturity == maturity && a.Change != AssetRemoved {
			return a.Notional.Clone()
		}
	}
	return num.IntZero()
}

// LiquidityTokens returns the account's liquidity token positions in
// the given currency, longest maturity first.
func (p *PortfolioState) LiquidityTokens(currencyID uint32) []*PortfolioAsset {
	tokens := make([]*PortfolioAsset, 0, len(p.Assets))
	for _, a := range p.Assets {
		if a.Class == AssetClassLiquidityToken && a.CurrencyID == currencyID &&
			a.Change != AssetRemoved && a.Notional.IsPositive() {
			tokens = append(tokens, a)
		}
	}
	slices.SortFunc(tokens, func(a, b *PortfolioAsset) int {
		switch {
		case a.Maturity > b.Maturity:
			return -1
		case a.Maturity < b.Maturity:
			return 1
		default:
			return 0
		}
	})
	return tokens
}

// ReduceNotional lowers an asset's notional by the given amount,
// tagging it updated, or removed once nothing is left.
func (p *PortfolioState) ReduceNotional(asset *PortfolioAsset, amount *num.Int) {
	asset.Notional.Sub(amount)
	if asset.Notional.IsZero() {
		asset.Change = AssetRemoved
		return
	}
	asset.Change = AssetUpdated
}

// Remove tags the asset removed.
func (p *PortfolioState) Remove(asset *PortfolioAsset) {
	asset.Change = AssetRemoved
}

// AddFCash credits an fCash claim back into the portfolio, merging
// into an existing position at the same maturity when there is one.
func (p *PortfolioState) AddFCash(currencyID uint32, maturity uint64, notional *num.Int) {
	if notional.IsZero() {
		return
	}
	for _, a := range p.Assets {
		if a.Class == AssetClassFCash && a.CurrencyID == currencyID &&
			a.Maturity == maturity && a.Change != AssetRemoved {
			a.Notional.Add(notional)
			a.Change = AssetUpdated
			return
		}
	}
	p.Assets = append(p.Assets, &PortfolioAsset{
		CurrencyID: currencyID,
		Maturity:   maturity,
		Class:      AssetClassFCash,
		Notional:   notional.Clone(),
		Change:     AssetUpdated,
	})
}

// Apply resolves the change tags into a fresh asset list, dropping
// removed positions and clearing the tags. The working copy is left
// untouched.
func (p *PortfolioState) Apply() []*PortfolioAsset {
	out := make([]*PortfolioAsset, 0, len(p.Assets))
	for _, a := range p.Assets {
		if a.Change == AssetRemoved {
			continue
		}
		cp := a.Clone()
		cp.Change = AssetUnchanged
		out = append(out, cp)
	}
	return out
}
