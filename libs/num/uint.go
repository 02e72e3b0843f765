package num

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Uint is a wrapper around a 256 bit unsigned integer.
type Uint struct {
	u uint256.Int
}

// NewUint returns a new Uint holding the given uint64 value.
func NewUint(val uint64) *Uint {
	return &Uint{*uint256.NewInt(val)}
}

// UintZero returns a new Uint set to zero.
func UintZero() *Uint {
	return NewUint(0)
}

// UintFromBig constructs a Uint from a big.Int, the second return
// value is true if the big.Int did not fit in 256 bits.
func UintFromBig(b *big.Int) (*Uint, bool) {
	u, overflow := uint256.FromBig(b)
	if overflow {
		return UintZero(), true
	}
	return &Uint{*u}, false
}

// UintFromDecimal truncates the decimal and returns it as a Uint,
// the second return value is true on overflow.
func UintFromDecimal(d Decimal) (*Uint, bool) {
	return UintFromBig(d.BigInt())
}

// MinU returns the smaller of the two values.
func MinU(a, b *Uint) *Uint {
	if a.LT(b) {
		return a
	}
	return b
}

// MaxU returns the larger of the two values.
func MaxU(a, b *Uint) *Uint {
	if a.GT(b) {
		return a
	}
	return b
}

func (z *Uint) Set(oth *Uint) *Uint {
	z.u.Set(&oth.u)
	return z
}

func (z Uint) Uint64() uint64 {
	return z.u.Uint64()
}

func (z Uint) BigInt() *big.Int {
	return z.u.ToBig()
}

func (z Uint) ToDecimal() Decimal {
	return DecimalFromUint(&z)
}

// Add sets z to x + y and returns z. Overflow past 256 bits panics,
// the engine treats it as fatal rather than wrapping.
func (z *Uint) Add(x, y *Uint) *Uint {
	if _, overflow := z.u.AddOverflow(&x.u, &y.u); overflow {
		panic("num: uint256 overflow in Add")
	}
	return z
}

// Sub sets z to x - y and returns z. Underflow panics.
func (z *Uint) Sub(x, y *Uint) *Uint {
	if _, underflow := z.u.SubOverflow(&x.u, &y.u); underflow {
		panic("num: uint256 underflow in Sub")
	}
	return z
}

// Mul sets z to x * y and returns z. Overflow past 256 bits panics.
func (z *Uint) Mul(x, y *Uint) *Uint {
	if _, overflow := z.u.MulOverflow(&x.u, &y.u); overflow {
		panic("num: uint256 overflow in Mul")
	}
	return z
}

// Div sets z to x / y, truncated, and returns z. Division by zero
// panics rather than returning zero.
func (z *Uint) Div(x, y *Uint) *Uint {
	if y.IsZero() {
		panic("num: division by zero")
	}
	z.u.Div(&x.u, &y.u)
	return z
}

func (z Uint) LT(oth *Uint) bool {
	return z.u.Lt(&oth.u)
}

func (z Uint) LTE(oth *Uint) bool {
	return z.u.Lt(&oth.u) || z.u.Eq(&oth.u)
}

func (z Uint) GT(oth *Uint) bool {
	return z.u.Gt(&oth.u)
}

func (z Uint) GTE(oth *Uint) bool {
	return z.u.Gt(&oth.u) || z.u.Eq(&oth.u)
}

func (z Uint) EQ(oth *Uint) bool {
	return z.u.Eq(&oth.u)
}

func (z Uint) IsZero() bool {
	return z.u.IsZero()
}

// Clone returns an independent copy of z.
func (z Uint) Clone() *Uint {
	return &Uint{z.u}
}

func (z Uint) String() string {
	return z.u.ToBig().String()
}

// Format implements fmt.Formatter.
func (z Uint) Format(s fmt.State, ch rune) {
	z.u.Format(s, ch)
}
