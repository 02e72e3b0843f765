package num

import (
	"math/big"
)

// Int is a signed 256 bit integer, stored as a sign and a Uint
// magnitude. A zero magnitude is always normalised to non-negative.
type Int struct {
	// U is the unsigned magnitude of the value.
	U *Uint
	// negative is true when the value is strictly below zero.
	negative bool
}

// NewInt returns a new Int holding the given int64 value.
func NewInt(val int64) *Int {
	if val < 0 {
		return &Int{
			U:        NewUint(uint64(-val)),
			negative: true,
		}
	}
	return &Int{
		U:        NewUint(uint64(val)),
		negative: false,
	}
}

// IntZero returns a new Int set to zero.
func IntZero() *Int {
	return NewInt(0)
}

// IntFromUint returns a new Int with the magnitude of u. The sign
// flag is ignored for a zero magnitude.
func IntFromUint(u *Uint, positive bool) *Int {
	i := &Int{
		U:        u.Clone(),
		negative: !positive,
	}
	i.normalise()
	return i
}

// IntFromBig constructs an Int from a big.Int, the second return
// value is true if the magnitude did not fit in 256 bits.
func IntFromBig(b *big.Int) (*Int, bool) {
	u, overflow := UintFromBig(new(big.Int).Abs(b))
	if overflow {
		return IntZero(), true
	}
	return IntFromUint(u, b.Sign() >= 0), false
}

// IntFromDecimal truncates the decimal and returns it as an Int,
// the second return value is true on overflow.
func IntFromDecimal(d Decimal) (*Int, bool) {
	return IntFromBig(d.BigInt())
}

func (i *Int) normalise() {
	if i.U.IsZero() {
		i.negative = false
	}
}

func (i Int) IsNegative() bool {
	return i.negative && !i.U.IsZero()
}

func (i Int) IsPositive() bool {
	return !i.negative && !i.U.IsZero()
}

func (i Int) IsZero() bool {
	return i.U.IsZero()
}

// FlipSign negates the value in place.
func (i *Int) FlipSign() {
	i.negative = !i.negative
	i.normalise()
}

// Neg returns a new Int holding -i.
func (i Int) Neg() *Int {
	n := i.Clone()
	n.FlipSign()
	return n
}

// Abs returns a new Int holding the absolute value of i.
func (i Int) Abs() *Int {
	n := i.Clone()
	n.negative = false
	return n
}

// Clone returns an independent copy of i.
func (i Int) Clone() *Int {
	return &Int{
		U:        i.U.Clone(),
		negative: i.negative,
	}
}

// Add adds oth to i in place and returns i for chaining.
func (i *Int) Add(oth *Int) *Int {
	if i.negative == oth.negative {
		i.U.Add(i.U, oth.U)
		return i
	}
	if i.U.GTE(oth.U) {
		i.U.Sub(i.U, oth.U)
	} else {
		i.U.Sub(oth.U.Clone(), i.U)
		i.negative = oth.negative
	}
	i.normalise()
	return i
}

// AddSum adds all the given values to i in place.
func (i *Int) AddSum(oths ...*Int) *Int {
	for _, oth := range oths {
		i.Add(oth)
	}
	return i
}

// Sub subtracts oth from i in place and returns i for chaining.
func (i *Int) Sub(oth *Int) *Int {
	return i.Add(oth.Neg())
}

// SubSum subtracts all the given values from i in place.
func (i *Int) SubSum(oths ...*Int) *Int {
	for _, oth := range oths {
		i.Sub(oth)
	}
	return i
}

// Mul multiplies i by oth in place and returns i for chaining.
// Overflow past 256 bits of magnitude panics.
func (i *Int) Mul(oth *Int) *Int {
	i.U.Mul(i.U, oth.U)
	i.negative = i.negative != oth.negative
	i.normalise()
	return i
}

// Div divides i by oth in place, truncating towards zero, and
// returns i for chaining. Division by zero panics.
func (i *Int) Div(oth *Int) *Int {
	i.U.Div(i.U, oth.U)
	i.negative = i.negative != oth.negative
	i.normalise()
	return i
}

func (i Int) GT(oth *Int) bool {
	if i.IsNegative() != oth.IsNegative() {
		return oth.IsNegative()
	}
	if i.IsNegative() {
		return i.U.LT(oth.U)
	}
	return i.U.GT(oth.U)
}

func (i Int) GTE(oth *Int) bool {
	return i.GT(oth) || i.EQ(oth)
}

func (i Int) LT(oth *Int) bool {
	return !i.GTE(oth)
}

func (i Int) LTE(oth *Int) bool {
	return !i.GT(oth)
}

func (i Int) EQ(oth *Int) bool {
	return i.IsNegative() == oth.IsNegative() && i.U.EQ(oth.U)
}

func (i Int) Int64() int64 {
	v := int64(i.U.Uint64())
	if i.negative {
		return -v
	}
	return v
}

func (i Int) BigInt() *big.Int {
	b := i.U.BigInt()
	if i.IsNegative() {
		return b.Neg(b)
	}
	return b
}

func (i Int) String() string {
	if i.IsNegative() {
		return "-" + i.U.String()
	}
	return i.U.String()
}

// MinI returns the smaller of the two values.
func MinI(a, b *Int) *Int {
	if a.LT(b) {
		return a
	}
	return b
}

// MaxI returns the larger of the two values.
func MaxI(a, b *Int) *Int {
	if a.GT(b) {
		return a
	}
	return b
}

// MulDiv returns x * y / z without mutating its operands, truncating
// towards zero. The intermediate product is kept at full precision.
func MulDiv(x, y, z *Int) *Int {
	return x.Clone().Mul(y).Div(z)
}

// SubToZero returns x - y floored at zero, without mutating its
// operands.
func SubToZero(x, y *Int) *Int {
	r := x.Clone().Sub(y)
	if r.IsNegative() {
		return IntZero()
	}
	return r
}
