package domain

import (
	"fmt"
	"math/big"
	"strconv"
)

// BigInt wraps a non-negative integer counter (uptime, peer/block/tx counts,
// view-change counts) that may exceed 2^53 and must therefore never cross the
// wire as a JSON number. Two generations of the chain SDK disagree on whether
// these counters fit in 64 bits (spec.md §9), so the underlying storage is
// big.Int rather than uint64.
type BigInt struct {
	v *big.Int
}

func NewBigInt(v uint64) BigInt {
	return BigInt{v: new(big.Int).SetUint64(v)}
}

func BigIntFromString(s string) (BigInt, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return BigInt{}, fmt.Errorf("invalid integer %q", s)
	}
	return BigInt{v: v}, nil
}

func (b BigInt) String() string {
	if b.v == nil {
		return "0"
	}
	return b.v.String()
}

func (b BigInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(b.String())), nil
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		// tolerate a bare JSON number for round-tripping values we produced
		// before the string convention was enforced everywhere upstream.
		s = string(data)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return fmt.Errorf("invalid big integer %q", s)
	}
	b.v = v
	return nil
}

// Decimal is an arbitrary-precision non-negative balance, stored and
// displayed as a decimal string (spec.md §3, Asset.value).
type Decimal struct {
	r *big.Rat
}

func DecimalFromString(s string) (Decimal, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Decimal{}, fmt.Errorf("invalid decimal %q", s)
	}
	return Decimal{r: r}, nil
}

func DecimalZero() Decimal {
	return Decimal{r: new(big.Rat)}
}

func (d Decimal) IsZero() bool {
	return d.r == nil || d.r.Sign() == 0
}

func (d Decimal) Sign() int {
	if d.r == nil {
		return 0
	}
	return d.r.Sign()
}

func (d Decimal) Add(other Decimal) Decimal {
	out := new(big.Rat)
	out.Add(ratOf(d), ratOf(other))
	return Decimal{r: out}
}

func (d Decimal) Sub(other Decimal) Decimal {
	out := new(big.Rat)
	out.Sub(ratOf(d), ratOf(other))
	return Decimal{r: out}
}

// ClampNonNegative implements the store's clamp-to-zero rule for Burn/Transfer
// underflow (spec.md §4.3): a result that would go negative is clamped to 0.
func (d Decimal) ClampNonNegative() Decimal {
	if d.Sign() < 0 {
		return DecimalZero()
	}
	return d
}

func ratOf(d Decimal) *big.Rat {
	if d.r == nil {
		return new(big.Rat)
	}
	return d.r
}

func (d Decimal) String() string {
	if d.r == nil {
		return "0"
	}
	if d.r.IsInt() {
		return d.r.Num().String()
	}
	return d.r.FloatString(ratPrecision(d.r))
}

// ratPrecision picks enough decimal digits to render the rational exactly
// when its denominator is a power of ten (the only case numeric balances in
// this system produce), falling back to a generous bound otherwise.
func ratPrecision(r *big.Rat) int {
	denom := new(big.Int).Set(r.Denom())
	digits := 0
	ten := big.NewInt(10)
	for denom.Cmp(big.NewInt(1)) > 0 && digits < 40 {
		_, rem := new(big.Int).DivMod(denom, ten, new(big.Int))
		if rem.Sign() != 0 {
			digits = 40
			break
		}
		denom.Div(denom, ten)
		digits++
	}
	return digits
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		s = string(data)
	}
	v, err := DecimalFromString(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
