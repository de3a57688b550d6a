package ir

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type NumberKind int

const (
	Int32 NumberKind = iota
	Int64
	BigInt
	BigDecimal
)

func (k NumberKind) String() string {
	switch k {
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case BigInt:
		return "BigInt"
	case BigDecimal:
		return "BigDecimal"
	}
	return "<unknown number kind>"
}

// Number holds a numeric literal exactly. Which field is populated depends
// on Kind: Int for Int32 and Int64, Big for BigInt and Dec for BigDecimal.
type Number struct {
	Kind NumberKind
	Int  int64
	Big  *big.Int
	Dec  decimal.Decimal
}

// ParseNumber chooses the narrowest exact representation of lit, a JSON
// number literal. Integer literals become Int32, Int64 or BigInt, in that
// order of preference. Anything with a fraction or exponent becomes
// BigDecimal.
func ParseNumber(lit string) (*Number, error) {
	if lit == "" {
		return nil, fmt.Errorf("%w: empty literal", ErrNumber)
	}
	if strings.ContainsAny(lit, ".eE") {
		d, err := decimal.NewFromString(lit)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrNumber, lit, err)
		}
		return &Number{Kind: BigDecimal, Dec: d}, nil
	}
	i, err := strconv.ParseInt(lit, 10, 64)
	if err == nil {
		return NewInt(i), nil
	}
	if !errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("%w: %q", ErrNumber, lit)
	}
	b, ok := new(big.Int).SetString(lit, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNumber, lit)
	}
	return &Number{Kind: BigInt, Big: b}, nil
}

// NewInt returns an Int32 number if v fits, Int64 otherwise.
func NewInt(v int64) *Number {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return &Number{Kind: Int32, Int: v}
	}
	return &Number{Kind: Int64, Int: v}
}

// NewBigInt narrows v to Int32 or Int64 when it fits. v is copied.
func NewBigInt(v *big.Int) *Number {
	if v.IsInt64() {
		return NewInt(v.Int64())
	}
	return &Number{Kind: BigInt, Big: new(big.Int).Set(v)}
}

func NewDecimal(d decimal.Decimal) *Number {
	return &Number{Kind: BigDecimal, Dec: d}
}

// NewFloat converts f through its shortest decimal representation.
// NaN and infinities have no JSON form.
func NewFloat(f float64) (*Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v has no JSON representation", ErrNumber, f)
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(f, 'g', -1, 64))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNumber, err)
	}
	return NewDecimal(d), nil
}

func (n *Number) Clone() *Number {
	res := &Number{Kind: n.Kind, Int: n.Int, Dec: n.Dec}
	if n.Big != nil {
		res.Big = new(big.Int).Set(n.Big)
	}
	return res
}

func (n *Number) IsInteger() bool {
	return n.Kind != BigDecimal
}

// Equal reports whether n and o have the same kind and value.
func (n *Number) Equal(o *Number) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind {
		return false
	}
	switch n.Kind {
	case Int32, Int64:
		return n.Int == o.Int
	case BigInt:
		return n.Big.Cmp(o.Big) == 0
	default:
		return compareDecimal(n.Dec, o.Dec) == 0
	}
}

// Compare orders numbers by value and then by kind.
func (n *Number) Compare(o *Number) int {
	if c := compareDecimal(n.Decimal(), o.Decimal()); c != 0 {
		return c
	}
	return cmp.Compare(n.Kind, o.Kind)
}

// Float64 is a possibly lossy view of n. Values beyond the float64 range
// become infinities or zero.
func (n *Number) Float64() float64 {
	switch n.Kind {
	case Int32, Int64:
		return float64(n.Int)
	case BigInt:
		f, _ := new(big.Float).SetInt(n.Big).Float64()
		return f
	default:
		p := splitDecimal(n.Dec)
		if p.sign == 0 {
			return 0
		}
		lit := p.digits + "e" + strconv.FormatInt(p.exp, 10)
		if p.sign < 0 {
			lit = "-" + lit
		}
		// out of range literals yield ±Inf or ±0 with an error
		f, _ := strconv.ParseFloat(lit, 64)
		return f
	}
}

// Int64 returns n as an int64 when that is exact.
func (n *Number) Int64() (int64, bool) {
	switch n.Kind {
	case Int32, Int64:
		return n.Int, true
	case BigInt:
		if n.Big.IsInt64() {
			return n.Big.Int64(), true
		}
		return 0, false
	default:
		p := splitDecimal(n.Dec)
		if p.exp < 0 || p.adjusted() > 19 {
			return 0, false
		}
		b := p.bigInt()
		if !b.IsInt64() {
			return 0, false
		}
		return b.Int64(), true
	}
}

// MaxIntegerDigits bounds the integers BigInt derives from a BigDecimal,
// so that a short literal such as 1e400000000 cannot demand a huge
// allocation.
const MaxIntegerDigits = 1 << 16

// BigInt returns n as a new big.Int when n is integral. A BigDecimal with
// more than MaxIntegerDigits integer digits has no BigInt view.
func (n *Number) BigInt() (*big.Int, bool) {
	switch n.Kind {
	case Int32, Int64:
		return big.NewInt(n.Int), true
	case BigInt:
		return new(big.Int).Set(n.Big), true
	default:
		p := splitDecimal(n.Dec)
		if p.exp < 0 || p.adjusted() > MaxIntegerDigits {
			return nil, false
		}
		return p.bigInt(), true
	}
}

// decimalParts is a decimal with trailing zeros moved from the
// coefficient into the exponent, so that equal values have equal parts.
// Its value is sign * digits * 10^exp.
type decimalParts struct {
	sign   int
	digits string
	exp    int64
}

func splitDecimal(d decimal.Decimal) decimalParts {
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return decimalParts{digits: "0"}
	}
	p := decimalParts{sign: coef.Sign(), exp: int64(d.Exponent())}
	p.digits = strings.TrimLeft(coef.String(), "-")
	trimmed := strings.TrimRight(p.digits, "0")
	p.exp += int64(len(p.digits) - len(trimmed))
	p.digits = trimmed
	return p
}

// adjusted is the number of digits before the decimal point.
func (p decimalParts) adjusted() int64 {
	return int64(len(p.digits)) + p.exp
}

// bigInt requires exp >= 0.
func (p decimalParts) bigInt() *big.Int {
	b, _ := new(big.Int).SetString(p.digits, 10)
	if p.exp > 0 {
		b.Mul(b, new(big.Int).Exp(big.NewInt(10), big.NewInt(p.exp), nil))
	}
	if p.sign < 0 {
		b.Neg(b)
	}
	return b
}

// compareDecimal compares a and b without scaling either to the other's
// exponent, so its cost depends on the number of digits only.
func compareDecimal(a, b decimal.Decimal) int {
	pa, pb := splitDecimal(a), splitDecimal(b)
	if pa.sign != pb.sign {
		return cmp.Compare(pa.sign, pb.sign)
	}
	if pa.sign == 0 {
		return 0
	}
	c := cmp.Compare(pa.adjusted(), pb.adjusted())
	if c == 0 {
		// same magnitude: the digits decide, aligned on the left
		da, db := pa.digits, pb.digits
		if len(da) < len(db) {
			da += strings.Repeat("0", len(db)-len(da))
		} else {
			db += strings.Repeat("0", len(da)-len(db))
		}
		c = strings.Compare(da, db)
	}
	return c * pa.sign
}

// Decimal returns the exact decimal value of n.
func (n *Number) Decimal() decimal.Decimal {
	switch n.Kind {
	case Int32, Int64:
		return decimal.NewFromInt(n.Int)
	case BigInt:
		return decimal.NewFromBigInt(n.Big, 0)
	default:
		return n.Dec
	}
}

// String returns the canonical text of n. Integers are written in base 10.
// Decimals are written with the fewest digits that keep the value exact,
// and always contain a '.' or an exponent so that they parse back as
// BigDecimal.
func (n *Number) String() string {
	switch n.Kind {
	case Int32, Int64:
		return strconv.FormatInt(n.Int, 10)
	case BigInt:
		return n.Big.String()
	default:
		return formatDecimal(n.Dec)
	}
}

const maxLeadingZeros = 6

func formatDecimal(d decimal.Decimal) string {
	p := splitDecimal(d)
	if p.sign == 0 {
		return "0.0"
	}
	neg := p.sign < 0
	digits, exp := p.digits, p.exp
	var s string
	switch {
	case exp == 0:
		s = digits + ".0"
	case exp > 0:
		s = digits + "E+" + strconv.FormatInt(exp, 10)
	default:
		point := int64(len(digits)) + exp
		switch {
		case point > 0:
			s = digits[:point] + "." + digits[point:]
		case point > -maxLeadingZeros:
			s = "0." + strings.Repeat("0", int(-point)) + digits
		default:
			s = digits[:1]
			if len(digits) > 1 {
				s += "." + digits[1:]
			}
			s += "E" + strconv.FormatInt(point-1, 10)
		}
	}
	if neg {
		return "-" + s
	}
	return s
}
