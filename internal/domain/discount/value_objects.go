package discount

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCode    = errors.New("invalid discount code format")
	ErrInvalidType    = errors.New("invalid discount type")
	ErrInvalidPercent = errors.New("percentage value must be between 0 and 100")
	ErrInvalidAmount  = errors.New("fixed amount cannot be negative")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

// NewCode normalizes to upper case before validating, so lookups are
// case-insensitive.
func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type Type string

const (
	TypePercentage  Type = "percentage"
	TypeFixedAmount Type = "fixed_amount"
)

func NewType(s string) (Type, error) {
	switch Type(s) {
	case TypePercentage, TypeFixedAmount:
		return Type(s), nil
	default:
		return "", ErrInvalidType
	}
}

func (t Type) String() string {
	return string(t)
}

// Value is the discount magnitude: a percentage for percentage discounts,
// a cent amount for fixed discounts.
type Value struct {
	discountType Type
	amount       decimal.Decimal
}

func NewValue(discountType Type, amount float64) (Value, error) {
	d := decimal.NewFromFloat(amount)
	switch discountType {
	case TypePercentage:
		if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
			return Value{}, ErrInvalidPercent
		}
	case TypeFixedAmount:
		if d.IsNegative() {
			return Value{}, ErrInvalidAmount
		}
	default:
		return Value{}, ErrInvalidType
	}
	return Value{discountType: discountType, amount: d}, nil
}

func (v Value) Type() Type {
	return v.discountType
}

func (v Value) Amount() float64 {
	f, _ := v.amount.Float64()
	return f
}

// AmountCents computes the discount for a subtotal, rounded to whole
// cents and clamped so the discount never exceeds the subtotal.
func (v Value) AmountCents(subtotalCents int64) int64 {
	var amount decimal.Decimal
	switch v.discountType {
	case TypePercentage:
		amount = decimal.NewFromInt(subtotalCents).
			Mul(v.amount).
			Div(decimal.NewFromInt(100)).
			Round(0)
	case TypeFixedAmount:
		amount = v.amount.Round(0)
	}
	cents := amount.IntPart()
	if cents < 0 {
		return 0
	}
	if cents > subtotalCents {
		return subtotalCents
	}
	return cents
}
