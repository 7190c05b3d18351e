package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// DefaultRatePerKm is charged for every road kilometre between the two addresses.
	DefaultRatePerKm = decimal.RequireFromString("0.50")
	// DefaultRatePerKg is charged for every kilogram of parcel weight.
	DefaultRatePerKg = decimal.RequireFromString("10.50")
)

// PricingPolicy derives the price of a shipment from its road distance and weight.
// Implementations must be pure: no I/O and the same output for the same input.
type PricingPolicy interface {
	Price(distanceKm, weightKg decimal.Decimal) (kernel.Money, error)
}

var _ PricingPolicy = LinearPricingPolicy{}

// LinearPricingPolicy charges a fixed rate per kilometre plus a fixed rate per kilogram:
//
//	price = distanceKm*RatePerKm + weightKg*RatePerKg
//
// The sum is rounded to cents only once, at the end.
type LinearPricingPolicy struct {
	ratePerKm decimal.Decimal
	ratePerKg decimal.Decimal
}

// NewLinearPricingPolicy validates both rates. Zero rates are allowed, negative ones are not.
func NewLinearPricingPolicy(ratePerKm, ratePerKg decimal.Decimal) (LinearPricingPolicy, error) {
	var err error
	if ratePerKm.IsNegative() {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("ratePerKm", ratePerKm.String(), 0, "∞"))
	}
	if ratePerKg.IsNegative() {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("ratePerKg", ratePerKg.String(), 0, "∞"))
	}
	if err != nil {
		return LinearPricingPolicy{}, err
	}

	return LinearPricingPolicy{ratePerKm: ratePerKm, ratePerKg: ratePerKg}, nil
}

// NewDefaultPricingPolicy uses DefaultRatePerKm and DefaultRatePerKg.
func NewDefaultPricingPolicy() LinearPricingPolicy {
	return LinearPricingPolicy{ratePerKm: DefaultRatePerKm, ratePerKg: DefaultRatePerKg}
}

func (p LinearPricingPolicy) RatePerKm() decimal.Decimal { return p.ratePerKm }
func (p LinearPricingPolicy) RatePerKg() decimal.Decimal { return p.ratePerKg }

func (p LinearPricingPolicy) Price(distanceKm, weightKg decimal.Decimal) (kernel.Money, error) {
	if distanceKm.IsNegative() || weightKg.IsNegative() {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("distance %s km and weight %s kg must not be negative", distanceKm, weightKg))
	}

	return kernel.NewMoney(distanceKm.Mul(p.ratePerKm).Add(weightKg.Mul(p.ratePerKg)))
}
