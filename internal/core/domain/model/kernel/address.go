package kernel

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

const (
	// PostalCodeLength is the number of digits of a Brazilian CEP.
	PostalCodeLength = 8

	// DefaultCountry is appended to distance queries.
	DefaultCountry = "BR"
)

var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// AddressParams carries the raw fields a postal-code lookup returns.
type AddressParams struct {
	PostalCode string
	Street     string
	Complement string
	District   string
	Locality   string
	Region     string
	Country    string
}

// Address is a resolved postal address.
//
// An Address is valid when it has a postal code, a locality and a region: those are
// the fields both the shipment label and the road-distance lookup depend on.
// Street may be blank, since city-wide postal codes resolve without one.
type Address struct { //nolint:recvcheck //using for validation
	postalCode string
	street     string
	complement string
	district   string
	locality   string
	region     string
	country    string

	guard guard.ConstructorGuard
}

// NewAddress validates params and builds an Address. Country defaults to DefaultCountry.
func NewAddress(params AddressParams) (Address, error) {
	addr := Address{
		street:     strings.TrimSpace(params.Street),
		complement: strings.TrimSpace(params.Complement),
		district:   strings.TrimSpace(params.District),
		country:    strings.TrimSpace(params.Country),
		guard:      guard.NewConstructorGuard(),
	}
	if addr.country == "" {
		addr.country = DefaultCountry
	}

	if err := errors.Join(
		addr.setPostalCode(params.PostalCode),
		addr.setLocality(params.Locality),
		addr.setRegion(params.Region),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// IsValid reports whether the address passed construction.
func (a Address) IsValid() bool {
	return a.Validate() == nil
}

func (a Address) PostalCode() string { return a.postalCode }
func (a Address) Street() string     { return a.street }
func (a Address) Complement() string { return a.complement }
func (a Address) District() string   { return a.district }
func (a Address) Locality() string   { return a.locality }
func (a Address) Region() string     { return a.region }
func (a Address) Country() string    { return a.country }

// Complete renders the full address stored on the shipment:
// "street, complement - district, locality - region".
func (a Address) Complete() string {
	return fmt.Sprintf("%s, %s - %s, %s - %s",
		a.street, a.complement, a.district, a.locality, a.region)
}

// DistanceQuery renders the "locality, region, country" form used for road-distance lookups
// and as the leg labels of the initial status entry.
func (a Address) DistanceQuery() string {
	return fmt.Sprintf("%s, %s, %s", a.locality, a.region, a.country)
}

func (a Address) String() string {
	return a.Complete()
}

func (a *Address) setPostalCode(raw string) error {
	postalCode, err := NormalizePostalCode(raw)
	if err != nil {
		return err
	}
	a.postalCode = postalCode
	return nil
}

func (a *Address) setLocality(locality string) error {
	locality = strings.TrimSpace(locality)
	if locality == "" {
		return errs.NewValueIsRequiredError("locality")
	}
	a.locality = locality
	return nil
}

func (a *Address) setRegion(region string) error {
	region = strings.TrimSpace(region)
	if region == "" {
		return errs.NewValueIsRequiredError("region")
	}
	a.region = region
	return nil
}

// NormalizePostalCode strips the usual "01310-100" punctuation and checks that exactly
// PostalCodeLength digits remain.
func NormalizePostalCode(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errs.NewValueIsRequiredError("postalCode")
	}

	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '.' || r == ' ':
		default:
			return "", errs.NewValueIsInvalidErrorWithCause(
				"postalCode", fmt.Errorf("%q contains %q", raw, r))
		}
	}

	digits := b.String()
	if len(digits) != PostalCodeLength {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"postalCode", fmt.Errorf("%q has %d digits, want %d", raw, len(digits), PostalCodeLength))
	}
	return digits, nil
}
