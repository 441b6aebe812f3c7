package kernel

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when a zero-value Address is used.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

var postcodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9 -]{1,9}$`)

// Address is a delivery destination. Line2 is optional; the postcode is
// normalised to upper case with collapsed inner whitespace so it can be used
// as part of a cache key.
type Address struct {
	line1    string
	line2    string
	city     string
	postcode string
	country  string
	guard    guard.ConstructorGuard
}

// NewAddress validates the mandatory parts of a delivery address.
func NewAddress(line1, line2, city, postcode, country string) (Address, error) {
	a := Address{
		line2: strings.TrimSpace(line2),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setLine1(line1),
		a.setCity(city),
		a.setPostcode(postcode),
		a.setCountry(country),
	); err != nil {
		return Address{}, err
	}

	return a, nil
}

// NormalizePostcode upper-cases the value and collapses whitespace.
func NormalizePostcode(postcode string) string {
	return strings.Join(strings.Fields(strings.ToUpper(postcode)), " ")
}

// ValidatePostcode checks a normalised postcode.
func ValidatePostcode(postcode string) error {
	if postcode == "" {
		return errs.NewValueIsRequiredError("postcode")
	}
	if !postcodePattern.MatchString(postcode) {
		return errs.NewValueIsInvalidErrorWithCause("postcode", fmt.Errorf("%q is not a postcode", postcode))
	}
	return nil
}

// Validate rejects the zero value.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) Line1() string    { return a.line1 }
func (a Address) Line2() string    { return a.line2 }
func (a Address) City() string     { return a.city }
func (a Address) Postcode() string { return a.postcode }
func (a Address) Country() string  { return a.country }

// IsEqual compares all address parts.
func (a Address) IsEqual(other Address) bool {
	return a.line1 == other.line1 &&
		a.line2 == other.line2 &&
		a.city == other.city &&
		a.postcode == other.postcode &&
		a.country == other.country
}

func (a Address) String() string {
	parts := []string{a.line1}
	if a.line2 != "" {
		parts = append(parts, a.line2)
	}
	parts = append(parts, a.city, a.postcode, a.country)
	return strings.Join(parts, ", ")
}

func (a *Address) setLine1(line1 string) error {
	line1 = strings.TrimSpace(line1)
	if line1 == "" {
		return errs.NewValueIsRequiredError("address line1")
	}
	a.line1 = line1
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setPostcode(postcode string) error {
	postcode = NormalizePostcode(postcode)
	if err := ValidatePostcode(postcode); err != nil {
		return err
	}
	a.postcode = postcode
	return nil
}

func (a *Address) setCountry(country string) error {
	country = strings.ToUpper(strings.TrimSpace(country))
	if len(country) != 2 {
		return errs.NewValueIsInvalidErrorWithCause("country", fmt.Errorf("%q is not an ISO-3166 alpha-2 code", country))
	}
	a.country = country
	return nil
}
