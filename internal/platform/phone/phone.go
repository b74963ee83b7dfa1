// Package phone normalizes customer phone numbers.
package phone

import (
	"fmt"

	"github.com/ttacon/libphonenumber"

	portssvc "github.com/SscSPs/vetpos_backend/internal/core/ports/services"
)

// Normalizer formats numbers as E.164, reading local numbers in a default region.
type Normalizer struct {
	region string
}

var _ portssvc.PhoneNormalizer = Normalizer{}

// NewNormalizer returns a normalizer for region, an ISO 3166-1 alpha-2 code.
func NewNormalizer(region string) Normalizer {
	return Normalizer{region: region}
}

func (n Normalizer) Normalize(phone string) (string, error) {
	p, err := libphonenumber.Parse(phone, n.region)
	if err != nil {
		return "", err
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("phone number %q is not valid", phone)
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
