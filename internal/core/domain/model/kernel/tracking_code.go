package kernel

import (
	"fmt"
	"regexp"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

const (
	TrackingCodePrefix     = "MIKU"
	TrackingCodeSuffix     = "BR"
	TrackingCodeBodyLength = 8
)

var (
	ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
		"tracking code must be created via NewTrackingCode")

	trackingCodePattern = regexp.MustCompile(`^MIKU[A-Z0-9]{8}BR$`)
)

// TrackingCode is the public, human-shareable identifier of a shipment:
// "MIKU" followed by 8 upper-case alphanumerics and "BR", e.g. MIKUA4B9C2D8BR.
type TrackingCode struct {
	value string
	guard guard.ConstructorGuard
}

// NewTrackingCode validates value against the tracking code format.
func NewTrackingCode(value string) (TrackingCode, error) {
	if value == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("trackingCode")
	}
	if !trackingCodePattern.MatchString(value) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingCode", fmt.Errorf("%q does not match %s", value, trackingCodePattern.String()))
	}

	return TrackingCode{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (c TrackingCode) Validate() error {
	return c.guard.Validate(ErrTrackingCodeIsNotConstructed)
}

func (c TrackingCode) String() string {
	return c.value
}

func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}
