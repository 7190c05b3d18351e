package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"shipping/internal/core/domain/model/kernel"
)

// TrackingCodeGenerator mints candidate tracking codes. It knows nothing about storage:
// uniqueness is enforced by the repository and a conflicting code is simply replaced by
// a freshly generated one.
type TrackingCodeGenerator interface {
	Generate() (kernel.TrackingCode, error)
}

var _ TrackingCodeGenerator = UUIDTrackingCodeGenerator{}

// UUIDTrackingCodeGenerator takes the first eight hex digits of a random UUID, which gives
// 2^32 possible codes.
type UUIDTrackingCodeGenerator struct {
	newUUID func() (uuid.UUID, error)
}

func NewUUIDTrackingCodeGenerator() UUIDTrackingCodeGenerator {
	return UUIDTrackingCodeGenerator{newUUID: uuid.NewRandom}
}

// NewUUIDTrackingCodeGeneratorWithSource is used by tests that need deterministic codes.
func NewUUIDTrackingCodeGeneratorWithSource(source func() (uuid.UUID, error)) UUIDTrackingCodeGenerator {
	return UUIDTrackingCodeGenerator{newUUID: source}
}

func (g UUIDTrackingCodeGenerator) Generate() (kernel.TrackingCode, error) {
	newUUID := g.newUUID
	if newUUID == nil {
		newUUID = uuid.NewRandom
	}

	id, err := newUUID()
	if err != nil {
		return kernel.TrackingCode{}, fmt.Errorf("generate tracking code: %w", err)
	}

	body := strings.ToUpper(id.String()[:kernel.TrackingCodeBodyLength])
	return kernel.NewTrackingCode(kernel.TrackingCodePrefix + body + kernel.TrackingCodeSuffix)
}
