package shipment

import (
	"errors"
	"strings"
	"time"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// StatusCreated is the status of the entry every shipment starts its history with.
const StatusCreated = "Created"

var (
	ErrStatusIsRequired            = errs.NewValueIsRequiredError("status")
	ErrOccurredAtIsRequired        = errs.NewValueIsRequiredError("occurredAt")
	ErrStatusEntryIsNotConstructed = errors.New("StatusEntry must be created via NewStatusEntry constructor")
)

// StatusEntry is one checkpoint of a shipment's history.
//
// Status is caller-supplied free text; there is no fixed vocabulary. Source and
// destination are optional labels of the leg the checkpoint refers to and are
// independent of the shipment's own addresses.
//
// Entries are owned by exactly one Shipment and are never changed after they are
// appended, with the single exception of the storage identifier, which is assigned
// once when the entry is first persisted.
type StatusEntry struct {
	id          int64
	status      string
	source      string
	destination string
	occurredAt  time.Time

	guard guard.ConstructorGuard
}

// NewStatusEntry creates an entry that has not been persisted yet (ID is zero).
func NewStatusEntry(status, source, destination string, occurredAt time.Time) (StatusEntry, error) {
	return RestoreStatusEntry(0, status, source, destination, occurredAt)
}

// RestoreStatusEntry rebuilds an entry loaded from storage.
func RestoreStatusEntry(id int64, status, source, destination string, occurredAt time.Time) (StatusEntry, error) {
	entry := StatusEntry{
		id:          id,
		source:      strings.TrimSpace(source),
		destination: strings.TrimSpace(destination),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		entry.setStatus(status),
		entry.setOccurredAt(occurredAt),
	); err != nil {
		return StatusEntry{}, err
	}

	return entry, nil
}

func (e StatusEntry) Validate() error {
	return e.guard.Validate(ErrStatusEntryIsNotConstructed)
}

// ID is zero until the entry has been persisted.
func (e StatusEntry) ID() int64 { return e.id }

func (e StatusEntry) Status() string        { return e.status }
func (e StatusEntry) Source() string        { return e.source }
func (e StatusEntry) Destination() string   { return e.destination }
func (e StatusEntry) OccurredAt() time.Time { return e.occurredAt }

// IsPersisted reports whether storage has assigned the entry an identifier.
func (e StatusEntry) IsPersisted() bool {
	return e.id != 0
}

func (e *StatusEntry) setStatus(status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return ErrStatusIsRequired
	}
	e.status = status
	return nil
}

func (e *StatusEntry) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return ErrOccurredAtIsRequired
	}
	e.occurredAt = occurredAt.UTC()
	return nil
}
