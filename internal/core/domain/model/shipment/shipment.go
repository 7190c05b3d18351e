package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// QuantityScale is the number of decimal places distance and weight are kept to.
const QuantityScale int32 = 3

var (
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
	ErrIDAlreadyAssigned        = errors.New("shipment id is already assigned")
	ErrEntryIDAlreadyAssigned   = errors.New("status entry id is already assigned")
	ErrHistoryIsRequired        = errs.NewValueIsRequiredError("statusHistory")
)

// Params holds the write-once attributes of a shipment.
type Params struct {
	TrackingCode  kernel.TrackingCode
	Source        string
	Destination   string
	DistanceKm    decimal.Decimal
	WeightKg      decimal.Decimal
	Price         kernel.Money
	CustomerEmail string
	CustomerName  string
	CreatedAt     time.Time
}

// Shipment is the aggregate root of the shipping domain: a parcel travelling between two
// resolved addresses, priced once, and tracked through an append-only status history.
//
// Business rules:
//   - the tracking code, addresses, distance, weight, price, customer and creation time
//     never change after construction
//   - the history always holds at least one entry and only ever grows
//   - an appended entry never occurs before the entry preceding it
//   - a shipment belongs to the customer identified by its e-mail address
//
// The numeric ID is assigned by storage after the first insert. A Shipment that has not
// been persisted has ID zero.
//
// Example:
//
//	initial, _ := shipment.NewStatusEntry(shipment.StatusCreated,
//	    "São Paulo, SP, BR", "Rio de Janeiro, RJ, BR", now)
//	s, err := shipment.NewShipment(params, initial)
//	if err != nil {
//	    return err
//	}
//	entry, err := s.AppendStatus("In transit", "Resende, RJ, BR", "", now)
type Shipment struct {
	id            int64
	trackingCode  kernel.TrackingCode
	source        string
	destination   string
	distanceKm    decimal.Decimal
	weightKg      decimal.Decimal
	price         kernel.Money
	customerEmail string
	customerName  string
	createdAt     time.Time
	history       []StatusEntry

	guard guard.ConstructorGuard
}

// NewShipment creates a shipment that has not been persisted yet, with initial as the
// first entry of its history.
func NewShipment(params Params, initial StatusEntry) (*Shipment, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	return build(0, params, []StatusEntry{initial})
}

// RestoreShipment rebuilds a shipment and its history from storage. History must be in
// chronological order and hold at least one entry.
func RestoreShipment(id int64, params Params, history []StatusEntry) (*Shipment, error) {
	if id <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("id", id, 1, "∞")
	}
	return build(id, params, history)
}

func build(id int64, params Params, history []StatusEntry) (*Shipment, error) {
	s := &Shipment{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setTrackingCode(params.TrackingCode),
		s.setAddresses(params.Source, params.Destination),
		s.setDistanceKm(params.DistanceKm),
		s.setWeightKg(params.WeightKg),
		s.setPrice(params.Price),
		s.setCustomer(params.CustomerEmail, params.CustomerName),
		s.setCreatedAt(params.CreatedAt),
		s.setHistory(history),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() int64                         { return s.id }
func (s *Shipment) TrackingCode() kernel.TrackingCode { return s.trackingCode }
func (s *Shipment) Source() string                    { return s.source }
func (s *Shipment) Destination() string               { return s.destination }
func (s *Shipment) DistanceKm() decimal.Decimal       { return s.distanceKm }
func (s *Shipment) WeightKg() decimal.Decimal         { return s.weightKg }
func (s *Shipment) Price() kernel.Money               { return s.price }
func (s *Shipment) CustomerEmail() string             { return s.customerEmail }
func (s *Shipment) CustomerName() string              { return s.customerName }
func (s *Shipment) CreatedAt() time.Time              { return s.createdAt }

// IsPersisted reports whether storage has assigned the shipment an identifier.
func (s *Shipment) IsPersisted() bool {
	return s.id != 0
}

// StatusHistory returns a copy of the history in chronological order.
func (s *Shipment) StatusHistory() []StatusEntry {
	out := make([]StatusEntry, len(s.history))
	copy(out, s.history)
	return out
}

// LatestStatus returns the most recent entry. The history is never empty for a
// constructed shipment.
func (s *Shipment) LatestStatus() StatusEntry {
	return s.history[len(s.history)-1]
}

// BelongsTo reports whether email identifies the shipment's customer. The comparison
// ignores case.
func (s *Shipment) BelongsTo(email string) bool {
	return strings.EqualFold(s.customerEmail, strings.TrimSpace(email))
}

// AppendStatus adds a checkpoint to the end of the history.
//
// The entry's occurredAt is now, unless the latest entry is later than now (a clock that
// went backwards); then the latest entry's timestamp is reused so that the history never
// goes back in time.
func (s *Shipment) AppendStatus(status, source, destination string, now time.Time) (StatusEntry, error) {
	if err := s.Validate(); err != nil {
		return StatusEntry{}, err
	}

	occurredAt := now.UTC()
	if last := s.LatestStatus().OccurredAt(); last.After(occurredAt) {
		occurredAt = last
	}

	entry, err := NewStatusEntry(status, source, destination, occurredAt)
	if err != nil {
		return StatusEntry{}, err
	}

	s.history = append(s.history, entry)
	return entry, nil
}

// AssignID records the identifier storage generated for the shipment. It may be called
// once.
func (s *Shipment) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", id, 1, "∞")
	}
	if s.id != 0 {
		return fmt.Errorf("%w: %d", ErrIDAlreadyAssigned, s.id)
	}
	s.id = id
	return nil
}

// AssignEntryID records the identifier storage generated for the history entry at
// index. Each entry may receive an identifier once.
func (s *Shipment) AssignEntryID(index int, id int64) error {
	if index < 0 || index >= len(s.history) {
		return errs.NewValueIsOutOfRangeError("index", index, 0, len(s.history)-1)
	}
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", id, 1, "∞")
	}
	if s.history[index].IsPersisted() {
		return fmt.Errorf("%w: entry %d has id %d", ErrEntryIDAlreadyAssigned, index, s.history[index].id)
	}
	s.history[index].id = id
	return nil
}

func (s *Shipment) setTrackingCode(code kernel.TrackingCode) error {
	if err := code.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("trackingCode", err)
	}
	s.trackingCode = code
	return nil
}

func (s *Shipment) setAddresses(source, destination string) error {
	source, destination = strings.TrimSpace(source), strings.TrimSpace(destination)

	var err error
	if source == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("source"))
	}
	if destination == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("destination"))
	}
	if err != nil {
		return err
	}

	s.source, s.destination = source, destination
	return nil
}

func (s *Shipment) setDistanceKm(distanceKm decimal.Decimal) error {
	if distanceKm.IsNegative() {
		return errs.NewValueIsOutOfRangeError("distanceKm", distanceKm.String(), 0, "∞")
	}
	s.distanceKm = distanceKm.Round(QuantityScale)
	return nil
}

func (s *Shipment) setWeightKg(weightKg decimal.Decimal) error {
	weightKg = weightKg.Round(QuantityScale)
	if !weightKg.IsPositive() {
		return errs.NewValueIsOutOfRangeError("weightKg", weightKg.String(), "0.001", "∞")
	}
	s.weightKg = weightKg
	return nil
}

func (s *Shipment) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	s.price = price
	return nil
}

func (s *Shipment) setCustomer(email, name string) error {
	email, name = strings.TrimSpace(email), strings.TrimSpace(name)

	var err error
	if email == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customerEmail"))
	}
	if name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("customerName"))
	}
	if err != nil {
		return err
	}

	s.customerEmail, s.customerName = email, name
	return nil
}

func (s *Shipment) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	s.createdAt = createdAt.UTC()
	return nil
}

func (s *Shipment) setHistory(history []StatusEntry) error {
	if len(history) == 0 {
		return ErrHistoryIsRequired
	}

	for i, entry := range history {
		if err := entry.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("statusHistory[%d]", i), err)
		}
		if i > 0 && entry.OccurredAt().Before(history[i-1].OccurredAt()) {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("statusHistory[%d]", i),
				fmt.Errorf("occurred at %s, before the previous entry", entry.OccurredAt().Format(time.RFC3339Nano)))
		}
	}

	s.history = make([]StatusEntry, len(history))
	copy(s.history, history)
	return nil
}
