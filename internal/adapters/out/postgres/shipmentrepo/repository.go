package shipmentrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// uniqueViolation is the postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(aggregate *shipment.Shipment)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(*shipment.Shipment) {}

// NewGormShipmentRepository creates a new GORM shipment repository. A nil tracker is allowed
// for read-only use.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	if tracker == nil {
		tracker = noopTracker{}
	}
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the shipment and its history, then copies the generated ids back into the
// aggregate.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.IsPersisted() {
		return shipment.ErrIDAlreadyAssigned
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ports.ErrTrackingCodeConflict, dto.TrackingCode)
		}
		return err
	}

	if err := aggregate.AssignID(dto.ID); err != nil {
		return err
	}
	if err := assignEntryIDs(aggregate, dto.Entries); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update appends the entries added since the shipment was loaded.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.IsPersisted() {
		return errs.NewValueIsRequiredError("shipment id")
	}

	entries := fromDomain(aggregate).Entries
	if len(entries) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return err
	}

	if err := assignEntryIDs(aggregate, entries); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Get retrieves a shipment by id.
func (r *GormShipmentRepository) Get(ctx context.Context, id int64) (*shipment.Shipment, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves a shipment and holds a row lock on it until the transaction ends.
func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id int64) (*shipment.Shipment, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetByTrackingCode retrieves a shipment by its tracking code.
func (r *GormShipmentRepository) GetByTrackingCode(
	ctx context.Context,
	code kernel.TrackingCode,
) (*shipment.Shipment, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := withEntries(r.db.WithContext(ctx)).
		Where("tracking_code = ?", code.String()).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingCode", code.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByCustomerEmail returns the customer's shipments, newest first.
func (r *GormShipmentRepository) ListByCustomerEmail(ctx context.Context, email string) ([]*shipment.Shipment, error) {
	return r.find(r.db.WithContext(ctx).Where("LOWER(customer_email) = LOWER(?)", email))
}

// List returns every shipment, newest first.
func (r *GormShipmentRepository) List(ctx context.Context) ([]*shipment.Shipment, error) {
	return r.find(r.db.WithContext(ctx))
}

// Delete removes a shipment. Its entries go with it through the foreign key cascade.
func (r *GormShipmentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id)
	}
	return nil
}

func (r *GormShipmentRepository) first(db *gorm.DB, id int64) (*shipment.Shipment, error) {
	if id <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("shipmentId", id, 1, "∞")
	}

	var dto ShipmentDTO
	if err := withEntries(db).First(&dto, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormShipmentRepository) find(db *gorm.DB) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	if err := withEntries(db).Order("created_at DESC").Order("id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

func withEntries(db *gorm.DB) *gorm.DB {
	return db.Preload("Entries", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	})
}

// assignEntryIDs copies the ids of freshly inserted rows onto the unpersisted entries, which
// are always the tail of the history.
func assignEntryIDs(aggregate *shipment.Shipment, inserted []StatusEntryDTO) error {
	history := aggregate.StatusHistory()
	offset := len(history) - len(inserted)
	for i, row := range inserted {
		if err := aggregate.AssignEntryID(offset+i, row.ID); err != nil {
			return err
		}
	}
	return nil
}

// isUniqueViolation recognises the error both as translated by gorm and as raised by lib/pq.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
