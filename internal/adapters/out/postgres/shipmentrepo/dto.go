// Package shipmentrepo persists the shipment aggregate with gorm. A shipment row owns its
// status entries; the entries are written when first appended and never updated.
package shipmentrepo

import (
	"time"

	"github.com/shopspring/decimal"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ShipmentDTO is the shipments table row.
type ShipmentDTO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	TrackingCode  string          `gorm:"type:varchar(14);not null;uniqueIndex:idx_shipments_tracking_code"`
	Source        string          `gorm:"not null"`
	Destination   string          `gorm:"not null"`
	DistanceKm    decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	WeightKg      decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	Price         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CustomerEmail string          `gorm:"not null;index:idx_shipments_customer_email"`
	CustomerName  string          `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"not null"`

	Entries []StatusEntryDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// StatusEntryDTO is one row of a shipment's history. Entry ids grow with insertion, so
// ordering by id gives the chronological history.
type StatusEntryDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	ShipmentID  int64     `gorm:"not null;index"`
	Status      string    `gorm:"not null"`
	Source      string    `gorm:"not null;default:''"`
	Destination string    `gorm:"not null;default:''"`
	OccurredAt  time.Time `gorm:"not null"`
}

func (StatusEntryDTO) TableName() string {
	return "status_entries"
}

// fromDomain maps the aggregate to a row. Only entries that have not been stored yet are
// included, which for a new shipment is the whole history.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:            aggregate.ID(),
		TrackingCode:  aggregate.TrackingCode().String(),
		Source:        aggregate.Source(),
		Destination:   aggregate.Destination(),
		DistanceKm:    aggregate.DistanceKm(),
		WeightKg:      aggregate.WeightKg(),
		Price:         aggregate.Price().Amount(),
		CustomerEmail: aggregate.CustomerEmail(),
		CustomerName:  aggregate.CustomerName(),
		CreatedAt:     aggregate.CreatedAt(),
	}

	for _, entry := range aggregate.StatusHistory() {
		if entry.IsPersisted() {
			continue
		}
		dto.Entries = append(dto.Entries, entryFromDomain(aggregate.ID(), entry))
	}

	return dto
}

func entryFromDomain(shipmentID int64, entry shipment.StatusEntry) StatusEntryDTO {
	return StatusEntryDTO{
		ShipmentID:  shipmentID,
		Status:      entry.Status(),
		Source:      entry.Source(),
		Destination: entry.Destination(),
		OccurredAt:  entry.OccurredAt(),
	}
}

// toDomain rebuilds the aggregate. Entries must already be ordered by id.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	code, err := kernel.NewTrackingCode(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	history := make([]shipment.StatusEntry, 0, len(dto.Entries))
	for _, e := range dto.Entries {
		entry, entryErr := shipment.RestoreStatusEntry(e.ID, e.Status, e.Source, e.Destination, e.OccurredAt)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return shipment.RestoreShipment(dto.ID, shipment.Params{
		TrackingCode:  code,
		Source:        dto.Source,
		Destination:   dto.Destination,
		DistanceKm:    dto.DistanceKm,
		WeightKg:      dto.WeightKg,
		Price:         price,
		CustomerEmail: dto.CustomerEmail,
		CustomerName:  dto.CustomerName,
		CreatedAt:     dto.CreatedAt,
	}, history)
}
