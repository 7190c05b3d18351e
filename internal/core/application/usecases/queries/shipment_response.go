// Package queries contains read operations over shipments.
// Queries never change state; they return read models shaped for the API.
package queries

import (
	"time"

	"github.com/shopspring/decimal"

	"shipping/internal/core/domain/model/shipment"
)

// ShipmentResponse is the read model of a shipment with its full history.
type ShipmentResponse struct {
	ID            int64
	TrackingCode  string
	Source        string
	Destination   string
	DistanceKm    decimal.Decimal
	WeightKg      decimal.Decimal
	Price         decimal.Decimal
	CustomerEmail string
	CustomerName  string
	CreatedAt     time.Time
	StatusHistory []StatusEntryResponse
}

// StatusEntryResponse is the read model of one history entry.
type StatusEntryResponse struct {
	ID          int64
	Status      string
	Source      string
	Destination string
	OccurredAt  time.Time
}

func NewShipmentResponse(s *shipment.Shipment) ShipmentResponse {
	history := s.StatusHistory()
	entries := make([]StatusEntryResponse, 0, len(history))
	for _, entry := range history {
		entries = append(entries, NewStatusEntryResponse(entry))
	}

	return ShipmentResponse{
		ID:            s.ID(),
		TrackingCode:  s.TrackingCode().String(),
		Source:        s.Source(),
		Destination:   s.Destination(),
		DistanceKm:    s.DistanceKm(),
		WeightKg:      s.WeightKg(),
		Price:         s.Price().Amount(),
		CustomerEmail: s.CustomerEmail(),
		CustomerName:  s.CustomerName(),
		CreatedAt:     s.CreatedAt(),
		StatusHistory: entries,
	}
}

func NewStatusEntryResponse(entry shipment.StatusEntry) StatusEntryResponse {
	return StatusEntryResponse{
		ID:          entry.ID(),
		Status:      entry.Status(),
		Source:      entry.Source(),
		Destination: entry.Destination(),
		OccurredAt:  entry.OccurredAt(),
	}
}

func newShipmentResponses(shipments []*shipment.Shipment) []ShipmentResponse {
	out := make([]ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, NewShipmentResponse(s))
	}
	return out
}
