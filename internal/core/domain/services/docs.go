// Package services provides the pure domain services used while creating a shipment:
// pricing a parcel from its road distance and weight, and minting tracking codes.
//
// Both are interfaces so the rates or the code format can change without touching the
// shipment workflow.
package services
