// Package kernel provides the value objects shared by the shipping domain model.
//
// The package includes:
//   - Money: a non-negative, two-decimal monetary amount backed by shopspring/decimal
//   - Address: a resolved postal address with its label and distance-query renderings
//   - TrackingCode: the public MIKU........BR shipment identifier
//
// Values are immutable and can only be obtained through their constructors; each type
// embeds a guard.ConstructorGuard so zero values fail Validate.
package kernel
