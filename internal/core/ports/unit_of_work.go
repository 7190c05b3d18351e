package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command so concurrent commands never
// share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction over shipments. Callers pair Begin with a
// deferred Rollback and finish with Commit; the deferred Rollback then reports an error
// that callers ignore.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error

	// Rollback discards everything written since Begin. It fails when no transaction
	// is open.
	Rollback(ctx context.Context) error

	// ShipmentRepository reads and writes inside the transaction opened by Begin.
	ShipmentRepository() ShipmentRepository
}
