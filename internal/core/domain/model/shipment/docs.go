// Package shipment holds the Shipment aggregate and its StatusEntry history.
//
// A Shipment is created once, with a price computed from road distance and weight and a
// single "Created" history entry, and afterwards only ever grows by appending status
// entries. Everything except the history is write-once. Deleting a shipment removes its
// history with it; entries are never removed on their own.
package shipment
