// Package inventory models per-location stock positions. A Record pairs a
// product with a location and carries the two counters the transfer lifecycle
// moves: actual stock (physical) and expected stock (reserved by in-flight
// transfers). All mutation happens through the ledger port; this package only
// represents state for reads and validation.
package inventory
