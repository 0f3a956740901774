package ports

import (
	"context"
	"time"

	"stocktransfer/internal/core/domain/model/kernel"
)

// BookingItem is one product line in a consignment booking.
type BookingItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// BookingRequest is the payload for booking a consignment with the external
// logistics system on dispatch.
type BookingRequest struct {
	// DestinationLocation is the outlet the consignment is addressed to.
	DestinationLocation kernel.UUID
	// Items are the product/quantity pairs being moved.
	Items []BookingItem
	// DueDate is the transfer's expected arrival date.
	DueDate time.Time
	// Name is the human-readable consignment label, derived from the transfer id.
	Name string
}

// ConsignmentGateway books stock movement with the external system and reports
// its delivery progress. Book is called inside the dispatch transaction: a
// gateway failure aborts the whole send operation.
type ConsignmentGateway interface {
	// Book registers the consignment and returns the external reference id.
	// A failed call or an unusable response yields errs.ExternalServiceError.
	Book(ctx context.Context, request BookingRequest) (string, error)

	// Status returns the external system's current status string for a
	// previously booked consignment (e.g. "SENT", "DISPATCHED", "RECEIVED").
	Status(ctx context.Context, consignmentRef string) (string, error)
}
