// Package queries contains read-only operations implementing the query side
// of the CQRS architecture. Query handlers bypass the domain model and read
// database projections directly for optimal performance.
package queries

import (
	"errors"
	"time"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/pkg/guard"
)

var (
	ErrGetTransferQueryIsNotConstructed = errors.New(
		"GetTransferQuery must be created via NewGetTransferQuery constructor",
	)
)

// GetTransferQuery retrieves one stock transfer with its items and receipt
// progress.
type GetTransferQuery struct {
	transferID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTransferQuery creates a query for a single transfer.
func NewGetTransferQuery(transferID kernel.UUID) (GetTransferQuery, error) {
	if err := transferID.Validate(); err != nil {
		return GetTransferQuery{}, err
	}

	return GetTransferQuery{
		transferID: transferID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// TransferID returns the identifier of the requested transfer.
func (q GetTransferQuery) TransferID() kernel.UUID {
	return q.transferID
}

// Validate ensures the query was created through the constructor.
func (q GetTransferQuery) Validate() error {
	return q.guard.Validate(ErrGetTransferQueryIsNotConstructed)
}

// GetTransferItemResponse is one item line in the transfer read model.
type GetTransferItemResponse struct {
	ID           kernel.UUID
	ProductID    kernel.UUID
	OrderedQty   int
	ReceivedQty  int
	EvidenceRefs []string
}

// GetTransferQueryResponse is the transfer read model: the header row plus
// its item lines.
type GetTransferQueryResponse struct {
	ID                  kernel.UUID
	Status              string
	SourceLocation      kernel.UUID
	DestinationLocation kernel.UUID
	ExpectedDate        time.Time
	Notes               string
	ConsignmentRef      string
	CreatedAt           time.Time
	SentAt              *time.Time
	ReceivedAt          *time.Time
	Items               []GetTransferItemResponse
}
