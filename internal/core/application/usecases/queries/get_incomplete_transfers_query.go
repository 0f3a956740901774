package queries

import (
	"errors"
	"time"

	"stocktransfer/internal/core/domain/model/kernel"
	"stocktransfer/internal/pkg/guard"
)

var (
	ErrGetIncompleteTransfersQueryIsNotConstructed = errors.New(
		"GetIncompleteTransfersQuery must be created via NewGetIncompleteTransfersQuery constructor",
	)
)

// GetIncompleteTransfersQuery retrieves all stock transfers still in flight:
// everything not yet fully received or cancelled.
type GetIncompleteTransfersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetIncompleteTransfersQuery creates a query to retrieve in-flight transfers.
// This is a parameterless query.
func NewGetIncompleteTransfersQuery() GetIncompleteTransfersQuery {
	return GetIncompleteTransfersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetIncompleteTransfersQuery) Validate() error {
	return q.guard.Validate(ErrGetIncompleteTransfersQueryIsNotConstructed)
}

// GetIncompleteTransfersQueryResponse is one in-flight transfer header.
type GetIncompleteTransfersQueryResponse struct {
	ID                  kernel.UUID
	Status              string
	SourceLocation      kernel.UUID
	DestinationLocation kernel.UUID
	ExpectedDate        time.Time
	CreatedAt           time.Time
}
