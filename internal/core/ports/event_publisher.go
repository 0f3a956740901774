package ports

import (
	"context"

	"stocktransfer/internal/core/domain/model/kernel"
)

// TransferEventPublisher announces transfer lifecycle changes to interested
// consumers after the owning transaction has committed. Publishing is
// best-effort: implementations must never fail the operation that emitted the
// event, only log delivery problems.
type TransferEventPublisher interface {
	PublishTransferSent(ctx context.Context, transferID kernel.UUID, consignmentRef string)
	PublishTransferReceived(ctx context.Context, transferID kernel.UUID, fullyReceived bool)
	PublishTransferCancelled(ctx context.Context, transferID kernel.UUID)
}
