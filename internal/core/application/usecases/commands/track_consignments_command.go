package commands

import (
	"errors"

	"stocktransfer/internal/pkg/guard"
)

var (
	ErrTrackConsignmentsCommandIsNotConstructed = errors.New(
		"TrackConsignmentsCommand must be created via NewTrackConsignmentsCommand constructor",
	)
)

// TrackConsignmentsCommand triggers one polling pass over the pending
// consignment tracking jobs. This batch operation checks the external status
// of every dispatched-but-unconfirmed consignment.
//
// Example:
//
//	cmd := NewTrackConsignmentsCommand()
//	handler := NewTrackConsignmentsCommandHandler(queue, gateway, logger)
//
//	// Run periodically from the tracking worker
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Tracking pass failed: %v", err)
//	}
type TrackConsignmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewTrackConsignmentsCommand creates a command to trigger a tracking pass.
// This is a parameterless command that processes all pending tracking jobs.
func NewTrackConsignmentsCommand() TrackConsignmentsCommand {
	return TrackConsignmentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *TrackConsignmentsCommand) Validate() error {
	return c.guard.Validate(ErrTrackConsignmentsCommandIsNotConstructed)
}
