// Package transfer provides domain entities and business logic for inter-location
// stock transfers. It implements the Transfer aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Transfer: The aggregate root owning identity, locations, items, and lifecycle
//   - Item: A product line with a fixed ordered quantity and monotonic received quantity
//   - Status: A state machine that enforces valid transfer status transitions
//
// Key business rules:
//   - Source and destination locations must differ
//   - Transfers must carry at least one item with a positive ordered quantity
//   - Status follows Draft -> Sent -> PartiallyReceived -> Received, with
//     cancellation only before dispatch (Draft, or the legacy Open alias)
//   - The external consignment reference is set exactly once, on dispatch
//   - Received quantities only ever grow and are not capped at the ordered
//     quantity; over-receipt is recorded as delivered
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package transfer
