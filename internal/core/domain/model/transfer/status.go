package transfer

import (
	"fmt"

	"stocktransfer/internal/pkg/errs"
)

// Status represents the lifecycle state of a stock transfer.
// It implements a state machine with defined transitions so transfers always
// follow the correct business workflow.
//
// State transitions:
//
//	Draft ──send──> Sent ──receive──> PartiallyReceived ──receive──> Received
//	  │                │                      │
//	  │                └────receive (full)────┴──────────────────────────┘
//	  └──cancel──> Cancelled          (Open cancels like Draft)
//
// Received and Cancelled are terminal: no further operation is legal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status when a transfer is first created.
	// Stock is reserved at the destination but nothing has moved yet.
	Draft

	// Open is a legacy alias of Draft carried by rows that share the table.
	// It behaves exactly like Draft for cancellation eligibility and cannot
	// be produced by this service; transfers are only ever created as Draft.
	Open

	// Sent indicates the transfer has been dispatched: source stock is
	// decremented and an external consignment has been booked.
	Sent

	// PartiallyReceived indicates at least one receipt has been recorded
	// but some item is still short of its ordered quantity.
	PartiallyReceived

	// Received indicates every item has been fully received.
	// This is a terminal state.
	Received

	// Cancelled indicates the transfer was cancelled before dispatch and its
	// destination reservation reversed. This is a terminal state.
	Cancelled
)

// Operation names used in invalid-state errors.
const (
	opSend    = "send transfer"
	opReceive = "receive transfer"
	opCancel  = "cancel transfer"
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "UNKNOWN",
		Draft:             "DRAFT",
		Open:              "OPEN",
		Sent:              "SENT",
		PartiallyReceived: "PARTIALLY_RECEIVED",
		Received:          "RECEIVED",
		Cancelled:         "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:             "DRAFT",
		Open:              "OPEN",
		Sent:              "SENT",
		PartiallyReceived: "PARTIALLY_RECEIVED",
		Received:          "RECEIVED",
		Cancelled:         "CANCELLED",
	}
}

// StatusFromString parses the persisted string form of a status.
// Returns an error for unrecognized values so corrupt rows fail loudly
// instead of flowing through the state machine as Unknown.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is a member of the closed enumeration.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the persisted/displayed form of the status,
// e.g. "PARTIALLY_RECEIVED". Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further operations.
func (s Status) IsTerminal() bool {
	return s == Received || s == Cancelled
}

// ValidateSend checks whether dispatch is allowed from the current status
// without performing the transition. Only Draft transfers can be sent.
func (s Status) ValidateSend() error {
	if s != Draft {
		return errs.NewInvalidStateError(opSend, s.String())
	}
	return nil
}

// Send transitions the status to Sent.
//
// Valid transitions:
//   - Draft -> Sent
//
// Returns (0, error) if dispatch is not allowed from the current status.
func (s Status) Send() (Status, error) {
	if err := s.ValidateSend(); err != nil {
		return 0, err
	}
	return Sent, nil
}

// ValidateReceive checks whether a receipt may be recorded from the current
// status without performing the transition. Receipts are only legal once the
// transfer has been dispatched and is not yet complete.
func (s Status) ValidateReceive() error {
	if s != Sent && s != PartiallyReceived {
		return errs.NewInvalidStateError(opReceive, s.String())
	}
	return nil
}

// Receive transitions the status after a receipt has been applied.
//
// Valid transitions:
//   - Sent / PartiallyReceived -> Received            (fullyReceived)
//   - Sent / PartiallyReceived -> PartiallyReceived   (!fullyReceived)
//
// Returns (0, error) if receiving is not allowed from the current status.
func (s Status) Receive(fullyReceived bool) (Status, error) {
	if err := s.ValidateReceive(); err != nil {
		return 0, err
	}
	if fullyReceived {
		return Received, nil
	}
	return PartiallyReceived, nil
}

// ValidateCancel checks whether cancellation is allowed from the current
// status. Only transfers that have not been dispatched — Draft, or the legacy
// Open alias — can be cancelled.
func (s Status) ValidateCancel() error {
	if s != Draft && s != Open {
		return errs.NewInvalidStateError(opCancel, s.String())
	}
	return nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Draft / Open -> Cancelled
//
// Returns (0, error) if cancellation is not allowed from the current status.
func (s Status) Cancel() (Status, error) {
	if err := s.ValidateCancel(); err != nil {
		return 0, err
	}
	return Cancelled, nil
}
