package light

import "errors"

// Verification and store errors. The Store is never mutated when any of
// these is returned.
var (
	ErrInvalidFraction           = errors.New("light: invalid threshold fraction")
	ErrTimestampBeforeGenesis    = errors.New("light: timestamp before genesis time")
	ErrInsufficientParticipation = errors.New("light: insufficient sync committee participation")
	ErrInvalidSignature          = errors.New("light: sync committee aggregate signature verification failed")
	ErrNonMonotonicSlot          = errors.New("light: update slots are not monotonic")
	ErrFutureSignatureSlot       = errors.New("light: signature slot is ahead of the current slot")
	ErrSignatureSlotNotInWindow  = errors.New("light: signature slot outside the store's committee window")
	ErrUnknownNextSyncCommittee  = errors.New("light: next-period update but next sync committee unknown")
	ErrNextSyncCommitteeMismatch = errors.New("light: update next sync committee conflicts with known committee")
	ErrUnexpectedFinalityBranch  = errors.New("light: finality branch present without finalized header")
	ErrUnexpectedCommitteeBranch = errors.New("light: next sync committee branch present without committee")
	ErrMissingExecutionPayload   = errors.New("light: header is missing its execution payload")
	ErrNoBestValidUpdate         = errors.New("light: no pending best valid update")
)
