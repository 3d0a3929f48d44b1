package fbas

import "errors"

var (
	// ErrMalformedQuorumSet is returned when a QuorumSet's threshold is
	// negative, or positive and exceeds a nonempty set of children. A
	// childless quorum set (no validators, no inner sets) may carry any
	// nonnegative threshold: threshold 0 is the vacuous "always satisfied"
	// degenerate case, and any positive threshold is the "never satisfied"
	// placeholder used for nodes with no known structure (see
	// internal/ingest).
	ErrMalformedQuorumSet = errors.New("malformed quorum set: threshold out of range")

	// ErrDuplicatePublicKey is returned by AddNode when a public key has
	// already been registered in the FBAS.
	ErrDuplicatePublicKey = errors.New("duplicate public key")
)
