// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package grandpa

import (
	"errors"
)

// ErrEmptyVoterSet is returned when constructing a voter set without any voter of non-zero weight
var ErrEmptyVoterSet = errors.New("voter set is empty or has zero total weight")

// ErrInvalidJustificationTarget is returned when the justification commit is for a different block
// than the one finality is claimed for
var ErrInvalidJustificationTarget = errors.New("invalid justification target")

// ErrInsufficientWeight is returned when the accepted precommits do not reach the
// supermajority threshold of the voter set
var ErrInsufficientWeight = errors.New("insufficient cumulative vote weight")

// Per-precommit rejection reasons. VerifyAndOptimizeJustification absorbs these and prunes
// the offending precommits; VerifyJustification surfaces them wrapped with the precommit index.
var (
	// ErrRedundantAuthorityVote is an individually valid precommit past the point
	// where the supermajority threshold was already reached
	ErrRedundantAuthorityVote = errors.New("redundant authority vote")

	// ErrUnknownAuthorityVote is a precommit from an authority outside the voter set
	ErrUnknownAuthorityVote = errors.New("vote from unknown authority")

	// ErrDuplicateAuthorityVote is a second precommit from an authority already seen in the commit
	ErrDuplicateAuthorityVote = errors.New("duplicate authority vote")

	// ErrUnrelatedAncestryVote is a precommit whose target does not descend from the commit target
	ErrUnrelatedAncestryVote = errors.New("vote target is not a descendant of the commit target")

	// ErrInvalidAuthoritySignature is a precommit whose signature does not verify
	// against the claimed authority
	ErrInvalidAuthoritySignature = errors.New("invalid authority signature")
)

// ErrExtraHeadersInAncestry is returned by VerifyJustification when votes-ancestries
// contains headers no accepted precommit needs
var ErrExtraHeadersInAncestry = errors.New("unused headers in votes ancestries")

// ErrDuplicateHeadersInAncestry is returned by VerifyJustification when votes-ancestries
// contains the same header more than once
var ErrDuplicateHeadersInAncestry = errors.New("duplicate headers in votes ancestries")
