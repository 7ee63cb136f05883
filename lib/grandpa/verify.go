// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package grandpa

import (
	"fmt"

	"github.com/ChainSafe/gossamer/lib/common"
	"github.com/ChainSafe/gossamer/lib/crypto/ed25519"
	"github.com/ChainSafe/gossamer/pkg/scale"
	log "github.com/ChainSafe/log15"

	"github.com/paritytech/polkadot-sdk-sub060/lib/types"
)

var logger = log.New("pkg", "grandpa")

// VerifyJustification checks that the justification proves finality of target
// under the given voter set. It is strict: the justification must already be
// in its minimal form, so any redundant precommit, rejected precommit, or
// unused or duplicated ancestry header fails verification. This is the check
// a chain applies to a submitted proof, since a submitter's claim of having
// optimized it cannot be trusted.
func VerifyJustification(target HeaderID, voters *VoterSet, justification *Justification) error {
	return verifyJustification(target, voters, justification, strictCallbacks{})
}

// VerifyAndOptimizeJustification checks that the justification proves finality
// of target under the given voter set and, on success, rewrites it in place to
// the minimal form that still does: precommits are kept in commit order until
// their distinct-authority weight reaches the supermajority threshold,
// everything past that point is dropped along with every rejected precommit,
// and only ancestry headers lying on a kept vote's route survive, one copy
// each. The commit-order prefix rule is part of the contract so that every
// process optimizing the same justification arrives at the same result.
//
// The justification is left unmodified when an error is returned.
func VerifyAndOptimizeJustification(target HeaderID, voters *VoterSet, justification *Justification) error {
	callbacks := &optimizingCallbacks{
		justification: justification,
		removed:       make(map[int]struct{}),
	}

	err := verifyJustification(target, voters, justification, callbacks)
	if err != nil {
		return err
	}

	logger.Debug("justification verified and optimized",
		"round", justification.Round,
		"target", justification.Target(),
		"precommits", len(justification.Commit.Precommits),
		"ancestries", len(justification.VotesAncestries))
	return nil
}

// verificationCallbacks lets the shared verification pass delegate the
// handling of redundant and rejected precommits, and of the leftover ancestry
// headers, to the two verification flavours above.
type verificationCallbacks interface {
	onRedundantVote(idx int) error
	onRejectedVote(idx int, reason error) error
	onCompleted(chain *ancestryChain) error
}

// verifyJustification walks the commit's precommits in order, classifying
// each one and accumulating the weight of every distinct accepted authority.
// Once the accumulated weight reaches the supermajority threshold, all
// remaining precommits are redundant. Classification never fails the pass by
// itself; a justification mixing some forged or unrelated votes with enough
// genuine ones is still a valid proof. Only a wrong commit target or a total
// accepted weight below the threshold does.
func verifyJustification(target HeaderID, voters *VoterSet, justification *Justification,
	callbacks verificationCallbacks) error {
	commit := &justification.Commit
	if commit.Hash != target.Hash || commit.Number != target.Number {
		return fmt.Errorf("%w: justification is for %s, expected %s",
			ErrInvalidJustificationTarget, justification.Target(), target)
	}

	chain := newAncestryChain(justification.VotesAncestries)
	threshold := voters.Threshold()

	var cumulativeWeight uint64
	seen := make(map[ed25519.PublicKeyBytes]struct{}, len(commit.Precommits))

	for i, signed := range commit.Precommits {
		if cumulativeWeight >= threshold {
			// every further vote only bloats the proof
			if err := callbacks.onRedundantVote(i); err != nil {
				return err
			}
			continue
		}

		weight, known := voters.WeightOf(signed.AuthorityID)
		if !known {
			if err := callbacks.onRejectedVote(i, ErrUnknownAuthorityVote); err != nil {
				return err
			}
			continue
		}

		if _, duplicate := seen[signed.AuthorityID]; duplicate {
			if err := callbacks.onRejectedVote(i, ErrDuplicateAuthorityVote); err != nil {
				return err
			}
			continue
		}
		seen[signed.AuthorityID] = struct{}{}

		// the vote must be for the committed block or one of its descendants;
		// a target below the commit target can only be an ancestor
		if signed.Vote.Number < commit.Number {
			if err := callbacks.onRejectedVote(i, ErrUnrelatedAncestryVote); err != nil {
				return err
			}
			continue
		}

		route, related := chain.ancestry(commit.Hash, signed.Vote.Hash)
		if !related {
			if err := callbacks.onRejectedVote(i, ErrUnrelatedAncestryVote); err != nil {
				return err
			}
			continue
		}

		if !verifyVoteSignature(&signed, justification.Round, voters.SetID()) {
			if err := callbacks.onRejectedVote(i, ErrInvalidAuthoritySignature); err != nil {
				return err
			}
			continue
		}

		chain.markVisited(route)
		cumulativeWeight += weight
	}

	if cumulativeWeight < threshold {
		logger.Debug("justification does not reach supermajority",
			"round", justification.Round, "accumulated", cumulativeWeight, "threshold", threshold)
		return fmt.Errorf("%w: accumulated %d, need %d",
			ErrInsufficientWeight, cumulativeWeight, threshold)
	}

	return callbacks.onCompleted(chain)
}

// verifyVoteSignature checks the precommit signature against the claimed
// authority for the given round and set id
func verifyVoteSignature(signed *SignedVote, round, setID uint64) bool {
	msg, err := scale.Marshal(FullVote{
		Stage: precommit,
		Vote:  signed.Vote,
		Round: round,
		SetID: setID,
	})
	if err != nil {
		logger.Trace("cannot encode vote payload", "error", err)
		return false
	}

	pk, err := ed25519.NewPublicKey(signed.AuthorityID[:])
	if err != nil {
		logger.Trace("cannot decode authority key", "error", err)
		return false
	}

	ok, err := pk.Verify(msg, signed.Signature[:])
	return err == nil && ok
}

// strictCallbacks fails verification on anything a minimal justification
// must not contain
type strictCallbacks struct{}

func (strictCallbacks) onRedundantVote(idx int) error {
	return fmt.Errorf("precommit %d: %w", idx, ErrRedundantAuthorityVote)
}

func (strictCallbacks) onRejectedVote(idx int, reason error) error {
	return fmt.Errorf("precommit %d: %w", idx, reason)
}

func (strictCallbacks) onCompleted(chain *ancestryChain) error {
	if chain.duplicates {
		return ErrDuplicateHeadersInAncestry
	}
	if chain.hasUnvisited() {
		return ErrExtraHeadersInAncestry
	}
	return nil
}

// optimizingCallbacks collects everything that can be pruned and rewrites the
// justification once the pass has succeeded
type optimizingCallbacks struct {
	justification *Justification
	removed       map[int]struct{}
}

func (oc *optimizingCallbacks) onRedundantVote(idx int) error {
	oc.removed[idx] = struct{}{}
	return nil
}

func (oc *optimizingCallbacks) onRejectedVote(idx int, reason error) error {
	logger.Trace("pruning precommit", "index", idx, "reason", reason)
	oc.removed[idx] = struct{}{}
	return nil
}

func (oc *optimizingCallbacks) onCompleted(chain *ancestryChain) error {
	if len(oc.removed) > 0 {
		precommits := oc.justification.Commit.Precommits
		kept := make([]SignedVote, 0, len(precommits)-len(oc.removed))
		for i, signed := range precommits {
			if _, ok := oc.removed[i]; ok {
				continue
			}
			kept = append(kept, signed)
		}
		oc.justification.Commit.Precommits = kept
	}

	// keep one copy of every header lying on an accepted vote's route
	ancestries := make([]types.Header, 0, len(oc.justification.VotesAncestries))
	retained := make(map[common.Hash]struct{}, len(oc.justification.VotesAncestries))
	for i := range oc.justification.VotesAncestries {
		hash := oc.justification.VotesAncestries[i].Hash()
		if !chain.isVisited(hash) {
			continue
		}
		if _, ok := retained[hash]; ok {
			continue
		}
		retained[hash] = struct{}{}
		ancestries = append(ancestries, oc.justification.VotesAncestries[i])
	}
	oc.justification.VotesAncestries = ancestries

	return nil
}
