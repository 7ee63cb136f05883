// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package grandpa

import (
	"fmt"

	"github.com/ChainSafe/gossamer/lib/common"
	"github.com/ChainSafe/gossamer/lib/crypto/ed25519"
	"github.com/ChainSafe/gossamer/pkg/scale"

	"github.com/paritytech/polkadot-sdk-sub060/lib/types"
)

// Subround is the subround within a GRANDPA round a vote was cast in
type Subround byte

const (
	prevote Subround = iota
	precommit
	primaryProposal
)

// String returns the Subround as a string
func (s Subround) String() string {
	switch s {
	case prevote:
		return "prevote"
	case precommit:
		return "precommit"
	case primaryProposal:
		return "primaryProposal"
	}

	return "unknown"
}

// HeaderID identifies a block by number and hash
type HeaderID struct {
	Hash   common.Hash
	Number uint32
}

// String returns the HeaderID as a string
func (id HeaderID) String() string {
	return fmt.Sprintf("hash=%s number=%d", id.Hash, id.Number)
}

// Vote represents a vote for a block with the given hash and number
type Vote struct {
	Hash   common.Hash
	Number uint32
}

// NewVote returns a new Vote given a block hash and number
func NewVote(hash common.Hash, number uint32) *Vote {
	return &Vote{
		Hash:   hash,
		Number: number,
	}
}

// NewVoteFromHeader returns a new Vote for the given header
func NewVoteFromHeader(h *types.Header) *Vote {
	return &Vote{
		Hash:   h.Hash(),
		Number: h.Number,
	}
}

// String returns the Vote as a string
func (v Vote) String() string {
	return fmt.Sprintf("hash=%s number=%d", v.Hash, v.Number)
}

// SignedVote is a vote together with the signature of the authority that cast it
type SignedVote struct {
	Vote        Vote
	Signature   [64]byte // ed25519.SignatureLength
	AuthorityID ed25519.PublicKeyBytes
}

// String returns the SignedVote as a string
func (sv SignedVote) String() string {
	return fmt.Sprintf("vote={%s} authorityID=%s", sv.Vote, sv.AuthorityID)
}

// Commit contains the signed precommit votes for a finalised block
type Commit struct {
	Hash       common.Hash
	Number     uint32
	Precommits []SignedVote
}

// FullVote is the payload that is SCALE encoded and signed for every vote.
// Including the set id domain-separates signatures, so votes signed under a
// previous authority set cannot be replayed after a handoff.
type FullVote struct {
	Stage Subround
	Vote  Vote
	Round uint64
	SetID uint64
}

// Justification is a GRANDPA finality proof for one block: the round, the
// commit with the precommits backing the target, and the headers needed to
// route every precommit target back to the commit target when they differ.
type Justification struct {
	Round           uint64
	Commit          Commit
	VotesAncestries []types.Header
}

// Target returns the block this justification proves finality for
func (j *Justification) Target() HeaderID {
	return HeaderID{
		Hash:   j.Commit.Hash,
		Number: j.Commit.Number,
	}
}

// Encode returns the SCALE encoding of the justification
func (j *Justification) Encode() ([]byte, error) {
	return scale.Marshal(*j)
}

// DecodeJustification returns the justification decoded from the given SCALE encoding
func DecodeJustification(enc []byte) (*Justification, error) {
	justification := Justification{}
	err := scale.Unmarshal(enc, &justification)
	if err != nil {
		return nil, fmt.Errorf("decoding justification: %w", err)
	}

	return &justification, nil
}
