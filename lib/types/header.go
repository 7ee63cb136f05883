// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/ChainSafe/gossamer/lib/common"
	"github.com/ChainSafe/gossamer/pkg/scale"
)

// Header is a source-chain block header as carried inside a finality proof.
// Only the fields a proof needs survive here: the parent link and number to
// relate a vote target back to the committed block, and the roots and digest
// so that the hash is the chain's real header hash.
type Header struct {
	ParentHash     common.Hash
	Number         uint32
	StateRoot      common.Hash
	ExtrinsicsRoot common.Hash
	Digest         []byte
}

// NewHeader returns a new header descending from the given parent hash
func NewHeader(parentHash common.Hash, number uint32,
	stateRoot, extrinsicsRoot common.Hash, digest []byte) *Header {
	return &Header{
		ParentHash:     parentHash,
		Number:         number,
		StateRoot:      stateRoot,
		ExtrinsicsRoot: extrinsicsRoot,
		Digest:         digest,
	}
}

// Hash returns the blake2b-256 hash of the SCALE encoded header
func (h *Header) Hash() common.Hash {
	enc, err := scale.Marshal(*h)
	if err != nil {
		panic(fmt.Sprintf("cannot scale encode header: %s", err))
	}

	hash, err := common.Blake2bHash(enc)
	if err != nil {
		panic(fmt.Sprintf("cannot hash encoded header: %s", err))
	}

	return hash
}

// String returns the formatted header as a string
func (h *Header) String() string {
	return fmt.Sprintf("number=%d hash=%s parentHash=%s", h.Number, h.Hash(), h.ParentHash)
}
