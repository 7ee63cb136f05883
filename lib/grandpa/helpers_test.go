// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package grandpa

import (
	"testing"

	"github.com/ChainSafe/gossamer/lib/common"
	"github.com/ChainSafe/gossamer/lib/crypto/ed25519"
	"github.com/ChainSafe/gossamer/lib/keystore"
	"github.com/ChainSafe/gossamer/pkg/scale"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/polkadot-sdk-sub060/lib/types"
)

const (
	testRound uint64 = 1
	testSetID uint64 = 77
)

var testStateRoot = common.MustHexToHash("0x3b7b60af2abcd57ba401ab398f84f4ca54bd6b2140d2503fbcf3286535fe3ff1")

// newTestChain returns n linked headers, the first with number 1 and a zero
// parent hash
func newTestChain(t *testing.T, n int) []types.Header {
	t.Helper()

	headers := make([]types.Header, 0, n)
	parentHash := common.EmptyHash
	for i := 0; i < n; i++ {
		header := types.NewHeader(parentHash, uint32(i+1), testStateRoot, common.EmptyHash, []byte{byte(i + 1)})
		headers = append(headers, *header)
		parentHash = header.Hash()
	}

	return headers
}

func testVoters(t *testing.T, kr *keystore.Ed25519Keyring, weights ...uint64) []Voter {
	t.Helper()

	voters := make([]Voter, len(weights))
	for i, weight := range weights {
		voters[i] = Voter{
			Key:    kr.Keys[i].Public().(*ed25519.PublicKey).AsBytes(),
			Weight: weight,
		}
	}

	return voters
}

// newTestVoterSet returns a voter set with n keyring authorities of weight 1
func newTestVoterSet(t *testing.T, kr *keystore.Ed25519Keyring, n int) *VoterSet {
	t.Helper()

	weights := make([]uint64, n)
	for i := range weights {
		weights[i] = 1
	}

	voters, err := NewVoterSet(testVoters(t, kr, weights...), testSetID)
	require.NoError(t, err)
	return voters
}

func signedPrecommit(t *testing.T, kp *ed25519.Keypair, vote Vote, round, setID uint64) SignedVote {
	t.Helper()

	msg, err := scale.Marshal(FullVote{
		Stage: precommit,
		Vote:  vote,
		Round: round,
		SetID: setID,
	})
	require.NoError(t, err)

	sig, err := kp.Sign(msg)
	require.NoError(t, err)

	signed := SignedVote{
		Vote:        vote,
		AuthorityID: kp.Public().(*ed25519.PublicKey).AsBytes(),
	}
	copy(signed.Signature[:], sig)
	return signed
}

// newTestJustification returns a justification for target with precommits
// from the first qty keyring authorities, all voting for voteHeader, and the
// given votes-ancestries
func newTestJustification(t *testing.T, kr *keystore.Ed25519Keyring, qty int,
	target, voteHeader *types.Header, ancestries []types.Header) *Justification {
	t.Helper()

	vote := NewVoteFromHeader(voteHeader)
	precommits := make([]SignedVote, 0, qty)
	for i := 0; i < qty; i++ {
		precommits = append(precommits, signedPrecommit(t, kr.Keys[i], *vote, testRound, testSetID))
	}

	return &Justification{
		Round: testRound,
		Commit: Commit{
			Hash:       target.Hash(),
			Number:     target.Number,
			Precommits: precommits,
		},
		VotesAncestries: ancestries,
	}
}

func targetID(t *testing.T, header *types.Header) HeaderID {
	t.Helper()
	return HeaderID{
		Hash:   header.Hash(),
		Number: header.Number,
	}
}
