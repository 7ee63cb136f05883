// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package grandpa

import (
	"bytes"

	"github.com/ChainSafe/gossamer/lib/crypto/ed25519"
	"github.com/tidwall/btree"
	"golang.org/x/exp/slices"
)

// Voter is a single authority in a voter set together with its voting weight
type Voter struct {
	Key    ed25519.PublicKeyBytes
	Weight uint64
}

type voterInfo struct {
	key    ed25519.PublicKeyBytes
	weight uint64
}

// VoterSet is the (non-empty) set of authorities permitted to vote during one
// authority set generation, with their weights, the generation's set id and
// the precomputed supermajority threshold.
//
// A VoterSet is immutable once built and safe to share between concurrent
// verifications.
type VoterSet struct {
	voters      []voterInfo // ordered by key bytes
	setID       uint64
	totalWeight uint64
	threshold   uint64
}

// NewVoterSet builds the voter set of the authority set generation identified
// by setID. Voters with zero weight are ignored; if the same key appears more
// than once, the last entry wins. Fails with ErrEmptyVoterSet if no voter
// with non-zero weight remains.
func NewVoterSet(voters []Voter, setID uint64) (*VoterSet, error) {
	ordered := btree.NewMap[string, uint64](2)
	for _, voter := range voters {
		if voter.Weight == 0 {
			continue
		}
		ordered.Set(string(voter.Key[:]), voter.Weight)
	}

	if ordered.Len() == 0 {
		return nil, ErrEmptyVoterSet
	}

	vs := &VoterSet{
		voters: make([]voterInfo, 0, ordered.Len()),
		setID:  setID,
	}
	ordered.Scan(func(key string, weight uint64) bool {
		var id ed25519.PublicKeyBytes
		copy(id[:], key)
		vs.voters = append(vs.voters, voterInfo{key: id, weight: weight})
		vs.totalWeight += weight
		return true
	})

	// the smallest weight strictly greater than two thirds of the total
	faulty := (vs.totalWeight - 1) / 3
	vs.threshold = vs.totalWeight - faulty

	return vs, nil
}

// WeightOf returns the weight of the voter with the given key, if it is in the set
func (vs *VoterSet) WeightOf(id ed25519.PublicKeyBytes) (weight uint64, ok bool) {
	idx, ok := slices.BinarySearchFunc(vs.voters, id,
		func(voter voterInfo, id ed25519.PublicKeyBytes) int {
			return bytes.Compare(voter.key[:], id[:])
		})
	if !ok {
		return 0, false
	}

	return vs.voters[idx].weight, true
}

// Contains returns whether the voter with the given key is in the set
func (vs *VoterSet) Contains(id ed25519.PublicKeyBytes) bool {
	_, ok := vs.WeightOf(id)
	return ok
}

// Len returns the number of voters in the set
func (vs *VoterSet) Len() int {
	return len(vs.voters)
}

// SetID returns the authority set id this voter set was built for
func (vs *VoterSet) SetID() uint64 {
	return vs.setID
}

// TotalWeight returns the total weight of all voters in the set
func (vs *VoterSet) TotalWeight() uint64 {
	return vs.totalWeight
}

// Threshold returns the cumulative vote weight required for a
// supermajority with respect to this voter set
func (vs *VoterSet) Threshold() uint64 {
	return vs.threshold
}
