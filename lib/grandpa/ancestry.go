// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package grandpa

import (
	"github.com/ChainSafe/gossamer/lib/common"

	"github.com/paritytech/polkadot-sdk-sub060/lib/types"
)

// ancestryChain is an index over the votes-ancestries headers of a
// justification, used to check that a precommit target descends from the
// commit target. Routes proven once are remembered, so overlapping routes
// from later votes stop early and unused headers can be identified after
// all votes were processed.
type ancestryChain struct {
	parents    map[common.Hash]common.Hash
	unvisited  map[common.Hash]struct{}
	duplicates bool
}

func newAncestryChain(headers []types.Header) *ancestryChain {
	chain := &ancestryChain{
		parents:   make(map[common.Hash]common.Hash, len(headers)),
		unvisited: make(map[common.Hash]struct{}, len(headers)),
	}

	for i := range headers {
		hash := headers[i].Hash()
		if _, ok := chain.parents[hash]; ok {
			chain.duplicates = true
			continue
		}
		chain.parents[hash] = headers[i].ParentHash
		chain.unvisited[hash] = struct{}{}
	}

	return chain
}

// ancestry walks parent links from block back towards base and returns the
// route of header hashes consumed on the way, not including base itself.
// The route is empty if block equals base. The walk also ends successfully
// on reaching a hash an earlier route already proved to connect to base,
// so the route only contains hashes visited for the first time.
//
// The walk is bounded by the number of supplied headers: a missing parent
// or an exceeded bound means there is no route, which rejects that one
// vote rather than failing anything else.
func (ac *ancestryChain) ancestry(base, block common.Hash) (route []common.Hash, ok bool) {
	route = []common.Hash{}
	currentHash := block

	for step := 0; step <= len(ac.parents); step++ {
		if currentHash == base {
			return route, true
		}

		parent, ok := ac.parents[currentHash]
		if !ok {
			return nil, false
		}

		if _, unvisited := ac.unvisited[currentHash]; !unvisited {
			return route, true
		}

		route = append(route, currentHash)
		currentHash = parent
	}

	return nil, false
}

// markVisited marks every hash on the given route as visited
func (ac *ancestryChain) markVisited(route []common.Hash) {
	for _, hash := range route {
		delete(ac.unvisited, hash)
	}
}

// isVisited returns whether the header with the given hash was consumed by
// some accepted vote's route
func (ac *ancestryChain) isVisited(hash common.Hash) bool {
	if _, ok := ac.parents[hash]; !ok {
		return false
	}

	_, unvisited := ac.unvisited[hash]
	return !unvisited
}

// hasUnvisited returns whether any supplied header was not consumed by an
// accepted vote's route
func (ac *ancestryChain) hasUnvisited() bool {
	return len(ac.unvisited) > 0
}
