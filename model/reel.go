// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"sort"

	"github.com/zintix-labs/slotmc/errs"
)

// ReelStrip is a cyclic sequence of symbols. Reads are always taken
// modulo Len so a start position never needs range-checking upstream.
type ReelStrip struct {
	Symbols []Symbol
}

func (r ReelStrip) Len() int { return len(r.Symbols) }

// At returns the symbol at logical position p, wrapped into range.
func (r ReelStrip) At(p int) Symbol {
	n := len(r.Symbols)
	m := p % n
	if m < 0 {
		m += n
	}
	return r.Symbols[m]
}

func (r ReelStrip) validate() error {
	if len(r.Symbols) == 0 {
		return errs.ErrConfigLoad("reel strip is empty")
	}
	return nil
}

// ReelSet is an ordered list of reel strips, one per reel column. The
// order is fixed at load time by sorting the source config keys
// lexicographically, so a given seed reproduces an identical grid
// regardless of map iteration order upstream.
type ReelSet struct {
	Strips []ReelStrip
}

// NewReelSetFromKeyed builds a ReelSet from a key->strip map, ordering
// columns by sorted key so config map iteration order never leaks into
// the sampled grid.
func NewReelSetFromKeyed(byKey map[string][]Symbol) ReelSet {
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	strips := make([]ReelStrip, len(keys))
	for i, k := range keys {
		strips[i] = ReelStrip{Symbols: byKey[k]}
	}
	return ReelSet{Strips: strips}
}

func (rs ReelSet) NumReels() int { return len(rs.Strips) }

func (rs ReelSet) validate() error {
	if len(rs.Strips) == 0 {
		return errs.ErrConfigLoad("reel set has no reels")
	}
	for _, s := range rs.Strips {
		if err := s.validate(); err != nil {
			return errs.Wrap(err, "reel set validation")
		}
	}
	return nil
}
