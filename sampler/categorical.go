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

package sampler

import (
	"sort"

	"github.com/zintix-labs/slotmc/errs"
)

// Categorical draws from a finite set of items by cumulative weight
// via inverse-CDF: normalize weights to sum 1, build a running
// cumulative total, and pick the first item whose cumulative weight
// exceeds a uniform draw. Chosen over the source's raw-frequency LUT
// expansion because it does not require integer weights and its
// build cost is O(n log n) rather than O(sum(weights)) — the source's
// approach degenerates badly when weights are large frequency counts.
type Categorical[T any] struct {
	items  []T
	cumSum []float64
	total  float64
}

// NewCategorical builds a sampler over items with the matching weights
// slice (same length, same order). Zero weights are permitted and
// never selected; a negative weight is an error. Items are sorted by descending
// weight internally so that the common early-exit case (few dominant
// items) resolves in a short scan.
func NewCategorical[T any](items []T, weights []float64) (*Categorical[T], error) {
	if len(items) == 0 || len(items) != len(weights) {
		return nil, errs.ErrConfigLoad("categorical sampler: items/weights length mismatch")
	}
	type pair struct {
		item T
		w    float64
	}
	pairs := make([]pair, len(items))
	for i := range items {
		if weights[i] < 0 {
			return nil, errs.ErrConfigLoad("categorical sampler: negative weight")
		}
		pairs[i] = pair{items[i], weights[i]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].w > pairs[j].w })

	c := &Categorical[T]{
		items:  make([]T, len(pairs)),
		cumSum: make([]float64, len(pairs)),
	}
	running := 0.0
	for i, p := range pairs {
		running += p.w
		c.items[i] = p.item
		c.cumSum[i] = running
	}
	c.total = running
	if c.total <= 0 {
		return nil, errs.ErrConfigLoad("categorical sampler: total weight is zero")
	}
	return c, nil
}

// Sample draws one item using u, a uniform value in [0,1) supplied by
// the caller's PRNG. u*total lands in exactly one cumulative bucket by
// the standard inverse-CDF argument.
func (c *Categorical[T]) Sample(u float64) T {
	target := u * c.total
	i := sort.Search(len(c.cumSum), func(i int) bool { return c.cumSum[i] > target })
	if i >= len(c.items) {
		i = len(c.items) - 1
	}
	return c.items[i]
}

// Len reports the number of distinct items.
func (c *Categorical[T]) Len() int { return len(c.items) }
