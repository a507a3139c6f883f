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

// Package pool implements the per-worker instance pool described in
// §4.6. Unlike the teacher's MachinePool — a channel-based pool shared
// across goroutines, guarding cross-worker access with channels and
// atomics because any worker may borrow any machine — this pool is
// deliberately single-owner: one Pool instance lives on exactly one
// executor worker's goroutine and is never touched by another
// goroutine, so it carries no locks at all. That is the whole point of
// §4.6's "strictly thread-local, no cross-worker sharing" requirement:
// the teacher's synchronization exists to solve a problem this design
// does not have.
package pool

import "github.com/zintix-labs/slotmc/model"

// Resettable is anything an instance pool can recycle: on Return, the
// pool calls Reset before the instance is pushed back so the next
// borrower starts clean (fresh balance sample, cleared machine state).
type Resettable interface {
	Reset()
}

// Factory constructs a fresh instance for a fingerprint on a pool
// miss. Supplied by the caller (session/engine wiring) so this package
// stays free of player/machine construction details.
type Factory[T Resettable] func(fp model.Fingerprint) (T, error)

// Pool is a bounded per-fingerprint LIFO of instances, capacity K each
// (default 3, per §4.6). Borrow pops the local stack or builds via
// Factory on miss; Return pushes back if there is room, else the
// instance is simply dropped (and garbage collected).
type Pool[T Resettable] struct {
	build    Factory[T]
	capacity int
	stacks   map[model.Fingerprint][]T
}

const defaultCapacity = 3

func New[T Resettable](build Factory[T], capacity int) *Pool[T] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Pool[T]{
		build:    build,
		capacity: capacity,
		stacks:   make(map[model.Fingerprint][]T),
	}
}

// Borrow returns an owned instance for fp: popped from the local
// stack if one is available, otherwise freshly constructed. Ownership
// transfers to the caller — the pool holds no reference to it until
// Return is called.
func (p *Pool[T]) Borrow(fp model.Fingerprint) (T, error) {
	stack := p.stacks[fp]
	if n := len(stack); n > 0 {
		inst := stack[n-1]
		p.stacks[fp] = stack[:n-1]
		return inst, nil
	}
	return p.build(fp)
}

// Return resets inst and pushes it back onto fp's stack if there is
// room; otherwise the instance is dropped. Callers that discovered a
// fatal error (per §4.9) must not call Return — they should discard
// the instance instead, so a compromised instance never re-enters
// circulation.
func (p *Pool[T]) Return(fp model.Fingerprint, inst T) {
	stack := p.stacks[fp]
	if len(stack) >= p.capacity {
		return
	}
	inst.Reset()
	p.stacks[fp] = append(stack, inst)
}

// Len reports how many idle instances are currently pooled for fp,
// mainly for tests and metrics.
func (p *Pool[T]) Len(fp model.Fingerprint) int {
	return len(p.stacks[fp])
}
