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

// Package distributor enumerates the Cartesian product of (machine,
// player, session-index) into immutable SessionTasks and derives each
// task's PRNG seed from one run-wide base seed, per §4.10/§5's PRNG
// policy: no two tasks or workers ever draw from the same stream.
package distributor

import "github.com/zintix-labs/slotmc/model"

// MachineSpec and PlayerSpec are the minimal fields the distributor
// needs from the loaded catalogs — it does not need the full config,
// only enough to build task identity and default caps.
type MachineSpec struct {
	ID string
}

type PlayerSpec struct {
	ID           string
	ModelVersion string
	Cluster      string
}

// Params configures one distribution run.
type Params struct {
	Machines          []MachineSpec
	Players           []PlayerSpec
	SessionsPerPair   int
	BaseSeed          int64
	MaxSpins          int
	MaxWallSeconds    int64
	MaxLogicalSeconds float64
}

// splitmix64 is the same seed-derivation primitive rng.PCG64 uses,
// reused here so a task's seed is a pure function of
// (baseSeed, machine index, player index, session index) — no shared
// counter, no possibility of two tasks colliding regardless of the
// order the distributor or executor processes them in.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func deriveSeed(base int64, mi, pi, si int) int64 {
	x := uint64(base)
	x = splitmix64(x ^ uint64(mi)*0x9E3779B185EBCA87)
	x = splitmix64(x ^ uint64(pi)*0xC2B2AE3D27D4EB4F)
	x = splitmix64(x ^ uint64(si)*0x165667B19E3779F9)
	return int64(x)
}

// Generate enumerates every (machine, player, session-index) task. The
// order is deterministic (nested loops over the input slices in
// order) so re-running Generate with identical Params always yields
// identical tasks in identical order — reproducibility for the
// single-threaded executor case §8 requires.
func Generate(p Params) []model.SessionTask {
	tasks := make([]model.SessionTask, 0, len(p.Machines)*len(p.Players)*p.SessionsPerPair)
	for mi, m := range p.Machines {
		for pi, pl := range p.Players {
			for si := 0; si < p.SessionsPerPair; si++ {
				tasks = append(tasks, model.SessionTask{
					MachineID:     m.ID,
					PlayerVersion: pl.ModelVersion,
					PlayerCluster: pl.Cluster,
					PlayerID:      pl.ID,
					SessionSeq:    si,
					Seed:          deriveSeed(p.BaseSeed, mi, pi, si),
					MaxSpins:      p.MaxSpins,
					MaxWallTime:   p.MaxWallSeconds,
					MaxLogicalSec: p.MaxLogicalSeconds,
				})
			}
		}
	}
	return tasks
}
