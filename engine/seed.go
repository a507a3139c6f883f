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

package engine

// splitmix64 is the same mixing step distributor.go and rng.PCG64 use,
// so a task's machine and player streams are pure functions of its one
// seed with no shared state between them — reused here rather than
// exported from either package, since neither one's own use case needs
// a public copy.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// deriveSubSeeds splits one task seed into two independent-looking
// streams: the machine's grid sampling never draws from the same
// sequence as the player's bet/delay/balance sampling, even though
// both ultimately trace back to the same task seed.
func deriveSubSeeds(taskSeed int64) (machineSeed, playerSeed int64) {
	x := uint64(taskSeed)
	machineSeed = int64(splitmix64(x ^ 0xA5A5A5A5A5A5A5A5))
	playerSeed = int64(splitmix64(x ^ 0x5A5A5A5A5A5A5A5A))
	return machineSeed, playerSeed
}
