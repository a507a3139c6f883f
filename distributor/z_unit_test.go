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

package distributor

import "testing"

func TestGenerateCartesianProduct(t *testing.T) {
	tasks := Generate(Params{
		Machines:        []MachineSpec{{ID: "m1"}, {ID: "m2"}},
		Players:         []PlayerSpec{{ID: "p1"}},
		SessionsPerPair: 3,
		BaseSeed:        1,
	})
	if len(tasks) != 6 {
		t.Fatalf("len(tasks) = %d, want 6", len(tasks))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	params := Params{
		Machines:        []MachineSpec{{ID: "m1"}},
		Players:         []PlayerSpec{{ID: "p1"}},
		SessionsPerPair: 5,
		BaseSeed:        42,
	}
	a := Generate(params)
	b := Generate(params)
	for i := range a {
		if a[i].Seed != b[i].Seed {
			t.Fatalf("task %d seed mismatch across identical Generate calls", i)
		}
	}
}

func TestGenerateNoSeedCollisions(t *testing.T) {
	tasks := Generate(Params{
		Machines:        []MachineSpec{{ID: "m1"}, {ID: "m2"}},
		Players:         []PlayerSpec{{ID: "p1"}, {ID: "p2"}},
		SessionsPerPair: 10,
		BaseSeed:        7,
	})
	seen := make(map[int64]bool, len(tasks))
	for _, task := range tasks {
		if seen[task.Seed] {
			t.Fatalf("seed collision at task %+v", task)
		}
		seen[task.Seed] = true
	}
}
