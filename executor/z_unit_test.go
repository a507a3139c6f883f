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

package executor

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolExecutesAllSubmittedTasks(t *testing.T) {
	p := New(4)
	var count atomic.Int64
	const n = 1000
	for i := 0; i < n; i++ {
		p.Submit(func(int) { count.Add(1) })
	}
	p.WaitForCompletion()
	if got := count.Load(); got != n {
		t.Fatalf("count = %d, want %d", got, n)
	}
	p.Shutdown()
	p.Wait()
}

func TestPoolShutdownDrainsInFlight(t *testing.T) {
	p := New(2)
	var count atomic.Int64
	for i := 0; i < 50; i++ {
		p.Submit(func(int) { count.Add(1) })
	}
	p.Shutdown()
	p.Wait()
	if got := count.Load(); got != 50 {
		t.Fatalf("count after shutdown = %d, want 50 (all submitted before shutdown must drain)", got)
	}
}

func TestPoolSingleWorkerRunsSequentially(t *testing.T) {
	p := New(1)
	order := make([]int, 0, 5)
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		p.Submit(func(int) {
			order = append(order, i)
			if i == 4 {
				close(done)
			}
		})
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tasks")
	}
	p.Shutdown()
	p.Wait()
	if len(order) != 5 {
		t.Fatalf("order len = %d, want 5", len(order))
	}
}
