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

// Package perf wraps runtime/pprof so a single run of the simulator can
// be profiled without any external tooling attached.
package perf

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
)

// Run executes work under the profile named by mode ("cpu", "heap",
// "allocs", or "" for none), writing its output under dir. An unknown
// mode runs work unprofiled rather than failing the run outright.
func Run(dir, mode string, work func() error) error {
	switch mode {
	case "":
		return work()
	case "cpu":
		return runCPU(dir, work)
	case "heap":
		return runHeap(dir, work)
	case "allocs":
		return runAllocs(dir, work)
	default:
		return work()
	}
}

func runCPU(dir string, work func() error) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("perf: create profile dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "cpu.pprof"))
	if err != nil {
		return fmt.Errorf("perf: create cpu.pprof: %w", err)
	}
	defer f.Close()

	if err := pprof.StartCPUProfile(f); err != nil {
		return fmt.Errorf("perf: start cpu profile: %w", err)
	}
	defer pprof.StopCPUProfile()

	return work()
}

// runHeap snapshots in-use memory after work finishes; a GC pass first
// keeps the snapshot from counting garbage the collector hasn't reclaimed
// yet.
func runHeap(dir string, work func() error) error {
	if err := work(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("perf: create profile dir: %w", err)
	}
	runtime.GC()

	f, err := os.Create(filepath.Join(dir, "heap.pprof"))
	if err != nil {
		return fmt.Errorf("perf: create heap.pprof: %w", err)
	}
	defer f.Close()

	return pprof.WriteHeapProfile(f)
}

// runAllocs writes cumulative allocation counts after work finishes.
func runAllocs(dir string, work func() error) error {
	if err := work(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("perf: create profile dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "allocs.pprof"))
	if err != nil {
		return fmt.Errorf("perf: create allocs.pprof: %w", err)
	}
	defer f.Close()

	prof := pprof.Lookup("allocs")
	if prof == nil {
		return nil
	}
	return prof.WriteTo(f, 0)
}
