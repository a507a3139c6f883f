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

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDeriveSubSeedsDeterministicAndDistinct(t *testing.T) {
	m1, p1 := deriveSubSeeds(42)
	m2, p2 := deriveSubSeeds(42)
	if m1 != m2 || p1 != p2 {
		t.Fatalf("deriveSubSeeds not deterministic: (%d,%d) vs (%d,%d)", m1, p1, m2, p2)
	}
	if m1 == p1 {
		t.Fatalf("machine and player sub-seeds collided: %d", m1)
	}
	m3, p3 := deriveSubSeeds(43)
	if m1 == m3 || p1 == p3 {
		t.Fatalf("neighboring task seeds produced colliding sub-seeds")
	}
}

func TestBoolInt(t *testing.T) {
	if got := boolInt(false, 999); got != 0 {
		t.Fatalf("boolInt(false, 999) = %d, want 0", got)
	}
	if got := boolInt(true, 0); got != 5000 {
		t.Fatalf("boolInt(true, 0) = %d, want default 5000", got)
	}
	if got := boolInt(true, 100); got != 100 {
		t.Fatalf("boolInt(true, 100) = %d, want 100", got)
	}
}

func TestRunTimestampFormat(t *testing.T) {
	ts := runTimestamp()
	if _, err := time.Parse("20060102_150405", ts); err != nil {
		t.Fatalf("runTimestamp() = %q, not parseable: %v", ts, err)
	}
}

const tinyRunYAML = `
machines:
  - id: "m1"
    reels_normal:
      "0": [0, 1, 2]
      "1": [0, 1, 2]
      "2": [0, 1, 2]
    paylines:
      - [1, 1, 1]
    paytable_rows:
      - [2, 5, 10]
      - [3, 8, 20]
    bets:
      USD: ["1.00", "2.00"]
    symbols_normal: [0, 1]
    symbols_wild: [2]
    symbol_scatter: 3
    window_size: 3
    active_lines: 1
players:
  - id: "casual"
    model_version: "random"
    cluster: "default"
    currency: "USD"
    balance:
      mu: 100
      sigma: 20
      min: 10
      max: 500
run:
  sessions_per_pair: 2
  base_seed: 7
  max_spins: 20
  workers: 2
  output_dir: %s
`

// TestOrchestratorRunEndToEnd exercises the full composition root against
// a minimal two-session config, the same way sim.go's own smoke run did,
// checking that every session lands in the sink and the run reports no
// failures.
func TestOrchestratorRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	cfgPath := filepath.Join(dir, "run.yaml")
	doc := fmt.Sprintf(tinyRunYAML, outDir)
	if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	orc := New(zap.NewNop(), RunOptions{ConfigPath: cfgPath, Workers: 2})
	result, err := orc.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.SessionCount != 2 {
		t.Fatalf("SessionCount = %d, want 2", result.SessionCount)
	}
	if result.FailedCount != 0 {
		t.Fatalf("FailedCount = %d, want 0", result.FailedCount)
	}
	if result.OutputDir == "" {
		t.Fatal("expected a non-empty output dir")
	}
	if _, err := os.Stat(filepath.Join(result.OutputDir, "reports", "summary.txt")); err != nil {
		t.Fatalf("expected summary.txt to be written: %v", err)
	}
}
