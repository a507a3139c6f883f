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

package player

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDecodeRandomConfig(t *testing.T) {
	raw := map[string]any{
		"min_delay":              "100ms",
		"max_delay":              "500ms",
		"end_probability":        0.02,
		"max_consecutive_losses": 5,
		"session_budget":         "250.50",
	}
	cfg, err := DecodeRandomConfig(raw)
	if err != nil {
		t.Fatalf("DecodeRandomConfig: %v", err)
	}
	if cfg.MinDelay != 100*time.Millisecond || cfg.MaxDelay != 500*time.Millisecond {
		t.Fatalf("delays = (%v, %v), want (100ms, 500ms)", cfg.MinDelay, cfg.MaxDelay)
	}
	if cfg.MaxConsecutiveLosses != 5 {
		t.Fatalf("MaxConsecutiveLosses = %d, want 5", cfg.MaxConsecutiveLosses)
	}
	want := decimal.RequireFromString("250.50")
	if !cfg.SessionBudget.Equal(want) {
		t.Fatalf("SessionBudget = %s, want %s", cfg.SessionBudget, want)
	}
}

func TestDecodeRandomConfigEmptyBagYieldsZeroValue(t *testing.T) {
	cfg, err := DecodeRandomConfig(nil)
	if err != nil {
		t.Fatalf("DecodeRandomConfig(nil): %v", err)
	}
	if !cfg.SessionBudget.IsZero() || cfg.MaxConsecutiveLosses != 0 {
		t.Fatalf("expected zero-value config from an empty bag, got %+v", cfg)
	}
}

func TestDecodeRandomConfigRejectsUnparseableDecimal(t *testing.T) {
	raw := map[string]any{"session_budget": "not-a-number"}
	if _, err := DecodeRandomConfig(raw); err == nil {
		t.Fatal("expected an error for an unparseable session_budget")
	}
}

func TestDecodeV1Config(t *testing.T) {
	raw := map[string]any{
		"first_bet_weights": map[string]any{"1.00": 0.7, "2.00": 0.3},
		"slot_type_const":   1.5,
		"min_delay":         "50ms",
		"max_delay":         "1s",
	}
	cfg, err := DecodeV1Config(raw)
	if err != nil {
		t.Fatalf("DecodeV1Config: %v", err)
	}
	if len(cfg.FirstBetWeights) != 2 {
		t.Fatalf("len(FirstBetWeights) = %d, want 2", len(cfg.FirstBetWeights))
	}
	if cfg.FirstBetWeights["1.00"] != 0.7 {
		t.Fatalf("FirstBetWeights[1.00] = %v, want 0.7", cfg.FirstBetWeights["1.00"])
	}
	if cfg.MaxDelay != time.Second {
		t.Fatalf("MaxDelay = %v, want 1s", cfg.MaxDelay)
	}
}
