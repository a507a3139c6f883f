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

// Package oracle defines the v1 player model's opaque ML backend
// contract. The core treats bet and termination prediction as black
// boxes with a fixed-size feature vector in, a scalar out — it does
// not prescribe or embed a specific inference engine, matching the
// source's own "external ML backend" framing.
package oracle

// BetFeatureLen is the fixed size of the bet-prediction input vector:
// balance, current profit, win/loss streak, slot-type constant,
// base-point, Δt, Δprofit, Δpayout, prev_bet, prev_basepoint,
// prev_profit, currency flag.
const BetFeatureLen = 12

// TerminateFeatureLen is the fixed size of the termination-prediction
// input vector: balance, cumulative profit, current bet, streak,
// win-streak, prev_bet, prev_balance, prev_profit.
const TerminateFeatureLen = 8

// BetPredictor maps a fixed feature vector to a suggested next bet
// amount. Implementations must be safe for concurrent use by multiple
// workers — the contract requires read-only inference.
type BetPredictor interface {
	PredictBet(features [BetFeatureLen]float32) (float32, error)
}

// TerminatePredictor maps a fixed feature vector to a stop score
// (thresholded at 0.5 by the caller) and an auxiliary anomaly score
// that can override the threshold decision.
type TerminatePredictor interface {
	PredictTerminate(features [TerminateFeatureLen]float32) (stopScore, anomalyScore float32, err error)
}

// Oracle bundles both predictors behind one handle per player cluster.
type Oracle interface {
	BetPredictor
	TerminatePredictor
	// Close releases any resources (model handles, file descriptors)
	// the backend holds. The engine calls it once per loaded Oracle
	// when the run ends.
	Close() error
}

// Loader constructs an Oracle for a given player cluster. The engine
// makes one Loader call per cluster per run and shares the resulting
// Oracle across all workers as read-only state, not per-instance.
type Loader func(cluster string) (Oracle, error)
