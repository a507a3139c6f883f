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

package oracle

import "math"

// Heuristic is a placeholder Oracle used by tests and by the engine for
// every v1 cluster when no oracle loader is configured. It mirrors the
// source's own placeholder pickle model: a linear combination of the
// feature vector squashed through tanh, plus a variance-based anomaly
// score. It is not a serious prediction backend.
type Heuristic struct{}

func NewHeuristic() *Heuristic { return &Heuristic{} }

func (Heuristic) PredictBet(features [BetFeatureLen]float32) (float32, error) {
	var sum float32
	for _, v := range features {
		sum += v * 0.1
	}
	return float32(math.Tanh(float64(sum))), nil
}

func (Heuristic) PredictTerminate(features [TerminateFeatureLen]float32) (float32, float32, error) {
	var mean float32
	for _, v := range features {
		mean += v
	}
	mean /= float32(len(features))

	var variance float32
	for _, v := range features {
		d := v - mean
		variance += d * d
	}
	variance /= float32(len(features))

	stop := float32(math.Tanh(float64(mean) * 0.1))
	anomaly := float32(math.Tanh(float64(variance)*0.01 + math.Abs(float64(mean))*0.1))
	return stop, anomaly, nil
}

func (Heuristic) Close() error { return nil }

var _ Oracle = (*Heuristic)(nil)
