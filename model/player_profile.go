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

package model

import "github.com/zintix-labs/slotmc/errs"

// BalanceDistribution parameterizes the truncated-normal initial
// balance draw: N(Mu, Sigma) resampled until the result falls in
// [Min, Max]. Invariant: every sampled balance lies in [Min, Max].
type BalanceDistribution struct {
	Mu    float64
	Sigma float64
	Min   float64
	Max   float64
}

func (d BalanceDistribution) validate() error {
	if d.Sigma < 0 {
		return errs.ErrConfigLoad("balance distribution sigma is negative")
	}
	if d.Min > d.Max {
		return errs.ErrConfigLoad("balance distribution min > max")
	}
	return nil
}

// PlayerProfile is the config-driven description of a player cluster:
// which decision model to run (ModelVersion, e.g. "random" or "v1"),
// which currency it trades in, its initial-balance distribution, and a
// free-form bag of model-specific tuning (loss thresholds, oracle
// weights map, delay bounds).
type PlayerProfile struct {
	ID           string
	ModelVersion string
	Cluster      string
	Currency     string
	Balance      BalanceDistribution
	Config       map[string]any
}

func (p *PlayerProfile) Validate() error {
	if p.ID == "" {
		return errs.ErrConfigLoad("player profile id is empty")
	}
	if p.ModelVersion == "" {
		return errs.ErrConfigLoad("player profile " + p.ID + " has no model_version")
	}
	if p.Currency == "" {
		return errs.ErrConfigLoad("player profile " + p.ID + " has no currency")
	}
	return p.Balance.validate()
}

// Fingerprint is the instance-pool key: model version, cluster, and
// machine id together identify interchangeable pooled instances.
type Fingerprint struct {
	PlayerVersion string
	PlayerCluster string
	MachineID     string
}
