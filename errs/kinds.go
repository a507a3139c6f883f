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

package errs

// Named constructors, one per propagation-policy row: startup failures
// are Fatal, hot-path session failures are Warn (dropped, not aborted),
// oracle prediction failures are Log (fall back to the random profile).

func ErrConfigLoad(msg string) *E    { return NewFatal("config load: " + msg) }
func ErrFactoryMiss(msg string) *E   { return NewFatal("factory miss: " + msg) }
func ErrOracleLoad(msg string) *E    { return NewFatal("oracle load: " + msg) }
func ErrSinkIO(msg string) *E        { return NewFatal("sink io: " + msg) }
func ErrSessionFailed(msg string) *E { return NewWarn("session failed: " + msg) }
func ErrInvalidBet(msg string) *E    { return NewWarn("invalid bet: " + msg) }
func ErrOraclePredict(msg string) *E { return NewLog("oracle predict: " + msg) }
