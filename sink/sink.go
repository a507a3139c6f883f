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

// Package sink is the streaming result writer of §4.8: a thread-safe
// bounded buffer that batches SessionRecords, flushes them to CSV
// under a short-held mutex, backpressures raw spin records through a
// bounded buffer, and produces the post-run summary/player/machine
// reports.
package sink

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zintix-labs/slotmc/errs"
	"github.com/zintix-labs/slotmc/model"
)

const defaultBatchWriteSize = 300

// Config controls batching thresholds and where output lands on disk.
type Config struct {
	BaseDir        string
	BatchWriteSize int
	RawSpinBuffer  int // 0 disables raw spin recording entirely
}

// Sink accumulates SessionRecords and (optionally) SpinRecords from any
// worker goroutine and flushes them in batches. Two independent
// mutexes guard the two buffers, matching §5's "one mutex for session
// records, one for spin records" shared-state inventory. A second pair
// of mutexes — sessWriteMu/spinWriteMu — serializes the actual CSV
// writes: swapping the batch out only protects the slice header, and
// csvWriter itself is not safe for concurrent callers, so every
// flushSessions/writeSpins call holds its file's write mutex for the
// duration of serialization, per §5.
type Sink struct {
	cfg Config
	dir string

	sessMu      sync.Mutex
	sessBatch   []model.SessionRecord
	sessWriteMu sync.Mutex
	sessWr      *csvWriter

	spinMu      sync.Mutex
	spinBatch   []model.SpinRecord
	spinCond    *sync.Cond
	spinWriteMu sync.Mutex
	spinWr      *csvWriter
	rawEnabled  bool

	allSessions   []model.SessionRecord // kept for post-run reports
	allSessionsMu sync.Mutex

	failed atomic.Int64
}

// New creates the run's output directory tree under
// <BaseDir>/simulation_<timestamp>/ and opens the session-stats and
// (if enabled) raw-spins CSV files with their headers written.
func New(cfg Config, runTimestamp string) (*Sink, error) {
	if cfg.BatchWriteSize <= 0 {
		cfg.BatchWriteSize = defaultBatchWriteSize
	}
	dir := filepath.Join(cfg.BaseDir, "simulation_"+runTimestamp)
	for _, sub := range []string{"sessions", "raw_spins", "reports"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, errs.ErrSinkIO("mkdir " + sub + ": " + err.Error())
		}
	}

	sessWr, err := newCSVWriter(filepath.Join(dir, "sessions", "session_stats.csv"), sessionHeader)
	if err != nil {
		return nil, err
	}

	s := &Sink{cfg: cfg, dir: dir, sessWr: sessWr, rawEnabled: cfg.RawSpinBuffer > 0}
	s.spinCond = sync.NewCond(&s.spinMu)

	if s.rawEnabled {
		spinWr, err := newCSVWriter(filepath.Join(dir, "raw_spins", "raw_spins.csv"), spinHeader)
		if err != nil {
			return nil, err
		}
		s.spinWr = spinWr
	}
	return s, nil
}

func (s *Sink) Dir() string { return s.dir }

// PublishSession appends rec to the batch, flushing to CSV once the
// batch reaches BatchWriteSize. Also retains rec in memory for the
// post-run reports (§4.8's "reads back, or keeps in memory").
func (s *Sink) PublishSession(rec model.SessionRecord) error {
	s.allSessionsMu.Lock()
	s.allSessions = append(s.allSessions, rec)
	s.allSessionsMu.Unlock()

	s.sessMu.Lock()
	s.sessBatch = append(s.sessBatch, rec)
	var toFlush []model.SessionRecord
	if len(s.sessBatch) >= s.cfg.BatchWriteSize {
		toFlush = s.sessBatch
		s.sessBatch = nil
	}
	s.sessMu.Unlock()

	if toFlush != nil {
		return s.flushSessions(toFlush)
	}
	return nil
}

func (s *Sink) flushSessions(batch []model.SessionRecord) error {
	s.sessWriteMu.Lock()
	defer s.sessWriteMu.Unlock()
	for _, r := range batch {
		if err := s.sessWr.WriteRow(sessionRow(r)); err != nil {
			return errs.ErrSinkIO(err.Error())
		}
	}
	return s.sessWr.Flush()
}

// PublishSpins pushes raw spin records into the bounded buffer,
// blocking (backpressure) while it is at capacity, then flushes
// immediately — the raw path has no separate batch-size threshold
// distinct from its capacity, per §4.8.
func (s *Sink) PublishSpins(recs []model.SpinRecord) error {
	if !s.rawEnabled || len(recs) == 0 {
		return nil
	}
	s.spinMu.Lock()
	for len(s.spinBatch) > 0 && len(s.spinBatch)+len(recs) > s.cfg.RawSpinBuffer {
		s.spinCond.Wait()
	}
	s.spinBatch = append(s.spinBatch, recs...)
	batch := s.spinBatch
	s.spinBatch = nil
	s.spinMu.Unlock()

	err := s.writeSpins(batch)

	s.spinMu.Lock()
	s.spinCond.Broadcast()
	s.spinMu.Unlock()
	return err
}

func (s *Sink) writeSpins(batch []model.SpinRecord) error {
	s.spinWriteMu.Lock()
	defer s.spinWriteMu.Unlock()
	for _, r := range batch {
		if err := s.spinWr.WriteRow(spinRow(r)); err != nil {
			return errs.ErrSinkIO(err.Error())
		}
	}
	return s.spinWr.Flush()
}

// IncrementFailed records a dropped session per §4.9.
func (s *Sink) IncrementFailed()   { s.failed.Add(1) }
func (s *Sink) FailedCount() int64 { return s.failed.Load() }

// Close flushes any remaining batched records and closes both CSV
// files. Call once, after the executor has drained.
func (s *Sink) Close() error {
	s.sessMu.Lock()
	remaining := s.sessBatch
	s.sessBatch = nil
	s.sessMu.Unlock()
	if len(remaining) > 0 {
		if err := s.flushSessions(remaining); err != nil {
			return err
		}
	}
	if err := s.sessWr.Close(); err != nil {
		return errs.ErrSinkIO(err.Error())
	}
	if s.rawEnabled {
		s.spinMu.Lock()
		remainingSpins := s.spinBatch
		s.spinBatch = nil
		s.spinMu.Unlock()
		if len(remainingSpins) > 0 {
			if err := s.writeSpins(remainingSpins); err != nil {
				return err
			}
		}
		if err := s.spinWr.Close(); err != nil {
			return errs.ErrSinkIO(err.Error())
		}
	}
	return nil
}

// Sessions returns every published session record — used by the
// report generators and by tests.
func (s *Sink) Sessions() []model.SessionRecord {
	s.allSessionsMu.Lock()
	defer s.allSessionsMu.Unlock()
	out := make([]model.SessionRecord, len(s.allSessions))
	copy(out, s.allSessions)
	return out
}

func timestampNow() string {
	return time.Now().Format("20060102_150405")
}
