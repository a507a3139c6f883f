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
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/zintix-labs/slotmc/executor"
	"github.com/zintix-labs/slotmc/sink"
)

// StatusServer exposes a read-only JSON view of an in-flight run: task
// throughput from the executor's Metrics and whatever partial totals
// the sink has accumulated so far. It never accepts a request that
// mutates run state — there is nothing here for a client to spin or
// configure, unlike the source's own gameplay HTTP surface.
type StatusServer struct {
	addr   string
	server *http.Server
	log    *zap.Logger
}

// StatusSnapshot is the /status JSON payload.
type StatusSnapshot struct {
	TasksExecuted uint64             `json:"tasks_executed"`
	TasksStolen   uint64             `json:"tasks_stolen"`
	ActiveWorkers int32              `json:"active_workers"`
	SessionCount  int                `json:"session_count"`
	FailedCount   int64              `json:"failed_count"`
	Summary       sink.SummaryReport `json:"summary"`
}

// NewStatusServer builds a chi-routed status server bound to addr
// (e.g. ":9090"), reporting on pl and sk until the run finishes. The
// router setup — chi.NewRouter plus a permissive cors.Handler — mirrors
// the corpus's own service-provider wiring for a read-only monitoring
// surface, not a public API.
func NewStatusServer(addr string, log *zap.Logger, pl *executor.Pool, sk *sink.Sink) *StatusServer {
	if log == nil {
		log = zap.NewNop()
	}
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Accept"},
		MaxAge:         300,
	}))

	r.Get("/status", func(w http.ResponseWriter, req *http.Request) {
		m := pl.Metrics()
		sessions := sk.Sessions()
		snap := StatusSnapshot{
			TasksExecuted: m.TasksExecuted.Load(),
			TasksStolen:   m.TasksStolen.Load(),
			ActiveWorkers: m.Active.Load(),
			SessionCount:  len(sessions),
			FailedCount:   sk.FailedCount(),
			Summary:       sink.ComputeSummaryReport(sessions),
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			log.Warn("status encode failed", zap.Error(err))
		}
	})

	return &StatusServer{
		addr: addr,
		log:  log,
		server: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Start runs the server in the background; errors other than a clean
// shutdown are logged, not returned, since the caller has already
// moved on to running the simulation by the time this would fire.
func (s *StatusServer) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("status server exited", zap.String("addr", s.addr), zap.Error(err))
		}
	}()
}

// Shutdown stops the server gracefully within ctx's deadline.
func (s *StatusServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
