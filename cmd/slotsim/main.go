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

// Command slotsim drives one end-to-end Monte-Carlo run from a YAML or
// JSON config file: it loads the machine/player catalogs, distributes
// every (machine, player, session) task across a work-stealing worker
// pool, and writes session CSVs plus summary reports to an output
// directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	_ "go.uber.org/automaxprocs"

	"github.com/zintix-labs/slotmc/engine"
	"github.com/zintix-labs/slotmc/perf"
)

type cliConfig struct {
	configPath string
	threads    int
	fastRNG    bool
	verbose    bool
	logFile    string
	noConsole  bool
	showBar    bool
	archiveRaw bool
	statusAddr string
	pprofMode  string
	pprofDir   string
}

func main() {
	cfg := parseFlags()

	logger, err := engine.NewLogger(engine.LogConfig{
		Verbose:   cfg.verbose,
		LogFile:   cfg.logFile,
		NoConsole: cfg.noConsole,
	})
	if err != nil {
		log.Fatalf("slotsim: build logger: %v", err)
	}
	defer logger.Sync()

	runID := uuid.NewString()
	logger.Info("starting run", zap.String("run_id", runID))

	orc := engine.New(logger, engine.RunOptions{
		ConfigPath:   cfg.configPath,
		Workers:      cfg.threads,
		FastRNG:      cfg.fastRNG,
		ShowProgress: cfg.showBar,
		ArchiveRaw:   cfg.archiveRaw,
		StatusAddr:   cfg.statusAddr,
	})

	var result *engine.Result
	runErr := perf.Run(cfg.pprofDir, cfg.pprofMode, func() error {
		var err error
		result, err = orc.Run()
		return err
	})
	if runErr != nil {
		logger.Error("run failed", zap.Error(runErr))
		fmt.Fprintln(os.Stderr, "slotsim: run failed:", runErr)
		os.Exit(1)
	}

	p := message.NewPrinter(language.English)
	p.Printf("sessions: %d  failed: %d  rtp: %.4f  output: %s\n",
		result.SessionCount, result.FailedCount, result.Summary.GrandRTP, result.OutputDir)

	if result.FailedCount > 0 {
		os.Exit(1)
	}
}

func parseFlags() cliConfig {
	var cfg cliConfig
	flag.StringVar(&cfg.configPath, "config", "", "path to the run's YAML or JSON config file (required)")
	flag.IntVar(&cfg.threads, "threads", 0, "worker count; 0 uses the config file's run.workers")
	flag.BoolVar(&cfg.fastRNG, "fast-rng", false, "use the narrower-state PCG32 stream instead of PCG64")
	flag.BoolVar(&cfg.verbose, "verbose", false, "enable debug-level logging")
	flag.StringVar(&cfg.logFile, "log-file", "", "rotate structured logs to this file in addition to (or instead of) the console")
	flag.BoolVar(&cfg.noConsole, "no-console", false, "suppress console logging (use with -log-file)")
	flag.BoolVar(&cfg.showBar, "progress", true, "show a console progress bar while the run executes")
	flag.BoolVar(&cfg.archiveRaw, "archive-raw", false, "zstd-compress raw_spins.csv after the run completes")
	flag.StringVar(&cfg.statusAddr, "status-addr", "", "if set, serve a read-only JSON /status endpoint on this address while running (e.g. :9090)")
	flag.StringVar(&cfg.pprofMode, "pprof", "", "profile the run: cpu, heap, or allocs")
	flag.StringVar(&cfg.pprofDir, "pprof-dir", "build/profiling", "directory pprof output is written to")
	flag.Parse()

	if cfg.configPath == "" {
		fmt.Fprintln(os.Stderr, "slotsim: -config is required")
		flag.Usage()
		os.Exit(2)
	}
	return cfg
}
