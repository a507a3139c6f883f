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
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"go.uber.org/zap"

	"github.com/zintix-labs/slotmc/config"
	"github.com/zintix-labs/slotmc/distributor"
	"github.com/zintix-labs/slotmc/errs"
	"github.com/zintix-labs/slotmc/executor"
	"github.com/zintix-labs/slotmc/machine"
	"github.com/zintix-labs/slotmc/model"
	"github.com/zintix-labs/slotmc/oracle"
	"github.com/zintix-labs/slotmc/player"
	"github.com/zintix-labs/slotmc/pool"
	"github.com/zintix-labs/slotmc/rng"
	"github.com/zintix-labs/slotmc/session"
	"github.com/zintix-labs/slotmc/sink"
)

// RunOptions bundles everything a run needs beyond what the config
// file already carries: RNG factory selection, progress bar
// visibility, and whether raw spins should be zstd-archived when the
// run finishes.
type RunOptions struct {
	ConfigPath   string
	Workers      int           // 0 = use config's run.workers
	FastRNG      bool          // select rng.FastFactory over the PCG64 default
	ShowProgress bool
	ArchiveRaw   bool
	OracleLoader oracle.Loader // nil = every v1 cluster gets the Heuristic placeholder
	PoolCapacity int           // 0 = pool package default
	StatusAddr   string        // empty disables the read-only status server
}

// Orchestrator wires config, distribution, pooled instances, the
// executor and the sink into one end-to-end run: it is the composition
// root the CLI layer drives, kept deliberately thin so every piece it
// assembles stays independently testable.
type Orchestrator struct {
	log *zap.Logger
	opt RunOptions

	machinesByID map[string]*model.MachineConfig
	playersByID  map[string]model.PlayerProfile
	profileByVC  map[[2]string]model.PlayerProfile // (ModelVersion, Cluster) -> profile

	oracles map[string]oracle.Oracle // by cluster, closed once at Run's end

	recordRaw bool

	pubErrMu sync.Mutex
	pubErr   error // first sink publish I/O error seen by any worker; fatal per §7
}

// New builds an Orchestrator; call Run to execute one simulation.
func New(log *zap.Logger, opt RunOptions) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{log: log, opt: opt}
}

// workerPools is the thread-local pair of instance pools one executor
// worker owns for its entire lifetime; the orchestrator indexes into a
// slice of these by the workerID every executor.Task now receives, so
// a stolen task still reaches the pools belonging to the goroutine
// actually running it, never the goroutine that submitted it.
type workerPools struct {
	machines *pool.Pool[*machine.Machine]
	players  *pool.Pool[player.Player]
}

// Result is what Run reports back to the CLI layer.
type Result struct {
	OutputDir    string
	SessionCount int
	FailedCount  int64
	Summary      sink.SummaryReport
}

// Run executes one complete simulation: load config, enumerate every
// (machine, player, session) task, drive them through a work-stealing
// executor with per-worker pooled machine/player instances, and write
// the sink's CSVs and reports before returning.
func (o *Orchestrator) Run() (*Result, error) {
	loaded, err := config.Load(o.opt.ConfigPath)
	if err != nil {
		return nil, err
	}

	o.machinesByID = make(map[string]*model.MachineConfig, len(loaded.Machines))
	for i := range loaded.Machines {
		mc := &loaded.Machines[i]
		o.machinesByID[mc.ID] = mc
	}

	o.playersByID = make(map[string]model.PlayerProfile, len(loaded.Players))
	o.profileByVC = make(map[[2]string]model.PlayerProfile, len(loaded.Players))
	clusters := map[string]bool{}
	for _, p := range loaded.Players {
		o.playersByID[p.ID] = p
		key := [2]string{p.ModelVersion, p.Cluster}
		if _, dup := o.profileByVC[key]; dup {
			return nil, errs.ErrConfigLoad(fmt.Sprintf(
				"players %q and an earlier profile share model_version+cluster %v; "+
					"instance pooling requires each combination to map to one profile", p.ID, key))
		}
		o.profileByVC[key] = p
		if p.ModelVersion == "v1" {
			clusters[p.Cluster] = true
		}
	}

	if err := o.loadOracles(clusters); err != nil {
		return nil, err
	}
	defer o.closeOracles()

	workers := o.opt.Workers
	if workers <= 0 {
		workers = loaded.Run.Workers
	}

	machineSpecs := make([]distributor.MachineSpec, 0, len(loaded.Machines))
	for _, mc := range loaded.Machines {
		machineSpecs = append(machineSpecs, distributor.MachineSpec{ID: mc.ID})
	}
	playerSpecs := make([]distributor.PlayerSpec, 0, len(loaded.Players))
	for _, p := range loaded.Players {
		playerSpecs = append(playerSpecs, distributor.PlayerSpec{ID: p.ID, ModelVersion: p.ModelVersion, Cluster: p.Cluster})
	}

	tasks := distributor.Generate(distributor.Params{
		Machines:          machineSpecs,
		Players:           playerSpecs,
		SessionsPerPair:   loaded.Run.SessionsPerPair,
		BaseSeed:          loaded.Run.BaseSeed,
		MaxSpins:          loaded.Run.MaxSpins,
		MaxWallSeconds:    loaded.Run.MaxWallSeconds,
		MaxLogicalSeconds: loaded.Run.MaxLogicalSeconds,
	})
	o.log.Info("distributed tasks", zap.Int("count", len(tasks)), zap.Int("workers", workers))

	o.recordRaw = loaded.Run.RecordRawSpins

	sk, err := sink.New(sink.Config{
		BaseDir:        loaded.Run.OutputDir,
		BatchWriteSize: loaded.Run.BatchWriteSize,
		RawSpinBuffer:  boolInt(loaded.Run.RecordRawSpins, loaded.Run.RawSpinBuffer),
	}, runTimestamp())
	if err != nil {
		return nil, err
	}

	pools := make([]workerPools, workers)
	for w := range pools {
		pools[w] = o.newWorkerPools(loaded.Run.BaseSeed, w)
	}

	pl := executor.New(workers)

	var status *StatusServer
	if o.opt.StatusAddr != "" {
		status = NewStatusServer(o.opt.StatusAddr, o.log, pl, sk)
		status.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := status.Shutdown(ctx); err != nil {
				o.log.Warn("status server shutdown failed", zap.Error(err))
			}
		}()
	}

	var bar *pb.ProgressBar
	if len(tasks) > 0 {
		bar = pb.StartNew(len(tasks))
		if !o.opt.ShowProgress {
			bar.SetWriter(io.Discard)
		}
	}

	for _, task := range tasks {
		task := task
		pl.Submit(func(workerID int) {
			o.runTask(pools[workerID%len(pools)], task, sk)
			if bar != nil {
				bar.Increment()
			}
		})
	}

	pl.WaitForCompletion()
	pl.Shutdown()
	pl.Wait()
	if bar != nil {
		bar.Finish()
	}

	if pubErr := o.getPubErr(); pubErr != nil {
		return nil, pubErr
	}

	if err := sk.Close(); err != nil {
		return nil, err
	}
	if err := sk.WriteReports(); err != nil {
		return nil, err
	}
	if o.opt.ArchiveRaw {
		if err := sk.ArchiveRawSpins(); err != nil {
			return nil, err
		}
	}

	sessions := sk.Sessions()
	o.log.Info("run complete",
		zap.Int("sessions", len(sessions)),
		zap.Int64("failed", sk.FailedCount()),
		zap.String("output_dir", sk.Dir()),
	)

	return &Result{
		OutputDir:    sk.Dir(),
		SessionCount: len(sessions),
		FailedCount:  sk.FailedCount(),
		Summary:      sink.ComputeSummaryReport(sessions),
	}, nil
}

// setPubErr records the first sink publish I/O error seen by any
// worker; later errors are logged by the caller but dropped here since
// one fatal cause is enough to fail the run.
func (o *Orchestrator) setPubErr(err error) {
	o.pubErrMu.Lock()
	defer o.pubErrMu.Unlock()
	if o.pubErr == nil {
		o.pubErr = err
	}
}

func (o *Orchestrator) getPubErr() error {
	o.pubErrMu.Lock()
	defer o.pubErrMu.Unlock()
	return o.pubErr
}

// runTask borrows a machine and player instance for task's fingerprint
// from wp, rebinds both to task's derived seed, runs one session to
// completion, publishes its results, and returns the instances to
// their pools — or discards them, per §4.9, if the session returned an
// error (which happens only when a machine spin fails).
func (o *Orchestrator) runTask(wp workerPools, task model.SessionTask, sk *sink.Sink) {
	mc, ok := o.machinesByID[task.MachineID]
	if !ok {
		o.log.Error("unknown machine id in task", zap.String("machine_id", task.MachineID))
		sk.IncrementFailed()
		return
	}
	fp := task.Fingerprint(task.MachineID)

	machineSeed, playerSeed := deriveSubSeeds(task.Seed)
	factory := o.rngFactory()

	m, err := wp.machines.Borrow(fp)
	if err != nil {
		o.log.Error("borrow machine instance failed", zap.Error(err))
		sk.IncrementFailed()
		return
	}
	m.SetCore(rng.New(factory.New(machineSeed)))

	pl, err := wp.players.Borrow(fp)
	if err != nil {
		o.log.Error("borrow player instance failed", zap.Error(err))
		sk.IncrementFailed()
		return
	}
	if setter, ok := pl.(player.CoreSetter); ok {
		setter.SetCore(rng.New(factory.New(playerSeed)))
	}
	pl.Reset()

	ctrl := session.Controller{
		SessionID: fmt.Sprintf("%s-%s-%d", task.MachineID, task.PlayerID, task.SessionSeq),
		PlayerID:  task.PlayerID,
		MachineID: task.MachineID,
		Player:    pl,
		Machine:   m,
		Bets:      mc.Bets,
		Caps: session.Caps{
			MaxSpins:        task.MaxSpins,
			MaxWallDuration: time.Duration(task.MaxWallTime) * time.Second,
			MaxLogicalTime:  time.Duration(task.MaxLogicalSec * float64(time.Second)),
		},
		RecordRaw: o.recordRaw,
	}

	rec, spins, err := ctrl.Run()
	if err != nil {
		o.log.Warn("session dropped after machine error", zap.String("session_id", ctrl.SessionID), zap.Error(err))
		sk.IncrementFailed()
		return // do not Return: a fatal-error instance must not re-enter circulation
	}

	if pubErr := sk.PublishSession(*rec); pubErr != nil {
		o.log.Error("publish session failed", zap.Error(pubErr))
		o.setPubErr(pubErr)
	}
	if len(spins) > 0 {
		if pubErr := sk.PublishSpins(spins); pubErr != nil {
			o.log.Error("publish spins failed", zap.Error(pubErr))
			o.setPubErr(pubErr)
		}
	}

	wp.machines.Return(fp, m)
	wp.players.Return(fp, pl)
}

func (o *Orchestrator) newWorkerPools(baseSeed int64, workerID int) workerPools {
	factory := o.rngFactory()
	capacity := o.opt.PoolCapacity

	machinePool := pool.New(func(fp model.Fingerprint) (*machine.Machine, error) {
		mc, ok := o.machinesByID[fp.MachineID]
		if !ok {
			return nil, errs.ErrFactoryMiss("no machine config for id " + fp.MachineID)
		}
		seed := int64(workerID)<<32 ^ baseSeed
		return machine.New(mc, rng.New(factory.New(seed))), nil
	}, capacity)

	playerPool := pool.New(func(fp model.Fingerprint) (player.Player, error) {
		return o.buildPlayer(fp, factory, int64(workerID)<<32^baseSeed)
	}, capacity)

	return workerPools{machines: machinePool, players: playerPool}
}

func (o *Orchestrator) buildPlayer(fp model.Fingerprint, factory rng.Factory, seed int64) (player.Player, error) {
	profile, ok := o.profileByVC[[2]string{fp.PlayerVersion, fp.PlayerCluster}]
	if !ok {
		return nil, errs.ErrFactoryMiss(fmt.Sprintf("no player profile for version=%s cluster=%s", fp.PlayerVersion, fp.PlayerCluster))
	}
	core := rng.New(factory.New(seed))

	switch profile.ModelVersion {
	case "v1":
		cfg, err := player.DecodeV1Config(profile.Config)
		if err != nil {
			return nil, err
		}
		oc, ok := o.oracles[profile.Cluster]
		if !ok {
			oc = oracle.NewHeuristic()
		}
		logf := func(format string, args ...any) { o.log.Sugar().Debugf(format, args...) }
		return player.NewV1(profile, cfg, core, oc, logf)
	default:
		cfg, err := player.DecodeRandomConfig(profile.Config)
		if err != nil {
			return nil, err
		}
		return player.NewRandom(profile, cfg, core), nil
	}
}

func (o *Orchestrator) loadOracles(clusters map[string]bool) error {
	o.oracles = make(map[string]oracle.Oracle, len(clusters))
	loader := o.opt.OracleLoader
	for cluster := range clusters {
		if loader == nil {
			o.oracles[cluster] = oracle.NewHeuristic()
			continue
		}
		oc, err := loader(cluster)
		if err != nil {
			return errs.ErrOracleLoad(cluster + ": " + err.Error())
		}
		o.oracles[cluster] = oc
	}
	return nil
}

func (o *Orchestrator) closeOracles() {
	for cluster, oc := range o.oracles {
		if err := oc.Close(); err != nil {
			o.log.Warn("oracle close failed", zap.String("cluster", cluster), zap.Error(err))
		}
	}
}

func (o *Orchestrator) rngFactory() rng.Factory {
	if o.opt.FastRNG {
		return rng.FastFactory{}
	}
	return rng.DefaultFactory{}
}

func boolInt(enabled bool, buf int) int {
	if !enabled {
		return 0
	}
	if buf <= 0 {
		buf = 5000
	}
	return buf
}

func runTimestamp() string {
	return time.Now().Format("20060102_150405")
}
