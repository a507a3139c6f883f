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

package sink

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/zintix-labs/slotmc/errs"
	"github.com/zintix-labs/slotmc/model"
)

// CI is a 95% confidence interval, the same shape
// `zintix-labs-problab/stats.CI` reports per-run RTP with.
type CI struct {
	Lo float64
	Hi float64
}

// SummaryReport is the run-wide aggregate: §4.8's "totals, grand RTP,
// average session duration", plus the RTP dispersion figures the
// corpus's stats package always reports alongside a bare RTP number.
type SummaryReport struct {
	SessionCount    int
	TotalBet        decimal.Decimal
	TotalWin        decimal.Decimal
	GrandRTP        float64
	RtpStd          float64
	RtpCI           CI
	AvgDurationSecs float64
}

// PlayerReport and MachineReport are the per-id breakdowns §4.8 names.
type PlayerReport struct {
	PlayerID        string
	SessionCount    int
	TotalBet        decimal.Decimal
	TotalWin        decimal.Decimal
	AvgRTP          float64
	MaxWin          decimal.Decimal
	WorstProfit     decimal.Decimal
}

type MachineReport struct {
	MachineID          string
	SessionCount       int
	TotalBet           decimal.Decimal
	TotalWin           decimal.Decimal
	AvgRTP             float64
	FreeSpinTriggerPct float64 // triggered / total_spins
	AvgDurationSecs    float64
}

// ComputeSummaryReport exposes computeSummary to callers outside this
// package (the orchestrator's Result) without requiring a live Sink.
func ComputeSummaryReport(sessions []model.SessionRecord) SummaryReport {
	return computeSummary(sessions)
}

func computeSummary(sessions []model.SessionRecord) SummaryReport {
	rep := SummaryReport{SessionCount: len(sessions), TotalBet: decimal.Zero, TotalWin: decimal.Zero}
	var totalDur float64
	rtps := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		rep.TotalBet = rep.TotalBet.Add(s.TotalBet)
		rep.TotalWin = rep.TotalWin.Add(s.TotalWin)
		totalDur += s.Duration.Seconds()
		rtps = append(rtps, s.RTP)
	}
	if !rep.TotalBet.IsZero() {
		ratio, _ := rep.TotalWin.Div(rep.TotalBet).Float64()
		rep.GrandRTP = ratio
	}
	if len(sessions) > 0 {
		rep.AvgDurationSecs = totalDur / float64(len(sessions))
	}
	if len(rtps) > 1 {
		_, variance := stat.MeanVariance(rtps, nil)
		rep.RtpStd = math.Sqrt(variance)
		se := rep.RtpStd / math.Sqrt(float64(len(rtps)))
		rep.RtpCI = CI{Lo: math.Max(rep.GrandRTP-1.96*se, 0), Hi: rep.GrandRTP + 1.96*se}
	} else {
		rep.RtpCI = CI{Lo: rep.GrandRTP, Hi: rep.GrandRTP}
	}
	return rep
}

func computePlayerReports(sessions []model.SessionRecord) []PlayerReport {
	type acc struct {
		count       int
		bet, win    decimal.Decimal
		rtpSum      float64
		maxWin      decimal.Decimal
		worstProfit decimal.Decimal
		firstSeen   bool
	}
	byPlayer := map[string]*acc{}
	for _, s := range sessions {
		a, ok := byPlayer[s.PlayerID]
		if !ok {
			a = &acc{bet: decimal.Zero, win: decimal.Zero, maxWin: decimal.Zero}
			byPlayer[s.PlayerID] = a
		}
		a.count++
		a.bet = a.bet.Add(s.TotalBet)
		a.win = a.win.Add(s.TotalWin)
		a.rtpSum += s.RTP
		if s.MaxWin.GreaterThan(a.maxWin) {
			a.maxWin = s.MaxWin
		}
		if !a.firstSeen || s.TotalProfit.LessThan(a.worstProfit) {
			a.worstProfit = s.TotalProfit
			a.firstSeen = true
		}
	}
	out := make([]PlayerReport, 0, len(byPlayer))
	for id, a := range byPlayer {
		out = append(out, PlayerReport{
			PlayerID:     id,
			SessionCount: a.count,
			TotalBet:     a.bet,
			TotalWin:     a.win,
			AvgRTP:       a.rtpSum / float64(a.count),
			MaxWin:       a.maxWin,
			WorstProfit:  a.worstProfit,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}

func computeMachineReports(sessions []model.SessionRecord) []MachineReport {
	type acc struct {
		count, spins, triggered int
		bet, win                decimal.Decimal
		rtpSum, durSum          float64
	}
	byMachine := map[string]*acc{}
	for _, s := range sessions {
		a, ok := byMachine[s.MachineID]
		if !ok {
			a = &acc{bet: decimal.Zero, win: decimal.Zero}
			byMachine[s.MachineID] = a
		}
		a.count++
		a.spins += s.TotalSpins
		a.triggered += s.FreeSpinsTriggered
		a.bet = a.bet.Add(s.TotalBet)
		a.win = a.win.Add(s.TotalWin)
		a.rtpSum += s.RTP
		a.durSum += s.Duration.Seconds()
	}
	out := make([]MachineReport, 0, len(byMachine))
	for id, a := range byMachine {
		pct := 0.0
		if a.spins > 0 {
			pct = float64(a.triggered) / float64(a.spins)
		}
		out = append(out, MachineReport{
			MachineID:          id,
			SessionCount:       a.count,
			TotalBet:           a.bet,
			TotalWin:           a.win,
			AvgRTP:             a.rtpSum / float64(a.count),
			FreeSpinTriggerPct: pct,
			AvgDurationSecs:    a.durSum / float64(a.count),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MachineID < out[j].MachineID })
	return out
}

// WriteReports computes and writes reports/summary.txt,
// reports/player_report.csv, and reports/machine_report.csv from every
// session this sink has seen.
func (s *Sink) WriteReports() error {
	sessions := s.Sessions()
	summary := computeSummary(sessions)
	players := computePlayerReports(sessions)
	machines := computeMachineReports(sessions)

	if err := writeSummaryText(filepath.Join(s.dir, "reports", "summary.txt"), summary, s.FailedCount()); err != nil {
		return err
	}
	if err := writePlayerCSV(filepath.Join(s.dir, "reports", "player_report.csv"), players); err != nil {
		return err
	}
	if err := writeMachineCSV(filepath.Join(s.dir, "reports", "machine_report.csv"), machines); err != nil {
		return err
	}
	return nil
}

func writeSummaryText(path string, s SummaryReport, failed int64) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.ErrSinkIO(err.Error())
	}
	defer f.Close()
	_, err = fmt.Fprintf(f,
		"sessions: %d\nfailed: %d\ntotal_bet: %s\ntotal_win: %s\nrtp: %.6f\nrtp_std: %.6f\nrtp_ci95: [%.6f, %.6f]\navg_duration_secs: %.6f\n",
		s.SessionCount, failed, s.TotalBet.StringFixed(6), s.TotalWin.StringFixed(6),
		s.GrandRTP, s.RtpStd, s.RtpCI.Lo, s.RtpCI.Hi, s.AvgDurationSecs,
	)
	if err != nil {
		return errs.ErrSinkIO(err.Error())
	}
	return nil
}

func writePlayerCSV(path string, players []PlayerReport) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.ErrSinkIO(err.Error())
	}
	defer f.Close()
	w := csv.NewWriter(f)
	_ = w.Write([]string{"player_id", "session_count", "total_bet", "total_win", "avg_rtp", "max_win", "worst_profit"})
	for _, p := range players {
		_ = w.Write([]string{
			p.PlayerID,
			fmt.Sprint(p.SessionCount),
			p.TotalBet.StringFixed(6),
			p.TotalWin.StringFixed(6),
			fmt.Sprintf("%.6f", p.AvgRTP),
			p.MaxWin.StringFixed(6),
			p.WorstProfit.StringFixed(6),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errs.ErrSinkIO(err.Error())
	}
	return nil
}

func writeMachineCSV(path string, machines []MachineReport) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.ErrSinkIO(err.Error())
	}
	defer f.Close()
	w := csv.NewWriter(f)
	_ = w.Write([]string{"machine_id", "session_count", "total_bet", "total_win", "avg_rtp", "free_spin_trigger_rate", "avg_duration_secs"})
	for _, m := range machines {
		_ = w.Write([]string{
			m.MachineID,
			fmt.Sprint(m.SessionCount),
			m.TotalBet.StringFixed(6),
			m.TotalWin.StringFixed(6),
			fmt.Sprintf("%.6f", m.AvgRTP),
			fmt.Sprintf("%.6f", m.FreeSpinTriggerPct),
			fmt.Sprintf("%.6f", m.AvgDurationSecs),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errs.ErrSinkIO(err.Error())
	}
	return nil
}
