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
	"os"
	"strconv"
	"strings"

	"github.com/zintix-labs/slotmc/model"
)

// csvWriter wraps encoding/csv with header-on-create semantics; every
// file this sink produces gets its header row written once, at open.
type csvWriter struct {
	f *os.File
	w *csv.Writer
}

func newCSVWriter(path string, header []string) (*csvWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return &csvWriter{f: f, w: w}, nil
}

func (c *csvWriter) WriteRow(row []string) error { return c.w.Write(row) }

func (c *csvWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

func (c *csvWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.f.Close()
		return err
	}
	return c.f.Close()
}

var sessionHeader = []string{
	"session_id", "player_id", "machine_id", "total_spins", "total_bet",
	"total_win", "total_profit", "initial_balance", "final_balance",
	"session_duration", "free_spins_triggered", "free_spins_played",
	"max_win", "max_loss_streak", "rtp",
}

var spinHeader = []string{
	"session_id", "spin_number", "bet_amount", "win_amount", "profit",
	"trigger_free_spins", "free_spins_remaining", "in_free_spins",
	"timestamp", "grid",
}

// fixed6 formats a decimal amount with exactly six decimal places, per
// §6's "all numeric fields use fixed-point formatting with 6 decimals".
func fixed6(d interface{ StringFixed(int32) string }) string {
	return d.StringFixed(6)
}

func sessionRow(r model.SessionRecord) []string {
	return []string{
		r.SessionID,
		r.PlayerID,
		r.MachineID,
		strconv.Itoa(r.TotalSpins),
		fixed6(r.TotalBet),
		fixed6(r.TotalWin),
		fixed6(r.TotalProfit),
		fixed6(r.InitialBalance),
		fixed6(r.FinalBalance),
		strconv.FormatFloat(r.Duration.Seconds(), 'f', 6, 64),
		strconv.Itoa(r.FreeSpinsTriggered),
		strconv.Itoa(r.FreeSpinsPlayed),
		fixed6(r.MaxWin),
		strconv.Itoa(r.MaxLossStreak),
		strconv.FormatFloat(r.RTP, 'f', 6, 64),
	}
}

func spinRow(r model.SpinRecord) []string {
	syms := make([]string, len(r.Grid))
	for i, s := range r.Grid {
		syms[i] = strconv.Itoa(int(s))
	}
	return []string{
		r.SessionID,
		strconv.Itoa(r.SpinNumber),
		fixed6(r.Bet),
		fixed6(r.Win),
		fixed6(r.Profit),
		strconv.FormatBool(r.TriggerFreeSpins),
		strconv.Itoa(r.FreeSpinsRemaining),
		strconv.FormatBool(r.InFreeSpins),
		r.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		strings.Join(syms, ","),
	}
}
