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
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// RenderSummaryTable renders a boxed key/value table for a completed
// run's summary, highlighting the RTP row green when it falls inside
// its own confidence interval margin and red otherwise (a run where
// the point estimate sits outside its own CI signals a bug upstream,
// not a bad roll of the dice).
func RenderSummaryTable(title string, rep SummaryReport, failed int64) string {
	rtpLine := fmt.Sprintf("%.4f", rep.GrandRTP)
	if rep.GrandRTP < rep.RtpCI.Lo || rep.GrandRTP > rep.RtpCI.Hi {
		rtpLine = color.RedString(rtpLine)
	} else {
		rtpLine = color.GreenString(rtpLine)
	}

	rows := map[string]string{
		"Sessions":     fmt.Sprint(rep.SessionCount),
		"Failed":       fmt.Sprint(failed),
		"Total Bet":    rep.TotalBet.StringFixed(6),
		"Total Win":    rep.TotalWin.StringFixed(6),
		"RTP":          rtpLine,
		"RTP 95% CI":   fmt.Sprintf("[%.4f, %.4f]", rep.RtpCI.Lo, rep.RtpCI.Hi),
		"RTP Std":      fmt.Sprintf("%.4f", rep.RtpStd),
		"Avg Duration": fmt.Sprintf("%.3fs", rep.AvgDurationSecs),
	}
	order := []string{"Sessions", "Failed", "Total Bet", "Total Win", "RTP", "RTP 95% CI", "RTP Std", "Avg Duration"}
	return fmtTable(title, order, rows)
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	maxKeyLen, maxValLen := 0, 0
	for k, v := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(stripANSI(v)); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var b strings.Builder
	b.WriteString(top)
	fmt.Fprintf(&b, "|%s%s%s|\n", blank(left), title, blank(right))
	b.WriteString(divider)
	for _, k := range keys {
		v := msg[k]
		fmt.Fprintf(&b, "| %s%s | %s%s |\n",
			k, blank(maxKeyLen-2-runewidth.StringWidth(k)),
			v, blank(maxValLen-2-runewidth.StringWidth(stripANSI(v))))
	}
	b.WriteString(divider)
	return b.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}

// stripANSI strips color escape codes so column widths are computed
// against the visible text, not the byte length of an ANSI sequence.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
