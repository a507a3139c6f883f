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

// Package errs is the simulator's leveled error type: every failure
// site returns one of these instead of a bare error so callers can
// decide policy (abort the worker, drop the session, fall back) from
// the level alone.
package errs

import (
	"errors"
	"fmt"
)

// ErrLevel grades severity so upstream code can decide policy without
// string-matching the message.
type ErrLevel uint8

const (
	None ErrLevel = iota
	Fatal
	Warn
	Log
)

var errLvMap = map[ErrLevel]string{
	None:  "",
	Fatal: "fatal",
	Warn:  "warn",
	Log:   "log",
}

func ErrLv(lv ErrLevel) string {
	if s, ok := errLvMap[lv]; ok {
		return s
	}
	return ""
}

// E is the engine's unified error type. Message is the formatted
// primary message; Extra is caller-appended context; Cause chains a
// lower-level error; ErrLv fixes the propagation policy.
type E struct {
	Message string
	Extra   string
	Cause   error
	ErrLv   ErrLevel
}

func (e *E) Error() string {
	base := fmt.Sprintf("errlv=%s %s", ErrLv(e.ErrLv), e.Message)
	if e.Extra != "" {
		base += " | extra: " + e.Extra
	}
	if e.Cause != nil {
		base += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return base
}

func (e *E) Unwrap() error { return e.Cause }

func New(lv ErrLevel, msg string) *E { return &E{Message: msg, ErrLv: lv} }

func NewFatal(msg string) *E { return &E{Message: msg, ErrLv: Fatal} }
func NewWarn(msg string) *E  { return &E{Message: msg, ErrLv: Warn} }
func NewLog(msg string) *E   { return &E{Message: msg, ErrLv: Log} }

func Fatalf(format string, a ...any) *E { return NewFatal(fmt.Sprintf(format, a...)) }
func Warnf(format string, a ...any) *E  { return NewWarn(fmt.Sprintf(format, a...)) }
func Logf(format string, a ...any) *E   { return NewLog(fmt.Sprintf(format, a...)) }

func NewWithExtra(lv ErrLevel, msg, extra string) *E {
	e := New(lv, msg)
	e.Extra = extra
	return e
}

// Wrap keeps the cause's ErrLv if it is already an *E, otherwise treats
// an opaque stdlib/third-party error as Fatal.
//
// If you already know a failure is expected and recoverable, build an
// *E directly with New/NewWithExtra and pick the level yourself instead
// of calling Wrap on it.
func Wrap(cause error, msg string) *E {
	var e *E
	lv := Fatal
	if errors.As(cause, &e) {
		lv = e.ErrLv
	}
	r := New(lv, msg)
	r.Cause = cause
	return r
}

func WrapWithExtra(cause error, msg, extra string) *E {
	var e *E
	lv := Fatal
	if errors.As(cause, &e) {
		lv = e.ErrLv
	}
	r := NewWithExtra(lv, msg, extra)
	r.Cause = cause
	return r
}

func AsErr(err error) (*E, bool) {
	var e *E
	if errors.As(err, &e) {
		return e, true
	}
	return e, false
}

// IsFatal reports whether err carries Fatal severity, mirroring
// problab/machinepool.go's isFatalErr. Nothing in this module calls it.
func IsFatal(err error) bool {
	e, ok := AsErr(err)
	return ok && e.ErrLv == Fatal
}
