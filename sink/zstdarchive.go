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
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/slotmc/errs"
)

// ArchiveRawSpins zstd-compresses the raw spins CSV into a sibling
// .zst file and removes the uncompressed original. Raw spin output can
// run to millions of rows per run, so this is opt-in and meant to run
// once after Close, not on every batch flush.
func (s *Sink) ArchiveRawSpins() error {
	if !s.rawEnabled {
		return nil
	}
	src := filepath.Join(s.dir, "raw_spins", "raw_spins.csv")
	dst := src + ".zst"

	in, err := os.Open(src)
	if err != nil {
		return errs.ErrSinkIO("open raw spins for archive: " + err.Error())
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errs.ErrSinkIO("create archive: " + err.Error())
	}
	defer out.Close()

	zw, err := zstd.NewWriter(out)
	if err != nil {
		return errs.ErrSinkIO("create zstd writer: " + err.Error())
	}
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		return errs.ErrSinkIO("compress raw spins: " + err.Error())
	}
	if err := zw.Close(); err != nil {
		return errs.ErrSinkIO("flush zstd writer: " + err.Error())
	}
	if err := in.Close(); err != nil {
		return errs.ErrSinkIO("close source before removal: " + err.Error())
	}
	if err := os.Remove(src); err != nil {
		return errs.ErrSinkIO("remove uncompressed raw spins: " + err.Error())
	}
	return nil
}
