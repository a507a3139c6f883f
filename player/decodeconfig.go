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

package player

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"

	"github.com/zintix-labs/slotmc/errs"
)

// decimalHook lets a profile's free-form config bag write bet budgets
// as plain decimal strings ("100.00") and have them land in a
// decimal.Decimal field, the same way the config loader's bet table
// parses currency amounts.
func decimalHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(decimal.Decimal{}) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		if v == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	default:
		return data, nil
	}
}

func decode(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			decimalHook,
		),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errs.Wrap(err, "build player config decoder")
	}
	if err := dec.Decode(raw); err != nil {
		return errs.Wrap(err, "decode player config")
	}
	return nil
}

// DecodeRandomConfig reads a Random profile's tunables out of the
// config-driven free-form bag the loader hands PlayerProfile.Config.
func DecodeRandomConfig(raw map[string]any) (RandomConfig, error) {
	var cfg RandomConfig
	if err := decode(raw, &cfg); err != nil {
		return RandomConfig{}, err
	}
	return cfg, nil
}

// DecodeV1Config reads a V1 profile's tunables the same way.
func DecodeV1Config(raw map[string]any) (V1Config, error) {
	var cfg V1Config
	if err := decode(raw, &cfg); err != nil {
		return V1Config{}, err
	}
	return cfg, nil
}
