// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package diag

import "fmt"

// Level is the severity of a diagnostic.
type Level int

const (
	// Info is informational; it never affects validity.
	Info Level = iota
	// Warning downgrades overall validity to maybe-valid if no Error is
	// also present.
	Warning
	// Error downgrades overall validity to invalid.
	Error
)

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

func clamp(l, min, max Level) Level {
	if l < min {
		return min
	}
	if l > max {
		return max
	}
	return l
}

// LevelRange is an inclusive [Min, Max] clamp range for the adjusted level
// of diagnostics in some classification or group.
type LevelRange struct {
	Min, Max Level
}

// Clamp applies the range to an original level.
func (r LevelRange) Clamp(original Level) Level {
	return clamp(original, r.Min, r.Max)
}

// Overrider computes the adjusted level for a classification's original
// level. It is built once from an Overrides map and reused across an entire
// parse call; the construction precomputes a flat code->range table so that
// adjustment at diagnostic-push time is a single map lookup rather than a
// scan over the configuration.
type Overrider struct {
	// byCode maps each classification code to its effective range: its own
	// override if one was configured, else its group root's override,
	// copied in at construction. Codes absent from the map fall back to
	// [Info, Error] (no clamp).
	byCode map[int]LevelRange
}

// NewOverrider builds an Overrider from a set of (classification, range)
// overrides. A later entry for the same classification replaces an earlier
// one. Overrides keyed by a group root apply to every classification within
// that group unless a more specific override is also present; this is
// implemented by resolving, for every known classification, its own
// override if present or else its group's override, at construction time.
func NewOverrider(overrides map[Classification]LevelRange) *Overrider {
	o := &Overrider{byCode: make(map[int]LevelRange, len(byCode))}

	// Seed group-root overrides onto every member of the group first, so
	// that a subsequent specific override (applied below) takes priority.
	for c := range byCode {
		cl := byCode[c]
		if !cl.IsGroupRoot() {
			continue
		}
		if r, ok := overrides[cl]; ok {
			for code, member := range byCode {
				if member.Group().code == cl.code {
					o.byCode[code] = r
				}
			}
		}
	}
	for cl, r := range overrides {
		if !cl.IsGroupRoot() {
			o.byCode[cl.code] = r
		}
	}
	return o
}

// Adjust returns the adjusted level for a diagnostic with the given
// classification and original level.
func (o *Overrider) Adjust(c Classification, original Level) Level {
	if o == nil {
		return original
	}
	if r, ok := o.byCode[c.code]; ok {
		return r.Clamp(original)
	}
	return original
}
