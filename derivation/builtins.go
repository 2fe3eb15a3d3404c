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

package derivation

import (
	"math"

	"github.com/substrait-io/substrait-validator-sub000/meta"
)

// builtinFunc is the signature every derivation-language standard library
// function shares: evaluated arguments in, one resulting meta.Value out (or
// a failure classified via invalidf/failedf).
type builtinFunc func(args []meta.Value, ctx *meta.Context) (meta.Value, error)

func wantBool(v meta.Value, who string) (bool, error) {
	b, ok := v.(meta.BoolValue)
	if !ok {
		return false, invalidf("%s expects a metabool argument, got %s", who, v.MetaType())
	}
	return bool(b), nil
}

func wantInt(v meta.Value, who string) (int64, error) {
	i, ok := v.(meta.IntValue)
	if !ok {
		return 0, invalidf("%s expects a metaint argument, got %s", who, v.MetaType())
	}
	return int64(i), nil
}

func arity(args []meta.Value, n int, who string) error {
	if len(args) != n {
		return invalidf("%s expects %d argument(s), got %d", who, n, len(args))
	}
	return nil
}

// builtins is the derivation language's standard library (§4.3, §9's design
// notes list), grounded on `rs/src/output/type_system/meta/functions.rs`'s
// builtin table.
var builtins = map[string]builtinFunc{
	"not": func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		if err := arity(args, 1, "not"); err != nil {
			return nil, err
		}
		b, err := wantBool(args[0], "not")
		if err != nil {
			return nil, err
		}
		return meta.BoolValue(!b), nil
	},
	"and": func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		result := true
		for _, a := range args {
			b, err := wantBool(a, "and")
			if err != nil {
				return nil, err
			}
			result = result && b
		}
		return meta.BoolValue(result), nil
	},
	"or": func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		result := false
		for _, a := range args {
			b, err := wantBool(a, "or")
			if err != nil {
				return nil, err
			}
			result = result || b
		}
		return meta.BoolValue(result), nil
	},
	"negate": func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		if err := arity(args, 1, "negate"); err != nil {
			return nil, err
		}
		i, err := wantInt(args[0], "negate")
		if err != nil {
			return nil, err
		}
		if i == math.MinInt64 {
			return nil, failedf("negate: overflow negating %d", i)
		}
		return meta.IntValue(-i), nil
	},
	"add":      intFold("add", checkedAdd),
	"subtract": intFold("subtract", checkedSubtract),
	"multiply": intFold("multiply", checkedMultiply),
	"divide": func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		if len(args) < 2 {
			return nil, invalidf("divide expects at least 2 arguments, got %d", len(args))
		}
		acc, err := wantInt(args[0], "divide")
		if err != nil {
			return nil, err
		}
		for _, a := range args[1:] {
			v, err := wantInt(a, "divide")
			if err != nil {
				return nil, err
			}
			if v == 0 {
				return nil, failedf("divide: division by zero")
			}
			acc /= v
		}
		return meta.IntValue(acc), nil
	},
	"min": func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		if len(args) == 0 {
			return nil, invalidf("min expects at least 1 argument")
		}
		best, err := wantInt(args[0], "min")
		if err != nil {
			return nil, err
		}
		for _, a := range args[1:] {
			v, err := wantInt(a, "min")
			if err != nil {
				return nil, err
			}
			if v < best {
				best = v
			}
		}
		return meta.IntValue(best), nil
	},
	"max": func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		if len(args) == 0 {
			return nil, invalidf("max expects at least 1 argument")
		}
		best, err := wantInt(args[0], "max")
		if err != nil {
			return nil, err
		}
		for _, a := range args[1:] {
			v, err := wantInt(a, "max")
			if err != nil {
				return nil, err
			}
			if v > best {
				best = v
			}
		}
		return meta.IntValue(best), nil
	},
	"equal": func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		if err := arity(args, 2, "equal"); err != nil {
			return nil, err
		}
		if args[0].MetaType() != args[1].MetaType() {
			return nil, invalidf("equal: operands have different meta-types")
		}
		return meta.BoolValue(args[0].Equal(args[1])), nil
	},
	"not_equal": func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		if err := arity(args, 2, "not_equal"); err != nil {
			return nil, err
		}
		if args[0].MetaType() != args[1].MetaType() {
			return nil, invalidf("not_equal: operands have different meta-types")
		}
		return meta.BoolValue(!args[0].Equal(args[1])), nil
	},
	"greater_than":  intCompare("greater_than", func(a, b int64) bool { return a > b }),
	"less_than":     intCompare("less_than", func(a, b int64) bool { return a < b }),
	"greater_equal": intCompare("greater_equal", func(a, b int64) bool { return a >= b }),
	"less_equal":    intCompare("less_equal", func(a, b int64) bool { return a <= b }),
	"if_then_else": func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		if err := arity(args, 3, "if_then_else"); err != nil {
			return nil, err
		}
		cond, err := wantBool(args[0], "if_then_else")
		if err != nil {
			return nil, err
		}
		if cond {
			return args[1], nil
		}
		return args[2], nil
	},
}

// intFold applies a checked binary int64 operation left-to-right over args,
// failing with diag.DerivationFailed (per §4.3's "checked 64-bit integer
// ops; overflow -> DerivationFailed") the same way divide's zero-check a
// few lines above does, rather than silently wrapping around.
func intFold(who string, f func(acc, v int64) (int64, bool)) builtinFunc {
	return func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		if len(args) < 2 {
			return nil, invalidf("%s expects at least 2 arguments, got %d", who, len(args))
		}
		acc, err := wantInt(args[0], who)
		if err != nil {
			return nil, err
		}
		for _, a := range args[1:] {
			v, err := wantInt(a, who)
			if err != nil {
				return nil, err
			}
			result, ok := f(acc, v)
			if !ok {
				return nil, failedf("%s: overflow computing %d and %d", who, acc, v)
			}
			acc = result
		}
		return meta.IntValue(acc), nil
	}
}

// checkedAdd, checkedSubtract and checkedMultiply report ok=false on int64
// overflow instead of wrapping, mirroring the standard pre-condition checks
// for checked arithmetic (no math/bits overflow primitive exists for
// multiply, so all three are done by comparing against the inverse
// operation).
func checkedAdd(acc, v int64) (int64, bool) {
	sum := acc + v
	if (v > 0 && sum < acc) || (v < 0 && sum > acc) {
		return 0, false
	}
	return sum, true
}

func checkedSubtract(acc, v int64) (int64, bool) {
	diff := acc - v
	if (v < 0 && diff < acc) || (v > 0 && diff > acc) {
		return 0, false
	}
	return diff, true
}

func checkedMultiply(acc, v int64) (int64, bool) {
	if acc == 0 || v == 0 {
		return 0, true
	}
	product := acc * v
	if product/v != acc {
		return 0, false
	}
	if (acc == math.MinInt64 && v == -1) || (v == math.MinInt64 && acc == -1) {
		return 0, false
	}
	return product, true
}

func intCompare(who string, f func(a, b int64) bool) builtinFunc {
	return func(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
		if err := arity(args, 2, who); err != nil {
			return nil, err
		}
		a, err := wantInt(args[0], who)
		if err != nil {
			return nil, err
		}
		b, err := wantInt(args[1], who)
		if err != nil {
			return nil, err
		}
		return meta.BoolValue(f(a, b)), nil
	}
}
