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

import "github.com/substrait-io/substrait-validator-sub000/meta"

// Program is a compiled derivation expression: a function overload's
// return-type computation. It satisfies types.DerivationProgram without
// that package needing to import this one (see types/decl.go).
type Program struct {
	src   string
	stmts []stmt
}

// Compile parses src (a derivation-language program, §4.3) into a Program.
// resolver may be nil if the expression is known not to reference any
// user-defined type class or variation name (e.g. while compiling a
// built-in extension's own derivations, where nothing has been declared
// yet to resolve against).
func Compile(src string, resolver Resolver) (*Program, error) {
	stmts, err := parseProgram(src, resolver)
	if err != nil {
		return nil, err
	}
	return &Program{src: src, stmts: stmts}, nil
}

// CompilePattern parses src as a single function-argument pattern rather
// than a full statement sequence.
func CompilePattern(src string, resolver Resolver) (meta.Pattern, error) {
	e, err := parsePattern(src, resolver)
	if err != nil {
		return nil, err
	}
	return asPattern(e), nil
}

// Evaluate runs the program against the bound argument values in ctx (the
// caller is expected to have already bound each ArgumentPattern's name, or
// matched its pattern, into ctx). Every `assert` statement is checked in
// order; the last normal statement's value is returned.
func (prog *Program) Evaluate(args []meta.Value, ctx *meta.Context) (meta.Value, error) {
	var result meta.Value
	haveResult := false
	for _, s := range prog.stmts {
		v, err := s.e.eval(ctx)
		if err != nil {
			return nil, err
		}
		switch s.kind {
		case stmtAssert:
			b, ok := v.(meta.BoolValue)
			if !ok {
				return nil, invalidf("assert expression did not evaluate to a metabool")
			}
			if !bool(b) {
				return nil, invalidf("assertion failed: %s", prog.src)
			}
		case stmtNormal:
			result = v
			haveResult = true
		}
	}
	if !haveResult {
		return nil, invalidf("derivation program has no value-producing statement")
	}
	return result, nil
}

// String renders the original source text, matching how export_proto wants
// to echo a function's return-type expression back out.
func (prog *Program) String() string { return prog.src }
