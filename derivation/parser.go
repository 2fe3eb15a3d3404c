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
	"github.com/substrait-io/substrait-validator-sub000/meta"
	"github.com/substrait-io/substrait-validator-sub000/types"
)

// simpleClassKeywords maps the grammar's built-in type class keywords to
// their SimpleClass, mirroring `rs/src/parse/extensions/simple/
// type_classes.rs`'s keyword table.
var simpleClassKeywords = map[string]types.SimpleClass{
	"boolean":       types.Boolean,
	"i8":            types.I8,
	"i16":           types.I16,
	"i32":           types.I32,
	"i64":           types.I64,
	"fp32":          types.FP32,
	"fp64":          types.FP64,
	"string":        types.StringClass,
	"binary":        types.Binary,
	"timestamp":     types.Timestamp,
	"timestamp_tz":  types.TimestampTZ,
	"date":          types.Date,
	"time":          types.Time,
	"interval_year": types.IntervalYear,
	"interval_day":  types.IntervalDay,
	"uuid":          types.UUID,
}

var compoundClassKeywords = map[string]types.CompoundClass{
	"fixedchar":   types.FixedChar,
	"varchar":     types.VarChar,
	"fixedbinary": types.FixedBinary,
	"decimal":     types.Decimal,
	"struct":      types.Struct,
	"nstruct":     types.NStruct,
	"list":        types.List,
	"map":         types.Map,
}

// parser is a one-token-lookahead recursive-descent parser over the
// derivation language's precedence chain: Or > And > EqNeq > Ineq >
// AddSub > MulDiv > Unary > Primary, matching the grammar rule nesting
// named by substraittypelistener.rs (patternOr/patternAnd/.../patternMisc).
type parser struct {
	lx       *lexer
	tok      token
	resolver Resolver
}

func newParser(src string, resolver Resolver) (*parser, error) {
	p := &parser{lx: newLexer(src), resolver: resolver}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	t, err := p.lx.next()
	if err != nil {
		le := err.(*lexError)
		return &ParseError{Offset: le.pos, Message: le.msg}
	}
	p.tok = t
	return nil
}

func (p *parser) fail(msg string) error {
	return &ParseError{Offset: p.lx.pos, Message: msg}
}

func (p *parser) expect(k tokenKind, msg string) error {
	if p.tok.kind != k {
		return p.fail(msg)
	}
	return p.advance()
}

// parseProgram parses a semicolon-separated sequence of statements. An
// "assert EXPR" statement fails the program at evaluation time if EXPR
// isn't true; every other statement is a plain expression, and the last
// one's value is the program's result (there being no explicit `return`
// keyword in the grammar's `statement` rule, the final normal statement
// plays that role - see DESIGN.md's note on this Open Question).
func parseProgram(src string, resolver Resolver) ([]stmt, error) {
	p, err := newParser(src, resolver)
	if err != nil {
		return nil, err
	}
	var stmts []stmt
	for p.tok.kind != tokEOF {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
		if p.tok.kind == tokSemi {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if p.tok.kind != tokEOF {
		return nil, p.fail("expected ';' or end of input")
	}
	if len(stmts) == 0 {
		return nil, p.fail("empty derivation program")
	}
	return stmts, nil
}

// parsePattern parses a single pattern expression (used for a function
// argument's pattern, not a whole statement sequence).
func parsePattern(src string, resolver Resolver) (expr, error) {
	p, err := newParser(src, resolver)
	if err != nil {
		return nil, err
	}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.fail("unexpected trailing input")
	}
	return e, nil
}

type stmtKind int

const (
	stmtNormal stmtKind = iota
	stmtAssert
)

type stmt struct {
	kind stmtKind
	e    expr
}

func (p *parser) parseStatement() (stmt, error) {
	if p.tok.kind == tokIdent && p.tok.text == "assert" {
		if err := p.advance(); err != nil {
			return stmt{}, err
		}
		e, err := p.parseOr()
		if err != nil {
			return stmt{}, err
		}
		return stmt{kind: stmtAssert, e: e}, nil
	}
	e, err := p.parseOr()
	if err != nil {
		return stmt{}, err
	}
	return stmt{kind: stmtNormal, e: e}, nil
}

func (p *parser) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binaryOp{op: tokOr, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseEqNeq()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseEqNeq()
		if err != nil {
			return nil, err
		}
		left = binaryOp{op: tokAnd, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseEqNeq() (expr, error) {
	left, err := p.parseIneq()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokEq || p.tok.kind == tokNeq {
		op := p.tok.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseIneq()
		if err != nil {
			return nil, err
		}
		left = binaryOp{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseIneq() (expr, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokLAngle || p.tok.kind == tokLe || p.tok.kind == tokRAngle || p.tok.kind == tokGe {
		op := p.tok.kind
		if op == tokLAngle {
			op = tokLt
		} else if op == tokRAngle {
			op = tokGt
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		left = binaryOp{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAddSub() (expr, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokPlus || p.tok.kind == tokMinus {
		op := p.tok.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = binaryOp{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseMulDiv() (expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokStar || p.tok.kind == tokSlash {
		op := p.tok.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryOp{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (expr, error) {
	switch p.tok.kind {
	case tokNot:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryOp{op: tokNot, expr: e}, nil
	case tokMinus:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryOp{op: tokMinus, expr: e}, nil
	}
	return p.parseTernary()
}

// parseTernary handles `cond ? then : else`, binding tighter than the
// comparison operators above it in this implementation's chain (the
// original grammar surfaces it as the ifThenElse labeled alternative of
// patternMisc, i.e. also at the leaves) but looser than primaries.
func (p *parser) parseTernary() (expr, error) {
	cond, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokQuestion {
		return cond, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	then, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokColon, "expected ':' in conditional expression"); err != nil {
		return nil, err
	}
	els, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	return ifExpr{cond: cond, then: then, els: els}, nil
}

func (p *parser) parsePrimary() (expr, error) {
	switch p.tok.kind {
	case tokInt:
		n := p.tok.ival
		if err := p.advance(); err != nil {
			return nil, err
		}
		return intLit(n), nil
	case tokString:
		s := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return strLit(s), nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen, "expected ')'"); err != nil {
			return nil, err
		}
		return e, nil
	case tokIdent:
		return p.parseIdentOrKeyword()
	}
	return nil, p.fail("expected an expression")
}

func (p *parser) parseIdentOrKeyword() (expr, error) {
	name := p.tok.text
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch name {
	case "true":
		return boolLit(true), nil
	case "false":
		return boolLit(false), nil
	case "bool":
		return p.parseBoolPattern()
	case "int":
		return p.parseIntPattern()
	case "enum":
		return p.parseEnumPattern()
	case "str":
		return p.parseStrPattern()
	case "datatype":
		return typeExpr{}, nil
	}
	if _, ok := simpleClassKeywords[name]; ok {
		return p.parseTypeExpr(name)
	}
	if _, ok := compoundClassKeywords[name]; ok {
		return p.parseTypeExpr(name)
	}
	if p.tok.kind == tokLParen {
		return p.parseCall(name)
	}
	if p.resolver != nil {
		if ref, ok := p.resolver.ResolveClass(name); ok {
			return p.parseTypeExprClass(types.NewUserDefinedClass(ref))
		}
	}
	return bindingRef{name: name}, nil
}

func (p *parser) parseCall(name string) (expr, error) {
	if err := p.advance(); err != nil { // consume '('
		return nil, err
	}
	var args []expr
	for p.tok.kind != tokRParen {
		a, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expect(tokRParen, "expected ')' to close argument list"); err != nil {
		return nil, err
	}
	return callExpr{name: name, args: args}, nil
}

func (p *parser) parseBoolPattern() (expr, error) {
	return patternLit{pat: meta.AnyBoolean()}, nil
}

func (p *parser) parseIntPattern() (expr, error) {
	if p.tok.kind != tokLAngle {
		return patternLit{pat: meta.AnyInteger()}, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var min, max int64
	hasMin, hasMax := false, false
	if p.tok.kind == tokInt {
		min = p.tok.ival
		hasMin = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.kind == tokComma {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokInt {
			max = p.tok.ival
			hasMax = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	} else if hasMin {
		max = min
		hasMax = true
	}
	if err := p.expect(tokRAngle, "expected '>' to close int pattern"); err != nil {
		return nil, err
	}
	switch {
	case hasMin && hasMax:
		return patternLit{pat: meta.RangeInteger(min, max)}, nil
	case hasMin:
		return patternLit{pat: meta.IntegerPattern{Min: min, HasMin: true}}, nil
	case hasMax:
		return patternLit{pat: meta.IntegerPattern{Max: max, HasMax: true}}, nil
	default:
		return patternLit{pat: meta.AnyInteger()}, nil
	}
}

func (p *parser) parseEnumPattern() (expr, error) {
	if p.tok.kind == tokIdent && p.tok.text == "any" {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return patternLit{pat: meta.AnyEnum()}, nil
	}
	if err := p.expect(tokLBracket, "expected '[' to open enum option set"); err != nil {
		return nil, err
	}
	var options []string
	for p.tok.kind != tokRBracket {
		if p.tok.kind != tokIdent {
			return nil, p.fail("expected enum option name")
		}
		options = append(options, p.tok.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expect(tokRBracket, "expected ']' to close enum option set"); err != nil {
		return nil, err
	}
	return patternLit{pat: meta.OptionsEnum(options...)}, nil
}

func (p *parser) parseStrPattern() (expr, error) {
	return patternLit{pat: meta.AnyString()}, nil
}

func (p *parser) parseTypeExpr(keyword string) (expr, error) {
	if simple, ok := simpleClassKeywords[keyword]; ok {
		return p.parseTypeExprClass(types.NewSimpleClass(simple))
	}
	compound := compoundClassKeywords[keyword]
	return p.parseTypeExprClass(types.NewCompoundClass(compound))
}

func (p *parser) parseTypeExprClass(class types.Class) (expr, error) {
	t := typeExpr{class: class, hasClass: true}
	if p.tok.kind == tokQuestion {
		t.hasNullable = true
		t.nullable = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tok.kind == tokLBracket {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokIdent {
			return nil, p.fail("expected variation name")
		}
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.resolver != nil {
			if ref, ok := p.resolver.ResolveVariation(name); ok {
				t.hasVariation = true
				t.variation = types.NewVariation(ref)
			}
		}
		if err := p.expect(tokRBracket, "expected ']' to close variation name"); err != nil {
			return nil, err
		}
	}
	if p.tok.kind == tokLAngle {
		if err := p.advance(); err != nil {
			return nil, err
		}
		t.hasParams = true
		for p.tok.kind != tokRAngle {
			param, err := p.parseTypeParam()
			if err != nil {
				return nil, err
			}
			t.params = append(t.params, param)
			if p.tok.kind == tokComma {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		if err := p.expect(tokRAngle, "expected '>' to close parameter list"); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (p *parser) parseTypeParam() (typeParam, error) {
	// An NSTRUCT field looks like `name: value`; disambiguated from a plain
	// value by a one-token lookahead for the following ':'.
	if p.tok.kind == tokIdent {
		name := p.tok.text
		savedTok, savedPos := p.tok, p.lx.pos
		if err := p.advance(); err != nil {
			return typeParam{}, err
		}
		if p.tok.kind == tokColon {
			if err := p.advance(); err != nil {
				return typeParam{}, err
			}
			v, err := p.parseOr()
			if err != nil {
				return typeParam{}, err
			}
			return typeParam{name: name, hasName: true, value: v}, nil
		}
		p.tok, p.lx.pos = savedTok, savedPos
	}
	v, err := p.parseOr()
	if err != nil {
		return typeParam{}, err
	}
	return typeParam{value: v}, nil
}
