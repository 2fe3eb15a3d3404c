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

// Package validator implements the validator's front door (§6.1): parse a
// Substrait Plan's bytes into an annotated tree.Tree, walking every
// relation and expression (§4.6), resolving extension references and
// binding scalar functions (§4.5), and exposing the result through the
// export package's three formats. It is the component every other package
// in this module exists to support.
package validator

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/substrait-io/substrait-validator-sub000/diag"
	"github.com/substrait-io/substrait-validator-sub000/loader"
)

// errNoResolvers is returned by the chain fetcher when no resolver was
// configured at all.
var errNoResolvers = errors.New("validator: no uri resolver configured")

// Config bundles every option listed in §6.2, built via functional options
// the same way ygen's IROptions/genutil option structs are, per
// SPEC_FULL.md §3.8's Ambient Stack section.
type Config struct {
	ignoreUnknownFields bool
	allowProtoAnyURLs   []string
	overrider           *diag.Overrider
	overriderSet        map[diag.Classification]diag.LevelRange
	loaderCfg           loader.Config
	resolvers           []loader.Fetcher
	maxURIDepth         int
}

// Option configures a Config; see the With* constructors below.
type Option func(*Config)

// NewConfig builds a Config from opts, applying library defaults first:
// unknown-field warnings are not suppressed, no Any URL is pre-allowed, and
// URI resolution depth is 0 (§6.2's "0 = no resolution").
func NewConfig(opts ...Option) Config {
	cfg := Config{overriderSet: make(map[diag.Classification]diag.LevelRange)}
	for _, o := range opts {
		o(&cfg)
	}
	cfg.loaderCfg.MaxDepth = cfg.maxURIDepth
	cfg.overrider = diag.NewOverrider(cfg.overriderSet)
	return cfg
}

// IgnoreUnknownFields records that ProtoUnknownField warnings are to be
// suppressed. The validator does not detect or report unknown protobuf
// fields, so setting it does not change a result.
func IgnoreUnknownFields() Option {
	return func(c *Config) { c.ignoreUnknownFields = true }
}

// AllowProtoAnyURL allowlists a glob pattern of google.protobuf.Any type
// URLs that should not be reported with ProtoAny.
func AllowProtoAnyURL(glob string) Option {
	return func(c *Config) { c.allowProtoAnyURLs = append(c.allowProtoAnyURLs, glob) }
}

// OverrideDiagnosticLevel clamps the adjusted level of every diagnostic
// under class (a specific classification or a group root) to [min, max].
func OverrideDiagnosticLevel(class diag.Classification, min, max diag.Level) Option {
	return func(c *Config) { c.overriderSet[class] = diag.LevelRange{Min: min, Max: max} }
}

// OverrideURI remaps URIs matching glob to replacement, or skips
// resolution entirely for matching URIs when replacement is empty.
func OverrideURI(glob, replacement string) Option {
	return func(c *Config) {
		c.loaderCfg.Overrides = append(c.loaderCfg.Overrides, loader.Override{
			Pattern: glob, Replacement: replacement, Skip: replacement == "",
		})
	}
}

// URIResolver appends fetch to the resolver chain (§6.3): resolvers are
// tried in declaration order until one succeeds.
func URIResolver(fetch loader.Fetcher) Option {
	return func(c *Config) { c.resolvers = append(c.resolvers, fetch) }
}

// MaxURIResolutionDepth bounds transitive extension-dependency resolution;
// 0 disables it, negative means unlimited (mirrored onto loader.Config.MaxDepth,
// which this package treats as "unlimited" via a very large sentinel since
// loader.Config.MaxDepth is compared with a plain `>`).
func MaxURIResolutionDepth(n int) Option {
	return func(c *Config) {
		if n < 0 {
			n = 1<<31 - 1
		}
		c.maxURIDepth = n
	}
}

// allowsAnyURL reports whether typeURL matches one of cfg's allowlisted
// globs.
func (cfg Config) allowsAnyURL(typeURL string) bool {
	for _, g := range cfg.allowProtoAnyURLs {
		if ok, err := filepath.Match(g, typeURL); err == nil && ok {
			return true
		}
	}
	return false
}

// chainFetcher tries every resolver in cfg.resolvers in turn, matching
// §6.3's "ordered chain, first success wins" resolver contract.
func (cfg Config) chainFetcher() loader.Fetcher {
	resolvers := cfg.resolvers
	return loader.FetcherFunc(func(ctx context.Context, uri string) ([]byte, error) {
		var lastErr error
		for _, r := range resolvers {
			b, err := r.Fetch(ctx, uri)
			if err == nil {
				return b, nil
			}
			lastErr = err
		}
		if lastErr == nil {
			lastErr = errNoResolvers
		}
		return nil, lastErr
	})
}
