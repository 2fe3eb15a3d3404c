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

package loader

import (
	"context"
	"path/filepath"
)

// Fetcher retrieves the raw bytes of an extension YAML document named by
// uri. It is the injected collaborator §6.3 calls for: this package never
// opens a socket or a file itself, leaving transport (embedded resource,
// local file, HTTP GET, in-memory test fixture) entirely up to the caller,
// the same way the teacher's own `ytypes` leaves schema-tree lookups behind
// an injected interface rather than hardcoding a filesystem walk.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// FetcherFunc adapts a plain function to a Fetcher.
type FetcherFunc func(ctx context.Context, uri string) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, uri string) ([]byte, error) { return f(ctx, uri) }

// Override rewrites or suppresses a dependency URI before it reaches the
// Fetcher, per the design notes' "override rule" (e.g. redirecting a
// well-known extension URI to a pinned local copy, or skipping a dependency
// known to be unreachable in a sandboxed environment).
type Override struct {
	// Pattern is matched against a candidate URI with filepath.Match's glob
	// syntax (the same syntax the teacher's genutil config globs use).
	Pattern string
	// Replacement, if non-empty, replaces the whole URI on a match.
	Replacement string
	// Skip, if true, causes a matching URI to resolve to an unfetched
	// placeholder module instead of ever reaching the Fetcher.
	Skip bool
}

func (o Override) apply(uri string) (rewritten string, skip bool, matched bool) {
	ok, err := filepath.Match(o.Pattern, uri)
	if err != nil || !ok {
		return uri, false, false
	}
	if o.Skip {
		return uri, true, true
	}
	if o.Replacement != "" {
		return o.Replacement, false, true
	}
	return uri, false, true
}

// Config bundles the resolution policy knobs for Load.
type Config struct {
	// MaxDepth bounds transitive "dependencies" resolution (§6.3); a
	// dependency chain deeper than this gets a placeholder module and a
	// LinkDepthExceeded diagnostic instead of a further Fetch.
	MaxDepth int
	// Overrides is consulted in order; the first matching entry wins.
	Overrides []Override
}

// resolveURI applies cfg's override rules to uri, in order.
func (cfg Config) resolveURI(uri string) (resolved string, skip bool) {
	for _, o := range cfg.Overrides {
		if rewritten, skipped, matched := o.apply(uri); matched {
			return rewritten, skipped
		}
	}
	return uri, false
}
