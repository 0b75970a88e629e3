/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package mapper

import (
	"fmt"
	"sort"
	"strings"

	"dirpx.dev/logplugin/apis"
	"dirpx.dev/logplugin/code"
	"dirpx.dev/logplugin/reason"
	"google.golang.org/grpc/codes"
)

// New builds an immutable apis.Mapper from the library defaults and opts.
//
// Errors indicate an invalid reason prefix in one of the prefix options.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	httpRules, err := compileAll(b.httpPrefixes)
	if err != nil {
		return nil, fmt.Errorf("mapper: HTTP %w", err)
	}
	grpcRules, err := compileAll(b.grpcPrefixes)
	if err != nil {
		return nil, fmt.Errorf("mapper: gRPC %w", err)
	}

	return &mapper{
		httpDefault: b.httpDefault,
		grpcDefault: b.grpcDefault,
		httpRules:   httpRules,
		grpcRules:   grpcRules,
	}, nil
}

// MustNew is New that panics on error. Intended for package-level defaults.
func MustNew(opts ...Option) apis.Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// mapper owns every map it holds; nothing is shared with the builder's caller.
type mapper struct {
	httpDefault map[code.Code]int
	grpcDefault map[code.Code]codes.Code
	httpRules   map[code.Code][]prefixRule[int]
	grpcRules   map[code.Code][]prefixRule[codes.Code]
}

// HTTPStatus resolves an HTTP status: prefix, default, 500.
func (m *mapper) HTTPStatus(c code.Code, r reason.Reason) int {
	if v, ok := match(m.httpRules[c], r); ok {
		return v
	}
	if v, ok := m.httpDefault[c]; ok {
		return v
	}
	return fallbackHTTP
}

// GRPCStatus resolves a gRPC code: prefix, default, INTERNAL.
func (m *mapper) GRPCStatus(c code.Code, r reason.Reason) codes.Code {
	if v, ok := match(m.grpcRules[c], r); ok {
		return v
	}
	if v, ok := m.grpcDefault[c]; ok {
		return v
	}
	return fallbackGRPC
}

// Status resolves both transports for a single logical error.
func (m *mapper) Status(c code.Code, r reason.Reason) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(c, r),
		GRPC: m.GRPCStatus(c, r),
	}
}

type prefixRule[T any] struct {
	segs  []string
	wild  int
	value T
}

// compileAll validates prefixes and orders each code's rules so the first
// match is the most specific: more segments first, then fewer wildcards,
// then registration order.
func compileAll[T any](raw map[code.Code][]rawRule[T]) (map[code.Code][]prefixRule[T], error) {
	out := make(map[code.Code][]prefixRule[T], len(raw))
	for c, rules := range raw {
		compiled := make([]prefixRule[T], 0, len(rules))
		for _, r := range rules {
			segs, err := parsePrefix(r.prefix)
			if err != nil {
				return nil, fmt.Errorf("reason-prefix %q for code %q: %w", r.prefix, c, err)
			}
			wild := 0
			for _, s := range segs {
				if s == "*" {
					wild++
				}
			}
			compiled = append(compiled, prefixRule[T]{segs: segs, wild: wild, value: r.val})
		}
		sort.SliceStable(compiled, func(i, j int) bool {
			if len(compiled[i].segs) != len(compiled[j].segs) {
				return len(compiled[i].segs) > len(compiled[j].segs)
			}
			return compiled[i].wild < compiled[j].wild
		})
		out[c] = compiled
	}
	return out, nil
}

func match[T any](rules []prefixRule[T], r reason.Reason) (T, bool) {
	var zero T
	if len(rules) == 0 || r == reason.Empty {
		return zero, false
	}
	segs := r.Segments()
	for _, rule := range rules {
		if hasPrefix(segs, rule.segs) {
			return rule.value, true
		}
	}
	return zero, false
}

func hasPrefix(segs, prefix []string) bool {
	if len(prefix) > len(segs) {
		return false
	}
	for i, p := range prefix {
		if p != "*" && p != segs[i] {
			return false
		}
	}
	return true
}

// parsePrefix normalizes raw and splits it into segments. Each segment is
// "*" or [a-z][a-z0-9_]*; a prefix made only of wildcards is rejected.
func parsePrefix(raw string) ([]string, error) {
	p := reason.Normalize(raw)
	if p == "" {
		return nil, fmt.Errorf("empty prefix")
	}
	segs := strings.Split(p, ".")
	allWild := true
	for _, seg := range segs {
		if !validSegment(seg) {
			return nil, fmt.Errorf("invalid segment %q", seg)
		}
		if seg != "*" {
			allWild = false
		}
	}
	if allWild {
		return nil, fmt.Errorf("prefix cannot consist of '*' only")
	}
	return segs, nil
}

func validSegment(seg string) bool {
	if seg == "*" {
		return true
	}
	if seg == "" || seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
