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
	"net/http"

	"dirpx.dev/logplugin/code"
	"google.golang.org/grpc/codes"
)

// Option configures the Mapper at build time.
type Option func(*builder)

// WithHTTPDefault replaces the default HTTP status for c.
func WithHTTPDefault(c code.Code, status int) Option {
	return func(b *builder) { b.httpDefault[c] = status }
}

// WithGRPCDefault replaces the default gRPC code for c.
func WithGRPCDefault(c code.Code, gc codes.Code) Option {
	return func(b *builder) { b.grpcDefault[c] = gc }
}

// WithHTTPPrefix adds a reason-prefix rule for c. The longest matching prefix wins.
func WithHTTPPrefix(c code.Code, prefix string, status int) Option {
	return func(b *builder) { b.httpPrefixes[c] = append(b.httpPrefixes[c], rawRule[int]{prefix, status}) }
}

// WithGRPCPrefix adds a reason-prefix rule for c. The longest matching prefix wins.
func WithGRPCPrefix(c code.Code, prefix string, gc codes.Code) Option {
	return func(b *builder) {
		b.grpcPrefixes[c] = append(b.grpcPrefixes[c], rawRule[codes.Code]{prefix, gc})
	}
}

type rawRule[T any] struct {
	prefix string
	val    T
}

type builder struct {
	httpDefault  map[code.Code]int
	grpcDefault  map[code.Code]codes.Code
	httpPrefixes map[code.Code][]rawRule[int]
	grpcPrefixes map[code.Code][]rawRule[codes.Code]
}

func newBuilder() *builder {
	b := &builder{
		httpDefault:  make(map[code.Code]int, len(defaultHTTP)),
		grpcDefault:  make(map[code.Code]codes.Code, len(defaultGRPC)),
		httpPrefixes: make(map[code.Code][]rawRule[int]),
		grpcPrefixes: make(map[code.Code][]rawRule[codes.Code]),
	}
	for k, v := range defaultHTTP {
		b.httpDefault[k] = v
	}
	for k, v := range defaultGRPC {
		b.grpcDefault[k] = v
	}
	return b
}

const (
	fallbackHTTP = http.StatusInternalServerError
	fallbackGRPC = codes.Internal
)
