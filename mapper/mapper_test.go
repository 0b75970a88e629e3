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
	"testing"

	"dirpx.dev/logplugin/code"
	"dirpx.dev/logplugin/reason"
	"google.golang.org/grpc/codes"
)

func TestDefaults(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	check := func(c code.Code, wantHTTP int, wantGRPC codes.Code) {
		t.Helper()
		st := m.Status(c, reason.Empty)
		if st.HTTP != wantHTTP || st.GRPC != wantGRPC {
			t.Fatalf("Status(%q) got HTTP=%d GRPC=%v; want HTTP=%d GRPC=%v",
				c, st.HTTP, st.GRPC, wantHTTP, wantGRPC)
		}
	}
	check(code.InvalidParameter, 400, codes.InvalidArgument)
	check(code.Internal, 500, codes.Internal)
	check(code.Canceled, 408, codes.Canceled)
	check(code.Timeout, 504, codes.DeadlineExceeded)
	check(code.Code("never_registered"), 500, codes.Internal)
}

func TestAllCodesHaveDefaults(t *testing.T) {
	for _, c := range code.All {
		if _, ok := defaultHTTP[c]; !ok {
			t.Fatalf("no HTTP default for %q", c)
		}
		if _, ok := defaultGRPC[c]; !ok {
			t.Fatalf("no gRPC default for %q", c)
		}
	}
}

func TestPriority_PrefixOverDefault(t *testing.T) {
	r := reason.MustParse("params.min_count.range")

	m := MustNew(
		WithGRPCPrefix(code.InvalidParameter, "params.min_count", codes.OutOfRange),
		WithGRPCDefault(code.InvalidParameter, codes.FailedPrecondition),
	)
	if got := m.GRPCStatus(code.InvalidParameter, r); got != codes.OutOfRange {
		t.Fatalf("prefix must beat an adjusted default; got %v", got)
	}
	if got := m.GRPCStatus(code.InvalidParameter, reason.Empty); got != codes.FailedPrecondition {
		t.Fatalf("adjusted default not applied; got %v", got)
	}

	m = MustNew(WithHTTPPrefix(code.InvalidParameter, "params.min_count", 422))
	if got := m.HTTPStatus(code.InvalidParameter, r); got != 422 {
		t.Fatalf("prefix must beat default; got %d", got)
	}
	if got := m.HTTPStatus(code.InvalidParameter, reason.MustParse("params.other")); got != 400 {
		t.Fatalf("non-matching reason must use default; got %d", got)
	}

	m = MustNew(WithHTTPDefault(code.Canceled, 499), WithGRPCDefault(code.Internal, codes.Unknown))
	if st := m.Status(code.Canceled, reason.Empty); st.HTTP != 499 {
		t.Fatalf("default override failed; got %d", st.HTTP)
	}
	if st := m.Status(code.Internal, reason.Empty); st.GRPC != codes.Unknown {
		t.Fatalf("gRPC default override failed; got %v", st.GRPC)
	}
}

func TestPrefix_LongestAndSegmentBoundary(t *testing.T) {
	m := MustNew(
		WithHTTPPrefix(code.InvalidParameter, "params", 400),
		WithHTTPPrefix(code.InvalidParameter, "params.*.range", 416),
		WithHTTPPrefix(code.InvalidParameter, "params.min_count.range", 422),
		WithHTTPPrefix(code.InvalidParameter, "params.min", 418),
	)
	tests := []struct {
		reason string
		want   int
	}{
		{"params.min_count.range", 422},
		{"params.time_window.range", 416},
		{"params.min_count.syntax", 400},
		{"params.min", 418},
	}
	for _, tt := range tests {
		if got := m.HTTPStatus(code.InvalidParameter, reason.MustParse(tt.reason)); got != tt.want {
			t.Fatalf("HTTPStatus(%q) = %d, want %d", tt.reason, got, tt.want)
		}
	}
}

func TestNew_InvalidPrefix(t *testing.T) {
	for _, p := range []string{"", "*", "*.*", "params..x", "Params.1x"} {
		if _, err := New(WithHTTPPrefix(code.Internal, p, 500)); err == nil {
			t.Fatalf("prefix %q: expected error", p)
		}
	}
}
