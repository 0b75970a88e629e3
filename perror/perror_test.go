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

package perror

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"dirpx.dev/logplugin/code"
	"dirpx.dev/logplugin/reason"
)

func TestError_Basics(t *testing.T) {
	e := E(code.InvalidParameter, "min_count must be an integer",
		WithReasonOption(reason.MustParse("params.min_count.syntax")),
		WithDetailOption(DetailField, "min_count"),
	)

	if e.Field() != "min_count" {
		t.Fatalf("Field() = %q", e.Field())
	}
	s := e.Error()
	for _, sub := range []string{"invalid_parameter", "params.min_count.syntax", "must be an integer"} {
		if !strings.Contains(s, sub) {
			t.Fatalf("Error() missing %q in %q", sub, s)
		}
	}
	if got := E(code.Internal, "boom").Error(); got != "internal: boom" {
		t.Fatalf("Error() without reason = %q", got)
	}
}

func TestError_CopyOnWrite(t *testing.T) {
	e1 := E(code.Internal, "x").WithDetail("k1", 1)
	e2 := e1.WithDetail("k2", 2)
	if len(e1.Details) != 1 || len(e2.Details) != 2 {
		t.Fatal("details size mismatch")
	}

	e3 := e2.WithDetail("k1", 3)
	if e2.Details["k1"] != 1 || e3.Details["k1"] != 3 {
		t.Fatal("WithDetail must not mutate the original")
	}
	if e3.WithCause(nil) != e3 {
		t.Fatal("nil cause must return the receiver")
	}
}

func TestAs_ThroughWrapping(t *testing.T) {
	root := errors.New("root")
	e := E(code.Internal, "x").WithCause(root)
	wrapped := fmt.Errorf("outer: %w", e)

	got, ok := As(wrapped)
	if !ok || got != e {
		t.Fatalf("As() = %v, %v", got, ok)
	}
	if !errors.Is(wrapped, root) {
		t.Fatal("errors.Is must reach the cause")
	}
	if _, ok := As(root); ok {
		t.Fatal("As() on foreign error must be false")
	}
}

func TestIs_MatchesCodeAndReason(t *testing.T) {
	r := reason.MustParse("params.min_count.range")
	e := E(code.InvalidParameter, "negative", WithReasonOption(r))

	if !errors.Is(e, E(code.InvalidParameter, "")) {
		t.Fatal("code-only target must match")
	}
	if !errors.Is(e, E(code.InvalidParameter, "").WithReason(r)) {
		t.Fatal("code+reason target must match")
	}
	if errors.Is(e, E(code.InvalidParameter, "").WithReason(reason.MustParse("params.other"))) {
		t.Fatal("different reason must not match")
	}
	if errors.Is(e, E(code.Internal, "")) {
		t.Fatal("different code must not match")
	}
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		err  error
		want code.Code
	}{
		{context.Canceled, code.Canceled},
		{context.DeadlineExceeded, code.Timeout},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), code.Timeout},
		{errors.New("other"), code.Internal},
	}
	for _, tt := range tests {
		got := FromContext(tt.err)
		if got == nil || got.Code != tt.want {
			t.Fatalf("FromContext(%v) = %v, want code %q", tt.err, got, tt.want)
		}
		if !errors.Is(got, tt.err) {
			t.Fatalf("FromContext(%v) must wrap the cause", tt.err)
		}
	}
	if FromContext(nil) != nil {
		t.Fatal("FromContext(nil) must be nil")
	}
}
