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

package reason

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim+lower", "  Params.Min_Count.Syntax  ", "params.min_count.syntax"},
		{"slash to dot", "rpc/process/panic", "rpc.process.panic"},
		{"dash to underscore", "params.min-count", "params.min_count"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want Reason
	}{
		{"params.min_count.syntax", Reason("params.min_count.syntax")},
		{"rpc/process", Reason("rpc.process")},
		{"", Empty},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"params..min_count", ErrReasonInvalidFormat},
		{"1params.parse", ErrReasonInvalidFormat},
		{"params.min_count.", ErrReasonInvalidFormat},
		{"a.b.c.d.e", ErrReasonInvalidFormat},
		{"ab", ErrReasonInvalidLength},
		{"a" + strings.Repeat("b", MaxLength), ErrReasonInvalidLength},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != tt.want {
			t.Fatalf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
		}
		if got != Empty {
			t.Fatalf("Parse(%q) on error must return Empty, got %q", tt.in, got)
		}
	}
}

func TestMustParse_RejectsEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustParse(\"\") should panic")
		}
	}()
	_ = MustParse("")
}

func TestSegments(t *testing.T) {
	if got := Empty.Segments(); got != nil {
		t.Fatalf("Empty.Segments() = %v, want nil", got)
	}
	got := MustParse("params.min_count.range").Segments()
	want := []string{"params", "min_count", "range"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Segments() = %v, want %v", got, want)
	}
}

func TestReason_UnmarshalText(t *testing.T) {
	var r Reason
	if err := r.UnmarshalText([]byte("  RPC/Process/Panic ")); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if r != Reason("rpc.process.panic") {
		t.Fatalf("got %q", r)
	}
	if err := r.UnmarshalText([]byte("   ")); err != nil || r != Empty {
		t.Fatalf("whitespace must give Empty, got %q, %v", r, err)
	}
	if err := r.UnmarshalText([]byte("bad..reason")); err == nil {
		t.Fatalf("expected error")
	}
}
