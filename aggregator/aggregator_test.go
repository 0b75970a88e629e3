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

package aggregator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/logplugin"
	"dirpx.dev/logplugin/code"
	"dirpx.dev/logplugin/perror"
)

func errEntry(msg string) logplugin.Entry {
	return logplugin.Entry{Level: logplugin.LevelError, Message: msg}
}

func TestDescribe(t *testing.T) {
	info := New().Describe()
	assert.Equal(t, "error-aggregator", info.Name)
	assert.Equal(t, "1.0", info.Version)
	assert.NotEmpty(t, info.Description)
	assert.Equal(t, []string{"min_count", "time_window"}, info.SupportedParameters)

	info.SupportedParameters[0] = "mutated"
	assert.Equal(t, "min_count", New().Describe().SupportedParameters[0])
}

func TestClassify_PriorityOrder(t *testing.T) {
	c := New()
	tests := []struct {
		msg  string
		want logplugin.Category
	}{
		{"Connection timeout occurred", logplugin.CategoryTimeout},
		{"connection refused", logplugin.CategoryConnection},
		{"Permission denied on connection pool", logplugin.CategoryConnection},
		{"PERMISSION denied", logplugin.CategoryPermission},
		{"resource not found: permission set", logplugin.CategoryPermission},
		{"file Not Found", logplugin.CategoryNotFound},
		{"notfound", logplugin.CategoryOther},
		{"conn failed", logplugin.CategoryOther},
		{"", logplugin.CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.msg))
		})
	}
}

func TestAggregate_Examples(t *testing.T) {
	c := New()
	tests := []struct {
		name    string
		entries []logplugin.Entry
		params  logplugin.Parameters
		want    logplugin.Statistics
	}{
		{
			name: "empty input",
			want: logplugin.Statistics{},
		},
		{
			name:    "timeout beats connection",
			entries: []logplugin.Entry{errEntry("Connection timeout occurred")},
			params:  logplugin.Parameters{},
			want:    logplugin.Statistics{logplugin.CategoryTimeout: 1},
		},
		{
			name: "threshold drops categories",
			entries: []logplugin.Entry{
				errEntry("connection failed"),
				errEntry("connection failed"),
				errEntry("permission denied"),
			},
			params: logplugin.Parameters{"min_count": "2"},
			want:   logplugin.Statistics{logplugin.CategoryConnection: 2},
		},
		{
			name:    "not found",
			entries: []logplugin.Entry{errEntry("file not found")},
			params:  logplugin.Parameters{"min_count": "1"},
			want:    logplugin.Statistics{logplugin.CategoryNotFound: 1},
		},
		{
			name:    "min_count zero keeps everything",
			entries: []logplugin.Entry{errEntry("boom")},
			params:  logplugin.Parameters{"min_count": " 0 "},
			want:    logplugin.Statistics{logplugin.CategoryOther: 1},
		},
		{
			name:    "time_window has no effect",
			entries: []logplugin.Entry{errEntry("timeout"), errEntry("timeout")},
			params:  logplugin.Parameters{"time_window": "5m"},
			want:    logplugin.Statistics{logplugin.CategoryTimeout: 2},
		},
		{
			name:    "unknown parameters are ignored",
			entries: []logplugin.Entry{errEntry("timeout")},
			params:  logplugin.Parameters{"verbose": "yes"},
			want:    logplugin.Statistics{logplugin.CategoryTimeout: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Aggregate(tt.entries, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregate_OnlyExactErrorLevel(t *testing.T) {
	entries := []logplugin.Entry{
		{Level: "error", Message: "timeout"},
		{Level: "Error", Message: "timeout"},
		{Level: "ERROR ", Message: "timeout"},
		{Level: "WARN", Message: "timeout"},
		{Level: "", Message: "timeout"},
		{Level: "ERROR", Message: "timeout"},
	}
	got, err := New().Aggregate(entries, nil)
	require.NoError(t, err)
	assert.Equal(t, logplugin.Statistics{logplugin.CategoryTimeout: 1}, got)
}

func TestAggregate_InvalidMinCount(t *testing.T) {
	entries := []logplugin.Entry{errEntry("timeout")}
	tests := []struct {
		raw    string
		reason string
	}{
		{"abc", "params.min_count.syntax"},
		{"", "params.min_count.syntax"},
		{"1.5", "params.min_count.syntax"},
		{"-1", "params.min_count.range"},
		{"99999999999999999999", "params.min_count.range"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := New().Aggregate(entries, logplugin.Parameters{"min_count": tt.raw})
			require.Error(t, err)
			assert.Nil(t, got)

			pe, ok := perror.As(err)
			require.True(t, ok, "want *perror.Error, got %T", err)
			assert.Equal(t, code.InvalidParameter, pe.Code)
			assert.Equal(t, tt.reason, pe.Reason.String())
			assert.Equal(t, "min_count", pe.Field())
			assert.Equal(t, tt.raw, pe.Details[perror.DetailValue])
		})
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	c := New()
	entries := []logplugin.Entry{errEntry("timeout"), errEntry("connection reset"), errEntry("x")}
	params := logplugin.Parameters{"min_count": "1"}

	first, err := c.Aggregate(entries, params)
	require.NoError(t, err)
	second, err := c.Aggregate(entries, params)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAggregate_ConcurrentCallers(t *testing.T) {
	c := New()
	entries := make([]logplugin.Entry, 0, 300)
	for i := 0; i < 100; i++ {
		entries = append(entries, errEntry("timeout"), errEntry("permission denied"), logplugin.Entry{Level: "INFO", Message: "timeout"})
	}
	want := logplugin.Statistics{logplugin.CategoryTimeout: 100, logplugin.CategoryPermission: 100}

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.Aggregate(entries, nil)
			if err != nil {
				errs <- err
				return
			}
			if !assert.ObjectsAreEqual(want, got) {
				errs <- errors.New("unexpected statistics")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestProcess_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Process(ctx, []logplugin.Entry{errEntry("timeout")}, nil)
	pe, ok := perror.As(err)
	require.True(t, ok)
	assert.Equal(t, code.Canceled, pe.Code)
}

func TestWithRules_CustomTable(t *testing.T) {
	c := New(
		WithRules(
			Rule{Substring: "", Category: "ignored"},
			Rule{Substring: "DISK", Category: "disk_error"},
		),
		WithFallback("unknown_error"),
	)
	assert.Len(t, c.Rules(), 1)
	assert.Equal(t, logplugin.Category("disk_error"), c.Classify("Disk full"))
	assert.Equal(t, logplugin.Category("unknown_error"), c.Classify("timeout"))
}

func TestFilter(t *testing.T) {
	in := logplugin.Statistics{logplugin.CategoryTimeout: 3, logplugin.CategoryOther: 1}
	assert.Equal(t, logplugin.Statistics{logplugin.CategoryTimeout: 3}, Filter(in, 2))
	assert.Empty(t, Filter(in, 4))
	assert.Len(t, in, 2, "input must not be modified")
}
