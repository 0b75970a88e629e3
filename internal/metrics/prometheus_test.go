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

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.ObserveRequest("/logplugin.LogPlugin/Process", "OK", 5*time.Millisecond)
	r.ObserveRequest("/logplugin.LogPlugin/Process", "OK", time.Millisecond)
	r.ObserveRequest("/logplugin.LogPlugin/Process", "InvalidArgument", time.Millisecond)
	r.AddEntries(10)
	r.AddEntries(0)
	r.AddCategory("timeout_error", 4)
	r.AddCategory("other_error", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requests.WithLabelValues("/logplugin.LogPlugin/Process", "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("/logplugin.LogPlugin/Process", "InvalidArgument")))
	assert.Equal(t, 10.0, testutil.ToFloat64(r.entries))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.categories.WithLabelValues("timeout_error")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.categories))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *PrometheusRecorder
	r.ObserveRequest("m", "OK", time.Second)
	r.AddEntries(1)
	r.AddCategory("x", 1)

	var n Recorder = NoopRecorder{}
	n.ObserveRequest("m", "OK", time.Second)
}

func TestHTTPHandler(t *testing.T) {
	reg := NewRegistry()
	NewPrometheusRecorder(reg).AddEntries(2)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "logplugin_entries_received_total 2"), body)
	assert.Contains(t, body, "go_goroutines")
}
