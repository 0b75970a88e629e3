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

package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/logplugin/aggregator"
	"dirpx.dev/logplugin/code"
	"dirpx.dev/logplugin/mapper"
	"dirpx.dev/logplugin/perror"
)

func newTestRouter(metrics http.Handler) http.Handler {
	return NewRouter(Config{
		Plugin:  aggregator.New(),
		Mapper:  mapper.MustNew(MapperOptions()...),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestHealthz(t *testing.T) {
	rec, out := do(t, newTestRouter(nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])
}

func TestMetricsMountedOnlyWhenSet(t *testing.T) {
	rec, _ := do(t, newTestRouter(nil), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	m := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("up 1\n")) })
	rec, _ = do(t, newTestRouter(m), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "up 1\n", rec.Body.String())
}

func TestInfo(t *testing.T) {
	rec, out := do(t, newTestRouter(nil), http.MethodGet, "/v1/info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "error-aggregator", out["name"])
	assert.Equal(t, "1.0", out["version"])
	assert.Equal(t, []any{"min_count", "time_window"}, out["supported_parameters"])
}

func TestProcess(t *testing.T) {
	body := `{
		"entries": [
			{"level": "ERROR", "message": "Connection refused"},
			{"level": "ERROR", "message": "Request TIMEOUT"},
			{"level": "ERROR", "message": "dial timeout"},
			{"level": "INFO", "message": "timeout"}
		],
		"parameters": {"min_count": "2"}
	}`
	rec, out := do(t, newTestRouter(nil), http.MethodPost, "/v1/process", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, map[string]any{"timeout_error": "2"}, out["statistics"])
	assert.Equal(t, "", out["error_message"])
}

func TestProcess_EmptyBody(t *testing.T) {
	rec, out := do(t, newTestRouter(nil), http.MethodPost, "/v1/process", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{}, out["statistics"])
}

func TestProcess_InvalidMinCount(t *testing.T) {
	body := `{"entries":[{"level":"ERROR","message":"x"}],"parameters":{"min_count":"abc"}}`
	rec, out := do(t, newTestRouter(nil), http.MethodPost, "/v1/process", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.EqualValues(t, 3, out["code"]) // INVALID_ARGUMENT
	assert.Contains(t, rec.Body.String(), "params.min_count.syntax")
	assert.Contains(t, rec.Body.String(), "google.rpc.BadRequest")
}

func TestProcess_MalformedBody(t *testing.T) {
	rec, _ := do(t, newTestRouter(nil), http.MethodPost, "/v1/process", `{"entries":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "http.body.syntax")
}

func TestWriter(t *testing.T) {
	w := Writer{Mapper: mapper.MustNew()}

	rec := httptest.NewRecorder()
	w.Write(rec, perror.E(code.Timeout, "too slow"))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Contains(t, rec.Body.String(), "too slow")

	rec = httptest.NewRecorder()
	w.Write(rec, errors.New("plain"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	w.Write(rec, nil)
	assert.Equal(t, 0, rec.Body.Len())
}

func TestProcess_BodyTooLarge(t *testing.T) {
	body := strings.Repeat(" ", MaxBodyBytes+10)
	rec, out := do(t, newTestRouter(nil), http.MethodPost, "/v1/process", body)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.EqualValues(t, 8, out["code"]) // RESOURCE_EXHAUSTED
	assert.Contains(t, rec.Body.String(), "http.body.size")
	assert.NotContains(t, rec.Body.String(), "http.body.syntax")
}

type observation struct {
	method, code string
}

type fakeRecorder struct {
	requests   []observation
	entries    int
	categories map[string]int64
}

func (f *fakeRecorder) ObserveRequest(method, code string, _ time.Duration) {
	f.requests = append(f.requests, observation{method, code})
}

func (f *fakeRecorder) AddEntries(n int) { f.entries += n }

func (f *fakeRecorder) AddCategory(cat string, n int64) {
	if f.categories == nil {
		f.categories = make(map[string]int64)
	}
	f.categories[cat] += n
}

func TestRecorder(t *testing.T) {
	fr := &fakeRecorder{}
	h := NewRouter(Config{
		Plugin:   aggregator.New(),
		Mapper:   mapper.MustNew(MapperOptions()...),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Recorder: fr,
	})

	body := `{"entries":[{"level":"ERROR","message":"timeout"},{"level":"INFO","message":"x"}]}`
	rec, _ := do(t, h, http.MethodPost, "/v1/process", body)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = do(t, h, http.MethodPost, "/v1/process", `{"parameters":{"min_count":"-1"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	_, _ = do(t, h, http.MethodGet, "/healthz", "")

	assert.Equal(t, []observation{
		{"POST /v1/process", "200"},
		{"POST /v1/process", "400"},
	}, fr.requests)
	assert.Equal(t, 2, fr.entries)
	assert.Equal(t, map[string]int64{"timeout_error": 1}, fr.categories)
}
