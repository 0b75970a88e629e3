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
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "logplugin"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	requests   *prom.CounterVec
	duration   *prom.HistogramVec
	entries    prom.Counter
	categories *prom.CounterVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder creates the plugin metrics and registers them on reg.
// A nil reg registers on a private registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Handled requests by method and status code",
		}, []string{"method", "code"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Request handling duration",
			Buckets:   prom.DefBuckets,
		}, []string{"method"}),
		entries: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "entries_received_total",
			Help:      "Log entries received for aggregation",
		}),
		categories: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "category_occurrences_total",
			Help:      "Error occurrences reported to the host by category",
		}, []string{"category"}),
	}
	reg.MustRegister(pr.requests, pr.duration, pr.entries, pr.categories)
	return pr
}

func (p *PrometheusRecorder) ObserveRequest(method, code string, d time.Duration) {
	if p == nil {
		return
	}
	p.requests.WithLabelValues(method, code).Inc()
	p.duration.WithLabelValues(method).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddEntries(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.entries.Add(float64(n))
}

func (p *PrometheusRecorder) AddCategory(category string, n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.categories.WithLabelValues(category).Add(float64(n))
}

// NewRegistry returns a registry preloaded with the Go runtime and process
// collectors.
func NewRegistry() *prom.Registry {
	reg := prom.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// HTTPHandler serves the metrics of reg in the Prometheus exposition format.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
