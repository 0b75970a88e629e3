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

// Package metrics records request and classification metrics for the plugin.
//
// Recorder is the narrow interface the transports depend on; NoopRecorder is
// used when metrics are disabled and PrometheusRecorder exports to a
// Prometheus registry.
package metrics

import "time"

// Recorder receives observability hooks. Implementations must be safe for
// concurrent use.
type Recorder interface {
	// ObserveRequest records one finished RPC or HTTP call. code is the gRPC
	// status name for RPCs ("OK", "InvalidArgument") and the numeric status
	// for HTTP ("200", "413").
	ObserveRequest(method, code string, d time.Duration)
	// AddEntries records the number of entries received in one request.
	AddEntries(n int)
	// AddCategory records a category reported back to the host with its count.
	AddCategory(category string, n int64)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveRequest(string, string, time.Duration) {}
func (NoopRecorder) AddEntries(int)                               {}
func (NoopRecorder) AddCategory(string, int64)                    {}
