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

// Package logplugin holds the data model of the error-aggregator log plugin.
//
// The plugin receives a batch of log entries from a host log-processing
// system together with a set of named parameters, and answers with a count of
// ERROR entries per error category. The classifier lives in package
// aggregator; transports live in grpcx, httpx and api/logplugin/v1.
package logplugin

// Plugin identity reported by DescribePlugin / GetPluginInfo.
const (
	Name        = "error-aggregator"
	Version     = "1.0"
	Description = "Aggregates error entries by type and frequency"
)

// LevelError is the only severity level counted by the classifier.
// The comparison is exact and case-sensitive.
const LevelError = "ERROR"

// Recognized request parameters.
const (
	// ParamMinCount drops categories seen fewer times than its value.
	ParamMinCount = "min_count"
	// ParamTimeWindow is accepted but not applied to the statistics.
	ParamTimeWindow = "time_window"
)

// DefaultMinCount is used when ParamMinCount is absent.
const DefaultMinCount = 1

// Entry is one log record supplied by the host.
type Entry struct {
	ID        string
	Timestamp string
	Level     string
	Section   string
	Message   string
}

// PluginInfo is the static description of the plugin.
type PluginInfo struct {
	Name                string
	Version             string
	Description         string
	SupportedParameters []string
}

// Parameters maps parameter names to their raw string values.
type Parameters map[string]string

// Category is an error class assigned to an ERROR entry.
type Category string

// The closed set of categories.
const (
	CategoryTimeout    Category = "timeout_error"
	CategoryConnection Category = "connection_error"
	CategoryPermission Category = "permission_error"
	CategoryNotFound   Category = "not_found_error"
	CategoryOther      Category = "other_error"
)

// Categories lists every category in classification priority order,
// CategoryOther last.
var Categories = []Category{
	CategoryTimeout,
	CategoryConnection,
	CategoryPermission,
	CategoryNotFound,
	CategoryOther,
}

// String returns the category label.
func (c Category) String() string { return string(c) }

// Statistics maps a category to its occurrence count. Categories with no
// occurrences (or filtered out) are absent rather than zero.
type Statistics map[Category]int64

// Total sums all counts in s.
func (s Statistics) Total() int64 {
	var n int64
	for _, v := range s {
		n += v
	}
	return n
}
