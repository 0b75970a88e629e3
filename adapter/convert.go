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

// Package adapter converts between the wire messages of api/logplugin/v1 and
// the plugin's domain types.
package adapter

import (
	"dirpx.dev/logplugin"
	logpluginv1 "dirpx.dev/logplugin/api/logplugin/v1"
)

// Entries converts wire entries into domain entries. Host-specific fields the
// classifier does not use (line number, Terraform metadata, raw JSON) are
// dropped.
func Entries(in []logpluginv1.LogEntry) []logplugin.Entry {
	if len(in) == 0 {
		return nil
	}
	out := make([]logplugin.Entry, len(in))
	for i, e := range in {
		out[i] = logplugin.Entry{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			Level:     e.Level,
			Section:   e.Section,
			Message:   e.Message,
		}
	}
	return out
}

// Parameters copies the wire parameter map. A nil map stays nil.
func Parameters(in map[string]string) logplugin.Parameters {
	if in == nil {
		return nil
	}
	out := make(logplugin.Parameters, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Info converts the domain description into its wire form.
func Info(in logplugin.PluginInfo) *logpluginv1.PluginInfo {
	return &logpluginv1.PluginInfo{
		Name:                in.Name,
		Version:             in.Version,
		Description:         in.Description,
		SupportedParameters: append([]string(nil), in.SupportedParameters...),
	}
}

// Response wraps statistics in a wire response. The map is always non-nil so
// an empty result encodes as an empty statistics map.
func Response(stats logplugin.Statistics) *logpluginv1.PluginResponse {
	out := make(map[string]int64, len(stats))
	for cat, n := range stats {
		out[cat.String()] = n
	}
	return &logpluginv1.PluginResponse{Statistics: out}
}
