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

package server

import (
	"context"

	"dirpx.dev/logplugin/adapter"
	logpluginv1 "dirpx.dev/logplugin/api/logplugin/v1"
	"dirpx.dev/logplugin/apis"
	"dirpx.dev/logplugin/internal/logging"
	"dirpx.dev/logplugin/internal/metrics"
)

var _ logpluginv1.LogPluginServer = (*Service)(nil)

// Service serves the LogPlugin RPCs from an apis.Plugin.
type Service struct {
	plugin apis.Plugin
	rec    metrics.Recorder
}

// NewService returns a Service backed by p. A nil rec disables metrics.
func NewService(p apis.Plugin, rec metrics.Recorder) *Service {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Service{plugin: p, rec: rec}
}

func (s *Service) GetPluginInfo(context.Context) (*logpluginv1.PluginInfo, error) {
	return adapter.Info(s.plugin.Describe()), nil
}

// Process runs the plugin over the request entries. Plugin errors are
// returned as they are; the error interceptor resolves them into statuses.
func (s *Service) Process(ctx context.Context, req *logpluginv1.PluginRequest) (*logpluginv1.PluginResponse, error) {
	s.rec.AddEntries(len(req.Entries))

	stats, err := s.plugin.Process(ctx, adapter.Entries(req.Entries), adapter.Parameters(req.Parameters))
	if err != nil {
		return nil, err
	}
	for cat, n := range stats {
		s.rec.AddCategory(cat.String(), n)
	}
	logging.FromContext(ctx).Debug("entries aggregated",
		logging.Categories(len(stats)),
		logging.Reported(stats.Total()),
	)
	return adapter.Response(stats), nil
}
