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

package apis

import (
	"context"

	"dirpx.dev/logplugin"
)

// Plugin is the request handler a host invokes.
//
// Implementations must be safe for concurrent use and must not keep state
// between calls: every Process call is a function of its arguments only.
// Errors returned from Process should be *perror.Error so transports can
// resolve them into statuses; anything else is reported as internal.
type Plugin interface {
	// Describe returns the static plugin description.
	Describe() logplugin.PluginInfo

	// Process aggregates entries according to params.
	Process(ctx context.Context, entries []logplugin.Entry, params logplugin.Parameters) (logplugin.Statistics, error)
}
