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

import "dirpx.dev/logplugin"

// Rule assigns Category to messages whose lowercased text contains Substring.
type Rule struct {
	Substring string
	Category  logplugin.Category
}

// DefaultRules is the built-in classification table in priority order.
// "Connection timeout" is a timeout_error because timeout is listed first.
var DefaultRules = []Rule{
	{Substring: "timeout", Category: logplugin.CategoryTimeout},
	{Substring: "connection", Category: logplugin.CategoryConnection},
	{Substring: "permission", Category: logplugin.CategoryPermission},
	{Substring: "not found", Category: logplugin.CategoryNotFound},
}

// DefaultFallback is assigned when no rule matches.
const DefaultFallback = logplugin.CategoryOther
