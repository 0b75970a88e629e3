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

package code

// Codes produced by the plugin. The set is deliberately small: the
// classifier is a pure function and only fails on bad input.
const (
	// Internal indicates an unexpected failure inside the plugin, including
	// recovered panics. The root cause is attached as the error cause.
	//
	// Maps to HTTP 500 / gRPC INTERNAL.
	Internal Code = "internal"

	// InvalidParameter indicates that a request parameter is present but
	// cannot be interpreted, e.g. a non-numeric or negative min_count.
	// Errors with this code carry the parameter name in the "field" detail.
	//
	// Maps to HTTP 400 / gRPC INVALID_ARGUMENT.
	InvalidParameter Code = "invalid_parameter"
)

// Codes derived from the request context.
const (
	// Canceled indicates the caller gave up before the request was handled.
	//
	// Maps to HTTP 408 / gRPC CANCELLED.
	Canceled Code = "canceled"

	// Timeout indicates the caller's deadline passed before the request was
	// handled.
	//
	// Maps to HTTP 504 / gRPC DEADLINE_EXCEEDED.
	Timeout Code = "timeout"
)

// All lists every code the plugin may return, in declaration order.
var All = []Code{Internal, InvalidParameter, Canceled, Timeout}
