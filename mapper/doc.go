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

// Package mapper resolves plugin error codes and reasons into HTTP and gRPC
// statuses.
//
// A Mapper resolves statuses in the following order:
//
//  1. per-Code longest-prefix match on the Reason;
//  2. per-Code default (library or configured);
//  3. global fallback (500 / codes.Internal).
//
// Prefix rules are segment-aware: reasons are "."-separated and "*" matches
// exactly one segment, so "params.*.range" matches "params.min_count.range"
// but "params.min" never matches "params.min_count".
//
//	m, err := mapper.New(
//	    mapper.WithHTTPDefault(code.Canceled, 499),
//	    mapper.WithGRPCPrefix(code.InvalidParameter, "params.*.range", codes.OutOfRange),
//	)
//
// A Mapper is immutable once built and safe for concurrent use.
package mapper
