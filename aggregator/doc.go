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

// Package aggregator implements the error-aggregator classifier: it counts
// ERROR entries per category and filters the counts by a minimum threshold.
//
// Classification is driven by an ordered table of (substring, category)
// rules evaluated against the lowercased message; the first matching rule
// wins and unmatched messages fall into the fallback category. The table is
// plain data, so tests and callers can inspect or replace it without touching
// the counting logic.
//
// A Classifier holds only its immutable rule table and is safe for concurrent
// use.
package aggregator
