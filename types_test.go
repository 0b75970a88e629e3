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

package logplugin

import "testing"

func TestStatistics_Total(t *testing.T) {
	s := Statistics{CategoryTimeout: 2, CategoryOther: 3}
	if s.Total() != 5 {
		t.Fatalf("Total() = %d, want 5", s.Total())
	}
	if (Statistics{}).Total() != 0 {
		t.Fatalf("empty Total() must be 0")
	}
}

func TestCategories_OtherIsLast(t *testing.T) {
	if Categories[len(Categories)-1] != CategoryOther {
		t.Fatalf("CategoryOther must be the last category")
	}
}
