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

import (
	"errors"
	"strconv"
	"strings"

	"dirpx.dev/logplugin"
	"dirpx.dev/logplugin/code"
	"dirpx.dev/logplugin/perror"
	"dirpx.dev/logplugin/reason"
)

// Reasons attached to InvalidParameter errors.
var (
	ReasonMinCountSyntax = reason.MustParse("params.min_count.syntax")
	ReasonMinCountRange  = reason.MustParse("params.min_count.range")
)

// ParseMinCount reads ParamMinCount from params.
//
// An absent key yields DefaultMinCount. A present value must be a base-10,
// non-negative integer (surrounding spaces are ignored); anything else is an
// InvalidParameter error naming the parameter and the raw value.
func ParseMinCount(params logplugin.Parameters) (int64, error) {
	raw, ok := params[logplugin.ParamMinCount]
	if !ok {
		return logplugin.DefaultMinCount, nil
	}

	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, invalidMinCount(raw, ReasonMinCountRange, "min_count is out of range", err)
		}
		return 0, invalidMinCount(raw, ReasonMinCountSyntax, "min_count must be an integer", err)
	}
	if n < 0 {
		return 0, invalidMinCount(raw, ReasonMinCountRange, "min_count must not be negative", nil)
	}
	return n, nil
}

func invalidMinCount(raw string, r reason.Reason, msg string, cause error) *perror.Error {
	return perror.E(code.InvalidParameter, msg,
		perror.WithReasonOption(r),
		perror.WithDetailOption(perror.DetailField, logplugin.ParamMinCount),
		perror.WithDetailOption(perror.DetailValue, raw),
		perror.WithCauseOption(cause),
	)
}
