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

package mapper

import (
	"net/http"

	"dirpx.dev/logplugin/code"
	"google.golang.org/grpc/codes"
)

// defaultHTTP holds the built-in HTTP statuses for plugin codes.
var defaultHTTP = map[code.Code]int{
	code.Internal:         http.StatusInternalServerError,
	code.InvalidParameter: http.StatusBadRequest,
	code.Timeout:          http.StatusGatewayTimeout,
	// 408 rather than the non-standard 499; override per deployment if needed.
	code.Canceled: http.StatusRequestTimeout,
}

// defaultGRPC holds the built-in gRPC codes for plugin codes.
var defaultGRPC = map[code.Code]codes.Code{
	code.Internal:         codes.Internal,
	code.InvalidParameter: codes.InvalidArgument,
	code.Timeout:          codes.DeadlineExceeded,
	code.Canceled:         codes.Canceled,
}
