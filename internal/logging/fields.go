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

package logging

import "log/slog"

// Canonical log field names.
const (
	KeyMethod     = "method"
	KeyRequestID  = "request_id"
	KeyPeer       = "peer"
	KeyEntries    = "entries"
	KeyCategories = "categories"
	KeyReported   = "reported"
	KeyCode       = "code"
	KeyReason     = "reason"
	KeyDurationMS = "duration_ms"
	KeyAddr       = "addr"
	KeyError      = "error"
)

func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func RequestID(id string) slog.Attr   { return slog.String(KeyRequestID, id) }
func Peer(addr string) slog.Attr      { return slog.String(KeyPeer, addr) }
func Entries(n int) slog.Attr         { return slog.Int(KeyEntries, n) }
func Categories(n int) slog.Attr      { return slog.Int(KeyCategories, n) }
func Reported(n int64) slog.Attr      { return slog.Int64(KeyReported, n) }
func Code(c string) slog.Attr         { return slog.String(KeyCode, c) }
func Reason(r string) slog.Attr       { return slog.String(KeyReason, r) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
