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

// Package grpcx holds the gRPC server plumbing of the plugin: the interceptor
// that turns *perror.Error values into rich gRPC statuses, plus recovery,
// logging and metrics interceptors.
package grpcx

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/protoadapt"

	"dirpx.dev/logplugin/apis"
	"dirpx.dev/logplugin/code"
	"dirpx.dev/logplugin/perror"
)

// Domain is the google.rpc.ErrorInfo domain of errors raised by the plugin.
const Domain = "logplugin.dirpx.dev"

// UnaryServerInterceptor maps *perror.Error results into gRPC statuses using m.
//
// The status carries a google.rpc.ErrorInfo detail (reason = upper-cased code,
// metadata = error reason and details) and, for invalid_parameter errors that
// name a field, a google.rpc.BadRequest field violation. Other errors are
// returned unchanged.
func UnaryServerInterceptor(m apis.Mapper) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		if _, ok := perror.As(err); !ok {
			return nil, err
		}
		return nil, Status(m, err).Err()
	}
}

// Status converts err into a gRPC status. *perror.Error values are resolved
// through m and decorated with details; gRPC status errors are returned as
// they are; anything else becomes codes.Unknown.
func Status(m apis.Mapper, err error) *gstatus.Status {
	pe, ok := perror.As(err)
	if !ok {
		return gstatus.Convert(err)
	}

	st := m.Status(pe.Code, pe.Reason)
	base := gstatus.New(st.GRPC, pe.Message)

	details := []protoadapt.MessageV1{errorInfo(pe)}
	if pe.Code == code.InvalidParameter && pe.Field() != "" {
		details = append(details, &errdetails.BadRequest{
			FieldViolations: []*errdetails.BadRequest_FieldViolation{{
				Field:       pe.Field(),
				Description: pe.Message,
			}},
		})
	}

	// If attaching details fails, the bare status still carries code and message.
	if with, err := base.WithDetails(details...); err == nil {
		return with
	}
	return base
}

func errorInfo(pe *perror.Error) *errdetails.ErrorInfo {
	md := make(map[string]string, len(pe.Details)+1)
	if pe.Reason != "" {
		md["reason"] = pe.Reason.String()
	}
	for k, v := range pe.Details {
		md[k] = fmt.Sprint(v)
	}
	return &errdetails.ErrorInfo{
		Reason:   strings.ToUpper(pe.Code.String()),
		Domain:   Domain,
		Metadata: md,
	}
}

// ExtractErrorInfo pulls the google.rpc.ErrorInfo detail out of a gRPC error.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	return extract[*errdetails.ErrorInfo](err)
}

// ExtractBadRequest pulls the google.rpc.BadRequest detail out of a gRPC error.
func ExtractBadRequest(err error) (*errdetails.BadRequest, bool) {
	return extract[*errdetails.BadRequest](err)
}

func extract[T any](err error) (T, bool) {
	var zero T
	if err == nil {
		return zero, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return zero, false
	}
	for _, d := range st.Details() {
		if v, ok := d.(T); ok {
			return v, true
		}
	}
	return zero, false
}
