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

package logpluginv1

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Full method names of the LogPlugin service.
const (
	LogPlugin_GetPluginInfo_FullMethodName = "/" + ServiceName + "/GetPluginInfo"
	LogPlugin_Process_FullMethodName       = "/" + ServiceName + "/Process"
)

// LogPluginServer is the server API for the LogPlugin service.
type LogPluginServer interface {
	GetPluginInfo(ctx context.Context) (*PluginInfo, error)
	Process(ctx context.Context, req *PluginRequest) (*PluginResponse, error)
}

// RegisterLogPluginServer registers srv on s.
func RegisterLogPluginServer(s grpc.ServiceRegistrar, srv LogPluginServer) {
	s.RegisterService(&LogPlugin_ServiceDesc, srv)
}

// LogPlugin_ServiceDesc is the grpc.ServiceDesc for the LogPlugin service.
//
// Unary interceptors observe the decoded Go request (*PluginRequest, or the
// Empty message for GetPluginInfo) and the encoded *dynamicpb.Message response.
var LogPlugin_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LogPluginServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetPluginInfo", Handler: getPluginInfoHandler},
		{MethodName: "Process", Handler: processHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: FileName,
}

func getPluginInfoHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := NewEmpty()
	if err := dec(in); err != nil {
		return nil, err
	}
	handler := func(ctx context.Context, _ any) (any, error) {
		info, err := srv.(LogPluginServer).GetPluginInfo(ctx)
		if err != nil {
			return nil, err
		}
		return info.Message(), nil
	}
	if interceptor == nil {
		return handler(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LogPlugin_GetPluginInfo_FullMethodName}
	return interceptor(ctx, in, info, handler)
}

func processHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := dynamicpb.NewMessage(PluginRequestDescriptor)
	if err := dec(in); err != nil {
		return nil, err
	}
	req, err := PluginRequestFromMessage(in)
	if err != nil {
		return nil, err
	}
	handler := func(ctx context.Context, req any) (any, error) {
		resp, err := srv.(LogPluginServer).Process(ctx, req.(*PluginRequest))
		if err != nil {
			return nil, err
		}
		return resp.Message(), nil
	}
	if interceptor == nil {
		return handler(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LogPlugin_Process_FullMethodName}
	return interceptor(ctx, req, info, handler)
}

// Client is the host-side client of the LogPlugin service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// GetPluginInfo calls LogPlugin.GetPluginInfo.
func (c *Client) GetPluginInfo(ctx context.Context, opts ...grpc.CallOption) (*PluginInfo, error) {
	out := dynamicpb.NewMessage(PluginInfoDescriptor)
	if err := c.cc.Invoke(ctx, LogPlugin_GetPluginInfo_FullMethodName, NewEmpty(), out, opts...); err != nil {
		return nil, err
	}
	return PluginInfoFromMessage(out)
}

// Process calls LogPlugin.Process.
func (c *Client) Process(ctx context.Context, req *PluginRequest, opts ...grpc.CallOption) (*PluginResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("logpluginv1: nil request")
	}
	out := dynamicpb.NewMessage(PluginResponseDescriptor)
	if err := c.cc.Invoke(ctx, LogPlugin_Process_FullMethodName, req.Message(), out, opts...); err != nil {
		return nil, err
	}
	return PluginResponseFromMessage(out)
}
