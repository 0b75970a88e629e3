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

// Package logpluginv1 is the Go side of the logplugin.LogPlugin gRPC contract
// described in log_plugin.proto.
//
// The file descriptor is assembled at init from descriptorpb values and
// registered in protoregistry.GlobalFiles, so reflection, protojson and the
// gRPC proto codec all see the same schema a protoc build would produce.
// Messages travel as dynamicpb values and are exposed to Go callers through
// the plain structs in messages.go.
package logpluginv1

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// FileName is the registered path of the contract file.
const FileName = "logplugin/v1/log_plugin.proto"

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "logplugin.LogPlugin"

var (
	// File is the registered contract file descriptor.
	File protoreflect.FileDescriptor

	EmptyDescriptor          protoreflect.MessageDescriptor
	LogEntryDescriptor       protoreflect.MessageDescriptor
	PluginRequestDescriptor  protoreflect.MessageDescriptor
	PluginResponseDescriptor protoreflect.MessageDescriptor
	PluginInfoDescriptor     protoreflect.MessageDescriptor
)

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), new(protoregistry.Files))
	if err != nil {
		panic(fmt.Sprintf("logpluginv1: build descriptor: %v", err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("logpluginv1: register descriptor: %v", err))
	}
	File = fd

	msgs := fd.Messages()
	EmptyDescriptor = msgs.ByName("Empty")
	LogEntryDescriptor = msgs.ByName("LogEntryProto")
	PluginRequestDescriptor = msgs.ByName("PluginRequest")
	PluginResponseDescriptor = msgs.ByName("PluginResponse")
	PluginInfoDescriptor = msgs.ByName("PluginInfo")
	initFields()
}

type (
	fieldType  = descriptorpb.FieldDescriptorProto_Type
	fieldLabel = descriptorpb.FieldDescriptorProto_Label
)

const (
	tString   = descriptorpb.FieldDescriptorProto_TYPE_STRING
	tInt32    = descriptorpb.FieldDescriptorProto_TYPE_INT32
	tInt64    = descriptorpb.FieldDescriptorProto_TYPE_INT64
	tMessage  = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
	lOptional = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	lRepeated = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
)

func field(name string, num int32, typ fieldType, label fieldLabel, typeName string) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Type:   typ.Enum(),
		Label:  label.Enum(),
	}
	if typeName != "" {
		f.TypeName = proto.String(typeName)
	}
	return f
}

func mapEntry(name string, value fieldType) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String(name),
		Field: []*descriptorpb.FieldDescriptorProto{
			field("key", 1, tString, lOptional, ""),
			field("value", 2, value, lOptional, ""),
		},
		Options: &descriptorpb.MessageOptions{MapEntry: proto.Bool(true)},
	}
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(FileName),
		Package: proto.String("logplugin"),
		Syntax:  proto.String("proto3"),
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("dirpx.dev/logplugin/api/logplugin/v1;logpluginv1"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			{Name: proto.String("Empty")},
			{
				Name: proto.String("LogEntryProto"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("id", 1, tString, lOptional, ""),
					field("timestamp", 2, tString, lOptional, ""),
					field("level", 3, tString, lOptional, ""),
					field("section", 4, tString, lOptional, ""),
					field("message", 5, tString, lOptional, ""),
					field("line_number", 6, tInt32, lOptional, ""),
					field("log_file_id", 7, tString, lOptional, ""),
					field("json_body", 8, tString, lOptional, ""),
					field("tf_resource_type", 9, tString, lOptional, ""),
					field("tf_req_id", 10, tString, lOptional, ""),
					field("request_type", 11, tString, lOptional, ""),
				},
			},
			{
				Name: proto.String("PluginRequest"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("entries", 1, tMessage, lRepeated, ".logplugin.LogEntryProto"),
					field("parameters", 2, tMessage, lRepeated, ".logplugin.PluginRequest.ParametersEntry"),
				},
				NestedType: []*descriptorpb.DescriptorProto{mapEntry("ParametersEntry", tString)},
			},
			{
				Name: proto.String("PluginResponse"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("processed_entries", 1, tMessage, lRepeated, ".logplugin.LogEntryProto"),
					field("statistics", 2, tMessage, lRepeated, ".logplugin.PluginResponse.StatisticsEntry"),
					field("error_message", 3, tString, lOptional, ""),
				},
				NestedType: []*descriptorpb.DescriptorProto{mapEntry("StatisticsEntry", tInt64)},
			},
			{
				Name: proto.String("PluginInfo"),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("name", 1, tString, lOptional, ""),
					field("version", 2, tString, lOptional, ""),
					field("description", 3, tString, lOptional, ""),
					field("supported_parameters", 4, tString, lRepeated, ""),
				},
			},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("LogPlugin"),
			Method: []*descriptorpb.MethodDescriptorProto{
				{
					Name:       proto.String("GetPluginInfo"),
					InputType:  proto.String(".logplugin.Empty"),
					OutputType: proto.String(".logplugin.PluginInfo"),
				},
				{
					Name:       proto.String("Process"),
					InputType:  proto.String(".logplugin.PluginRequest"),
					OutputType: proto.String(".logplugin.PluginResponse"),
				},
			},
		}},
	}
}
