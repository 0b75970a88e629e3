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
	"fmt"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// LogEntry mirrors logplugin.LogEntryProto.
type LogEntry struct {
	ID             string
	Timestamp      string
	Level          string
	Section        string
	Message        string
	LineNumber     int32
	LogFileID      string
	JSONBody       string
	TfResourceType string
	TfReqID        string
	RequestType    string
}

// PluginRequest mirrors logplugin.PluginRequest.
type PluginRequest struct {
	Entries    []LogEntry
	Parameters map[string]string
}

// PluginResponse mirrors logplugin.PluginResponse.
type PluginResponse struct {
	ProcessedEntries []LogEntry
	Statistics       map[string]int64
	ErrorMessage     string
}

// PluginInfo mirrors logplugin.PluginInfo.
type PluginInfo struct {
	Name                string
	Version             string
	Description         string
	SupportedParameters []string
}

var entryID, entryTimestamp, entryLevel, entrySection, entryMessage protoreflect.FieldDescriptor
var entryLineNumber, entryLogFileID, entryJSONBody protoreflect.FieldDescriptor
var entryTfResourceType, entryTfReqID, entryRequestType protoreflect.FieldDescriptor
var requestEntries, requestParameters protoreflect.FieldDescriptor
var responseProcessed, responseStatistics, responseErrorMessage protoreflect.FieldDescriptor
var infoName, infoVersion, infoDescription, infoSupportedParameters protoreflect.FieldDescriptor

func initFields() {
	f := LogEntryDescriptor.Fields()
	entryID = f.ByName("id")
	entryTimestamp = f.ByName("timestamp")
	entryLevel = f.ByName("level")
	entrySection = f.ByName("section")
	entryMessage = f.ByName("message")
	entryLineNumber = f.ByName("line_number")
	entryLogFileID = f.ByName("log_file_id")
	entryJSONBody = f.ByName("json_body")
	entryTfResourceType = f.ByName("tf_resource_type")
	entryTfReqID = f.ByName("tf_req_id")
	entryRequestType = f.ByName("request_type")

	f = PluginRequestDescriptor.Fields()
	requestEntries = f.ByName("entries")
	requestParameters = f.ByName("parameters")

	f = PluginResponseDescriptor.Fields()
	responseProcessed = f.ByName("processed_entries")
	responseStatistics = f.ByName("statistics")
	responseErrorMessage = f.ByName("error_message")

	f = PluginInfoDescriptor.Fields()
	infoName = f.ByName("name")
	infoVersion = f.ByName("version")
	infoDescription = f.ByName("description")
	infoSupportedParameters = f.ByName("supported_parameters")
}

// NewEmpty returns an empty logplugin.Empty message.
func NewEmpty() *dynamicpb.Message {
	return dynamicpb.NewMessage(EmptyDescriptor)
}

// Message encodes r as a logplugin.PluginRequest.
func (r *PluginRequest) Message() *dynamicpb.Message {
	m := dynamicpb.NewMessage(PluginRequestDescriptor)
	appendEntries(m, requestEntries, r.Entries)
	if len(r.Parameters) > 0 {
		mp := m.Mutable(requestParameters).Map()
		for k, v := range r.Parameters {
			mp.Set(protoreflect.ValueOfString(k).MapKey(), protoreflect.ValueOfString(v))
		}
	}
	return m
}

// PluginRequestFromMessage decodes a logplugin.PluginRequest.
func PluginRequestFromMessage(m protoreflect.Message) (*PluginRequest, error) {
	if err := expect(m, PluginRequestDescriptor); err != nil {
		return nil, err
	}
	r := &PluginRequest{Entries: readEntries(m, requestEntries)}
	if mp := m.Get(requestParameters).Map(); mp.Len() > 0 {
		r.Parameters = make(map[string]string, mp.Len())
		mp.Range(func(k protoreflect.MapKey, v protoreflect.Value) bool {
			r.Parameters[k.String()] = v.String()
			return true
		})
	}
	return r, nil
}

// Message encodes r as a logplugin.PluginResponse.
func (r *PluginResponse) Message() *dynamicpb.Message {
	m := dynamicpb.NewMessage(PluginResponseDescriptor)
	appendEntries(m, responseProcessed, r.ProcessedEntries)
	if len(r.Statistics) > 0 {
		mp := m.Mutable(responseStatistics).Map()
		for k, v := range r.Statistics {
			mp.Set(protoreflect.ValueOfString(k).MapKey(), protoreflect.ValueOfInt64(v))
		}
	}
	setString(m, responseErrorMessage, r.ErrorMessage)
	return m
}

// PluginResponseFromMessage decodes a logplugin.PluginResponse.
// Statistics is never nil on success.
func PluginResponseFromMessage(m protoreflect.Message) (*PluginResponse, error) {
	if err := expect(m, PluginResponseDescriptor); err != nil {
		return nil, err
	}
	mp := m.Get(responseStatistics).Map()
	r := &PluginResponse{
		ProcessedEntries: readEntries(m, responseProcessed),
		Statistics:       make(map[string]int64, mp.Len()),
		ErrorMessage:     m.Get(responseErrorMessage).String(),
	}
	mp.Range(func(k protoreflect.MapKey, v protoreflect.Value) bool {
		r.Statistics[k.String()] = v.Int()
		return true
	})
	return r, nil
}

// Message encodes i as a logplugin.PluginInfo.
func (i *PluginInfo) Message() *dynamicpb.Message {
	m := dynamicpb.NewMessage(PluginInfoDescriptor)
	setString(m, infoName, i.Name)
	setString(m, infoVersion, i.Version)
	setString(m, infoDescription, i.Description)
	if len(i.SupportedParameters) > 0 {
		l := m.Mutable(infoSupportedParameters).List()
		for _, p := range i.SupportedParameters {
			l.Append(protoreflect.ValueOfString(p))
		}
	}
	return m
}

// PluginInfoFromMessage decodes a logplugin.PluginInfo.
func PluginInfoFromMessage(m protoreflect.Message) (*PluginInfo, error) {
	if err := expect(m, PluginInfoDescriptor); err != nil {
		return nil, err
	}
	i := &PluginInfo{
		Name:        m.Get(infoName).String(),
		Version:     m.Get(infoVersion).String(),
		Description: m.Get(infoDescription).String(),
	}
	l := m.Get(infoSupportedParameters).List()
	for n := 0; n < l.Len(); n++ {
		i.SupportedParameters = append(i.SupportedParameters, l.Get(n).String())
	}
	return i, nil
}

func (e *LogEntry) fill(m protoreflect.Message) {
	setString(m, entryID, e.ID)
	setString(m, entryTimestamp, e.Timestamp)
	setString(m, entryLevel, e.Level)
	setString(m, entrySection, e.Section)
	setString(m, entryMessage, e.Message)
	if e.LineNumber != 0 {
		m.Set(entryLineNumber, protoreflect.ValueOfInt32(e.LineNumber))
	}
	setString(m, entryLogFileID, e.LogFileID)
	setString(m, entryJSONBody, e.JSONBody)
	setString(m, entryTfResourceType, e.TfResourceType)
	setString(m, entryTfReqID, e.TfReqID)
	setString(m, entryRequestType, e.RequestType)
}

func entryFrom(m protoreflect.Message) LogEntry {
	return LogEntry{
		ID:             m.Get(entryID).String(),
		Timestamp:      m.Get(entryTimestamp).String(),
		Level:          m.Get(entryLevel).String(),
		Section:        m.Get(entrySection).String(),
		Message:        m.Get(entryMessage).String(),
		LineNumber:     int32(m.Get(entryLineNumber).Int()),
		LogFileID:      m.Get(entryLogFileID).String(),
		JSONBody:       m.Get(entryJSONBody).String(),
		TfResourceType: m.Get(entryTfResourceType).String(),
		TfReqID:        m.Get(entryTfReqID).String(),
		RequestType:    m.Get(entryRequestType).String(),
	}
}

func appendEntries(m protoreflect.Message, fd protoreflect.FieldDescriptor, entries []LogEntry) {
	if len(entries) == 0 {
		return
	}
	l := m.Mutable(fd).List()
	for i := range entries {
		v := l.NewElement()
		entries[i].fill(v.Message())
		l.Append(v)
	}
}

func readEntries(m protoreflect.Message, fd protoreflect.FieldDescriptor) []LogEntry {
	l := m.Get(fd).List()
	if l.Len() == 0 {
		return nil
	}
	out := make([]LogEntry, l.Len())
	for i := range out {
		out[i] = entryFrom(l.Get(i).Message())
	}
	return out
}

func setString(m protoreflect.Message, fd protoreflect.FieldDescriptor, s string) {
	if s != "" {
		m.Set(fd, protoreflect.ValueOfString(s))
	}
}

func expect(m protoreflect.Message, md protoreflect.MessageDescriptor) error {
	if got := m.Descriptor().FullName(); got != md.FullName() {
		return fmt.Errorf("logpluginv1: got message %s, want %s", got, md.FullName())
	}
	return nil
}
