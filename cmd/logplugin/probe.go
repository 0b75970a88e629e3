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

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"

	logpluginv1 "dirpx.dev/logplugin/api/logplugin/v1"
	"dirpx.dev/logplugin/grpcx"
)

// Deadlines a host applies to each call.
const (
	InfoTimeout    = 10 * time.Second
	ProcessTimeout = 30 * time.Second
)

var printer = protojson.MarshalOptions{Multiline: true, UseProtoNames: true, EmitUnpopulated: true}

// InfoCmd performs the host's connection test: one GetPluginInfo call.
type InfoCmd struct {
	Addr string `short:"a" help:"Plugin address." default:"localhost:50051" env:"LOGPLUGIN_ADDR"`
}

func (c *InfoCmd) Run(_ *CLI, _ *Globals) error {
	conn, err := dial(c.Addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), InfoTimeout)
	defer cancel()
	info, err := logpluginv1.NewClient(conn).GetPluginInfo(ctx)
	if err != nil {
		return describe(err)
	}
	return printMessage(os.Stdout, info.Message())
}

// ProcessCmd sends one PluginRequest read as protojson from a file or stdin.
type ProcessCmd struct {
	Addr  string            `short:"a" help:"Plugin address." default:"localhost:50051" env:"LOGPLUGIN_ADDR"`
	File  string            `short:"f" help:"PluginRequest JSON file; - reads stdin." default:"-"`
	Param map[string]string `short:"p" help:"Request parameter as key=value; overrides the file."`
}

func (c *ProcessCmd) Run(_ *CLI, _ *Globals) error {
	req, err := c.request()
	if err != nil {
		return err
	}

	conn, err := dial(c.Addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), ProcessTimeout)
	defer cancel()
	resp, err := logpluginv1.NewClient(conn).Process(ctx, req)
	if err != nil {
		return describe(err)
	}
	return printMessage(os.Stdout, resp.Message())
}

func (c *ProcessCmd) request() (*logpluginv1.PluginRequest, error) {
	var (
		data []byte
		err  error
	)
	if c.File == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(c.File)
	}
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}

	msg := dynamicpb.NewMessage(logpluginv1.PluginRequestDescriptor)
	if len(bytes.TrimSpace(data)) > 0 {
		if err := protojson.Unmarshal(data, msg); err != nil {
			return nil, fmt.Errorf("parse request: %w", err)
		}
	}
	req, err := logpluginv1.PluginRequestFromMessage(msg)
	if err != nil {
		return nil, err
	}
	if len(c.Param) > 0 && req.Parameters == nil {
		req.Parameters = make(map[string]string, len(c.Param))
	}
	for k, v := range c.Param {
		req.Parameters[k] = v
	}
	return req, nil
}

func dial(addr string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return conn, nil
}

// describe appends the field violation, if any, to a failed call's error.
func describe(err error) error {
	if br, ok := grpcx.ExtractBadRequest(err); ok && len(br.GetFieldViolations()) > 0 {
		return fmt.Errorf("%w (field %s)", err, br.GetFieldViolations()[0].GetField())
	}
	return err
}

func printMessage(w io.Writer, m proto.Message) error {
	b, err := printer.Marshal(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
