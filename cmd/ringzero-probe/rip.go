// Copyright 2026 The ringzero Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build linux && amd64
// +build linux,amd64

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"ringzero.dev/ringzero/pkg/instr"
)

// ripCmd implements subcommands.Command for the "rip" command.
type ripCmd struct{}

// Name implements subcommands.Command.Name.
func (*ripCmd) Name() string {
	return "rip"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*ripCmd) Synopsis() string {
	return "sample the instruction pointer twice"
}

// Usage implements subcommands.Command.Usage.
func (*ripCmd) Usage() string {
	return `rip

Samples the approximate instruction pointer at two sequential call sites and
prints both values; the second is a few instructions past the first.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*ripCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*ripCmd) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	first := instr.ReadRIP()
	second := instr.ReadRIP()
	fmt.Printf("rip[0] = %#x\n", first)
	fmt.Printf("rip[1] = %#x (+%d bytes)\n", second, second-first)
	return subcommands.ExitSuccess
}
