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
	"ringzero.dev/ringzero/pkg/cpuid"
)

// featuresCmd implements subcommands.Command for the "features" command.
type featuresCmd struct {
	flags bool
}

// Name implements subcommands.Command.Name.
func (*featuresCmd) Name() string {
	return "features"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*featuresCmd) Synopsis() string {
	return "print CPU identification and feature availability"
}

// Usage implements subcommands.Command.Usage.
func (*featuresCmd) Usage() string {
	return `features [-flags]

Prints the processor vendor, signature and the availability of the features
the instruction primitives depend on.

OPTIONS:
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (c *featuresCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.flags, "flags", false, "also print the full feature flag list")
}

// Execute implements subcommands.Command.Execute.
func (c *featuresCmd) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	fs := cpuid.HostFeatureSet()
	vendor := fs.VendorID()
	fmt.Printf("vendor      : %s\n", string(vendor[:]))
	if brand := fs.BrandString(); brand != "" {
		fmt.Printf("model name  : %s\n", brand)
	}
	fmt.Printf("signature   : family %d model %d stepping %d\n", fs.Family(), fs.Model(), fs.SteppingID())
	fmt.Printf("fsgsbase    : cpu=%t kernel+cpu=%t\n", fs.HasFeature(cpuid.X86FeatureFSGSBase), fs.UseFSGSBASE())
	if c.flags {
		fmt.Printf("flags       : %s\n", fs.FlagString())
	}
	return subcommands.ExitSuccess
}
