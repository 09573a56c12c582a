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
	"runtime"
	"unsafe"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
	"ringzero.dev/ringzero/pkg/cpuid"
	"ringzero.dev/ringzero/pkg/instr"
)

// segbaseCmd implements subcommands.Command for the "segbase" command.
type segbaseCmd struct {
	write bool
}

// Name implements subcommands.Command.Name.
func (*segbaseCmd) Name() string {
	return "segbase"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*segbaseCmd) Synopsis() string {
	return "read the FS/GS segment bases and cross-check against the kernel"
}

// Usage implements subcommands.Command.Usage.
func (*segbaseCmd) Usage() string {
	return `segbase [-write]

Reads both segment bases with the RDFSBASE/RDGSBASE primitives and compares
them with what arch_prctl reports. With -write, also round-trips a sentinel
value through the GS base (the FS base carries Go's TLS pointer and is left
alone).

OPTIONS:
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (c *segbaseCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "write", false, "round-trip a sentinel value through the GS base")
}

// arch_prctl operation codes, from Linux arch/x86/include/uapi/asm/prctl.h.
// x/sys/unix exports SYS_ARCH_PRCTL but not the codes themselves.
const (
	_ARCH_GET_FS = 0x1003
	_ARCH_GET_GS = 0x1004
)

func archPrctl(code int, addr *uint64) error {
	_, _, errno := unix.RawSyscall(unix.SYS_ARCH_PRCTL, uintptr(code), uintptr(unsafe.Pointer(addr)), 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// Execute implements subcommands.Command.Execute.
func (c *segbaseCmd) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	if !cpuid.HostFeatureSet().UseFSGSBASE() {
		logrus.Errorf("FSGSBASE instructions are not enabled on this host")
		return subcommands.ExitFailure
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for _, seg := range []struct {
		tag  instr.Segment
		code int
	}{
		{instr.FS, _ARCH_GET_FS},
		{instr.GS, _ARCH_GET_GS},
	} {
		base := instr.ReadBase(seg.tag)
		var kernel uint64
		if err := archPrctl(seg.code, &kernel); err != nil {
			logrus.Errorf("arch_prctl(%v): %v", seg.tag, err)
			return subcommands.ExitFailure
		}
		match := "ok"
		if base != kernel {
			match = "MISMATCH"
		}
		fmt.Printf("%v base = %#-18x arch_prctl = %#-18x %s\n", seg.tag, base, kernel, match)
	}

	if c.write {
		const sentinel = 0x7000_0000_1000
		old := instr.ReadGSBase()
		instr.WriteGSBase(sentinel)
		got := instr.ReadGSBase()
		instr.WriteGSBase(old)
		if got != sentinel {
			logrus.Errorf("GS round-trip failed: wrote %#x, read %#x", uint64(sentinel), got)
			return subcommands.ExitFailure
		}
		fmt.Printf("GS round-trip: wrote %#x, read %#x, restored %#x\n", uint64(sentinel), got, old)
	}
	return subcommands.ExitSuccess
}
