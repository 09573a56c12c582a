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

//go:build amd64
// +build amd64

package instr

import (
	"runtime"
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"
	"ringzero.dev/ringzero/pkg/cpuid"
)

// Hlt is privileged and cannot run at CPL3; its contract is exercised by
// ring-0 integration fixtures, not here.

const nopIterations = 1000

func TestNopLoopRuns(t *testing.T) {
	// The loop body has no effect other than Nop and the counter; the
	// opaque backend call keeps the loop intact, so the counter must
	// observe every iteration.
	count := 0
	for i := 0; i < nopIterations; i++ {
		Nop()
		count++
	}
	if count != nopIterations {
		t.Errorf("loop ran %d times, want %d", count, nopIterations)
	}
}

func TestReadRIPMonotonic(t *testing.T) {
	first := ReadRIP()
	second := ReadRIP()
	if first == 0 || second == 0 {
		t.Fatalf("ReadRIP returned zero: first=%#x second=%#x", first, second)
	}
	if second <= first {
		t.Errorf("sequential ReadRIP values not increasing: first=%#x second=%#x", first, second)
	}
	// Both samples come from this function; they cannot be far apart.
	if second-first > 4096 {
		t.Errorf("sequential ReadRIP values implausibly far apart: first=%#x second=%#x", first, second)
	}
}

// arch_prctl operation code, from Linux arch/x86/include/uapi/asm/prctl.h.
// x/sys/unix exports SYS_ARCH_PRCTL but not the codes themselves.
const _ARCH_GET_FS = 0x1003

func archPrctl(code int, addr *uint64) error {
	_, _, errno := unix.RawSyscall(unix.SYS_ARCH_PRCTL, uintptr(code), uintptr(unsafe.Pointer(addr)), 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func TestReadFSBaseMatchesKernel(t *testing.T) {
	if !cpuid.HostFeatureSet().UseFSGSBASE() {
		t.Skipf("FSGSBASE instructions not enabled on this host")
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var kernel uint64
	if err := archPrctl(_ARCH_GET_FS, &kernel); err != nil {
		t.Fatalf("arch_prctl(ARCH_GET_FS): %v", err)
	}
	if got := ReadFSBase(); got != kernel {
		t.Errorf("ReadFSBase() = %#x, arch_prctl reports %#x", got, kernel)
	}
	if got := ReadBase(FS); got != kernel {
		t.Errorf("ReadBase(FS) = %#x, arch_prctl reports %#x", got, kernel)
	}
}

func TestGSBaseRoundTrip(t *testing.T) {
	if !cpuid.HostFeatureSet().UseFSGSBASE() {
		t.Skipf("FSGSBASE instructions not enabled on this host")
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// The Go runtime does not use the GS base on linux/amd64, so it can be
	// borrowed for the duration of the test as long as it is restored.
	old := ReadGSBase()
	defer WriteGSBase(old)

	const val = 0x7000_0000_1000 // Arbitrary canonical address.
	WriteGSBase(val)
	if got := ReadGSBase(); got != val {
		t.Errorf("ReadGSBase() = %#x after WriteGSBase(%#x)", got, val)
	}

	WriteBase(GS, val+0x1000)
	if got := ReadBase(GS); got != val+0x1000 {
		t.Errorf("ReadBase(GS) = %#x after WriteBase(GS, %#x)", got, val+0x1000)
	}
}

func TestBaseBadSegmentPanics(t *testing.T) {
	for _, f := range []func(){
		func() { WriteBase(Segment(42), 0) },
		func() { ReadBase(Segment(42)) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("no panic for invalid segment tag")
				}
			}()
			f()
		}()
	}
}

func TestSegmentString(t *testing.T) {
	for _, tc := range []struct {
		seg  Segment
		want string
	}{
		{FS, "FS"},
		{GS, "GS"},
		{Segment(7), "Segment(7)"},
	} {
		if got := tc.seg.String(); got != tc.want {
			t.Errorf("Segment(%d).String() = %q, want %q", uint8(tc.seg), got, tc.want)
		}
	}
}
