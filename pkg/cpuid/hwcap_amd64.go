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

package cpuid

import (
	"encoding/binary"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
)

// See arch/x86/include/uapi/asm/hwcap2.h
const (
	// HWCAP2_RING3MWAIT means MONITOR/MWAIT are enabled in ring 3.
	HWCAP2_RING3MWAIT = 1 << 0

	// HWCAP2_FSGSBASE means the kernel has enabled CR4.FSGSBASE, so the
	// FS/GS base instructions execute without faulting in userspace.
	HWCAP2_FSGSBASE = 1 << 1
)

// Auxiliary vector tags. See include/uapi/linux/auxvec.h
const (
	_AT_HWCAP  = 16
	_AT_HWCAP2 = 26
)

// hwCap holds the HWCAP1/2 bit vectors from the ELF auxiliary vector.
type hwCap struct {
	hwCap1 uint64
	hwCap2 uint64
}

// hwCapFromAuxv decodes the hardware capability tags from a raw auxiliary
// vector, stored as 8-byte little-endian tag/value pairs.
func hwCapFromAuxv(auxv []byte) hwCap {
	var hw hwCap
	l := len(auxv) / 16
	for i := 0; i < l; i++ {
		tag := binary.LittleEndian.Uint64(auxv[i*16:])
		val := binary.LittleEndian.Uint64(auxv[i*16+8:])
		switch tag {
		case _AT_HWCAP:
			hw.hwCap1 = val
		case _AT_HWCAP2:
			hw.hwCap2 = val
		}
	}
	return hw
}

// readHWCap reads the auxiliary vector of the current process.
func readHWCap() hwCap {
	if runtime.GOOS != "linux" {
		// Don't try to read Linux-specific /proc files or warn about
		// them not existing.
		return hwCap{}
	}
	auxv, err := os.ReadFile("/proc/self/auxv")
	if err != nil {
		logrus.Warnf("Could not read /proc/self/auxv: %v", err)
		return hwCap{}
	}
	return hwCapFromAuxv(auxv)
}
