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
	"fmt"
)

// Segment names one of the two software-usable segment base registers.
type Segment uint8

const (
	// FS is the FS segment base register.
	FS Segment = iota

	// GS is the GS segment base register.
	GS
)

// String implements fmt.Stringer.String.
func (s Segment) String() string {
	switch s {
	case FS:
		return "FS"
	case GS:
		return "GS"
	default:
		return fmt.Sprintf("Segment(%d)", uint8(s))
	}
}

// Hlt suspends the calling processor until the next interrupt arrives.
//
// Any delivered interrupt resumes execution, not just the one the caller is
// waiting for. Idle loops built on Hlt must re-check their wake condition
// after every return. HLT is privileged; executing it at CPL3 raises #GP,
// which is a platform concern outside this package.
func Hlt() {
	hlt()
}

// Nop executes a single NOP instruction.
//
// The instruction has no architectural effect; its value is that the backend
// call is opaque to the compiler, so a spin loop whose body contains Nop
// cannot be deleted even when the loop has no other observable effect.
func Nop() {
	nop()
}

// WriteFSBase writes the FS segment base address.
//
// Precondition: CR4.FSGSBASE is set, otherwise WRFSBASE raises #UD. The
// caller must also ensure that nothing still relies on the old base; the FS
// base commonly carries the thread local storage pointer. Neither condition
// is checked here.
func WriteFSBase(val uint64) {
	wrfsbase(val)
}

// ReadFSBase returns the FS segment base address.
//
// Precondition: CR4.FSGSBASE is set, otherwise RDFSBASE raises #UD.
func ReadFSBase() uint64 {
	return rdfsbase()
}

// WriteGSBase writes the GS segment base address.
//
// Precondition: CR4.FSGSBASE is set, otherwise WRGSBASE raises #UD. The
// caller must also ensure that nothing still relies on the old base.
func WriteGSBase(val uint64) {
	wrgsbase(val)
}

// ReadGSBase returns the GS segment base address.
//
// Precondition: CR4.FSGSBASE is set, otherwise RDGSBASE raises #UD.
func ReadGSBase() uint64 {
	return rdgsbase()
}

// WriteBase writes the base address of the given segment register. It
// panics if seg is not FS or GS.
//
// The preconditions of WriteFSBase and WriteGSBase apply.
func WriteBase(seg Segment, val uint64) {
	switch seg {
	case FS:
		wrfsbase(val)
	case GS:
		wrgsbase(val)
	default:
		panic(fmt.Sprintf("invalid segment %v", seg))
	}
}

// ReadBase returns the base address of the given segment register. It
// panics if seg is not FS or GS.
//
// The preconditions of ReadFSBase and ReadGSBase apply.
func ReadBase(seg Segment) uint64 {
	switch seg {
	case FS:
		return rdfsbase()
	case GS:
		return rdgsbase()
	default:
		panic(fmt.Sprintf("invalid segment %v", seg))
	}
}
