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

//go:build amd64 && inlineasm
// +build amd64,inlineasm

package instr

// The inline emission backend. Every primitive is a C static inline carrying
// __asm__ __volatile__ with a "memory" clobber, so the C compiler places the
// instruction at the call site behind a full compiler barrier. This backend
// requires cgo; building with the inlineasm tag and cgo disabled fails to
// compile because nothing else defines these symbols.

/*
static inline void ringzero_hlt(void) {
	__asm__ __volatile__("hlt" ::: "memory");
}

static inline void ringzero_nop(void) {
	__asm__ __volatile__("nop" ::: "memory");
}

static inline void ringzero_bochs_breakpoint(void) {
	__asm__ __volatile__("xchgw %bx, %bx" ::: "memory");
}

static inline void ringzero_wrfsbase(unsigned long long val) {
	__asm__ __volatile__("wrfsbase %0" :: "r"(val) : "memory");
}

static inline unsigned long long ringzero_rdfsbase(void) {
	unsigned long long val;
	__asm__ __volatile__("rdfsbase %0" : "=r"(val) :: "memory");
	return val;
}

static inline void ringzero_wrgsbase(unsigned long long val) {
	__asm__ __volatile__("wrgsbase %0" :: "r"(val) : "memory");
}

static inline unsigned long long ringzero_rdgsbase(void) {
	unsigned long long val;
	__asm__ __volatile__("rdgsbase %0" : "=r"(val) :: "memory");
	return val;
}
*/
import "C"

func hlt() {
	C.ringzero_hlt()
}

func nop() {
	C.ringzero_nop()
}

func wrfsbase(val uint64) {
	C.ringzero_wrfsbase(C.ulonglong(val))
}

func rdfsbase() uint64 {
	return uint64(C.ringzero_rdfsbase())
}

func wrgsbase(val uint64) {
	C.ringzero_wrgsbase(C.ulonglong(val))
}

func rdgsbase() uint64 {
	return uint64(C.ringzero_rdgsbase())
}

// BochsBreakpoint executes the magic breakpoint sequence (xchg bx, bx)
// recognized by the Bochs emulator when its magic_break option is enabled.
// On real hardware the sequence is a harmless register exchange.
//
// Only the inline emission backend provides this operation.
func BochsBreakpoint() {
	C.ringzero_bochs_breakpoint()
}
