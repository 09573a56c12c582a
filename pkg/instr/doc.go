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

// Package instr maps a small set of x86-64 instructions onto plain function
// calls: Hlt, Nop, ReadRIP, BochsBreakpoint and the FS/GS segment base
// accessors. Every operation executes exactly one instruction on the calling
// processor and returns; there is no interpretation, emulation or decoding.
//
// Two mutually exclusive backends provide the instruction bodies, selected
// once per build:
//
//   - The default backend implements each primitive as a separately assembled
//     routine (stub_amd64.s) whose body is the single target instruction. The
//     Go compiler treats a call into an assembly TEXT symbol as opaque: it
//     cannot delete it, hoist it, or reorder memory operations around it, so
//     the call boundary itself supplies the ordering guarantee these
//     operations need.
//
//   - The inlineasm backend (build with -tags inlineasm, requires cgo) emits
//     each instruction at its C call site through __asm__ __volatile__ with a
//     "memory" clobber, which is a full compiler barrier. Both mechanisms
//     yield the same instruction encoding and the same non-elision guarantee;
//     only the mechanism differs.
//
// Requesting the inlineasm backend without cgo available leaves the backend
// symbols undefined and the package fails to compile. There is no silent
// fallback between backends.
//
// The segment base accessors have an unchecked precondition: CR4.FSGSBASE
// must be set or the instruction raises #UD. This package never inspects
// control registers itself; callers verify availability through a feature
// query (see the cpuid package) or an equivalent mechanism of their own.
package instr
