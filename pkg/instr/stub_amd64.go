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

//go:build amd64 && !inlineasm
// +build amd64,!inlineasm

package instr

// The stub backend. Each declaration below is implemented in stub_amd64.s as
// a routine whose body is the single target instruction. The assembly file
// comments the byte encoding of every instruction so that a disassembly of
// either backend can be audited against the other.

// hlt executes HLT.
func hlt()

// nop executes NOP.
func nop()

// wrfsbase writes the FS base address.
func wrfsbase(val uint64)

// rdfsbase reads the FS base address.
func rdfsbase() uint64

// wrgsbase writes the GS base address.
func wrgsbase(val uint64)

// rdgsbase reads the GS base address.
func rdgsbase() uint64
