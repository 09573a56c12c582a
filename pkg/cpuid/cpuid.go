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

// Package cpuid answers the availability questions that the instruction
// primitives in the instr package leave to their callers: whether the
// processor implements a feature, and, for FSGSBASE, whether the kernel has
// switched it on.
//
// Queries go through a FeatureSet, which is usually the host set:
//
//	if cpuid.HostFeatureSet().UseFSGSBASE() {
//		instr.WriteGSBase(base)
//	}
//
// A FeatureSet can also be backed by a Static map of CPUID outputs, which
// makes feature-dependent behavior testable without the corresponding
// hardware.
package cpuid

// Feature is a unique identifier for a particular cpu feature. Features are
// numbered in blocks of 32, one block per CPUID output register queried; see
// cpuid_amd64.go.
type Feature int
