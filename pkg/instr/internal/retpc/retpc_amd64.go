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

// Package retpc reads the return address of its own call, which is the
// caller's resume instruction pointer.
//
// The routine lives in its own cgo-free package because the go tool rejects
// Go assembly files in packages that use cgo, and the instr package uses cgo
// under its inline emission backend.
package retpc

// Get returns the address of the instruction following the call to Get.
func Get() uint64
