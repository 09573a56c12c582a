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
	"ringzero.dev/ringzero/pkg/instr/internal/retpc"
)

// ReadRIP returns an approximation of the caller's instruction pointer.
//
// The value is the resume address of the underlying call, so it is stale by
// a few instructions by the time the caller observes it. Two sequential
// calls from straight-line code return strictly increasing values. The
// result is only ever an approximation and must not be used for exact
// control flow introspection.
//
// Both backends route this operation through the one assembly routine in the
// retpc package rather than providing separate renditions: the go tool does
// not permit Go assembly in this package once the inline emission backend
// makes it a cgo package, and a RIP sampled inside a C callee would be
// anchored to the C body instead of the Go call site, making the two
// backends observably diverge. This wrapper is small enough that the
// compiler inlines it, leaving the caller invoking the routine directly.
func ReadRIP() uint64 {
	return retpc.Get()
}
