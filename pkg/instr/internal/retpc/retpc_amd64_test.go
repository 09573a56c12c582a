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

package retpc

import (
	"testing"
)

func TestGetIncreases(t *testing.T) {
	first := Get()
	second := Get()
	if first == 0 || second == 0 {
		t.Fatalf("Get returned zero: first=%#x second=%#x", first, second)
	}
	if second <= first {
		t.Errorf("sequential Get values not increasing: first=%#x second=%#x", first, second)
	}
}
