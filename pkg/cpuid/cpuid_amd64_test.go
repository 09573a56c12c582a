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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHostVendorID(t *testing.T) {
	fs := HostFeatureSet()
	vendor := fs.VendorID()
	for i, c := range vendor {
		if c < 0x20 || c > 0x7e {
			t.Errorf("VendorID()[%d] = %#x, not printable ASCII", i, c)
		}
	}
	if fs.Intel() && fs.AMD() {
		t.Errorf("feature set claims to be both Intel and AMD")
	}
}

func TestHostSignature(t *testing.T) {
	fs := HostFeatureSet()
	// Family 0 has not been manufactured this century; every CPU this
	// package can run on reports a non-zero family.
	if fs.Family() == 0 {
		t.Errorf("Family() = 0, want non-zero")
	}
	// FPU has been implied by amd64 since its inception.
	if !fs.HasFeature(X86FeatureFPU) {
		t.Errorf("HasFeature(X86FeatureFPU) = false, want true")
	}
	if !fs.HasFeature(X86FeatureSSE2) {
		t.Errorf("HasFeature(X86FeatureSSE2) = false, want true")
	}
}

func TestUseFSGSBASEImpliesFeature(t *testing.T) {
	fs := HostFeatureSet()
	if fs.UseFSGSBASE() && !fs.HasFeature(X86FeatureFSGSBase) {
		t.Errorf("UseFSGSBASE() = true without the FSGSBASE CPUID bit")
	}
}

func TestStaticFeatureToggle(t *testing.T) {
	s := make(Static).Add(X86FeatureFSGSBase).Add(X86FeatureSMEP)
	fs := s.ToFeatureSet()
	if !fs.HasFeature(X86FeatureFSGSBase) {
		t.Errorf("added feature FSGSBASE not present")
	}
	if !fs.HasFeature(X86FeatureSMEP) {
		t.Errorf("added feature SMEP not present")
	}
	if fs.HasFeature(X86FeatureSMAP) {
		t.Errorf("feature SMAP present but never added")
	}

	s.Remove(X86FeatureFSGSBase)
	if fs = s.ToFeatureSet(); fs.HasFeature(X86FeatureFSGSBase) {
		t.Errorf("removed feature FSGSBASE still present")
	}
}

func TestStaticGatesUseFSGSBASE(t *testing.T) {
	// The CPUID bit alone must not enable use of the instructions; the
	// kernel HWCAP2 bit is also required.
	fs := make(Static).Add(X86FeatureFSGSBase).ToFeatureSet()
	if fs.UseFSGSBASE() {
		t.Errorf("UseFSGSBASE() = true without HWCAP2_FSGSBASE")
	}
	fs.hwCap.hwCap2 = HWCAP2_FSGSBASE
	if !fs.UseFSGSBASE() {
		t.Errorf("UseFSGSBASE() = false with CPUID bit and HWCAP2_FSGSBASE both set")
	}
}

func TestToStaticMatchesHost(t *testing.T) {
	host := HostFeatureSet()
	static := host.ToStatic().ToFeatureSet()
	if diff := cmp.Diff(host.FlagString(), static.FlagString()); diff != "" {
		t.Errorf("static flags differ from host flags (-host +static):\n%s", diff)
	}
	hv, sv := host.VendorID(), static.VendorID()
	if hv != sv {
		t.Errorf("static VendorID %q differs from host %q", string(sv[:]), string(hv[:]))
	}
}

func TestHWCapFromAuxv(t *testing.T) {
	pair := func(tag, val uint64) []byte {
		var b [16]byte
		binary.LittleEndian.PutUint64(b[0:], tag)
		binary.LittleEndian.PutUint64(b[8:], val)
		return b[:]
	}
	var auxv []byte
	auxv = append(auxv, pair(6, 4096)...) // AT_PAGESZ, ignored.
	auxv = append(auxv, pair(_AT_HWCAP, 0xbfebfbff)...)
	auxv = append(auxv, pair(_AT_HWCAP2, HWCAP2_FSGSBASE)...)
	auxv = append(auxv, pair(0, 0)...) // AT_NULL terminator.

	got := hwCapFromAuxv(auxv)
	want := hwCap{hwCap1: 0xbfebfbff, hwCap2: HWCAP2_FSGSBASE}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(hwCap{})); diff != "" {
		t.Errorf("hwCapFromAuxv returned unexpected value (-want +got):\n%s", diff)
	}
}

func TestHWCapFromAuxvTruncated(t *testing.T) {
	// A short or empty vector decodes to no capabilities.
	for _, auxv := range [][]byte{nil, make([]byte, 15)} {
		if got := hwCapFromAuxv(auxv); got != (hwCap{}) {
			t.Errorf("hwCapFromAuxv(%d bytes) = %+v, want zero", len(auxv), got)
		}
	}
}

func TestQueryFiltering(t *testing.T) {
	var n Native
	// Disallowed leaves return all zeroes rather than executing CPUID.
	for _, in := range []In{
		{Eax: 0x3},        // Serial number, never allowed.
		{Eax: 0x40000000}, // Hypervisor range, never allowed.
	} {
		if out := n.Query(in); out != (Out{}) {
			t.Errorf("Query(%#x) = %+v, want all zeroes", in.Eax, out)
		}
	}
	// The vendor leaf is allowed and always returns vendor data.
	if out := n.Query(In{Eax: uint32(vendorID)}); out == (Out{}) {
		t.Errorf("Query(vendorID) = all zeroes, want vendor data")
	}
}
