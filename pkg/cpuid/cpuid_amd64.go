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
	"sort"
	"strings"
)

// FeatureSet defines features in terms of CPUID leaves and bits, plus the
// HWCAP bits the kernel exposes through the ELF auxiliary vector, which are
// necessary for features the kernel must also enable (e.g. FSGSBASE).
//
// References:
//
//	Intel SDM Volume 2, Chapter 3.2 "CPUID"
//	AMD64 APM Volume 3, Appendix E
type FeatureSet struct {
	// Function is the underlying CPUID Function.
	Function

	// hwCap stores HWCAP1/2 exposed from the ELF auxiliary vector.
	hwCap hwCap
}

// block is a collection of 32 feature bits sourced from one output register
// of one CPUID function.
type block int

const (
	block0 block = iota // CPUID.01H.0:ECX
	block1              // CPUID.01H.0:EDX
	block2              // CPUID.07H.0:EBX
	block3              // CPUID.07H.0:ECX
)

const blockSize = 32

func featureID(b block, bit int) Feature {
	return Feature(blockSize*int(b) + bit)
}

func (f Feature) block() block {
	return block(int(f) / blockSize)
}

func (f Feature) mask() uint32 {
	return uint32(1) << (uint(f) % blockSize)
}

// Features relevant to callers of the instruction primitives. The bit
// positions match the Linux flag names in featureNames.
var (
	X86FeatureSSE3    = featureID(block0, 0)
	X86FeatureMONITOR = featureID(block0, 3)
	X86FeatureXSAVE   = featureID(block0, 26)
	X86FeatureOSXSAVE = featureID(block0, 27)
	X86FeatureAVX     = featureID(block0, 28)
	X86FeatureRDRAND  = featureID(block0, 30)

	X86FeatureFPU  = featureID(block1, 0)
	X86FeatureTSC  = featureID(block1, 4)
	X86FeatureMSR  = featureID(block1, 5)
	X86FeatureSEP  = featureID(block1, 11)
	X86FeatureFXSR = featureID(block1, 24)
	X86FeatureSSE  = featureID(block1, 25)
	X86FeatureSSE2 = featureID(block1, 26)

	X86FeatureFSGSBase   = featureID(block2, 0)
	X86FeatureSMEP       = featureID(block2, 7)
	X86FeatureINVPCID    = featureID(block2, 10)
	X86FeatureRDSEED     = featureID(block2, 18)
	X86FeatureSMAP       = featureID(block2, 20)
	X86FeatureCLFLUSHOPT = featureID(block2, 23)

	X86FeatureUMIP  = featureID(block3, 2)
	X86FeaturePKU   = featureID(block3, 3)
	X86FeatureRDPID = featureID(block3, 22)
)

// featureNames maps features to their /proc/cpuinfo flag names.
var featureNames = map[Feature]string{
	X86FeatureSSE3:       "pni",
	X86FeatureMONITOR:    "monitor",
	X86FeatureXSAVE:      "xsave",
	X86FeatureOSXSAVE:    "osxsave",
	X86FeatureAVX:        "avx",
	X86FeatureRDRAND:     "rdrand",
	X86FeatureFPU:        "fpu",
	X86FeatureTSC:        "tsc",
	X86FeatureMSR:        "msr",
	X86FeatureSEP:        "sep",
	X86FeatureFXSR:       "fxsr",
	X86FeatureSSE:        "sse",
	X86FeatureSSE2:       "sse2",
	X86FeatureFSGSBase:   "fsgsbase",
	X86FeatureSMEP:       "smep",
	X86FeatureINVPCID:    "invpcid",
	X86FeatureRDSEED:     "rdseed",
	X86FeatureSMAP:       "smap",
	X86FeatureCLFLUSHOPT: "clflushopt",
	X86FeatureUMIP:       "umip",
	X86FeaturePKU:        "pku",
	X86FeatureRDPID:      "rdpid",
}

// queryIn returns the CPUID input whose output holds f's block.
func (f Feature) queryIn() In {
	switch f.block() {
	case block0, block1:
		return In{Eax: uint32(featureInfo)}
	default:
		return In{Eax: uint32(extendedFeatureInfo)}
	}
}

// check returns true if the feature bit is set in fs.
//
//go:nosplit
func (f Feature) check(fs FeatureSet) bool {
	out := fs.Query(f.queryIn())
	switch f.block() {
	case block0:
		return out.Ecx&f.mask() != 0
	case block1:
		return out.Edx&f.mask() != 0
	case block2:
		return out.Ebx&f.mask() != 0
	case block3:
		return out.Ecx&f.mask() != 0
	default:
		return false
	}
}

// set sets or clears the feature bit in the Static function s.
func (f Feature) set(s Static, on bool) {
	in := f.queryIn()
	out := s[in]
	var reg *uint32
	switch f.block() {
	case block0, block3:
		reg = &out.Ecx
	case block1:
		reg = &out.Edx
	case block2:
		reg = &out.Ebx
	default:
		return
	}
	if on {
		*reg |= f.mask()
	} else {
		*reg &^= f.mask()
	}
	s[in] = out
}

// HasFeature tests whether or not a feature is in the given feature set.
//
//go:nosplit
func (fs FeatureSet) HasFeature(feature Feature) bool {
	return feature.check(fs)
}

// query is an internal wrapper.
//
//go:nosplit
func (fs FeatureSet) query(fn cpuidFunction) (uint32, uint32, uint32, uint32) {
	out := fs.Query(In{Eax: fn.eax(), Ecx: fn.ecx()})
	return out.Eax, out.Ebx, out.Ecx, out.Edx
}

// Helper to convert 3 regs into 12-byte vendor ID.
//
//go:nosplit
func vendorIDFromRegs(bx, cx, dx uint32) (r [12]byte) {
	for i := uint(0); i < 4; i++ {
		r[i] = byte(bx >> (i * 8))
	}
	for i := uint(0); i < 4; i++ {
		r[4+i] = byte(dx >> (i * 8))
	}
	for i := uint(0); i < 4; i++ {
		r[8+i] = byte(cx >> (i * 8))
	}
	return r
}

// VendorID is the 12-char string returned in ebx:edx:ecx for eax=0.
//
//go:nosplit
func (fs FeatureSet) VendorID() [12]byte {
	_, bx, cx, dx := fs.query(vendorID)
	return vendorIDFromRegs(bx, cx, dx)
}

var (
	authenticAMD = [12]byte{'A', 'u', 't', 'h', 'e', 'n', 't', 'i', 'c', 'A', 'M', 'D'}
	genuineIntel = [12]byte{'G', 'e', 'n', 'u', 'i', 'n', 'e', 'I', 'n', 't', 'e', 'l'}
)

// AMD returns true if fs describes an AMD CPU.
//
//go:nosplit
func (fs FeatureSet) AMD() bool {
	return fs.VendorID() == authenticAMD
}

// Intel returns true if fs describes an Intel CPU.
//
//go:nosplit
func (fs FeatureSet) Intel() bool {
	return fs.VendorID() == genuineIntel
}

// Helper to deconstruct signature dword.
//
//go:nosplit
func signatureSplit(v uint32) (ef, em, pt, f, m, sid uint8) {
	sid = uint8(v & 0xf)
	m = uint8(v>>4) & 0xf
	f = uint8(v>>8) & 0xf
	pt = uint8(v>>12) & 0x3
	em = uint8(v>>16) & 0xf
	ef = uint8(v >> 20)
	return
}

// Family is part of the processor signature, with the extended family field
// folded in.
//
//go:nosplit
func (fs FeatureSet) Family() uint8 {
	ax, _, _, _ := fs.query(featureInfo)
	ef, _, _, f, _, _ := signatureSplit(ax)
	return ((ef << 4) & 0xff) | f
}

// Model is part of the processor signature, with the extended model field
// folded in.
//
//go:nosplit
func (fs FeatureSet) Model() uint8 {
	ax, _, _, _ := fs.query(featureInfo)
	_, em, _, _, m, _ := signatureSplit(ax)
	return ((em << 4) & 0xff) | m
}

// SteppingID is part of the processor signature.
//
//go:nosplit
func (fs FeatureSet) SteppingID() uint8 {
	ax, _, _, _ := fs.query(featureInfo)
	_, _, _, _, _, sid := signatureSplit(ax)
	return sid
}

// BrandString returns the processor brand name from the extended function
// leaves, or the empty string if the leaves are not implemented.
func (fs FeatureSet) BrandString() string {
	ax, _, _, _ := fs.query(extendedFunctionInfo)
	if ax < uint32(processorBrandString4) {
		return ""
	}
	var b strings.Builder
	for _, fn := range []cpuidFunction{processorBrandString2, processorBrandString3, processorBrandString4} {
		ax, bx, cx, dx := fs.query(fn)
		for _, reg := range []uint32{ax, bx, cx, dx} {
			for i := uint(0); i < 4; i++ {
				c := byte(reg >> (i * 8))
				if c == 0 {
					return strings.TrimSpace(b.String())
				}
				b.WriteByte(c)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// FlagString returns the space-separated list of present feature flags,
// using their /proc/cpuinfo names, in sorted order.
func (fs FeatureSet) FlagString() string {
	var flags []string
	for f, name := range featureNames {
		if fs.HasFeature(f) {
			flags = append(flags, name)
		}
	}
	sort.Strings(flags)
	return strings.Join(flags, " ")
}

// UseFSGSBASE returns true if the (RD|WR)(FS|GS)BASE instructions may be
// executed: the processor implements them and the kernel has set
// CR4.FSGSBASE, which it advertises via HWCAP2.
func (fs FeatureSet) UseFSGSBASE() bool {
	return fs.HasFeature(X86FeatureFSGSBase) && fs.hwCap.hwCap2&HWCAP2_FSGSBASE != 0
}
