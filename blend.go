package raster

import (
	"log/slog"
	"sync"
)

// BlendMode selects a pixel-combination function used when compositing
// layers. Each mode maps to a precomputed 65536-entry lookup table
// indexed by (src<<8)|dst, where src and dst are 8-bit intensities.
type BlendMode int

const (
	// BlendNone disables blending; no table is allocated for it.
	BlendNone BlendMode = iota
	// BlendMix25 weighs the source at 25%: (src + 2*dst) / 3.
	BlendMix25
	// BlendMix50 averages source and destination: (src + dst) / 2.
	BlendMix50
	// BlendMix75 weighs the source at 75%: (2*src + dst) / 3.
	BlendMix75
	// BlendAdd is additive with saturation: min(src + dst, 255).
	BlendAdd
	// BlendSub is subtractive with a zero floor: max(src - dst, 0).
	BlendSub
	// BlendMod multiplies intensities: src * dst / 255.
	BlendMod
	// BlendCustom is a caller-overridable slot, identity passthrough
	// (src) until SetCustomBlendFunction installs a formula.
	BlendCustom

	blendModeCount
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendNone:
		return "None"
	case BlendMix25:
		return "Mix25"
	case BlendMix50:
		return "Mix50"
	case BlendMix75:
		return "Mix75"
	case BlendAdd:
		return "Add"
	case BlendSub:
		return "Sub"
	case BlendMod:
		return "Mod"
	case BlendCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// BlendFunc combines a source and a destination intensity into an
// output intensity. Used to fill the BlendCustom table.
type BlendFunc func(src, dst uint8) uint8

func blendIdentity(src, _ uint8) uint8 { return src }

const blendTableSize = 1 << 16

// blendTableSet is the process-wide blend LUT singleton. The tables
// exist, fully populated, exactly while instances > 0: the 0→1
// activation builds them, the 1→0 deactivation releases them, and
// every transition in between only moves the counter. The mutex makes
// activation, release and selection safe for concurrent use.
type blendTableSet struct {
	mu        sync.Mutex
	instances int
	tables    [blendModeCount][]byte
	custom    BlendFunc
}

var blendTables blendTableSet

// ActivateBlendTables acquires the shared blend table set, building
// every table on the first activation. Subsequent calls only increment
// the reference count; tables are built exactly once per activation
// cycle. Returns false and records ErrOutOfMemory if allocation fails.
func ActivateBlendTables() bool {
	return blendTables.activate()
}

// DeactivateBlendTables releases one reference to the shared blend
// table set. The tables stay untouched while other activations are
// outstanding; the call that brings the count to zero frees them.
// Calling without a matching activation is a no-op.
func DeactivateBlendTables() {
	blendTables.deactivate()
}

// SelectBlendTable returns the 65536-entry table for mode, indexed by
// (src<<8)|dst. Returns nil for BlendNone or while the engine is
// inactive. The table is shared and must be treated as read-only;
// callers must not retain it across a matching DeactivateBlendTables.
func SelectBlendTable(mode BlendMode) []byte {
	return blendTables.sel(mode)
}

// SetCustomBlendFunction installs fn as the BlendCustom formula. When
// the tables are active the custom table is refilled in place; the
// function is also remembered, so a later activation cycle rebuilds
// the table with it. Pass nil to restore the identity passthrough.
func SetCustomBlendFunction(fn BlendFunc) {
	blendTables.setCustom(fn)
}

func (s *blendTableSet) activate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.instances++
	if s.instances > 1 {
		setLastError(ErrOK)
		return true
	}

	for mode := BlendMix25; mode < blendModeCount; mode++ {
		s.tables[mode] = make([]byte, blendTableSize)
	}
	s.build()
	Logger().Debug("blend tables built",
		slog.Int("modes", int(blendModeCount-BlendMix25)),
		slog.Int("bytes", int(blendModeCount-BlendMix25)*blendTableSize))
	setLastError(ErrOK)
	return true
}

func (s *blendTableSet) deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.instances == 0 {
		return
	}
	s.instances--
	if s.instances > 0 {
		return
	}
	for mode := range s.tables {
		s.tables[mode] = nil
	}
	Logger().Debug("blend tables released")
}

func (s *blendTableSet) sel(mode BlendMode) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode < 0 || mode >= blendModeCount {
		return nil
	}
	return s.tables[mode]
}

func (s *blendTableSet) setCustom(fn BlendFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.custom = fn
	if s.tables[BlendCustom] != nil {
		fillTable(s.tables[BlendCustom], s.customFunc())
	}
}

func (s *blendTableSet) customFunc() BlendFunc {
	if s.custom == nil {
		return blendIdentity
	}
	return s.custom
}

// build populates every table for every (src, dst) pair. Integer
// arithmetic only; every formula clamps to [0, 255] by construction.
func (s *blendTableSet) build() {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			off := a<<8 | b
			s.tables[BlendMix25][off] = uint8((a + 2*b) / 3)
			s.tables[BlendMix50][off] = uint8((a + b) >> 1)
			s.tables[BlendMix75][off] = uint8((2*a + b) / 3)
			s.tables[BlendAdd][off] = uint8(min(a+b, 255))
			s.tables[BlendSub][off] = uint8(max(a-b, 0))
			s.tables[BlendMod][off] = uint8(a * b / 255)
		}
	}
	fillTable(s.tables[BlendCustom], s.customFunc())
}

func fillTable(table []byte, fn BlendFunc) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			table[a<<8|b] = fn(uint8(a), uint8(b))
		}
	}
}
