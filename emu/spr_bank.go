package emu

import (
	"github.com/go-logr/logr"
)

// handlerKind is the closed set of SPR behaviors.
type handlerKind uint8

const (
	kindUnmapped handlerKind = iota
	kindField
	kindTimeBase
	kindConstant
	kindDecrementer
	kindPageTable
	kindDiscard
)

type timeBaseHalf uint8

const (
	timeBaseLow timeBaseHalf = iota
	timeBaseHigh
)

// sprHandler is one entry of the read or write table.
type sprHandler struct {
	kind     handlerKind
	field    *uint32
	half     timeBaseHalf
	constant uint32
}

// SPRBank holds the supervisor registers the interpreter does not own itself:
// time base, decrementer, SPRGs and the model-specific configuration
// registers. BAT and SDR1 accesses are forwarded to the translation subsystem.
type SPRBank struct {
	core       CoreAccess
	translator BATAccess
	log        logr.Logger

	timeBase    uint64
	decrementer uint32

	pvr  uint32
	upir uint32

	sprg [4]uint32

	hid0, hid1, hid2, hid4, hid5 uint32
	wpar, scr, car, bcr          uint32
	l2cr, thrm3                  uint32

	readers map[SPR]sprHandler
	writers map[SPR]sprHandler
}

// SPRBankOption is a functional option for configuring the SPRBank.
type SPRBankOption func(*SPRBank)

// WithPVR overrides the processor version register.
func WithPVR(pvr uint32) SPRBankOption {
	return func(b *SPRBank) {
		b.pvr = pvr
	}
}

// WithCoreID sets the value reported by UPIR.
func WithCoreID(id uint32) SPRBankOption {
	return func(b *SPRBank) {
		b.upir = id
	}
}

// WithBankLogger sets the logger used for unmapped accesses.
func WithBankLogger(log logr.Logger) SPRBankOption {
	return func(b *SPRBank) {
		b.log = log
	}
}

// NewSPRBank creates a register bank bound to a core and a translation
// subsystem.
func NewSPRBank(core CoreAccess, translator BATAccess, opts ...SPRBankOption) *SPRBank {
	b := &SPRBank{
		core:        core,
		translator:  translator,
		log:         logr.Discard(),
		decrementer: 0xFFFFFFFF,
		pvr:         DefaultPVR,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.buildTables()

	return b
}

func (b *SPRBank) buildTables() {
	field := func(p *uint32) sprHandler { return sprHandler{kind: kindField, field: p} }
	discard := sprHandler{kind: kindDiscard}

	b.readers = map[SPR]sprHandler{
		SPRTBLRead: {kind: kindTimeBase, half: timeBaseLow},
		SPRTBURead: {kind: kindTimeBase, half: timeBaseHigh},
		SPRSPRG0:   field(&b.sprg[0]),
		SPRSPRG1:   field(&b.sprg[1]),
		SPRSPRG2:   field(&b.sprg[2]),
		SPRSPRG3:   field(&b.sprg[3]),
		SPRPVR:     {kind: kindConstant, constant: b.pvr},
		SPRHID2:    field(&b.hid2),
		SPRWPAR:    field(&b.wpar),
		SPRHID5:    field(&b.hid5),
		SPRSCR:     field(&b.scr),
		SPRCAR:     field(&b.car),
		SPRUPIR:    {kind: kindConstant, constant: b.upir},
		SPRHID0:    field(&b.hid0),
		SPRHID1:    field(&b.hid1),
		SPRHID4:    field(&b.hid4),
		SPRL2CR:    field(&b.l2cr),
		SPRTHRM3:   field(&b.thrm3),
	}

	b.writers = map[SPR]sprHandler{
		SPRDEC:      {kind: kindDecrementer},
		SPRSDR1:     {kind: kindPageTable},
		SPRSPRG0:    field(&b.sprg[0]),
		SPRSPRG1:    field(&b.sprg[1]),
		SPRSPRG2:    field(&b.sprg[2]),
		SPRSPRG3:    field(&b.sprg[3]),
		SPRTBLWrite: {kind: kindTimeBase, half: timeBaseLow},
		SPRTBUWrite: {kind: kindTimeBase, half: timeBaseHigh},
		SPRHID2:     field(&b.hid2),
		SPRWPAR:     field(&b.wpar),
		SPRHID5:     field(&b.hid5),
		SPRSCR:      field(&b.scr),
		SPRCAR:      field(&b.car),
		SPRBCR:      field(&b.bcr),
		SPRMMCR0:    discard,
		SPRPMC1:     discard,
		SPRPMC2:     discard,
		SPRMMCR1:    discard,
		SPRPMC3:     discard,
		SPRPMC4:     discard,
		SPRHID0:     field(&b.hid0),
		SPRHID4:     field(&b.hid4),
		SPRL2CR:     field(&b.l2cr),
		SPRTHRM3:    field(&b.thrm3),
	}
}

// Read returns the value of SPR n. Unmapped registers read as zero.
func (b *SPRBank) Read(n SPR) uint32 {
	if ref, ok := DecodeBAT(n); ok {
		return readBAT(b.translator, ref)
	}

	h := b.readers[n]
	switch h.kind {
	case kindField:
		return *h.field
	case kindTimeBase:
		if h.half == timeBaseHigh {
			return uint32(b.timeBase >> 32)
		}
		return uint32(b.timeBase)
	case kindConstant:
		return h.constant
	}

	b.log.Info("unmapped SPR read", "spr", uint32(n), "pc", hex32(b.core.PC()))
	return 0
}

// Write stores v into SPR n. Writes to unmapped registers are dropped.
func (b *SPRBank) Write(n SPR, v uint32) {
	if ref, ok := DecodeBAT(n); ok {
		writeBAT(b.translator, ref, v)
		return
	}

	h := b.writers[n]
	switch h.kind {
	case kindField:
		*h.field = v
	case kindTimeBase:
		if h.half == timeBaseHigh {
			b.timeBase = b.timeBase&0xFFFFFFFF | uint64(v)<<32
		} else {
			b.timeBase = b.timeBase&0xFFFFFFFF00000000 | uint64(v)
		}
	case kindDecrementer:
		b.decrementer = v
	case kindPageTable:
		b.translator.SetSDR1(v)
	case kindDiscard:
	default:
		b.log.Info("unmapped SPR write",
			"spr", uint32(n), "value", hex32(v), "pc", hex32(b.core.PC()))
	}
}

// TimeBase returns the 64-bit time base.
func (b *SPRBank) TimeBase() uint64 {
	return b.timeBase
}

// SetTimeBase replaces the 64-bit time base.
func (b *SPRBank) SetTimeBase(tb uint64) {
	b.timeBase = tb
}

// Decrementer returns the raw decrementer value.
func (b *SPRBank) Decrementer() uint32 {
	return b.decrementer
}

// SetDecrementer replaces the raw decrementer value.
func (b *SPRBank) SetDecrementer(v uint32) {
	b.decrementer = v
}
