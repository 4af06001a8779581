package emu

// InterruptLine is a level-triggered external interrupt line. Each source
// is one bit of Status; the line is pending while any unmasked source is
// asserted.
type InterruptLine struct {
	Status uint32
	Mask   uint32
}

// NewInterruptLine returns a line with every source unmasked.
func NewInterruptLine() *InterruptLine {
	return &InterruptLine{Mask: 0xFFFFFFFF}
}

// Pending reports whether an unmasked source is asserted.
func (l *InterruptLine) Pending() bool {
	return l.Status&l.Mask != 0
}

// Assert raises source.
func (l *InterruptLine) Assert(source uint) {
	l.Status |= 1 << (source & 31)
}

// Clear acknowledges source.
func (l *InterruptLine) Clear(source uint) {
	l.Status &^= 1 << (source & 31)
}

// SetMask replaces the source mask.
func (l *InterruptLine) SetMask(mask uint32) {
	l.Mask = mask
}
