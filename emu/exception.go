package emu

// ExceptionKind identifies the cause delivered to the core's exception vector.
type ExceptionKind uint8

// Exception kinds raised by the supervisor model.
const (
	// ExceptionNone means no exception; a Signal carrying it is Continue.
	ExceptionNone ExceptionKind = iota
	ExceptionDSI
	ExceptionISI
	ExceptionExternal
	ExceptionDecrementer
)

var exceptionVectors = [...]uint32{
	ExceptionNone:        0,
	ExceptionDSI:         0x300,
	ExceptionISI:         0x400,
	ExceptionExternal:    0x500,
	ExceptionDecrementer: 0x900,
}

var exceptionNames = [...]string{
	ExceptionNone:        "none",
	ExceptionDSI:         "DSI",
	ExceptionISI:         "ISI",
	ExceptionExternal:    "external interrupt",
	ExceptionDecrementer: "decrementer",
}

// Vector returns the vector offset of the exception, without the MSR[IP]
// prefix.
func (k ExceptionKind) Vector() uint32 {
	if int(k) >= len(exceptionVectors) {
		return 0
	}
	return exceptionVectors[k]
}

// Asynchronous reports whether the exception is gated by MSR[EE].
func (k ExceptionKind) Asynchronous() bool {
	return k == ExceptionExternal || k == ExceptionDecrementer
}

func (k ExceptionKind) String() string {
	if int(k) >= len(exceptionNames) {
		return "unknown"
	}
	return exceptionNames[k]
}

// Signal is the result of a supervisor entry point. The zero value is
// Continue. A raised signal means the current instruction must not complete:
// the dispatch loop resumes at the exception vector.
type Signal struct {
	Kind ExceptionKind
}

// Continue is the signal for "no exception taken".
var Continue = Signal{}

// Raised returns a signal carrying kind.
func Raised(kind ExceptionKind) Signal {
	return Signal{Kind: kind}
}

// IsRaised reports whether an exception was taken.
func (s Signal) IsRaised() bool {
	return s.Kind != ExceptionNone
}

// CoreAccess is what the supervisor model needs from the interpreter core.
type CoreAccess interface {
	// PC returns the address of the instruction being executed.
	PC() uint32

	// SetSPR stages a value in an architected register (DAR, DSISR, ...).
	SetSPR(n SPR, v uint32)

	// RaiseException transfers control to the vector for kind. The
	// returned signal tells the caller whether the exception was taken.
	RaiseException(kind ExceptionKind) Signal
}
