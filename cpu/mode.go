package cpu

//go:generate go tool stringer -linecomment -type=Mode

// Mode is the execution state of the CPU.
type Mode int

const (
	MODE_RUNNING      Mode = iota // running
	MODE_AWAITING_KEY             // awaiting-key
	MODE_HALTED                   // halted
)
