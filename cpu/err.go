package cpu

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrStackEmpty      = errors.New(f("stack underflow"))
	ErrStackFull       = errors.New(f("stack overflow"))
	ErrOutOfMemory     = errors.New(f("out of memory"))
	ErrAddressAlign    = errors.New(f("address not word aligned"))
	ErrAddressRange    = errors.New(f("address out of range"))
	ErrHalted          = errors.New(f("halted"))
	ErrNotAwaitingKey  = errors.New(f("not awaiting a key"))
	ErrAwaitingKey     = errors.New(f("awaiting a key"))
	ErrOpcodeDecode    = errors.New(f("invalid instruction"))
	ErrOpcodeUnhandled = errors.New(f("unhandled instruction"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrProgramTooLarge    = errors.New(f("program too large"))
)

// ErrRange reports a value that does not fit its primitive type.
type ErrRange struct {
	Kind  string
	Value uint
}

func (err ErrRange) Error() string {
	return f("%v 0x%x out of range", err.Kind, err.Value)
}

// ErrInstruction reports a word with no instruction mapping.
type ErrInstruction struct {
	Address Address
	Word    uint16
}

func (err ErrInstruction) Error() string {
	return f("invalid instruction 0x%04x at address 0x%03x", err.Word, uint16(err.Address))
}

func (err ErrInstruction) Unwrap() error {
	return ErrOpcodeDecode
}

// ErrLoad reports a program image that cannot be placed in memory.
// Err is ErrAddressRange, ErrAddressAlign or ErrOutOfMemory.
type ErrLoad struct {
	Origin Address
	Size   int
	Err    error
}

func (err ErrLoad) Error() string {
	return f("program of %d bytes at 0x%03x: %v", err.Size, uint16(err.Origin), err.Err)
}

func (err ErrLoad) Unwrap() error {
	return err.Err
}

// ErrFetch reports a program counter that cannot supply a full word.
type ErrFetch struct {
	Address Address
	Err     error
}

func (err ErrFetch) Error() string {
	return f("fetch at 0x%03x: %v", uint16(err.Address), err.Err)
}

func (err ErrFetch) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOperand reports an operand value that does not fit its field.
type ErrOperand struct {
	Operand string
	Limit   uint
}

func (err ErrOperand) Error() string {
	return f("operand '%v' exceeds 0x%x", err.Operand, err.Limit)
}

// ErrExecute identifies the instruction that raised a fault.
type ErrExecute struct {
	Address     Address
	Instruction Instruction
}

func (err ErrExecute) Error() string {
	return f("%03x: %v", uint16(err.Address), err.Instruction)
}
