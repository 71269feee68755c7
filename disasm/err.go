package disasm

import (
	"errors"

	"github.com/ezrec/chip8/translate"
)

var f = translate.From

var (
	// Input errors
	ErrOddLength = errors.New(f("program length is not a whole number of words"))
)
