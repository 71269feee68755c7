// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"FONT_ADDRESS":   fmt.Sprintf("%#x", uint16(FONT_ADDRESS)),
	"PROGRAM_ORIGIN": fmt.Sprintf("%#x", PROGRAM_ORIGIN),
	"DISPLAY_WIDTH":  fmt.Sprintf("%d", DISPLAY_WIDTH),
	"DISPLAY_HEIGHT": fmt.Sprintf("%d", DISPLAY_HEIGHT),
}

var (
	reLabel     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reCharacter = regexp.MustCompile(`'\\?[^']'`)
	reParen     = regexp.MustCompile(`\$\([^\$]*\)`)
)

// mnemonics are the recognized instruction names, in lower case.
var mnemonics = []string{
	"sys", "cls", "ret", "jp", "call", "se", "sne", "ld", "add",
	"or", "and", "xor", "sub", "shr", "subn", "shl", "rnd", "drw",
	"skp", "sknp",
}

// Assembler is a single pass assembler for CHIP-8 mnemonics.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Origin  Address  // Load address of the program. Zero selects PROGRAM_ORIGIN.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string  // Predefines
	Label     map[string]Address // Map of jump labels to addresses.
	Equate    map[string]string  // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// origin returns the effective load address.
func (asm *Assembler) origin() Address {
	if asm.Origin == 0 {
		return PROGRAM_ORIGIN
	}
	return asm.Origin
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parseRegister parses a V register name.
func parseRegister(word string) (reg Register, ok bool) {
	if len(word) != 2 || (word[0] != 'V' && word[0] != 'v') {
		return
	}

	index, err := strconv.ParseUint(word[1:], 16, 4)
	if err != nil {
		return
	}

	reg = Register(index)
	ok = true
	return
}

// operandKind classifies an operand for instruction form lookup.
func operandKind(word string) string {
	upper := strings.ToUpper(word)
	switch upper {
	case "I", "[I]", "DT", "ST", "K", "F", "B":
		return upper
	}

	if _, ok := parseRegister(word); ok {
		return "V"
	}

	return "n"
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int64
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(int(addr))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line into words, handling expressions,
// equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) || operandKind(label) != "n" {
			err = ErrLabelInvalid
			return
		}

		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]Address, 16)
		}
		asm.Label[label] = asm.currentAddress()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentAddress gets the address of the next generated byte.
func (asm *Assembler) currentAddress() Address {
	if len(asm.Opcode) == 0 {
		return asm.origin()
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Address + Address(len(last.Bytes))
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.SplitN(text, ";", 2)
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	end := asm.currentAddress()
	if int(end) > MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		addr, ok := asm.Label[op.LinkLabel]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		op.Bytes[0] |= byte(addr>>8) & NIBBLE_MASK
		op.Bytes[1] |= byte(addr)
	}

	prog = &Program{
		Origin:  asm.origin(),
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// operands converts instruction operand words, keeping the first error.
type operands struct {
	asm   *Assembler
	words []string
	label string
	err   error
}

func (p *operands) value(n int, limit int64) (value int64) {
	if p.err != nil {
		return
	}

	word := p.words[n]
	value, p.err = p.asm.valueOf(word)
	if p.err != nil {
		return
	}

	// Bytes may also be written as signed values.
	if value > limit || (limit == 0xff && value < -0x80) || (limit != 0xff && value < 0) {
		p.err = ErrOperand{Operand: word, Limit: uint(limit)}
	}
	return
}

func (p *operands) reg(n int) (reg Register) {
	if p.err != nil {
		return
	}

	reg, ok := parseRegister(p.words[n])
	if !ok {
		p.err = ErrRegisterInvalid
	}
	return
}

func (p *operands) byteValue(n int) byte {
	return byte(p.value(n, 0xff))
}

func (p *operands) nibbleValue(n int) Nibble {
	return Nibble(p.value(n, NIBBLE_MASK))
}

// addr returns an address operand; labels are left at zero for linking.
func (p *operands) addr(n int) Address {
	if p.err != nil {
		return 0
	}

	word := p.words[n]
	if reLabel.MatchString(word) {
		p.label = word
		return 0
	}

	return Address(p.value(n, ADDRESS_MASK))
}

// parseInstruction selects the instruction form from the operand kinds.
func (asm *Assembler) parseInstruction(op string, args []string) (ins Instruction, label string, err error) {
	kinds := make([]string, len(args))
	for n, arg := range args {
		kinds[n] = operandKind(arg)
	}

	p := &operands{asm: asm, words: args}

	switch op + " " + strings.Join(kinds, ",") {
	case "sys n":
		ins = Sys{Addr: p.addr(0)}
	case "cls ":
		ins = Cls{}
	case "ret ":
		ins = Ret{}
	case "jp n":
		ins = Jp{Addr: p.addr(0)}
	case "jp V,n":
		if p.reg(0) != REG_V0 && p.err == nil {
			p.err = ErrRegisterInvalid
		}
		ins = JpV0{Addr: p.addr(1)}
	case "call n":
		ins = Call{Addr: p.addr(0)}
	case "se V,n":
		ins = SeImm{X: p.reg(0), Byte: p.byteValue(1)}
	case "se V,V":
		ins = SeReg{X: p.reg(0), Y: p.reg(1)}
	case "sne V,n":
		ins = SneImm{X: p.reg(0), Byte: p.byteValue(1)}
	case "sne V,V":
		ins = SneReg{X: p.reg(0), Y: p.reg(1)}
	case "ld V,n":
		ins = LdImm{X: p.reg(0), Byte: p.byteValue(1)}
	case "ld V,V":
		ins = LdReg{X: p.reg(0), Y: p.reg(1)}
	case "ld I,n":
		ins = LdI{Addr: p.addr(1)}
	case "ld V,DT":
		ins = LdVDt{X: p.reg(0)}
	case "ld V,K":
		ins = LdK{X: p.reg(0)}
	case "ld DT,V":
		ins = LdDtV{X: p.reg(1)}
	case "ld ST,V":
		ins = LdStV{X: p.reg(1)}
	case "ld F,V":
		ins = LdF{X: p.reg(1)}
	case "ld B,V":
		ins = LdB{X: p.reg(1)}
	case "ld [I],V":
		ins = Dump{X: p.reg(1)}
	case "ld V,[I]":
		ins = Restore{X: p.reg(0)}
	case "add V,n":
		ins = AddImm{X: p.reg(0), Byte: p.byteValue(1)}
	case "add V,V":
		ins = AddReg{X: p.reg(0), Y: p.reg(1)}
	case "add I,V":
		ins = AddI{X: p.reg(1)}
	case "or V,V":
		ins = Or{X: p.reg(0), Y: p.reg(1)}
	case "and V,V":
		ins = And{X: p.reg(0), Y: p.reg(1)}
	case "xor V,V":
		ins = Xor{X: p.reg(0), Y: p.reg(1)}
	case "sub V,V":
		ins = Sub{X: p.reg(0), Y: p.reg(1)}
	case "subn V,V":
		ins = Subn{X: p.reg(0), Y: p.reg(1)}
	case "shr V":
		x := p.reg(0)
		ins = Shr{X: x, Y: x}
	case "shr V,V":
		ins = Shr{X: p.reg(0), Y: p.reg(1)}
	case "shl V":
		x := p.reg(0)
		ins = Shl{X: x, Y: x}
	case "shl V,V":
		ins = Shl{X: p.reg(0), Y: p.reg(1)}
	case "rnd V,n":
		ins = Rnd{X: p.reg(0), Byte: p.byteValue(1)}
	case "drw V,V,n":
		ins = Drw{X: p.reg(0), Y: p.reg(1), N: p.nibbleValue(2)}
	case "skp V":
		ins = Skp{X: p.reg(0)}
	case "sknp V":
		ins = Sknp{X: p.reg(0)}
	default:
		if slices.Contains(mnemonics, op) {
			err = ErrOpcodeInvalid
		} else {
			err = ErrInstructionInvalid
		}
		return
	}

	err = p.err
	label = p.label
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var data []byte
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words
	addr := asm.currentAddress()

	defer func() {
		if err != nil || len(data) == 0 {
			return
		}
		opcode := Opcode{LineNo: lineno, Address: addr, Words: initial_words, Bytes: data, LinkLabel: label}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	op := strings.ToLower(words[0])
	args := words[1:]

	switch op {
	case ".byte":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		p := &operands{asm: asm, words: args}
		for n := range args {
			data = append(data, p.byteValue(n))
		}
		err = p.err
	case ".word":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		p := &operands{asm: asm, words: args}
		for n := range args {
			value := uint16(p.value(n, 0xffff))
			data = append(data, byte(value>>8), byte(value))
		}
		err = p.err
	default:
		if addr&1 != 0 {
			err = ErrAddressAlign
			return
		}
		var ins Instruction
		ins, label, err = asm.parseInstruction(op, args)
		if err != nil {
			return
		}
		word := ins.Encode()
		data = []byte{byte(word >> 8), byte(word)}
	}

	if err != nil {
		data = nil
	}

	return
}
