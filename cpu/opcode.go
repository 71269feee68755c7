package cpu

import (
	"fmt"
	"strings"
)

// Instruction is a decoded CHIP-8 instruction.
//
// The set of implementations is closed; Decode is the only producer of
// instructions from machine words, and Cpu.Execute switches over every one.
type Instruction interface {
	fmt.Stringer
	// Encode returns the instruction word.
	Encode() uint16
	instruction()
}

// Instruction groups, selected by the high nibble of the word.
const (
	GROUP_SYS    = 0x0
	GROUP_JP     = 0x1
	GROUP_CALL   = 0x2
	GROUP_SE_IMM = 0x3
	GROUP_SNE_IM = 0x4
	GROUP_SE_REG = 0x5
	GROUP_LD_IMM = 0x6
	GROUP_ADD_IM = 0x7
	GROUP_ALU    = 0x8
	GROUP_SNE_RG = 0x9
	GROUP_LD_I   = 0xa
	GROUP_JP_V0  = 0xb
	GROUP_RND    = 0xc
	GROUP_DRW    = 0xd
	GROUP_KEY    = 0xe
	GROUP_MISC   = 0xf
)

// ALU sub-operations, selected by the low nibble of group 8 words.
const (
	ALU_LD   = 0x0
	ALU_OR   = 0x1
	ALU_AND  = 0x2
	ALU_XOR  = 0x3
	ALU_ADD  = 0x4
	ALU_SUB  = 0x5
	ALU_SHR  = 0x6
	ALU_SUBN = 0x7
	ALU_SHL  = 0xe
)

// Key and miscellaneous sub-operations, selected by the low byte.
const (
	WORD_CLS = 0x00e0
	WORD_RET = 0x00ee

	KEY_SKP  = 0x9e
	KEY_SKNP = 0xa1

	MISC_LD_V_DT = 0x07
	MISC_LD_K    = 0x0a
	MISC_LD_DT_V = 0x15
	MISC_LD_ST_V = 0x18
	MISC_ADD_I   = 0x1e
	MISC_LD_F    = 0x29
	MISC_LD_B    = 0x33
	MISC_DUMP    = 0x55
	MISC_RESTORE = 0x65
)

// Decode maps a big-endian instruction word to its Instruction.
// ok is false when the word has no mapping.
func Decode(hi, lo byte) (ins Instruction, ok bool) {
	x := Register(NibbleLow(hi))
	y := Register(NibbleHigh(lo))
	n := NibbleLow(lo)
	addr := MakeAddress(hi, lo)

	switch NibbleHigh(hi) {
	case GROUP_SYS:
		switch uint16(hi)<<8 | uint16(lo) {
		case WORD_CLS:
			ins = Cls{}
		case WORD_RET:
			ins = Ret{}
		default:
			ins = Sys{Addr: addr}
		}
	case GROUP_JP:
		ins = Jp{Addr: addr}
	case GROUP_CALL:
		ins = Call{Addr: addr}
	case GROUP_SE_IMM:
		ins = SeImm{X: x, Byte: lo}
	case GROUP_SNE_IM:
		ins = SneImm{X: x, Byte: lo}
	case GROUP_SE_REG:
		if n != 0 {
			return
		}
		ins = SeReg{X: x, Y: y}
	case GROUP_LD_IMM:
		ins = LdImm{X: x, Byte: lo}
	case GROUP_ADD_IM:
		ins = AddImm{X: x, Byte: lo}
	case GROUP_ALU:
		switch n {
		case ALU_LD:
			ins = LdReg{X: x, Y: y}
		case ALU_OR:
			ins = Or{X: x, Y: y}
		case ALU_AND:
			ins = And{X: x, Y: y}
		case ALU_XOR:
			ins = Xor{X: x, Y: y}
		case ALU_ADD:
			ins = AddReg{X: x, Y: y}
		case ALU_SUB:
			ins = Sub{X: x, Y: y}
		case ALU_SHR:
			ins = Shr{X: x, Y: y}
		case ALU_SUBN:
			ins = Subn{X: x, Y: y}
		case ALU_SHL:
			ins = Shl{X: x, Y: y}
		default:
			return
		}
	case GROUP_SNE_RG:
		if n != 0 {
			return
		}
		ins = SneReg{X: x, Y: y}
	case GROUP_LD_I:
		ins = LdI{Addr: addr}
	case GROUP_JP_V0:
		ins = JpV0{Addr: addr}
	case GROUP_RND:
		ins = Rnd{X: x, Byte: lo}
	case GROUP_DRW:
		ins = Drw{X: x, Y: y, N: n}
	case GROUP_KEY:
		switch lo {
		case KEY_SKP:
			ins = Skp{X: x}
		case KEY_SKNP:
			ins = Sknp{X: x}
		default:
			return
		}
	case GROUP_MISC:
		switch lo {
		case MISC_LD_V_DT:
			ins = LdVDt{X: x}
		case MISC_LD_K:
			ins = LdK{X: x}
		case MISC_LD_DT_V:
			ins = LdDtV{X: x}
		case MISC_LD_ST_V:
			ins = LdStV{X: x}
		case MISC_ADD_I:
			ins = AddI{X: x}
		case MISC_LD_F:
			ins = LdF{X: x}
		case MISC_LD_B:
			ins = LdB{X: x}
		case MISC_DUMP:
			ins = Dump{X: x}
		case MISC_RESTORE:
			ins = Restore{X: x}
		default:
			return
		}
	}

	ok = ins != nil
	return
}

// DecodeWord decodes an instruction word already assembled from its bytes.
func DecodeWord(word uint16) (Instruction, bool) {
	return Decode(byte(word>>8), byte(word))
}

// mnemonic lays out an opcode name and its operands.
func mnemonic(op string, args ...any) string {
	if len(args) == 0 {
		return op
	}

	strs := make([]string, len(args))
	for n, arg := range args {
		strs[n] = fmt.Sprint(arg)
	}

	return fmt.Sprintf("%-4s %s", op, strings.Join(strs, ", "))
}

func imm(b byte) string {
	return fmt.Sprintf("0x%02X", b)
}

func encodeAddr(group uint16, a Address) uint16 {
	return group<<12 | uint16(a)&ADDRESS_MASK
}

func encodeImm(group uint16, x Register, b byte) uint16 {
	return group<<12 | uint16(x&NIBBLE_MASK)<<8 | uint16(b)
}

func encodeXY(group uint16, x, y Register, n Nibble) uint16 {
	return group<<12 | uint16(x&NIBBLE_MASK)<<8 | uint16(y&NIBBLE_MASK)<<4 | uint16(n&NIBBLE_MASK)
}

// Sys is 0nnn, a call to a host machine routine. It executes as a no-op.
type Sys struct{ Addr Address }

// Cls is 00E0, clear the display.
type Cls struct{}

// Ret is 00EE, return from subroutine.
type Ret struct{}

// Jp is 1nnn, jump to nnn.
type Jp struct{ Addr Address }

// Call is 2nnn, call subroutine at nnn.
type Call struct{ Addr Address }

// SeImm is 3xkk, skip next if Vx == kk.
type SeImm struct {
	X    Register
	Byte byte
}

// SneImm is 4xkk, skip next if Vx != kk.
type SneImm struct {
	X    Register
	Byte byte
}

// SeReg is 5xy0, skip next if Vx == Vy.
type SeReg struct{ X, Y Register }

// LdImm is 6xkk, Vx = kk.
type LdImm struct {
	X    Register
	Byte byte
}

// AddImm is 7xkk, Vx += kk without carry.
type AddImm struct {
	X    Register
	Byte byte
}

// LdReg is 8xy0, Vx = Vy.
type LdReg struct{ X, Y Register }

// Or is 8xy1, Vx |= Vy.
type Or struct{ X, Y Register }

// And is 8xy2, Vx &= Vy.
type And struct{ X, Y Register }

// Xor is 8xy3, Vx ^= Vy.
type Xor struct{ X, Y Register }

// AddReg is 8xy4, Vx += Vy, VF = carry.
type AddReg struct{ X, Y Register }

// Sub is 8xy5, Vx -= Vy, VF = not borrow.
type Sub struct{ X, Y Register }

// Shr is 8xy6, Vx >>= 1, VF = bit shifted out. Y is carried for encoding only.
type Shr struct{ X, Y Register }

// Subn is 8xy7, Vx = Vy - Vx, VF = not borrow.
type Subn struct{ X, Y Register }

// Shl is 8xyE, Vx <<= 1, VF = bit shifted out. Y is carried for encoding only.
type Shl struct{ X, Y Register }

// SneReg is 9xy0, skip next if Vx != Vy.
type SneReg struct{ X, Y Register }

// LdI is Annn, I = nnn.
type LdI struct{ Addr Address }

// JpV0 is Bnnn, jump to V0 + nnn.
type JpV0 struct{ Addr Address }

// Rnd is Cxkk, Vx = random & kk.
type Rnd struct {
	X    Register
	Byte byte
}

// Drw is Dxyn, draw an n row sprite from I at (Vx, Vy), VF = collision.
type Drw struct {
	X, Y Register
	N    Nibble
}

// Skp is Ex9E, skip next if key Vx is down.
type Skp struct{ X Register }

// Sknp is ExA1, skip next if key Vx is up.
type Sknp struct{ X Register }

// LdVDt is Fx07, Vx = delay timer.
type LdVDt struct{ X Register }

// LdK is Fx0A, wait for a key press and store it in Vx.
type LdK struct{ X Register }

// LdDtV is Fx15, delay timer = Vx.
type LdDtV struct{ X Register }

// LdStV is Fx18, sound timer = Vx.
type LdStV struct{ X Register }

// AddI is Fx1E, I += Vx.
type AddI struct{ X Register }

// LdF is Fx29, I = font sprite for digit Vx.
type LdF struct{ X Register }

// LdB is Fx33, store BCD of Vx at I, I+1, I+2.
type LdB struct{ X Register }

// Dump is Fx55, store V0..Vx at I.
type Dump struct{ X Register }

// Restore is Fx65, load V0..Vx from I.
type Restore struct{ X Register }

func (Sys) instruction()     {}
func (Cls) instruction()     {}
func (Ret) instruction()     {}
func (Jp) instruction()      {}
func (Call) instruction()    {}
func (SeImm) instruction()   {}
func (SneImm) instruction()  {}
func (SeReg) instruction()   {}
func (LdImm) instruction()   {}
func (AddImm) instruction()  {}
func (LdReg) instruction()   {}
func (Or) instruction()      {}
func (And) instruction()     {}
func (Xor) instruction()     {}
func (AddReg) instruction()  {}
func (Sub) instruction()     {}
func (Shr) instruction()     {}
func (Subn) instruction()    {}
func (Shl) instruction()     {}
func (SneReg) instruction()  {}
func (LdI) instruction()     {}
func (JpV0) instruction()    {}
func (Rnd) instruction()     {}
func (Drw) instruction()     {}
func (Skp) instruction()     {}
func (Sknp) instruction()    {}
func (LdVDt) instruction()   {}
func (LdK) instruction()     {}
func (LdDtV) instruction()   {}
func (LdStV) instruction()   {}
func (AddI) instruction()    {}
func (LdF) instruction()     {}
func (LdB) instruction()     {}
func (Dump) instruction()    {}
func (Restore) instruction() {}

func (ins Sys) Encode() uint16     { return encodeAddr(GROUP_SYS, ins.Addr) }
func (ins Cls) Encode() uint16     { return WORD_CLS }
func (ins Ret) Encode() uint16     { return WORD_RET }
func (ins Jp) Encode() uint16      { return encodeAddr(GROUP_JP, ins.Addr) }
func (ins Call) Encode() uint16    { return encodeAddr(GROUP_CALL, ins.Addr) }
func (ins SeImm) Encode() uint16   { return encodeImm(GROUP_SE_IMM, ins.X, ins.Byte) }
func (ins SneImm) Encode() uint16  { return encodeImm(GROUP_SNE_IM, ins.X, ins.Byte) }
func (ins SeReg) Encode() uint16   { return encodeXY(GROUP_SE_REG, ins.X, ins.Y, 0) }
func (ins LdImm) Encode() uint16   { return encodeImm(GROUP_LD_IMM, ins.X, ins.Byte) }
func (ins AddImm) Encode() uint16  { return encodeImm(GROUP_ADD_IM, ins.X, ins.Byte) }
func (ins LdReg) Encode() uint16   { return encodeXY(GROUP_ALU, ins.X, ins.Y, ALU_LD) }
func (ins Or) Encode() uint16      { return encodeXY(GROUP_ALU, ins.X, ins.Y, ALU_OR) }
func (ins And) Encode() uint16     { return encodeXY(GROUP_ALU, ins.X, ins.Y, ALU_AND) }
func (ins Xor) Encode() uint16     { return encodeXY(GROUP_ALU, ins.X, ins.Y, ALU_XOR) }
func (ins AddReg) Encode() uint16  { return encodeXY(GROUP_ALU, ins.X, ins.Y, ALU_ADD) }
func (ins Sub) Encode() uint16     { return encodeXY(GROUP_ALU, ins.X, ins.Y, ALU_SUB) }
func (ins Shr) Encode() uint16     { return encodeXY(GROUP_ALU, ins.X, ins.Y, ALU_SHR) }
func (ins Subn) Encode() uint16    { return encodeXY(GROUP_ALU, ins.X, ins.Y, ALU_SUBN) }
func (ins Shl) Encode() uint16     { return encodeXY(GROUP_ALU, ins.X, ins.Y, ALU_SHL) }
func (ins SneReg) Encode() uint16  { return encodeXY(GROUP_SNE_RG, ins.X, ins.Y, 0) }
func (ins LdI) Encode() uint16     { return encodeAddr(GROUP_LD_I, ins.Addr) }
func (ins JpV0) Encode() uint16    { return encodeAddr(GROUP_JP_V0, ins.Addr) }
func (ins Rnd) Encode() uint16     { return encodeImm(GROUP_RND, ins.X, ins.Byte) }
func (ins Drw) Encode() uint16     { return encodeXY(GROUP_DRW, ins.X, ins.Y, ins.N) }
func (ins Skp) Encode() uint16     { return encodeImm(GROUP_KEY, ins.X, KEY_SKP) }
func (ins Sknp) Encode() uint16    { return encodeImm(GROUP_KEY, ins.X, KEY_SKNP) }
func (ins LdVDt) Encode() uint16   { return encodeImm(GROUP_MISC, ins.X, MISC_LD_V_DT) }
func (ins LdK) Encode() uint16     { return encodeImm(GROUP_MISC, ins.X, MISC_LD_K) }
func (ins LdDtV) Encode() uint16   { return encodeImm(GROUP_MISC, ins.X, MISC_LD_DT_V) }
func (ins LdStV) Encode() uint16   { return encodeImm(GROUP_MISC, ins.X, MISC_LD_ST_V) }
func (ins AddI) Encode() uint16    { return encodeImm(GROUP_MISC, ins.X, MISC_ADD_I) }
func (ins LdF) Encode() uint16     { return encodeImm(GROUP_MISC, ins.X, MISC_LD_F) }
func (ins LdB) Encode() uint16     { return encodeImm(GROUP_MISC, ins.X, MISC_LD_B) }
func (ins Dump) Encode() uint16    { return encodeImm(GROUP_MISC, ins.X, MISC_DUMP) }
func (ins Restore) Encode() uint16 { return encodeImm(GROUP_MISC, ins.X, MISC_RESTORE) }

// Shr and Shl print Vy, though it is ignored, so the text assembles back to the
// same word.

func (ins Sys) String() string     { return mnemonic("SYS", ins.Addr) }
func (ins Cls) String() string     { return mnemonic("CLS") }
func (ins Ret) String() string     { return mnemonic("RET") }
func (ins Jp) String() string      { return mnemonic("JP", ins.Addr) }
func (ins Call) String() string    { return mnemonic("CALL", ins.Addr) }
func (ins SeImm) String() string   { return mnemonic("SE", ins.X, imm(ins.Byte)) }
func (ins SneImm) String() string  { return mnemonic("SNE", ins.X, imm(ins.Byte)) }
func (ins SeReg) String() string   { return mnemonic("SE", ins.X, ins.Y) }
func (ins LdImm) String() string   { return mnemonic("LD", ins.X, imm(ins.Byte)) }
func (ins AddImm) String() string  { return mnemonic("ADD", ins.X, imm(ins.Byte)) }
func (ins LdReg) String() string   { return mnemonic("LD", ins.X, ins.Y) }
func (ins Or) String() string      { return mnemonic("OR", ins.X, ins.Y) }
func (ins And) String() string     { return mnemonic("AND", ins.X, ins.Y) }
func (ins Xor) String() string     { return mnemonic("XOR", ins.X, ins.Y) }
func (ins AddReg) String() string  { return mnemonic("ADD", ins.X, ins.Y) }
func (ins Sub) String() string     { return mnemonic("SUB", ins.X, ins.Y) }
func (ins Shr) String() string     { return mnemonic("SHR", ins.X, ins.Y) }
func (ins Subn) String() string    { return mnemonic("SUBN", ins.X, ins.Y) }
func (ins Shl) String() string     { return mnemonic("SHL", ins.X, ins.Y) }
func (ins SneReg) String() string  { return mnemonic("SNE", ins.X, ins.Y) }
func (ins LdI) String() string     { return mnemonic("LD", "I", ins.Addr) }
func (ins JpV0) String() string    { return mnemonic("JP", REG_V0, ins.Addr) }
func (ins Rnd) String() string     { return mnemonic("RND", ins.X, imm(ins.Byte)) }
func (ins Drw) String() string     { return mnemonic("DRW", ins.X, ins.Y, fmt.Sprintf("0x%X", uint8(ins.N))) }
func (ins Skp) String() string     { return mnemonic("SKP", ins.X) }
func (ins Sknp) String() string    { return mnemonic("SKNP", ins.X) }
func (ins LdVDt) String() string   { return mnemonic("LD", ins.X, "DT") }
func (ins LdK) String() string     { return mnemonic("LD", ins.X, "K") }
func (ins LdDtV) String() string   { return mnemonic("LD", "DT", ins.X) }
func (ins LdStV) String() string   { return mnemonic("LD", "ST", ins.X) }
func (ins AddI) String() string    { return mnemonic("ADD", "I", ins.X) }
func (ins LdF) String() string     { return mnemonic("LD", "F", ins.X) }
func (ins LdB) String() string     { return mnemonic("LD", "B", ins.X) }
func (ins Dump) String() string    { return mnemonic("LD", "[I]", ins.X) }
func (ins Restore) String() string { return mnemonic("LD", ins.X, "[I]") }
