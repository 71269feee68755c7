// Package cpu implements the CHIP-8 processor, its instruction decoder and an
// assembler for its mnemonic syntax.
//
// The CPU consists of sixteen 8-bit registers (V0-VF, VF doubling as the
// carry/borrow/collision flag), a 12-bit address register (I), a program
// counter, a sixteen deep return stack, delay and sound timers, and 4KiB of
// memory. The display, keypad, random source and tone output are devices
// supplied by the host.
//
// Execution is cooperative: the host calls Step for each instruction and Tick
// at a fixed 60Hz rate. A key-wait instruction parks the CPU in
// MODE_AWAITING_KEY until the keypad reports a press or the host calls Resume.
//
// The assembler accepts the same syntax the disassembler produces, plus
// labels, equates, data bytes and compile-time $(...) expressions.
package cpu
