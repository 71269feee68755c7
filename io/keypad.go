package io

import (
	"sync"

	"github.com/ezrec/chip8/cpu"
)

const (
	KEYPAD_QUEUE = 8 // Pending key presses kept for key waits.
)

// Keypad is the sixteen key input device.
//
// Hosts call Press and Release from any goroutine; the cpu polls IsPressed
// and AwaitKey.
type Keypad struct {
	mutex   sync.Mutex
	down    [cpu.KEY_COUNT]bool
	pending []cpu.Nibble
}

// Press marks key as held, and queues a press event.
// When the queue is full the oldest event is dropped.
func (kp *Keypad) Press(key cpu.Nibble) (err error) {
	if key > cpu.NIBBLE_MASK {
		err = ErrKeyInvalid
		return
	}

	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	kp.down[key] = true
	if len(kp.pending) == KEYPAD_QUEUE {
		kp.pending = kp.pending[1:]
	}
	kp.pending = append(kp.pending, key)
	return
}

// Release marks key as no longer held.
func (kp *Keypad) Release(key cpu.Nibble) (err error) {
	if key > cpu.NIBBLE_MASK {
		err = ErrKeyInvalid
		return
	}

	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	kp.down[key] = false
	return
}

// IsPressed reports whether key is held.
func (kp *Keypad) IsPressed(key cpu.Nibble) bool {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	return kp.down[key&cpu.NIBBLE_MASK]
}

// AwaitKey returns the oldest queued press, if any.
func (kp *Keypad) AwaitKey() (key cpu.Nibble, ok bool) {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	if len(kp.pending) > 0 {
		ok = true
		key = kp.pending[0]
		kp.pending = kp.pending[1:]
	}
	return
}

// Flush discards queued presses, keeping held state.
func (kp *Keypad) Flush() {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	kp.pending = nil
}

// Reset releases all keys and discards queued presses.
func (kp *Keypad) Reset() {
	kp.mutex.Lock()
	defer kp.mutex.Unlock()

	kp.down = [cpu.KEY_COUNT]bool{}
	kp.pending = nil
}
