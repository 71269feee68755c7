package io

import (
	"sync/atomic"
)

// Buzzer is the tone output.
//
// Active may be read from an audio goroutine.
type Buzzer struct {
	OnChange func(active bool) // If set, called on every tone change.

	active      atomic.Bool
	transitions int
}

// SetToneActive turns the tone on or off.
func (bz *Buzzer) SetToneActive(active bool) {
	if bz.active.Swap(active) == active {
		return
	}

	bz.transitions++
	if bz.OnChange != nil {
		bz.OnChange(active)
	}
}

// Active reports whether the tone is sounding.
func (bz *Buzzer) Active() bool {
	return bz.active.Load()
}

// Transitions returns the number of tone changes.
func (bz *Buzzer) Transitions() int {
	return bz.transitions
}
