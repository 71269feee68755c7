package cpu

const (
	DISPLAY_WIDTH  = 64 // Display columns.
	DISPLAY_HEIGHT = 32 // Display rows.
	KEY_COUNT      = 16 // Keypad keys, 0x0 through 0xF.
)

// Display is the monochrome bitmap the CPU draws sprites onto.
type Display interface {
	// XorPixel toggles the pixel at (x, y) and returns its previous value.
	// Coordinates are already wrapped to the display size.
	XorPixel(x, y int) (prev bool)
	// Clear turns every pixel off.
	Clear()
}

// Keypad is the sixteen key input device.
type Keypad interface {
	// IsPressed reports whether key is currently held down.
	IsPressed(key Nibble) bool
	// AwaitKey returns the next pending key press, if there is one.
	// It must not block.
	AwaitKey() (key Nibble, ok bool)
}

// Random supplies bytes for the RND instruction.
type Random interface {
	NextByte() byte
}

// Tone is the audio output driven by the sound timer.
type Tone interface {
	SetToneActive(active bool)
}

// Devices are the host collaborators of a Cpu.
// A nil member is replaced by a device that does nothing.
type Devices struct {
	Display Display
	Keypad  Keypad
	Random  Random
	Tone    Tone
}

type nullDevice struct{}

func (nullDevice) XorPixel(x, y int) bool          { return false }
func (nullDevice) Clear()                          {}
func (nullDevice) IsPressed(key Nibble) bool       { return false }
func (nullDevice) AwaitKey() (key Nibble, ok bool) { return }
func (nullDevice) NextByte() byte                  { return 0 }
func (nullDevice) SetToneActive(active bool)       {}

// withDefaults fills in the null device for every missing member.
func (dev Devices) withDefaults() Devices {
	if dev.Display == nil {
		dev.Display = nullDevice{}
	}
	if dev.Keypad == nil {
		dev.Keypad = nullDevice{}
	}
	if dev.Random == nil {
		dev.Random = nullDevice{}
	}
	if dev.Tone == nil {
		dev.Tone = nullDevice{}
	}
	return dev
}
