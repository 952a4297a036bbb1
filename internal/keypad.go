package internal

import "math/bits"

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// Keypad holds the current key values in the form of individual bits.
// So when 0 is pushed in the keypad, the 0'th bit will be set and so on.
// It is written by the input source and only read by the VM.
type Keypad struct {
	mask uint16
}

// SetPressed updates the state of key. Keys outside 0x0-0xF are ignored.
func (k *Keypad) SetPressed(key uint8, pressed bool) {
	if key >= KeyCount {
		return
	}
	if pressed {
		k.mask |= 1 << key
	} else {
		k.mask &^= 1 << key
	}
}

// IsPressed returns whether key is held down.
func (k *Keypad) IsPressed(key uint8) bool {
	if key >= KeyCount {
		return false
	}
	return k.mask&(1<<key) != 0
}

// AnyPressed returns the lowest pressed key, if any.
func (k *Keypad) AnyPressed() (uint8, bool) {
	if k.mask == 0 {
		return 0, false
	}
	return uint8(bits.TrailingZeros16(k.mask)), true
}

// Release releases all keys.
func (k *Keypad) Release() {
	k.mask = 0
}
