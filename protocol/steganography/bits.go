package steganography

// WindowSize is the number of carrier bytes that hold one hidden byte
const WindowSize = 8

// EncodeByte stores value in the least significant bits of window. Bit i of
// value goes to bit 0 of window[i]; all other bits are left as they were
func EncodeByte(window [WindowSize]byte, value byte) [WindowSize]byte {
	var out [WindowSize]byte
	for i := 0; i < WindowSize; i++ {
		if value&(1<<i) != 0 {
			out[i] = window[i] | 0x01
		} else {
			out[i] = window[i] & 0xFE
		}
	}
	return out
}

// DecodeByte collects bit 0 of every window byte into one byte, window[0]
// being the least significant
func DecodeByte(window [WindowSize]byte) byte {
	var b byte
	for i := 0; i < WindowSize; i++ {
		b |= (window[i] & 0x01) << i
	}
	return b
}
