package steganography

import "math"

// Capacity returns how many bytes a carrier of carrierLength bytes can hide,
// one per window
func Capacity(carrierLength int) int {
	if carrierLength < 0 {
		return 0
	}
	return carrierLength / WindowSize
}

// Fits reports whether a frame of frameLength bytes can be embedded in a
// carrier of carrierLength bytes. A frame so large that its window byte count
// overflows int never fits
func Fits(frameLength, carrierLength int) bool {
	if frameLength < 0 || carrierLength < 0 {
		return false
	}
	if frameLength > math.MaxInt/WindowSize {
		return false
	}
	return frameLength*WindowSize <= carrierLength
}

// MaxPayload returns the largest payload that fits a carrier of carrierLength
// bytes when stored under name. It returns false when not even an empty
// payload fits
func MaxPayload(carrierLength int, name string) (int, bool) {
	overhead, ok := addInt(HeaderSize, len(name))
	if !ok {
		return 0, false
	}
	free := Capacity(carrierLength) - overhead
	if free < 0 {
		return 0, false
	}
	return free, true
}

// addInt adds two non-negative ints, reporting false on overflow
func addInt(a, b int) (int, bool) {
	s := a + b
	if s < a {
		return 0, false
	}
	return s, true
}
