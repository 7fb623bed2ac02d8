package steganography

import (
	"errors"
	"fmt"
)

// Encoder hides payloads in carrier buffers
type Encoder struct{}

// NewEncoder creates an encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode returns a copy of carrier with the frame for p stored in the least
// significant bits of its leading windows. Bytes past the frame are copied
// unchanged, and carrier itself is never modified
func (e *Encoder) Encode(carrier []byte, p Payload) ([]byte, error) {
	frameLen, err := FrameLength(p)
	if err := checkFrameSize(frameLen, err, len(carrier)); err != nil {
		return nil, err
	}

	frame, err := Serialize(p)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(carrier))
	copy(out, carrier)

	chunks := NewChunkStream(out)
	for _, b := range frame {
		w, ok := chunks.Next()
		if !ok {
			panic("steganography: carrier ran out of windows after capacity check")
		}
		*w = EncodeByte(*w, b)
	}

	return out, nil
}

// checkFrameSize turns the outcome of FrameLength into the error Encode
// returns. A frame whose length overflows int is too large for any carrier
func checkFrameSize(frameLen int, err error, carrierLength int) error {
	if errors.Is(err, ErrSizeOverflow) {
		return fmt.Errorf("%w: %w", ErrPayloadTooLarge, err)
	}
	if err != nil {
		return err
	}
	if !Fits(frameLen, carrierLength) {
		return errPayloadTooLargef(frameLen, carrierLength)
	}
	return nil
}
