package steganography

import (
	"errors"
	"fmt"
)

// Codec errors. Callers match them with errors.Is; the helpers below attach the
// concrete sizes involved
var (
	ErrPayloadTooLarge = errors.New("payload too large for carrier")
	ErrNameTooLong     = errors.New("file name too long")
	ErrSizeOverflow    = errors.New("size overflows platform int")
	ErrTruncatedFrame  = errors.New("truncated frame")
	ErrInvalidName     = errors.New("file name is not valid UTF-8")
	ErrInvalidPayload  = errors.New("payload must be a File or a Literal")
)

func errPayloadTooLargef(frameLength, carrierLength int) error {
	return fmt.Errorf("frame needs %d windows, carrier of %d bytes holds %d: %w",
		frameLength, carrierLength, Capacity(carrierLength), ErrPayloadTooLarge)
}

func errNameTooLongf(length int) error {
	return fmt.Errorf("name is %d bytes, limit is %d: %w", length, MaxNameLength, ErrNameTooLong)
}

func errTruncatedf(field string, want, have int) error {
	return fmt.Errorf("%s: need %d bytes, carrier has %d left: %w", field, want, have, ErrTruncatedFrame)
}

func errSizeOverflowf(length uint64) error {
	return fmt.Errorf("payload length %d: %w", length, ErrSizeOverflow)
}
