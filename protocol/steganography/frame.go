package steganography

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Frame layout, all integers little-endian:
//
//	name length    uint16
//	name           name length bytes, UTF-8
//	payload length uint64
//	payload        payload length bytes
const (
	NameLengthSize    = 2
	PayloadLengthSize = 8
	HeaderSize        = NameLengthSize + PayloadLengthSize

	MaxNameLength = math.MaxUint16

	// first allocation for a payload whose source cannot vouch for its length
	payloadChunk = 64 << 10
)

var frameByteOrder = binary.LittleEndian

// FrameLength returns the size of the frame Serialize would build for p
// without building it
func FrameLength(p Payload) (int, error) {
	name, data, err := lower(p)
	if err != nil {
		return 0, err
	}
	return frameLength(len(name), len(data))
}

func frameLength(nameLen, dataLen int) (int, error) {
	n, ok := addInt(HeaderSize, nameLen)
	if ok {
		n, ok = addInt(n, dataLen)
	}
	if !ok {
		return 0, fmt.Errorf("frame of %d+%d+%d bytes: %w", HeaderSize, nameLen, dataLen, ErrSizeOverflow)
	}
	return n, nil
}

// Serialize builds the frame for p
func Serialize(p Payload) ([]byte, error) {
	name, data, err := lower(p)
	if err != nil {
		return nil, err
	}
	if len(name) > MaxNameLength {
		return nil, errNameTooLongf(len(name))
	}
	total, err := frameLength(len(name), len(data))
	if err != nil {
		return nil, err
	}

	buf := make([]byte, total)
	frameByteOrder.PutUint16(buf[0:NameLengthSize], uint16(len(name)))
	off := NameLengthSize + copy(buf[NameLengthSize:], name)
	frameByteOrder.PutUint64(buf[off:off+PayloadLengthSize], uint64(len(data)))
	copy(buf[off+PayloadLengthSize:], data)

	return buf, nil
}

// Deserialize reads one frame from src and returns the stored name and
// payload. Running out of input in any field yields ErrTruncatedFrame.
//
// If src also reports its remaining length through a Len() int method, as
// bytes.Reader and WindowReader do, a declared length larger than what is
// left is rejected before anything is allocated for it. Other sources are
// read in growing steps, so a corrupt length costs no more memory than the
// input actually holds
func Deserialize(src io.ByteReader) (string, []byte, error) {
	var lenBuf [PayloadLengthSize]byte

	if err := readFull(src, lenBuf[:NameLengthSize], "name length"); err != nil {
		return "", nil, err
	}
	nameLen := int(frameByteOrder.Uint16(lenBuf[:NameLengthSize]))
	if err := checkRemaining(src, nameLen, "name"); err != nil {
		return "", nil, err
	}
	name := make([]byte, nameLen)
	if err := readFull(src, name, "name"); err != nil {
		return "", nil, err
	}
	if !utf8.Valid(name) {
		return "", nil, fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	if err := readFull(src, lenBuf[:], "payload length"); err != nil {
		return "", nil, err
	}
	payloadLen := frameByteOrder.Uint64(lenBuf[:])
	if payloadLen > math.MaxInt {
		return "", nil, errSizeOverflowf(payloadLen)
	}
	payload, err := readPayload(src, int(payloadLen))
	if err != nil {
		return "", nil, err
	}

	return string(name), payload, nil
}

func readFull(src io.ByteReader, buf []byte, field string) error {
	for i := range buf {
		b, err := src.ReadByte()
		if err == io.EOF {
			return errTruncatedf(field, len(buf), i)
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", field, err)
		}
		buf[i] = b
	}
	return nil
}

func readPayload(src io.ByteReader, n int) ([]byte, error) {
	if _, ok := src.(lengther); ok {
		if err := checkRemaining(src, n, "payload"); err != nil {
			return nil, err
		}
		buf := make([]byte, n)
		return buf, readFull(src, buf, "payload")
	}

	buf := make([]byte, 0, min(n, payloadChunk))
	for len(buf) < n {
		b, err := src.ReadByte()
		if err == io.EOF {
			return nil, errTruncatedf("payload", n, len(buf))
		}
		if err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		buf = append(buf, b)
	}
	return buf, nil
}

type lengther interface {
	Len() int
}

func checkRemaining(src io.ByteReader, want int, field string) error {
	if l, ok := src.(lengther); ok && want > l.Len() {
		return errTruncatedf(field, want, l.Len())
	}
	return nil
}
