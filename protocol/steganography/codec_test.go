package steganography

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomCarrier(t *testing.T, size int) []byte {
	t.Helper()
	r := rand.New(rand.NewSource(int64(size)))
	buf := make([]byte, size)
	r.Read(buf)
	return buf
}

func carrierFor(t *testing.T, p Payload, spare int) []byte {
	t.Helper()
	n, err := FrameLength(p)
	require.NoError(t, err)
	return randomCarrier(t, n*WindowSize+spare)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	names := []string{"", "ten_chars!", strings.Repeat("n", MaxNameLength)}
	sizes := []int{0, 1, 255, 65536}

	enc := NewEncoder()
	dec := NewDecoder()

	for _, name := range names {
		for _, size := range sizes {
			data := bytes.Repeat([]byte{0xA5}, size)
			p := File{Name: name, Bytes: data}
			carrier := carrierFor(t, p, 5)

			encoded, err := enc.Encode(carrier, p)
			require.NoError(t, err, "name=%d size=%d", len(name), size)
			require.Len(t, encoded, len(carrier))

			gotName, gotData, err := dec.Decode(encoded)
			require.NoError(t, err, "name=%d size=%d", len(name), size)
			require.Equal(t, name, gotName)
			require.Equal(t, data, gotData)
		}
	}
}

func TestEncodeLiteralScenarios(t *testing.T) {
	enc := NewEncoder()
	dec := NewDecoder()

	// "output.txt" alone takes 20 windows, so 80 and 88 byte carriers are too small
	_, err := enc.Encode(make([]byte, 80), Literal(""))
	require.ErrorIs(t, err, ErrPayloadTooLarge)
	_, err = enc.Encode(make([]byte, 88), Literal("A"))
	require.ErrorIs(t, err, ErrPayloadTooLarge)

	encoded, err := enc.Encode(make([]byte, 160), Literal(""))
	require.NoError(t, err)
	name, data, err := dec.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, LiteralName, name)
	require.Empty(t, data)

	encoded, err = enc.Encode(make([]byte, 168), Literal("A"))
	require.NoError(t, err)
	name, data, err = dec.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, LiteralName, name)
	require.Equal(t, []byte{0x41}, data)
}

func TestEncodeEmptyNameInMinimalCarrier(t *testing.T) {
	encoded, err := NewEncoder().Encode(make([]byte, 80), File{})
	require.NoError(t, err)

	name, data, err := NewDecoder().Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, "", name)
	require.Empty(t, data)

	_, err = NewEncoder().Encode(make([]byte, 79), File{})
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestEncodePreservesTailAndInput(t *testing.T) {
	p := Literal("the quick brown fox")
	carrier := carrierFor(t, p, 1003)
	original := append([]byte(nil), carrier...)

	encoded, err := NewEncoder().Encode(carrier, p)
	require.NoError(t, err)
	require.Equal(t, original, carrier, "carrier must not be modified")

	n, err := FrameLength(p)
	require.NoError(t, err)
	require.Equal(t, carrier[n*WindowSize:], encoded[n*WindowSize:])

	for i := 0; i < n*WindowSize; i++ {
		require.Equal(t, carrier[i]&0xFE, encoded[i]&0xFE, "byte %d", i)
	}
}

func TestEncodeNameTooLong(t *testing.T) {
	p := File{Name: strings.Repeat("x", MaxNameLength+1)}
	carrier := carrierFor(t, p, 0)

	_, err := NewEncoder().Encode(carrier, p)
	require.ErrorIs(t, err, ErrNameTooLong)
}

func TestDecodeTruncated(t *testing.T) {
	dec := NewDecoder()

	_, _, err := dec.Decode(make([]byte, 79))
	require.ErrorIs(t, err, ErrTruncatedFrame)

	_, _, err = dec.Decode(nil)
	require.ErrorIs(t, err, ErrTruncatedFrame)

	p := Literal("some hidden text")
	carrier := carrierFor(t, p, 0)
	encoded, err := NewEncoder().Encode(carrier, p)
	require.NoError(t, err)

	_, _, err = dec.Decode(encoded[:len(encoded)-WindowSize])
	require.ErrorIs(t, err, ErrTruncatedFrame)
	_, _, err = dec.Decode(encoded[:len(encoded)-1])
	require.ErrorIs(t, err, ErrTruncatedFrame)
}

func TestDecodeDeclaredLengthBeyondCarrier(t *testing.T) {
	// a frame claiming a 1000 byte payload hidden in a carrier with room for 10
	frame := make([]byte, HeaderSize)
	frameByteOrder.PutUint64(frame[NameLengthSize:], 1000)

	carrier := make([]byte, (HeaderSize+10)*WindowSize)
	w := NewChunkStream(carrier)
	for _, b := range frame {
		win, ok := w.Next()
		require.True(t, ok)
		*win = EncodeByte(*win, b)
	}

	_, _, err := NewDecoder().Decode(carrier)
	require.ErrorIs(t, err, ErrTruncatedFrame)
}

func TestCheckFrameSize(t *testing.T) {
	n, err := frameLength(1, math.MaxInt)
	err = checkFrameSize(n, err, 1<<20)
	require.ErrorIs(t, err, ErrPayloadTooLarge)
	require.ErrorIs(t, err, ErrSizeOverflow)

	err = checkFrameSize(21, nil, 160)
	require.ErrorIs(t, err, ErrPayloadTooLarge)
	require.NotErrorIs(t, err, ErrSizeOverflow)

	require.NoError(t, checkFrameSize(20, nil, 160))

	err = checkFrameSize(0, ErrNameTooLong, 160)
	require.ErrorIs(t, err, ErrNameTooLong)
	require.NotErrorIs(t, err, ErrPayloadTooLarge)
}
