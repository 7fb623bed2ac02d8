package steganography

import "io"

// ChunkStream walks a carrier buffer in consecutive, non-overlapping windows
// of WindowSize bytes. A trailing remainder shorter than a window is never
// returned. Each stream is independent; build a new one to start over
type ChunkStream struct {
	buf []byte
	pos int
}

// NewChunkStream returns a stream over carrier. The carrier is not copied
func NewChunkStream(carrier []byte) *ChunkStream {
	return &ChunkStream{buf: carrier}
}

// Next returns a view of the next window, or false once the stream is done
func (s *ChunkStream) Next() (*[WindowSize]byte, bool) {
	if s.pos+WindowSize > len(s.buf) {
		return nil, false
	}
	w := (*[WindowSize]byte)(s.buf[s.pos : s.pos+WindowSize])
	s.pos += WindowSize
	return w, true
}

// Len returns the total number of windows in the carrier
func (s *ChunkStream) Len() int {
	return len(s.buf) / WindowSize
}

// Remaining returns how many windows Next has yet to return
func (s *ChunkStream) Remaining() int {
	return (len(s.buf) - s.pos) / WindowSize
}

// WindowReader decodes one byte per window of a ChunkStream. It implements
// io.ByteReader and is the byte source Deserialize consumes
type WindowReader struct {
	chunks *ChunkStream
}

// NewWindowReader returns a reader over a fresh ChunkStream on carrier
func NewWindowReader(carrier []byte) *WindowReader {
	return &WindowReader{chunks: NewChunkStream(carrier)}
}

// ReadByte decodes the next window. It returns io.EOF when no window is left
func (r *WindowReader) ReadByte() (byte, error) {
	w, ok := r.chunks.Next()
	if !ok {
		return 0, io.EOF
	}
	return DecodeByte(*w), nil
}

// Len reports how many bytes can still be read
func (r *WindowReader) Len() int {
	return r.chunks.Remaining()
}
