package steganography

// Decoder recovers payloads from carrier buffers
type Decoder struct{}

// NewDecoder creates a decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads the frame hidden in carrier and returns the stored file name
// and payload. Errors from Deserialize are returned as is
func (d *Decoder) Decode(carrier []byte) (string, []byte, error) {
	return Deserialize(NewWindowReader(carrier))
}
