package steganography

import "fmt"

// LiteralName is the file name a Literal payload is stored under
const LiteralName = "output.txt"

// Payload is the data to hide. It is either a File or a Literal
type Payload interface {
	payload()
}

// File is a named payload read from disk
type File struct {
	Name  string
	Bytes []byte
}

// Literal is text given directly on the command line. It is stored as a
// virtual file named LiteralName
type Literal string

func (File) payload()    {}
func (Literal) payload() {}

// lower returns the name and content the frame is built from. Only the two
// value variants are accepted; anything else, pointers and nil included, is
// ErrInvalidPayload
func lower(p Payload) (name string, data []byte, err error) {
	switch v := p.(type) {
	case File:
		return v.Name, v.Bytes, nil
	case Literal:
		return LiteralName, []byte(v), nil
	default:
		return "", nil, fmt.Errorf("%T: %w", p, ErrInvalidPayload)
	}
}

// Describe returns the name p is stored under and the size of its content,
// or an empty name and zero for an invalid payload
func Describe(p Payload) (string, int) {
	name, data, err := lower(p)
	if err != nil {
		return "", 0
	}
	return name, len(data)
}
