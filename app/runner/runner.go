// Package runner carries out the encode, decode and capacity operations on
// image files, on top of the steganography codec
package runner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/RafRunner/shh/config"
	"github.com/RafRunner/shh/imageio"
	"github.com/RafRunner/shh/logger"
	"github.com/RafRunner/shh/protocol/steganography"
	"github.com/RafRunner/shh/stats"
)

// ErrOutputExists is returned when an output file is already present and
// overwriting is disabled
var ErrOutputExists = errors.New("output file already exists")

// Runner executes operations with an explicit configuration
type Runner struct {
	cfg   *config.Config
	stats *stats.Stats
	log   *logger.Logger

	enc *steganography.Encoder
	dec *steganography.Decoder
}

// NewRunner creates a runner. A nil st records into stats.Global()
func NewRunner(cfg *config.Config, st *stats.Stats) *Runner {
	if st == nil {
		st = stats.Global()
	}
	return &Runner{
		cfg:   cfg,
		stats: st,
		log:   logger.Global(),
		enc:   steganography.NewEncoder(),
		dec:   steganography.NewDecoder(),
	}
}

// EncodeResult describes a finished encode
type EncodeResult struct {
	ID          uuid.UUID
	OutputPath  string
	PayloadName string
	PayloadSize int
	Literal     bool
	FrameLength int
	Capacity    int
}

// DecodeResult describes a finished decode
type DecodeResult struct {
	ID           uuid.UUID
	OriginalName string
	OutputPath   string
	Size         int
}

// CapacityResult describes how much an image can hold
type CapacityResult struct {
	ID           uuid.UUID
	Width        int
	Height       int
	CarrierBytes int
	Windows      int
	// MaxPayload is the largest payload storable under the queried name, valid
	// only when Fits is true
	MaxPayload int
	Fits       bool
}

// LoadPayload turns a command line argument into a payload: the contents of
// the file it names when that file is readable, the argument itself otherwise
func LoadPayload(arg string) steganography.Payload {
	info, err := os.Stat(arg)
	if err == nil && info.Mode().IsRegular() {
		if data, err := os.ReadFile(arg); err == nil {
			return steganography.File{Name: filepath.Base(arg), Bytes: data}
		}
	}
	return steganography.Literal(arg)
}

// Encode hides payloadArg in the image at imagePath and writes the result to
// output, or to the configured default output when output is empty
func (r *Runner) Encode(imagePath, payloadArg, output string) (*EncodeResult, error) {
	id := uuid.New()
	log := r.log.With("op", id.String())

	if output == "" {
		output = r.cfg.Output
	}
	output = imageio.OutputPath(output)
	if err := r.checkOutput(output); err != nil {
		return nil, r.fail(log, err)
	}

	carrier, err := imageio.ReadFile(imagePath)
	if err != nil {
		return nil, r.fail(log, err)
	}
	if imageio.Lossy(carrier.Format) {
		log.Warn("%s is a %s image; its low bits already carry compression noise", imagePath, carrier.Format)
	}

	payload := LoadPayload(payloadArg)
	res := &EncodeResult{ID: id, OutputPath: output, Capacity: steganography.Capacity(len(carrier.Pix))}
	res.PayloadName, res.PayloadSize = steganography.Describe(payload)
	_, res.Literal = payload.(steganography.Literal)
	if res.FrameLength, err = steganography.FrameLength(payload); err != nil {
		return nil, r.fail(log, err)
	}

	log.Info("encoding %d byte payload '%s' into %s (%dx%d %s, room for %d bytes)",
		res.PayloadSize, res.PayloadName, imagePath, carrier.Width, carrier.Height, carrier.Format, res.Capacity)

	pix, err := r.enc.Encode(carrier.Pix, payload)
	if err != nil {
		return nil, r.fail(log, err)
	}
	encoded, err := carrier.WithPix(pix)
	if err != nil {
		return nil, r.fail(log, err)
	}
	if err := writeImageAtomic(output, encoded, id, r.cfg.Overwrite); err != nil {
		return nil, r.fail(log, err)
	}

	r.stats.RecordEncode(res.PayloadSize, len(carrier.Pix))
	log.Debug("wrote %s, frame used %d of %d windows", output, res.FrameLength, res.Capacity)
	return res, nil
}

// Decode extracts the payload hidden in the image at imagePath. With an
// output the payload is written to output plus the original extension,
// otherwise to the original file name in the working directory
func (r *Runner) Decode(imagePath, output string) (*DecodeResult, error) {
	id := uuid.New()
	log := r.log.With("op", id.String())

	carrier, err := imageio.ReadFile(imagePath)
	if err != nil {
		return nil, r.fail(log, err)
	}

	log.Info("decoding %s (%dx%d %s)", imagePath, carrier.Width, carrier.Height, carrier.Format)

	name, data, err := r.dec.Decode(carrier.Pix)
	if err != nil {
		return nil, r.fail(log, err)
	}

	outPath := DecodedPath(name, output)
	if err := r.checkOutput(outPath); err != nil {
		return nil, r.fail(log, err)
	}
	if err := writeFile(outPath, data, r.cfg.Overwrite); err != nil {
		return nil, r.fail(log, err)
	}

	r.stats.RecordDecode(len(data), len(carrier.Pix))
	log.Debug("recovered '%s' (%d bytes) to %s", name, len(data), outPath)
	return &DecodeResult{ID: id, OriginalName: name, OutputPath: outPath, Size: len(data)}, nil
}

// Capacity reports how large a payload stored under name fits in the image
// at imagePath. An empty name means a literal payload
func (r *Runner) Capacity(imagePath, name string) (*CapacityResult, error) {
	id := uuid.New()
	log := r.log.With("op", id.String())

	carrier, err := imageio.ReadFile(imagePath)
	if err != nil {
		return nil, r.fail(log, err)
	}
	if name == "" {
		name = steganography.LiteralName
	}

	log.Info("measuring %s (%dx%d %s) for '%s'", imagePath, carrier.Width, carrier.Height, carrier.Format, name)

	maxPayload, ok := steganography.MaxPayload(len(carrier.Pix), name)
	r.stats.RecordQuery()
	log.Debug("%d windows, largest payload %d (fits %t)", steganography.Capacity(len(carrier.Pix)), maxPayload, ok)
	return &CapacityResult{
		ID:           id,
		Width:        carrier.Width,
		Height:       carrier.Height,
		CarrierBytes: len(carrier.Pix),
		Windows:      steganography.Capacity(len(carrier.Pix)),
		MaxPayload:   maxPayload,
		Fits:         ok,
	}, nil
}

// DecodedPath returns where a payload stored under original is written.
// Only the last element of original is used, so a stored name can never
// point outside the target directory
func DecodedPath(original, output string) string {
	base := filepath.Base(original)
	if base == "." || base == ".." || base == string(filepath.Separator) {
		base = ""
	}

	if output != "" {
		return output + filepath.Ext(base)
	}
	if base == "" {
		base = "decoded.bin"
	}
	return filepath.Join(".", base)
}

func (r *Runner) checkOutput(path string) error {
	if r.cfg.Overwrite {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, ErrOutputExists)
	}
	return nil
}

func (r *Runner) fail(log *logger.Logger, err error) error {
	kind := Kind(err)
	r.stats.RecordFailure(kind)
	log.Debug("operation failed (%s): %v", kind, err)
	return err
}

// Kind classifies an error returned by a Runner operation
func Kind(err error) string {
	switch {
	case errors.Is(err, steganography.ErrPayloadTooLarge):
		return "payload_too_large"
	case errors.Is(err, steganography.ErrNameTooLong):
		return "name_too_long"
	case errors.Is(err, steganography.ErrSizeOverflow):
		return "size_overflow"
	case errors.Is(err, steganography.ErrTruncatedFrame):
		return "truncated_frame"
	case errors.Is(err, steganography.ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, steganography.ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, ErrOutputExists):
		return "output_exists"
	default:
		return "io"
	}
}
