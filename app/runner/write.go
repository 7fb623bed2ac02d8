package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/RafRunner/shh/imageio"
)

// writeImageAtomic encodes c next to path under a temporary name and moves
// it into place, so a failed write never leaves a partial image at path.
// Without overwrite the move is a hard link, which fails instead of
// replacing a file that appeared after the earlier existence check
func writeImageAtomic(path string, c *imageio.Carrier, id uuid.UUID, overwrite bool) error {
	format, ok := imageio.FormatFor(path)
	if !ok {
		return fmt.Errorf("no lossless format for '%s'", path)
	}

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+id.String()+".tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	defer os.Remove(tmp)

	if err := imageio.Write(f, c.Image(), format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	if overwrite {
		if err := os.Rename(tmp, path); err != nil {
			return fmt.Errorf("rename %s: %w", path, err)
		}
		return nil
	}
	if err := os.Link(tmp, path); err != nil {
		return outputError(path, err)
	}
	return nil
}

// writeFile writes data to path, failing with ErrOutputExists when path is
// already present and overwrite is off
func writeFile(path string, data []byte, overwrite bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return outputError(path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func outputError(path string, err error) error {
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", path, ErrOutputExists)
	}
	return fmt.Errorf("write %s: %w", path, err)
}
