package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafRunner/shh/config"
	"github.com/RafRunner/shh/imageio"
)

type fixture struct {
	dir    string
	cfg    string
	cover  string
	secret string
}

func setup(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()

	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x * y), A: 0xFF})
		}
	}
	cover := filepath.Join(dir, "cover.png")
	require.NoError(t, imageio.WriteFile(cover, imageio.FromImage(img)))

	secret := filepath.Join(dir, "secret.csv")
	require.NoError(t, os.WriteFile(secret, []byte("a,b\n1,2\n"), 0644))

	cfg := filepath.Join(dir, "shh.yaml")
	c := config.DefaultConfig()
	c.Log.Level = "error"
	require.NoError(t, config.SaveConfig(c, cfg))

	return fixture{dir: dir, cfg: cfg, cover: cover, secret: secret}
}

func run(t *testing.T, f fixture, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", f.cfg}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestEncodeDecodeFile(t *testing.T) {
	f := setup(t)
	encoded := filepath.Join(f.dir, "encoded")

	out, err := run(t, f, "encode", f.cover, f.secret, encoded)
	require.NoError(t, err)
	assert.Contains(t, out, "Encoded image saved to")
	assert.FileExists(t, encoded+".png")

	recovered := filepath.Join(f.dir, "recovered")
	out, err = run(t, f, "d", encoded+".png", recovered)
	require.NoError(t, err)
	assert.Contains(t, out, "Decoded payload saved to")
	assert.Contains(t, out, "secret.csv")

	data, err := os.ReadFile(recovered + ".csv")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestEncodeAliasAndOverwrite(t *testing.T) {
	f := setup(t)
	encoded := filepath.Join(f.dir, "same.png")

	_, err := run(t, f, "e", f.cover, "literal text", encoded)
	require.NoError(t, err)

	_, err = run(t, f, "e", f.cover, "literal text", encoded)
	require.Error(t, err)

	_, err = run(t, f, "e", "--overwrite", f.cover, "other text", encoded)
	require.NoError(t, err)
}

func TestEncodeTooLarge(t *testing.T) {
	f := setup(t)
	big := filepath.Join(f.dir, "big.bin")
	require.NoError(t, os.WriteFile(big, make([]byte, 64*64*3), 0644))

	_, err := run(t, f, "encode", f.cover, big, filepath.Join(f.dir, "out.png"))
	require.ErrorContains(t, err, "payload too large")
}

func TestEncodeArgs(t *testing.T) {
	f := setup(t)
	_, err := run(t, f, "encode", f.cover)
	require.Error(t, err)
}

func TestCapacityCommand(t *testing.T) {
	f := setup(t)
	out, err := run(t, f, "capacity", f.cover)
	require.NoError(t, err)
	assert.Contains(t, out, "64x64 image")
	assert.Contains(t, out, "1536 hidden bytes")
	assert.Contains(t, out, "Largest payload: 1516 bytes")
}

func TestConfigCommands(t *testing.T) {
	f := setup(t)
	path := filepath.Join(f.dir, "new.yaml")

	_, err := run(t, f, "config", "init", path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = run(t, f, "config", "init", path)
	require.Error(t, err)
	_, err = run(t, f, "config", "init", "--force", path)
	require.NoError(t, err)

	out, err := run(t, f, "config", "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	out, err = run(t, f, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "output: encoded.png")
	assert.Contains(t, out, "level: error")
}

func TestMissingExplicitConfig(t *testing.T) {
	f := setup(t)
	f.cfg = filepath.Join(f.dir, "absent.yaml")
	_, err := run(t, f, "capacity", f.cover)
	require.ErrorContains(t, err, "config error")
}
