package save

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// MaxDecodedSize caps how much a compressed save may expand to
const MaxDecodedSize = 64 << 20

// IsCompressed reports whether data starts with a zstd frame header
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// DecodeAny decodes a save that may or may not be zstd-compressed
func DecodeAny(data []byte, n Normalizer) (*Envelope, error) {
	if IsCompressed(data) {
		raw, err := Decompress(data)
		if err != nil {
			return nil, err
		}
		data = raw
	}
	return Decode(data, n)
}

// Compress encodes a save payload as a zstd frame
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCompressed(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress
func Decompress(data []byte) ([]byte, error) {
	return readCompressed(bytes.NewReader(data))
}

// WriteFile writes a compressed save file, creating parent directories
func WriteFile(path string, env *Envelope) error {
	data, err := Encode(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeCompressed(f, data); err != nil {
		return err
	}
	return f.Sync()
}

// ReadFile reads a compressed save file and decodes it
func ReadFile(path string, n Normalizer) (*Envelope, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := readCompressed(f)
	if err != nil {
		return nil, err
	}
	return Decode(data, n)
}

func writeCompressed(w io.Writer, data []byte) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("zstd write: %w", err)
	}
	return enc.Close()
}

func readCompressed(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderMaxMemory(MaxDecodedSize))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("zstd read: %w", err)
	}
	return data, nil
}
