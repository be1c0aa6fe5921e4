package snapshot

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a snapshot body is compressed. The value
// is stored in the snapshot header, so existing values must not change.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionLZ4  Compression = 1
	CompressionZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses "none", "lz4" or "zstd"
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", name)
	}
}

// maxRawSize caps the uncompressed length a snapshot header may claim
const maxRawSize = 1 << 30

// lz4MaxRatio is the most an LZ4 block can expand: each 255 bytes of
// output need at least one byte of input.
const lz4MaxRatio = 255

// errIncompressible means compressing would not shrink the data; the
// body is then stored as-is.
var errIncompressible = errors.New("data is incompressible")

// zstd encoders and decoders are safe for concurrent use and costly to
// build, so one of each is shared.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("snapshot: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxRawSize))
	if err != nil {
		panic("snapshot: zstd decoder initialization failed: " + err.Error())
	}
}

// compress returns the body to store and the codec actually used, which
// falls back to CompressionNone for incompressible input.
func compress(data []byte, c Compression) ([]byte, Compression, error) {
	var (
		out []byte
		err error
	)
	switch c {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionLZ4:
		out, err = compressLZ4(data)
	case CompressionZstd:
		out, err = compressZstd(data)
	default:
		return nil, 0, fmt.Errorf("unsupported compression: %s", c)
	}
	if errors.Is(err, errIncompressible) {
		return data, CompressionNone, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return out, c, nil
}

// decompress reverses compress. size must be the exact original length;
// a size the body could not possibly expand to is rejected before any
// output buffer is allocated.
func decompress(body []byte, c Compression, size int) ([]byte, error) {
	if size < 0 || size > maxRawSize {
		return nil, fmt.Errorf("claimed length %d exceeds limit of %d bytes", size, maxRawSize)
	}
	switch c {
	case CompressionNone:
		if len(body) != size {
			return nil, fmt.Errorf("stored body is %d bytes, expected %d", len(body), size)
		}
		return body, nil
	case CompressionLZ4:
		return decompressLZ4(body, size)
	case CompressionZstd:
		return decompressZstd(body, size)
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 || n >= len(data) {
		return nil, errIncompressible
	}
	return dst[:n], nil
}

func decompressLZ4(body []byte, size int) ([]byte, error) {
	if size > len(body)*lz4MaxRatio {
		return nil, fmt.Errorf("lz4 decompress: %d bytes cannot expand to %d", len(body), size)
	}
	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(body, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if n != size {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", n, size)
	}
	return dst, nil
}

func compressZstd(data []byte) ([]byte, error) {
	out := zstdEncoder.EncodeAll(data, nil)
	if len(out) >= len(data) {
		return nil, errIncompressible
	}
	return out, nil
}

func decompressZstd(body []byte, size int) ([]byte, error) {
	// the frame may not match the claimed size, so only a bounded guess
	// is preallocated
	out, err := zstdDecoder.DecodeAll(body, make([]byte, 0, min(size, len(body)*lz4MaxRatio)))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(out) != size {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(out), size)
	}
	return out, nil
}
