// Package snapshot caches parsed catalogs on disk so an unchanged
// appinfo file does not have to be parsed again.
//
// A snapshot file is a fixed header followed by the body:
//
//	magic       4 bytes  "ASNP"
//	compression 1 byte   Compression tag
//	length      8 bytes  little-endian uncompressed body length
//	body        CBOR catalog, compressed per the tag
//
// Files are named <key>.snap, where the key starts with the BLAKE3
// digest of the source file.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"appshelf/internal/domain"
	"appshelf/internal/ports"
)

const (
	magic      = "ASNP"
	headerSize = len(magic) + 1 + 8
	extension  = ".snap"
)

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.\-]*$`)

// Store implements ports.SnapshotStore on a directory
type Store struct {
	dir         string
	compression Compression
}

// Ensure Store implements SnapshotStore
var _ ports.SnapshotStore = (*Store)(nil)

// NewStore creates a store writing snapshots to dir with the given codec
func NewStore(dir string, compression Compression) *Store {
	return &Store{dir: dir, compression: compression}
}

// Digest returns the hex BLAKE3 digest of the file at path
func (s *Store) Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash source: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get loads the snapshot stored under key. A missing, corrupt or
// outdated snapshot is a miss, not an error; only a failure to read an
// existing file is returned.
func (s *Store) Get(key string) (*domain.Catalog, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	catalog, err := unpack(data)
	if err != nil {
		Logger().Warn("discarding unreadable snapshot",
			zap.String("path", path),
			zap.Error(err))
		return nil, false, nil
	}

	Logger().Debug("snapshot hit",
		zap.String("key", key),
		zap.Int("apps", catalog.Len()))
	return catalog, true, nil
}

// Put writes catalog under key and removes every other snapshot in the
// directory. The file is written to a temporary name and renamed, so a
// reader never sees a partial snapshot.
func (s *Store) Put(key string, catalog *domain.Catalog) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	data, err := pack(catalog, s.compression)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".snap-*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	Logger().Debug("snapshot stored",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
		zap.Int("apps", catalog.Len()))

	return s.prune(filepath.Base(path))
}

// prune removes snapshots other than keep
func (s *Store) prune(keep string) error {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+extension))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if filepath.Base(m) == keep {
			continue
		}
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove old snapshot: %w", err)
		}
	}
	return nil
}

func (s *Store) path(key string) (string, error) {
	if !keyPattern.MatchString(key) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid snapshot key: %q", key)
	}
	return filepath.Join(s.dir, key+extension), nil
}

func pack(catalog *domain.Catalog, c Compression) ([]byte, error) {
	raw, err := encodeCatalog(catalog)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	body, used, err := compress(raw, c)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(headerSize + len(body))
	buf.WriteString(magic)
	buf.WriteByte(byte(used))
	_ = binary.Write(&buf, binary.LittleEndian, uint64(len(raw)))
	buf.Write(body)
	return buf.Bytes(), nil
}

func unpack(data []byte) (*domain.Catalog, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("snapshot is %d bytes, shorter than its header", len(data))
	}
	if string(data[:len(magic)]) != magic {
		return nil, errors.New("bad snapshot magic")
	}
	c := Compression(data[len(magic)])
	size := binary.LittleEndian.Uint64(data[len(magic)+1 : headerSize])
	if size > maxRawSize {
		return nil, fmt.Errorf("snapshot length %d is implausible", size)
	}

	raw, err := decompress(data[headerSize:], c, int(size))
	if err != nil {
		return nil, err
	}
	return decodeCatalog(raw)
}
