package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"appshelf/internal/domain"
)

func testCatalog(n int) *domain.Catalog {
	c := domain.NewCatalog(domain.DuplicateKeepLast)
	for i := range n {
		app := domain.NewApp(i * 10)
		if i%3 != 0 {
			app.Name = domain.StringPtr(fmt.Sprintf("Game number %d", i))
		}
		app.Type = domain.AppTypes[i%len(domain.AppTypes)]
		app.Platforms = domain.Platforms(i%7 + 1)
		c.Apps[app.ID] = app
	}
	return c
}

func TestStore_RoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		compression Compression
		apps        int
	}{
		{"zstd", CompressionZstd, 500},
		{"lz4", CompressionLZ4, 500},
		{"none", CompressionNone, 50},
		{"tiny falls back to none", CompressionZstd, 1},
		{"empty", CompressionLZ4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(t.TempDir(), tt.compression)
			want := testCatalog(tt.apps)

			if err := store.Put("abc123.first-false", want); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			got, ok, err := store.Get("abc123.first-false")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if !ok {
				t.Fatal("expected a hit")
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("catalog changed in round trip")
			}
		})
	}
}

func TestStore_Miss(t *testing.T) {
	store := NewStore(t.TempDir(), CompressionZstd)

	_, ok, err := store.Get("missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected a miss")
	}
}

func TestStore_CorruptSnapshotIsMiss(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte("AS")},
		{"bad magic", []byte("XXXX\x00\x01\x00\x00\x00\x00\x00\x00\x00\x00")},
		{"length mismatch", []byte("ASNP\x00\x05\x00\x00\x00\x00\x00\x00\x00\x01")},
		{"bad codec", []byte("ASNP\x09\x01\x00\x00\x00\x00\x00\x00\x00\x00")},
		{"not cbor", []byte("ASNP\x00\x01\x00\x00\x00\x00\x00\x00\x00\xff")},
		{"lz4 huge length", []byte("ASNP\x01\x00\x00\x00\xc0\x00\x00\x00\x00\x10\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "key.snap"), tt.data, 0644); err != nil {
				t.Fatal(err)
			}

			_, ok, err := NewStore(dir, CompressionZstd).Get("key")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if ok {
				t.Error("expected a miss")
			}
		})
	}
}

func TestDecompress_RejectsImplausibleLength(t *testing.T) {
	body := []byte{0x10, 0x00, 0x00, 0x00}

	tests := []struct {
		name string
		c    Compression
		size int
	}{
		{"over limit", CompressionZstd, maxRawSize + 1},
		{"negative", CompressionNone, -1},
		{"lz4 beyond ratio", CompressionLZ4, len(body)*lz4MaxRatio + 1},
		{"lz4 near limit", CompressionLZ4, maxRawSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decompress(body, tt.c, tt.size); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestStore_PutPrunesOldSnapshots(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, CompressionZstd)

	if err := store.Put("old", testCatalog(3)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put("new", testCatalog(4)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*"))
	if len(matches) != 1 || filepath.Base(matches[0]) != "new.snap" {
		t.Errorf("directory holds %v, want only new.snap", matches)
	}
}

func TestStore_InvalidKey(t *testing.T) {
	store := NewStore(t.TempDir(), CompressionZstd)

	for _, key := range []string{"", "../escape", "a/b", "UPPER"} {
		if err := store.Put(key, testCatalog(1)); err == nil {
			t.Errorf("Put(%q) succeeded, want error", key)
		}
	}
}

func TestStore_Digest(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	os.WriteFile(a, []byte("appinfo one"), 0644)
	os.WriteFile(b, []byte("appinfo two"), 0644)

	store := NewStore(dir, CompressionZstd)

	da, err := store.Digest(a)
	if err != nil {
		t.Fatalf("Digest failed: %v", err)
	}
	if len(da) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(da))
	}
	again, _ := store.Digest(a)
	if again != da {
		t.Error("digest is not stable")
	}
	db, _ := store.Digest(b)
	if db == da {
		t.Error("different files share a digest")
	}

	if _, err := store.Digest(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEncodeCatalog_Deterministic(t *testing.T) {
	first, err := encodeCatalog(testCatalog(100))
	if err != nil {
		t.Fatal(err)
	}
	second, err := encodeCatalog(testCatalog(100))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("encoding differs between identical catalogs")
	}
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in      string
		want    Compression
		wantErr bool
	}{
		{"zstd", CompressionZstd, false},
		{"", CompressionZstd, false},
		{"lz4", CompressionLZ4, false},
		{"none", CompressionNone, false},
		{"gzip", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompression(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
