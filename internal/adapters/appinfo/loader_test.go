package appinfo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"appshelf/internal/domain"
	"appshelf/internal/vdf"
	"appshelf/internal/vdf/vdftest"
)

// shortStream claims more bytes than it can deliver
type shortStream struct {
	*bytes.Reader
	size int64
}

func (s shortStream) Size() int64 { return s.size }

func loadBytes(t *testing.T, opts Options, data []byte) (*domain.Catalog, domain.LoadStats) {
	t.Helper()
	catalog, stats, err := NewLoader(opts).LoadStream(context.Background(), bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadStream failed: %v", err)
	}
	return catalog, stats
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(zap.NewNop()) })
	return logs
}

func TestLoadStream_NoSignatures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"noise", []byte("no entries in here at all")},
		{"partial prefix", []byte{0x02, 0x00, 'c', 'o', 'm', 'm', 'o'}},
		{"wrong section byte", vdftest.New().Raw(0x01).Object("common").Int("gameid", 1).End().Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, stats := loadBytes(t, Options{}, tt.data)
			if catalog.Len() != 0 {
				t.Errorf("Len = %d, want 0", catalog.Len())
			}
			if stats.Matches != 0 || stats.Decoded != 0 || stats.Skipped != 0 {
				t.Errorf("stats = %+v, want no decode attempts", stats)
			}
			if stats.Bytes != int64(len(tt.data)) {
				t.Errorf("Bytes = %d, want %d", stats.Bytes, len(tt.data))
			}
		})
	}
}

func TestLoadStream_Entries(t *testing.T) {
	data := vdftest.New().
		Raw(0x00, 0x00, 0x01, 0x00). // header noise
		App(570, "Dota 2", "Game", "windows,macos,linux").
		Raw(0xFF, 0xFE).
		App(228980, "Steamworks Common Redistributables", "Tool", "").
		Common(func(c *vdftest.Builder) {
			c.String("gameid", "42")
			c.String("name", "String Id")
			c.Object("extended").String("developer", "someone").End()
		}).
		Bytes()

	catalog, stats := loadBytes(t, Options{}, data)

	if stats.Matches != 3 || stats.Decoded != 3 || stats.Inserted != 3 {
		t.Errorf("stats = %+v, want 3 matched, decoded and inserted", stats)
	}

	tests := []struct {
		id       int
		name     string
		appType  domain.AppType
		platform domain.Platforms
	}{
		{570, "Dota 2", domain.AppTypeGame, domain.PlatformAll},
		{228980, "Steamworks Common Redistributables", domain.AppTypeTool, domain.PlatformAll},
		{42, "String Id", domain.AppTypeUnknown, domain.PlatformAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, ok := catalog.Get(tt.id)
			if !ok {
				t.Fatalf("app %d missing", tt.id)
			}
			if app.DisplayName() != tt.name {
				t.Errorf("Name = %q, want %q", app.DisplayName(), tt.name)
			}
			if app.Type != tt.appType {
				t.Errorf("Type = %s, want %s", app.Type, tt.appType)
			}
			if app.Platforms != tt.platform {
				t.Errorf("Platforms = %s, want %s", app.Platforms, tt.platform)
			}
		})
	}
}

func TestLoadStream_Deterministic(t *testing.T) {
	data := vdftest.New().
		App(1, "One", "Game", "windows").
		App(2, "Two", "DLC", "linux").
		Bytes()

	first, _ := loadBytes(t, Options{}, data)
	second, _ := loadBytes(t, Options{}, data)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("catalogs differ:\n%+v\n%+v", first, second)
	}
}

func TestLoadStream_StrictPlatforms(t *testing.T) {
	data := vdftest.New().App(1, "One", "Game", "windows").Bytes()

	catalog, _ := loadBytes(t, Options{Extract: ExtractOptions{StrictPlatforms: true}}, data)
	app, _ := catalog.Get(1)
	if app.Platforms != domain.PlatformWindows {
		t.Errorf("Platforms = %s, want windows", app.Platforms)
	}
}

func TestLoadStream_Recovery(t *testing.T) {
	sig := append([]byte(nil), Signature...)

	tests := []struct {
		name        string
		data        []byte
		wantIDs     []int
		wantSkipped int
	}{
		{
			name: "short payload runs into next entry",
			data: vdftest.New().
				Raw(sig...).
				Raw(0x02, 'g', 'a', 'm', 'e', 'i', 'd', 0x00, 0x01, 0x00).
				App(20, "After", "Game", "").
				Bytes(),
			wantIDs:     []int{20},
			wantSkipped: 1,
		},
		{
			name: "unknown tag",
			data: vdftest.New().
				Raw(sig...).
				Raw(0x0F, 'x', 0x00).
				App(21, "After", "Game", "").
				Bytes(),
			wantIDs:     []int{21},
			wantSkipped: 1,
		},
		{
			name: "truncated at end of stream",
			data: vdftest.New().
				App(22, "Before", "Game", "").
				Raw(sig...).
				Raw(0x02, 'g', 'a').
				Bytes(),
			wantIDs:     []int{22},
			wantSkipped: 1,
		},
		{
			name: "missing end tag at end of stream",
			data: vdftest.New().
				App(23, "Before", "Game", "").
				Raw(sig...).
				Int("gameid", 24).
				Bytes(),
			wantIDs:     []int{23},
			wantSkipped: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, stats := loadBytes(t, Options{}, tt.data)
			if stats.Skipped != tt.wantSkipped {
				t.Errorf("Skipped = %d, want %d", stats.Skipped, tt.wantSkipped)
			}
			if catalog.Len() != len(tt.wantIDs) {
				t.Errorf("Len = %d, want %d", catalog.Len(), len(tt.wantIDs))
			}
			for _, id := range tt.wantIDs {
				if _, ok := catalog.Get(id); !ok {
					t.Errorf("app %d missing", id)
				}
			}
		})
	}
}

func TestLoadStream_LogsSkippedEntries(t *testing.T) {
	logs := observeLogs(t)

	data := vdftest.New().
		Raw(Signature...).
		Raw(0x0F).
		App(5, "Ok", "", "").
		Bytes()

	loadBytes(t, Options{}, data)

	skipped := logs.FilterMessage("skipping entry").All()
	if len(skipped) != 1 {
		t.Fatalf("got %d skip logs, want 1", len(skipped))
	}
	if got := skipped[0].ContextMap()["offset"]; got != int64(0) {
		t.Errorf("offset = %v, want 0", got)
	}
	if logs.FilterMessage("appinfo loaded").Len() != 1 {
		t.Error("expected a load summary log")
	}
}

func TestLoadStream_NoID(t *testing.T) {
	data := vdftest.New().
		Common(func(c *vdftest.Builder) { c.String("name", "No Id") }).
		Common(func(c *vdftest.Builder) { c.String("gameid", "abc") }).
		App(1, "One", "", "").
		Bytes()

	catalog, stats := loadBytes(t, Options{}, data)
	if stats.NoID != 2 {
		t.Errorf("NoID = %d, want 2", stats.NoID)
	}
	if catalog.Len() != 1 {
		t.Errorf("Len = %d, want 1", catalog.Len())
	}
}

func TestLoadStream_Duplicates(t *testing.T) {
	data := vdftest.New().
		App(5, "first", "Game", "").
		App(5, "second", "Tool", "").
		Bytes()

	tests := []struct {
		policy   domain.DuplicatePolicy
		wantName string
	}{
		{domain.DuplicateKeepFirst, "first"},
		{domain.DuplicateKeepLast, "second"},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			catalog, stats := loadBytes(t, Options{Duplicates: tt.policy}, data)
			if catalog.Len() != 1 {
				t.Fatalf("Len = %d, want 1", catalog.Len())
			}
			app, _ := catalog.Get(5)
			if *app.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", *app.Name, tt.wantName)
			}
			if stats.Duplicates != 1 {
				t.Errorf("Duplicates = %d, want 1", stats.Duplicates)
			}
		})
	}

	t.Run("error", func(t *testing.T) {
		loader := NewLoader(Options{Duplicates: domain.DuplicateError})
		_, _, err := loader.LoadStream(context.Background(), bytes.NewReader(data))
		var dupErr *domain.DuplicateIDError
		if !errors.As(err, &dupErr) {
			t.Fatalf("expected DuplicateIDError, got %v", err)
		}
		if dupErr.ID != 5 {
			t.Errorf("ID = %d, want 5", dupErr.ID)
		}
	})
}

func TestLoadStream_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := vdftest.New().App(1, "One", "", "").Bytes()
	_, _, err := NewLoader(Options{}).LoadStream(ctx, bytes.NewReader(data))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoadStream_IOErrorIsFatal(t *testing.T) {
	data := vdftest.New().App(1, "One", "", "").Bytes()
	s := shortStream{Reader: bytes.NewReader(data), size: int64(len(data)) + 100}

	_, stats, err := NewLoader(Options{}).LoadStream(context.Background(), s)
	var ioErr *vdf.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
	if stats.Inserted != 1 {
		t.Errorf("Inserted = %d, want 1 before the failure", stats.Inserted)
	}
}

func writeFixture(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appinfo.vdf")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeFixture(t, vdftest.New().
		App(10, "Counter-Strike", "Game", "windows").
		App(20, "Team Fortress Classic", "Game", "").
		Bytes())

	catalog, stats, err := NewLoader(Options{}).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if catalog.Len() != 2 {
		t.Errorf("Len = %d, want 2", catalog.Len())
	}
	if stats.Duration <= 0 {
		t.Error("expected a duration")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := NewLoader(Options{}).Load(context.Background(), filepath.Join(t.TempDir(), "nope.vdf"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestFindEntry(t *testing.T) {
	path := writeFixture(t, vdftest.New().
		App(10, "Counter-Strike", "Game", "").
		Common(func(c *vdftest.Builder) {
			c.Int("gameid", 20)
			c.String("name", "Team Fortress Classic")
			c.Object("extended").String("developer", "Valve").End()
		}).
		Bytes())

	loader := NewLoader(Options{})

	root, err := loader.FindEntry(context.Background(), path, 20)
	if err != nil {
		t.Fatalf("FindEntry failed: %v", err)
	}
	if got := root.Lookup("extended", "developer").Text(); got != "Valve" {
		t.Errorf("developer = %q, want %q", got, "Valve")
	}

	root, err = loader.FindEntry(context.Background(), path, 30)
	if err != nil {
		t.Fatalf("FindEntry failed: %v", err)
	}
	if root != nil {
		t.Errorf("expected no entry, got %q", root.Name)
	}
}

func TestFindEntry_Duplicates(t *testing.T) {
	path := writeFixture(t, vdftest.New().
		App(10, "first", "Game", "").
		App(10, "second", "Game", "").
		App(20, "other", "Game", "").
		Bytes())

	tests := []struct {
		policy domain.DuplicatePolicy
		want   string
	}{
		{domain.DuplicateKeepFirst, "first"},
		{domain.DuplicateKeepLast, "second"},
		{domain.DuplicateError, "first"},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			root, err := NewLoader(Options{Duplicates: tt.policy}).FindEntry(context.Background(), path, 10)
			if err != nil {
				t.Fatalf("FindEntry failed: %v", err)
			}
			if root == nil {
				t.Fatal("expected an entry")
			}
			if got := root.Lookup(KeyName).Text(); got != tt.want {
				t.Errorf("name = %q, want %q", got, tt.want)
			}
		})
	}
}

// countingStream records how many bytes were pulled from the underlying reader
type countingStream struct {
	*bytes.Reader
	read int64
}

func (s *countingStream) Read(p []byte) (int, error) {
	n, err := s.Reader.Read(p)
	s.read += int64(n)
	return n, err
}

func TestLoadStream_ReadsEachByteOnce(t *testing.T) {
	b := vdftest.New()
	for i := 1; i <= 2000; i++ {
		b.App(int32(i), "Some App", "Game", "windows")
	}
	data := b.Bytes()
	s := &countingStream{Reader: bytes.NewReader(data)}

	catalog, _, err := NewLoader(Options{}).LoadStream(context.Background(), s)
	if err != nil {
		t.Fatalf("LoadStream failed: %v", err)
	}
	if catalog.Len() != 2000 {
		t.Fatalf("Len = %d, want 2000", catalog.Len())
	}
	if s.read > int64(len(data))*2 {
		t.Errorf("read %d bytes from a %d byte stream", s.read, len(data))
	}
}

// BenchmarkLoad parses a real appinfo cache
func BenchmarkLoad(b *testing.B) {
	path := os.Getenv("APPINFO_PATH")
	if path == "" {
		b.Skip("APPINFO_PATH not set")
	}

	loader := NewLoader(Options{})

	b.ResetTimer()
	for b.Loop() {
		if _, _, err := loader.Load(context.Background(), path); err != nil {
			b.Fatalf("load failed: %v", err)
		}
	}
}
