package domain

import (
	"errors"
	"testing"
)

func TestCatalogInsert_Policies(t *testing.T) {
	first := App{ID: 7, Name: StringPtr("first"), Platforms: PlatformAll}
	second := App{ID: 7, Name: StringPtr("second"), Platforms: PlatformAll}

	tests := []struct {
		name         string
		policy       DuplicatePolicy
		wantInserted bool
		wantErr      bool
		wantName     string
	}{
		{name: "keep first", policy: DuplicateKeepFirst, wantInserted: false, wantName: "first"},
		{name: "keep last", policy: DuplicateKeepLast, wantInserted: true, wantName: "second"},
		{name: "error", policy: DuplicateError, wantErr: true, wantName: "first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog(tt.policy)
			if ok, err := c.Insert(first); !ok || err != nil {
				t.Fatalf("first insert = %v, %v", ok, err)
			}

			inserted, err := c.Insert(second)
			if inserted != tt.wantInserted {
				t.Errorf("inserted = %v, want %v", inserted, tt.wantInserted)
			}
			if tt.wantErr {
				var dup *DuplicateIDError
				if !errors.As(err, &dup) || dup.ID != 7 {
					t.Errorf("expected DuplicateIDError for 7, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if c.Len() != 1 {
				t.Errorf("Len() = %d, want 1", c.Len())
			}
			got, _ := c.Get(7)
			if *got.Name != tt.wantName {
				t.Errorf("stored name = %q, want %q", *got.Name, tt.wantName)
			}
		})
	}
}

func TestParseDuplicatePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    DuplicatePolicy
		wantErr bool
	}{
		{"", DuplicateKeepFirst, false},
		{"first", DuplicateKeepFirst, false},
		{"LAST", DuplicateKeepLast, false},
		{"error", DuplicateError, false},
		{"random", DuplicateKeepFirst, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuplicatePolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if !tt.wantErr && tt.input != "" {
				if back, _ := ParseDuplicatePolicy(got.String()); back != got {
					t.Errorf("String() round trip failed for %v", got)
				}
			}
		})
	}
}

func testCatalog() *Catalog {
	c := NewCatalog(DuplicateKeepFirst)
	c.Insert(App{ID: 570, Name: StringPtr("Dota 2"), Type: AppTypeGame, Platforms: PlatformAll})
	c.Insert(App{ID: 10, Name: StringPtr("Counter-Strike"), Type: AppTypeGame, Platforms: PlatformWindows})
	c.Insert(App{ID: 228980, Name: StringPtr("Steamworks Common Redistributables"), Type: AppTypeTool, Platforms: PlatformWindows | PlatformLinux})
	c.Insert(App{ID: 5, Type: AppTypeUnknown, Platforms: PlatformAll})
	return c
}

func TestCatalogSorted(t *testing.T) {
	apps := testCatalog().Sorted()

	want := []int{5, 10, 570, 228980}
	if len(apps) != len(want) {
		t.Fatalf("got %d apps, want %d", len(apps), len(want))
	}
	for i, id := range want {
		if apps[i].ID != id {
			t.Errorf("apps[%d].ID = %d, want %d", i, apps[i].ID, id)
		}
	}
}

func TestCatalogList(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name   string
		filter Filter
		want   []int
	}{
		{name: "no filter", filter: Filter{}, want: []int{5, 10, 570, 228980}},
		{name: "games", filter: Filter{Types: []AppType{AppTypeGame}}, want: []int{10, 570}},
		{name: "linux", filter: Filter{Platforms: PlatformLinux}, want: []int{5, 570, 228980}},
		{name: "linux tools", filter: Filter{Types: []AppType{AppTypeTool}, Platforms: PlatformLinux}, want: []int{228980}},
		{name: "limit", filter: Filter{Limit: 2}, want: []int{5, 10}},
		{name: "nothing", filter: Filter{Types: []AppType{AppTypeMedia}}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps := c.List(tt.filter)
			if len(apps) != len(tt.want) {
				t.Fatalf("got %d apps, want %d", len(apps), len(tt.want))
			}
			for i, id := range tt.want {
				if apps[i].ID != id {
					t.Errorf("apps[%d].ID = %d, want %d", i, apps[i].ID, id)
				}
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(testCatalog())

	if s.Total != 4 {
		t.Errorf("Total = %d, want 4", s.Total)
	}
	if s.Named != 3 {
		t.Errorf("Named = %d, want 3", s.Named)
	}
	if s.ByType[AppTypeGame] != 2 {
		t.Errorf("games = %d, want 2", s.ByType[AppTypeGame])
	}
	if s.ByPlatform["windows"] != 4 {
		t.Errorf("windows = %d, want 4", s.ByPlatform["windows"])
	}
	if s.ByPlatform["mac"] != 2 {
		t.Errorf("mac = %d, want 2", s.ByPlatform["mac"])
	}
}
