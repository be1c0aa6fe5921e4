package appinfo

import (
	"testing"

	"appshelf/internal/domain"
	"appshelf/internal/vdf"
)

func common(children ...*vdf.Node) *vdf.Node {
	return vdf.NewObject(AnchorKey, children...)
}

func TestExtract_ID(t *testing.T) {
	tests := []struct {
		name   string
		id     *vdf.Node
		wantID int
		wantOK bool
	}{
		{"int leaf", vdf.NewInt(KeyID, 570), 570, true},
		{"zero", vdf.NewInt(KeyID, 0), 0, true},
		{"string leaf", vdf.NewString(KeyID, "42"), 42, true},
		{"string with spaces", vdf.NewString(KeyID, " 42 "), 42, true},
		{"not a number", vdf.NewString(KeyID, "abc"), 0, false},
		{"negative int", vdf.NewInt(KeyID, -1), 0, false},
		{"negative string", vdf.NewString(KeyID, "-7"), 0, false},
		{"out of int32 range", vdf.NewString(KeyID, "4294967296"), 0, false},
		{"object", vdf.NewObject(KeyID), 0, false},
		{"other leaf", vdf.NewOther(KeyID, vdf.TagUint64, make([]byte, 8)), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, ok := Extract(common(tt.id), ExtractOptions{})
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && app.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", app.ID, tt.wantID)
			}
		})
	}
}

func TestExtract_NoRecord(t *testing.T) {
	tests := []struct {
		name string
		root *vdf.Node
	}{
		{"nil root", nil},
		{"leaf root", vdf.NewInt(KeyID, 10)},
		{"missing id", common(vdf.NewString(KeyName, "No Id"))},
		{"id nested too deep", common(vdf.NewObject("extended", vdf.NewInt(KeyID, 10)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Extract(tt.root, ExtractOptions{}); ok {
				t.Error("expected no record")
			}
		})
	}
}

func TestExtract_Defaults(t *testing.T) {
	app, ok := Extract(common(vdf.NewInt(KeyID, 10)), ExtractOptions{})
	if !ok {
		t.Fatal("expected a record")
	}
	if app.HasName() {
		t.Errorf("Name = %q, want absent", *app.Name)
	}
	if app.Type != domain.AppTypeUnknown {
		t.Errorf("Type = %s, want Unknown", app.Type)
	}
	if app.Platforms != domain.PlatformAll {
		t.Errorf("Platforms = %s, want all", app.Platforms)
	}
}

func TestExtract_Name(t *testing.T) {
	tests := []struct {
		name string
		node *vdf.Node
		want string
	}{
		{"string", vdf.NewString(KeyName, "Dota 2"), "Dota 2"},
		{"empty string", vdf.NewString(KeyName, ""), ""},
		{"int", vdf.NewInt(KeyName, 7), "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, ok := Extract(common(vdf.NewInt(KeyID, 1), tt.node), ExtractOptions{})
			if !ok {
				t.Fatal("expected a record")
			}
			if !app.HasName() {
				t.Fatal("expected a name")
			}
			if *app.Name != tt.want {
				t.Errorf("Name = %q, want %q", *app.Name, tt.want)
			}
		})
	}
}

func TestExtract_Type(t *testing.T) {
	tests := []struct {
		value string
		want  domain.AppType
	}{
		{"Game", domain.AppTypeGame},
		{"game", domain.AppTypeGame},
		{"GAME", domain.AppTypeGame},
		{"Application", domain.AppTypeApplication},
		{"Demo", domain.AppTypeDemo},
		{"DLC", domain.AppTypeAddOn},
		{"addon", domain.AppTypeAddOn},
		{"Media", domain.AppTypeMedia},
		{"Tool", domain.AppTypeTool},
		{"widget", domain.AppTypeOther},
		{"", domain.AppTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			root := common(vdf.NewInt(KeyID, 1), vdf.NewString(KeyType, tt.value))
			app, _ := Extract(root, ExtractOptions{})
			if app.Type != tt.want {
				t.Errorf("Type = %s, want %s", app.Type, tt.want)
			}
		})
	}
}

func TestExtract_Platforms(t *testing.T) {
	tests := []struct {
		name   string
		oslist *vdf.Node
		strict bool
		want   domain.Platforms
	}{
		{"absent", nil, false, domain.PlatformAll},
		{"windows only is additive", vdf.NewString(KeyPlatforms, "windows"), false, domain.PlatformAll},
		{"unknown names", vdf.NewString(KeyPlatforms, "amiga"), false, domain.PlatformAll},
		{"strict absent", nil, true, domain.PlatformAll},
		{"strict windows", vdf.NewString(KeyPlatforms, "windows"), true, domain.PlatformWindows},
		{"strict mixed case", vdf.NewString(KeyPlatforms, "Windows,MacOS"), true, domain.PlatformWindows | domain.PlatformMac},
		{"strict all three", vdf.NewString(KeyPlatforms, "windows,macos,linux"), true, domain.PlatformAll},
		{"strict names nothing", vdf.NewString(KeyPlatforms, "amiga"), true, domain.PlatformAll},
		{"strict empty", vdf.NewString(KeyPlatforms, ""), true, domain.PlatformAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := common(vdf.NewInt(KeyID, 1))
			if tt.oslist != nil {
				root.Children = append(root.Children, tt.oslist)
			}
			app, ok := Extract(root, ExtractOptions{StrictPlatforms: tt.strict})
			if !ok {
				t.Fatal("expected a record")
			}
			if app.Platforms != tt.want {
				t.Errorf("Platforms = %s, want %s", app.Platforms, tt.want)
			}
		})
	}
}

func TestExtract_FirstKeyWins(t *testing.T) {
	root := common(
		vdf.NewInt(KeyID, 1),
		vdf.NewString(KeyName, "first"),
		vdf.NewInt(KeyID, 2),
		vdf.NewString(KeyName, "second"),
	)
	app, ok := Extract(root, ExtractOptions{})
	if !ok {
		t.Fatal("expected a record")
	}
	if app.ID != 1 || *app.Name != "first" {
		t.Errorf("got %d %q, want 1 %q", app.ID, *app.Name, "first")
	}
}
