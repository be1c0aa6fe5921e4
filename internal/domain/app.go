package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// AppType is the classification Steam gives an application
type AppType int

const (
	AppTypeUnknown     AppType = iota // no type field present
	AppTypeApplication                // software that is not a game
	AppTypeDemo
	AppTypeAddOn // downloadable content
	AppTypeGame
	AppTypeMedia
	AppTypeTool
	AppTypeOther // type field present but not recognized
)

// AppTypes lists every classification in display order
var AppTypes = []AppType{
	AppTypeApplication,
	AppTypeDemo,
	AppTypeAddOn,
	AppTypeGame,
	AppTypeMedia,
	AppTypeTool,
	AppTypeOther,
	AppTypeUnknown,
}

func (t AppType) String() string {
	switch t {
	case AppTypeApplication:
		return "Application"
	case AppTypeDemo:
		return "Demo"
	case AppTypeAddOn:
		return "AddOn"
	case AppTypeGame:
		return "Game"
	case AppTypeMedia:
		return "Media"
	case AppTypeTool:
		return "Tool"
	case AppTypeOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// ParseAppType matches s case-insensitively against the known
// classification names. "dlc" is accepted for AddOn since that is what
// Steam writes.
func ParseAppType(s string) (AppType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "application":
		return AppTypeApplication, true
	case "demo":
		return AppTypeDemo, true
	case "addon", "dlc":
		return AppTypeAddOn, true
	case "game":
		return AppTypeGame, true
	case "media":
		return AppTypeMedia, true
	case "tool":
		return AppTypeTool, true
	case "other":
		return AppTypeOther, true
	case "unknown":
		return AppTypeUnknown, true
	default:
		return AppTypeUnknown, false
	}
}

// Platforms is a bit set of operating systems an app runs on
type Platforms uint8

const (
	PlatformWindows Platforms = 1 << iota
	PlatformMac
	PlatformLinux

	PlatformNone Platforms = 0
	PlatformAll            = PlatformWindows | PlatformMac | PlatformLinux
)

// platformNames maps each single platform bit to its name, in bit order
var platformNames = []struct {
	bit  Platforms
	name string
}{
	{PlatformWindows, "windows"},
	{PlatformMac, "mac"},
	{PlatformLinux, "linux"},
}

// Has reports whether every bit in q is set in p
func (p Platforms) Has(q Platforms) bool {
	return p&q == q
}

func (p Platforms) String() string {
	if p == PlatformNone {
		return "none"
	}
	var names []string
	for _, pn := range platformNames {
		if p.Has(pn.bit) {
			names = append(names, pn.name)
		}
	}
	return strings.Join(names, ",")
}

// PlatformNames returns the names used in oslist fields, one per platform
func PlatformNames() []string {
	names := make([]string, len(platformNames))
	for i, pn := range platformNames {
		names[i] = pn.name
	}
	return names
}

// PlatformFromName returns the bit for a single platform name
func PlatformFromName(name string) (Platforms, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, pn := range platformNames {
		if pn.name == name {
			return pn.bit, true
		}
	}
	if name == "macos" || name == "osx" {
		return PlatformMac, true
	}
	return PlatformNone, false
}

// ParsePlatforms parses a comma-separated list of platform names
func ParsePlatforms(s string) (Platforms, error) {
	var p Platforms
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		bit, ok := PlatformFromName(part)
		if !ok {
			return PlatformNone, fmt.Errorf("unknown platform: %q", strings.TrimSpace(part))
		}
		p |= bit
	}
	return p, nil
}

// App is one application record taken from the appinfo cache
type App struct {
	ID        int       // Steam app id, never negative
	Name      *string   // nil when the entry had no name field
	Type      AppType   // AppTypeUnknown when the entry had no type field
	Platforms Platforms // PlatformAll when the entry had no oslist field
}

// NewApp creates an app with the default type and platforms
func NewApp(id int) App {
	return App{ID: id, Type: AppTypeUnknown, Platforms: PlatformAll}
}

// HasName reports whether the source provided a name
func (a App) HasName() bool {
	return a.Name != nil
}

// DisplayName returns the name, or a placeholder built from the id
func (a App) DisplayName() string {
	if a.Name != nil && *a.Name != "" {
		return *a.Name
	}
	return "App " + strconv.Itoa(a.ID)
}

// StoreURI returns the steam:// URI for the app's store page
func (a App) StoreURI() string {
	return fmt.Sprintf("steam://store/%d", a.ID)
}

// StringPtr is a helper for building App values with a name
func StringPtr(s string) *string {
	return &s
}
