package appinfo

import (
	"math"
	"strconv"
	"strings"

	"appshelf/internal/domain"
	"appshelf/internal/vdf"
)

// ExtractOptions tunes how a decoded entry becomes a record
type ExtractOptions struct {
	// StrictPlatforms makes the oslist field narrow the platform set
	// instead of only adding to the all-platforms default. An absent
	// field, or one naming no known platform, still means all platforms.
	StrictPlatforms bool
}

// Extract builds an app record from the root of one decoded entry.
// It reports false when the entry has no usable id; such entries are
// routine and carry no error.
func Extract(root *vdf.Node, opts ExtractOptions) (domain.App, bool) {
	if root == nil || root.Kind != vdf.KindObject {
		return domain.App{}, false
	}

	id, ok := extractID(root.Lookup(KeyID))
	if !ok {
		return domain.App{}, false
	}

	app := domain.NewApp(id)

	if n := root.Lookup(KeyName); n != nil {
		name := n.Text()
		app.Name = &name
	}

	app.Type = extractType(root.Lookup(KeyType))
	app.Platforms = extractPlatforms(root.Lookup(KeyPlatforms), opts.StrictPlatforms)

	return app, true
}

// extractID accepts an int leaf or a string leaf holding a decimal int32
func extractID(n *vdf.Node) (int, bool) {
	if n == nil {
		return 0, false
	}

	var id int64
	switch n.Kind {
	case vdf.KindInt:
		id = int64(n.Int)
	case vdf.KindString:
		v, err := strconv.ParseInt(strings.TrimSpace(n.Str), 10, 32)
		if err != nil {
			return 0, false
		}
		id = v
	case vdf.KindObject, vdf.KindOther:
		return 0, false
	default:
		return 0, false
	}

	if id < 0 || id > math.MaxInt32 {
		return 0, false
	}
	return int(id), true
}

// extractType keeps absent, unrecognized and recognized apart:
// no field is Unknown, a field that names nothing known is Other.
func extractType(n *vdf.Node) domain.AppType {
	if n == nil {
		return domain.AppTypeUnknown
	}
	if t, ok := domain.ParseAppType(n.Text()); ok {
		return t
	}
	return domain.AppTypeOther
}

func extractPlatforms(n *vdf.Node, strict bool) domain.Platforms {
	if n == nil {
		return domain.PlatformAll
	}

	found := domain.PlatformNone
	text := strings.ToLower(n.Text())
	for _, name := range domain.PlatformNames() {
		if strings.Contains(text, name) {
			bit, _ := domain.PlatformFromName(name)
			found |= bit
		}
	}

	if !strict {
		return domain.PlatformAll | found
	}
	if found == domain.PlatformNone {
		return domain.PlatformAll
	}
	return found
}
