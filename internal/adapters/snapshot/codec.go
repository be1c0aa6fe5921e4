package snapshot

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"appshelf/internal/domain"
)

// formatVersion changes whenever the encoded layout does
const formatVersion = 1

// encMode uses Core Deterministic Encoding so the same catalog always
// yields the same bytes.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

type appRecord struct {
	ID        int     `cbor:"1,keyasint"`
	Name      *string `cbor:"2,keyasint,omitempty"`
	Type      string  `cbor:"3,keyasint"`
	Platforms uint8   `cbor:"4,keyasint"`
}

type catalogRecord struct {
	Version int         `cbor:"1,keyasint"`
	Policy  string      `cbor:"2,keyasint"`
	Apps    []appRecord `cbor:"3,keyasint"`
}

func encodeCatalog(c *domain.Catalog) ([]byte, error) {
	apps := c.Sorted()
	rec := catalogRecord{
		Version: formatVersion,
		Policy:  c.Policy.String(),
		Apps:    make([]appRecord, len(apps)),
	}
	for i, app := range apps {
		rec.Apps[i] = appRecord{
			ID:        app.ID,
			Name:      app.Name,
			Type:      app.Type.String(),
			Platforms: uint8(app.Platforms),
		}
	}
	return encMode.Marshal(rec)
}

func decodeCatalog(data []byte) (*domain.Catalog, error) {
	var rec catalogRecord
	if err := decMode.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if rec.Version != formatVersion {
		return nil, fmt.Errorf("snapshot format version %d, want %d", rec.Version, formatVersion)
	}
	policy, err := domain.ParseDuplicatePolicy(rec.Policy)
	if err != nil {
		return nil, err
	}

	c := domain.NewCatalog(policy)
	for _, r := range rec.Apps {
		t, ok := domain.ParseAppType(r.Type)
		if !ok {
			return nil, fmt.Errorf("snapshot app %d: unknown type %q", r.ID, r.Type)
		}
		c.Apps[r.ID] = domain.App{
			ID:        r.ID,
			Name:      r.Name,
			Type:      t,
			Platforms: domain.Platforms(r.Platforms) & domain.PlatformAll,
		}
	}
	return c, nil
}
