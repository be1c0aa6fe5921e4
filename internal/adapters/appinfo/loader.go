package appinfo

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"appshelf/internal/domain"
	"appshelf/internal/ports"
	"appshelf/internal/vdf"
)

// Options configures a Loader
type Options struct {
	Duplicates domain.DuplicatePolicy
	Extract    ExtractOptions
}

// Loader reads an appinfo cache into a catalog. It implements
// ports.CatalogSource.
type Loader struct {
	opts Options
}

// Ensure Loader implements CatalogSource and EntrySource
var (
	_ ports.CatalogSource = (*Loader)(nil)
	_ ports.EntrySource   = (*Loader)(nil)
)

// NewLoader creates a loader with the given options
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts}
}

// Options returns the loader's configuration
func (l *Loader) Options() Options {
	return l.opts
}

// Load opens the file at path read-only and loads every entry in it.
// The file is closed before Load returns.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Catalog, domain.LoadStats, error) {
	var (
		catalog *domain.Catalog
		stats   domain.LoadStats
	)
	err := withStream(path, func(s vdf.Stream) error {
		var err error
		catalog, stats, err = l.LoadStream(ctx, s)
		return err
	})
	if err != nil {
		return nil, stats, err
	}
	return catalog, stats, nil
}

// LoadStream loads every entry found in s. On failure the partial stats
// are still returned.
func (l *Loader) LoadStream(ctx context.Context, s vdf.Stream) (*domain.Catalog, domain.LoadStats, error) {
	var stats domain.LoadStats
	catalog, err := l.loadInto(ctx, s, &stats)
	if err != nil {
		return nil, stats, err
	}
	return catalog, stats, nil
}

// FindEntry scans the file at path for the entry whose id is id and
// returns its decoded tree, or nil if no entry has that id. When ids
// repeat it returns the entry Load would keep: the last one under
// DuplicateKeepLast, the first otherwise.
func (l *Loader) FindEntry(ctx context.Context, path string, id int) (*vdf.Node, error) {
	var found *vdf.Node
	keepLast := l.opts.Duplicates == domain.DuplicateKeepLast
	err := withStream(path, func(s vdf.Stream) error {
		var stats domain.LoadStats
		return l.scan(ctx, s, &stats, func(root *vdf.Node, _ int64) (bool, error) {
			app, ok := Extract(root, l.opts.Extract)
			if ok && app.ID == id {
				found = root
				return !keepLast, nil
			}
			return false, nil
		})
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func withStream(path string, fn func(vdf.Stream) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open appinfo: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat appinfo: %w", err)
	}
	return fn(io.NewSectionReader(f, 0, info.Size()))
}

func (l *Loader) loadInto(ctx context.Context, s vdf.Stream, stats *domain.LoadStats) (*domain.Catalog, error) {
	start := time.Now()
	catalog := domain.NewCatalog(l.opts.Duplicates)

	err := l.scan(ctx, s, stats, func(root *vdf.Node, offset int64) (bool, error) {
		app, ok := Extract(root, l.opts.Extract)
		if !ok {
			stats.NoID++
			return false, nil
		}
		if _, exists := catalog.Get(app.ID); exists {
			stats.Duplicates++
			Logger().Debug("duplicate app id",
				zap.Int("id", app.ID),
				zap.Int64("offset", offset),
				zap.Stringer("policy", l.opts.Duplicates))
		}
		inserted, err := catalog.Insert(app)
		if err != nil {
			return true, err
		}
		if inserted {
			stats.Inserted++
		}
		return false, nil
	})
	stats.Duration = time.Since(start)
	if err != nil {
		return nil, err
	}

	Logger().Info("appinfo loaded",
		zap.Int("apps", catalog.Len()),
		zap.Int("matches", stats.Matches),
		zap.Int("skipped", stats.Skipped),
		zap.Int("no_id", stats.NoID),
		zap.Int("duplicates", stats.Duplicates),
		zap.Duration("duration", stats.Duration))

	return catalog, nil
}

type scanState int

const (
	stateSeeking scanState = iota
	stateDecoding
	stateEmitting
	stateDone
)

// emitFunc receives each decoded entry and the offset of its signature.
// Returning true stops the scan.
type emitFunc func(root *vdf.Node, offset int64) (bool, error)

// scan runs the seek/decode/emit loop over s. A decode failure drops the
// entry and the search resumes one byte past where its signature starts,
// so every iteration moves forward. Only I/O failures, emit errors and
// context cancellation end the scan early.
func (l *Loader) scan(ctx context.Context, s vdf.Stream, stats *domain.LoadStats, emit emitFunc) error {
	cur, err := vdf.NewCursor(s)
	if err != nil {
		return err
	}
	stats.Bytes = cur.Size()
	dec := vdf.NewDecoder(cur)

	var (
		state   = stateSeeking
		matchAt int64
		root    *vdf.Node
	)

	for state != stateDone {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch state {
		case stateSeeking:
			at, found, err := cur.SeekTo(Signature)
			if err != nil {
				return fmt.Errorf("scanning appinfo: %w", err)
			}
			if !found {
				state = stateDone
				continue
			}
			stats.Matches++
			matchAt = at
			state = stateDecoding

		case stateDecoding:
			root, _, err = dec.DecodeRoot(AnchorKey)
			if err != nil {
				if !vdf.IsRecoverable(err) {
					return fmt.Errorf("decoding entry at offset %d: %w", matchAt, err)
				}
				stats.Skipped++
				Logger().Debug("skipping entry",
					zap.Int64("offset", matchAt),
					zap.Error(err))
				if err := cur.Seek(matchAt + 1); err != nil {
					return err
				}
				state = stateSeeking
				continue
			}
			stats.Decoded++
			state = stateEmitting

		case stateEmitting:
			stop, err := emit(root, matchAt)
			root = nil
			if err != nil {
				return err
			}
			if stop {
				state = stateDone
				continue
			}
			state = stateSeeking
		}
	}
	return nil
}
