// builder.go turns a skills tree into a Snapshot.
//
// Build runs the scanner then extracts content for every record in
// parallel. Each worker writes only its own slot of a preallocated slice
// and the slots are concatenated in record order, so the result does not
// depend on scheduling.

package index

import (
	"context"
	"io/fs"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/skilld/internal/skill"
)

// Builder reads a skills tree through an fs.FS.
type Builder struct {
	FS     fs.FS
	Root   string // shown in errors
	Layout skill.Layout

	// Workers bounds parallel extraction. Zero uses GOMAXPROCS.
	Workers int

	now func() time.Time
}

// NewBuilder returns a builder over fsys using the given layout.
func NewBuilder(fsys fs.FS, root string, layout skill.Layout) *Builder {
	return &Builder{FS: fsys, Root: root, Layout: layout}
}

// Build scans and extracts the whole tree. The returned snapshot is not
// yet published and has generation 0.
func (b *Builder) Build(ctx context.Context) (*Snapshot, error) {
	res, err := skill.Scan(b.FS, b.Layout)
	if err != nil {
		return nil, &ScanError{Root: b.Root, Err: err}
	}

	content, err := b.extract(ctx, res.Records)
	if err != nil {
		return nil, err
	}
	return newSnapshot(res.Records, content, res.Errors, b.clock(), 0), nil
}

func (b *Builder) extract(ctx context.Context, records []skill.Record) ([]*skill.Content, error) {
	parts := make([][]*skill.Content, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers())
	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i] = skill.Extract(b.FS, rec, b.Layout)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slices.Concat(parts...), nil
}

func (b *Builder) workers() int {
	if b.Workers > 0 {
		return b.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (b *Builder) clock() time.Time {
	if b.now != nil {
		return b.now()
	}
	return time.Now()
}
