// Package lint checks every post under a content root for front-matter
// problems without modifying anything.
package lint

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/harlowe/plume/internal/frontmatter"
	"github.com/harlowe/plume/internal/storage"
)

// Finding is one warning for one file.
type Finding struct {
	Path    string
	Field   string
	Message string
}

// Report aggregates a full run. Warnings are authoring problems the parser
// tolerated; ReadErrors are files that could not be read at all. Only the
// latter should fail a run.
type Report struct {
	Checked    int
	Warnings   []Finding
	ReadErrors []storage.FileError
}

// Run parses every markdown file the store can list, in parallel, and
// collects diagnostics. A file that fails to read is reported and skipped;
// it never aborts the rest of the run.
func Run(ctx context.Context, store storage.Provider) (*Report, error) {
	posts, failures, err := store.List(".")
	if err != nil {
		return nil, fmt.Errorf("lint: list posts: %w", err)
	}

	report := &Report{ReadErrors: failures}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, p := range posts {
		path := p.Path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := store.Read(path)
			if err != nil {
				mu.Lock()
				report.ReadErrors = append(report.ReadErrors, storage.FileError{Path: path, Err: err})
				mu.Unlock()
				return nil
			}
			res := frontmatter.Parse(data)

			mu.Lock()
			report.Checked++
			for _, d := range res.Diagnostics {
				report.Warnings = append(report.Warnings, Finding{Path: path, Field: d.Field, Message: d.Message})
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Warnings, func(i, j int) bool {
		if report.Warnings[i].Path != report.Warnings[j].Path {
			return report.Warnings[i].Path < report.Warnings[j].Path
		}
		return report.Warnings[i].Field < report.Warnings[j].Field
	})
	sort.Slice(report.ReadErrors, func(i, j int) bool {
		return report.ReadErrors[i].Path < report.ReadErrors[j].Path
	})
	return report, nil
}
