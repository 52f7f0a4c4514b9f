package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/qri-io/debugdiff"
	"github.com/qri-io/debugdiff/internal/config"
	"github.com/qri-io/debugdiff/internal/log"
	"github.com/qri-io/debugdiff/parse"
)

// document is one side of the comparison. A document that doesn't parse has
// a nil value & a non-nil err
type document struct {
	label string
	path  string
	value debugdiff.Value
	err   error
}

func (d *document) status() string {
	if d.err != nil {
		return "err: " + d.err.Error()
	}
	return "ok"
}

// report is the json output format
type report struct {
	Left        string           `json:"left"`
	Right       string           `json:"right"`
	Differences debugdiff.Deltas `json:"differences"`
	Stats       *debugdiff.Stats `json:"stats,omitempty"`
}

func run(ctx context.Context, w io.Writer, cfg *config.Config, leftPath, rightPath string, exitCode bool) error {
	left := &document{label: " left", path: leftPath}
	right := &document{label: "right", path: rightPath}
	if err := load(ctx, cfg, left, right); err != nil {
		return err
	}

	var (
		dts   debugdiff.Deltas
		stats *debugdiff.Stats
	)
	if left.err == nil && right.err == nil {
		if cfg.Stats {
			stats = &debugdiff.Stats{}
		}
		start := time.Now()
		dts = debugdiff.Diff(left.value, right.value, cfg.DiffOptions(stats)...)
		log.WithField("took", time.Since(start)).Debugf("found %d differences", len(dts))
	}

	var err error
	if cfg.Format == config.FormatJSON {
		err = writeJSON(w, left, right, dts, stats)
	} else {
		err = writePretty(w, useColor(cfg.Color, w), left, right, dts, stats)
	}
	if err != nil {
		return err
	}

	if exitCode && len(dts) > 0 {
		return errDifferences
	}
	return nil
}

// load reads & parses documents concurrently. Unreadable files fail the
// command, parse errors are kept on the document for reporting
func load(ctx context.Context, cfg *config.Config, docs ...*document) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(doc.path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", doc.path, err)
			}
			log.Debugf("read %s (%s)", doc.path, humanize.Bytes(uint64(len(data))))

			start := time.Now()
			doc.value, doc.err = parse.Parse(string(data), cfg.ParseOptions()...)
			if doc.err != nil {
				log.WithError(doc.err).Debugf("parsing %s", doc.path)
			} else {
				log.WithField("took", time.Since(start)).Debugf("parsed %s", doc.path)
			}
			return nil
		})
	}
	return g.Wait()
}

func writePretty(w io.Writer, color bool, left, right *document, dts debugdiff.Deltas, stats *debugdiff.Stats) error {
	if _, err := fmt.Fprintf(w, "%s: %s\n%s: %s\n", left.label, left.status(), right.label, right.status()); err != nil {
		return err
	}
	if left.err != nil || right.err != nil {
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s\n\n", debugdiff.FormatCount(len(dts))); err != nil {
		return err
	}
	if err := debugdiff.FormatPretty(w, dts, color); err != nil {
		return err
	}
	if stats != nil {
		_, err := fmt.Fprintf(w, "\n%s", debugdiff.FormatPrettyStatsString(stats, color))
		return err
	}
	return nil
}

func writeJSON(w io.Writer, left, right *document, dts debugdiff.Deltas, stats *debugdiff.Stats) error {
	r := report{
		Left:        left.status(),
		Right:       right.status(),
		Differences: dts,
		Stats:       stats,
	}
	if r.Differences == nil {
		r.Differences = debugdiff.Deltas{}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// useColor resolves a color mode. auto colors only when writing to a
// terminal
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
