package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/wikiextract"
	"golang.org/x/sync/errgroup"
)

// prediction is the language predicted for one input.
type prediction struct {
	ID   string
	Lang wikiextract.Language
}

// Run executes the detect command.
func (c *DetectCmd) Run(deps *Dependencies) error {
	switch {
	case c.Text != "":
		lang, err := deps.Detector.Detect(deps.Ctx, c.Text)
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, lang)
		return nil
	case c.File != "":
		p, err := c.detectFile(deps, c.File)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s\t%s\n", p.ID, p.Lang)
		return nil
	default:
		preds, err := c.detectDir(deps)
		if err != nil {
			return err
		}
		for _, p := range preds {
			fmt.Fprintf(deps.Stdout, "%s\t%s\n", p.ID, p.Lang)
		}
		return nil
	}
}

// identifier names an input file by its base name without extension.
func identifier(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (c *DetectCmd) detectFile(deps *Dependencies, path string) (prediction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return prediction{}, wikiextract.Wrap(wikiextract.ENOTFOUND, err, "reading %s", path)
	}
	lang, err := deps.Detector.Detect(deps.Ctx, string(data))
	if err != nil {
		return prediction{}, err
	}
	return prediction{ID: identifier(path), Lang: lang}, nil
}

// detectDir classifies every regular file in c.Dir, sorted by identifier.
func (c *DetectCmd) detectDir(deps *Dependencies) ([]prediction, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, wikiextract.Wrap(wikiextract.ENOTFOUND, err, "reading directory %s", c.Dir)
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			paths = append(paths, filepath.Join(c.Dir, e.Name()))
		}
	}

	preds := make([]prediction, len(paths))
	g, ctx := errgroup.WithContext(deps.Ctx)
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}
	groupDeps := *deps
	groupDeps.Ctx = ctx
	for i, path := range paths {
		g.Go(func() error {
			p, err := c.detectFile(&groupDeps, path)
			if err != nil {
				return err
			}
			preds[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(preds, func(i, j int) bool { return preds[i].ID < preds[j].ID })
	return preds, nil
}
