package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/wikiextract/index"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Index *index.Index
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Query string `arg:"" help:"Search query"`

	Data        string `short:"d" default:"data" env:"WIKISEARCH_DATA" help:"Directory of <title>.json records"`
	Top         int    `short:"k" default:"10" help:"Number of ranked results (0 for all)"`
	Boolean     bool   `short:"b" help:"Treat the query as a boolean expression of AND, OR, NOT and parentheses"`
	Field       string `enum:"all,title,content" default:"all" help:"Part of each record to match (all, title, content)"`
	Stem        string `env:"WIKISEARCH_STEM" help:"Snowball stemming language, e.g. english (empty disables)"`
	Concurrency int    `short:"c" default:"4" help:"Records read concurrently"`

	Verbose   bool   `short:"v" help:"Enable debug logging"`
	LogFormat string `enum:"text,json" default:"text" help:"Log format (text, json)"`
}

// SearchCmd runs one query against the index.
type SearchCmd struct {
	Query   string
	Top     int
	Boolean bool
	Field   index.Field
}
