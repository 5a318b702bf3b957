package main

import (
	"context"
	"io"

	"github.com/fwojciec/wikiextract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Detector wikiextract.LanguageDetector
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir  string `short:"d" xor:"input" type:"existingdir" help:"Classify every file in a directory"`
	File string `short:"f" xor:"input" type:"existingfile" help:"Classify a single file"`
	Text string `short:"t" xor:"input" help:"Classify a literal text"`

	MinConfidence float64 `default:"0" help:"Report 'und' below this confidence (0-1)"`
	Concurrency   int     `short:"c" default:"4" help:"Files classified concurrently in directory mode"`
	Verbose       bool    `short:"v" help:"Enable debug logging"`
}

// DetectCmd classifies one input.
type DetectCmd struct {
	Dir         string
	File        string
	Text        string
	Concurrency int
}
