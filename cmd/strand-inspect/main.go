// Copyright 2026 The Strand Authors
// SPDX-License-Identifier: Apache-2.0

// strand-inspect examines Strand wire payloads and snapshot files
// without touching a database. It parses its input (wire JSON, JSONC
// documents, or binary snapshots — detected automatically), optionally
// selects a sub-value by path, and prints the result, its wire JSON,
// or its content digest.
//
// Usage:
//
//	strand-inspect [flags] [file]
//
// With no file (or "-") the payload is read from stdin. Exit codes:
// 0 on success, 1 when a --select path fails to resolve, 2 on bad
// arguments or unreadable input.
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/strand-data/strand/lib/field"
	"github.com/strand-data/strand/lib/snapshot"
	"github.com/strand-data/strand/lib/value"
	"github.com/strand-data/strand/lib/wire"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("strand-inspect", pflag.ContinueOnError)
	selectPath := flags.String("select", "", "select a sub-value by path (e.g. data/rows/0/name)")
	outputJSON := flags.Bool("json", false, "print wire JSON instead of the diagnostic rendering")
	showDigest := flags.Bool("digest", false, "print the BLAKE3 content digest instead of the value")
	writeSnapshot := flags.String("write-snapshot", "", "write the (selected) value to a snapshot file")
	verbose := flags.Bool("verbose", false, "log parsing details to stderr")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := "-"
	switch args := flags.Args(); len(args) {
	case 0:
	case 1:
		path = args[0]
	default:
		fmt.Fprintf(os.Stderr, "error: expected at most one input file, got %d\n", len(args))
		return 2
	}

	parsed, err := readInput(path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	if *selectPath != "" {
		selected, failures := resolve(parsed, *selectPath)
		if failures != nil {
			for _, failure := range failures {
				fmt.Fprintf(os.Stderr, "%s\n", failure)
			}
			return 1
		}
		parsed = selected
	}

	if *writeSnapshot != "" {
		if err := snapshot.WriteFile(*writeSnapshot, parsed); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
		logger.Debug("wrote snapshot", "path", *writeSnapshot)
	}

	switch {
	case *showDigest:
		digest, err := snapshot.DigestOf(parsed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
		fmt.Println(hex.EncodeToString(digest[:]))
	case *outputJSON:
		encoded, err := wire.Marshal(parsed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
		var indented bytes.Buffer
		if err := json.Indent(&indented, encoded, "", "  "); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 2
		}
		fmt.Println(indented.String())
	default:
		fmt.Println(parsed)
	}
	return 0
}

// readInput loads and parses the payload. Snapshot files are detected
// by their magic; everything else goes through the JSONC-tolerant
// document parser.
func readInput(path string, logger *slog.Logger) (value.Value, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	if snapshot.IsSnapshot(data) {
		logger.Debug("parsing input", "format", "snapshot", "bytes", len(data))
		return snapshot.Read(data)
	}
	logger.Debug("parsing input", "format", "jsonc", "bytes", len(data))
	return wire.ParseDocument(data)
}

// resolve selects a sub-value by a slash-separated path. Numeric
// segments index Arrays; everything else keys Objects.
func resolve(root value.Value, rawPath string) (value.Value, []string) {
	segments := make([]any, 0)
	for _, segment := range strings.Split(strings.Trim(rawPath, "/"), "/") {
		if segment == "" {
			continue
		}
		if index, err := strconv.Atoi(segment); err == nil {
			segments = append(segments, index)
			continue
		}
		segments = append(segments, segment)
	}

	selected, err := field.At(segments...).Apply(root).Get()
	if err != nil {
		return nil, []string{err.Error()}
	}
	return selected, nil
}
