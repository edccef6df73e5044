// Command mp3probe scans directories for MP3 files and prints their
// structural metadata in a table.
//
// Usage:
//
//	mp3probe [flags] [dir ...]
//
//	-config path   YAML configuration file
//	-v             debug logging
//
// Directories given on the command line override the configured ones.
// The exit code is 1 when any file fails to analyze.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/simonhull/mp3detect"
	_ "github.com/simonhull/mp3detect/mp3" // register the MP3 backend
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mp3probe: %v\n", err)
			return 1
		}
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if args := flag.Args(); len(args) > 0 {
		cfg.Dirs = args
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mp3probe: %v\n", err)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	files, err := collectFiles(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mp3probe: %v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Println("no matching files found")
		return 0
	}

	detector := mp3detect.Instance()

	fmt.Printf("%-50s  %9s  %8s  %3s  %10s  %s\n",
		"FILE", "DURATION", "RATE", "CH", "BITRATE", "STATUS")

	passed, failed := 0, 0
	for _, path := range files {
		info, err := probeFile(detector, logger, path)
		name := filepath.Base(path)
		if err != nil {
			fmt.Printf("%-50s  %9s  %8s  %3s  %10s  FAIL [%s]\n",
				name, "-", "-", "-", "-", mp3detect.AsStatus(err))
			failed++
			continue
		}
		fmt.Printf("%-50s  %6d ms  %5d Hz  %3d  %6d bps  OK\n",
			name, info.DurationMS, info.SampleRate, info.Channels, info.Bitrate)
		passed++
	}

	fmt.Printf("\n%d passed, %d failed, %d total\n", passed, failed, passed+failed)
	if failed > 0 {
		return 1
	}
	return 0
}

// probeFile analyzes a single file, forwarding backend diagnostics to the
// logger.
func probeFile(detector *mp3detect.Detector, logger *slog.Logger, path string) (mp3detect.Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return mp3detect.Info{}, fmt.Errorf("open %s: %w", path, mp3detect.StatusIOError)
	}
	defer f.Close()

	src, err := mp3detect.FileSource(f)
	if err != nil {
		return mp3detect.Info{}, err
	}
	src.Log = mp3detect.SlogHook(logger.With("file", filepath.Base(path)))

	return mp3detect.Analyze(detector, src)
}

// collectFiles gathers matching files from the configured directories,
// sorted by path.
func collectFiles(cfg config) ([]string, error) {
	var files []string
	for _, dir := range cfg.Dirs {
		stat, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		if !stat.IsDir() {
			return nil, fmt.Errorf("scan %s: not a directory", dir)
		}

		if cfg.Recursive {
			err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && cfg.matchesExtension(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("scan %s: %w", dir, err)
			}
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && cfg.matchesExtension(entry.Name()) {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files, nil
}
