// FILE: arsenic/src/cmd/arsenic-collector/flags.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Command-line flags
var (
	host        = flag.String("host", "0.0.0.0", "Listen address")
	port        = flag.Int64("port", 9400, "Listen port")
	bufferSize  = flag.Int64("buffer", 1000, "Lines held for the printer before dropping")
	showRemote  = flag.Bool("show-remote", false, "Prefix each line with the sender address")
	colorMode   = flag.String("color", "auto", "Sender prefix color: auto, always, never")
	showVersion = flag.Bool("version", false, "Show version information")
	logLevel    = flag.String("log-level", "warn", "Diagnostics level: debug, info, warn, error")
	statusEvery = flag.Duration("status", 0, "Report collector statistics at this interval (0 disables)")
)

func init() {
	flag.Usage = customUsage
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "arsenic-collector - Receives lines from the arsenic network sink\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Listen on the default port\n")
	fmt.Fprintf(os.Stderr, "  %s\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  # Listen locally and show which process sent each line\n")
	fmt.Fprintf(os.Stderr, "  %s --host 127.0.0.1 --port 5000 --show-remote\n", os.Args[0])
}

func parseFlags() error {
	flag.Parse()

	if *port < 1 || *port > 65535 {
		return fmt.Errorf("invalid port: %d", *port)
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[*colorMode] {
		return fmt.Errorf("invalid color mode: %s", *colorMode)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(*logLevel)] {
		return fmt.Errorf("invalid log level: %s", *logLevel)
	}

	return nil
}
