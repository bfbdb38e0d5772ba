// FILE: arsenic/src/cmd/arsenic-collector/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"arsenic/src/internal/collector"
	"arsenic/src/internal/config"
	"arsenic/src/internal/version"

	"github.com/fatih/color"
	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

var logger *log.Logger

func main() {
	if err := parseFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if err := initializeLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer shutdownLogger()

	c, err := collector.New(collector.Config{
		Host:       *host,
		Port:       *port,
		BufferSize: *bufferSize,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	lines := c.Subscribe()
	if err := c.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start collector: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if *statusEvery > 0 {
		go statusReporter(ctx, c, *statusEvery)
	}

	printed := make(chan struct{})
	go func() {
		defer close(printed)
		printLines(lines)
	}()

	sig := <-sigChan
	logger.Info("msg", "Shutdown signal received", "signal", sig)
	cancel()

	// Stop closes the subscriber channels, which ends the printer
	done := make(chan struct{})
	go func() {
		c.Stop()
		<-printed
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		logger.Error("msg", "Shutdown timeout exceeded - forcing exit")
		os.Exit(1)
	}
}

// printLines writes received lines to stdout until the channel closes
func printLines(lines <-chan collector.Line) {
	remote := color.New(color.FgHiBlack)
	switch *colorMode {
	case "always":
		remote.EnableColor()
	case "never":
		remote.DisableColor()
	default:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			remote.DisableColor()
		}
	}

	for line := range lines {
		if *showRemote {
			fmt.Fprintf(os.Stdout, "%s %s\n", remote.Sprint(line.RemoteAddr), line.Text)
		} else {
			fmt.Fprintln(os.Stdout, line.Text)
		}
	}
}

// initializeLogger sets up diagnostics on stderr
func initializeLogger() error {
	logger = log.NewLogger()
	cfg := &config.LogConfig{
		Output: "stderr",
		Level:  strings.ToLower(*logLevel),
	}
	return logger.InitWithDefaults(cfg.Args()...)
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
		}
	}
}
