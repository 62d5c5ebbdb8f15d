package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/scoreline/internal/predictclient"
)

// Default configuration constants.
const (
	defaultWorkers = 4
	defaultTimeout = 10 * time.Second
	defaultRunTime = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		workers = flag.Int("workers", defaultWorkers, "Number of concurrent requests")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		asJSON  = flag.Bool("json", false, "Print raw JSON responses")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help || flag.NArg() == 0 {
		predictclient.ShowHelp()
		return
	}

	if err := predictclient.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTime)
	defer cancel()

	config := &predictclient.Config{
		BaseURL: *baseURL,
		Files:   flag.Args(),
		Workers: *workers,
		Timeout: *timeout,
		JSON:    *asJSON,
		Verbose: *verbose,
	}

	if _, err := predictclient.Run(ctx, config, os.Stdout); err != nil {
		os.Stderr.WriteString("Prediction failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
