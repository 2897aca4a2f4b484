// Command seed posts random registrations to a running roster service.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/roster/internal/seeder"
	"github.com/okian/roster/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumRegistrations = 1000
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	defaultTimeout          = 30 * time.Second
	defaultRunTimeout       = 10 * time.Minute
	defaultDuplicateRatio   = 0.1
)

func main() {
	var (
		baseURL        = flag.String("url", "http://localhost:9090", "Base URL of the service")
		numRegs        = flag.Int("registrations", defaultNumRegistrations, "Number of registrations to generate and submit")
		workers        = flag.Int("workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent workers")
		timeout        = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		duplicateRatio = flag.Float64("duplicates", defaultDuplicateRatio, "Fraction of registrations resubmitted with a seen reg_id")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seeder.Config{
		BaseURL:          *baseURL,
		NumRegistrations: *numRegs,
		Workers:          *workers,
		Timeout:          *timeout,
		DuplicateRatio:   *duplicateRatio,
	}

	if _, err := seeder.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
	}
}
