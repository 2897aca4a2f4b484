// Package seeder generates random registrations and submits them to a
// running roster service. It is a development and load-testing aid.
package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/roster/pkg/logger"
)

// Config controls a seeding run.
type Config struct {
	BaseURL          string
	NumRegistrations int
	Workers          int
	Timeout          time.Duration
	DuplicateRatio   float64 // fraction of registrations resubmitted with a seen reg_id
}

// registrationPayload mirrors the POST /registrations schema.
type registrationPayload struct {
	RegID string `json:"reg_id"`
	Name  string `json:"name"`
	Score int64  `json:"score"`
	TS    string `json:"ts"`
}

// sampleNames is the pool participant names are drawn from. Collisions are
// intentional: repeated names exercise the overwrite path on the service.
var sampleNames = []string{
	"Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Heidi",
	"Ivan", "Judy", "Mallory", "Niaj", "Olivia", "Peggy", "Rupert", "Sybil",
	"Trent", "Victor", "Walter", "Zed",
}

// Result summarizes a seeding run.
type Result struct {
	Submitted  int
	Accepted   int
	Duplicates int
	Rejected   int
	Errors     int
}

// Run submits cfg.NumRegistrations random registrations using cfg.Workers
// concurrent posters and returns the tally.
func Run(ctx context.Context, cfg *Config) (Result, error) {
	if cfg.BaseURL == "" {
		return Result{}, ErrMissingBaseURL
	}
	if cfg.NumRegistrations < 1 {
		return Result{}, ErrNothingToSeed
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	log := logger.Get().Named("seeder")
	client := &http.Client{Timeout: cfg.Timeout}

	payloads := generate(cfg.NumRegistrations, cfg.DuplicateRatio)

	var (
		mu  sync.Mutex
		res Result
		wg  sync.WaitGroup
	)
	jobs := make(chan registrationPayload)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				status, err := post(ctx, client, cfg.BaseURL, p)
				mu.Lock()
				res.Submitted++
				switch {
				case err != nil:
					res.Errors++
				case status == http.StatusAccepted:
					res.Accepted++
				case status == http.StatusOK:
					res.Duplicates++
				default:
					res.Rejected++
				}
				mu.Unlock()
			}
		}()
	}

	for _, p := range payloads {
		select {
		case jobs <- p:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return res, fmt.Errorf("seeding interrupted: %w", ctx.Err())
		}
	}
	close(jobs)
	wg.Wait()

	log.Info(ctx, "seeding finished",
		logger.Int("submitted", res.Submitted),
		logger.Int("accepted", res.Accepted),
		logger.Int("duplicates", res.Duplicates),
		logger.Int("rejected", res.Rejected),
		logger.Int("errors", res.Errors),
	)
	return res, nil
}

// generate builds the payload list, reusing earlier reg_ids for the
// requested duplicate ratio.
func generate(n int, duplicateRatio float64) []registrationPayload {
	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // load generation, not crypto
	payloads := make([]registrationPayload, 0, n)
	for i := 0; i < n; i++ {
		if len(payloads) > 0 && rng.Float64() < duplicateRatio {
			dup := payloads[rng.Intn(len(payloads))]
			payloads = append(payloads, dup)
			continue
		}
		payloads = append(payloads, registrationPayload{
			RegID: uuid.NewString(),
			Name:  sampleNames[rng.Intn(len(sampleNames))],
			Score: int64(rng.Intn(101)),
			TS:    time.Now().UTC().Format(time.RFC3339),
		})
	}
	return payloads
}

func post(ctx context.Context, client *http.Client, baseURL string, p registrationPayload) (int, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/registrations", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post registration: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode, nil
}
