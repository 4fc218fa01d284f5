// Command calibrate measures wall-clock hashing cost across a range of work
// factors, so operators can pick a cost that lands in their latency budget
// (commonly 200-300ms per hash). Results are advisory and never fed back
// into configuration automatically.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/arklim/credguard/internal/core/port"
	"github.com/arklim/credguard/internal/infra/app"
	"github.com/arklim/credguard/internal/infra/config"
	"github.com/arklim/credguard/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	var (
		algorithm = flag.String("algorithm", "", "hashing backend (bcrypt or pbkdf2-sha512); defaults to the configured one")
		from      = flag.Int("from", 0, "first cost to measure; defaults per backend")
		to        = flag.Int("to", 0, "last cost to measure; defaults per backend")
		step      = flag.Int("step", 0, "cost increment between measurements; defaults per backend")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *algorithm != "" {
		cfg.Hasher.Algorithm = *algorithm
	}

	hasher, err := app.NewHasher(cfg.Hasher)
	if err != nil {
		log.Fatalf("failed to init hasher: %v", err)
	}

	calibrator, err := usecase.NewCalibrationService(hasher)
	if err != nil {
		log.Fatalf("failed to init calibrator: %v", err)
	}

	fromCost, toCost, stepCost := costRange(cfg.Hasher.Algorithm, *from, *to, *step)

	fmt.Printf("algorithm: %s\n", cfg.Hasher.Algorithm)
	fmt.Printf("%-12s %s\n", "cost", "duration")

	results, err := calibrator.MeasureRange(fromCost, toCost, stepCost)
	for _, m := range results {
		fmt.Printf("%-12d %v\n", m.Cost, m.Elapsed)
	}
	if err != nil {
		log.Fatalf("calibration stopped: %v", err)
	}
}

// costRange fills in per-backend defaults for flags the operator left unset.
func costRange(algorithm string, from, to, step int) (port.Cost, port.Cost, port.Cost) {
	switch {
	case algorithm == config.AlgorithmPBKDF2:
		if from <= 0 {
			from = 100_000
		}
		if to <= 0 {
			to = 500_000
		}
		if step <= 0 {
			step = 100_000
		}
	default:
		if from <= 0 {
			from = 10
		}
		if to <= 0 {
			to = 14
		}
		if step <= 0 {
			step = 1
		}
	}
	return port.Cost(from), port.Cost(to), port.Cost(step)
}
