package sim

import (
	"context"
	"sync"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/logging"
)

// Ensemble runs the same headless scenario under consecutive seeds, one
// World per goroutine.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
	metrics   func() []Metric
	log       *logging.Logger
}

// NewEnsemble prepares numRuns runs seeded seedStart, seedStart+1, ...
// Zero is skipped since New reads it as "seed from the clock".
// metrics is called once per run so no Metric is shared between goroutines.
func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, metrics func() []Metric, log *logging.Logger) *Ensemble {
	if log == nil {
		log = logging.Discard()
	}
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, metrics: metrics, log: log}
}

func (e *Ensemble) Run(ctx context.Context, rc RunConfig) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *e.cfg
			cfgCopy.Seed = ensembleSeed(e.seedStart, idx)

			w, err := New(&cfgCopy, WithLogger(e.log))
			if err != nil {
				errs[idx] = err
				return
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					w.AddMetric(m)
				}
			}

			results[idx], errs[idx] = w.Run(ctx, rc)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func ensembleSeed(start int64, idx int) int64 {
	seed := start + int64(idx)
	if start <= 0 && seed >= 0 {
		seed++
	}
	return seed
}
