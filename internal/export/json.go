package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/orbitsim/internal/sim"
)

type ExportData struct {
	RunID     string             `json:"run_id"`
	Scenario  string             `json:"scenario"`
	Seed      int64              `json:"seed"`
	Timestamp time.Time          `json:"timestamp"`
	Steps     int                `json:"steps"`
	Samples   []sim.Sample       `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

func WriteJSON(w io.Writer, result *sim.Result) error {
	data := ExportData{
		RunID:     result.RunID,
		Scenario:  result.Scenario,
		Seed:      result.Seed,
		Timestamp: time.Now().UTC(),
		Steps:     result.StepsTaken,
		Samples:   result.Samples,
		Metrics:   result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteEnsembleJSON writes one summary object per run, without samples.
func WriteEnsembleJSON(w io.Writer, results []*sim.Result) error {
	type summary struct {
		RunID   string             `json:"run_id"`
		Seed    int64              `json:"seed"`
		Steps   int                `json:"steps"`
		Final   sim.Sample         `json:"final"`
		Metrics map[string]float64 `json:"metrics"`
	}
	out := make([]summary, 0, len(results))
	for _, r := range results {
		s := summary{RunID: r.RunID, Seed: r.Seed, Steps: r.StepsTaken, Metrics: r.Metrics}
		if n := len(r.Samples); n > 0 {
			s.Final = r.Samples[n-1]
		}
		out = append(out, s)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
