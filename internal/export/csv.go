package export

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/san-kum/orbitsim/internal/automation"
	"github.com/san-kum/orbitsim/internal/sim"
)

var sampleHeader = []string{"tick", "x", "y", "vx", "vy", "speed", "distance", "bearing", "energy", "thrust", "particles"}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

// WriteCSV writes one row per sample.
func WriteCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(sampleHeader); err != nil {
		return err
	}
	for _, s := range result.Samples {
		row := []string{
			strconv.Itoa(s.Tick),
			formatFloat(s.X),
			formatFloat(s.Y),
			formatFloat(s.VX),
			formatFloat(s.VY),
			formatFloat(s.Speed),
			formatFloat(s.Distance),
			formatFloat(s.Bearing),
			formatFloat(s.Energy),
			strconv.FormatBool(s.Thrust),
			strconv.Itoa(s.Particles),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteEnsembleCSV writes one row per run: seed, steps and every metric in
// name order.
func WriteEnsembleCSV(w io.Writer, results []*sim.Result) error {
	cw := csv.NewWriter(w)

	var names []string
	if len(results) > 0 {
		for name := range results[0].Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	header := append([]string{"run_id", "seed", "steps"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{r.RunID, strconv.FormatInt(r.Seed, 10), strconv.Itoa(r.StepsTaken)}
		for _, name := range names {
			row = append(row, formatFloat(r.Metrics[name]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSweepCSV writes one row per swept value. Failed values keep their
// error in the last column and leave the metrics empty.
func WriteSweepCSV(w io.Writer, param string, results []automation.SweepResult) error {
	cw := csv.NewWriter(w)

	var names []string
	for _, r := range results {
		if r.Err == nil {
			for name := range r.Metrics {
				names = append(names, name)
			}
			sort.Strings(names)
			break
		}
	}

	header := append([]string{param}, names...)
	header = append(header, "error")
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{formatFloat(r.ParamValue)}
		for _, name := range names {
			if r.Err != nil {
				row = append(row, "")
				continue
			}
			row = append(row, formatFloat(r.Metrics[name]))
		}
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		if err := cw.Write(append(row, errText)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
