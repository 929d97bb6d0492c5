package bench

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Baseline is the framework every other framework is compared against.
const Baseline = "fuse"

// Result is the timing of one operation under one framework.
type Result struct {
	Operation string
	Framework string
	Stats     Stats
}

// Speedup is how many times faster the baseline ran an operation than another
// framework. Values below 1 mean the baseline was slower.
type Speedup struct {
	Operation string
	Framework string
	Factor    float64
}

// Speedups compares every non-baseline result to the baseline result of the
// same operation by mean time. Operations without a baseline are skipped.
func Speedups(results []Result) []Speedup {
	base := make(map[string]float64)
	for _, r := range results {
		if r.Framework == Baseline {
			base[r.Operation] = r.Stats.Mean
		}
	}

	var out []Speedup
	for _, r := range results {
		mean, ok := base[r.Operation]
		if r.Framework == Baseline || !ok || mean == 0 {
			continue
		}
		out = append(out, Speedup{
			Operation: r.Operation,
			Framework: r.Framework,
			Factor:    r.Stats.Mean / mean,
		})
	}
	return out
}

// Report writes the comparison table followed by the speedup analysis.
func Report(w io.Writer, results []Result) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"OPERATION", "FRAMEWORK", "MEAN (us)", "MEDIAN (us)", "STDDEV (us)", "MIN (us)", "MAX (us)"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")

	for _, r := range results {
		table.Append([]string{
			r.Operation,
			r.Framework,
			fmt.Sprintf("%.3f", r.Stats.Mean),
			fmt.Sprintf("%.3f", r.Stats.Median),
			fmt.Sprintf("%.3f", r.Stats.StdDev),
			fmt.Sprintf("%.3f", r.Stats.Min),
			fmt.Sprintf("%.3f", r.Stats.Max),
		})
	}
	table.Render()

	speedups := Speedups(results)
	if len(speedups) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\nSpeedup of %s (mean time ratio):\n", Baseline); err != nil {
		return err
	}
	slices.SortStableFunc(speedups, func(a, b Speedup) int {
		return strings.Compare(a.Framework, b.Framework)
	})
	for _, s := range speedups {
		verdict := "faster"
		factor := s.Factor
		if factor < 1 {
			verdict = "slower"
			factor = 1 / factor
		}
		if _, err := fmt.Fprintf(w, "  %-24s vs %-14s %6.2fx %s\n", s.Operation, s.Framework, factor, verdict); err != nil {
			return err
		}
	}
	return nil
}
