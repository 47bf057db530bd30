package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// PrintSprints outputs the sprint analytics view, dispatching based on the
// output format configured.
func PrintSprints(result *schema.SprintResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"sprint", "total", "completed", "completion_pct", "unplanned", "unplanned_pct", "carryover", "velocity"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, name := range sortedSprintNames(result.Sprints) {
					s := result.Sprints[name]
					rec := []string{
						name,
						fmt.Sprintf(intFmt, s.Total),
						fmt.Sprintf(intFmt, s.Completed),
						fmtFloat(s.CompletionRatePct),
						fmt.Sprintf(intFmt, s.Unplanned),
						fmtFloat(s.UnplannedRatioPct),
						fmt.Sprintf(intFmt, s.Carryover),
						fmt.Sprintf(intFmt, s.Velocity),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSprintTable(w, result, fmtFloat)
		}, "Wrote table")
	}
}

func writeSprintTable(w io.Writer, result *schema.SprintResult, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Sprint", "Total", "Done", "Done%", "Unplanned", "Carryover", "Velocity"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, name := range sortedSprintNames(result.Sprints) {
		s := result.Sprints[name]
		data = append(data, []string{
			name,
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Completed),
			fmtFloat(s.CompletionRatePct),
			strconv.Itoa(s.Unplanned),
			strconv.Itoa(s.Carryover),
			strconv.Itoa(s.Velocity),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Velocity trend: %s across %d sprints\n", result.VelocityTrend, len(result.Sprints))
	return err
}

// sortedSprintNames orders sprint names lexically, which matches the
// "Sprint N" convention closely enough for display.
func sortedSprintNames(sprints map[string]schema.SprintStats) []string {
	names := make([]string, 0, len(sprints))
	for name := range sprints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
