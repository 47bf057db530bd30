package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/schema"
)

// PrintStates outputs the state distribution view, dispatching based on the
// output format configured.
func PrintStates(result *schema.StateDistributionResult, cfg *contract.Config) error {
	_, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"state", "count"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, state := range sortedKeys(result.Total) {
					rec := []string{state, fmt.Sprintf(intFmt, result.Total[state])}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatesTable(w, result)
		}, "Wrote table")
	}
}

func writeStatesTable(w io.Writer, result *schema.StateDistributionResult) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"State", "Count"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	total := 0
	var data [][]string
	for _, state := range sortedKeys(result.Total) {
		count := result.Total[state]
		total += count
		data = append(data, []string{state, strconv.Itoa(count)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d items across %d states\n", total, len(result.Total))
	return err
}
