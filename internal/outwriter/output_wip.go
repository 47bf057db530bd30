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

// PrintWIP outputs the daily WIP view, dispatching based on the output
// format configured.
func PrintWIP(result *schema.WIPResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"member", "avg_wip", "max_wip", "days_over_moderate", "days_over_high"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, name := range sortedKeys(result.Members) {
					m := result.Members[name]
					rec := []string{
						name,
						fmtFloat(m.AvgWIP),
						fmt.Sprintf(intFmt, m.MaxWIP),
						fmt.Sprintf(intFmt, m.DaysOverModerate),
						fmt.Sprintf(intFmt, m.DaysOverHigh),
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
			return writeWIPTable(w, result, cfg, fmtFloat)
		}, "Wrote table")
	}
}

func writeWIPTable(w io.Writer, result *schema.WIPResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	nameWidth := getMaxTableNameWidth(cfg)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Member", "Avg WIP", "Max WIP", fmt.Sprintf("Days >%d", cfg.Policy.WIPModerateThreshold), fmt.Sprintf("Days >%d", cfg.Policy.WIPHighThreshold)})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, name := range sortedKeys(result.Members) {
		m := result.Members[name]
		avg := fmtFloat(m.AvgWIP)
		if cfg.UseColors {
			avg = contract.GetColorWIPLevel(m.AvgWIP, cfg.Policy)
		}
		data = append(data, []string{
			contract.TruncateLabel(schema.AbbreviateName(name), nameWidth),
			avg,
			strconv.Itoa(m.MaxWIP),
			strconv.Itoa(m.DaysOverModerate),
			strconv.Itoa(m.DaysOverHigh),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if result.PeakDay != "" {
		if _, err := fmt.Fprintf(w, "Team peak: %d concurrent items on %s\n", result.PeakWIP, result.PeakDay); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Window %s to %s; %d days with team average over %d\n",
		result.RangeStart, result.RangeEnd, result.DaysTeamAvgOver3, cfg.Policy.WIPModerateThreshold)
	return err
}
