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

// PrintFlow outputs the flow efficiency view, dispatching based on the
// output format configured.
func PrintFlow(result *schema.FlowResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"member", "items", "active_days", "wait_days", "efficiency_pct", "rating"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, name := range sortedKeys(result.Members) {
					m := result.Members[name]
					rec := []string{
						name,
						fmt.Sprintf(intFmt, m.Items),
						fmt.Sprintf(intFmt, m.ActiveDays),
						fmt.Sprintf(intFmt, m.WaitDays),
						fmtFloat(m.AvgEfficiencyPct),
						string(m.Rating),
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
			return writeFlowTable(w, result, cfg, fmtFloat)
		}, "Wrote table")
	}
}

func writeFlowTable(w io.Writer, result *schema.FlowResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	nameWidth := getMaxTableNameWidth(cfg)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Member", "Items", "Active", "Wait", "Flow%", "Rating"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, name := range sortedKeys(result.Members) {
		m := result.Members[name]
		rating := string(m.Rating)
		if cfg.UseColors {
			rating = contract.GetColorRating(m.Rating)
		}
		data = append(data, []string{
			contract.TruncateLabel(schema.AbbreviateName(name), nameWidth),
			strconv.Itoa(m.Items),
			strconv.Itoa(m.ActiveDays),
			strconv.Itoa(m.WaitDays),
			fmtFloat(m.AvgEfficiencyPct),
			rating,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	teamRating := string(result.Rating)
	if cfg.UseColors {
		teamRating = contract.GetColorRating(result.Rating)
	}
	_, err := fmt.Fprintf(w, "Team flow efficiency: %s%% (%s)\n", fmtFloat(result.AvgEfficiencyPct), teamRating)
	return err
}
