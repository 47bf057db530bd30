package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/arjaygg/teampulse/internal/contract"
	"github.com/arjaygg/teampulse/internal/parquet"
	"github.com/arjaygg/teampulse/schema"
)

// PrintReport outputs the full analysis, dispatching based on the output
// format configured.
func PrintReport(result *schema.AnalysisResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, result, fmtFloat, intFmt)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeReportParquet(result, cfg)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeReportTable generates the human-readable member summary table plus a
// footer with run context.
func writeReportTable(w io.Writer, result *schema.AnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	rows := buildMemberSummaries(result)
	nameWidth := getMaxTableNameWidth(cfg)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Member", "Done", "Cycle Avg", "Open", "Age Avg", "Rework%", "Flow%", "Rating", "WIP Avg"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range rows {
		rating := string(r.FlowRating)
		if cfg.UseColors && r.FlowRating != "" {
			rating = contract.GetColorRating(r.FlowRating)
		}
		data = append(data, []string{
			contract.TruncateLabel(schema.AbbreviateName(r.Member), nameWidth),
			strconv.Itoa(r.CompletedItems),
			fmtFloat(r.AvgCycleTimeDays),
			strconv.Itoa(r.OpenItems),
			fmtFloat(r.AvgBacklogAgeDays),
			fmtFloat(r.ReworkRatePct),
			fmtFloat(r.FlowEfficiencyPct),
			rating,
			fmtFloat(r.AvgDailyWIP),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Analyzed %d items and %d update events across %d members\n",
		result.Items, result.Updates, len(rows)); err != nil {
		return err
	}
	if result.DeepSkipped {
		if _, err := fmt.Fprintln(w, "No update events available; timeline metrics were skipped"); err != nil {
			return err
		}
	}
	for _, module := range sortedKeys(result.ModuleErrors) {
		if _, err := fmt.Fprintf(w, "Module %s failed: %s\n", module, result.ModuleErrors[module]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v with %d workers. Cache backend: %s\n",
		duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeReportCSV writes one flat CSV row per member.
func writeReportCSV(w io.Writer, result *schema.AnalysisResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"member",
		"completed_items",
		"avg_cycle_time_days",
		"median_cycle_time_days",
		"avg_variance_pct",
		"open_items",
		"avg_backlog_age_days",
		"rework_rate_pct",
		"flow_efficiency_pct",
		"flow_rating",
		"avg_daily_wip",
		"max_daily_wip",
		"bottleneck_state",
		"sprint_count",
		"avg_completion_pct",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range buildMemberSummaries(result) {
			rec := []string{
				r.Member,
				fmt.Sprintf(intFmt, r.CompletedItems),
				fmtFloat(r.AvgCycleTimeDays),
				fmtFloat(r.MedianCycleDays),
				fmtFloat(r.AvgVariancePct),
				fmt.Sprintf(intFmt, r.OpenItems),
				fmtFloat(r.AvgBacklogAgeDays),
				fmtFloat(r.ReworkRatePct),
				fmtFloat(r.FlowEfficiencyPct),
				string(r.FlowRating),
				fmtFloat(r.AvgDailyWIP),
				fmt.Sprintf(intFmt, r.MaxDailyWIP),
				r.BottleneckState,
				fmt.Sprintf(intFmt, r.SprintCount),
				fmtFloat(r.AvgCompletionPct),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeReportParquet exports one parquet row per member. Parquet always
// needs a real file path.
func writeReportParquet(result *schema.AnalysisResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	rows := buildMemberSummaries(result)
	out := make([]parquet.MemberReportRow, 0, len(rows))
	for _, r := range rows {
		row := parquet.MemberReportRow{
			GeneratedAt:       result.GeneratedAt,
			Member:            r.Member,
			CompletedItems:    int32(r.CompletedItems),
			AvgCycleTimeDays:  r.AvgCycleTimeDays,
			MedianCycleDays:   r.MedianCycleDays,
			AvgVariancePct:    r.AvgVariancePct,
			OpenItems:         int32(r.OpenItems),
			AvgBacklogAgeDays: r.AvgBacklogAgeDays,
			ReworkRatePct:     r.ReworkRatePct,
			FlowEfficiencyPct: r.FlowEfficiencyPct,
			FlowRating:        string(r.FlowRating),
			AvgDailyWIP:       r.AvgDailyWIP,
			MaxDailyWIP:       int32(r.MaxDailyWIP),
			SprintCount:       int32(r.SprintCount),
			AvgCompletionPct:  r.AvgCompletionPct,
		}
		if r.BottleneckState != "" {
			state := r.BottleneckState
			row.BottleneckState = &state
		}
		out = append(out, row)
	}
	if err := parquet.WriteMemberReportParquet(out, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote parquet to %s\n", cfg.OutputFile)
	return nil
}
