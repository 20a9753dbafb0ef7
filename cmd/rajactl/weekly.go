package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"raja-digital/internal/dto"
	"raja-digital/internal/weekly"
)

func newWeeklyCmd() *cobra.Command {
	var (
		search string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "weekly <weekly-report.json>",
		Short: "Aggregate a weekly report file and print the fraud / low-activity summary",
		Long: "Reads the body of GET /api/weekly-report (start_date, end_date, drivers) " +
			"and prints both partitions with totals, the fraud day count and low-activity drivers.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var report dto.WeeklyReport
			if err := json.Unmarshal(raw, &report); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			view, err := summarize(&report, search)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			return printView(cmd.OutOrStdout(), report.StartDate, report.EndDate, view)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter displayed drivers by name, plate or id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func summarize(report *dto.WeeklyReport, search string) (*weekly.View, error) {
	w, err := weekly.ParseWindow(report.StartDate, report.EndDate)
	if err != nil {
		return nil, err
	}
	sum, err := weekly.Aggregate(w, report.Drivers)
	if err != nil {
		return nil, err
	}
	return sum.Search(search), nil
}

func printView(out io.Writer, start, end string, v *weekly.View) error {
	fmt.Fprintf(out, "Laporan mingguan %s s/d %s\n", start, end)
	fmt.Fprintf(out, "Hari BOCOR (ritase tanpa SIJ): %d\n\n", v.FraudCount)

	for _, part := range []struct {
		title   string
		drivers []weekly.DriverWeekly
		low     []weekly.DriverWeekly
	}{
		{"DRIVER STANDAR", v.Standar, v.LowActivity.Standar},
		{"DRIVER PREMIUM", v.Premium, v.LowActivity.Premium},
	} {
		fmt.Fprintln(out, part.title)
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAMA\tNOPOL\tKHD\tRTS\tBOCOR")
		for _, d := range part.drivers {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
				d.DriverID, d.Name, d.Plate, d.TotalKHD, d.TotalRTS, len(weekly.FraudDays(d)))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		names := make([]string, len(part.low))
		for i, d := range part.low {
			names[i] = d.Name
		}
		list := "-"
		if len(names) > 0 {
			list = strings.Join(names, ", ")
		}
		fmt.Fprintf(out, "KHD < %d: %d driver -> %s\n\n", weekly.LowActivityThreshold, len(part.low), list)
	}
	return nil
}
