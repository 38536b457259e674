package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"flightdash/adapters/dataset"
	"flightdash/app"
	"flightdash/domain/core"
	"flightdash/domain/flight"
	"flightdash/internal/aggregate"
	"flightdash/internal/config"
	"flightdash/internal/errors"
	"flightdash/internal/filter"
	"flightdash/internal/inference"
	"flightdash/ports"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	rejectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

func main() {
	_ = godotenv.Load()

	var dataFile string
	rootCmd := &cobra.Command{
		Use:   "flightdash-cli",
		Short: "Flight price analysis from the command line",
	}
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "flight dataset (.csv or .xlsx); defaults to DATA_FILE")

	rootCmd.AddCommand(
		newReportCmd(&dataFile),
		newGroupsCmd(&dataFile),
		newExportCmd(&dataFile),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func loadTable(dataFile string) (*flight.Table, error) {
	if dataFile == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		dataFile = cfg.Data.File
	}
	return dataset.Load(dataFile)
}

func newReportCmd(dataFile *string) *cobra.Command {
	var confidence float64

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the hypothesis tests and confidence intervals",
		Long: `Run every inference test over the full dataset and print the conclusions.

Example: flightdash-cli report --data data/airlines_flights_data.csv --confidence 0.99`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(*dataFile)
			if err != nil {
				return err
			}
			report, err := inference.Run(context.Background(), table, confidence)
			if err != nil {
				return err
			}

			fmt.Println(titleStyle.Render(fmt.Sprintf("Inference report (%d rows, %.0f%% confidence)",
				report.Rows, report.Confidence*100)))
			fmt.Println(headerStyle.Render("  mean price   " + report.PriceCI.String()))
			fmt.Println(headerStyle.Render("  direct share " + report.DirectShareCI.String()))
			fmt.Println()
			for _, line := range app.Conclusions(report) {
				fmt.Println("  " + line)
			}
			rejected := 0
			for _, res := range []inference.Result{
				report.Airline.Result, report.Stops.Result, report.Class.Result, report.Duration.Result,
			} {
				if res.Decision == inference.Reject {
					rejected++
				}
				if err := res.Err(); err != nil {
					fmt.Fprintln(os.Stderr, errorStyle.Render("  skipped "+err.Error()))
				}
			}
			fmt.Println()
			fmt.Println(rejectStyle.Render(fmt.Sprintf("%d of 4 null hypotheses rejected at α = 0.05", rejected)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&confidence, "confidence", inference.DefaultConfidence, "interval confidence level in [0.90, 0.99]")
	return cmd
}

func newGroupsCmd(dataFile *string) *cobra.Command {
	var by []string
	var measure string

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Summarize a numeric field by one or more categorical fields",
		Long: `Print count, mean, median and standard deviation per group.

Example: flightdash-cli groups --by airline,class --measure price`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(*dataFile)
			if err != nil {
				return err
			}
			fields := make([]flight.Field, 0, len(by))
			for _, name := range by {
				fields = append(fields, flight.Field(strings.TrimSpace(name)))
			}
			groups, err := aggregate.GroupStats(table, fields, flight.Field(measure))
			if err != nil {
				return err
			}

			fmt.Println(titleStyle.Render(fmt.Sprintf("%s by %s", measure, strings.Join(by, ", "))))
			fmt.Println(headerStyle.Render(fmt.Sprintf("%-36s %8s %12s %12s %12s", "group", "count", "mean", "median", "std")))
			for _, g := range groups {
				fmt.Printf("%-36s %8d %12s %12s %12s\n", g.Label, g.Count,
					formatStat(g.Mean), formatStat(g.Median), formatStat(g.Std))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&by, "by", []string{string(flight.FieldAirline)}, "categorical fields to group by")
	cmd.Flags().StringVar(&measure, "measure", string(flight.FieldPrice), "numeric field to summarize")
	return cmd
}

func newExportCmd(dataFile *string) *cobra.Command {
	var where []string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered rows to a CSV or Excel file",
		Long: `Apply filters and write the matching rows. The format follows the output extension.

Example: flightdash-cli export --where airline=Vistara --where price_max=20000 --out vistara.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer, err := dataset.WriterFor(strings.TrimPrefix(filepath.Ext(out), "."))
			if err != nil {
				return err
			}
			query := url.Values{}
			for _, clause := range where {
				key, value, ok := strings.Cut(clause, "=")
				if !ok {
					return errors.InvalidInput(fmt.Sprintf("filter %q must look like field=value", clause))
				}
				query.Add(strings.TrimSpace(key), strings.TrimSpace(value))
			}

			table, err := loadTable(*dataFile)
			if err != nil {
				return err
			}
			predicates, err := filter.FromQuery(query, filter.Defaults(table))
			if err != nil {
				return err
			}
			filtered := filter.Apply(table, predicates)

			if err := writeTable(out, writer, filtered); err != nil {
				return err
			}
			fmt.Println(rejectStyle.Render(fmt.Sprintf("wrote %d of %d rows to %s", filtered.Len(), table.Len(), out)))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&where, "where", nil, "filter as field=value or <numeric>_min/_max=value, repeatable")
	cmd.Flags().StringVar(&out, "out", "filtered.csv", "output file (.csv or .xlsx)")
	return cmd
}

// writeTable writes table to path, removing the file if anything fails
func writeTable(path string, writer ports.TableWriter, table *flight.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.ExportError(writer.Extension(), err)
	}
	if err := writer.Write(f, table); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return errors.ExportError(writer.Extension(), err)
	}
	return nil
}

func formatStat(v core.Float) string {
	if !v.Defined() {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", float64(v))
}
