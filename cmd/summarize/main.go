package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"transaction-summary/internal/domain"
	"transaction-summary/internal/gateway"
	"transaction-summary/internal/store"
	"transaction-summary/internal/usecase"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "Path to the transactions CSV file (required)")
	userID := fs.String("user", "", "User id to summarize (required)")
	startDate := fs.String("start", "", "Start date, inclusive (YYYY-MM-DD)")
	endDate := fs.String("end", "", "End date, inclusive (YYYY-MM-DD)")
	format := fs.String("format", "json", "Output format: json or table")
	lenient := fs.Bool("lenient", false, "Skip rows with unparseable timestamps instead of failing")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if *file == "" || *userID == "" {
		fmt.Fprintln(stderr, "Error: -file and -user are required.")
		fs.Usage()
		return errUsage
	}
	if *format != "json" && *format != "table" {
		return fmt.Errorf("unknown format %q", *format)
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("could not open file: %w", err)
	}

	// --- Dependency Injection ---
	datasets := store.New()
	ingestion := usecase.NewIngestionUseCase(datasets, gateway.NewCSVTableReader())
	summary := usecase.NewSummaryUseCase(datasets, usecase.WithStrictTimestamps(!*lenient))

	ctx := context.Background()
	if _, err := ingestion.Ingest(ctx, filepath.Base(*file), content); err != nil {
		return err
	}

	result, err := summary.Summarize(ctx, domain.QueryParams{
		UserID:    *userID,
		StartDate: *startDate,
		EndDate:   *endDate,
	})
	if err != nil {
		return err
	}

	if *format == "table" {
		renderTable(stdout, result)
		return nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON report: %w", err)
	}
	fmt.Fprintln(stdout, string(output))
	return nil
}

func renderTable(w io.Writer, r *domain.SummaryResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"User", "Count", "Max", "Min", "Mean"})
	table.Append([]string{
		r.UserID,
		strconv.Itoa(r.Count),
		formatAmount(r.MaxTransactionAmount),
		formatAmount(r.MinTransactionAmount),
		formatAmount(r.MeanTransactionAmount),
	})
	table.Render()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
