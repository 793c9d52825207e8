package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/cardlens/internal/insights"
	"github.com/Veraticus/cardlens/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Derive spending and risk insights from the raw datasets",
		Long: `Load the three raw datasets, run the analysis, and print the insights.

The delinquency check is anchored to --as-of so runs are reproducible;
everything else depends only on the data.`,
		RunE: runAnalyze,
	}

	// Flags
	cmd.Flags().StringP("source", "s", "", "data source (local, remote, cache; default from config)")
	cmd.Flags().StringP("format", "f", "table", "output format (table, json)")
	cmd.Flags().String("as-of", "", "reference date for the delinquency check (YYYY-MM-DD, default today)")

	// Bind to viper
	_ = viper.BindPFlag("analyze.source", cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("analyze.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("analyze.as_of", cmd.Flags().Lookup("as-of"))

	return cmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	format := viper.GetString("analyze.format")
	if format != "table" && format != "json" {
		return fmt.Errorf("invalid output format %q (want table or json)", format)
	}

	now := time.Now()
	if asOf := viper.GetString("analyze.as_of"); asOf != "" {
		parsed, err := time.Parse("2006-01-02", asOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of date %q: %w", asOf, err)
		}
		now = parsed
	}

	ctx := cmd.Context()
	source, cleanup, err := initSource(ctx, viper.GetString("analyze.source"))
	if err != nil {
		return err
	}
	defer cleanup()

	slog.Info("Loading datasets", "source", source.Name())
	data, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}

	analyzer := insights.NewAnalyzer(analysisConfig())
	result, err := analyzer.Analyze(data, now)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if format == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	formatter := report.NewFormatter(analyzer.Config(), viper.GetString("display.currency"))
	fmt.Println(formatter.Render(result))
	return nil
}
