package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/cardlens/internal/cli"
	"github.com/Veraticus/cardlens/internal/config"
	"github.com/Veraticus/cardlens/internal/loader"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the raw JSON datasets into the local cache",
		Long: `Read users.json, credit_cards.json and transactions.json from a data
directory and refresh the SQLite dataset cache. Subsequent analyses can then
run with --source cache, without the files present.`,
		RunE: runImport,
	}

	// Flags
	cmd.Flags().String("from", "", "data directory to import from (default: data.dir)")

	// Bind to viper
	_ = viper.BindPFlag("import.from", cmd.Flags().Lookup("from"))

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	dir := viper.GetString("import.from")
	if dir == "" {
		dir = viper.GetString("data.dir")
	}
	dir = config.ExpandPath(dir)

	ctx := cmd.Context()
	source := loader.NewLocalSource(dir)

	slog.Info("Reading datasets", "source", source.Name())
	data, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read datasets: %w", err)
	}

	store, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	bar := progressbar.NewOptions(len(data.Transactions),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing card transaction groups..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	if err := store.ReplaceData(ctx, data, func() {
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to import datasets: %w", err)
	}

	// Debug breakdown of what was imported, by card product.
	byProduct := make(map[string]int)
	for i := range data.CreditCards {
		byProduct[data.CreditCards[i].ProductDisplayName()]++
	}
	slog.Debug("Imported card products", "breakdown", byProduct)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Imported %d users, %d cards, %d transactions",
		len(data.Users), len(data.CreditCards), data.TransactionCount())))
	return nil
}
